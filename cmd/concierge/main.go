// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

// Command concierge is the terminal client for the Harborview hotel API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open durable state storage (file by default, Redis when configured).
//  4. Restore session and cart from storage.
//  5. Wire the authenticated HTTP client and typed services.
//  6. Dispatch the subcommand.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/harborview/concierge/internal/billing/checkout"
	"github.com/harborview/concierge/internal/dining/cart"
	"github.com/harborview/concierge/internal/dining/menu"
	"github.com/harborview/concierge/internal/dining/orders"
	"github.com/harborview/concierge/internal/dining/requests"
	"github.com/harborview/concierge/internal/fleet/cars"
	"github.com/harborview/concierge/internal/platform/config"
	"github.com/harborview/concierge/internal/platform/storage"
	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/internal/site/banners"
	"github.com/harborview/concierge/internal/site/gallery"
	"github.com/harborview/concierge/internal/site/settings"
	"github.com/harborview/concierge/internal/stay/bookings"
	"github.com/harborview/concierge/internal/stay/rooms"
	"github.com/harborview/concierge/internal/users/accounts"
	"github.com/harborview/concierge/internal/users/auth"
	"github.com/harborview/concierge/internal/users/googleauth"
	"github.com/harborview/concierge/internal/users/session"
	"github.com/harborview/concierge/pkg/money"
)

// app bundles the wired client so subcommand handlers stay small.
type app struct {
	config   *config.Config
	logger   *slog.Logger
	session  *session.Manager
	cart     *cart.Store
	auth     *auth.Service
	rooms    *rooms.Service
	menu     *menu.Service
	orders   *orders.Service
	bookings *bookings.Service
	cars     *cars.Service
	checkout *checkout.Service
	settings *settings.Service
	requests *requests.Service
	gallery  *gallery.Service
	banners  *banners.Service
	accounts *accounts.Service
	money    *money.Formatter
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// The CLI prints results on stdout; logs go to stderr so piping works.
	rawLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	log := rawLog.With(slog.String("app", "harborview-concierge"))
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "harborview-concierge"))
		slog.SetDefault(log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// ── 3. Durable State ──────────────────────────────────────────────────
	var store storage.Store
	if cfg.RedisURL != "" {
		redisStore, err := storage.NewRedisStore(ctx, cfg.RedisURL, log)
		must(log, err, "connect to redis state store")
		defer redisStore.Close()
		store = redisStore
	} else {
		fileStore, err := storage.NewFileStore(cfg.StatePath)
		must(log, err, "open state file")
		store = fileStore
	}

	// ── 4. Session & Cart ─────────────────────────────────────────────────
	sessionManager := session.NewManager(store, log)
	sessionManager.Restore(ctx)

	cartStore := cart.NewStore(store, log)
	cartStore.Restore(ctx)

	// ── 5. HTTP Client & Services ─────────────────────────────────────────
	client := transport.NewClient(cfg.APIBaseURL, sessionManager, log, transport.Options{
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		OnSessionExpired: func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run 'concierge login' to sign in again.")
		},
	})

	application := &app{
		config:   cfg,
		logger:   log,
		session:  sessionManager,
		cart:     cartStore,
		auth:     auth.NewService(client, sessionManager, log),
		rooms:    rooms.NewService(client),
		menu:     menu.NewService(client),
		orders:   orders.NewService(client),
		bookings: bookings.NewService(client),
		cars:     cars.NewService(client),
		checkout: checkout.NewService(client),
		settings: settings.NewService(client),
		requests: requests.NewService(client),
		gallery:  gallery.NewService(client),
		banners:  banners.NewService(client),
		accounts: accounts.NewService(client),
		money:    money.NewFormatter("en"),
	}

	// ── 6. Dispatch ───────────────────────────────────────────────────────
	if len(os.Args) < 2 {
		application.banner()
		usage()
		return
	}

	if err := application.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (application *app) banner() {
	figure.NewFigure("Harborview", "cybermedium", true).Print()
	fmt.Println()
}

func usage() {
	fmt.Print(`Usage: concierge <command> [arguments]

Commands:
  login                       Sign in with Google
  logout                      Sign out locally
  whoami                      Show the current session
  rooms                       List available rooms
  menu [category]             List the dining menu
  cart list                   Show the cart
  cart add <itemID> [qty]     Add a menu item to the cart
  cart remove <itemID>        Remove a line from the cart
  cart clear                  Empty the cart
  order <dine-in|takeaway|delivery>  Submit the cart as an order
  orders                      List my food orders
  bookings                    List my bookings
  cars                        List rental cars
  bill <checkIn> <checkOut>   Show the running bill for a stay window
  requests [status]           List my custom food requests
  gallery [category]          List about-page gallery images
  banners [add <url> [title]] List or upload hero banners
  banners remove <bannerID>   Remove a hero banner (admin)
  users                       List guest accounts (admin)
  dashboard                   Show property-wide counters (admin)
  settings                    Show site settings
`)
}

func (application *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return application.cmdLogin(ctx)
	case "logout":
		application.auth.SignOut(ctx)
		fmt.Println("Signed out.")
		return nil
	case "whoami":
		return application.cmdWhoami()
	case "rooms":
		return application.cmdRooms(ctx)
	case "menu":
		category := ""
		if len(args) > 0 {
			category = args[0]
		}
		return application.cmdMenu(ctx, category)
	case "cart":
		return application.cmdCart(ctx, args)
	case "order":
		if len(args) < 1 {
			return fmt.Errorf("order requires an order type")
		}
		return application.cmdOrder(ctx, args[0])
	case "orders":
		return application.cmdOrders(ctx)
	case "bookings":
		return application.cmdBookings(ctx)
	case "cars":
		return application.cmdCars(ctx)
	case "bill":
		if len(args) < 2 {
			return fmt.Errorf("bill requires checkIn and checkOut dates")
		}
		return application.cmdBill(ctx, args[0], args[1])
	case "requests":
		status := ""
		if len(args) > 0 {
			status = args[0]
		}
		return application.cmdRequests(ctx, status)
	case "gallery":
		category := ""
		if len(args) > 0 {
			category = args[0]
		}
		return application.cmdGallery(ctx, category)
	case "banners":
		return application.cmdBanners(ctx, args)
	case "users":
		return application.cmdUsers(ctx)
	case "dashboard":
		return application.cmdDashboard(ctx)
	case "settings":
		return application.cmdSettings(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// # Commands

func (application *app) cmdLogin(ctx context.Context) error {
	flow := googleauth.NewFlow(
		application.config.GoogleClientID,
		application.config.GoogleClientSecret,
		application.config.OAuthListenPort,
		application.logger,
	)

	idToken, err := flow.Authorize(ctx)
	if err != nil {
		return err
	}

	user, err := application.auth.SignInWithGoogle(ctx, idToken)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	return nil
}

func (application *app) cmdWhoami() error {
	snapshot := application.session.Current()
	if !snapshot.Authenticated() {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s %s <%s> role=%s\n",
		snapshot.User.FirstName, snapshot.User.LastName, snapshot.User.Email, snapshot.User.Role)
	if application.session.TokenExpired() {
		fmt.Println("Access token expired; it will refresh on the next request.")
	}
	return nil
}

func (application *app) cmdRooms(ctx context.Context) error {
	available, err := application.rooms.List(ctx)
	if err != nil {
		return err
	}
	for _, room := range available {
		fmt.Printf("%-10s %-10s %-10s %s/night\n",
			room.ID, room.RoomNumber, room.Type, application.money.Format(room.Price))
	}
	return nil
}

func (application *app) cmdMenu(ctx context.Context, category string) error {
	items, err := application.menu.List(ctx, category)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%-10s %-25s %-10s %s\n",
			item.ID, item.Name, item.Category, application.money.Format(item.Price))
	}
	return nil
}

func (application *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		lines := application.cart.Lines()
		if len(lines) == 0 {
			fmt.Println("Cart is empty.")
			return nil
		}
		for _, line := range lines {
			fmt.Printf("%-10s %-25s %s\n",
				line.ItemID, line.Name, application.money.FormatQuantity(line.Quantity, line.UnitPrice))
		}
		fmt.Printf("Total: %s (%d items)\n",
			application.money.Format(application.cart.TotalAmount()), application.cart.TotalItems())
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("cart add requires an item ID")
		}
		quantity := 1
		if len(args) > 2 {
			parsed, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
			quantity = parsed
		}

		// The cart stores a display snapshot of the dish; fetch it once.
		items, err := application.menu.List(ctx, "")
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.ID == args[1] {
				application.cart.Add(ctx, cart.Line{
					ItemID:    item.ID,
					Name:      item.Name,
					UnitPrice: item.Price,
					Quantity:  quantity,
					Image:     item.Image,
				})
				fmt.Printf("Added %d x %s\n", quantity, item.Name)
				return nil
			}
		}
		return fmt.Errorf("menu item %q not found", args[1])

	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("cart remove requires an item ID")
		}
		application.cart.Remove(ctx, args[1])
		fmt.Println("Removed.")
		return nil

	case "clear":
		application.cart.Clear(ctx)
		fmt.Println("Cart cleared.")
		return nil

	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

func (application *app) cmdOrder(ctx context.Context, orderType string) error {
	placed, err := application.orders.Create(ctx, application.cart.Lines(), orders.CreateInput{
		OrderType:     orderType,
		PaymentMethod: "card",
	})
	if err != nil {
		return err
	}

	application.cart.Clear(ctx)
	fmt.Printf("Order %s placed, total %s\n", placed.ID, application.money.Format(placed.TotalAmount))
	return nil
}

func (application *app) cmdOrders(ctx context.Context) error {
	mine, err := application.orders.ListMine(ctx)
	if err != nil {
		return err
	}
	for _, order := range mine {
		fmt.Printf("%-10s %-12s %s\n", order.ID, order.Status, application.money.Format(order.TotalAmount))
	}
	return nil
}

func (application *app) cmdBookings(ctx context.Context) error {
	mine, err := application.bookings.ListMine(ctx)
	if err != nil {
		return err
	}
	for _, booking := range mine {
		fmt.Printf("%-10s %s -> %s %-12s %s\n",
			booking.ID, booking.CheckInDate, booking.CheckOutDate, booking.Status,
			application.money.Format(booking.TotalAmount))
	}
	return nil
}

func (application *app) cmdCars(ctx context.Context) error {
	fleet, err := application.cars.List(ctx, cars.Filters{})
	if err != nil {
		return err
	}
	for _, car := range fleet {
		fmt.Printf("%-10s %-20s %s/day\n",
			car.ID, car.Brand+" "+car.Model, application.money.Format(car.RentalPrice))
	}
	return nil
}

func (application *app) cmdBill(ctx context.Context, checkIn string, checkOut string) error {
	summary, err := application.checkout.Summary(ctx, checkIn, checkOut)
	if err != nil {
		return err
	}
	for _, service := range summary.Services {
		fmt.Printf("%-12s %-30s %s\n", service.Type, service.Description, application.money.Format(service.Amount))
	}
	fmt.Printf("Subtotal: %s  Taxes: %s  Total: %s\n",
		application.money.Format(summary.Subtotal),
		application.money.Format(summary.Taxes),
		application.money.Format(summary.TotalAmount))
	return nil
}

func (application *app) cmdRequests(ctx context.Context, status string) error {
	mine, err := application.requests.ListMine(ctx, status)
	if err != nil {
		return err
	}
	for _, foodRequest := range mine {
		price := foodRequest.EstimatedPrice
		if foodRequest.FinalPrice > 0 {
			price = foodRequest.FinalPrice
		}
		fmt.Printf("%-10s %-25s %-10s %s\n",
			foodRequest.ID, foodRequest.RequestTitle, foodRequest.Status, application.money.Format(price))
	}
	return nil
}

func (application *app) cmdGallery(ctx context.Context, category string) error {
	images, err := application.gallery.List(ctx, category)
	if err != nil {
		return err
	}
	for _, image := range images {
		fmt.Printf("%-12s %-20s %s\n", image.Category, image.Filename, image.URL)
	}
	return nil
}

func (application *app) cmdBanners(ctx context.Context, args []string) error {
	if len(args) == 0 {
		list, err := application.banners.List(ctx)
		if err != nil {
			return err
		}
		for _, banner := range list {
			fmt.Printf("%-10s %-25s %s\n", banner.ID, banner.Title, banner.ImageURL)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("banners add requires an image URL")
		}
		title := ""
		if len(args) > 2 {
			title = args[2]
		}
		banner, err := application.banners.Upload(ctx, banners.UploadInput{Title: title, ImageURL: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded banner %s\n", banner.ID)
		return nil
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("banners remove requires a banner ID")
		}
		if err := application.banners.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Banner removed.")
		return nil
	default:
		return fmt.Errorf("unknown banners subcommand %q", args[0])
	}
}

func (application *app) cmdDashboard(ctx context.Context) error {
	stats, err := application.accounts.Dashboard(ctx)
	if err != nil {
		return err
	}
	analytics, err := application.orders.GetAnalytics(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Guests    %d (%d active)\n", stats.TotalUsers, stats.ActiveUsers)
	fmt.Printf("Rooms     %d (%d available)\n", stats.TotalRooms, stats.AvailableRooms)
	fmt.Printf("Bookings  %d (%d pending)\n", stats.TotalBookings, stats.PendingBookings)
	fmt.Printf("Orders    %d (%d pending), revenue %s\n",
		analytics.TotalOrders, analytics.StatusDistribution["pending"], application.money.Format(analytics.TotalRevenue))
	return nil
}

func (application *app) cmdUsers(ctx context.Context) error {
	page, err := application.accounts.List(ctx, accounts.Filters{})
	if err != nil {
		return err
	}
	for _, user := range page.Users {
		fmt.Printf("%-12s %-25s %-8s active=%t\n", user.ID, user.Email, user.Role, user.IsActive)
	}
	return nil
}

func (application *app) cmdSettings(ctx context.Context) error {
	site, err := application.settings.Get(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", site.Brand.Name, site.Brand.Description)
	fmt.Printf("%s | %s | %s\n", site.Contact.Address, site.Contact.Phone, site.Contact.Email)
	return nil
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
