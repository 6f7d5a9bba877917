// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package stub_test

import (
	stdctx "context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/concierge/internal/dining/cart"
	"github.com/harborview/concierge/internal/dining/menu"
	"github.com/harborview/concierge/internal/dining/orders"
	"github.com/harborview/concierge/internal/platform/apierr"
	"github.com/harborview/concierge/internal/platform/storage"
	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/internal/site/banners"
	"github.com/harborview/concierge/internal/stay/rooms"
	"github.com/harborview/concierge/internal/stub"
	"github.com/harborview/concierge/internal/users/accounts"
	"github.com/harborview/concierge/internal/users/auth"
	"github.com/harborview/concierge/internal/users/session"
)

// fixture wires the full client stack against an in-process stub backend.
type fixture struct {
	backend *httptest.Server
	session *session.Manager
	client  *transport.Client
	auth    *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := httptest.NewServer(stub.NewServer("test-secret", logger).Router())
	t.Cleanup(backend.Close)

	sessionManager := session.NewManager(storage.NewMemoryStore(), logger)
	client := transport.NewClient(backend.URL+"/api", sessionManager, logger, transport.Options{})

	return &fixture{
		backend: backend,
		session: sessionManager,
		client:  client,
		auth:    auth.NewService(client, sessionManager, logger),
	}
}

// googleIDToken fabricates an unverified ID token carrying the given email.
// The stub reads claims without signature checks, as a dev backend must.
func googleIDToken(t *testing.T, email string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":       email,
		"given_name":  "Test",
		"family_name": "Guest",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	return signed
}

/*
TestSignIn_EstablishesSession verifies the full sign-in exchange: the stub
issues a token pair and profile, and the session manager holds all three.
*/
func TestSignIn_EstablishesSession(t *testing.T) {
	fx := newFixture(t)
	ctx := stdctx.Background()

	user, err := fx.auth.SignInWithGoogle(ctx, googleIDToken(t, "noor@harborview.test"))
	require.NoError(t, err)

	assert.Equal(t, "noor@harborview.test", user.Email)
	assert.True(t, fx.session.IsAuthenticated())
	assert.NotEmpty(t, fx.session.AccessToken())
	assert.NotEmpty(t, fx.session.RefreshToken())
}

/*
TestRefresh_RotatesTokenPair verifies an explicit refresh replaces both
tokens and invalidates the redeemed refresh token.
*/
func TestRefresh_RotatesTokenPair(t *testing.T) {
	fx := newFixture(t)
	ctx := stdctx.Background()

	_, err := fx.auth.SignInWithGoogle(ctx, googleIDToken(t, "noor@harborview.test"))
	require.NoError(t, err)

	firstRefresh := fx.session.RefreshToken()

	require.NoError(t, fx.auth.Refresh(ctx))
	assert.NotEqual(t, firstRefresh, fx.session.RefreshToken())

	// The redeemed token is gone; replaying it is an authorization failure.
	fx.session.SetTokens(ctx, fx.session.AccessToken(), firstRefresh)
	err = fx.auth.Refresh(ctx)
	require.Error(t, err)
	assert.True(t, apierr.IsUnauthorized(err))
}

/*
TestRooms_GuestsSeeOnlyAvailable verifies the public listing hides rooms
under maintenance while the seeded catalogue contains one.
*/
func TestRooms_GuestsSeeOnlyAvailable(t *testing.T) {
	fx := newFixture(t)
	ctx := stdctx.Background()

	catalogue, err := rooms.NewService(fx.client).List(ctx)
	require.NoError(t, err)

	require.NotEmpty(t, catalogue)
	for _, room := range catalogue {
		assert.Equal(t, "available", room.Status)
	}
}

/*
TestOrders_CartFlow verifies the full dining loop: browse the menu, fill the
cart, submit it as an order, and read it back with server-side pricing.
*/
func TestOrders_CartFlow(t *testing.T) {
	fx := newFixture(t)
	ctx := stdctx.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := fx.auth.SignInWithGoogle(ctx, googleIDToken(t, "noor@harborview.test"))
	require.NoError(t, err)

	menuService := menu.NewService(fx.client)
	dishes, err := menuService.List(ctx, "mains")
	require.NoError(t, err)
	require.NotEmpty(t, dishes)

	basket := cart.NewStore(storage.NewMemoryStore(), logger)
	basket.Restore(ctx)
	basket.Add(ctx, cart.Line{
		ItemID:    dishes[0].ID,
		Name:      dishes[0].Name,
		UnitPrice: dishes[0].Price,
		Quantity:  2,
	})

	orderService := orders.NewService(fx.client)
	placed, err := orderService.Create(ctx, basket.Lines(), orders.CreateInput{
		OrderType:     orders.TypeDineIn,
		TableNumber:   "7",
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.Equal(t, orders.StatusPending, placed.Status)
	assert.InDelta(t, dishes[0].Price*2, placed.TotalAmount, 0.001)

	mine, err := orderService.ListMine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, placed.ID, mine[0].ID)
}

/*
TestOrders_UnknownDishRejected verifies an order referencing a dish the menu
does not carry fails as a validation error.
*/
func TestOrders_UnknownDishRejected(t *testing.T) {
	fx := newFixture(t)
	ctx := stdctx.Background()

	_, err := fx.auth.SignInWithGoogle(ctx, googleIDToken(t, "noor@harborview.test"))
	require.NoError(t, err)

	_, err = orders.NewService(fx.client).Create(ctx,
		[]cart.Line{{ItemID: "dish-9999", Name: "Ghost Dish", UnitPrice: 1, Quantity: 1}},
		orders.CreateInput{OrderType: orders.TypeTakeaway, PaymentMethod: "cash"},
	)
	require.Error(t, err)

	typed := apierr.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "VALIDATION_ERROR", typed.Code)
}

/*
TestAdminSurface_RequiresAdminRole verifies role enforcement: a guest session
is rejected from the back office, an admin session is admitted.
*/
func TestAdminSurface_RequiresAdminRole(t *testing.T) {
	fx := newFixture(t)
	ctx := stdctx.Background()
	roomService := rooms.NewService(fx.client)

	// Guest first.
	_, err := fx.auth.SignInWithGoogle(ctx, googleIDToken(t, "noor@harborview.test"))
	require.NoError(t, err)

	_, err = roomService.AdminList(ctx, rooms.AdminFilters{})
	require.Error(t, err)
	assert.Equal(t, 403, apierr.StatusOf(err))

	// Then an admin account.
	_, err = fx.auth.SignInWithGoogle(ctx, googleIDToken(t, "admin@harborview.test"))
	require.NoError(t, err)

	page, err := roomService.AdminList(ctx, rooms.AdminFilters{})
	require.NoError(t, err)
	assert.NotEmpty(t, page.Rooms)
}

/*
TestBanners_AdminLifecycle verifies the hero carousel round trip: an admin
uploads a banner, everyone sees it in the public list, and deleting it
shrinks the list back.
*/
func TestBanners_AdminLifecycle(t *testing.T) {
	fx := newFixture(t)
	ctx := stdctx.Background()
	bannerService := banners.NewService(fx.client)

	baseline, err := bannerService.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, baseline)

	_, err = fx.auth.SignInWithGoogle(ctx, googleIDToken(t, "admin@harborview.test"))
	require.NoError(t, err)

	uploaded, err := bannerService.Upload(ctx, banners.UploadInput{
		Title:    "Winter by the Water",
		ImageURL: "/static/banners/winter.jpg",
	})
	require.NoError(t, err)
	require.NotEmpty(t, uploaded.ID)

	list, err := bannerService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(baseline)+1)

	require.NoError(t, bannerService.Delete(ctx, uploaded.ID))

	list, err = bannerService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(baseline))
}

/*
TestDashboard_ReflectsLiveState verifies the back-office counters and the
kitchen analytics track the seeded catalogue plus activity performed through
the client.
*/
func TestDashboard_ReflectsLiveState(t *testing.T) {
	fx := newFixture(t)
	ctx := stdctx.Background()

	// A guest places one order so the counters have activity to report.
	_, err := fx.auth.SignInWithGoogle(ctx, googleIDToken(t, "noor@harborview.test"))
	require.NoError(t, err)

	dishes, err := menu.NewService(fx.client).List(ctx, "mains")
	require.NoError(t, err)
	require.NotEmpty(t, dishes)

	orderService := orders.NewService(fx.client)
	placed, err := orderService.Create(ctx,
		[]cart.Line{{ItemID: dishes[0].ID, Name: dishes[0].Name, UnitPrice: dishes[0].Price, Quantity: 2}},
		orders.CreateInput{OrderType: orders.TypeDineIn, TableNumber: "4", PaymentMethod: "card"},
	)
	require.NoError(t, err)

	_, err = fx.auth.SignInWithGoogle(ctx, googleIDToken(t, "admin@harborview.test"))
	require.NoError(t, err)

	stats, err := accounts.NewService(fx.client).Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalRooms)
	assert.Equal(t, 2, stats.AvailableRooms)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.GreaterOrEqual(t, stats.ActiveUsers, 2)

	analytics, err := orderService.GetAnalytics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, analytics.TotalOrders)
	assert.Equal(t, 1, analytics.StatusDistribution[orders.StatusPending])
	assert.InDelta(t, placed.TotalAmount, analytics.TotalRevenue, 0.001)
}

/*
TestAnonymous_ProtectedEndpointUnauthorized verifies a request with no
session at all is refused rather than treated as an empty guest.
*/
func TestAnonymous_ProtectedEndpointUnauthorized(t *testing.T) {
	fx := newFixture(t)
	ctx := stdctx.Background()

	_, err := orders.NewService(fx.client).ListMine(ctx)
	require.Error(t, err)
	assert.True(t, apierr.IsUnauthorized(err))
}
