// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harborview/concierge/pkg/money"
)

/*
TestFormat_TwoDecimalPlaces verifies amounts always render with cents.
*/
func TestFormat_TwoDecimalPlaces(t *testing.T) {
	formatter := money.NewFormatter("en")

	assert.Equal(t, "$12.00", formatter.Format(12))
	assert.Equal(t, "$28.50", formatter.Format(28.5))
}

/*
TestFormat_GroupsThousands verifies locale-aware digit grouping.
*/
func TestFormat_GroupsThousands(t *testing.T) {
	formatter := money.NewFormatter("en")

	assert.Equal(t, "$1,234.50", formatter.Format(1234.5))
}

/*
TestFormatQuantity_CartLineShape verifies the cart-line rendering.
*/
func TestFormatQuantity_CartLineShape(t *testing.T) {
	formatter := money.NewFormatter("en")

	assert.Equal(t, "3 × $12.00", formatter.FormatQuantity(3, 12))
}

/*
TestNewFormatter_UnknownTagFallsBack verifies a garbage language tag still
produces a working formatter.
*/
func TestNewFormatter_UnknownTagFallsBack(t *testing.T) {
	formatter := money.NewFormatter("not-a-tag")

	assert.Equal(t, "$5.00", formatter.Format(5))
}
