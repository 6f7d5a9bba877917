// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/concierge/pkg/query"
)

/*
TestBuild_OmitsUnsetFilters verifies that zero values never reach the wire.
*/
func TestBuild_OmitsUnsetFilters(t *testing.T) {
	values := query.New().
		Str("status", "").
		Int("page", 0).
		Float("minPrice", 0).
		Bool("available", nil).
		Build()

	assert.Nil(t, values)
}

/*
TestBuild_EncodesSetFilters verifies each setter's encoding.
*/
func TestBuild_EncodesSetFilters(t *testing.T) {
	active := true

	values := query.New().
		Str("status", "pending").
		Int("page", 2).
		Float("maxPrice", 99.5).
		Bool("isActive", &active).
		Build()

	require.NotNil(t, values)
	assert.Equal(t, "pending", values.Get("status"))
	assert.Equal(t, "2", values.Get("page"))
	assert.Equal(t, "99.5", values.Get("maxPrice"))
	assert.Equal(t, "true", values.Get("isActive"))
}

/*
TestBuild_FalseBoolIsStillSent verifies an explicit false filter is encoded,
since nil (not false) is the "unset" marker.
*/
func TestBuild_FalseBoolIsStillSent(t *testing.T) {
	inactive := false

	values := query.New().Bool("isActive", &inactive).Build()

	require.NotNil(t, values)
	assert.Equal(t, "false", values.Get("isActive"))
}
