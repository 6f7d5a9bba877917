// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

// Package query builds URL query strings from optional filter values.
//
// Every resource service takes filter structs whose zero values mean
// "not set"; these helpers keep the conversion to url.Values uniform and
// omit unset filters instead of sending empty parameters.
package query

import (
	"net/url"
	"strconv"
)

// Values wraps url.Values with chainable, omit-when-empty setters.
type Values struct {
	url.Values
}

// New returns an empty [Values] ready for chaining.
func New() Values {
	return Values{url.Values{}}
}

// Str sets key when value is non-empty.
func (v Values) Str(key, value string) Values {
	if value != "" {
		v.Set(key, value)
	}
	return v
}

// Int sets key when value is positive. Zero and negatives mean "unset" for
// every paging/count filter this API exposes.
func (v Values) Int(key string, value int) Values {
	if value > 0 {
		v.Set(key, strconv.Itoa(value))
	}
	return v
}

// Float sets key when value is positive.
func (v Values) Float(key string, value float64) Values {
	if value > 0 {
		v.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
	}
	return v
}

// Bool sets key when value is non-nil, encoding "true"/"false".
func (v Values) Bool(key string, value *bool) Values {
	if value != nil {
		v.Set(key, strconv.FormatBool(*value))
	}
	return v
}

// Build returns the accumulated url.Values, or nil when nothing was set so
// callers can pass the result straight to the transport layer.
func (v Values) Build() url.Values {
	if len(v.Values) == 0 {
		return nil
	}
	return v.Values
}
