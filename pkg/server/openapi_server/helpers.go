// SPDX-License-Identifier: MIT

package openapi_server

import (
	"reflect"
)

// IsZeroValue checks if the val is the zero-ed value.
func IsZeroValue(val interface{}) bool {
	return val == nil || reflect.DeepEqual(val, reflect.Zero(reflect.TypeOf(val)).Interface())
}

// assertRequired returns a RequiredError if one of the elements is zero-ed
func assertRequired(elements map[string]interface{}) error {
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}
	return nil
}
