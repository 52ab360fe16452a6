// SPDX-License-Identifier: MIT

package openapi_server

type NavigatorRequest struct {
	Navigator string `json:"navigator"`
}

func AssertNavigatorRequestRequired(obj NavigatorRequest) error {
	return assertRequired(map[string]interface{}{
		"navigator": obj.Navigator,
	})
}

type Navigators struct {
	Current    string   `json:"current"`
	Navigators []string `json:"navigators"`
}
