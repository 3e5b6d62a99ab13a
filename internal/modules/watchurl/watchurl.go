// Package watchurl mirrors the active search identifier into shareable watch
// URLs: an input URL's v parameter resolves back to an identifier, and a
// successful search emits a URL carrying exactly one v parameter.
package watchurl

import (
	"net/url"
	"strings"
)

// StorageKey is the persisted-state key holding the last searched identifier,
// so an argument-less invocation reloads the previous search.
const StorageKey = "last_search"

// Extract resolves user input to an identifier. Watch URLs yield their v
// parameter; anything that does not parse as a URL with a v parameter is
// treated as a bare identifier and returned trimmed.
func Extract(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "://") {
		return input
	}

	u, err := url.Parse(input)
	if err != nil {
		return input
	}
	params, err := url.ParseQuery(u.RawQuery)
	if err != nil || len(params["v"]) == 0 {
		return ""
	}
	return params["v"][0]
}

// Set returns base with its v parameter set to id, or removed when id is
// empty. Replace semantics: repeated calls never accumulate duplicate
// parameters.
func Set(base, id string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}

	params := u.Query()
	if id == "" {
		params.Del("v")
	} else {
		params.Set("v", id)
	}
	u.RawQuery = params.Encode()
	return u.String()
}
