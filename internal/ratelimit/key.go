package ratelimit

import (
	"fmt"
	"strings"
)

// CacheKey builds the history key for a scope and client. The inspector and
// the enforcement gate both derive keys here so they always address the same
// cache entries. ok is false when the scope does not apply to this client;
// such scopes are skipped.
func CacheKey(scope Scope, client Client) (string, bool) {
	var ident string
	switch scope.Kind {
	case KindAnon:
		// Authenticated clients are not anon-throttled.
		if strings.TrimSpace(client.UserID) != "" {
			return "", false
		}
		ident = client.RemoteAddr
	case KindUser:
		ident = client.UserID
		if strings.TrimSpace(ident) == "" {
			ident = client.RemoteAddr
		}
	default:
		ident = client.UserID
		if strings.TrimSpace(ident) == "" {
			ident = client.RemoteAddr
		}
	}
	ident = strings.TrimSpace(ident)
	if ident == "" {
		return "", false
	}
	return fmt.Sprintf("throttle:%s:%s", scope.Name, ident), true
}
