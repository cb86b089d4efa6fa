package ratelimit

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	// ScopeAnon and ScopeUser are the built-in scope names; anything else
	// configured is treated as a custom scope.
	ScopeAnon = "anon"
	ScopeUser = "user"
)

// BuildScopes resolves named scopes against their configured rate
// descriptors, preserving the given order. Scopes without a usable
// descriptor are skipped with a warning, never a failure.
func BuildScopes(names []string, rates map[string]string) []Scope {
	scopes := make([]Scope, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		descriptor := strings.TrimSpace(rates[name])
		if descriptor == "" {
			log.WithField("scope", name).Warn("throttle: no rate configured for scope, skipping")
			continue
		}
		limit, window, okParse := ParseRate(descriptor)
		if !okParse {
			log.WithFields(log.Fields{"scope": name, "rate": descriptor}).Warn("throttle: malformed rate descriptor, skipping scope")
			continue
		}
		scopes = append(scopes, Scope{
			Kind:          kindForName(name),
			Name:          name,
			Limit:         limit,
			WindowSeconds: window,
		})
	}
	return scopes
}

func kindForName(name string) Kind {
	switch name {
	case ScopeAnon:
		return KindAnon
	case ScopeUser:
		return KindUser
	default:
		return KindCustom
	}
}
