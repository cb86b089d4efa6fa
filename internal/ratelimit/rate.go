package ratelimit

import (
	"strconv"
	"strings"
)

var windowByUnit = map[string]int{
	"second": 1,
	"minute": 60,
	"hour":   3600,
	"day":    86400,
}

// ParseRate parses a rate descriptor such as "100/hour" into a request limit
// and a window length in seconds. Units are the singular forms second,
// minute, hour and day. ok is false for malformed descriptors or unknown
// units; callers treat such scopes as not rate limited rather than failing
// the request.
func ParseRate(descriptor string) (limit, windowSeconds int, ok bool) {
	numPart, unitPart, found := strings.Cut(descriptor, "/")
	if !found || numPart == "" {
		return 0, 0, false
	}
	for _, r := range numPart {
		if r < '0' || r > '9' {
			return 0, 0, false
		}
	}
	parsed, errParse := strconv.Atoi(numPart)
	if errParse != nil {
		return 0, 0, false
	}
	window, okUnit := windowByUnit[unitPart]
	if !okUnit {
		return 0, 0, false
	}
	return parsed, window, true
}
