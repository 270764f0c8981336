// Package identity synthesizes stable email addresses for people who
// arrive from a roster with only a display name.
package identity

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ExistsFunc probes the persistent store for an address already in use.
type ExistsFunc func(email string) (bool, error)

// Resolver builds deterministic addresses on a fixed domain so that
// repeated uploads of the same name resolve to the same address.
type Resolver struct {
	domain string
}

func NewResolver(domain string) *Resolver {
	return &Resolver{domain: domain}
}

// EmailFor derives the candidate address for a display name:
// lowercased, title prefixes kept, dots and whitespace runs collapsed
// to single dots. "Dr. S Rekha" -> "dr.s.rekha@<domain>".
func (r *Resolver) EmailFor(name string) string {
	local := localPartOf(name)
	if local == "" {
		return ""
	}
	return local + "@" + r.domain
}

// UniqueEmail probes the store for the candidate address and, on
// collision, appends an incrementing numeric suffix until a free
// address is found. Deterministic for a fixed store state.
func (r *Resolver) UniqueEmail(candidate string, exists ExistsFunc) (string, error) {
	taken, err := exists(candidate)
	if err != nil {
		return "", errors.Wrap(err, "probing email")
	}
	if !taken {
		return candidate, nil
	}

	at := strings.LastIndex(candidate, "@")
	if at < 0 {
		return "", errors.Errorf("bad email candidate %q", candidate)
	}
	local, domain := candidate[:at], candidate[at:]
	for i := 1; ; i++ {
		probe := fmt.Sprintf("%s%d%s", local, i, domain)
		taken, err = exists(probe)
		if err != nil {
			return "", errors.Wrap(err, "probing email")
		}
		if !taken {
			return probe, nil
		}
	}
}

// localPartOf lowercases the name and keeps only letters, digits and
// dots, collapsing separator runs to a single dot.
func localPartOf(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	lastDot := true // swallow leading separators
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDot = false
		case r == '.' || r == ' ' || r == '\t' || r == '-' || r == '_':
			if !lastDot {
				b.WriteRune('.')
				lastDot = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), ".")
}
