// Package directory centralises how the application discovers potential
// owners for risks, findings and assets. Today it queries the local
// identity store; further sources (LDAP, SSO directories, HR systems) plug
// in by implementing Source and registering into the service's
// priority-ordered list.
package directory

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	maxLimit     = 25
	defaultLimit = 10
)

type Suggestion struct {
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Source      string `json:"source"`
}

// Source is a pluggable user suggestion backend.
type Source interface {
	Name() string
	Search(term string, limit int) ([]Suggestion, error)
}

type Service struct {
	sources []Source
}

func NewService(sources ...Source) *Service {
	return &Service{
		sources: sources,
	}
}

// SearchUsers aggregates suggestions across the registered sources in
// priority order. A blank term returns empty without querying any backend.
// The limit is clamped to 1..25, duplicates (by username) keep their first
// occurrence, and a failing source is skipped rather than failing the
// lookup.
func (s *Service) SearchUsers(term string, limit int) []Suggestion {
	term = strings.TrimSpace(term)
	if term == "" {
		return []Suggestion{}
	}

	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	results := make([]Suggestion, 0, limit)
	remaining := limit
	for _, source := range s.sources {
		if remaining <= 0 {
			break
		}

		matches, err := source.Search(term, remaining)
		if err != nil {
			slog.Warn("directory source failed", "source", source.Name(), "err", err)
			continue
		}

		results = append(results, matches...)
		remaining = limit - len(results)
	}

	seen := make(map[string]struct{}, len(results))
	unique := make([]Suggestion, 0, len(results))
	for _, suggestion := range results {
		key := suggestion.Username
		if key == "" {
			key = suggestion.DisplayName
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, suggestion)
	}

	if len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}

// DisplayName renders "First Last (username)" when a non-empty full name
// exists and differs from the username, otherwise the bare username.
func DisplayName(fullName, username string) string {
	fullName = strings.TrimSpace(fullName)
	if fullName != "" && fullName != username {
		return fmt.Sprintf("%s (%s)", fullName, username)
	}
	return username
}
