package resolver

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/octobees/contact-finder/internal/extract"
)

// ProfileResolver finds a best-guess profile URL on one social network for a
// person's name. It is a heuristic, not an identity-verified lookup: first
// search match wins, no pagination, no ranking.
type ProfileResolver struct {
	search      Searcher
	network     string
	querySuffix string
	firstMatch  func(doc string) (string, int)
}

// NewLinkedInResolver wires a resolver for linkedin.com/in/ profiles.
func NewLinkedInResolver(search Searcher, extractor extract.Extractor) *ProfileResolver {
	return &ProfileResolver{
		search:      search,
		network:     "linkedin",
		querySuffix: " linkedin profile",
		firstMatch:  extractor.FirstLinkedInProfile,
	}
}

// NewTwitterResolver wires a resolver for twitter.com / x.com profiles.
func NewTwitterResolver(search Searcher, extractor extract.Extractor) *ProfileResolver {
	return &ProfileResolver{
		search:      search,
		network:     "twitter",
		querySuffix: " twitter",
		firstMatch:  extractor.FirstTwitterProfile,
	}
}

// Resolve returns the first matching profile URL for the name, or empty when
// nothing matched. An empty name short-circuits without a network call.
func (r *ProfileResolver) Resolve(ctx context.Context, fullName string) (string, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return "", nil
	}

	doc, err := r.search.Search(ctx, fullName+r.querySuffix)
	if err != nil {
		return "", fmt.Errorf("%s search: %w", r.network, err)
	}

	url, candidates := r.firstMatch(doc)
	if candidates > 1 {
		log.Printf("%s resolver found %d candidate profiles for %q, using first", r.network, candidates, fullName)
	}
	return url, nil
}
