package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/contact-finder/internal/entity"
	"github.com/octobees/contact-finder/internal/repository"
	"github.com/octobees/contact-finder/internal/resolver"
	"github.com/octobees/contact-finder/internal/service/scoring"
)

// ErrInvalidEmail indicates the input failed basic shape validation. It is
// raised before any network call is made.
var ErrInvalidEmail = errors.New("invalid email address")

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// GitHubResolver finds a best-guess GitHub profile for an email.
type GitHubResolver interface {
	Resolve(ctx context.Context, email string) (*resolver.GitHubProfile, error)
}

// SocialResolver finds a best-guess profile URL on one network for a name.
type SocialResolver interface {
	Resolve(ctx context.Context, fullName string) (string, error)
}

// Enricher coordinates the enrichment pipeline: store read, resolution
// chain, confidence scoring and the upsert back into the store. All
// collaborators are injected at startup; there is no ambient shared state.
type Enricher struct {
	contacts repository.ContactsRepository
	history  repository.LookupHistoryRepository
	github   GitHubResolver
	linkedin SocialResolver
	twitter  SocialResolver
}

// NewEnricher wires the orchestrator. history may be nil to disable lookup
// logging.
func NewEnricher(
	contacts repository.ContactsRepository,
	history repository.LookupHistoryRepository,
	github GitHubResolver,
	linkedin SocialResolver,
	twitter SocialResolver,
) *Enricher {
	return &Enricher{
		contacts: contacts,
		history:  history,
		github:   github,
		linkedin: linkedin,
		twitter:  twitter,
	}
}

// Resolve turns an email into a best-effort contact record. It never fails
// for "not found": a minimal fallback record is synthesized instead. Errors
// surface only for invalid input or a store-level fault.
func (s *Enricher) Resolve(ctx context.Context, email string) (*entity.Contact, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	existing, err := s.contacts.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrContactNotFound) {
		return nil, fmt.Errorf("read contact store: %w", err)
	}

	// A record counts as a cache hit only when the name resolved; a row that
	// merely exists (fallback or partial) goes through the chain again.
	if existing != nil && existing.FullName != "" {
		return existing, nil
	}

	res := s.runResolutionChain(ctx, email)
	if res.empty() {
		return s.persistFallback(ctx, email)
	}
	return s.persistResolved(ctx, email, existing, res)
}

// RecentLookups lists the latest recorded lookups, newest first.
func (s *Enricher) RecentLookups(ctx context.Context, limit int) ([]entity.Lookup, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, limit)
}

type resolution struct {
	github      *resolver.GitHubProfile
	linkedinURL string
	twitterURL  string
	seedName    string
}

func (r resolution) empty() bool {
	return r.github == nil && r.linkedinURL == "" && r.twitterURL == ""
}

// runResolutionChain is best-effort end to end: every resolver failure is
// logged and swallowed, partial results are expected.
func (s *Enricher) runResolutionChain(ctx context.Context, email string) resolution {
	var res resolution

	gh, err := s.github.Resolve(ctx, email)
	if err != nil {
		log.Printf("github resolution failed for %s: %v", email, err)
	}
	res.github = gh

	seed := ""
	if gh != nil {
		seed = gh.Name
	}
	if seed == "" {
		seed = GuessSearchName(email)
	}
	res.seedName = seed

	// The social lookups share nothing but the seed name; each goroutine
	// writes its own field, so the merge is deterministic regardless of
	// completion order.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := s.linkedin.Resolve(gctx, seed)
		if err != nil {
			log.Printf("linkedin resolution failed for %q: %v", seed, err)
			return nil
		}
		res.linkedinURL = url
		return nil
	})
	g.Go(func() error {
		url, err := s.twitter.Resolve(gctx, seed)
		if err != nil {
			log.Printf("twitter resolution failed for %q: %v", seed, err)
			return nil
		}
		res.twitterURL = url
		return nil
	})
	_ = g.Wait()

	return res
}

// persistResolved merges the resolution into any stale incomplete record,
// scores it and writes it back. Newly resolved fields win over stale ones;
// stale values survive only where the chain produced nothing. GitHub-sourced
// fields take precedence over the guessed name.
func (s *Enricher) persistResolved(ctx context.Context, email string, existing *entity.Contact, res resolution) (*entity.Contact, error) {
	contact := &entity.Contact{Email: email}
	if existing != nil {
		*contact = *existing
		contact.Email = email
	}

	if res.github != nil {
		contact.FullName = res.github.Name
		if res.github.ProfileURL != "" {
			contact.Social.GitHub = res.github.ProfileURL
		}
		if res.github.Company != "" {
			contact.Company = res.github.Company
		}
		if res.github.Location != "" {
			contact.Location = res.github.Location
		}
		if res.github.AvatarURL != "" {
			contact.AvatarURL = res.github.AvatarURL
		}
	} else {
		contact.FullName = res.seedName
	}
	if res.linkedinURL != "" {
		contact.Social.LinkedIn = res.linkedinURL
	}
	if res.twitterURL != "" {
		contact.Social.Twitter = res.twitterURL
	}

	contact.FirstName, contact.LastName = SplitFullName(contact.FullName)
	contact.ConfidenceScore = scoring.Score(scoring.Signals{
		FullName:    contact.FullName,
		GitHubURL:   contact.Social.GitHub,
		LinkedInURL: contact.Social.LinkedIn,
		TwitterURL:  contact.Social.Twitter,
		Company:     contact.Company,
		Location:    contact.Location,
		AvatarURL:   contact.AvatarURL,
	})

	stored, err := s.contacts.Upsert(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("persist contact: %w", err)
	}
	s.recordLookup(ctx, email, stored.ID)
	return stored, nil
}

// persistFallback writes the minimal record for an email no resolver could
// enrich. The stored row keeps an empty full_name on purpose: the
// synthesized display name is presentation-only, so a later lookup retries
// the whole chain instead of treating the guess as a cache hit.
func (s *Enricher) persistFallback(ctx context.Context, email string) (*entity.Contact, error) {
	minimal := &entity.Contact{
		Email:           email,
		ConfidenceScore: scoring.Score(scoring.Signals{}),
	}

	stored, err := s.contacts.Upsert(ctx, minimal)
	if err != nil {
		return nil, fmt.Errorf("persist fallback contact: %w", err)
	}
	s.recordLookup(ctx, email, stored.ID)

	out := *stored
	out.FullName = GuessDisplayName(email)
	out.FirstName, out.LastName = SplitFullName(out.FullName)
	return &out, nil
}

// recordLookup is best-effort; history failures never fail the lookup.
func (s *Enricher) recordLookup(ctx context.Context, email string, contactID uuid.UUID) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, email, contactID); err != nil {
		log.Printf("record lookup history for %s: %v", email, err)
	}
}
