package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/octobees/contact-finder/internal/extract"
)

// Searcher issues a text-search query and returns raw result HTML.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// GitHubProfile is the attribute set a GitHub resolution can produce. Any
// field except Username and ProfileURL may be empty.
type GitHubProfile struct {
	Username   string
	ProfileURL string
	Name       string
	Company    string
	Location   string
	AvatarURL  string
}

const (
	githubAPIAccept  = "application/vnd.github.v3+json"
	resolverAgent    = "contact-finder/1.0"
	browserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxProfileBytes  = 1 << 20
	defaultAPIBase   = "https://api.github.com"
	defaultWebBase   = "https://github.com"
	defaultHTTPLimit = 10 * time.Second
)

// GitHubResolver finds the best-guess GitHub profile for an email address:
// a web search for `<email> github`, then structured data from the public
// users API, with the rendered profile page as a scraping fallback.
type GitHubResolver struct {
	search     Searcher
	httpClient *http.Client
	extractor  extract.Extractor
	apiBaseURL string
	webBaseURL string
}

// NewGitHubResolver wires a GitHub resolver.
func NewGitHubResolver(search Searcher, httpClient *http.Client, extractor extract.Extractor) *GitHubResolver {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPLimit}
	}
	return &GitHubResolver{
		search:     search,
		httpClient: httpClient,
		extractor:  extractor,
		apiBaseURL: defaultAPIBase,
		webBaseURL: defaultWebBase,
	}
}

// Resolve returns the resolved profile, or nil when no GitHub profile could
// be found. Missing individual attributes are not errors.
func (r *GitHubResolver) Resolve(ctx context.Context, email string) (*GitHubProfile, error) {
	doc, err := r.search.Search(ctx, email+" github")
	if err != nil {
		return nil, fmt.Errorf("github search: %w", err)
	}

	profileURL, username, candidates := r.extractor.FirstGitHubProfile(doc)
	if username == "" {
		return nil, nil
	}
	if candidates > 1 {
		// First match wins; the choice is not deterministic across engine
		// result orderings, so leave a trace.
		log.Printf("github resolver found %d candidate profiles for %s, using %s", candidates, email, username)
	}

	profile := &GitHubProfile{Username: username, ProfileURL: profileURL}

	if r.fillFromAPI(ctx, profile) {
		return profile, nil
	}
	r.fillFromProfilePage(ctx, profile)

	if profile.Name == "" {
		profile.Name = username
	}
	return profile, nil
}

// fillFromAPI fetches the public users API and reports whether it succeeded.
func (r *GitHubResolver) fillFromAPI(ctx context.Context, profile *GitHubProfile) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.apiBaseURL+"/users/"+profile.Username, http.NoBody)
	if err != nil {
		return false
	}
	req.Header.Set("Accept", githubAPIAccept)
	req.Header.Set("User-Agent", resolverAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Printf("github api request failed for %s: %v", profile.Username, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("github api returned status %d for %s", resp.StatusCode, profile.Username)
		return false
	}

	var user struct {
		Name      string `json:"name"`
		Company   string `json:"company"`
		Location  string `json:"location"`
		AvatarURL string `json:"avatar_url"`
		HTMLURL   string `json:"html_url"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBytes)).Decode(&user); err != nil {
		log.Printf("github api decode failed for %s: %v", profile.Username, err)
		return false
	}

	if user.Name != "" {
		profile.Name = user.Name
	} else {
		profile.Name = profile.Username
	}
	profile.Company = strings.TrimPrefix(strings.TrimSpace(user.Company), "@")
	profile.Location = strings.TrimSpace(user.Location)
	profile.AvatarURL = user.AvatarURL
	if user.HTMLURL != "" {
		profile.ProfileURL = user.HTMLURL
	}
	return true
}

// fillFromProfilePage scrapes the rendered profile page when the API is
// unavailable. Attribute misses simply leave fields empty.
func (r *GitHubResolver) fillFromProfilePage(ctx context.Context, profile *GitHubProfile) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.webBaseURL+"/"+profile.Username, http.NoBody)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", browserAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Printf("github profile fetch failed for %s: %v", profile.Username, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("github profile fetch returned status %d for %s", resp.StatusCode, profile.Username)
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBytes))
	if err != nil {
		return
	}

	facts := r.extractor.GitHubProfileFacts(string(body))
	profile.Name = facts.Name
	profile.Company = facts.Company
	profile.Location = facts.Location
	profile.AvatarURL = facts.AvatarURL
}
