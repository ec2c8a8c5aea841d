package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/octobees/contact-finder/internal/extract"
)

type stubSearcher struct {
	doc       string
	err       error
	lastQuery string
	calls     int
}

func (s *stubSearcher) Search(ctx context.Context, query string) (string, error) {
	s.calls++
	s.lastQuery = query
	return s.doc, s.err
}

const searchDocWithProfile = `<a href="https://github.com/octocat">octocat</a>`

func newTestGitHubResolver(search Searcher, apiBase, webBase string) *GitHubResolver {
	r := NewGitHubResolver(search, &http.Client{}, extract.NewPatternExtractor())
	if apiBase != "" {
		r.apiBaseURL = apiBase
	}
	if webBase != "" {
		r.webBaseURL = webBase
	}
	return r
}

func TestGitHubResolver_SearchError(t *testing.T) {
	search := &stubSearcher{err: errors.New("engine down")}
	r := newTestGitHubResolver(search, "", "")

	if _, err := r.Resolve(context.Background(), "ada@example.com"); err == nil {
		t.Fatalf("expected search error to surface")
	}
	if search.lastQuery != "ada@example.com github" {
		t.Fatalf("unexpected query: %q", search.lastQuery)
	}
}

func TestGitHubResolver_NoProfileFound(t *testing.T) {
	search := &stubSearcher{doc: "<html>no profiles here</html>"}
	r := newTestGitHubResolver(search, "", "")

	profile, err := r.Resolve(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile != nil {
		t.Fatalf("expected nil profile, got %+v", profile)
	}
}

func TestGitHubResolver_APIPopulatesProfile(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat" {
			t.Fatalf("unexpected api path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != githubAPIAccept {
			t.Fatalf("unexpected accept header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Octo Cat",
			"company": "@GitHub",
			"location": "San Francisco",
			"avatar_url": "https://avatars.example/octocat.png",
			"html_url": "https://github.com/octocat"
		}`))
	}))
	defer api.Close()

	search := &stubSearcher{doc: searchDocWithProfile}
	r := newTestGitHubResolver(search, api.URL, "")

	profile, err := r.Resolve(context.Background(), "octo@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile == nil {
		t.Fatalf("expected profile")
	}
	if profile.Name != "Octo Cat" || profile.Company != "GitHub" || profile.Location != "San Francisco" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.AvatarURL != "https://avatars.example/octocat.png" {
		t.Fatalf("unexpected avatar: %q", profile.AvatarURL)
	}
	if profile.ProfileURL != "https://github.com/octocat" {
		t.Fatalf("unexpected profile url: %q", profile.ProfileURL)
	}
}

func TestGitHubResolver_APINameFallsBackToUsername(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "", "avatar_url": "https://avatars.example/octocat.png"}`))
	}))
	defer api.Close()

	r := newTestGitHubResolver(&stubSearcher{doc: searchDocWithProfile}, api.URL, "")

	profile, err := r.Resolve(context.Background(), "octo@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "octocat" {
		t.Fatalf("expected username fallback, got %q", profile.Name)
	}
}

func TestGitHubResolver_ScrapesProfilePageWhenAPIFails(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer api.Close()

	web := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/octocat" {
			t.Fatalf("unexpected web path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`<html><head>
		<meta property="og:image" content="https://avatars.example/octocat.png">
		</head><body>
		<span itemprop="name">Octo Cat</span>
		<svg class="octicon octicon-location"></svg><span>San Francisco</span>
		</body></html>`))
	}))
	defer web.Close()

	r := newTestGitHubResolver(&stubSearcher{doc: searchDocWithProfile}, api.URL, web.URL)

	profile, err := r.Resolve(context.Background(), "octo@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "Octo Cat" || profile.Location != "San Francisco" {
		t.Fatalf("unexpected scraped profile: %+v", profile)
	}
	if profile.AvatarURL != "https://avatars.example/octocat.png" {
		t.Fatalf("unexpected avatar: %q", profile.AvatarURL)
	}
}

func TestGitHubResolver_UsernameOnlyWhenEverythingFails(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	r := newTestGitHubResolver(&stubSearcher{doc: searchDocWithProfile}, failing.URL, failing.URL)

	profile, err := r.Resolve(context.Background(), "octo@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile == nil || profile.Username != "octocat" || profile.Name != "octocat" {
		t.Fatalf("expected bare username profile, got %+v", profile)
	}
	if profile.ProfileURL != "https://github.com/octocat" {
		t.Fatalf("unexpected profile url: %q", profile.ProfileURL)
	}
}
