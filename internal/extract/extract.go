package extract

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

// Extractor pulls candidate profile URLs and attributes out of untrusted
// HTML. All pattern knowledge lives behind this interface so the resolvers
// and orchestrator never touch a regex; when a search engine or GitHub
// changes its markup only this package needs updating.
type Extractor interface {
	FirstGitHubProfile(doc string) (url, username string, candidates int)
	FirstLinkedInProfile(doc string) (url string, candidates int)
	FirstTwitterProfile(doc string) (url string, candidates int)
	GitHubProfileFacts(doc string) GitHubProfileFacts
}

// GitHubProfileFacts holds the attributes scraped from a rendered GitHub
// profile page. Any field may be empty.
type GitHubProfileFacts struct {
	Name      string
	Company   string
	Location  string
	AvatarURL string
}

// Pre-compiled patterns for extraction.
var (
	// A GitHub profile URL is github.com followed by a single path segment
	// terminated by a path, quote, angle-bracket or whitespace boundary.
	githubProfilePattern = regexp.MustCompile(`https://github\.com/([^/"'<>\s&?#]+)[/"'<>\s]`)

	linkedinProfilePattern = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/[A-Za-z0-9_-]+/?`)
	twitterProfilePattern  = regexp.MustCompile(`https?://(?:twitter\.com|x\.com)/[A-Za-z0-9_]+`)

	// Icon-anchored attributes on the profile page: the octicon class marker
	// followed by the next inline <span> text.
	githubCompanyPattern  = regexp.MustCompile(`(?s)octicon-organization.*?<span[^>]*>\s*([^<]+?)\s*</span>`)
	githubLocationPattern = regexp.MustCompile(`(?s)octicon-location.*?<span[^>]*>\s*([^<]+?)\s*</span>`)

	ogImagePattern = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`)
)

// Path segments under github.com/ that are never user profiles. Search
// result pages link to several of these alongside the actual profile.
var githubReservedSegments = map[string]bool{
	"about": true, "features": true, "login": true, "join": true,
	"pricing": true, "topics": true, "trending": true, "marketplace": true,
	"sponsors": true, "orgs": true, "search": true, "explore": true,
	"collections": true, "enterprise": true, "security": true, "site": true,
}

// PatternExtractor is the production Extractor backed by the patterns above.
type PatternExtractor struct{}

// NewPatternExtractor returns the default pattern-based extractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

var _ Extractor = (*PatternExtractor)(nil)

// FirstGitHubProfile returns the first GitHub profile URL found in the
// document, the extracted username, and how many candidates matched. The
// first non-reserved match wins; there is no ranking.
func (e *PatternExtractor) FirstGitHubProfile(doc string) (string, string, int) {
	matches := githubProfilePattern.FindAllStringSubmatch(doc, -1)

	var (
		url        string
		username   string
		candidates int
	)
	for _, match := range matches {
		segment := match[1]
		if githubReservedSegments[strings.ToLower(segment)] {
			continue
		}
		candidates++
		if username == "" {
			username = segment
			url = "https://github.com/" + segment
		}
	}
	return url, username, candidates
}

// FirstLinkedInProfile returns the first linkedin.com/in/ URL found, with the
// trailing slash trimmed, and the total number of candidates.
func (e *PatternExtractor) FirstLinkedInProfile(doc string) (string, int) {
	matches := linkedinProfilePattern.FindAllString(doc, -1)
	if len(matches) == 0 {
		return "", 0
	}
	return strings.TrimSuffix(matches[0], "/"), len(matches)
}

// FirstTwitterProfile returns the first twitter.com or x.com profile URL
// found and the total number of candidates.
func (e *PatternExtractor) FirstTwitterProfile(doc string) (string, int) {
	matches := twitterProfilePattern.FindAllString(doc, -1)
	if len(matches) == 0 {
		return "", 0
	}
	return strings.TrimSuffix(matches[0], "/"), len(matches)
}

// GitHubProfileFacts scrapes display name, company, location and avatar from
// a rendered GitHub profile page. Missing attributes are left empty.
func (e *PatternExtractor) GitHubProfileFacts(doc string) GitHubProfileFacts {
	facts := GitHubProfileFacts{
		Name: githubDisplayName(doc),
	}
	if m := githubCompanyPattern.FindStringSubmatch(doc); len(m) > 1 {
		facts.Company = strings.TrimPrefix(html.UnescapeString(strings.TrimSpace(m[1])), "@")
	}
	if m := githubLocationPattern.FindStringSubmatch(doc); len(m) > 1 {
		facts.Location = html.UnescapeString(strings.TrimSpace(m[1]))
	}
	if m := ogImagePattern.FindStringSubmatch(doc); len(m) > 1 {
		facts.AvatarURL = m[1]
	}
	return facts
}

// githubDisplayName walks the parsed profile page trying the selectors GitHub
// has used for the vcard name over the years: span[itemprop=name], then the
// p-name class, then vcard-fullname. First non-empty match wins.
func githubDisplayName(doc string) string {
	root, err := xhtml.Parse(strings.NewReader(doc))
	if err != nil {
		return ""
	}

	selectors := []func(*xhtml.Node) bool{
		func(n *xhtml.Node) bool { return n.Data == "span" && attrValue(n, "itemprop") == "name" },
		func(n *xhtml.Node) bool { return hasClass(n, "p-name") },
		func(n *xhtml.Node) bool { return hasClass(n, "vcard-fullname") },
	}
	for _, matches := range selectors {
		if node := findNode(root, matches); node != nil {
			if name := strings.TrimSpace(textContent(node)); name != "" {
				return name
			}
		}
	}
	return ""
}

func findNode(n *xhtml.Node, matches func(*xhtml.Node) bool) *xhtml.Node {
	if n.Type == xhtml.ElementNode && matches(n) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findNode(child, matches); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *xhtml.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(n *xhtml.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *xhtml.Node) string {
	if n.Type == xhtml.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}
