package scoring

// Signals captures the resolved fields used to estimate record confidence.
// Empty strings mean the field was not resolved.
type Signals struct {
	FullName    string
	GitHubURL   string
	LinkedInURL string
	TwitterURL  string
	Company     string
	Location    string
	AvatarURL   string
}

const (
	baseScore = 50
	maxScore  = 100
)

// Per-field increments. Fixed by design so scores stay reproducible across
// runs; a confidence score is a completeness heuristic, not a probability.
const (
	githubWeight   = 15
	linkedinWeight = 10
	twitterWeight  = 5
	companyWeight  = 5
	locationWeight = 5
	avatarWeight   = 5
	nameWeight     = 5
)

// Score maps the set of resolved fields to a 0-100 confidence value. It is
// deterministic and monotonic: adding a field never lowers the result.
func Score(s Signals) int {
	score := baseScore
	if s.GitHubURL != "" {
		score += githubWeight
	}
	if s.LinkedInURL != "" {
		score += linkedinWeight
	}
	if s.TwitterURL != "" {
		score += twitterWeight
	}
	if s.Company != "" {
		score += companyWeight
	}
	if s.Location != "" {
		score += locationWeight
	}
	if s.AvatarURL != "" {
		score += avatarWeight
	}
	if s.FullName != "" {
		score += nameWeight
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
