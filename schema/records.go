package schema

import "time"

// TokenRecord represents one access token row in the token store.
// ExpiresAt and CreatedAt are stored as the original submitted strings so
// that malformed expiry timestamps can be detected at validation time
// instead of silently rewritten.
type TokenRecord struct {
	Token     string `json:"token"`
	Label     string `json:"label"`
	Perm      string `json:"perm"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
	Active    bool   `json:"active"`
}

// EvaluationRecord represents one persisted scoring pass in the history store.
type EvaluationRecord struct {
	ID             int64     `json:"id"`
	StartupName    string    `json:"startup_name"`
	Score          float64   `json:"pmf_score"`
	Stage          string    `json:"stage"`
	QualityScore   int       `json:"quality_score"`
	QualityLabel   string    `json:"quality_label"`
	DisplayMode    string    `json:"display_mode"`
	ProblemScore   float64   `json:"problem_score"`
	PersonaScore   float64   `json:"persona_score"`
	SolutionScore  float64   `json:"solution_score"`
	MarketScore    float64   `json:"market_score"`
	RetentionScore float64   `json:"retention_score"`
	CreatedAt      time.Time `json:"created_at"`
}

// Components reassembles the component map from the flattened record columns.
func (r EvaluationRecord) Components() ComponentScores {
	return ComponentScores{
		ComponentProblem:   r.ProblemScore,
		ComponentPersona:   r.PersonaScore,
		ComponentSolution:  r.SolutionScore,
		ComponentMarket:    r.MarketScore,
		ComponentRetention: r.RetentionScore,
	}
}
