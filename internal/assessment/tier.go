package assessment

// Tier is the feedback band selected from an average score.
type Tier string

const (
	TierPositive    Tier = "positive"
	TierNeutral     Tier = "neutral"
	TierEncouraging Tier = "encouraging"
)

const (
	positiveThreshold = 4.0
	neutralThreshold  = 3.0
)

// TierFor maps an average to its feedback tier. Bounds are inclusive on
// the high side: 4.0 is positive, 3.0 is neutral.
func TierFor(avg float64) Tier {
	switch {
	case avg >= positiveThreshold:
		return TierPositive
	case avg >= neutralThreshold:
		return TierNeutral
	default:
		return TierEncouraging
	}
}

// Feedback holds one message per tier.
type Feedback struct {
	Positive    string `yaml:"positive" json:"positive"`
	Neutral     string `yaml:"neutral" json:"neutral"`
	Encouraging string `yaml:"encouraging" json:"encouraging"`
}

// For returns the message for tier t.
func (f Feedback) For(t Tier) string {
	switch t {
	case TierPositive:
		return f.Positive
	case TierNeutral:
		return f.Neutral
	default:
		return f.Encouraging
	}
}
