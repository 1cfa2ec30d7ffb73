package categorize

import "fmt"

// Op compares a category count against a value or another category.
type Op string

const (
	OpGT  Op = "gt"
	OpGTE Op = "gte"
	OpLT  Op = "lt"
	OpLTE Op = "lte"
	OpEQ  Op = "eq"
)

// Rule produces Advice when count(Category) Op (Value | count(Other)) holds.
type Rule struct {
	Category string `yaml:"category" json:"category"`
	Op       Op     `yaml:"op" json:"op"`
	Value    int    `yaml:"value" json:"value"`
	Other    string `yaml:"other,omitempty" json:"other,omitempty"`
	Title    string `yaml:"title" json:"title"`
	Advice   string `yaml:"advice" json:"advice"`
}

// Advice is one triggered recommendation.
type Advice struct {
	Title string
	Text  string
}

// Analyze evaluates rules in order against the board's counts.
func Analyze(b Board, rules []Rule) []Advice {
	counts := b.Counts()
	var out []Advice
	for _, r := range rules {
		rhs := r.Value
		if r.Other != "" {
			rhs = counts[r.Other]
		}
		if r.Op.holds(counts[r.Category], rhs) {
			out = append(out, Advice{Title: r.Title, Text: r.Advice})
		}
	}
	return out
}

// Validate checks that the rule only names known categories and a known op.
func (r Rule) Validate(categories []Category) error {
	known := func(id string) bool {
		for _, c := range categories {
			if c.ID == id {
				return true
			}
		}
		return false
	}
	if !known(r.Category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, r.Category)
	}
	if r.Other != "" && !known(r.Other) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, r.Other)
	}
	if !r.Op.valid() {
		return fmt.Errorf("unknown rule op %q", r.Op)
	}
	return nil
}

func (o Op) valid() bool {
	switch o {
	case OpGT, OpGTE, OpLT, OpLTE, OpEQ:
		return true
	}
	return false
}

func (o Op) holds(lhs, rhs int) bool {
	switch o {
	case OpGT:
		return lhs > rhs
	case OpGTE:
		return lhs >= rhs
	case OpLT:
		return lhs < rhs
	case OpLTE:
		return lhs <= rhs
	case OpEQ:
		return lhs == rhs
	}
	return false
}
