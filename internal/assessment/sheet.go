// Package assessment scores 1-5 self-rating questionnaires.
package assessment

import (
	"errors"
	"fmt"
)

const (
	MinScore = 1
	MaxScore = 5
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrScoreOutOfRange = errors.New("score out of range")
)

// Question is a single statement rated on the 1-5 scale.
type Question struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
}

// Sheet holds the answers given to a fixed list of questions.
// It is immutable: Answer returns a new Sheet.
type Sheet struct {
	questions []Question
	responses map[string]int
}

// NewSheet creates an empty sheet over the given questions.
func NewSheet(questions []Question) Sheet {
	return Sheet{
		questions: questions,
		responses: make(map[string]int, len(questions)),
	}
}

// Questions returns the questions in presentation order.
func (s Sheet) Questions() []Question {
	return s.questions
}

// Answer records score for the question id, overwriting a previous answer.
func (s Sheet) Answer(id string, score int) (Sheet, error) {
	if !s.has(id) {
		return s, fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	if score < MinScore || score > MaxScore {
		return s, fmt.Errorf("%w: %d", ErrScoreOutOfRange, score)
	}

	next := make(map[string]int, len(s.responses)+1)
	for k, v := range s.responses {
		next[k] = v
	}
	next[id] = score
	return Sheet{questions: s.questions, responses: next}, nil
}

// Score returns the answer for id, if any.
func (s Sheet) Score(id string) (int, bool) {
	v, ok := s.responses[id]
	return v, ok
}

// Answered returns the number of answered questions.
func (s Sheet) Answered() int {
	return len(s.responses)
}

// Complete reports whether every question has an answer.
func (s Sheet) Complete() bool {
	return len(s.questions) > 0 && len(s.responses) == len(s.questions)
}

// Average returns the arithmetic mean of the answered scores, or 0 when
// nothing has been answered yet.
func (s Sheet) Average() float64 {
	if len(s.responses) == 0 {
		return 0
	}
	sum := 0
	for _, v := range s.responses {
		sum += v
	}
	return float64(sum) / float64(len(s.responses))
}

func (s Sheet) has(id string) bool {
	for _, q := range s.questions {
		if q.ID == id {
			return true
		}
	}
	return false
}
