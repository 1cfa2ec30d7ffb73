// Package content loads the module's text and exercise data. A default
// module is embedded; a YAML override file can replace it. Both are
// validated against an embedded JSON Schema and then checked for
// cross-references the schema cannot express.
package content

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/resilio/internal/assessment"
	"github.com/abhisek/resilio/internal/breathing"
	"github.com/abhisek/resilio/internal/categorize"
	"github.com/abhisek/resilio/internal/confidence"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/scenario"
	"github.com/abhisek/resilio/internal/stress"
)

//go:embed module.yaml
var defaultModule []byte

//go:embed module.schema.json
var schemaJSON []byte

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid module content")

type Section struct {
	ID      progress.SectionID `yaml:"id" json:"id"`
	Number  int                `yaml:"number" json:"number"`
	Title   string             `yaml:"title" json:"title"`
	Summary string             `yaml:"summary" json:"summary"`
}

type Assessment struct {
	Questions []assessment.Question `yaml:"questions" json:"questions"`
	Feedback  assessment.Feedback   `yaml:"feedback" json:"feedback"`
}

type Scenarios struct {
	Items             []scenario.Scenario `yaml:"items" json:"items"`
	RitualPrompt      string              `yaml:"ritual_prompt" json:"ritual_prompt"`
	RitualPlaceholder string              `yaml:"ritual_placeholder" json:"ritual_placeholder"`
}

// Board is the data behind one categorization section.
type Board struct {
	Theory     []string              `yaml:"theory" json:"theory"`
	Categories []categorize.Category `yaml:"categories" json:"categories"`
	Items      []categorize.Item     `yaml:"items" json:"items"`
	Rules      []categorize.Rule     `yaml:"rules" json:"rules"`
}

// NewBoard returns a fresh, fully unassigned board.
func (b Board) NewBoard() categorize.Board {
	return categorize.NewBoard(b.Categories, b.Items)
}

type Stress struct {
	Intro            string            `yaml:"intro" json:"intro"`
	CountdownSeconds int               `yaml:"countdown_seconds" json:"countdown_seconds"`
	Scenarios        []stress.Scenario `yaml:"scenarios" json:"scenarios"`
}

// Countdown returns the configured time budget, zero when unset.
func (s Stress) Countdown() time.Duration {
	return time.Duration(s.CountdownSeconds) * time.Second
}

type Breathing struct {
	Cycles     int                   `yaml:"cycles" json:"cycles"`
	Techniques []breathing.Technique `yaml:"techniques" json:"techniques"`
}

// Module is the complete content of the course.
type Module struct {
	Title      string             `yaml:"title" json:"title"`
	Tagline    string             `yaml:"tagline" json:"tagline"`
	Welcome    []string           `yaml:"welcome" json:"welcome"`
	Sections   []Section          `yaml:"sections" json:"sections"`
	Assessment Assessment         `yaml:"assessment" json:"assessment"`
	Scenarios  Scenarios          `yaml:"scenarios" json:"scenarios"`
	Priorities Board              `yaml:"priorities" json:"priorities"`
	Support    Board              `yaml:"support" json:"support"`
	Confidence confidence.Catalog `yaml:"confidence" json:"confidence"`
	Stress     Stress             `yaml:"stress" json:"stress"`
	Breathing  Breathing          `yaml:"breathing" json:"breathing"`
}

// Section returns the section metadata for id.
func (m *Module) Section(id progress.SectionID) (Section, bool) {
	for _, s := range m.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Default returns the embedded module.
func Default() (*Module, error) {
	return Parse(defaultModule)
}

// DefaultYAML returns the raw embedded module file.
func DefaultYAML() []byte {
	return defaultModule
}

// Load reads and validates a module file. An empty path loads the
// embedded default.
func Load(path string) (*Module, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse validates raw YAML against the schema and decodes it.
func Parse(data []byte) (*Module, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrInvalid, err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var m Module
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalid, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks references between parts of the module.
func (m *Module) Validate() error {
	seen := map[progress.SectionID]bool{}
	for _, s := range m.Sections {
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate section %q", ErrInvalid, s.ID)
		}
		seen[s.ID] = true
	}
	if err := uniqueIDs("assessment question", questionIDs(m.Assessment.Questions)); err != nil {
		return err
	}
	if err := uniqueIDs("strength", questionIDs(m.Confidence.Strengths)); err != nil {
		return err
	}
	for name, b := range map[string]Board{"priorities": m.Priorities, "support": m.Support} {
		if err := b.validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, name, err)
		}
	}
	for _, sc := range m.Scenarios.Items {
		ids := make([]string, 0, len(sc.Choices))
		for _, c := range sc.Choices {
			ids = append(ids, c.ID)
		}
		if err := uniqueIDs(fmt.Sprintf("scenario %d choice", sc.ID), ids); err != nil {
			return err
		}
	}
	techniques := make([]string, 0, len(m.Breathing.Techniques))
	for _, t := range m.Breathing.Techniques {
		techniques = append(techniques, t.ID)
	}
	return uniqueIDs("breathing technique", techniques)
}

func (b Board) validate() error {
	cats := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		cats = append(cats, c.ID)
	}
	if err := uniqueIDs("category", cats); err != nil {
		return err
	}
	items := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, it.ID)
	}
	if err := uniqueIDs("item", items); err != nil {
		return err
	}
	for i, r := range b.Rules {
		if err := r.Validate(b.Categories); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}

func questionIDs(qs []assessment.Question) []string {
	ids := make([]string, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	return ids
}

func uniqueIDs(kind string, ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: duplicate %s id %q", ErrInvalid, kind, id)
		}
		seen[id] = true
	}
	return nil
}

var moduleSchema = sync.OnceValues(compileSchema)

func validateSchema(doc any) error {
	compiled, err := moduleSchema()
	if err != nil {
		return err
	}
	// Round-trip through JSON so the validator sees plain JSON types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return compiled.Validate(parsed)
}

func compileSchema() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal(schemaJSON, &def); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	const url = "schema://resilio/module.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
}
