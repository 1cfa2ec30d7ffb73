// Package categorize implements the sort-into-buckets exercises (priority
// matrix, support network map). The board is an immutable value changed
// only through commands.
package categorize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownItem     = errors.New("unknown item")
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyLabel      = errors.New("empty item label")
)

// Category is one fixed drop target.
type Category struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Subtitle    string   `yaml:"subtitle" json:"subtitle"`
	Description string   `yaml:"description" json:"description"`
	Examples    []string `yaml:"examples" json:"examples"`
}

// Item is a draggable entry. An empty Category means unassigned.
type Item struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	Category string `yaml:"-" json:"-"`
}

// Assigned reports whether the item sits in a category.
func (i Item) Assigned() bool {
	return i.Category != ""
}

// Board is the set of items and the categories they can be dropped into.
type Board struct {
	categories []Category
	items      []Item
	added      int
}

// NewBoard returns a board where every item starts unassigned.
func NewBoard(categories []Category, items []Item) Board {
	fresh := make([]Item, len(items))
	for i, it := range items {
		it.Category = ""
		fresh[i] = it
	}
	return Board{categories: categories, items: fresh}
}

// Categories returns the fixed categories in display order.
func (b Board) Categories() []Category {
	return b.categories
}

// Items returns every item in insertion order.
func (b Board) Items() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// Apply executes cmd against a copy of the board.
func (b Board) Apply(cmd Command) (Board, error) {
	next := b.clone()
	if err := cmd.apply(&next); err != nil {
		return b, err
	}
	return next, nil
}

// Unassigned returns items not yet dropped into a category.
func (b Board) Unassigned() []Item {
	return b.filter("")
}

// InCategory returns the items assigned to category id.
func (b Board) InCategory(id string) []Item {
	return b.filter(id)
}

// Counts returns the number of items per category id. Every category is
// present, including empty ones.
func (b Board) Counts() map[string]int {
	counts := make(map[string]int, len(b.categories))
	for _, c := range b.categories {
		counts[c.ID] = 0
	}
	for _, it := range b.items {
		if it.Assigned() {
			counts[it.Category]++
		}
	}
	return counts
}

// Complete reports whether the board has items and none is left unassigned.
func (b Board) Complete() bool {
	return len(b.items) > 0 && len(b.Unassigned()) == 0
}

func (b Board) filter(category string) []Item {
	var out []Item
	for _, it := range b.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func (b Board) hasCategory(id string) bool {
	for _, c := range b.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (b Board) indexOf(itemID string) int {
	for i, it := range b.items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

func (b Board) clone() Board {
	items := make([]Item, len(b.items))
	copy(items, b.items)
	return Board{categories: b.categories, items: items, added: b.added}
}

// Command mutates a board copy. Implementations live in this package.
type Command interface {
	apply(b *Board) error
}

// Assign moves an item into a category, overwriting any previous one.
type Assign struct {
	ItemID     string
	CategoryID string
}

func (c Assign) apply(b *Board) error {
	idx := b.indexOf(c.ItemID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownItem, c.ItemID)
	}
	if !b.hasCategory(c.CategoryID) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c.CategoryID)
	}
	b.items[idx].Category = c.CategoryID
	return nil
}

// ResetAll returns every item to the unassigned bucket.
type ResetAll struct{}

func (ResetAll) apply(b *Board) error {
	for i := range b.items {
		b.items[i].Category = ""
	}
	return nil
}

// AddItem appends a learner-written item, unassigned.
type AddItem struct {
	Label string
}

func (c AddItem) apply(b *Board) error {
	label := strings.TrimSpace(c.Label)
	if label == "" {
		return ErrEmptyLabel
	}
	b.added++
	id := "custom-" + strconv.Itoa(b.added)
	for b.indexOf(id) >= 0 {
		b.added++
		id = "custom-" + strconv.Itoa(b.added)
	}
	b.items = append(b.items, Item{ID: id, Label: label})
	return nil
}
