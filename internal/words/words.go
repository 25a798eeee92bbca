// Package words is the static category/word lookup table the game draws its
// secret word from.
package words

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"impostor-server/internal/random"
)

type Category struct {
	Name  string
	Words []string
}

type Table []Category

var ErrEmptyTable = errors.New("word table is empty")

// Validate rejects tables the game cannot draw from.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	seen := make(map[string]bool, len(t))
	for _, c := range t {
		if c.Name == "" {
			return errors.New("category with empty name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate category %q", c.Name)
		}
		seen[c.Name] = true
		if len(c.Words) == 0 {
			return fmt.Errorf("category %q has no words", c.Name)
		}
	}
	return nil
}

// Choose picks a category uniformly, then a word uniformly from it.
func (t Table) Choose(r *rand.Rand) (category, word string, err error) {
	c, ok := random.Pick(r, t)
	if !ok {
		return "", "", ErrEmptyTable
	}
	w, ok := random.Pick(r, c.Words)
	if !ok {
		return "", "", fmt.Errorf("category %q has no words", c.Name)
	}
	return c.Name, w, nil
}

// Lookup returns the category named name.
func (t Table) Lookup(name string) (Category, bool) {
	for _, c := range t {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
