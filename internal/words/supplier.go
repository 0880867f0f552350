package words

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyerin/tinywords/internal/models"
)

// PromptVersion tags generated batches so output can be traced back to
// the prompt that produced it.
const PromptVersion = "wordgen-v1"

// GenerateInput describes one batch of words to produce.
type GenerateInput struct {
	Count      int
	Level      string // CEFR level, e.g. A2
	Focus      string // learning focus, e.g. travel, business
	KnownWords []string
	AvoidWords []string
}

// GeneratedWord is one produced learning unit.
type GeneratedWord struct {
	ItemType           models.ItemType `json:"item_type"`
	Lemma              string          `json:"lemma"`
	Meaning            string          `json:"meaning"`
	PartOfSpeech       string          `json:"part_of_speech"`
	Example            string          `json:"example"`
	ExampleTranslation string          `json:"example_translation"`
}

// Supplier produces the day's learning words.
type Supplier interface {
	GenerateWords(ctx context.Context, input GenerateInput) ([]GeneratedWord, error)
}

var validItemTypes = map[models.ItemType]bool{
	models.ItemTypeVocab:       true,
	models.ItemTypePreposition: true,
	models.ItemTypeIdiom:       true,
	models.ItemTypePhrasalVerb: true,
	models.ItemTypeCollocation: true,
}

// ValidateWords checks a generated batch against the request: exact
// count, well-formed entries, and no lemma from the avoid list.
func ValidateWords(ws []GeneratedWord, count int, avoidWords []string) error {
	if len(ws) != count {
		return fmt.Errorf("expected %d words, got %d", count, len(ws))
	}

	avoid := make(map[string]bool, len(avoidWords))
	for _, w := range avoidWords {
		avoid[strings.ToLower(w)] = true
	}

	seen := make(map[string]bool, len(ws))
	for i, w := range ws {
		lemma := strings.ToLower(strings.TrimSpace(w.Lemma))
		if lemma == "" {
			return fmt.Errorf("word %d has an empty lemma", i)
		}
		if w.Meaning == "" {
			return fmt.Errorf("word %q has no meaning", w.Lemma)
		}
		if !validItemTypes[w.ItemType] {
			return fmt.Errorf("word %q has invalid item type %q", w.Lemma, w.ItemType)
		}
		if avoid[lemma] {
			return fmt.Errorf("word %q is on the avoid list", w.Lemma)
		}
		if seen[lemma] {
			return fmt.Errorf("word %q appears twice", w.Lemma)
		}
		seen[lemma] = true
	}
	return nil
}
