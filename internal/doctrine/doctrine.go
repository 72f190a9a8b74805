// Package doctrine holds the read-only catalog of target categories,
// damage-level vocabularies, and review thresholds that governs how
// detections are interpreted. The catalog is loaded once before any
// image is processed and never mutated, so it is safe for
// unsynchronized concurrent reads.
package doctrine

import "strings"

// CategoryDoctrine is the assessment rule set for one target category.
type CategoryDoctrine struct {
	Category        string   // category label, lower-cased
	PromptTemplate  string   // VLM prompt with {category} and {levels} placeholders
	DamageLevels    []string // ordered damage vocabulary, least to most severe
	ReviewThreshold float64  // confidence strictly below this flags manual review
}

// ValidLevel reports whether level belongs to this category's vocabulary.
// Matching is case-insensitive.
func (d CategoryDoctrine) ValidLevel(level string) bool {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, l := range d.DamageLevels {
		if strings.ToLower(l) == level {
			return true
		}
	}
	return false
}

// NeedsReview reports whether a confidence value falls below the
// category's acceptance threshold. The boundary is exclusive: a
// confidence exactly at the threshold is not flagged.
func (d CategoryDoctrine) NeedsReview(confidence float64) bool {
	return confidence < d.ReviewThreshold
}

// Prompt is the routed output for one detection: the rendered prompt
// text plus the doctrine it was rendered from.
type Prompt struct {
	Text     string
	Doctrine CategoryDoctrine
}

// Catalog maps category labels to their doctrine. Lookups for unmapped
// categories return the default doctrine, never an error.
type Catalog struct {
	categories map[string]CategoryDoctrine
	fallback   CategoryDoctrine
}

// Lookup returns the doctrine for a category, or the default doctrine
// when the category is not declared.
func (c *Catalog) Lookup(category string) CategoryDoctrine {
	if d, ok := c.categories[strings.ToLower(strings.TrimSpace(category))]; ok {
		return d
	}
	return c.fallback
}

// Default returns the fallback doctrine used for unmapped categories.
func (c *Catalog) Default() CategoryDoctrine {
	return c.fallback
}

// Categories returns the declared category labels.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	return names
}

// Route renders the prompt for a category. Pure and deterministic:
// unmapped categories render the default template.
func (c *Catalog) Route(category string) Prompt {
	d := c.Lookup(category)
	text := d.PromptTemplate
	text = strings.ReplaceAll(text, "{category}", category)
	text = strings.ReplaceAll(text, "{levels}", strings.Join(d.DamageLevels, ", "))
	return Prompt{Text: text, Doctrine: d}
}
