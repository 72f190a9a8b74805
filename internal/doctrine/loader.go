package doctrine

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDoctrine marks a doctrine document that failed validation.
// Doctrine errors are fatal and abort the run before any image is
// processed.
var ErrInvalidDoctrine = errors.New("invalid doctrine")

// document is the on-disk YAML shape of the doctrine catalog.
type document struct {
	Default    entry            `yaml:"default"`
	Categories map[string]entry `yaml:"categories"`
}

type entry struct {
	Prompt          string   `yaml:"prompt"`
	DamageLevels    []string `yaml:"damage_levels"`
	ReviewThreshold *float64 `yaml:"review_threshold"`
}

// Load reads and validates the doctrine document. It fails on a
// missing file, malformed YAML, or any declared category missing its
// prompt template or damage vocabulary.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidDoctrine, path, err)
	}
	return Parse(data)
}

// Parse validates a doctrine document from raw YAML.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %w", ErrInvalidDoctrine, err)
	}

	fallback, err := doc.Default.toDoctrine("default", nil)
	if err != nil {
		return nil, err
	}

	categories := make(map[string]CategoryDoctrine, len(doc.Categories))
	for name, e := range doc.Categories {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, fmt.Errorf("%w: empty category name", ErrInvalidDoctrine)
		}
		d, err := e.toDoctrine(key, &fallback)
		if err != nil {
			return nil, err
		}
		categories[key] = d
	}

	return &Catalog{categories: categories, fallback: fallback}, nil
}

// toDoctrine validates one entry. A nil fallback means the entry is the
// default itself and must be fully specified; category entries may omit
// the threshold and inherit the default's.
func (e entry) toDoctrine(name string, fallback *CategoryDoctrine) (CategoryDoctrine, error) {
	if strings.TrimSpace(e.Prompt) == "" {
		return CategoryDoctrine{}, fmt.Errorf("%w: category %q: missing prompt", ErrInvalidDoctrine, name)
	}
	if len(e.DamageLevels) == 0 {
		return CategoryDoctrine{}, fmt.Errorf("%w: category %q: missing damage_levels", ErrInvalidDoctrine, name)
	}
	for _, level := range e.DamageLevels {
		if strings.TrimSpace(level) == "" {
			return CategoryDoctrine{}, fmt.Errorf("%w: category %q: empty damage level", ErrInvalidDoctrine, name)
		}
	}

	threshold := 0.0
	switch {
	case e.ReviewThreshold != nil:
		threshold = *e.ReviewThreshold
	case fallback != nil:
		threshold = fallback.ReviewThreshold
	default:
		return CategoryDoctrine{}, fmt.Errorf("%w: category %q: missing review_threshold", ErrInvalidDoctrine, name)
	}
	if threshold < 0 || threshold > 1 {
		return CategoryDoctrine{}, fmt.Errorf("%w: category %q: review_threshold %v outside [0, 1]", ErrInvalidDoctrine, name, threshold)
	}

	return CategoryDoctrine{
		Category:        name,
		PromptTemplate:  e.Prompt,
		DamageLevels:    e.DamageLevels,
		ReviewThreshold: threshold,
	}, nil
}
