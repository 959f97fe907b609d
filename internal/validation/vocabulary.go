package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/farawebdata/backend/internal/model"
	"github.com/farawebdata/backend/internal/sanitize"
)

// DefaultPreferenceTags are the preference options offered by the contact
// form: the source-locale literals followed by their Latin names. Values are
// compared and stored verbatim.
var DefaultPreferenceTags = []string{
	"وبسایت",
	"اپلیکیشن",
	"داشبورد",
	"سایر",
	"website",
	"application",
	"dashboard",
	"other",
}

// Vocabulary is an immutable set of allowed preference tags.
type Vocabulary struct {
	tags []string
	set  map[string]struct{}
}

// NewVocabulary builds a Vocabulary. Tags must be non-empty, must not contain
// the preference delimiter and must be unchanged by sanitize.Text; duplicates
// are collapsed.
func NewVocabulary(tags ...string) (*Vocabulary, error) {
	v := &Vocabulary{set: make(map[string]struct{}, len(tags))}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return nil, fmt.Errorf("%w: empty tag", ErrInvalidTag)
		}
		if strings.Contains(tag, model.PreferenceDelimiter) {
			return nil, fmt.Errorf("%w: %q contains %q", ErrInvalidTag, tag, model.PreferenceDelimiter)
		}
		if sanitize.Text(tag) != tag {
			return nil, fmt.Errorf("%w: %q must be trimmed, NFC and free of markup characters", ErrInvalidTag, tag)
		}
		if _, ok := v.set[tag]; ok {
			continue
		}
		v.set[tag] = struct{}{}
		v.tags = append(v.tags, tag)
	}
	if len(v.tags) == 0 {
		return nil, fmt.Errorf("%w: vocabulary is empty", ErrInvalidTag)
	}
	return v, nil
}

// DefaultVocabulary returns the vocabulary built from DefaultPreferenceTags.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(DefaultPreferenceTags...)
	if err != nil {
		panic(err)
	}
	return v
}

// Contains reports whether tag is an allowed member.
func (v *Vocabulary) Contains(tag string) bool {
	_, ok := v.set[tag]
	return ok
}

// Tags returns the members in declaration order.
func (v *Vocabulary) Tags() []string {
	return slices.Clone(v.tags)
}
