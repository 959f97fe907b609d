package validation

import (
	"encoding/json"
	"strings"
)

// SubmissionForm is the body of POST /submit.
type SubmissionForm struct {
	Name    string `json:"name" validate:"min=1"`
	Mobile  string `json:"mobile" validate:"min=11,max=12"`
	Message string `json:"message" validate:"min=1"`
}

func (f SubmissionForm) trimmed() SubmissionForm {
	return SubmissionForm{
		Name:    strings.TrimSpace(f.Name),
		Mobile:  strings.TrimSpace(f.Mobile),
		Message: strings.TrimSpace(f.Message),
	}
}

// ContactForm is the body of POST /formus.
type ContactForm struct {
	Name        string      `json:"name" validate:"min=1"`
	Mobile      string      `json:"mobile" validate:"min=11,max=12"`
	Preferences Preferences `json:"preferences" validate:"-"`
}

func (f ContactForm) trimmed() ContactForm {
	return ContactForm{
		Name:        strings.TrimSpace(f.Name),
		Mobile:      strings.TrimSpace(f.Mobile),
		Preferences: f.Preferences,
	}
}

// Preferences holds the raw preferences value of a ContactForm. Decoding
// never fails: a value that is not a JSON array leaves IsList false, and
// non-string elements are kept as their JSON text and marked invalid.
type Preferences struct {
	Tags   []string
	IsList bool

	nonString map[int]struct{}
}

// NewPreferences builds a well-formed Preferences list.
func NewPreferences(tags ...string) Preferences {
	if tags == nil {
		tags = []string{}
	}
	return Preferences{Tags: tags, IsList: true}
}

func (p *Preferences) UnmarshalJSON(data []byte) error {
	*p = Preferences{}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil
	}

	p.IsList = true
	p.Tags = make([]string, len(items))
	for i, raw := range items {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			if p.nonString == nil {
				p.nonString = make(map[int]struct{})
			}
			p.nonString[i] = struct{}{}
			p.Tags[i] = string(raw)
			continue
		}
		p.Tags[i] = s
	}
	return nil
}

func (p Preferences) MarshalJSON() ([]byte, error) {
	if !p.IsList {
		return []byte("null"), nil
	}
	return json.Marshal(p.Tags)
}

func (p Preferences) isString(i int) bool {
	_, bad := p.nonString[i]
	return !bad
}
