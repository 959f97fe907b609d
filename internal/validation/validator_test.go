package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	return New(DefaultVocabulary())
}

// ---------------------------------------------------------------------------
// Submission form
// ---------------------------------------------------------------------------

func TestSubmission_Valid(t *testing.T) {
	v := newTestValidator(t)

	errs := v.Submission(SubmissionForm{Name: "Ali", Mobile: "09123456789", Message: "hello"})
	assert.Empty(t, errs)
}

func TestSubmission_NameBlank(t *testing.T) {
	v := newTestValidator(t)

	for _, name := range []string{"", " ", "\t\n "} {
		errs := v.Submission(SubmissionForm{Name: name, Mobile: "09123456789", Message: "hello"})
		require.Len(t, errs, 1, "name %q", name)
		assert.Equal(t, "name", errs[0].Field)
		assert.Equal(t, "Name is required.", errs[0].Message)
	}
}

func TestSubmission_MobileLength(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		mobile string
		ok     bool
	}{
		{"0912345678", false},
		{"09123456789", true},
		{"989123456789", true},
		{"9891234567890", false},
		{"  09123456789  ", true},
		{"abcdefghijk", true},
		{"", false},
	}

	for _, tt := range tests {
		errs := v.Submission(SubmissionForm{Name: "Ali", Mobile: tt.mobile, Message: "hello"})
		if tt.ok {
			assert.Empty(t, errs, "mobile %q", tt.mobile)
			continue
		}
		require.Len(t, errs, 1, "mobile %q", tt.mobile)
		assert.Equal(t, "mobile", errs[0].Field)
		assert.Contains(t, errs[0].Message, "11")
	}
}

func TestSubmission_CollectsAllViolations(t *testing.T) {
	v := newTestValidator(t)

	errs := v.Submission(SubmissionForm{Name: " ", Mobile: "123", Message: ""})
	require.Len(t, errs, 3)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "mobile", errs[1].Field)
	assert.Equal(t, "message", errs[2].Field)
	assert.Equal(t, "Message is required.", errs[2].Message)
}

// ---------------------------------------------------------------------------
// Contact form
// ---------------------------------------------------------------------------

func TestContactRequest_Valid(t *testing.T) {
	v := newTestValidator(t)

	for _, prefs := range [][]string{
		{},
		{"website", "other"},
		{"وبسایت", "اپلیکیشن", "داشبورد", "سایر"},
	} {
		errs := v.ContactRequest(ContactForm{Name: "Sara", Mobile: "09123456789", Preferences: NewPreferences(prefs...)})
		assert.Empty(t, errs, "preferences %v", prefs)
	}
}

func TestContactRequest_InvalidTagEachReported(t *testing.T) {
	v := newTestValidator(t)

	form := ContactForm{
		Name:        "Sara",
		Mobile:      "09123456789",
		Preferences: NewPreferences("invalid-tag", "website", "Website"),
	}
	errs := v.ContactRequest(form)

	require.Len(t, errs, 2)
	assert.Equal(t, "preferences[0]", errs[0].Field)
	assert.Equal(t, "invalid-tag", errs[0].Value)
	assert.Equal(t, "preferences[2]", errs[1].Field)
	assert.Equal(t, "Invalid preference option", errs[1].Message)
}

func TestContactRequest_PreferencesNotArray(t *testing.T) {
	v := newTestValidator(t)

	for _, body := range []string{
		`{"name":"Sara","mobile":"09123456789"}`,
		`{"name":"Sara","mobile":"09123456789","preferences":null}`,
		`{"name":"Sara","mobile":"09123456789","preferences":"website"}`,
		`{"name":"Sara","mobile":"09123456789","preferences":{"0":"website"}}`,
	} {
		var form ContactForm
		require.NoError(t, json.Unmarshal([]byte(body), &form))

		errs := v.ContactRequest(form)
		require.Len(t, errs, 1, body)
		assert.Equal(t, "preferences", errs[0].Field)
		assert.Equal(t, "Preferences must be an array", errs[0].Message)
	}
}

func TestContactRequest_NonStringElement(t *testing.T) {
	v := newTestValidator(t)

	var form ContactForm
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Sara","mobile":"09123456789","preferences":["website",7]}`), &form))

	errs := v.ContactRequest(form)
	require.Len(t, errs, 1)
	assert.Equal(t, "preferences[1]", errs[0].Field)
}

func TestContactRequest_PersianMessages(t *testing.T) {
	v := newTestValidator(t)

	errs := v.ContactRequest(ContactForm{Name: "", Mobile: "1", Preferences: NewPreferences()})
	require.Len(t, errs, 2)
	assert.Equal(t, "نام الزامی است", errs[0].Message)
	assert.True(t, errs.Has("mobile"))
	assert.True(t, strings.HasPrefix(errs.Error(), "validation failed: name"))
}

// ---------------------------------------------------------------------------
// Vocabulary
// ---------------------------------------------------------------------------

func TestNewVocabulary_RejectsDelimiter(t *testing.T) {
	_, err := NewVocabulary("web,site")
	assert.ErrorIs(t, err, ErrInvalidTag)

	_, err = NewVocabulary(" ")
	assert.ErrorIs(t, err, ErrInvalidTag)

	_, err = NewVocabulary()
	assert.ErrorIs(t, err, ErrInvalidTag)

	_, err = NewVocabulary("a&b")
	assert.ErrorIs(t, err, ErrInvalidTag)

	_, err = NewVocabulary(" padded")
	assert.ErrorIs(t, err, ErrInvalidTag)
}

func TestNewVocabulary_Dedup(t *testing.T) {
	v, err := NewVocabulary("a", "b", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Tags())
	assert.True(t, v.Contains("b"))
	assert.False(t, v.Contains("c"))
}

func TestCustomVocabulary(t *testing.T) {
	vocab, err := NewVocabulary("mobile-app")
	require.NoError(t, err)
	v := New(vocab)

	errs := v.ContactRequest(ContactForm{Name: "Sara", Mobile: "09123456789", Preferences: NewPreferences("website")})
	assert.True(t, errs.Has("preferences[0]"))
}

func TestMalformed(t *testing.T) {
	assert.Equal(t, "body", Malformed("")[0].Field)
	assert.Equal(t, "name", Malformed("name")[0].Field)
}
