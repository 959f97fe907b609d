// Package validation holds the field rules of the two intake forms. Rules are
// evaluated after trimming, every violation is collected, and messages follow
// the language of the form they belong to.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const preferenceTag = "preference"

var submissionMessages = map[string]string{
	"name":    "Name is required.",
	"mobile":  "Mobile number must be at least 11 digits.",
	"message": "Message is required.",
}

var contactMessages = map[string]string{
	"name":        "نام الزامی است",
	"mobile":      "موبایل باید 11 رقمی باشد",
	"preferences": "Preferences must be an array",
	preferenceTag: "Invalid preference option",
}

// Validator applies the form rules. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	vocab    *Vocabulary
}

// New creates a Validator whose preference rule accepts members of vocab.
func New(vocab *Vocabulary) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation(preferenceTag, func(fl validator.FieldLevel) bool {
		return vocab.Contains(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: register %s rule: %v", preferenceTag, err))
	}
	return &Validator{validate: v, vocab: vocab}
}

// Vocabulary returns the preference vocabulary in use.
func (v *Validator) Vocabulary() *Vocabulary {
	return v.vocab
}

// Submission validates the body of POST /submit.
func (v *Validator) Submission(form SubmissionForm) Errors {
	return v.fields(form.trimmed(), submissionMessages)
}

// ContactRequest validates the body of POST /formus.
func (v *Validator) ContactRequest(form ContactForm) Errors {
	errs := v.fields(form.trimmed(), contactMessages)

	prefs := form.Preferences
	if !prefs.IsList {
		return append(errs, Violation{Field: "preferences", Message: contactMessages["preferences"]})
	}
	for i, tag := range prefs.Tags {
		if prefs.isString(i) && v.validate.Var(tag, preferenceTag) == nil {
			continue
		}
		errs = append(errs, Violation{
			Field:   fmt.Sprintf("preferences[%d]", i),
			Message: contactMessages[preferenceTag],
			Value:   tag,
		})
	}
	return errs
}

func (v *Validator) fields(form any, messages map[string]string) Errors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "body", Message: err.Error()}}
	}

	errs := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, Violation{
			Field:   fe.Field(),
			Message: messages[fe.Field()],
			Value:   fe.Value(),
		})
	}
	return errs
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
