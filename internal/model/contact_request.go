package model

import "strings"

// ContactRequestsTable is the table holding preference form submissions.
const ContactRequestsTable = "contactform"

// PreferenceDelimiter separates preference tags in the stored column.
// Vocabulary tags never contain it, so splitting is lossless.
const PreferenceDelimiter = ","

// ContactRequest represents a request sent through the preferences form.
// Preferences holds the validated tags flattened into one delimited string.
type ContactRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Preferences string `json:"preferences"`
}

// Columns returns the insertable columns of a contactform row.
func (c *ContactRequest) Columns() []string {
	return []string{"name", "mobile", "preferences"}
}

// Values returns the row values in Columns order.
func (c *ContactRequest) Values() []any {
	return []any{c.Name, c.Mobile, c.Preferences}
}

// Tags reconstructs the preference list from the stored representation.
func (c *ContactRequest) Tags() []string {
	return SplitPreferences(c.Preferences)
}

// JoinPreferences flattens tags into the stored representation.
func JoinPreferences(tags []string) string {
	return strings.Join(tags, PreferenceDelimiter)
}

// SplitPreferences is the inverse of JoinPreferences. An empty string yields
// an empty list, not a list holding one empty tag.
func SplitPreferences(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, PreferenceDelimiter)
}
