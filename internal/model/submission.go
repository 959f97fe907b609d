package model

// SubmissionsTable is the table holding general message form submissions.
const SubmissionsTable = "submissions"

// Submission represents a message sent through the general contact form.
type Submission struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}

// Columns returns the insertable columns of a submissions row, in the order
// matched by Values. id and created_at are assigned by the store.
func (s *Submission) Columns() []string {
	return []string{"name", "mobile", "message"}
}

// Values returns the row values in Columns order.
func (s *Submission) Values() []any {
	return []any{s.Name, s.Mobile, s.Message}
}
