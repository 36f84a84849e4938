package quiz

import "time"

// Attempt is one recorded answer event. Attempts are append-only: history
// is accumulated, never edited. Multiple attempts may exist for the same
// question across sessions (re-practice).
type Attempt struct {
	// QuestionID references a question in the bank. The reference may
	// dangle after the question is deleted; aggregators skip unresolved IDs.
	QuestionID string `json:"questionId"`

	// SelectedIndex is the option index the user chose.
	SelectedIndex int `json:"selectedIndex"`

	// Correct records whether SelectedIndex matched the question's
	// correct index at the time of recording.
	Correct bool `json:"correct"`

	// TimeTakenSecs is the elapsed wall-clock seconds for this question.
	TimeTakenSecs int `json:"timeTakenSecs"`

	// CreatedAt is when the attempt was recorded.
	CreatedAt time.Time `json:"createdAt"`
}

// DocumentStatus is the terminal processing state of an uploaded document.
type DocumentStatus string

const (
	DocumentProcessed DocumentStatus = "processed"
	DocumentFailed    DocumentStatus = "failed"
)

// Document is a log entry recorded once per processed file. Display-only;
// nothing downstream depends on it besides the dashboard's uploads listing.
type Document struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	UploadedAt    time.Time      `json:"uploadedAt"`
	Status        DocumentStatus `json:"status"`
	QuestionCount int            `json:"questionCount"`
}

// AppState is the top-level persisted aggregate. The state controller holds
// the sole writable copy and pushes every mutation back to storage as a
// full-document overwrite.
type AppState struct {
	Questions []Question `json:"questions"`
	Attempts  []Attempt  `json:"attempts"`
	Documents []Document `json:"documents"`
}
