package models

// Question is a single entry of the question bank. The bank is loaded from a
// JSON file at startup and never mutated afterwards, so the struct carries no
// database tags.
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Category      string   `json:"category"`
	Explanation   string   `json:"explanation,omitempty"`
}
