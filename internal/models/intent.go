package models

// IntentType labels a query as on-topic ("cinema") or off-topic ("other").
type IntentType string

const (
	IntentCinema IntentType = "cinema"
	IntentOther  IntentType = "other"
)

// ClassifiedIntent is the decoded model output. Exactly one variant is
// populated: Titles for cinema, Reply for other.
type ClassifiedIntent struct {
	Intent IntentType `json:"intent"`
	Titles []string   `json:"titles,omitempty"`
	Reply  string     `json:"reply,omitempty"`
}
