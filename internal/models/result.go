package models

import "github.com/ibanezbetes/trinity-sub010/internal/common/errors"

// OrchestrationResult is the sole contract exposed to callers.
//
// Invariants: intent "other" implies Reply is set and Titles/Movies are
// empty; intent "cinema" implies Movies is a verified subsequence of Titles.
type OrchestrationResult struct {
	Intent           IntentType             `json:"intent"`
	Titles           []string               `json:"titles,omitempty"`
	Reply            string                 `json:"reply,omitempty"`
	Movies           []VerifiedMovie        `json:"movies,omitempty"`
	UsedFallback     bool                   `json:"usedFallback"`
	FailureCategory  errors.FailureCategory `json:"failureCategory,omitempty"`
	DetectedGenres   []string               `json:"detectedGenres,omitempty"`
	ProcessingTimeMs int64                  `json:"processingTimeMs"`
}
