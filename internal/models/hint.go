package models

type AIHint struct {
	Hint            string   `json:"hint"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	Tips            []string `json:"tips"`
	RelatedConcepts string   `json:"relatedConcepts"`
	AttemptNumber   int      `json:"attemptNumber"`
}

// HintPattern is the pattern as the client sends it when asking for a hint.
type HintPattern struct {
	Pattern
	PreviousHints string `json:"previousHints,omitempty"`
}
