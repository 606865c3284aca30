package models

import (
	"math/rand/v2"
	"strings"
	"time"
)

type PatternType string

const (
	PatternNumeric  PatternType = "numeric"
	PatternSymbolic PatternType = "symbolic"
	PatternShape    PatternType = "shape"
	PatternLogical  PatternType = "logical"
)

// PatternTypes lists every pattern type in canonical order.
var PatternTypes = []PatternType{PatternNumeric, PatternSymbolic, PatternShape, PatternLogical}

// ParsePatternType normalises s; ok is false for unknown types.
func ParsePatternType(s string) (PatternType, bool) {
	t := PatternType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PatternTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// RandomPatternType picks one of the four types uniformly.
func RandomPatternType() PatternType {
	return PatternTypes[rand.IntN(len(PatternTypes))]
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalises s; ok is false for unknown difficulties.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	default:
		return "", false
	}
}

type Pattern struct {
	Sequence    string      `json:"sequence"`
	Answer      string      `json:"answer"`
	Type        PatternType `json:"type"`
	Difficulty  Difficulty  `json:"difficulty"`
	Hint        string      `json:"hint"`
	Explanation string      `json:"explanation"`
}

// CompletedPattern is an append-only record of a pattern a user finished.
type CompletedPattern struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Pattern
	Correct     bool      `json:"correct"`
	Attempts    int       `json:"attempts"`
	HintsUsed   int       `json:"hintsUsed"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}
