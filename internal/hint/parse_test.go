package hint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/patternmaster/internal/hint"
)

func TestParseConfidence(t *testing.T) {
	tests := map[string]float64{
		"0.8":             0.8,
		"  0.25\n":        0.25,
		"1":               1,
		"1.7":             1,
		"-0.2":            0,
		"0.85.":           0.85,
		"0.7 - good hint": 0.7,
		".5":              0.5,
		"8e-1":            0.8,
		"0.8 out of 1":    0.8,
		"":                hint.DefaultConfidence,
		"high":            hint.DefaultConfidence,
		"about 0.6":       hint.DefaultConfidence,
		"NaN":             hint.DefaultConfidence,
	}
	for in, want := range tests {
		assert.Equal(t, want, hint.ParseConfidence(in), "input %q", in)
	}
}

func TestParseSections_CRLFAndHeadings(t *testing.T) {
	s := hint.ParseSections("Key Observation: x\r\n\r\nHINT: look left\r\n\r\nAnalysis: simple\r\n\r\nTips:\r\n• one\r\n\r\nRelated Concepts: sets\r\n\r\nextra")

	assert.Equal(t, "x", s.KeyObservation)
	assert.Equal(t, "look left", s.Hint)
	assert.Equal(t, "simple", s.Analysis)
	assert.Equal(t, []string{"one"}, s.Tips)
	assert.Equal(t, "sets", s.RelatedConcepts)
}

func TestParseSections_Empty(t *testing.T) {
	s := hint.ParseSections("")

	assert.Empty(t, s.Hint)
	assert.Empty(t, s.Tips)
}
