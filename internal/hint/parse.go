package hint

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultConfidence is used when the rating reply does not start with a number.
const DefaultConfidence = 0.9

var (
	blankLine     = regexp.MustCompile(`\n[ \t]*\n`)
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// Sections are the five blocks of a tutoring reply, headings removed.
type Sections struct {
	KeyObservation  string
	Hint            string
	Analysis        string
	Tips            []string
	RelatedConcepts string
}

// ParseSections splits text on blank lines. Missing trailing sections are
// left empty and anything past the fifth block is ignored.
func ParseSections(text string) Sections {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	blocks := blankLine.Split(text, -1)
	block := func(i int) string {
		if i < len(blocks) {
			return strings.TrimSpace(blocks[i])
		}
		return ""
	}

	return Sections{
		KeyObservation:  stripHeading(block(0), "Key Observation:"),
		Hint:            stripHeading(block(1), "Hint:"),
		Analysis:        stripHeading(block(2), "Analysis:"),
		Tips:            splitTips(stripHeading(block(3), "Tips:")),
		RelatedConcepts: stripHeading(block(4), "Related Topics:", "Related Concepts:"),
	}
}

func stripHeading(s string, headings ...string) string {
	for _, h := range headings {
		if len(s) >= len(h) && strings.EqualFold(s[:len(h)], h) {
			return strings.TrimSpace(s[len(h):])
		}
	}
	return s
}

func splitTips(s string) []string {
	tips := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		for _, bullet := range []string{"- ", "* ", "• "} {
			line = strings.TrimPrefix(line, bullet)
		}
		if line = strings.TrimSpace(line); line != "" {
			tips = append(tips, line)
		}
	}
	return tips
}

// ParseConfidence reads the number the rating reply starts with, so "0.85."
// and "0.7 - good hint" both count. Replies without a leading number get
// DefaultConfidence; the result is clamped into [0, 1].
func ParseConfidence(text string) float64 {
	num := leadingNumber.FindString(strings.TrimSpace(text))
	if num == "" {
		return DefaultConfidence
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) {
		return DefaultConfidence
	}
	return math.Max(0, math.Min(1, v))
}
