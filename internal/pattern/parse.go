package pattern

import (
	"fmt"
	"strings"

	"github.com/vytor/patternmaster/internal/errors"
	"github.com/vytor/patternmaster/internal/models"
)

const fieldCount = 6

var fieldNames = [fieldCount]string{"sequence", "answer", "hint", "type", "difficulty", "explanation"}

// Parse splits raw model output on '|' into the six pattern fields. Anything
// other than exactly six non-empty trimmed segments is a FORMAT_ERROR.
func Parse(raw string) (models.Pattern, error) {
	parts := strings.Split(strings.TrimSpace(raw), "|")
	if len(parts) != fieldCount {
		return models.Pattern{}, errors.NewFormatError(fmt.Sprintf("invalid pattern format: expected %d parts, got %d", fieldCount, len(parts)))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return models.Pattern{}, errors.NewFormatError(fmt.Sprintf("invalid pattern format: missing %s", fieldNames[i]))
		}
	}
	return models.Pattern{
		Sequence:    parts[0],
		Answer:      parts[1],
		Hint:        parts[2],
		Type:        models.PatternType(parts[3]),
		Difficulty:  models.Difficulty(parts[4]),
		Explanation: parts[5],
	}, nil
}
