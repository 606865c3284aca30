package hint

import (
	"fmt"
	"strings"

	"github.com/vytor/patternmaster/internal/models"
)

const tutorIntro = "You are an advanced mathematics tutor helping college students understand pattern recognition.\n\nFor each attempt, provide increasingly detailed explanations:"

// attemptLevels holds the guidance for attempts 1 to 3; later attempts
// include everything the earlier ones asked for.
var attemptLevels = [MaxAttempts]string{
	`Attempt 1 (Basic Understanding):
- Identify the pattern type (sequence, series, transformation)
- Point out key mathematical notation
- Explain basic concepts involved
- Provide general strategy`,
	`Attempt 2 (Deeper Analysis):
- Break down pattern components
- Explain mathematical relationships
- Show relevant formulas
- Demonstrate pattern progression
- Connect to familiar concepts`,
	`Attempt 3 (Comprehensive Breakdown):
- Detailed step-by-step analysis
- Show work for previous terms
- Explain pattern logic thoroughly
- Provide similar examples
- Connect to advanced concepts
- Everything except direct answer`,
}

const responseFormat = `Format response EXACTLY as:
Key Observation: (Clear mathematical insight)

Hint: (Progressive hint for attempt %d)

Analysis:
1. Pattern Type: (Identify the mathematical structure)
2. Components: (Break down notation and symbols)
3. Progression: (How terms change)
4. Mathematical Logic: (Why this pattern works)
5. Previous Terms: (Show calculations)

Tips:
- Specific technique 1
- Common pitfall to avoid
- Problem-solving strategy

Related Topics:
- Core concept 1 (with brief explanation)
- Core concept 2 (with brief explanation)
- Advanced applications`

// SystemPrompt returns the tutoring prompt for attempt, which must already
// be within [MinAttempts, MaxAttempts].
func SystemPrompt(attempt int) string {
	var sb strings.Builder
	sb.WriteString(tutorIntro)
	for i := 0; i < attempt && i < MaxAttempts; i++ {
		sb.WriteString("\n\n")
		sb.WriteString(attemptLevels[i])
	}
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, responseFormat, attempt)
	return sb.String()
}

func UserPrompt(p models.HintPattern, attempt int) string {
	previous := p.PreviousHints
	if strings.TrimSpace(previous) == "" {
		previous = "none"
	}
	return fmt.Sprintf("Pattern: %s\nType: %s\nAttempt: %d\nDifficulty: %s\nPrevious hints: %s\nProvide detailed educational guidance.",
		p.Sequence, p.Type, attempt, p.Difficulty, previous)
}

const confidenceSystem = "Rate the pattern complexity and hint effectiveness. Return only a number between 0 and 1."

func confidencePrompt(sequence, hint string) string {
	return fmt.Sprintf("Pattern: %s\nHint given: %q\nRate confidence (0-1):", sequence, hint)
}
