package pattern_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/patternmaster/internal/models"
	"github.com/vytor/patternmaster/internal/pattern"
)

func assertOptionSet(t *testing.T, opts []string, answer string) {
	t.Helper()
	assert.Len(t, opts, pattern.OptionCount)
	assert.Contains(t, opts, answer)
	seen := map[string]bool{}
	for _, o := range opts {
		assert.False(t, seen[o], "duplicate option %q", o)
		seen[o] = true
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		pattern models.Pattern
		expect  []string
	}{
		{
			name:    "logical seasons",
			pattern: models.Pattern{Sequence: "Spring→Summer→?", Answer: "Fall", Type: models.PatternLogical},
			expect:  []string{"Winter", "Autumn", "July"},
		},
		{
			name:    "logical colours",
			pattern: models.Pattern{Sequence: "Red→Orange→?", Answer: "Yellow", Type: models.PatternLogical},
			expect:  []string{"Purple", "Brown", "Pink"},
		},
		{
			name:    "logical arrows",
			pattern: models.Pattern{Sequence: "A1→B2→?", Answer: "C3", Type: models.PatternLogical},
			expect:  []string{"Next", "End", "Skip"},
		},
		{
			name:    "logical grid",
			pattern: models.Pattern{Sequence: "(Red,Circle,Small), (Green,Triangle,?)", Answer: "Medium", Type: models.PatternLogical},
			expect:  []string{"Large", "Small", "Round"},
		},
		{
			name:    "logical other",
			pattern: models.Pattern{Sequence: "Hot-Cold, Left-?", Answer: "Right", Type: models.PatternLogical},
			expect:  []string{"Similar", "Different", "None"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := pattern.Options(tt.pattern, rand.New(rand.NewPCG(1, 2)))
			assertOptionSet(t, opts, tt.pattern.Answer)
			for _, e := range tt.expect {
				assert.Contains(t, opts, e)
			}
		})
	}
}

func TestOptions_AnswerCollidesWithDistractor(t *testing.T) {
	p := models.Pattern{Sequence: "Spring→Summer→?", Answer: "Autumn", Type: models.PatternLogical}

	opts := pattern.Options(p, rand.New(rand.NewPCG(3, 4)))

	assertOptionSet(t, opts, "Autumn")
	assert.Contains(t, opts, "Option 4")
}

func TestOptions_Symbolic(t *testing.T) {
	p := models.Pattern{Answer: `\sum_{n=1}^5 n`, Type: models.PatternSymbolic}

	opts := pattern.Options(p, rand.New(rand.NewPCG(5, 6)))

	assertOptionSet(t, opts, p.Answer)
	for _, o := range opts {
		if o != p.Answer {
			assert.Contains(t, o, `\sum_{n=1}^`)
		}
	}
}

func TestOptions_Shapes(t *testing.T) {
	p := models.Pattern{Sequence: "●, ●●, ●●●, ?", Answer: "●●●●", Type: models.PatternShape}

	for seed := uint64(0); seed < 20; seed++ {
		assertOptionSet(t, pattern.Options(p, rand.New(rand.NewPCG(seed, seed))), p.Answer)
	}
}

func TestOptions_Numeric(t *testing.T) {
	p := models.Pattern{Sequence: "2, 4, 6, ?", Answer: "8", Type: models.PatternNumeric}

	for seed := uint64(0); seed < 20; seed++ {
		assertOptionSet(t, pattern.Options(p, rand.New(rand.NewPCG(seed, 1))), "8")
	}
}
