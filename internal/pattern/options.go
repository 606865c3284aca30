package pattern

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/vytor/patternmaster/internal/models"
)

// OptionCount is the number of multiple-choice options offered.
const OptionCount = 4

const maxDistractorDraws = 32

var (
	shapeSymbols = []string{"●", "■", "▲", "▼", "◆", "○", "□", "△"}
	lastInt      = regexp.MustCompile(`-?\d+`)
)

// Options returns OptionCount distinct shuffled answers, one of which is
// p.Answer. Distractors depend on the pattern type and answer shape; any
// shortfall is filled with "Option N".
func Options(p models.Pattern, rng *rand.Rand) []string {
	opts := []string{p.Answer}
	add := func(o string) {
		if o != "" && len(opts) < OptionCount && !slices.Contains(opts, o) {
			opts = append(opts, o)
		}
	}

	switch {
	case p.Type == models.PatternLogical:
		for _, o := range logicalDistractors(p.Sequence) {
			add(o)
		}
	case strings.Contains(p.Answer, `\`) || hasDigits(p.Answer):
		for i := 0; len(opts) < OptionCount && i < maxDistractorDraws; i++ {
			add(mathDistractor(p.Answer, rng))
		}
	default:
		for i := 0; len(opts) < OptionCount && i < maxDistractorDraws; i++ {
			add(shapeSymbols[rng.IntN(len(shapeSymbols))])
		}
	}

	for n := len(opts) + 1; len(opts) < OptionCount; n++ {
		add(fmt.Sprintf("Option %d", n))
	}

	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

func logicalDistractors(sequence string) []string {
	switch {
	case strings.Contains(sequence, "→"):
		if strings.Contains(sequence, "Spring") || strings.Contains(sequence, "Summer") {
			return []string{"Winter", "Autumn", "July"}
		}
		if strings.Contains(sequence, "Red") || strings.Contains(sequence, "Orange") {
			return []string{"Purple", "Brown", "Pink"}
		}
		return []string{"Next", "End", "Skip"}
	case strings.Contains(sequence, "("):
		return []string{"Large", "Small", "Round"}
	default:
		return []string{"Similar", "Different", "None"}
	}
}

// mathDistractor builds a plausible wrong answer: a summation, product or
// integral with a small upper bound, or the answer with its last integer nudged.
func mathDistractor(answer string, rng *rand.Rand) string {
	n := rng.IntN(3) + 2
	switch {
	case strings.Contains(answer, `\sum`):
		return fmt.Sprintf(`\sum_{n=1}^%d n`, n)
	case strings.Contains(answer, `\prod`):
		return fmt.Sprintf(`\prod_{i=1}^%d i`, n)
	case strings.Contains(answer, `\int`):
		return fmt.Sprintf(`\int_0^%d x`, n)
	}

	loc := lastIntIndex(answer)
	if loc == nil {
		return shapeSymbols[rng.IntN(len(shapeSymbols))]
	}
	v, err := strconv.Atoi(answer[loc[0]:loc[1]])
	if err != nil {
		return ""
	}
	delta := rng.IntN(3) + 1
	if rng.IntN(2) == 0 {
		delta = -delta
	}
	return answer[:loc[0]] + strconv.Itoa(v+delta) + answer[loc[1]:]
}

func lastIntIndex(s string) []int {
	all := lastInt.FindAllStringIndex(s, -1)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

func hasDigits(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
