package pattern

import (
	"fmt"
	"strings"

	"github.com/vytor/patternmaster/internal/models"
)

// FormatLine is the six-field template every generation prompt asks for.
const FormatLine = "<sequence>|<answer>|<hint>|<type>|<difficulty>|<explanation>"

const examples = `Pattern Types:

1. Numeric Patterns:
Easy:
- Arithmetic: 2, 4, 6, 8, ?|10|Add the same amount|numeric|easy|Each term adds 2
- Doubling: 3, 6, 12, 24, ?|48|Compare neighbours|numeric|easy|Each term doubles

Medium:
- Squares: 1, 4, 9, 16, ?|25|Think of n times n|numeric|medium|Perfect squares
- Growing Gaps: 2, 3, 5, 8, 12, ?|17|Look at the differences|numeric|medium|Differences grow by one

Hard:
- Fibonacci-like: 2, 5, 7, 12, 19, ?|31|Use the two previous terms|numeric|hard|Each term is the sum of the previous two
- Alternating Ops: 3, 6, 4, 8, 6, ?|12|Two operations alternate|numeric|hard|Double, subtract 2, repeat

2. Shape Patterns:
Easy:
- Basic: ●, ●●, ●●●, ?|●●●●|Count shapes|shape|easy|Adding one shape
- Alternating: ■, ●, ■, ?|●|Watch pattern|shape|easy|Two shapes alternate

Medium:
- Mixed: ▲■, ■●, ●▲, ?|▲■|Watch pairs|shape|medium|Rotating shapes
- Growing: ■●, ■●●, ■●●●, ?|■●●●●|Count second shape|shape|medium|First stays, second grows

Hard:
- Complex Pairs: ▲■●, ■●▲, ●▲■, ?|▲■●|Watch triple rotation|shape|hard|Three shapes rotate
- Nested: (●■), (●▲), (●■▲●), ?|(●■▲●■)|Pattern grows both sides|shape|hard|Symmetric growth
- Mirror: ▲■▲, ●■●, ▼■▼, ?|△■△|Mirror around center|shape|hard|Center stays fixed

3. Symbolic Mathematical Patterns:
Easy:
- Basic Sum: \sum_{n=1}^1 n, \sum_{n=1}^2 n, ?|\sum_{n=1}^3 n|Look at limits|symbolic|easy|Simple summation
- Simple Product: \prod_{i=1}^1 i, \prod_{i=1}^2 i, ?|\prod_{i=1}^3 i|Study pattern|symbolic|easy|Basic factorial

Medium:
- Summation: \sum_{n=1}^2 n, \sum_{n=1}^3 n, \sum_{n=1}^4 n, ?|\sum_{n=1}^5 n|Look at limits|symbolic|medium|Increasing upper limit
- Integration: \int_0^1 x dx, \int_0^2 x dx, ?|\int_0^3 x dx|Watch limits|symbolic|medium|Integration pattern
- Series: \frac{1}{1}, \frac{1}{2}, \frac{1}{3}, ?|\frac{1}{4}|Study fractions|symbolic|medium|Fraction sequence

Hard:
- Complex Products: \prod_{i=1}^2 i^2, \prod_{i=1}^3 i^2, ?|\prod_{i=1}^4 i^2|Study pattern|symbolic|hard|Square product series
- Double Sums: \sum_{i=1}^2\sum_{j=1}^i j, \sum_{i=1}^3\sum_{j=1}^i j, ?|\sum_{i=1}^4\sum_{j=1}^i j|Nested sums|symbolic|hard|Double summation
- Complex Integration: \int_0^1 x^2 dx, \int_0^2 x^2 dx, ?|\int_0^3 x^2 dx|Study pattern|symbolic|hard|Quadratic integration

4. Logical Patterns:
Easy:
- Sequence: Monday→Tuesday→Wednesday, January→February→March, Summer→?|Fall|Calendar sequence|logical|easy|Time progression pattern
- Word Pairs: Hot-Cold, Up-Down, Left-?|Right|Opposites pattern|logical|easy|Common antonyms
- Letter Series: ABC→CDE→EFG, BCD→DEF→?|FGH|Letter progression|logical|easy|Moving window pattern

Medium:
- Word Math: Big+Bigger=Biggest, Strong+Stronger=?, Small+?=?|Strongest,Smaller,Smallest|Word comparisons|logical|medium|Comparative progression
- Code Pattern: A1→B2→C3, D4→E5→?|F6|Letter-number pairs|logical|medium|Dual sequence pattern
- Word Chain: Water→Ice→Solid, Gas→Liquid→?|Water|State cycles|logical|medium|Physical states

Hard:
- Logic Grid: (Red,Circle,Small), (Blue,Square,Large), (Green,Triangle,?)|Medium|Complete the pattern|logical|hard|Property relationships
- Word Transform: HELLO→WORLD→PEACE, EARTH→SPACE→?|STARS|Word connections|logical|hard|Conceptual progression
- Concept Web: (Sun:Light:Day), (Moon:Dark:Night), (Star:?:?)|Bright,Evening|Complete the trio|logical|hard|Related concepts`

const rules = `RULES:
1. For logical patterns, focus on:
   - Clear relationships between elements
   - Consistent pattern rules
   - Educational value
   - Real-world connections
2. Include explanation that helps understand the logic
3. Avoid ambiguous or culture-specific patterns
4. Ensure single, definitive answers
5. Progress difficulty through complexity, not obscurity

Available Symbols:
● ■ ▲ ◆ ○ □ △ ▽ ◇

FORMAT RULES:
1. For 'shape' type, use only shape patterns
2. For 'symbolic' type, use mathematical notation
3. Include all 6 parts in response
4. Use proper LaTeX notation for mathematical patterns
5. Make patterns progressively more complex with difficulty

EXPLANATION FORMAT:
For Shape Patterns:
- Identify the pattern type (repetition, growth, transformation)
- Explain step by step how shapes change or grow
- Point out the rule for the next shape
Example: "This is a growing pattern where each step adds a new shape to the left. Step 1: □, Step 2: ○□, Step 3: △○□. Following this rule, we add ◇ to the left in Step 4."`

// SystemPrompt builds the primary generation prompt. Sequences in exclude
// are listed as patterns the model must not produce.
func SystemPrompt(exclude []string) string {
	var sb strings.Builder
	sb.WriteString("Generate college-level patterns in this format:\n")
	sb.WriteString(FormatLine)
	sb.WriteString("\n\n")
	sb.WriteString(examples)
	sb.WriteString("\n\n")
	sb.WriteString(rules)
	sb.WriteString("\n\nADDITIONAL RULES:\n")
	sb.WriteString("6. Do not generate any of these patterns: ")
	if len(exclude) == 0 {
		sb.WriteString("(none)")
	} else {
		sb.WriteString(strings.Join(exclude, ", "))
	}
	return sb.String()
}

// UserPrompt names the exact type and difficulty wanted.
func UserPrompt(t models.PatternType, d models.Difficulty) string {
	return fmt.Sprintf("Generate a %s-level %s pattern. Return ONLY the pattern in the specified format with NO additional text.", d, t)
}

// FallbackPrompts is the simplified single-shot prompt: no examples and no
// exclusion list, with type and difficulty fixed in the format line.
func FallbackPrompts(t models.PatternType, d models.Difficulty) (system, user string) {
	system = fmt.Sprintf("Generate a simple %s pattern in this EXACT format:\n<sequence>|<answer>|<hint>|%s|%s|<explanation>", t, t, d)
	return system, "Generate a fallback pattern."
}

// ValidatorPrompt asks the yes/no ambiguity question for a sequence.
func ValidatorPrompt(sequence string) string {
	return fmt.Sprintf("Is the pattern %s ambiguous? Answer only yes or no.", sequence)
}
