package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGeminiContents(t *testing.T) {
	contents, system := toGeminiContents([]Message{
		System("format rules"),
		User("Generate a medium-level shape pattern."),
		{Role: RoleAssistant, Content: "■●|■●●|Count|shape|medium|Grows"},
		User("Another one."),
	})

	require.NotNil(t, system)
	require.Len(t, system.Parts, 1)
	assert.Equal(t, "format rules", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, "Another one.", contents[2].Parts[0].Text)
}

func TestToGeminiContents_NoSystem(t *testing.T) {
	contents, system := toGeminiContents([]Message{User("Is the pattern x^1, x^2, ? ambiguous?")})

	assert.Nil(t, system)
	assert.Len(t, contents, 1)
}
