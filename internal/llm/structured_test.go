package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questPayload struct {
	Name string `json:"name"`
	XP   int    `json:"xp"`
}

func TestExtractJSONArray_Clean(t *testing.T) {
	raw := `[{"name":"Walk","xp":10},{"name":"Read","xp":20}]`
	got, err := ExtractJSONArray[questPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, []questPayload{{"Walk", 10}, {"Read", 20}}, got)
}

func TestExtractJSONArray_FencedWithProse(t *testing.T) {
	raw := "Here are your quests:\n```json\n[{\"name\":\"Stretch\",\"xp\":5}]\n```\nGood luck!"
	got, err := ExtractJSONArray[questPayload](raw)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Stretch", got[0].Name)
}

func TestExtractJSONArray_BracketsInsideStrings(t *testing.T) {
	raw := `[{"name":"Review [old] notes","xp":15}]`
	got, err := ExtractJSONArray[questPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, "Review [old] notes", got[0].Name)
}

func TestExtractJSONArray_ObjectIsNotArray(t *testing.T) {
	_, err := ExtractJSONArray[questPayload](`{"name":"Walk","xp":10}`)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONArray_WrongElementShape(t *testing.T) {
	_, err := ExtractJSONArray[questPayload](`[{"name":"Walk","xp":"ten"}]`)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONArray_Truncated(t *testing.T) {
	_, err := ExtractJSONArray[questPayload](`[{"name":"Walk","xp":10},`)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONArray_NoArray(t *testing.T) {
	_, err := ExtractJSONArray[questPayload]("I don't know what you mean.")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONArray_CommentsAndLeadingDecimals(t *testing.T) {
	type scored struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}
	raw := "[\n  // first pick\n  {\"name\":\"Walk // keep\",\"score\":.5},\n" +
		"  /* second */ {\"name\":\"Run .5k\",\"score\": -.25}\n]"

	got, err := ExtractJSONArray[scored](raw)
	require.NoError(t, err)
	assert.Equal(t, []scored{{"Walk // keep", 0.5}, {"Run .5k", -0.25}}, got)
}

func TestExtractJSONArray_EscapedQuoteInString(t *testing.T) {
	raw := `[{"name":"Say \"hi]\" twice","xp":5}]`
	got, err := ExtractJSONArray[questPayload](raw)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `Say "hi]" twice`, got[0].Name)
}

func TestExtractJSONArray_ProseOutsideFences(t *testing.T) {
	raw := "Some text\n```\n[{\"name\":\"Nap\",\"xp\":8}]\n```\nMore text"
	got, err := ExtractJSONArray[questPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, []questPayload{{"Nap", 8}}, got)
}
