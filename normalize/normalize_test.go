package normalize

import (
	"errors"
	"testing"

	"github.com/revelaction/curiam/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffset(t *testing.T) {
	offset, ok, err := Offset([]string{"_", "Quote[5]", "Quote[5]|Cue[7]"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, offset)
}

func TestOffsetSkipsStandalone(t *testing.T) {
	offset, ok, err := Offset([]string{"Cue", "_", "Cue|Quote[12]"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 11, offset)
}

func TestOffsetWithoutGroupedIds(t *testing.T) {
	_, ok, err := Offset([]string{"_", "Cue", "_"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOffsetMalformed(t *testing.T) {
	_, _, err := Offset([]string{"_", "Quote[a]"})
	assert.ErrorIs(t, err, label.ErrMalformed)
}

func TestSentenceMapsFirstIdToOne(t *testing.T) {
	refs, err := Sentence([]string{"Cue", "Quote[5]", "Quote[5]|Term[6]", "Quote[5]|Cue", "_"})
	require.NoError(t, err)

	assert.Equal(t, [][]label.Ref{
		{label.NewStandalone("Cue")},
		{label.NewGrouped("Quote", 1)},
		{label.NewGrouped("Quote", 1), label.NewGrouped("Term", 2)},
		{label.NewGrouped("Quote", 1), label.NewStandalone("Cue")},
		nil,
	}, refs)
}

func TestSentenceKeepsGaps(t *testing.T) {
	refs, err := Sentence([]string{"Quote[82]", "Quote[82]|Quote[85]"})
	require.NoError(t, err)

	assert.Equal(t, []label.Ref{label.NewGrouped("Quote", 1), label.NewGrouped("Quote", 4)}, refs[1])
}

func TestSentenceNonMonotonic(t *testing.T) {
	_, err := Sentence([]string{"Quote[10]", "Quote[9]"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonMonotonic))

	var nerr *NonMonotonicError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, 1, nerr.Token)
	assert.Equal(t, 9, nerr.Id)
	assert.Equal(t, 10, nerr.Base)
}

func TestSentenceMalformedNamesToken(t *testing.T) {
	_, err := Sentence([]string{"_", "_", "Quote[3"})
	require.Error(t, err)
	assert.ErrorIs(t, err, label.ErrMalformed)
	assert.Contains(t, err.Error(), "token 2")
}

func TestSentenceUsesOffset(t *testing.T) {
	labels := []string{"Cue", "_", "Quote[12]|Term[14]", "Term[14]"}

	offset, ok, err := Offset(labels)
	require.NoError(t, err)
	require.True(t, ok)

	refs, err := Sentence(labels)
	require.NoError(t, err)
	assert.Equal(t, []label.Ref{label.NewGrouped("Quote", 12-offset), label.NewGrouped("Term", 14-offset)}, refs[2])
	assert.Equal(t, []label.Ref{label.NewStandalone("Cue")}, refs[0])
}

func TestOffsetMalformedNamesToken(t *testing.T) {
	_, _, err := Offset([]string{"Quote[1]", "[2]"})
	assert.ErrorIs(t, err, label.ErrMalformed)
	assert.Contains(t, err.Error(), "token 1")
}
