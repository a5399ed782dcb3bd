package model

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  OptionalInt
	}{
		{name: "integer", input: "3", want: Int(3)},
		{name: "padded", input: "  12 ", want: Int(12)},
		{name: "zero", input: "0", want: Int(0)},
		{name: "integral float", input: "2.0", want: Int(2)},
		{name: "blank", input: "", want: NullInt()},
		{name: "whitespace", input: "   ", want: NullInt()},
		{name: "word", input: "abc", want: NullInt()},
		{name: "fraction", input: "2.5", want: NullInt()},
		{name: "nan", input: "NaN", want: NullInt()},
		{name: "infinity", input: "Inf", want: NullInt()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOptionalInt(tt.input))
		})
	}
}

func TestOptionalIntDecodesLeniently(t *testing.T) {
	var m Match
	doc := `{"team1":"A","team2":"B","score1":"2","score2":null,"kills1":"lots","kills2":{"x":1}}`

	require.NoError(t, json.Unmarshal([]byte(doc), &m))

	assert.Equal(t, Int(2), m.ScoreA)
	assert.False(t, m.ScoreB.Valid())
	assert.False(t, m.KillsA.Valid())
	assert.False(t, m.KillsB.Valid())
	assert.False(t, m.HasResult())
}

func TestOptionalIntMissingFieldIsAbsent(t *testing.T) {
	var m Match
	require.NoError(t, json.Unmarshal([]byte(`{"team1":"A","team2":"B","score1":1}`), &m))

	assert.True(t, m.ScoreA.Valid())
	assert.False(t, m.ScoreB.Valid())
	assert.Equal(t, 0, m.KillsA.Or(0))
}

func TestOptionalIntEncodesNull(t *testing.T) {
	data, err := json.Marshal(Match{TeamA: "A", TeamB: "B", ScoreA: Int(4)})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"score1":4`)
	assert.Contains(t, string(data), `"score2":null`)
}

func TestOptionalIntOr(t *testing.T) {
	assert.Equal(t, 7, Int(7).Or(0))
	assert.Equal(t, 0, NullInt().Or(0))
	assert.Equal(t, "", NullInt().String())
	assert.Equal(t, "7", Int(7).String())
}
