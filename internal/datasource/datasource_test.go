package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcoot/kmnx-league/internal/model"
	"github.com/mcoot/kmnx-league/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "teams": [{"name": "Alpha"}, {"name": "Bravo"}],
  "matches": [
    {"id": "m-1", "date": "2025-10-10", "time": "19:00", "map": "Dust", "team1": "Alpha", "team2": "Bravo",
     "score1": "2", "score2": 1, "kills1": "n/a", "kills2": 40}
  ]
}`

func TestDecodeLenientNumbers(t *testing.T) {
	league, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	require.Len(t, league.Matches, 1)
	m := league.Matches[0]
	assert.Equal(t, model.MatchID("m-1"), m.ID)
	assert.Equal(t, model.TeamName("Alpha"), m.TeamA)
	assert.Equal(t, 2, m.ScoreA.Value())
	assert.True(t, m.HasResult())
	assert.False(t, m.KillsA.Valid())
	assert.Equal(t, 40, m.KillsB.Value())
}

func TestDecodeMissingLists(t *testing.T) {
	league, err := Decode(strings.NewReader(`{}`))
	require.NoError(t, err)

	assert.NotNil(t, league.Teams)
	assert.NotNil(t, league.Matches)
	assert.Empty(t, league.Matches)
}

func TestDecodeWrongTypesKeepRecords(t *testing.T) {
	doc := `{
  "teams": [{"name": 7}, "Loose", {"name": "Bravo"}],
  "matches": [
    {"date": "2025-10-10", "time": "19:00", "team1": 7, "team2": "Bravo", "score1": 1, "score2": 0},
    42,
    {"date": ["2025-10-11"], "time": 1900, "team1": "Bravo", "team2": {"name": "X"}, "map": null}
  ]
}`

	league, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []model.TeamName{"7", "Bravo"}, league.TeamNames())
	require.Len(t, league.Matches, 2)
	assert.Equal(t, model.TeamName("7"), league.Matches[0].TeamA)
	assert.True(t, league.Matches[0].HasResult())

	m := league.Matches[1]
	assert.Equal(t, "", m.Date)
	assert.Equal(t, "1900", m.Time)
	assert.Equal(t, model.TeamName(""), m.TeamB)
	assert.Equal(t, "", m.Map)
}

func TestDecodeListsOfWrongType(t *testing.T) {
	league, err := Decode(strings.NewReader(`{"teams": "none", "matches": 5}`))
	require.NoError(t, err)

	assert.Empty(t, league.Teams)
	assert.Empty(t, league.Matches)
}

func TestDecodeInvalidDocument(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"matches": [`))
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	league, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.TeamName{"Alpha", "Bravo"}, league.TeamNames())
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDoc))
	}))
	defer server.Close()

	league, err := NewHTTPSource(server.URL + "/data.json").Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, league.Matches, 1)
}

func TestHTTPSourceNon2xx(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewHTTPSource(server.URL).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestEmbeddedSource(t *testing.T) {
	league, err := EmbeddedSource{}.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []model.TeamName{"TEST Clan 1", "TEST Clan 2", "TEST Clan 3", "TEST Clan 4"}, league.TeamNames())
	require.Len(t, league.Matches, 2)
	assert.True(t, league.Matches[0].HasResult())
	assert.Equal(t, 52, league.Matches[0].KillsA.Value())
	assert.False(t, league.Matches[1].ScoreA.Valid())
}

type failingSource struct{ err error }

func (f failingSource) Name() string { return "failing" }

func (f failingSource) Load(context.Context) (*model.League, error) { return nil, f.err }

func TestChainFallsThrough(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	chain := NewChain(testutil.NopLogger(),
		failingSource{err: errors.New("offline")},
		NewFileSource(missing),
		EmbeddedSource{},
	)

	league, err := chain.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, league.Teams, 4)
	assert.Equal(t, "failing -> file:"+missing+" -> embedded", chain.Name())
}

func TestChainAllFail(t *testing.T) {
	chain := NewChain(testutil.NopLogger(), failingSource{err: errors.New("offline")})

	_, err := chain.Load(context.Background())
	assert.ErrorIs(t, err, model.ErrNoData)
	assert.Contains(t, err.Error(), "offline")
}

func TestChainEmpty(t *testing.T) {
	_, err := NewChain(testutil.NopLogger()).Load(context.Background())
	assert.ErrorIs(t, err, model.ErrNoData)
}

func TestForLocation(t *testing.T) {
	assert.Nil(t, ForLocation(""))
	assert.IsType(t, &HTTPSource{}, ForLocation("https://example.com/data.json"))
	assert.IsType(t, &FileSource{}, ForLocation("./data.json"))
}
