package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStore_GetMissingKey(t *testing.T) {
	st := openTestStore(t)

	_, ok, err := st.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.Set("qc_deck_speedrun_best:ch1-greetings", "42"))

	v, ok, err := st.Get("qc_deck_speedrun_best:ch1-greetings")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "42", v)
}

func TestStore_SetOverwrites(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.Set("bestStreak", "3"))
	require.NoError(t, st.Set("bestStreak", "7"))

	v, ok, err := st.Get("bestStreak")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "7", v)
}

func TestStore_KeysPrefix(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.Set("qc_deck_speedrun_best:ch1-greetings", "42"))
	require.NoError(t, st.Set("qc_deck_speedrun_best:ch2-family", "88"))
	require.NoError(t, st.Set("bestStreak", "3"))

	keys, err := st.Keys("qc_deck_speedrun_best:")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"qc_deck_speedrun_best:ch1-greetings",
		"qc_deck_speedrun_best:ch2-family",
	}, keys)
}

func TestStore_Clear(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.Set("bestStreak", "3"))
	require.NoError(t, st.Clear())

	_, ok, err := st.Get("bestStreak")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Set("totalCorrect", "120"))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	v, ok, err := st.Get("totalCorrect")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "120", v)
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom", "qc.db")
	t.Setenv("QUICKCARD_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}
