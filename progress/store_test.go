package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	mem, err := OpenBadger("")
	require.NoError(t, err)
	disk, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	stores := map[string]Store{
		"memory":        NewMemoryStore(),
		"badger-inmem":  mem,
		"badger-ondisk": disk,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreUnlock(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Unlocked()
			require.NoError(t, err)
			assert.Equal(t, []int{0}, got)

			require.NoError(t, s.Unlock(3))
			require.NoError(t, s.Unlock(1))
			require.NoError(t, s.Unlock(1))
			got, err = s.Unlocked()
			require.NoError(t, err)
			assert.Equal(t, []int{0, 1, 3}, got)
		})
	}
}

func TestStoreSubmitKeepsBest(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Best(0)
			require.ErrorIs(t, err, ErrNotFound)

			improved, err := s.SubmitResult(0, Record{Seconds: 20, Rank: "A", At: at})
			require.NoError(t, err)
			assert.True(t, improved)

			improved, err = s.SubmitResult(0, Record{Seconds: 25, Rank: "B", At: at})
			require.NoError(t, err)
			assert.False(t, improved)

			improved, err = s.SubmitResult(0, Record{Seconds: 20, Rank: "A", Prisms: 2, At: at})
			require.NoError(t, err)
			assert.True(t, improved)

			best, err := s.Best(0)
			require.NoError(t, err)
			assert.Equal(t, 20.0, best.Seconds)
			assert.Equal(t, 2, best.Prisms)
			assert.True(t, at.Equal(best.At))
		})
	}
}

func TestStoreGhostTrace(t *testing.T) {
	tr := Trace{RunID: uuid.NewString()}
	for i := 0; i < 200; i++ {
		tr.Samples = append(tr.Samples, Sample{
			T:   float64(i) * 0.1,
			Pos: [3]float64{float64(i % 5), 1, 0},
			Rot: [4]float64{1, 0, 0, 0},
		})
	}
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Ghost(2)
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.SaveGhost(2, tr))
			got, err := s.Ghost(2)
			require.NoError(t, err)
			assert.Equal(t, tr, got)
		})
	}
}

func TestBadgerStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, s.Unlock(4))
	_, err = s.SubmitResult(4, Record{Seconds: 9.5, Rank: "S"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenBadger(dir)
	require.NoError(t, err)
	defer s.Close()
	levels, err := s.Unlocked()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4}, levels)
	best, err := s.Best(4)
	require.NoError(t, err)
	assert.Equal(t, "S", best.Rank)
}
