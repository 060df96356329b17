package game

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/cuberoll/levels"
	"github.com/milk9111/cuberoll/progress"
	"github.com/milk9111/cuberoll/world"
)

const frame = 16 * time.Millisecond

var spawn = world.Coord{X: 0, Y: 1, Z: 0}

func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
}

// floor fills an x/z rectangle at height y with normal tiles.
func floor(w *world.World, x0, x1, z0, z1, y int) {
	for x := x0; x <= x1; x++ {
		for z := z0; z <= z1; z++ {
			w.Place(world.NewTile(world.TypeNormal, world.Coord{X: x, Y: y, Z: z}))
		}
	}
}

func place(w *world.World, typ world.Type, x, y, z int) *world.Tile {
	t := world.NewTile(typ, world.Coord{X: x, Y: y, Z: z})
	w.Place(t)
	return t
}

func start(t *testing.T, w *world.World, cfg Config) *Session {
	t.Helper()
	if cfg.Now == nil {
		cfg.Now = fixedNow
	}
	s := New(w, spawn, cfg)
	require.Equal(t, Assembling, s.State())
	settle(t, s)
	require.Equal(t, Idle, s.State())
	s.Events()
	return s
}

// settle ticks until the cube can take input again.
func settle(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if st := s.State(); st == Idle || st == Balancing {
			return
		}
		s.Update(frame)
	}
	t.Fatalf("cube never settled, state %s", s.State().Name())
}

func run(s *Session, d time.Duration) {
	for el := time.Duration(0); el < d; el += frame {
		s.Update(frame)
	}
}

func eventTypes(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestRollOntoFloor(t *testing.T) {
	for _, dir := range world.Cardinals {
		t.Run(dir.String(), func(t *testing.T) {
			w := world.New()
			floor(w, -1, 1, -1, 1, 0)
			s := start(t, w, Config{})

			require.True(t, s.RequestMove(dir))
			assert.Equal(t, Rolling, s.State())
			settle(t, s)

			assert.Equal(t, Idle, s.State())
			assert.Equal(t, spawn.Add(dir), s.Player().Cell)
			assertVec(t, spawn.Add(dir).Vec(), s.Player().Position)
			assert.True(t, s.Player().Orientation.ApproxEqual(mgl64.QuatIdent()))
			assert.Equal(t, dir, s.Player().LastDir)
		})
	}
}

func TestClimbOntoObstacle(t *testing.T) {
	for _, dir := range world.Cardinals {
		t.Run(dir.String(), func(t *testing.T) {
			w := world.New()
			floor(w, -1, 1, -1, 1, 0)
			obstacle := spawn.Add(dir)
			place(w, world.TypeNormal, obstacle.X, obstacle.Y, obstacle.Z)
			s := start(t, w, Config{})

			require.True(t, s.RequestMove(dir))
			assert.Equal(t, Climbing, s.State())
			settle(t, s)

			want := spawn.Add(dir).Add(world.Up)
			assert.Equal(t, Idle, s.State())
			assert.Equal(t, want, s.Player().Cell)
			assertVec(t, want.Vec(), s.Player().Position)
		})
	}
}

func TestMoveRejections(t *testing.T) {
	w := world.New()
	floor(w, -1, 1, -1, 1, 0)
	place(w, world.TypeNormal, 1, 1, 0)
	place(w, world.TypeNormal, 1, 2, 0)
	s := start(t, w, Config{})

	assert.False(t, s.RequestMove(world.Right), "no headroom")
	assert.False(t, s.RequestMove(world.Up), "not a cardinal")
	assert.False(t, s.RequestMove(world.Coord{X: 1, Z: 1}), "diagonal")
	assert.Equal(t, Idle, s.State())

	require.True(t, s.RequestMove(world.Left))
	assert.False(t, s.RequestMove(world.Back), "busy rolling")
	settle(t, s)
	assert.Equal(t, world.Coord{X: -1, Y: 1, Z: 0}, s.Player().Cell)
}

func TestOnewayFloor(t *testing.T) {
	w := world.New()
	place(w, world.TypeNormal, 0, 0, 0)
	place(w, world.TypeOneway, 1, 0, 0)
	place(w, world.TypeOneway, 0, 0, -1)
	s := start(t, w, Config{})

	assert.False(t, s.RequestMove(world.Right))
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, spawn, s.Player().Cell)

	require.True(t, s.RequestMove(world.Forward))
	settle(t, s)
	assert.Equal(t, world.Coord{X: 0, Y: 1, Z: -1}, s.Player().Cell)
}

func TestRollOffLedgeBalancesThenFalls(t *testing.T) {
	w := world.New()
	place(w, world.TypeNormal, 0, 0, 0)
	s := start(t, w, Config{})

	require.True(t, s.RequestMove(world.Right))
	settle(t, s)
	require.Equal(t, Balancing, s.State())
	assert.Equal(t, world.Right, s.Player().BalanceDir)
	assert.Equal(t, world.Coord{X: 1, Y: 1, Z: 0}, s.Player().Cell)
	assertVec(t, world.Coord{X: 1, Y: 1, Z: 0}.Vec(), s.Player().Position)
	assert.False(t, s.Player().Orientation.ApproxEqual(mgl64.QuatIdent()))

	require.True(t, s.RequestMove(world.Right))
	assert.Equal(t, Falling, s.State())

	settle(t, s)
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, spawn, s.Player().Cell)
	assert.Contains(t, eventTypes(s.Events()), EventRespawn)
}

func TestBalancingOtherDirectionRollsAgain(t *testing.T) {
	w := world.New()
	place(w, world.TypeNormal, 0, 0, 0)
	place(w, world.TypeNormal, 1, 0, 1)
	s := start(t, w, Config{})

	require.True(t, s.RequestMove(world.Right))
	settle(t, s)
	require.Equal(t, Balancing, s.State())

	require.True(t, s.RequestMove(world.Back))
	assert.Equal(t, Rolling, s.State())
	settle(t, s)
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, world.Coord{X: 1, Y: 1, Z: 1}, s.Player().Cell)
}

func TestBalancingAccruesEdgeTime(t *testing.T) {
	w := world.New()
	place(w, world.TypeNormal, 0, 0, 0)
	s := start(t, w, Config{})

	require.True(t, s.RequestMove(world.Right))
	settle(t, s)
	require.Equal(t, Balancing, s.State())
	before := s.EdgeTime
	run(s, 480*time.Millisecond)
	assert.Equal(t, 30*frame, s.EdgeTime-before)
	assert.Equal(t, Balancing, s.State())
}

func TestReleasingInputWhileBalancingFalls(t *testing.T) {
	w := world.New()
	place(w, world.TypeNormal, 0, 0, 0)
	s := start(t, w, Config{})

	held := IntentOf(world.Right)
	for i := 0; i < 30; i++ {
		s.Input(held)
		s.Update(frame)
	}
	require.Equal(t, Balancing, s.State())

	s.Input(Intent{})
	assert.Equal(t, Falling, s.State())
}

func TestInputPriority(t *testing.T) {
	dir, ok := IntentOf(world.Right, world.Left, world.Forward).Direction()
	require.True(t, ok)
	assert.Equal(t, world.Forward, dir)

	dir, ok = IntentOf(world.Right, world.Back).Direction()
	require.True(t, ok)
	assert.Equal(t, world.Back, dir)

	_, ok = Intent{}.Direction()
	assert.False(t, ok)

	prev := IntentOf(world.Left)
	now := IntentOf(world.Left, world.Right)
	pressed, ok := now.Pressed(prev).Direction()
	require.True(t, ok)
	assert.Equal(t, world.Right, pressed)
	assert.False(t, now.Released(prev))
	assert.True(t, Intent{}.Released(prev))
}

func TestRespawnBelowDeathLine(t *testing.T) {
	w := world.New()
	place(w, world.TypeNormal, 0, 0, 0)
	s := start(t, w, Config{})
	s.Player().Scale = shrunkScale

	require.True(t, s.RequestMove(world.Left))
	settle(t, s)
	require.True(t, s.RequestMove(world.Left))
	require.Equal(t, Falling, s.State())

	respawned := false
	s.cfg.Hooks.Respawn = func(world.Coord) { respawned = true }
	settle(t, s)
	assert.True(t, respawned)
	assert.Equal(t, fullScale, s.Player().Scale)
	assert.Equal(t, spawn, s.Player().Cell)
}

func TestFallLandsOnLowerFloor(t *testing.T) {
	w := world.New()
	place(w, world.TypeNormal, 0, 0, 0)
	place(w, world.TypeNormal, 1, -3, 0)
	s := start(t, w, Config{})

	require.True(t, s.RequestMove(world.Right))
	settle(t, s)
	require.True(t, s.RequestMove(world.Right))
	settle(t, s)

	assert.Equal(t, Idle, s.State())
	assert.Equal(t, world.Coord{X: 1, Y: -2, Z: 0}, s.Player().Cell)
	assertVec(t, world.Coord{X: 1, Y: -2, Z: 0}.Vec(), s.Player().Position)
}

func TestReachingEndCompletesLevel(t *testing.T) {
	cases := []struct {
		name  string
		build func(w *world.World)
		moves []world.Coord
	}{
		{
			name: "around the grid",
			build: func(w *world.World) {
				floor(w, 0, 2, 0, 2, 0)
				place(w, world.TypeNormal, 3, 0, 0)
				place(w, world.TypeNormal, 3, 0, 1)
				place(w, world.TypeNormal, 3, 0, 2)
				place(w, world.TypeEnd, 3, 0, 3)
			},
			moves: []world.Coord{world.Right, world.Right, world.Right, world.Back, world.Back, world.Back},
		},
		{
			name: "right right forward forward",
			build: func(w *world.World) {
				floor(w, 0, 2, 0, 2, 0)
				place(w, world.TypeNormal, 2, 0, -1)
				place(w, world.TypeEnd, 2, 0, -2)
			},
			moves: []world.Coord{world.Right, world.Right, world.Forward, world.Forward},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := world.New()
			c.build(w)
			store := progress.NewMemoryStore()
			var got []Result
			s := start(t, w, Config{
				Level: 2,
				Store: store,
				Hooks: Hooks{LevelComplete: func(r Result) { got = append(got, r) }},
			})

			for _, m := range c.moves {
				require.False(t, s.Completed())
				require.True(t, s.RequestMove(m), "move %s", m)
				settle(t, s)
			}

			require.True(t, s.Completed())
			require.Len(t, got, 1)
			assert.Equal(t, 2, got[0].Level)
			assert.True(t, got[0].Improved)
			assert.Greater(t, got[0].Record.Seconds, 0.0)
			assert.Equal(t, progress.FallbackRank(got[0].Record.Seconds, 0), got[0].Record.Rank)
			assert.Equal(t, fixedNow(), got[0].Record.At)

			unlocked, err := store.Unlocked()
			require.NoError(t, err)
			assert.Contains(t, unlocked, 3)
			best, err := store.Best(2)
			require.NoError(t, err)
			assert.Equal(t, got[0].Record, best)
			ghost, err := store.Ghost(2)
			require.NoError(t, err)
			assert.NotEmpty(t, ghost.Samples)

			elapsed := s.Elapsed
			assert.False(t, s.RequestMove(world.Left))
			s.Update(time.Second)
			assert.Equal(t, elapsed, s.Elapsed)
		})
	}
}

func TestCompletionSubtractsEdgeTime(t *testing.T) {
	w := world.New()
	place(w, world.TypeNormal, 0, 0, 0)
	place(w, world.TypeEnd, 1, 0, 1)
	var res Result
	s := start(t, w, Config{Hooks: Hooks{LevelComplete: func(r Result) { res = r }}})

	require.True(t, s.RequestMove(world.Right))
	settle(t, s)
	require.Equal(t, Balancing, s.State())
	run(s, 2*time.Second)
	require.True(t, s.RequestMove(world.Back))
	settle(t, s)

	require.True(t, s.Completed())
	want := (s.Elapsed - s.EdgeTime).Seconds()
	assert.InDelta(t, want, res.Record.Seconds, 1e-9)
	assert.Less(t, res.Record.Seconds, 1.5)
}

func TestLoadBuiltinLevelAndRestart(t *testing.T) {
	doc, err := levels.LoadLevelFromFS("01_intro")
	require.NoError(t, err)
	s, err := Load(doc, Config{Now: fixedNow})
	require.NoError(t, err)
	settle(t, s)

	for _, m := range []world.Coord{world.Right, world.Right, world.Right, world.Back, world.Back, world.Back} {
		require.True(t, s.RequestMove(m))
		settle(t, s)
	}
	require.True(t, s.Completed())

	s.Restart()
	assert.False(t, s.Completed())
	assert.Equal(t, Assembling, s.State())
	assert.Zero(t, s.Elapsed)
	assert.Equal(t, len(doc.Blocks), s.World().Len())
	settle(t, s)
	assert.Equal(t, doc.SpawnCoord(), s.Player().Cell)
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	_, err := Load(&levels.Document{}, Config{})
	assert.ErrorIs(t, err, levels.ErrMalformed)
}

func TestRecorderSamplesOnInterval(t *testing.T) {
	w := world.New()
	place(w, world.TypeNormal, 0, 0, 0)
	s := New(w, spawn, Config{Now: fixedNow})

	run(s, time.Second)
	tr := s.Trace()
	require.NotEmpty(t, tr.RunID)
	// 63 frames of 16ms: samples at 0, 100ms ... 1000ms.
	assert.Len(t, tr.Samples, 11)
	assert.Equal(t, 0.0, tr.Samples[0].T)
	assert.InDelta(t, 0.5, tr.Samples[5].T, 1e-9)
	assert.Equal(t, [4]float64{1, 0, 0, 0}, tr.Samples[10].Rot)

	s.Restart()
	assert.NotEqual(t, tr.RunID, s.Trace().RunID)
	assert.Empty(t, s.Trace().Samples)
}
