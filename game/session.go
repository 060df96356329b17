package game

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/cuberoll/common"
	"github.com/milk9111/cuberoll/levels"
	"github.com/milk9111/cuberoll/prefabs"
	"github.com/milk9111/cuberoll/progress"
	"github.com/milk9111/cuberoll/world"
)

// Hooks are the outer collaborator calls a session makes.
type Hooks struct {
	LevelComplete func(Result)
	Respawn       func(world.Coord)
}

// Result is reported once when the cube settles on an end tile.
type Result struct {
	Level    int
	Record   progress.Record
	Improved bool
}

type Config struct {
	// Level is the progress index of the level being played.
	Level int
	// Tuning defaults to prefabs.DefaultTuning when nil.
	Tuning *prefabs.Tuning
	Store  progress.Store
	Ranker *progress.Ranker
	Hooks  Hooks
	Now    func() time.Time
}

// Session owns one play-through of a level: the world, the cube, timers and
// the per-frame systems. Everything runs on the caller's frame loop.
type Session struct {
	world  *world.World
	doc    *levels.Document
	player *Player

	start world.Coord
	spawn world.Coord

	// Up is the gravity orientation shown to the camera.
	Up mgl64.Vec3

	Elapsed  time.Duration
	EdgeTime time.Duration
	Prisms   int

	completed bool

	cfg       Config
	tuning    prefabs.Tuning
	timers    Timers
	events    EventQueue
	scheduler *Scheduler
	recorder  *Recorder
	intent    Intent
}

// New starts a session on an already populated world.
func New(w *world.World, spawn world.Coord, cfg Config) *Session {
	tuning := prefabs.DefaultTuning()
	if cfg.Tuning != nil {
		tuning = *cfg.Tuning
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Session{
		world:  w,
		player: newPlayer(spawn),
		start:  spawn,
		cfg:    cfg,
		tuning: tuning,
	}
	s.recorder = NewRecorder(tuning.Recording.SampleInterval)
	s.scheduler = NewScheduler(
		SystemFunc(func(s *Session, dt time.Duration) { s.timers.Advance(dt) }),
		PlatformSystem{},
		&LaserSystem{},
		SystemFunc(func(s *Session, dt time.Duration) { s.player.state.Update(s, dt) }),
		s.recorder,
	)
	s.reset()
	return s
}

// Load builds a world from doc and starts a session on it. Restart
// re-applies the document.
func Load(doc *levels.Document, cfg Config) (*Session, error) {
	w := world.New()
	if err := levels.Apply(w, doc); err != nil {
		return nil, err
	}
	s := New(w, doc.SpawnCoord(), cfg)
	s.doc = doc
	return s, nil
}

// Restart rebuilds the level from its document, if any, and drops the cube
// back in at the level start.
func (s *Session) Restart() {
	if s.doc != nil {
		if err := levels.Apply(s.world, s.doc); err != nil {
			log.Printf("game: restart: %v", err)
		}
	}
	s.reset()
}

func (s *Session) reset() {
	s.timers.Clear()
	s.events.flush()
	s.spawn = s.start
	s.Up = common.WorldUp
	s.Elapsed = 0
	s.EdgeTime = 0
	s.Prisms = 0
	s.completed = false
	s.intent = Intent{}
	s.recorder.Reset()

	p := s.player
	p.Scale = fullScale
	p.bouncedOff = nil
	p.LastDir = world.Coord{}
	p.snap(s.start)
	p.state = nil
	s.changeState(Assembling)
}

// Update advances the session by one frame.
func (s *Session) Update(dt time.Duration) {
	if s.completed || dt <= 0 {
		return
	}
	s.Elapsed += dt
	s.scheduler.Update(s, dt)
}

// Input feeds this frame's held directions. Newly pressed directions become
// move requests; holding a direction keeps rolling from Idle; letting go of
// everything while on an edge drops the cube.
func (s *Session) Input(in Intent) {
	prev := s.intent
	s.intent = in
	if s.completed {
		return
	}
	if s.player.state == Balancing && in.Released(prev) {
		s.changeState(Falling)
		return
	}
	if dir, ok := in.Pressed(prev).Direction(); ok {
		s.RequestMove(dir)
		return
	}
	if s.player.state == Idle {
		if dir, ok := in.Direction(); ok {
			s.RequestMove(dir)
		}
	}
}

// SetTuning swaps gameplay constants, e.g. after a hot reload. In-flight
// motions keep the durations they started with.
func (s *Session) SetTuning(t prefabs.Tuning) {
	s.tuning = t
}

func (s *Session) changeState(next PlayerState) {
	p := s.player
	if p.state == next {
		return
	}
	if p.state != nil {
		p.state.Exit(s)
	}
	p.state = next
	next.Enter(s)
}

func (s *Session) respawn() {
	p := s.player
	p.Scale = fullScale
	p.bouncedOff = nil
	p.snap(s.spawn)
	s.changeState(Idle)
	s.events.Push(Event{Type: EventRespawn, Data: s.spawn})
	if s.cfg.Hooks.Respawn != nil {
		s.cfg.Hooks.Respawn(s.spawn)
	}
}

func (s *Session) complete() {
	s.completed = true

	score := s.Elapsed - s.EdgeTime
	if score < 0 {
		score = 0
	}
	secs := score.Seconds()
	rec := progress.Record{
		Seconds: secs,
		Rank:    s.cfg.Ranker.Rank(secs, s.Prisms),
		Prisms:  s.Prisms,
		At:      s.cfg.Now(),
	}
	res := Result{Level: s.cfg.Level, Record: rec}

	if store := s.cfg.Store; store != nil {
		improved, err := store.SubmitResult(s.cfg.Level, rec)
		if err != nil {
			log.Printf("game: level %d: submit result: %v", s.cfg.Level, err)
		}
		res.Improved = improved
		if err := store.Unlock(s.cfg.Level + 1); err != nil {
			log.Printf("game: level %d: unlock next: %v", s.cfg.Level, err)
		}
		if improved {
			if err := store.SaveGhost(s.cfg.Level, s.recorder.Trace()); err != nil {
				log.Printf("game: level %d: save ghost: %v", s.cfg.Level, err)
			}
		}
	}

	s.events.Push(Event{Type: EventComplete, Data: res})
	if s.cfg.Hooks.LevelComplete != nil {
		s.cfg.Hooks.LevelComplete(res)
	}
}

func (s *Session) World() *world.World    { return s.world }
func (s *Session) Player() *Player        { return s.player }
func (s *Session) State() PlayerState     { return s.player.state }
func (s *Session) Spawn() world.Coord     { return s.spawn }
func (s *Session) Completed() bool        { return s.completed }
func (s *Session) Tuning() prefabs.Tuning { return s.tuning }
func (s *Session) Trace() progress.Trace  { return s.recorder.Trace() }
func (s *Session) PendingTimers() int     { return s.timers.Len() }
func (s *Session) Events() []Event        { return s.events.Drain() }
