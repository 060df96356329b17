package game

import "time"

// System is one per-frame step of the session update.
type System interface {
	Update(s *Session, dt time.Duration)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(s *Session, dt time.Duration)

func (f SystemFunc) Update(s *Session, dt time.Duration) { f(s, dt) }

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(session *Session, dt time.Duration) {
	for _, system := range s.systems {
		system.Update(session, dt)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
