package game

// Event is a gameplay notification for collaborators (audio, HUD, logs).
type Event struct {
	Type string
	Data any
}

const (
	EventRoll       = "roll"
	EventClimb      = "climb"
	EventBalance    = "balance"
	EventFall       = "fall"
	EventLand       = "land"
	EventRespawn    = "respawn"
	EventSwitch     = "switch"
	EventPrism      = "prism"
	EventCheckpoint = "checkpoint"
	EventTeleport   = "teleport"
	EventShrink     = "shrink"
	EventFragile    = "fragile"
	EventCollapse   = "collapse"
	EventFuse       = "fuse"
	EventExplode    = "explode"
	EventBounce     = "bounce"
	EventGravity    = "gravity"
	EventLaser      = "laser"
	EventComplete   = "complete"
)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
