package editor

import "github.com/milk9111/cuberoll/world"

// DefaultMaxUndo caps the undo history.
const DefaultMaxUndo = 50

// Stack is the undo/redo history for edits against one world.
type Stack struct {
	world   *world.World
	undo    []*Command
	redo    []*Command
	maxUndo int
}

func NewStack(w *world.World, maxUndo int) *Stack {
	if maxUndo <= 0 {
		maxUndo = DefaultMaxUndo
	}
	return &Stack{world: w, maxUndo: maxUndo}
}

// Execute applies cmd. Commands that change nothing are not recorded and
// leave the redo history intact.
func (s *Stack) Execute(cmd *Command) bool {
	if cmd == nil || !cmd.apply(s.world) {
		return false
	}
	s.push(cmd)
	s.redo = nil
	return true
}

func (s *Stack) push(cmd *Command) {
	s.undo = append(s.undo, cmd)
	if len(s.undo) > s.maxUndo {
		// drop oldest
		s.undo = s.undo[len(s.undo)-s.maxUndo:]
	}
}

// Undo reverts the most recent command.
func (s *Stack) Undo() bool {
	n := len(s.undo)
	if n == 0 {
		return false
	}
	cmd := s.undo[n-1]
	s.undo = s.undo[:n-1]
	if !cmd.revert(s.world) {
		return false
	}
	s.redo = append(s.redo, cmd)
	return true
}

// Redo re-applies the most recently undone command.
func (s *Stack) Redo() bool {
	n := len(s.redo)
	if n == 0 {
		return false
	}
	cmd := s.redo[n-1]
	s.redo = s.redo[:n-1]
	if !cmd.apply(s.world) {
		return false
	}
	s.push(cmd)
	return true
}

func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }
func (s *Stack) Len() int      { return len(s.undo) }
func (s *Stack) RedoLen() int  { return len(s.redo) }

func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}
