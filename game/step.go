package game

import "fmt"

// StepKind tells which variant a Step holds.
type StepKind int

const (
	PlaceKind StepKind = iota
	MoveKind
)

// Step is a single action of one player: placing a piece or sliding one,
// optionally capturing an opponent piece. Steps are values; build them with
// PlaceStep or MoveStep.
type Step struct {
	kind    StepKind
	player  Tag
	from    Point // MoveKind only
	to      Point // placement target for PlaceKind
	capture Point
}

func PlaceStep(player Tag, at Point) Step {
	return Step{kind: PlaceKind, player: player, from: NoPoint, to: at, capture: NoPoint}
}

func MoveStep(player Tag, from, to Point) Step {
	return Step{kind: MoveKind, player: player, from: from, to: to, capture: NoPoint}
}

// Capturing returns a copy of the step that also captures the piece at p.
func (s Step) Capturing(p Point) Step {
	s.capture = p
	return s
}

func (s Step) Kind() StepKind {
	return s.kind
}

func (s Step) Player() Tag {
	return s.player
}

// At is the placement target. Panics for a move.
func (s Step) At() Point {
	if s.kind != PlaceKind {
		panic("At called on a move step")
	}
	return s.to
}

// From is the source of a move. Panics for a placement.
func (s Step) From() Point {
	if s.kind != MoveKind {
		panic("From called on a place step")
	}
	return s.from
}

// To is the point the piece ends up on, for both variants.
func (s Step) To() Point {
	return s.to
}

func (s Step) Capture() (Point, bool) {
	return s.capture, s.capture != NoPoint
}

func (s Step) String() string {
	var str string
	switch s.kind {
	case PlaceKind:
		str = fmt.Sprintf("%s place %d", s.player, s.to)
	case MoveKind:
		str = fmt.Sprintf("%s move %d-%d", s.player, s.from, s.to)
	default:
		str = fmt.Sprintf("unknown step kind %d", s.kind)
	}
	if s.capture != NoPoint {
		str += fmt.Sprintf(" x%d", s.capture)
	}
	return str
}
