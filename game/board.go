package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// Tag is the content of a board point.
type Tag uint8

const (
	Empty Tag = iota
	First
	Second
	Blocked // captured during placement, cleared at the phase boundary
	numTags
)

func (t Tag) String() string {
	switch t {
	case Empty:
		return "empty"
	case First:
		return "first"
	case Second:
		return "second"
	case Blocked:
		return "blocked"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}

// Opponent returns the other player. Only defined for First and Second.
func (t Tag) Opponent() Tag {
	switch t {
	case First:
		return Second
	case Second:
		return First
	default:
		panic(fmt.Sprintf("tag %s has no opponent", t))
	}
}

// Board holds the tag of every point plus one index set per tag.
// The sets are disjoint and together cover all points. Board is a plain
// value: copying it copies the whole state.
type Board struct {
	cells [NumPoints]Tag
	index [numTags]PointSet
}

// NewBoard returns a board with every point empty.
func NewBoard() *Board {
	return &Board{index: [numTags]PointSet{Empty: AllPoints}}
}

// Copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

func (b *Board) At(p Point) Tag {
	return b.cells[p]
}

func (b *Board) IsEmpty(p Point) bool   { return b.cells[p] == Empty }
func (b *Board) IsFirst(p Point) bool   { return b.cells[p] == First }
func (b *Board) IsSecond(p Point) bool  { return b.cells[p] == Second }
func (b *Board) IsBlocked(p Point) bool { return b.cells[p] == Blocked }

// PointsWithTag returns the points currently tagged t. The set is a value,
// so changing it does not touch the board.
func (b *Board) PointsWithTag(t Tag) PointSet {
	return b.index[t]
}

// Count returns the number of points tagged t.
func (b *Board) Count(t Tag) int {
	return b.index[t].Len()
}

func (b *Board) set(p Point, t Tag) {
	old := b.cells[p]
	b.index[old] = b.index[old].Remove(p)
	b.index[t] = b.index[t].Add(p)
	b.cells[p] = t
}

// movable returns the empty neighbors of p.
func (b *Board) movable(p Point) PointSet {
	return neighborSets[p] & b.index[Empty]
}

// LegalMoves lists every slide available to player. An empty result means
// the player is stuck.
func (b *Board) LegalMoves(player Tag) []Step {
	var steps []Step
	owned := b.index[player]
	for owned != 0 {
		from := owned.Nth(0)
		owned = owned.Remove(from)
		targets := b.movable(from)
		for targets != 0 {
			to := targets.Nth(0)
			targets = targets.Remove(to)
			steps = append(steps, MoveStep(player, from, to))
		}
	}
	return steps
}

// HasAnyLegalMove reports whether player can slide at least one piece.
func (b *Board) HasAnyLegalMove(player Tag) bool {
	owned := b.index[player]
	for owned != 0 {
		from := owned.Nth(0)
		if !b.movable(from).Empty() {
			return true
		}
		owned = owned.Remove(from)
	}
	return false
}

// CompletesMill reports whether player owning target, after vacating from
// (NoPoint for a placement), fills some mill through target.
func (b *Board) CompletesMill(player Tag, target, from Point) bool {
	owned := b.index[player].Add(target)
	if from != NoPoint {
		owned = owned.Remove(from)
	}
	for _, i := range millsByPoint[target] {
		if millSets[i]&owned == millSets[i] {
			return true
		}
	}
	return false
}

// inMill checks if the piece on p sits in a mill fully owned by its player.
func (b *Board) inMill(p Point) bool {
	owned := b.index[b.cells[p]]
	for _, i := range millsByPoint[p] {
		if millSets[i]&owned == millSets[i] {
			return true
		}
	}
	return false
}

// CapturablePieces returns the pieces of opponent that may be captured:
// those outside any completed mill, or all of them when every piece is in a mill.
func (b *Board) CapturablePieces(opponent Tag) PointSet {
	all := b.index[opponent]
	free := all
	for rest := all; rest != 0; {
		p := rest.Nth(0)
		rest = rest.Remove(p)
		if b.inMill(p) {
			free = free.Remove(p)
		}
	}
	if free.Empty() {
		return all
	}
	return free
}

func (b *Board) clearBlocked() {
	b.index[Empty] |= b.index[Blocked]
	for blocked := b.index[Blocked]; blocked != 0; {
		p := blocked.Nth(0)
		blocked = blocked.Remove(p)
		b.cells[p] = Empty
	}
	b.index[Blocked] = 0
}

// Apply plays step at round. It is the only way the board changes. At the
// phase boundary round blocked points are cleared before the step.
// Illegal steps are programming errors and panic.
func (b *Board) Apply(step Step, round int) {
	if round == PhaseBoundary {
		b.clearBlocked()
	}

	player := step.Player()
	if player != First && player != Second {
		panic(fmt.Sprintf("cannot apply %s: invalid player", step))
	}

	captured := Empty
	switch step.Kind() {
	case PlaceKind:
		if !b.IsEmpty(step.At()) {
			panic(fmt.Sprintf("cannot apply %s: target is %s", step, b.At(step.At())))
		}
		b.set(step.At(), player)
		captured = Blocked
	case MoveKind:
		from, to := step.From(), step.To()
		if b.At(from) != player {
			panic(fmt.Sprintf("cannot apply %s: source is %s", step, b.At(from)))
		}
		if !b.IsEmpty(to) {
			panic(fmt.Sprintf("cannot apply %s: destination is %s", step, b.At(to)))
		}
		if !Adjacent(from, to) {
			panic(fmt.Sprintf("cannot apply %s: points are not adjacent", step))
		}
		b.set(from, Empty)
		b.set(to, player)
	default:
		panic(fmt.Sprintf("unknown step kind %d", step.Kind()))
	}

	if p, ok := step.Capture(); ok {
		if b.At(p) != player.Opponent() {
			panic(fmt.Sprintf("cannot apply %s: capture target is %s", step, b.At(p)))
		}
		b.set(p, captured)
	}
}

// IsTerminal reports whether the game is over at round and who won.
// The first player's loss is checked before the second's.
func (b *Board) IsTerminal(round int) (bool, Tag) {
	if round == 0 {
		return false, Empty
	}
	if b.loses(First, round) {
		return true, Second
	}
	if b.loses(Second, round) {
		return true, First
	}
	return false, Empty
}

func (b *Board) loses(player Tag, round int) bool {
	if round > PhaseBoundary && b.Count(player) <= MinPieces {
		return true
	}
	return !b.HasAnyLegalMove(player)
}

// Hash of the cell contents.
func (b *Board) Hash() uint64 {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, b.cells)
	return hasher.Sum64()
}

var tagRunes = [numTags]byte{Empty: '.', First: 'x', Second: 'o', Blocked: '#'}

// String dumps the cells in point order, e.g. "x..o....#...".
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(NumPoints)
	for _, t := range b.cells {
		sb.WriteByte(tagRunes[t])
	}
	return sb.String()
}

// ParseBoard builds a board from the String form.
func ParseBoard(s string) (*Board, error) {
	if len(s) != NumPoints {
		return nil, fmt.Errorf("cannot parse board %q: want %d cells, got %d", s, NumPoints, len(s))
	}
	b := NewBoard()
	for i := 0; i < NumPoints; i++ {
		t := Tag(strings.IndexByte(string(tagRunes[:]), s[i]))
		if t >= numTags {
			return nil, fmt.Errorf("cannot parse board %q: unknown cell %q at %d", s, s[i], i)
		}
		b.set(Point(i), t)
	}
	return b, nil
}
