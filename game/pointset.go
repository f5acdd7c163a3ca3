package game

import (
	"math/bits"
	"strconv"
	"strings"
)

// PointSet is an immutable set of board points stored as a bitmask.
type PointSet uint32

const AllPoints PointSet = 1<<NumPoints - 1

func NewPointSet(points ...Point) PointSet {
	var s PointSet
	for _, p := range points {
		s = s.Add(p)
	}
	return s
}

func (s PointSet) Contains(p Point) bool {
	return p.Valid() && s&(1<<uint(p)) != 0
}

func (s PointSet) Add(p Point) PointSet {
	return s | 1<<uint(p)
}

func (s PointSet) Remove(p Point) PointSet {
	return s &^ (1 << uint(p))
}

func (s PointSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

func (s PointSet) Empty() bool {
	return s == 0
}

// Nth returns the n-th point of the set in ascending order.
func (s PointSet) Nth(n int) Point {
	for i := 0; i < n; i++ {
		s &= s - 1
	}
	return Point(bits.TrailingZeros32(uint32(s)))
}

// Points lists the set in ascending order.
func (s PointSet) Points() []Point {
	points := make([]Point, 0, s.Len())
	for s != 0 {
		points = append(points, Point(bits.TrailingZeros32(uint32(s))))
		s &= s - 1
	}
	return points
}

func (s PointSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range s.Points() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(int(p)))
	}
	b.WriteByte('}')
	return b.String()
}
