package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Point is one of the 24 intersections. Points are numbered ring by ring,
// outer square first, clockwise from the top-left corner:
//
//	0------------1-----------2
//	|            |           |
//	|   8--------9------10   |
//	|   |        |       |   |
//	|   |   16--17--18   |   |
//	|   |   |        |   |   |
//	7---15--23      19--11---3
//	|   |   |        |   |   |
//	|   |   22--21--20   |   |
//	|   |        |       |   |
//	|   14------13------12   |
//	|            |           |
//	6------------5-----------4
type Point int

// NoPoint marks an absent point, e.g. a step without a capture.
const NoPoint Point = -1

const pointsPerRing = 8

// PointAt maps ring (0 outer, 2 inner) and position within the ring to a Point.
func PointAt(ring, pos int) (Point, error) {
	if ring < 0 || ring > 2 || pos < 0 || pos >= pointsPerRing {
		return NoPoint, fmt.Errorf("point out of range: ring %d pos %d", ring, pos)
	}
	return Point(ring*pointsPerRing + pos), nil
}

func (p Point) Valid() bool {
	return p >= 0 && p < NumPoints
}

func (p Point) Ring() int {
	return int(p) / pointsPerRing
}

func (p Point) Pos() int {
	return int(p) % pointsPerRing
}

// Mill is a line of three points.
type Mill [3]Point

// Set returns the points of the mill as a set.
func (m Mill) Set() PointSet {
	return NewPointSet(m[:]...)
}

// Adjacency data: every point with its neighbors
var adjacencyData = [NumPoints][]Point{
	0:  {1, 7},
	1:  {0, 2, 9},
	2:  {1, 3},
	3:  {2, 4, 11},
	4:  {3, 5},
	5:  {4, 6, 13},
	6:  {5, 7},
	7:  {0, 6, 15},
	8:  {9, 15},
	9:  {1, 8, 10, 17},
	10: {9, 11},
	11: {3, 10, 12, 19},
	12: {11, 13},
	13: {5, 12, 14, 21},
	14: {13, 15},
	15: {7, 8, 14, 23},
	16: {17, 23},
	17: {9, 16, 18},
	18: {17, 19},
	19: {11, 18, 20},
	20: {19, 21},
	21: {13, 20, 22},
	22: {21, 23},
	23: {15, 16, 22},
}

var millData = [NumMills]Mill{
	{0, 1, 2},
	{2, 3, 4},
	{4, 5, 6},
	{6, 7, 0},
	{8, 9, 10},
	{10, 11, 12},
	{12, 13, 14},
	{14, 15, 8},
	{16, 17, 18},
	{18, 19, 20},
	{20, 21, 22},
	{22, 23, 16},
	{1, 9, 17},
	{3, 11, 19},
	{5, 13, 21},
	{7, 15, 23},
}

// Derived tables, built once in init
var (
	neighborSets [NumPoints]PointSet
	millSets     [NumMills]PointSet
	millsByPoint [NumPoints][]int // indices into millData
)

func init() {
	for p, neighbors := range adjacencyData {
		neighborSets[p] = NewPointSet(neighbors...)
	}
	for i, mill := range millData {
		millSets[i] = mill.Set()
		for _, p := range mill {
			if !slices.Contains(millsByPoint[p], i) {
				millsByPoint[p] = append(millsByPoint[p], i)
			}
		}
	}
}

// Neighbors returns the points adjacent to p.
func Neighbors(p Point) PointSet {
	return neighborSets[p]
}

// Adjacent checks if two points share an edge.
func Adjacent(a, b Point) bool {
	return neighborSets[a].Contains(b)
}

// Mills returns all capturing lines.
func Mills() [NumMills]Mill {
	return millData
}

// MillsContaining returns the mills passing through p.
func MillsContaining(p Point) []Mill {
	mills := make([]Mill, 0, len(millsByPoint[p]))
	for _, i := range millsByPoint[p] {
		mills = append(mills, millData[i])
	}
	return mills
}
