package engine

import (
	"fmt"
	"io"

	"chengsan/game"

	"github.com/muesli/termenv"
	"golang.org/x/exp/slices"
)

const boardLayout = `%s-----------%s-----------%s
|           |           |
|   %s-------%s-------%s   |
|   |       |       |   |
|   |   %s---%s---%s   |   |
|   |   |       |   |   |
%s---%s---%s       %s---%s---%s
|   |   |       |   |   |
|   |   %s---%s---%s   |   |
|   |       |       |   |
|   %s-------%s-------%s   |
|           |           |
%s-----------%s-----------%s
`

// Points in the order they appear in boardLayout, row by row
var layoutOrder = drawOrder()

// gridCell places p on the 7x7 grid the board is drawn on.
func gridCell(p game.Point) (row, col int) {
	near, far := p.Ring(), 6-p.Ring()
	switch p.Pos() {
	case 0:
		return near, near
	case 1:
		return near, 3
	case 2:
		return near, far
	case 3:
		return 3, far
	case 4:
		return far, far
	case 5:
		return far, 3
	case 6:
		return far, near
	default:
		return 3, near
	}
}

func drawOrder() []game.Point {
	points := make([]game.Point, 0, game.NumPoints)
	for ring := 0; ring < 3; ring++ {
		for pos := 0; pos < 8; pos++ {
			p, err := game.PointAt(ring, pos)
			if err != nil {
				panic(err)
			}
			points = append(points, p)
		}
	}
	slices.SortFunc(points, func(a, b game.Point) int {
		ar, ac := gridCell(a)
		br, bc := gridCell(b)
		if ar != br {
			return ar - br
		}
		return ac - bc
	})
	return points
}

// Render draws the board with colored pieces. Colors are dropped when w is
// not a terminal.
func Render(w io.Writer, board *game.Board, round int) {
	out := termenv.NewOutput(w)
	cells := make([]any, len(layoutOrder))
	for i, p := range layoutOrder {
		cells[i] = cell(out, board.At(p))
	}

	fmt.Fprintf(w, "\nRound: %d\n", round)
	fmt.Fprintf(w, boardLayout, cells...)
	fmt.Fprintf(w, "1st: %d on board | 2nd: %d on board\n", board.Count(game.First), board.Count(game.Second))
}

func cell(out *termenv.Output, t game.Tag) string {
	switch t {
	case game.First:
		return out.String("X").Foreground(out.Color("1")).Bold().String()
	case game.Second:
		return out.String("O").Foreground(out.Color("4")).Bold().String()
	case game.Blocked:
		return out.String("#").Faint().String()
	default:
		return "+"
	}
}
