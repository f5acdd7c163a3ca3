package game

// Game rule constants. The board graph is fixed, so these are not configurable.
const (
	NumPoints = 24
	NumMills  = 16

	// PlacementRounds is the number of rounds in which each player places one piece.
	PlacementRounds = 9

	// PhaseBoundary is the round at which blocked points are cleared and pieces start sliding.
	PhaseBoundary = PlacementRounds

	// MinPieces is the piece count at or below which a player loses once past the boundary.
	MinPieces = 2
)

// IsPlacement reports whether round belongs to the placement phase.
func IsPlacement(round int) bool {
	return round < PlacementRounds
}
