package game

// EvaluateMaterial compares the piece counts of player and its opponent and
// returns a score between -1 and 1, positive when player has more pieces.
func EvaluateMaterial(b *Board, player Tag) float64 {
	return normalize(float64(b.Count(player)), float64(b.Count(player.Opponent())))
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}
