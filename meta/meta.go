// meta/meta.go
package meta

// GO_ROUTINES defines the default number of goroutines scoring candidates.
const GO_ROUTINES = 1

// ROLLOUTS defines the default number of rollouts per candidate move.
const ROLLOUTS = 100

// CUTOFF defines the default number of exchanges a rollout may play before it is scored by material.
const CUTOFF = 100

// MAX_ROUNDS caps a game played by the local engine.
const MAX_ROUNDS = 500
