// meta/meta.go
package meta

// BOARD_SIZE is the default board edge length.
const BOARD_SIZE = 9

// KOMI is the default compensation for white.
const KOMI = 7.5

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// PLAYOUTS defines the number of playouts per training cycle.
const PLAYOUTS = 50000

// PRIOR is the pseudo-count every statistic starts with.
const PRIOR = 1.0

// AAF_FRACTION is the share of a playout credited to its moves.
const AAF_FRACTION = 0.5

// INFLUENCE_SCALE divides move values for display.
const INFLUENCE_SCALE = 6.0

// LOCAL_PROBABILITY is the chance the local policy plays a plain random move.
const LOCAL_PROBABILITY = 0.65

const USE_MERCY_RULE = false
const MERCY_THRESHOLD = 25.0

// GAME_LENGTH_RESERVE is the share of the board area kept free for playouts
// below the playout length limit when capping self-play games.
const GAME_LENGTH_RESERVE = 0.5
