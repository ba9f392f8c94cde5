// meta/meta.go
package meta

import "time"

// BOARD_HEIGHT defines the number of rows of a tournament board.
const BOARD_HEIGHT = 6

// BOARD_WIDTH defines the number of columns of a tournament board.
const BOARD_WIDTH = 7

// RUN_LENGTH defines how many aligned symbols win a game.
const RUN_LENGTH = 4

// GO_ROUTINES defines the number of goroutines a searcher uses at the root.
const GO_ROUTINES = 1

// OUTPUT_DIR defines where tournament results are written.
const OUTPUT_DIR = "results"

// DEPTHS defines the search depths of the default minimax agents.
var DEPTHS = []int{1, 3, 5, 7}

// HEURISTICS defines the strategies of the default minimax agents.
var HEURISTICS = []string{"aggressive", "passive", "neutral", "zero"}

// TIMEOUTS defines the per-move time budgets every pairing is played with.
var TIMEOUTS = []time.Duration{3 * time.Second, 2 * time.Second, time.Second, 100 * time.Millisecond}
