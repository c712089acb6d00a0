package wfc

import "fmt"

// ArgumentError reports a malformed invocation: empty path, non-positive
// N/W/H, or an unknown flag. Fatal; no Grid is created.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return "argument error: " + e.Message
}

// InputTooSmallError reports that the input image cannot yield at least
// one N×N window under the chosen wrap flags.
type InputTooSmallError struct {
	Width, Height, PatchSize int
}

func (e *InputTooSmallError) Error() string {
	return fmt.Sprintf("input too small: %dx%d cannot yield a %dx%d window", e.Width, e.Height, e.PatchSize, e.PatchSize)
}

// PatchCapacityExceededError reports that distinct-patch deduplication
// would exceed MaxPatches.
type PatchCapacityExceededError struct {
	Limit int
}

func (e *PatchCapacityExceededError) Error() string {
	return fmt.Sprintf("patch capacity exceeded: more than %d distinct patches", e.Limit)
}

// ContradictionError reports that a cell's candidate set became empty
// during propagation. Recoverable at the Solver level by restarting.
type ContradictionError struct {
	X, Y int
	// LastX, LastY are the coordinates of the most recently collapsed
	// cell, when known; -1 if not applicable.
	LastX, LastY int
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("contradiction at (%d, %d)", e.X, e.Y)
}

// RestartBudgetExceededError reports that the Solver gave up after
// exhausting its restart budget without reaching a contradiction-free
// solve.
type RestartBudgetExceededError struct {
	Attempts int
	Last     *ContradictionError
}

func (e *RestartBudgetExceededError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %s", e.Attempts, e.Last)
}

func (e *RestartBudgetExceededError) Unwrap() error {
	return e.Last
}
