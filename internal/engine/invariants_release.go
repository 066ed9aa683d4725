//go:build !ladderbook_debug

package engine

// checkInvariants is a no-op outside of debug builds; see
// invariants_debug.go.
func (e *Engine) checkInvariants() {}
