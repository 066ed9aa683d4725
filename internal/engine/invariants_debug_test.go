//go:build ladderbook_debug

package engine

import "testing"

// TestCheckInvariants_PassesOnWellFormedBook confirms the debug-only
// invariant checker does not panic on an ordinary, non-crossed book.
// Run with `-tags ladderbook_debug` to exercise it.
func TestCheckInvariants_PassesOnWellFormedBook(t *testing.T) {
	e := New()
	if _, _, err := e.Submit(Bid, 99, 1, 1, "b"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := e.Submit(Ask, 101, 1, 2, "s"); err != nil {
		t.Fatal(err)
	}
	e.checkInvariants()
}
