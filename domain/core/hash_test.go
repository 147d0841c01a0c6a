package core

import (
	"testing"
)

// TestComputeRecordHashDeterministic tests that the same parts always hash
// the same
func TestComputeRecordHashDeterministic(t *testing.T) {
	a := ComputeRecordHash("dQw4w9WgXcQ", "Mar 15, 2024, 9:30:12 PM EST")
	b := ComputeRecordHash("dQw4w9WgXcQ", "Mar 15, 2024, 9:30:12 PM EST")
	if a != b {
		t.Errorf("Same parts hashed differently: %s vs %s", a, b)
	}
	if a.String() == "" {
		t.Error("Expected non-empty hash")
	}
}

// TestComputeRecordHashPartBoundaries tests that part boundaries matter:
// ("ab", "c") and ("a", "bc") must not collide
func TestComputeRecordHashPartBoundaries(t *testing.T) {
	if ComputeRecordHash("ab", "c") == ComputeRecordHash("a", "bc") {
		t.Error("Hash must separate parts, not concatenate them")
	}
}

// TestComputeBatchHashOrderIndependent tests the batch hash ignores record
// order
func TestComputeBatchHashOrderIndependent(t *testing.T) {
	forward := ComputeBatchHash([]string{"id1", "id2", "id3"})
	backward := ComputeBatchHash([]string{"id3", "id1", "id2"})
	if forward != backward {
		t.Errorf("Batch hash depends on order: %s vs %s", forward, backward)
	}

	other := ComputeBatchHash([]string{"id1", "id2"})
	if forward == other {
		t.Error("Different batches must hash differently")
	}
}
