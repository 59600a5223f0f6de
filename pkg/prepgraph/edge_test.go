package prepgraph

import (
	"math"
	"testing"
)

func TestBaseEdgeOrigEdgeKeys(t *testing.T) {
	// nodeA(3) > nodeB(2): AB key gets the low bit set, BA does not.
	e := newBaseEdge(7, 3, 2, 1, 1)
	if got := e.origEdgeKeyFirstAB(); got != 7<<1+1 {
		t.Fatalf("origEdgeKeyFirstAB = %d, want %d", got, 7<<1+1)
	}
	if got := e.origEdgeKeyFirstBA(); got != 7<<1 {
		t.Fatalf("origEdgeKeyFirstBA = %d, want %d", got, 7<<1)
	}
	if e.origEdgeKeyFirstAB() != e.origEdgeKeyLastAB() {
		t.Fatal("first == last for a base edge's AB key")
	}
}

func TestBaseEdgeSettersPanic(t *testing.T) {
	e := newBaseEdge(0, 0, 1, 1, 1)
	for _, fn := range []func(){
		func() { e.setWeight(2) },
		func() { e.setSkipped1(1) },
		func() { e.setSkipped2(1) },
		func() { e.setOrigEdgeCount(2) },
		func() { e.skipped1() },
		func() { e.skipped2() },
	} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Fatal("expected panic on base edge capability violation")
				}
			}()
			fn()
		}()
	}
}

func TestNodeShortcutOrigEdgeKeysPanic(t *testing.T) {
	s := newNodeShortcut(4, 0, 1, 2, 0, 1, 2)
	for _, fn := range []func() int32{
		s.origEdgeKeyFirstAB,
		s.origEdgeKeyFirstBA,
		s.origEdgeKeyLastAB,
		s.origEdgeKeyLastBA,
	} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Fatal("expected panic querying orig edge keys on a node-based shortcut")
				}
			}()
			fn()
		}()
	}
}

func TestEdgeShortcutOrigEdgeKeysAreOrientationIndependent(t *testing.T) {
	s := newEdgeShortcut(4, 0, 1, 10, 12, 2, 0, 1, 2)
	if s.origEdgeKeyFirstAB() != s.origEdgeKeyFirstBA() {
		t.Fatal("edge-based shortcut origEdgeKeyFirst must not depend on orientation")
	}
	if s.origEdgeKeyLastAB() != s.origEdgeKeyLastBA() {
		t.Fatal("edge-based shortcut origEdgeKeyLast must not depend on orientation")
	}
	if s.origEdgeKeyFirstAB() != 10 || s.origEdgeKeyLastAB() != 12 {
		t.Fatalf("origEdgeKeyFirst/Last = %d/%d, want 10/12", s.origEdgeKeyFirstAB(), s.origEdgeKeyLastAB())
	}
}

func TestNewNodeShortcutRejectsNonFiniteWeight(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic constructing a shortcut with a non-finite weight")
		}
	}()
	newNodeShortcut(0, 0, 1, math.NaN(), 0, 0, 1)
}
