// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hitlist

import (
	"testing"

	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/stats"
)

// fakeObject is a trivial Object for exercising hit-list bookkeeping
// without needing a real primitive or CSG node.
type fakeObject struct{ name string }

func (*fakeObject) isObject() {}

func newList(csg bool) *HitList {
	return New(&HitCache{}, &stats.Info{}, csg)
}

func TestAddHitSortedOrder(t *testing.T) {
	l := newList(false)
	a, b, c := &fakeObject{"a"}, &fakeObject{"b"}, &fakeObject{"c"}
	l.AddHit(b, 5, &lin.V3{}, 0, Normal)
	l.AddHit(a, 1, &lin.V3{}, 0, Normal)
	l.AddHit(c, 9, &lin.V3{}, 0, Normal)

	if l.Count() != 3 {
		t.Fatalf("expected 3 hits, got %d", l.Count())
	}
	var got []float64
	for h := l.FirstHit(); h != nil; h = h.next {
		got = append(got, h.Distance)
	}
	want := []float64{1, 5, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hit %d: got %v want %v", i, got, want)
		}
	}
}

func TestClearReturnsToCache(t *testing.T) {
	l := newList(false)
	l.AddHit(&fakeObject{}, 1, &lin.V3{}, 0, Normal)
	l.AddHit(&fakeObject{}, 2, &lin.V3{}, 0, Normal)
	l.Clear()
	if !l.Empty() {
		t.Error("list should be empty after Clear")
	}
	// the cache should now satisfy two fetches without allocating new nodes;
	// exercise it indirectly by re-adding and checking the list holds
	// only the new hit.
	l.AddHit(&fakeObject{}, 3, &lin.V3{}, 0, Normal)
	if l.Count() != 1 {
		t.Errorf("expected 1 hit after re-adding, got %d", l.Count())
	}
}

func TestRemoveFirstHitSkipsBelowMin(t *testing.T) {
	l := newList(false)
	l.AddHit(&fakeObject{}, 0.5, &lin.V3{}, 0, Normal)
	l.AddHit(&fakeObject{}, 5, &lin.V3{}, 0, Normal)
	r := &ray.Ray{MinLength: 1, MaxLength: 10}
	h := l.RemoveFirstHit(r)
	if h == nil || h.Distance != 5 {
		t.Fatalf("expected the hit at distance 5, got %v", h)
	}
}

func TestRemoveFirstHitOutOfRange(t *testing.T) {
	l := newList(false)
	l.AddHit(&fakeObject{}, 20, &lin.V3{}, 0, Normal)
	r := &ray.Ray{MinLength: 1, MaxLength: 10}
	if h := l.RemoveFirstHit(r); h != nil {
		t.Errorf("expected no hit in range, got %v", h)
	}
}

func TestMergeList(t *testing.T) {
	l := newList(false)
	l.AddHit(&fakeObject{}, 1, &lin.V3{}, 0, Normal)
	l.AddHit(&fakeObject{}, 9, &lin.V3{}, 0, Normal)

	other := newList(false)
	other.AddHit(&fakeObject{}, 5, &lin.V3{}, 0, Normal)

	l.MergeList(other)
	if !other.Empty() {
		t.Error("source list should be empty after MergeList")
	}
	var got []float64
	for h := l.FirstHit(); h != nil; h = h.next {
		got = append(got, h.Distance)
	}
	want := []float64{1, 5, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v want %v", got, want)
		}
	}
}

// CSGUnion of two overlapping spheres' enter/exit pairs should collapse
// to the outer boundary only.
func TestCSGUnion(t *testing.T) {
	l := newList(true)
	a, b, csg := &fakeObject{"a"}, &fakeObject{"b"}, &fakeObject{"union"}
	l.AddHit(a, 1, &lin.V3{}, 0, Enter)
	l.AddHit(b, 2, &lin.V3{}, 0, Enter) // overlap starts: inside both.
	l.AddHit(a, 4, &lin.V3{}, 0, Exit)  // still inside b.
	l.AddHit(b, 5, &lin.V3{}, 0, Exit)  // now outside both.

	l.CSGUnion(csg)

	var types []HitType
	var dists []float64
	for h := l.FirstHit(); h != nil; h = h.next {
		if h.Parent != csg {
			t.Errorf("expected every surviving hit to be claimed by csg")
		}
		types = append(types, h.Type)
		dists = append(dists, h.Distance)
	}
	if len(types) != 2 || types[0] != Enter || types[1] != Exit {
		t.Errorf("expected [Enter, Exit], got %v", types)
	}
	if dists[0] != 1 || dists[1] != 5 {
		t.Errorf("expected outer boundary [1,5], got %v", dists)
	}
}

// CSGIntersection of two overlapping solids should keep only the interval
// both are inside.
func TestCSGIntersection(t *testing.T) {
	l := newList(true)
	a, b, csg := &fakeObject{"a"}, &fakeObject{"b"}, &fakeObject{"isect"}
	l.AddHit(a, 1, &lin.V3{}, 0, Enter)
	l.AddHit(b, 2, &lin.V3{}, 0, Enter)
	l.AddHit(a, 4, &lin.V3{}, 0, Exit)
	l.AddHit(b, 5, &lin.V3{}, 0, Exit)

	l.CSGIntersection(csg, 2)

	var dists []float64
	for h := l.FirstHit(); h != nil; h = h.next {
		dists = append(dists, h.Distance)
	}
	if len(dists) != 2 || dists[0] != 2 || dists[1] != 4 {
		t.Errorf("expected overlap interval [2,4], got %v", dists)
	}
}

// CSGDifference of primary minus a fully-contained solid should leave two
// surviving intervals (before and after the cutout).
func TestCSGDifference(t *testing.T) {
	l := newList(true)
	primary, cut, csg := &fakeObject{"primary"}, &fakeObject{"cut"}, &fakeObject{"diff"}
	l.AddHit(primary, 0, &lin.V3{}, 0, Enter)
	l.AddHit(cut, 3, &lin.V3{}, 0, Enter)
	l.AddHit(cut, 6, &lin.V3{}, 0, Exit)
	l.AddHit(primary, 10, &lin.V3{}, 0, Exit)

	l.CSGDifference(csg, primary)

	var dists []float64
	for h := l.FirstHit(); h != nil; h = h.next {
		dists = append(dists, h.Distance)
	}
	if len(dists) != 4 {
		t.Fatalf("expected 4 surviving boundaries, got %d: %v", len(dists), dists)
	}
	want := []float64{0, 3, 6, 10}
	for i := range want {
		if dists[i] != want[i] {
			t.Errorf("got %v want %v", dists, want)
		}
	}
}
