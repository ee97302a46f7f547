// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

import (
	"errors"
	"testing"

	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/math/lin"
)

func TestTransformIdentityInit(t *testing.T) {
	tr := NewTransform()
	if err := tr.Init(nil); err != nil {
		t.Fatalf("identity transform should always invert: %v", err)
	}
	if !tr.Final().Eq(lin.M4I) || !tr.FinalInv().Eq(lin.M4I) {
		t.Error("identity transform should leave final/finalInv at identity")
	}
}

func TestTransformTranslate(t *testing.T) {
	tr := NewTransform()
	tr.Base.TranslateMT(1, 2, 3)
	if err := tr.Init(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := tr.PointLocalToGlobal(&lin.V3{X: 0, Y: 0, Z: 0})
	if !p.Aeq(&lin.V3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("got %v want (1,2,3)", p)
	}
	back := tr.RayLocalBase(p)
	if !back.Aeq(&lin.V3{X: 0, Y: 0, Z: 0}) {
		t.Errorf("local-space round trip failed, got %v", back)
	}
}

func TestTransformParentComposition(t *testing.T) {
	parent := NewTransform()
	parent.Base.TranslateMT(10, 0, 0)
	if err := parent.Init(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := NewTransform()
	child.Base.TranslateMT(0, 5, 0)
	if err := child.Init(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := child.PointLocalToGlobal(&lin.V3{X: 0, Y: 0, Z: 0})
	if !p.Aeq(&lin.V3{X: 10, Y: 5, Z: 0}) {
		t.Errorf("got %v want (10,5,0)", p)
	}
}

func TestTransformNoParent(t *testing.T) {
	parent := NewTransform()
	parent.Base.TranslateMT(10, 0, 0)
	if err := parent.Init(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := NewTransform()
	child.SetNoParent(true)
	child.Base.TranslateMT(0, 5, 0)
	if err := child.Init(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := child.PointLocalToGlobal(&lin.V3{X: 0, Y: 0, Z: 0})
	if !p.Aeq(&lin.V3{X: 0, Y: 5, Z: 0}) {
		t.Errorf("noParent transform should ignore the parent's offset, got %v", p)
	}
}

func TestTransformSingularIsError(t *testing.T) {
	tr := NewTransform()
	tr.Base = lin.M4{} // zero matrix, determinant 0.
	if err := tr.Init(nil); !errors.Is(err, rerr.ErrSingularMatrix) {
		t.Errorf("expected ErrSingularMatrix, got %v", err)
	}
}

func TestNormalLocalToGlobalUnitLength(t *testing.T) {
	tr := NewTransform()
	tr.Base.ScaleMS(2, 3, 4) // non-uniform scale.
	if err := tr.Init(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := tr.NormalLocalToGlobal(&lin.V3{X: 1, Y: 0, Z: 0})
	if !lin.Aeq(n.Len(), 1) {
		t.Errorf("expected unit-length normal, got length %v", n.Len())
	}
}
