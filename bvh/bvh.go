// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bvh

import (
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/prim"
)

// unionChildren is implemented only by *prim.Union: since union is
// commutative and associative, its children can be freely regrouped into
// nested bounds/unions without changing what the union reports, so the
// optimizer flattens into them. Every other primitive (including the
// other CSG combinators, whose child order and identity matter) is kept
// as an opaque leaf.
type unionChildren interface {
	ChildPrimitives() []prim.Primitive
}

type nodeKind int

const (
	nodeObject nodeKind = iota
	nodeUnion
	nodeBound
)

// optNode is one entry in the cost-optimization working set: either a
// leaf (object/union, wrapping a real prim.Primitive) or a bound grouping
// other nodes together. Nodes are rebuilt into real prim.Primitive values
// only once optimization finishes (convertNodeList).
type optNode struct {
	children []*optNode
	object   prim.Primitive // set for nodeObject/nodeUnion
	box      *geom.BBox
	objCost  float64
	curCost  float64
	kind     nodeKind
}

// cost is the expected per-ray cost of testing this node when it sits in
// a parent region weighing weight: its own hit cost scaled by weight,
// plus (if it has children) their combined cost scaled by its own box's
// weight.
func (n *optNode) cost(weight float64) float64 {
	c := weight * n.objCost
	if len(n.children) > 0 {
		c += treeCost(n.children, n.box.Weight())
	}
	return c
}

func treeCost(nodes []*optNode, weight float64) float64 {
	total := 0.0
	for _, n := range nodes {
		total += n.cost(weight)
	}
	return total
}

// calcMergeCost is the cost of n1 and n2 once merged under a bound whose
// region weighs w: a merged-in bound's own children are scored directly
// against w rather than paying for an extra layer of bound indirection.
func calcMergeCost(n1, n2 *optNode) float64 {
	w := geom.Union(n1.box, n2.box).Weight()
	cost1 := n1.cost(w)
	if n1.kind == nodeBound {
		cost1 = treeCost(n1.children, w)
	}
	cost2 := n2.cost(w)
	if n2.kind == nodeBound {
		cost2 = treeCost(n2.children, w)
	}
	return cost1 + cost2
}

func makeOptNodeList(costs *prim.CostTable, objs []prim.Primitive) []*optNode {
	nodes := make([]*optNode, 0, len(objs))
	for _, ob := range objs {
		if u, ok := ob.(unionChildren); ok {
			nodes = append(nodes, &optNode{
				kind:     nodeUnion,
				object:   ob,
				box:      ob.Bound(nil),
				objCost:  ob.HitCost(costs),
				children: makeOptNodeList(costs, u.ChildPrimitives()),
			})
			continue
		}
		nodes = append(nodes, &optNode{
			kind:    nodeObject,
			object:  ob,
			box:     ob.Bound(nil),
			objCost: ob.HitCost(costs),
		})
	}
	return nodes
}

// mergeNodes builds a new bound node containing n1 and n2's own children
// (flattening away a bound wrapper either already had, so bounds don't
// nest needlessly) under a box fit to both.
func mergeNodes(n1, n2 *optNode, boundCost float64) *optNode {
	b := &optNode{kind: nodeBound, objCost: boundCost, box: geom.Union(n1.box, n2.box)}
	if n1.kind == nodeBound {
		b.children = append(b.children, n1.children...)
	} else {
		b.children = append(b.children, n1)
	}
	if n2.kind == nodeBound {
		b.children = append(b.children, n2.children...)
	} else {
		b.children = append(b.children, n2)
	}
	return b
}

// optimizeList runs the greedy pairwise-merge pass: first, any node whose
// standalone cost exceeds wrapping it alone in a bound gets wrapped;
// then, repeatedly, the pair of nodes whose merge improves total cost the
// most gets merged, until no merge helps. Finally, any node with more
// than one child (or exactly one union child) recurses so its own
// children get regrouped against its box's weight.
func optimizeList(nodes []*optNode, weight, boundCost float64) []*optNode {
	totalBoundCost := weight * boundCost

	arr := make([]*optNode, len(nodes))
	for i, n := range nodes {
		cost1 := n.cost(weight)
		n.curCost = cost1
		cost2 := totalBoundCost + n.cost(n.box.Weight())
		if cost1 > cost2 {
			n = &optNode{kind: nodeBound, objCost: boundCost, box: n.box, curCost: cost2, children: []*optNode{n}}
		}
		arr[i] = n
	}

	count := len(arr)
	for count > 1 {
		best, bestMergeCost := 0.0, 0.0
		bestI, bestJ := 0, 0
		for i := 0; i < count-1; i++ {
			for j := i + 1; j < count; j++ {
				baseCost := arr[i].curCost + arr[j].curCost
				mergeCost := totalBoundCost + calcMergeCost(arr[i], arr[j])
				if improve := baseCost - mergeCost; improve > best {
					best, bestMergeCost, bestI, bestJ = improve, mergeCost, i, j
				}
			}
		}
		if best <= 0 {
			break
		}
		merged := mergeNodes(arr[bestI], arr[bestJ], boundCost)
		merged.curCost = bestMergeCost
		arr[bestI] = merged
		count--
		arr[bestJ] = arr[count]
	}
	arr = arr[:count]

	for _, n := range arr {
		recurse := len(n.children) > 1 || (len(n.children) == 1 && n.children[0].kind == nodeUnion)
		if recurse {
			n.children = optimizeList(n.children, n.box.Weight(), boundCost)
		}
	}
	return arr
}

// convertNodeList rebuilds the optimized working set into real
// prim.Primitive values: a leaf object is returned as-is, a union node is
// rebuilt with its (possibly regrouped) children, and a bound node
// becomes a *Bound wrapping its converted children.
func convertNodeList(nodes []*optNode) []prim.Primitive {
	out := make([]prim.Primitive, 0, len(nodes))
	for _, n := range nodes {
		switch n.kind {
		case nodeObject:
			out = append(out, n.object)
		case nodeUnion:
			// The regrouped children are already-initialized objects with
			// their real composed transforms baked in; NewUnion just
			// collects them into a new list, mirroring Bound's own
			// no-op Init below -- calling Init here would cascade a
			// fresh identity transform into every descendant leaf.
			out = append(out, prim.NewUnion(convertNodeList(n.children)...))
		default: // nodeBound
			children := convertNodeList(n.children)
			box := geom.NewBBox()
			for _, c := range children {
				box.FitBox(c.Bound(nil))
			}
			out = append(out, &Bound{objects: children, box: box})
		}
	}
	return out
}

// Build regroups a scene's flat top-level primitive list into a tree of
// Bound nodes that minimizes the expected per-ray traversal cost. eye
// seeds the scene-extent weight every node's cost is scored against,
// matching the camera origin. Returns objs unchanged if there is
// nothing to optimize.
func Build(costs *prim.CostTable, eye lin.V3, objs []prim.Primitive) []prim.Primitive {
	nodes := makeOptNodeList(costs, objs)
	if len(nodes) == 0 {
		return objs
	}

	box := geom.NewBBox()
	box.FitPoint(&eye)
	for _, n := range nodes {
		box.FitBox(n.box)
	}
	sceneWeight := box.Weight()

	nodes = optimizeList(nodes, sceneWeight, costs.Bound)
	return convertNodeList(nodes)
}

// Cost reports the current expected per-ray traversal cost of a top-level
// primitive list under eye's scene weight, for before/after logging
// around a Build call.
func Cost(costs *prim.CostTable, eye lin.V3, objs []prim.Primitive) float64 {
	nodes := makeOptNodeList(costs, objs)
	box := geom.NewBBox()
	box.FitPoint(&eye)
	for _, n := range nodes {
		box.FitBox(n.box)
	}
	return treeCost(nodes, box.Weight())
}
