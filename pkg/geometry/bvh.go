package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

const (
	// maxLeafShapes is the largest number of shapes stored in one leaf
	maxLeafShapes = 4
	// sahBins is the number of centroid buckets evaluated per split
	sahBins = 12
	// maxSAHDepth switches construction to median splits, which bounds tree depth
	maxSAHDepth = 32
	// traversalStackSize covers every tree the builder can produce without growing
	traversalStackSize = 64
)

// bvhNode is one entry of the flat node arena. Interior nodes reference
// their children by index; leaves reference a range of the shapes slice.
type bvhNode struct {
	bounds core.AABB
	left   int32 // Child indices, unused in leaves
	right  int32
	first  int32 // First shape of a leaf
	count  int32 // Shape count, zero for interior nodes
}

// BVH is a bounding volume hierarchy stored as an arena of nodes. It is
// immutable after construction and safe for concurrent Hit calls.
type BVH struct {
	nodes  []bvhNode
	shapes []Shape // Reordered so every leaf owns a contiguous range
}

// buildItem caches per-shape data used during construction
type buildItem struct {
	shape    Shape
	bounds   core.AABB
	centroid core.Vec3
}

// NewBVH constructs a BVH over shapes. The input slice is not modified.
func NewBVH(shapes []Shape) *BVH {
	bvh := &BVH{}
	if len(shapes) == 0 {
		return bvh
	}

	items := make([]buildItem, len(shapes))
	for i, shape := range shapes {
		box := shape.BoundingBox()
		items[i] = buildItem{shape: shape, bounds: box, centroid: box.Center()}
	}

	bvh.nodes = make([]bvhNode, 0, 2*len(shapes)/maxLeafShapes+1)
	bvh.shapes = make([]Shape, 0, len(shapes))
	bvh.build(items, 0)
	return bvh
}

// build appends the subtree for items and returns its root index
func (b *BVH) build(items []buildItem, depth int) int32 {
	bounds := core.EmptyAABB()
	centroids := core.EmptyAABB()
	for _, it := range items {
		bounds = bounds.Union(it.bounds)
		centroids = centroids.Extend(it.centroid)
	}

	index := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{bounds: bounds})

	if len(items) <= maxLeafShapes {
		b.nodes[index].first = int32(len(b.shapes))
		b.nodes[index].count = int32(len(items))
		for _, it := range items {
			b.shapes = append(b.shapes, it.shape)
		}
		return index
	}

	axis := centroids.LongestAxis()
	mid := -1
	if depth < maxSAHDepth {
		mid = partitionSAH(items, axis, centroids)
	}
	if mid <= 0 || mid >= len(items) {
		mid = partitionMedian(items, axis)
	}

	left := b.build(items[:mid], depth+1)
	right := b.build(items[mid:], depth+1)
	b.nodes[index].left = left
	b.nodes[index].right = right
	return index
}

// partitionSAH buckets centroids along axis, picks the boundary with the
// lowest surface area cost and partitions items around it. It returns the
// split index or -1 when the centroids cannot be separated.
func partitionSAH(items []buildItem, axis int, centroids core.AABB) int {
	lo := centroids.Min.Axis(axis)
	extent := centroids.Max.Axis(axis) - lo
	if extent <= 0 {
		return -1
	}

	bucketOf := func(it buildItem) int {
		bin := int(sahBins * (it.centroid.Axis(axis) - lo) / extent)
		return min(bin, sahBins-1)
	}

	var counts [sahBins]int
	var boxes [sahBins]core.AABB
	for i := range boxes {
		boxes[i] = core.EmptyAABB()
	}
	for _, it := range items {
		bin := bucketOf(it)
		counts[bin]++
		boxes[bin] = boxes[bin].Union(it.bounds)
	}

	// Sweep from the right to get suffix areas, then from the left for the cost
	var rightArea [sahBins]float64
	var rightCount [sahBins]int
	acc := core.EmptyAABB()
	n := 0
	for i := sahBins - 1; i > 0; i-- {
		acc = acc.Union(boxes[i])
		n += counts[i]
		rightArea[i] = acc.SurfaceArea()
		rightCount[i] = n
	}

	bestCost := -1.0
	bestSplit := -1
	acc = core.EmptyAABB()
	n = 0
	for i := 0; i < sahBins-1; i++ {
		acc = acc.Union(boxes[i])
		n += counts[i]
		if n == 0 || rightCount[i+1] == 0 {
			continue
		}
		cost := float64(n)*acc.SurfaceArea() + float64(rightCount[i+1])*rightArea[i+1]
		if bestSplit < 0 || cost < bestCost {
			bestCost = cost
			bestSplit = i
		}
	}
	if bestSplit < 0 {
		return -1
	}

	// In-place partition: buckets <= bestSplit to the front
	mid := 0
	for i := range items {
		if bucketOf(items[i]) <= bestSplit {
			items[i], items[mid] = items[mid], items[i]
			mid++
		}
	}
	return mid
}

// partitionMedian sorts items by centroid along axis and splits them in half
func partitionMedian(items []buildItem, axis int) int {
	sort.Slice(items, func(i, j int) bool {
		return items[i].centroid.Axis(axis) < items[j].centroid.Axis(axis)
	})
	return len(items) / 2
}

// stackEntry is a node waiting to be visited with its box entry distance
type stackEntry struct {
	node  int32
	entry float64
}

// Hit finds the closest intersection in [tMin, tMax]. Children are visited
// nearest first and nodes whose entry distance lies beyond the closest hit
// are skipped.
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closest material.HitRecord
	if len(b.nodes) == 0 {
		return closest, false
	}
	rootEntry, ok := b.nodes[0].bounds.Hit(ray, tMin, tMax)
	if !ok {
		return closest, false
	}

	var buf [traversalStackSize]stackEntry
	stack := append(buf[:0], stackEntry{node: 0, entry: rootEntry})
	closestT := tMax
	hitAnything := false

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.entry > closestT {
			continue
		}

		node := &b.nodes[top.node]
		if node.count > 0 {
			for _, shape := range b.shapes[node.first : node.first+node.count] {
				if hit, ok := shape.Hit(ray, tMin, closestT); ok {
					closestT = hit.T
					closest = hit
					hitAnything = true
				}
			}
			continue
		}

		leftEntry, hitLeft := b.nodes[node.left].bounds.Hit(ray, tMin, closestT)
		rightEntry, hitRight := b.nodes[node.right].bounds.Hit(ray, tMin, closestT)
		switch {
		case hitLeft && hitRight:
			// Push the farther child first so the nearer one is popped next
			if leftEntry <= rightEntry {
				stack = append(stack, stackEntry{node.right, rightEntry}, stackEntry{node.left, leftEntry})
			} else {
				stack = append(stack, stackEntry{node.left, leftEntry}, stackEntry{node.right, rightEntry})
			}
		case hitLeft:
			stack = append(stack, stackEntry{node.left, leftEntry})
		case hitRight:
			stack = append(stack, stackEntry{node.right, rightEntry})
		}
	}
	return closest, hitAnything
}

// BoundingBox returns the bounds of every shape in the hierarchy
func (b *BVH) BoundingBox() core.AABB {
	if len(b.nodes) == 0 {
		return core.EmptyAABB()
	}
	return b.nodes[0].bounds
}

// NodeCount returns the number of nodes in the arena
func (b *BVH) NodeCount() int {
	return len(b.nodes)
}

// ShapeCount returns the number of shapes in the hierarchy
func (b *BVH) ShapeCount() int {
	return len(b.shapes)
}

// Depth returns the length of the longest root-to-leaf path
func (b *BVH) Depth() int {
	if len(b.nodes) == 0 {
		return 0
	}
	var depth func(i int32) int
	depth = func(i int32) int {
		n := &b.nodes[i]
		if n.count > 0 {
			return 1
		}
		return 1 + max(depth(n.left), depth(n.right))
	}
	return depth(0)
}
