package surface

import (
	"container/heap"
	"fmt"
	"math"
	"slices"

	"github.com/Faultbox/meshwalk/pkg/mesh"
)

// CostFunc returns the cost of stepping between two adjacent triangles.
type CostFunc func(from, to int) float64

// CentroidDistance costs a step by the distance between triangle centroids.
func CentroidDistance(msh *mesh.Mesh) CostFunc {
	return func(from, to int) float64 {
		return msh.Centroid(from).Distance(msh.Centroid(to))
	}
}

func hopCost(_, _ int) float64 { return 1 }

// PathNode is a triangle queued for expansion.
type PathNode struct {
	Triangle int
	Cost     float64 // Cost from start
	Index    int     // Index in heap
}

// PathHeap implements a priority queue for the weighted search.
type PathHeap []*PathNode

func (h PathHeap) Len() int           { return len(h) }
func (h PathHeap) Less(i, j int) bool { return h[i].Cost < h[j].Cost }
func (h PathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

func (h *PathHeap) Push(x interface{}) {
	n := len(*h)
	node := x.(*PathNode)
	node.Index = n
	*h = append(*h, node)
}

func (h *PathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*h = old[0 : n-1]
	return node
}

// CoarsePath returns the triangles from start's triangle to end's
// triangle, both included, with the fewest edge crossings.
func CoarsePath(start, end Coord) ([]int, error) {
	if err := checkEnds(start, end); err != nil {
		return nil, err
	}
	msh := start.mesh
	from, to := start.triangle, end.triangle
	if from == to {
		return []int{from}, nil
	}

	dist := unvisited(msh.TriangleCount())
	dist[from] = 0
	queue := []int{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == to {
			break
		}
		for _, n := range msh.AdjacentTriangles(current) {
			if n == mesh.NoNeighbor || !math.IsInf(dist[n], 1) {
				continue
			}
			dist[n] = dist[current] + 1
			queue = append(queue, n)
		}
	}

	return reconstructPath(msh, dist, from, to, hopCost)
}

// WeightedCoarsePath is CoarsePath minimising the summed step cost.
// Costs must be positive.
func WeightedCoarsePath(start, end Coord, cost CostFunc) ([]int, error) {
	if err := checkEnds(start, end); err != nil {
		return nil, err
	}
	msh := start.mesh
	from, to := start.triangle, end.triangle
	if from == to {
		return []int{from}, nil
	}

	dist := unvisited(msh.TriangleCount())
	dist[from] = 0
	closed := make([]bool, msh.TriangleCount())
	nodes := make(map[int]*PathNode)

	openSet := &PathHeap{}
	heap.Init(openSet)
	startNode := &PathNode{Triangle: from}
	heap.Push(openSet, startNode)
	nodes[from] = startNode

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*PathNode)
		if current.Triangle == to {
			break
		}
		closed[current.Triangle] = true

		for _, n := range msh.AdjacentTriangles(current.Triangle) {
			if n == mesh.NoNeighbor || closed[n] {
				continue
			}
			c := current.Cost + cost(current.Triangle, n)
			neighbor, exists := nodes[n]
			if !exists {
				neighbor = &PathNode{Triangle: n, Cost: c}
				nodes[n] = neighbor
				dist[n] = c
				heap.Push(openSet, neighbor)
			} else if c < neighbor.Cost {
				neighbor.Cost = c
				dist[n] = c
				heap.Fix(openSet, neighbor.Index)
			}
		}
	}

	return reconstructPath(msh, dist, from, to, cost)
}

func checkEnds(start, end Coord) error {
	if start.mesh == nil || end.mesh == nil {
		return ErrNilMesh
	}
	if start.mesh != end.mesh {
		return ErrDifferentMesh
	}
	return nil
}

func unvisited(n int) []float64 {
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	return dist
}

// reconstructPath walks back from to, each step moving to the neighbour
// with a strictly smaller distance that best explains the current one.
func reconstructPath(msh *mesh.Mesh, dist []float64, from, to int, cost CostFunc) ([]int, error) {
	if math.IsInf(dist[to], 1) {
		return nil, fmt.Errorf("triangle %d from %d: %w", to, from, ErrUnreachable)
	}

	path := []int{to}
	for current := to; dist[current] > 0; {
		prev := mesh.NoNeighbor
		best := math.Inf(1)
		for _, n := range msh.AdjacentTriangles(current) {
			if n == mesh.NoNeighbor || dist[n] >= dist[current] {
				continue
			}
			if via := dist[n] + cost(n, current); via < best {
				prev, best = n, via
			}
		}
		if prev == mesh.NoNeighbor {
			return nil, fmt.Errorf("triangle %d from %d: %w", to, from, ErrUnreachable)
		}
		path = append(path, prev)
		current = prev
	}

	slices.Reverse(path)
	return path, nil
}
