// pkg/grid/pathfinding.go
package grid

import (
	"github.com/LupusDei/space-towers-sub001/pkg/minheap"
)

// FindPath runs A* from start to goal over the grid, 4-directional unit-cost
// movement with a Manhattan heuristic. extraBlocked cells are treated as
// impassable on top of the grid's own state, which lets callers probe
// hypothetical placements without copying the grid. Returns nil when no path
// exists; tie-breaks among equal f-scores follow heap order, so two runs may
// produce different (equally short) shapes.
func FindPath(g *Grid, start, goal Coord, extraBlocked map[Coord]bool) []Coord {
	if g == nil || g.width == 0 || g.height == 0 {
		return nil
	}
	if !walkableFor(g, start, extraBlocked) || !walkableFor(g, goal, extraBlocked) {
		return nil
	}
	if start == goal {
		return []Coord{start}
	}

	open := minheap.New[Coord]()
	open.Insert(start, float64(manhattan(start, goal)))

	cameFrom := make(map[Coord]Coord)
	costSoFar := map[Coord]int{start: 0}

	for open.Len() > 0 {
		current, _, _ := open.ExtractMin()
		if current == goal {
			return reconstructPath(cameFrom, start, goal)
		}

		for _, next := range neighbors(current) {
			if !walkableFor(g, next, extraBlocked) {
				continue
			}
			newCost := costSoFar[current] + 1
			if prev, seen := costSoFar[next]; !seen || newCost < prev {
				costSoFar[next] = newCost
				cameFrom[next] = current
				priority := float64(newCost + manhattan(next, goal))
				if open.Has(next) {
					open.DecreaseKey(next, priority)
				} else {
					open.Insert(next, priority)
				}
			}
		}
	}
	return nil
}

// WouldBlockPath reports whether placing an obstacle at candidate would leave
// the grid without any spawn-to-exit route. The probe is non-destructive: the
// candidate is injected through FindPath's extra-blocked set instead of
// mutating or copying the grid. Callers that already know the spawn and exit
// coordinates pass them to skip the scan on every hover test.
//
// Returns true (placement forbidden) for out-of-bounds input, a missing spawn
// or exit, or placement on the spawn/exit cell itself.
func WouldBlockPath(g *Grid, candidate Coord, spawn, exit *Coord) bool {
	if g == nil || !g.InBounds(candidate) {
		return true
	}

	var s, e Coord
	if spawn != nil {
		s = *spawn
	} else {
		var ok bool
		if s, ok = g.FindCell(Spawn); !ok {
			return true
		}
	}
	if exit != nil {
		e = *exit
	} else {
		var ok bool
		if e, ok = g.FindCell(Exit); !ok {
			return true
		}
	}

	if candidate == s || candidate == e {
		return true
	}

	blocked := map[Coord]bool{candidate: true}
	return FindPath(g, s, e, blocked) == nil
}

func walkableFor(g *Grid, c Coord, extraBlocked map[Coord]bool) bool {
	if extraBlocked != nil && extraBlocked[c] {
		return false
	}
	return g.Cell(c).Walkable()
}

func neighbors(c Coord) [4]Coord {
	return [4]Coord{
		{X: c.X - 1, Y: c.Y},
		{X: c.X + 1, Y: c.Y},
		{X: c.X, Y: c.Y - 1},
		{X: c.X, Y: c.Y + 1},
	}
}

func manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func reconstructPath(cameFrom map[Coord]Coord, start, goal Coord) []Coord {
	path := []Coord{goal}
	for current := goal; current != start; {
		current = cameFrom[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
