package grid

import "testing"

// corridor builds a 1-row grid: SPAWN EMPTY EMPTY EXIT.
func corridor() *Grid {
	g := New(4, 1)
	g.SetCell(Coord{X: 0, Y: 0}, Spawn)
	g.SetCell(Coord{X: 3, Y: 0}, Exit)
	return g
}

func TestFindPathStraightCorridor(t *testing.T) {
	g := corridor()
	path := FindPath(g, Coord{0, 0}, Coord{3, 0}, nil)
	want := []Coord{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	if len(path) != len(want) {
		t.Fatalf("path length = %d, want %d (%v)", len(path), len(want), path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}
}

func TestFindPathSameStartAndGoal(t *testing.T) {
	g := New(3, 3)
	path := FindPath(g, Coord{1, 1}, Coord{1, 1}, nil)
	if len(path) != 1 || path[0] != (Coord{1, 1}) {
		t.Errorf("FindPath(s, s) = %v, want [s]", path)
	}
}

func TestFindPathFailures(t *testing.T) {
	if got := FindPath(New(0, 0), Coord{}, Coord{}, nil); got != nil {
		t.Errorf("empty grid: path = %v, want nil", got)
	}

	g := New(3, 3)
	if got := FindPath(g, Coord{-1, 0}, Coord{2, 2}, nil); got != nil {
		t.Errorf("out-of-bounds start: path = %v, want nil", got)
	}
	if got := FindPath(g, Coord{0, 0}, Coord{5, 5}, nil); got != nil {
		t.Errorf("out-of-bounds goal: path = %v, want nil", got)
	}

	g.SetCell(Coord{2, 2}, Tower)
	if got := FindPath(g, Coord{0, 0}, Coord{2, 2}, nil); got != nil {
		t.Errorf("non-walkable goal: path = %v, want nil", got)
	}
}

func TestFindPathAvoidsBlockedCells(t *testing.T) {
	// A wall across the middle column with one gap at the bottom.
	g := New(5, 5)
	for y := 0; y < 4; y++ {
		g.SetCell(Coord{X: 2, Y: y}, Blocked)
	}
	path := FindPath(g, Coord{0, 0}, Coord{4, 0}, nil)
	if path == nil {
		t.Fatal("expected a path around the wall")
	}
	for _, c := range path {
		if g.Cell(c) == Blocked {
			t.Errorf("path contains blocked cell %v", c)
		}
	}
	if path[0] != (Coord{0, 0}) || path[len(path)-1] != (Coord{4, 0}) {
		t.Errorf("path endpoints = %v .. %v", path[0], path[len(path)-1])
	}
	// Detour through (2,4): 4 right + 4 down + 4 up = optimal length 13 cells.
	if len(path) != 13 {
		t.Errorf("path length = %d, want 13 (optimal around the wall)", len(path))
	}
}

func TestFindPathHonorsExtraBlocked(t *testing.T) {
	g := corridor()
	blocked := map[Coord]bool{{X: 2, Y: 0}: true}
	if got := FindPath(g, Coord{0, 0}, Coord{3, 0}, blocked); got != nil {
		t.Errorf("extra-blocked corridor: path = %v, want nil", got)
	}
}

func TestWouldBlockPath(t *testing.T) {
	g := corridor()

	cases := []struct {
		name      string
		candidate Coord
		want      bool
	}{
		{"out of bounds", Coord{X: -1, Y: 0}, true},
		{"on spawn", Coord{X: 0, Y: 0}, true},
		{"on exit", Coord{X: 3, Y: 0}, true},
		{"severs the only corridor", Coord{X: 1, Y: 0}, true},
	}
	for _, tc := range cases {
		if got := WouldBlockPath(g, tc.candidate, nil, nil); got != tc.want {
			t.Errorf("%s: WouldBlockPath = %v, want %v", tc.name, got, tc.want)
		}
	}

	// With an alternate route the same placement must be allowed.
	wide := New(4, 2)
	wide.SetCell(Coord{X: 0, Y: 0}, Spawn)
	wide.SetCell(Coord{X: 3, Y: 0}, Exit)
	if WouldBlockPath(wide, Coord{X: 1, Y: 0}, nil, nil) {
		t.Error("placement with a surviving detour should not block")
	}
}

func TestWouldBlockPathMissingEndpoints(t *testing.T) {
	g := New(4, 1)
	g.SetCell(Coord{X: 0, Y: 0}, Spawn)
	if !WouldBlockPath(g, Coord{X: 1, Y: 0}, nil, nil) {
		t.Error("missing exit must report blocking")
	}

	g2 := New(4, 1)
	g2.SetCell(Coord{X: 3, Y: 0}, Exit)
	if !WouldBlockPath(g2, Coord{X: 1, Y: 0}, nil, nil) {
		t.Error("missing spawn must report blocking")
	}
}

func TestWouldBlockPathCachedEndpoints(t *testing.T) {
	g := corridor()
	spawn := Coord{X: 0, Y: 0}
	exit := Coord{X: 3, Y: 0}
	if !WouldBlockPath(g, Coord{X: 2, Y: 0}, &spawn, &exit) {
		t.Error("cached-endpoint probe should match the scanning variant")
	}
}
