package engine

import (
	"testing"

	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

func TestEnemiesAlongPathOrdersByProgress(t *testing.T) {
	e, _ := newTestEngine(t)

	trailing := spawnTestEnemy(t, e, "ENEMY_GRUNT")
	middle := spawnTestEnemy(t, e, "ENEMY_GRUNT")
	leading := spawnTestEnemy(t, e, "ENEMY_GRUNT")

	// Hand-position the three at different points along the route.
	mid := e.enemyPtr(middle)
	mid.PathIndex = 5
	mid.X, mid.Y = e.center(e.Path()[4])
	lead := e.enemyPtr(leading)
	lead.PathIndex = 12
	lead.X, lead.Y = e.center(e.Path()[11])
	e.alongPathDirty = true

	got := e.EnemiesAlongPath()
	want := []slotmap.Handle{leading, middle, trailing}
	if len(got) != len(want) {
		t.Fatalf("got %d enemies, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEnemiesAlongPathCacheInvalidation(t *testing.T) {
	e, _ := newTestEngine(t)
	spawnTestEnemy(t, e, "ENEMY_GRUNT")

	first := e.EnemiesAlongPath()
	if e.alongPathDirty {
		t.Fatal("cache still dirty after rebuild")
	}

	// A spawn invalidates; a kill invalidates.
	h := spawnTestEnemy(t, e, "ENEMY_RUNNER")
	second := e.EnemiesAlongPath()
	if len(second) != len(first)+1 {
		t.Fatalf("cache not rebuilt after spawn: %d enemies", len(second))
	}

	e.applyDamage(h, 100000, true, slotmap.Nil)
	third := e.EnemiesAlongPath()
	if len(third) != 1 {
		t.Fatalf("cache not rebuilt after kill: %d enemies", len(third))
	}
}

func TestEnemiesInRangeIsExact(t *testing.T) {
	e, _ := newTestEngine(t)
	near := spawnTestEnemy(t, e, "ENEMY_GRUNT")
	far := spawnTestEnemy(t, e, "ENEMY_GRUNT")

	nearEn := e.enemyPtr(near)
	farEn := e.enemyPtr(far)
	farEn.X, farEn.Y = nearEn.X+300, nearEn.Y
	e.spatialIdx.Update(far, farEn.X, farEn.Y)

	got := e.EnemiesInRange(nearEn.X, nearEn.Y, 50)
	if len(got) != 1 || got[0] != near {
		t.Fatalf("EnemiesInRange = %v, want only the near enemy", got)
	}
}

func TestQueryLookupsMissOnStaleHandles(t *testing.T) {
	e, _ := newTestEngine(t)
	h := spawnTestEnemy(t, e, "ENEMY_GRUNT")
	e.RemoveEnemy(h)

	if _, ok := e.Enemy(h); ok {
		t.Fatal("stale enemy handle resolved")
	}
	if _, ok := e.Tower(slotmap.Nil); ok {
		t.Fatal("nil tower handle resolved")
	}
}
