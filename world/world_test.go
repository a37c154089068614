package world

import (
	"errors"
	"testing"

	"github.com/lixenwraith/warpzone/config"
	"github.com/lixenwraith/warpzone/entity"
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/vmath"
)

func testTemplate(name string) *config.WorldTemplate {
	return &config.WorldTemplate{
		Name: name,
		Areas: []config.AreaTemplate{
			{W: 1000, H: 480, Enemies: []config.EnemyGroup{
				{Types: []string{"normal"}, Radius: 10, Speed: 5, Count: 4},
				{Types: []string{"wall", "sniper"}, Radius: 12, Speed: 3, Count: 3},
			}},
			{W: 1600, H: 480},
		},
	}
}

func testPlayer(world string, area int, x, y float64) *hero.Player {
	p := hero.NewPlayer(1, "p", nil, hero.DefaultSpawn(world), vmath.NewFastRand(1))
	p.Area = area
	p.Pos = vmath.Vec2{X: x, Y: y}
	return p
}

func TestAreaLifecycle(t *testing.T) {
	w := NewWorld(testTemplate("Alpha"))
	a := w.Area(0)
	rng := vmath.NewFastRand(5)

	if a.EntityCount() != 0 {
		t.Fatalf("Expected empty area before join, got %d", a.EntityCount())
	}

	populated, err := a.Join(1, rng)
	if err != nil || !populated {
		t.Fatalf("Expected first join to populate, got populated=%v err=%v", populated, err)
	}
	if a.EntityCount() != 7 {
		t.Errorf("Expected 7 entities, got %d", a.EntityCount())
	}

	populated, _ = a.Join(2, rng)
	if populated || a.EntityCount() != 7 {
		t.Errorf("Expected second join not to repopulate, got populated=%v count=%d", populated, a.EntityCount())
	}

	if a.Leave(1) {
		t.Error("Expected area to stay populated with one player left")
	}
	if !a.Leave(2) {
		t.Error("Expected last leave to clear")
	}
	if a.EntityCount() != 0 || len(a.PackEntities()) != 0 {
		t.Errorf("Expected no entities after last leave, got %d", a.EntityCount())
	}

	a.Join(3, rng)
	if id := a.Entities()[0].Base().ID; id != 0 {
		t.Errorf("Expected id counter reset to 0, got first id %d", id)
	}
}

func TestAreaIDsMonotonic(t *testing.T) {
	a := NewArea("Alpha", 0, config.AreaTemplate{W: 100, H: 100})
	rng := vmath.NewFastRand(1)
	props := entity.Props{Radius: 5, Speed: 1, Boundary: a.Boundary()}

	first, _ := entity.New("normal", props, entity.Group{Count: 1}, rng)
	second, _ := entity.New("normal", props, entity.Group{Count: 1}, rng)
	id0 := a.Add(first)
	id1 := a.Add(second)
	first.Base().ToRemove = true

	removed := a.RemoveFlagged()
	if len(removed) != 1 || removed[0] != id0 {
		t.Fatalf("Expected [%d] removed, got %v", id0, removed)
	}
	if _, ok := a.Entity(id0); ok {
		t.Error("Expected removed entity lookup to fail")
	}

	third, _ := entity.New("normal", props, entity.Group{Count: 1}, rng)
	if id := a.Add(third); id != id1+1 {
		t.Errorf("Expected id %d, got %d", id1+1, id)
	}
}

func TestPopulateSkipsUnknownKinds(t *testing.T) {
	a := NewArea("Alpha", 0, config.AreaTemplate{W: 100, H: 100, Enemies: []config.EnemyGroup{
		{Types: []string{"dragon"}, Radius: 5, Count: 2},
		{Types: []string{"normal"}, Radius: 5, Count: 1},
	}})
	populated, err := a.Join(1, vmath.NewFastRand(1))
	if !populated {
		t.Fatal("Expected population")
	}
	if !errors.Is(err, entity.ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}
	if a.EntityCount() != 1 {
		t.Errorf("Expected the valid entry to spawn, got %d entities", a.EntityCount())
	}
}

func TestPlayerBoundary(t *testing.T) {
	a := NewArea("Alpha", 0, config.AreaTemplate{W: 1000, H: 480})
	b := a.PlayerBoundary()
	if b.X != -320 || b.W != 1640 || b.H != 480 {
		t.Errorf("Expected {-320 0 1640 480}, got %+v", b)
	}
	packed := a.Pack()
	if packed.W != 10000 || packed.H != 4800 || packed.World != "Alpha" {
		t.Errorf("Expected packed 10000x4800 Alpha, got %+v", packed)
	}
}

func TestDetect(t *testing.T) {
	atlas := NewAtlas([]*config.WorldTemplate{testTemplate("Alpha"), testTemplate("Beta")})

	tests := []struct {
		name string
		area int
		x, y float64
		want Change
	}{
		{"inside", 0, 500, 240, ChangeNone},
		{"past right margin", 0, 1000 + 256 + 1, 240, ChangeNextArea},
		{"at right margin", 0, 1000 + 256 - 15, 240, ChangeNone},
		{"last area right edge", 1, 1600 + 300, 240, ChangeNone},
		{"past left margin", 1, -256 - 1, 240, ChangePrevArea},
		{"first area left margin", 0, -10, 240, ChangeNone},
		{"top left corner", 0, 10, 20, ChangeNextWorld},
		{"bottom left corner", 0, 10, 470, ChangePrevWorld},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPlayer("Alpha", tt.area, tt.x, tt.y)
			if got := atlas.Detect(p); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDestination(t *testing.T) {
	atlas := NewAtlas([]*config.WorldTemplate{testTemplate("Alpha"), testTemplate("Beta")})

	p := testPlayer("Alpha", 0, 1000+256+1, 240)
	w, area, pos, ok := atlas.Destination(p, ChangeNextArea)
	if !ok || w.Name != "Alpha" || area != 1 || pos.X != -256+15 || pos.Y != 240 {
		t.Errorf("Expected Alpha/1 at x=-241, got %v/%d at %+v ok=%v", w, area, pos, ok)
	}

	p = testPlayer("Alpha", 1, -300, 240)
	_, area, pos, ok = atlas.Destination(p, ChangePrevArea)
	if !ok || area != 0 || pos.X != 1000+256-15 {
		t.Errorf("Expected area 0 at x=1241, got %d at %+v", area, pos)
	}

	p = testPlayer("Beta", 0, 10, 20)
	w, _, pos, ok = atlas.Destination(p, ChangeNextWorld)
	if !ok || w.Name != "Alpha" || pos.Y != 480-15-64 {
		t.Errorf("Expected wrap to Alpha at y=401, got %v at %+v", w, pos)
	}

	p = testPlayer("Alpha", 0, 10, 470)
	w, _, pos, ok = atlas.Destination(p, ChangePrevWorld)
	if !ok || w.Name != "Beta" || pos.Y != 15+64 {
		t.Errorf("Expected wrap to Beta at y=79, got %v at %+v", w, pos)
	}
}

func TestAtlasLookup(t *testing.T) {
	atlas := NewAtlas([]*config.WorldTemplate{testTemplate("Alpha")})
	if atlas.Next("Alpha").Name != "Alpha" || atlas.Prev("Alpha").Name != "Alpha" {
		t.Error("Expected single world to wrap onto itself")
	}
	if atlas.Zone("Alpha", 2) != nil || atlas.Zone("Nowhere", 0) != nil {
		t.Error("Expected unknown zones to be nil")
	}
	if atlas.Zone("Alpha", 1) == nil {
		t.Error("Expected Alpha/1 to exist")
	}
}
