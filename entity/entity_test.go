package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/warpzone/effect"
	"github.com/lixenwraith/warpzone/event"
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

var testBound = vmath.Boundary{W: 1000, H: 500}

func testProps(radius, speed float64) Props {
	return Props{Radius: radius, Speed: speed, Boundary: testBound}
}

func testCtx(players ...*hero.Player) *UpdateContext {
	return &UpdateContext{
		Delta:   parameter.TargetFrameMs,
		TimeFix: 1,
		Players: players,
		Bus:     event.NewBus(),
		Zone:    event.Zone{World: "test"},
		Rng:     vmath.NewFastRand(42),
	}
}

func testPlayerAt(id int64, x, y float64) *hero.Player {
	p := hero.NewPlayer(id, "p", nil, hero.DefaultSpawn("test"), vmath.NewFastRand(1))
	p.Pos = vmath.Vec2{X: x, Y: y}
	return p
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestRegistry(t *testing.T) {
	if got := len(Names()); got != 20 {
		t.Errorf("Expected 20 spawnable kinds, got %d", got)
	}
	for _, name := range []string{"normal", "wall", "bee", "storm_cloud", "homing_sniper"} {
		if !Exists(name) {
			t.Errorf("Expected kind %q to exist", name)
		}
	}
	if Exists("bullet") {
		t.Error("Expected projectiles to be internal")
	}

	_, err := New("dragon", testProps(10, 5), Group{Count: 1}, vmath.NewFastRand(1))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}

	e, err := New("immune", testProps(10, 5), Group{Count: 1}, vmath.NewFastRand(1))
	if err != nil {
		t.Fatalf("Expected immune to construct, got %v", err)
	}
	if !e.Base().Immune || e.Base().TypeID != TypeImmune {
		t.Errorf("Expected immune body with type %d, got %+v", TypeImmune, e.Base())
	}
}

func TestConstructionInsideBoundary(t *testing.T) {
	rng := vmath.NewFastRand(3)
	for i := 0; i < 100; i++ {
		e := NewNormal(testProps(10, 5), Group{Count: 1}, rng)
		b := e.Base()
		if !testBound.Contains(b.Pos) {
			t.Fatalf("Expected position inside boundary, got %+v", b.Pos)
		}
		if !near(b.Vel.Magnitude(), 5) {
			t.Fatalf("Expected speed 5, got %v", b.Vel.Magnitude())
		}
		if b.Alpha != 1 {
			t.Fatalf("Expected alpha 1, got %v", b.Alpha)
		}
	}
}

func TestCollideReflects(t *testing.T) {
	e := NewNormal(testProps(10, 5), Group{Count: 1}, vmath.NewFastRand(1))
	b := e.Base()
	b.Pos = vmath.Vec2{X: 995, Y: 5}
	b.Vel = vmath.Vec2{X: 5, Y: -5}

	e.Update(testCtx())

	if b.Pos.X != 990 || b.Pos.Y != 10 {
		t.Errorf("Expected clamped position (990, 10), got %+v", b.Pos)
	}
	if b.Vel.X != -5 || b.Vel.Y != 5 {
		t.Errorf("Expected reflected velocity (-5, 5), got %+v", b.Vel)
	}
}

func TestContactKnock(t *testing.T) {
	e := NewNormal(testProps(10, 0), Group{Count: 1}, vmath.NewFastRand(1))
	b := e.Base()
	b.Pos = vmath.Vec2{X: 500, Y: 250}
	ctx := testCtx()

	immortal := testPlayerAt(1, 510, 250)
	immortal.Immortal = true
	e.Interact(immortal, ctx)
	if immortal.Downed {
		t.Error("Expected immortal player to survive contact")
	}

	far := testPlayerAt(2, 526, 250)
	e.Interact(far, ctx)
	if far.Downed {
		t.Error("Expected player just out of reach to survive")
	}

	b.Harmless = true
	touching := testPlayerAt(3, 520, 250)
	e.Interact(touching, ctx)
	if touching.Downed {
		t.Error("Expected harmless entity not to knock")
	}

	b.Harmless = false
	e.Interact(touching, ctx)
	if !touching.Downed {
		t.Error("Expected touching player to be knocked")
	}

	// warp margin players are out of reach
	b.Pos = vmath.Vec2{X: 0, Y: 250}
	margin := testPlayerAt(4, -16, 250)
	e.Interact(margin, ctx)
	if margin.Downed {
		t.Error("Expected player in the warp margin to be ignored")
	}
}

func TestWallPlacement(t *testing.T) {
	e := NewWall(testProps(10, 4), Group{Count: 1, Num: 0}, vmath.NewFastRand(1))
	b := e.Base()
	if b.Pos.X != 510 || b.Pos.Y != 10 {
		t.Errorf("Expected wall at (510, 10), got %+v", b.Pos)
	}
	if !near(b.Vel.X, 4) || b.Vel.Y != 0 {
		t.Errorf("Expected velocity (4, 0), got %+v", b.Vel)
	}
	if !b.Immune {
		t.Error("Expected wall to be immune")
	}

	inv := NewWall(testProps(10, 4), Group{Count: 1, Num: 0, Inverse: true}, vmath.NewFastRand(1))
	if !near(inv.Base().Vel.X, -4) {
		t.Errorf("Expected inverse wall velocity -4, got %v", inv.Base().Vel.X)
	}
}

func TestWarpAround(t *testing.T) {
	inner := testBound.Inset(10)

	tests := []struct {
		length float64
		pos    vmath.Vec2
		side   int
	}{
		{0, vmath.Vec2{X: 10, Y: 10}, 0},
		{1080, vmath.Vec2{X: 990, Y: 110}, 1},
		{1560, vmath.Vec2{X: 890, Y: 490}, 2},
		{2490, vmath.Vec2{X: 10, Y: 440}, 3},
		{2920 + 100, vmath.Vec2{X: 110, Y: 10}, 0},
	}
	for _, tt := range tests {
		pos, side := warpAround(inner, tt.length)
		if side != tt.side || !near(pos.X, tt.pos.X) || !near(pos.Y, tt.pos.Y) {
			t.Errorf("warpAround(%v): expected %+v side %d, got %+v side %d", tt.length, tt.pos, tt.side, pos, side)
		}
	}
}

func TestWallTurnsAtCorner(t *testing.T) {
	w := NewWall(testProps(10, 10), Group{Count: 1}, vmath.NewFastRand(1)).(*Wall)
	w.Pos = vmath.Vec2{X: 985, Y: 10}
	w.Vel = vmath.Vec2{X: 10}
	w.Speed = 10

	w.Update(testCtx())

	if w.Pos.X != 990 {
		t.Errorf("Expected x clamped to 990, got %v", w.Pos.X)
	}
	if w.Vel.X != 0 || w.Vel.Y != 10 {
		t.Errorf("Expected wall to turn down, got velocity %+v", w.Vel)
	}
}

func TestSniperFiresOnce(t *testing.T) {
	s := NewSniper(testProps(12, 0), Group{Count: 1}, vmath.NewFastRand(1)).(*Sniper)
	s.Pos = vmath.Vec2{X: 500, Y: 250}
	s.Vel = vmath.Vec2{}
	s.timer = 2990

	a := testPlayerAt(1, 600, 250)
	b := testPlayerAt(2, 500, 330)
	ctx := testCtx(a, b)
	s.Update(ctx)

	if s.timer != 0 {
		t.Errorf("Expected timer reset after firing, got %v", s.timer)
	}
	events := ctx.Bus.Consume()
	if len(events) != 1 {
		t.Fatalf("Expected exactly one spawn, got %d events", len(events))
	}
	payload := events[0].Payload.(*event.SpawnEntityPayload)
	bullet, ok := payload.Entity.(*Bullet)
	if !ok {
		t.Fatalf("Expected *Bullet, got %T", payload.Entity)
	}
	if bullet.Radius != 6 {
		t.Errorf("Expected bullet radius 6, got %v", bullet.Radius)
	}
	// nearest target is b, straight down
	if !near(bullet.Vel.X, 0) || !near(bullet.Vel.Y, parameter.BulletSpeed) {
		t.Errorf("Expected bullet velocity (0, 10), got %+v", bullet.Vel)
	}
	if bullet.Pos != s.Pos {
		t.Errorf("Expected bullet at sniper position, got %+v", bullet.Pos)
	}
}

func TestSniperHoldsWithoutTarget(t *testing.T) {
	s := NewSniper(testProps(12, 0), Group{Count: 1}, vmath.NewFastRand(1)).(*Sniper)
	s.Pos = vmath.Vec2{X: 100, Y: 250}
	s.Vel = vmath.Vec2{}
	s.timer = 2990

	downed := testPlayerAt(1, 150, 250)
	downed.Downed = true
	ctx := testCtx(downed, testPlayerAt(2, 900, 250))
	s.Update(ctx)

	if ctx.Bus.Len() != 0 {
		t.Errorf("Expected no shot, got %d events", ctx.Bus.Len())
	}
	if s.timer <= parameter.SniperThresholdMs {
		t.Errorf("Expected timer to keep running, got %v", s.timer)
	}
}

func TestBulletRemovedOnWall(t *testing.T) {
	bl := &Bullet{Body: newBody(TypeBullet, testProps(5, 10), vmath.NewFastRand(1))}
	bl.Pos = vmath.Vec2{X: 990, Y: 250}
	bl.Vel = vmath.Vec2{X: 10}

	bl.Update(testCtx())
	if !bl.ToRemove {
		t.Error("Expected bullet flagged for removal on wall contact")
	}
}

func TestHomingTurnsTowardTarget(t *testing.T) {
	h := NewHoming(testProps(10, 5), Group{Count: 1}, vmath.NewFastRand(1)).(*Homing)
	h.Pos = vmath.Vec2{X: 500, Y: 250}
	h.Vel = vmath.Vec2{X: 5}
	h.Angle = 0

	ctx := testCtx(testPlayerAt(1, 500, 350))
	ctx.Delta = 30
	h.Update(ctx)

	if !near(h.Angle, parameter.HomingAngleIncrement) {
		t.Errorf("Expected heading %v, got %v", parameter.HomingAngleIncrement, h.Angle)
	}
	if h.Vel.Y <= 0 {
		t.Errorf("Expected velocity to bend toward target, got %+v", h.Vel)
	}
}

func TestBeeTurnsTowardTarget(t *testing.T) {
	e := NewBee(testProps(10, 5), Group{Count: 1}, vmath.NewFastRand(1)).(*Bee)
	e.Pos = vmath.Vec2{X: 500, Y: 250}
	e.Vel = vmath.Vec2{X: 5}

	ctx := testCtx(testPlayerAt(1, 500, 350))
	ctx.Delta = parameter.BeeFrameMs
	e.Update(ctx)

	if !near(e.Angle, parameter.BeeMaxTurn) {
		t.Errorf("Expected heading %v, got %v", parameter.BeeMaxTurn, e.Angle)
	}

	// ignores players beyond range
	far := NewBee(testProps(10, 5), Group{Count: 1}, vmath.NewFastRand(1)).(*Bee)
	far.Pos = vmath.Vec2{X: 100, Y: 250}
	far.Vel = vmath.Vec2{X: 5}
	far.Angle = 0
	far.Update(testCtx(testPlayerAt(1, 100, 250+parameter.HomingMaxDist)))
	if far.Angle != 0 {
		t.Errorf("Expected no steering without target, got heading %v", far.Angle)
	}
}

func TestFlameLeavesTrail(t *testing.T) {
	f := NewFlame(testProps(10, 5), Group{Count: 1}, vmath.NewFastRand(1)).(*Flame)
	f.Pos = vmath.Vec2{X: 500, Y: 250}

	ctx := testCtx()
	ctx.Delta = 100
	f.Update(ctx)
	if ctx.Bus.Len() != 0 {
		t.Fatalf("Expected no trail before 128ms, got %d", ctx.Bus.Len())
	}
	f.Update(ctx)
	events := ctx.Bus.Consume()
	if len(events) != 1 {
		t.Fatalf("Expected one trail, got %d", len(events))
	}
	trail := events[0].Payload.(*event.SpawnEntityPayload).Entity.(*FlameTrail)
	if trail.Pos != f.Pos || trail.TypeID != TypeFlameTrail {
		t.Errorf("Expected trail at flame position with type %d, got %+v", TypeFlameTrail, trail.Body)
	}

	// owner speed 5 gives a one second life
	ctx.Delta = 500
	trail.Update(ctx)
	if !near(trail.Alpha, 0.5) || trail.ToRemove {
		t.Errorf("Expected half faded live trail, got alpha %v remove %v", trail.Alpha, trail.ToRemove)
	}
	trail.Update(ctx)
	if !trail.ToRemove {
		t.Error("Expected trail removed at end of life")
	}
}

func TestFlameTrailTurnsHarmless(t *testing.T) {
	trail := &FlameTrail{Body: newBody(TypeFlameTrail, testProps(10, 0), vmath.NewFastRand(1)), ownerSpeed: 1}
	ctx := testCtx()
	ctx.Delta = 3500
	trail.Update(ctx)
	if !trail.Harmless || trail.ToRemove {
		t.Errorf("Expected harmless live trail at 3500ms, got harmless %v remove %v", trail.Harmless, trail.ToRemove)
	}
}

func TestDropCycle(t *testing.T) {
	d := NewDrop(testProps(10, 10), Group{Count: 1}, vmath.NewFastRand(1)).(*Drop)
	d.Pos = vmath.Vec2{X: 500, Y: 485}

	ctx := testCtx()
	d.Update(ctx)
	if d.surfaceTime >= 0 || d.Vel.Y != 0 {
		t.Fatalf("Expected drop to land, got surface time %v vel %+v", d.surfaceTime, d.Vel)
	}
	if d.Alpha != 1 {
		t.Errorf("Expected full alpha at landing, got %v", d.Alpha)
	}

	for i := 0; i < 200 && d.surfaceTime <= 0; i++ {
		d.Update(ctx)
	}
	if d.surfaceTime <= 0 {
		t.Fatal("Expected drop to respawn")
	}
	if d.Pos.Y != 11 || !d.Harmless {
		t.Errorf("Expected harmless drop at y=11, got y=%v harmless=%v", d.Pos.Y, d.Harmless)
	}

	for i := 0; i < 200 && d.surfaceTime > 0; i++ {
		d.Update(ctx)
	}
	if d.Harmless || d.Vel.Y != d.Speed {
		t.Errorf("Expected falling harmful drop, got harmless=%v vel=%+v", d.Harmless, d.Vel)
	}
}

func TestLeafSlipsPlayer(t *testing.T) {
	l := NewLeaf(testProps(10, 0), Group{Count: 1}, vmath.NewFastRand(1)).(*Leaf)
	ctx := testCtx()
	p := testPlayerAt(7, l.Pos.X, l.Pos.Y)

	l.Interact(p, ctx)
	if ctx.Bus.Len() != 0 {
		t.Fatal("Expected growing leaf to ignore contact")
	}

	for i := 0; i < 100 && l.Harmless; i++ {
		l.Update(ctx)
	}
	if l.Harmless || l.Radius != 10 {
		t.Fatalf("Expected grown leaf with radius 10, got harmless=%v radius=%v", l.Harmless, l.Radius)
	}

	l.ID = 3
	l.Interact(p, ctx)
	events := ctx.Bus.Consume()
	if len(events) != 1 {
		t.Fatalf("Expected one effect request, got %d", len(events))
	}
	req := events[0].Payload.(*event.AddEffectPayload)
	if req.Target != 7 || req.Effect != effect.KindSlipped || req.Caster != 3 {
		t.Errorf("Expected slipped on 7 from 3, got %+v", req)
	}
	if p.Downed {
		t.Error("Expected leaf not to knock")
	}

	l.Update(ctx)
	if !l.Harmless {
		t.Error("Expected leaf harmless while shrinking out")
	}
}

func TestSlowerAura(t *testing.T) {
	s := NewSlower(testProps(10, 0), Group{Count: 1}, vmath.NewFastRand(1)).(*Slower)
	s.Pos = vmath.Vec2{X: 500, Y: 250}
	s.ID = 9
	if s.Pack().Aura != 1500 {
		t.Errorf("Expected packed aura 1500, got %d", s.Pack().Aura)
	}

	ctx := testCtx()
	inside := testPlayerAt(1, 600, 250)
	s.Interact(inside, ctx)
	downed := testPlayerAt(2, 600, 250)
	downed.Downed = true
	s.Interact(downed, ctx)
	outside := testPlayerAt(3, 700, 250)
	s.Interact(outside, ctx)

	events := ctx.Bus.Consume()
	if len(events) != 1 {
		t.Fatalf("Expected one effect request, got %d", len(events))
	}
	req := events[0].Payload.(*event.AddEffectPayload)
	if req.Target != 1 || req.Effect != effect.KindSlow || req.Caster != 9 {
		t.Errorf("Expected slow on 1 from 9, got %+v", req)
	}
	if inside.Downed {
		t.Error("Expected aura not to knock")
	}
}

func TestPullTowardCenter(t *testing.T) {
	e := NewPull(testProps(10, 0), Group{Count: 1}, vmath.NewFastRand(1)).(*Pull)
	e.Pos = vmath.Vec2{X: 500, Y: 250}

	ctx := testCtx()
	e.Interact(testPlayerAt(1, 600, 250), ctx)
	e.Interact(testPlayerAt(2, 660, 250), ctx)

	events := ctx.Bus.Consume()
	if len(events) != 1 {
		t.Fatalf("Expected one push, got %d", len(events))
	}
	push := events[0].Payload.(*event.PushPlayerPayload)
	want := -2.5 * (100.0 / 120) * (100.0 / 120)
	if push.Player != 1 || !near(push.Offset.X, want) || !near(push.Offset.Y, 0) {
		t.Errorf("Expected push of (%v, 0) on player 1, got %+v", want, push)
	}
}

func TestCloudPushQuirk(t *testing.T) {
	c := NewCloud(testProps(150, 0), Group{Count: 1}, vmath.NewFastRand(1)).(*Cloud)
	c.Pos = vmath.Vec2{X: 500, Y: 250}
	if c.Alpha != parameter.CloudAlpha {
		t.Errorf("Expected alpha %v, got %v", parameter.CloudAlpha, c.Alpha)
	}

	ctx := testCtx()
	// dist 30: 2 ^ 0 = 2, shoved away by 6
	c.Interact(testPlayerAt(1, 530, 250), ctx)
	// dist 130: 2 ^ -1 = -3, drawn in by 9
	c.Interact(testPlayerAt(2, 630, 250), ctx)
	immortal := testPlayerAt(3, 530, 250)
	immortal.Immortal = true
	c.Interact(immortal, ctx)

	events := ctx.Bus.Consume()
	if len(events) != 2 {
		t.Fatalf("Expected two pushes, got %d", len(events))
	}
	first := events[0].Payload.(*event.PushPlayerPayload)
	second := events[1].Payload.(*event.PushPlayerPayload)
	if !near(first.Offset.X, 6) {
		t.Errorf("Expected push 6, got %v", first.Offset.X)
	}
	if !near(second.Offset.X, -9) {
		t.Errorf("Expected push -9, got %v", second.Offset.X)
	}
}

func TestStormCloudKnocksAndPulses(t *testing.T) {
	s := NewStormCloud(testProps(20, 0), Group{Count: 1}, vmath.NewFastRand(1)).(*StormCloud)
	s.Pos = vmath.Vec2{X: 500, Y: 250}

	ctx := testCtx()
	ctx.Delta = 500
	s.Update(ctx)
	if !near(s.Alpha, math.Abs(math.Sin(0.5))) {
		t.Errorf("Expected alpha |sin(0.5)|, got %v", s.Alpha)
	}

	p := testPlayerAt(1, 510, 250)
	s.Interact(p, ctx)
	if !p.Downed {
		t.Error("Expected storm cloud to knock")
	}
	if ctx.Bus.Len() != 1 {
		t.Errorf("Expected one push, got %d", ctx.Bus.Len())
	}
}

func TestChangerToggles(t *testing.T) {
	on := NewChanger(testProps(10, 0), Group{Count: 4, Num: 0}, vmath.NewFastRand(1)).(*Changer)
	off := NewChanger(testProps(10, 0), Group{Count: 4, Num: 2}, vmath.NewFastRand(1)).(*Changer)
	if on.Harmless || !off.Harmless {
		t.Fatalf("Expected first half harmful and second half harmless, got %v %v", on.Harmless, off.Harmless)
	}

	ctx := testCtx()
	ctx.Delta = 5001
	on.Update(ctx)
	off.Update(ctx)
	if !on.Harmless || off.Harmless {
		t.Errorf("Expected states to swap, got %v %v", on.Harmless, off.Harmless)
	}
	if !near(on.timer, 1) {
		t.Errorf("Expected timer to wrap to 1, got %v", on.timer)
	}
}

func TestFadePhase(t *testing.T) {
	first := NewFade(testProps(10, 0), Group{Count: 4, Num: 0}, vmath.NewFastRand(1)).(*Fade)
	second := NewFade(testProps(10, 0), Group{Count: 4, Num: 3}, vmath.NewFastRand(1)).(*Fade)

	ctx := testCtx()
	ctx.Delta = 3750
	first.Update(ctx)
	second.Update(ctx)

	if !near(first.Alpha, 0) || !first.Harmless {
		t.Errorf("Expected first faded out, got alpha %v harmless %v", first.Alpha, first.Harmless)
	}
	if !near(second.Alpha, 1) || second.Harmless {
		t.Errorf("Expected second opaque, got alpha %v harmless %v", second.Alpha, second.Harmless)
	}
}

func TestSizerStaysInBounds(t *testing.T) {
	s := NewSizer(testProps(20, 0), Group{Count: 1}, vmath.NewFastRand(1)).(*Sizer)
	ctx := testCtx()
	step := parameter.SizerRate * s.minRadius

	grew, shrank := false, false
	for i := 0; i < 2000; i++ {
		s.Update(ctx)
		if s.Radius < s.minRadius-step || s.Radius > s.maxRadius+step {
			t.Fatalf("Radius %v left [%v, %v] at tick %d", s.Radius, s.minRadius, s.maxRadius, i)
		}
		if s.Radius > 40 {
			grew = true
		}
		if s.Radius < 10 {
			shrank = true
		}
	}
	if !grew || !shrank {
		t.Errorf("Expected full oscillation, grew=%v shrank=%v", grew, shrank)
	}
}

func TestIcicleSticksToWall(t *testing.T) {
	ic := NewIcicle(testProps(10, 20), Group{Count: 1}, vmath.NewFastRand(1)).(*Icicle)
	ic.Pos = vmath.Vec2{X: 500, Y: 480}
	ic.Vel = vmath.Vec2{Y: 20}
	ic.wallHit = false

	ctx := testCtx()
	ic.Update(ctx)
	if !ic.wallHit || ic.Vel.Y != -20 {
		t.Fatalf("Expected wall hit with reflected velocity, got hit=%v vel=%+v", ic.wallHit, ic.Vel)
	}

	ctx.Delta = 1000
	ic.Update(ctx)
	if ic.Vel.Y != 0 {
		t.Errorf("Expected icicle stopped, got %+v", ic.Vel)
	}
	ic.Update(ctx)
	ic.Update(ctx)
	if ic.wallHit || !near(ic.Vel.Y, -20) {
		t.Errorf("Expected icicle released upward, got hit=%v vel=%+v", ic.wallHit, ic.Vel)
	}
}
