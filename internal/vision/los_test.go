package vision

import (
	"math"
	"testing"
)

func losCap() Capability {
	cp := DefaultCapability()
	cp.BaseRange = 50
	cp.FOVDegrees = 210
	cp.NightVision = 0
	return cp
}

func TestLOS_ClearLine(t *testing.T) {
	w := newStubWorld()
	rep := CheckLineOfSight(Vec3{}, Vec3{X: 10}, losCap(), ClearDay(), w, false)
	if rep.Result != LOSClear {
		t.Fatalf("result = %v, want clear", rep.Result)
	}
	// distance 10 of range 50 → factor (1 − 0.2) with no weather penalty.
	if math.Abs(rep.VisibilityFactor-0.8) > 1e-9 {
		t.Fatalf("visibility factor = %v, want 0.8", rep.VisibilityFactor)
	}
	if math.Abs(rep.Distance-10) > 1e-9 || math.Abs(rep.EffectiveRange-50) > 1e-9 {
		t.Fatalf("distance/range = %v/%v, want 10/50", rep.Distance, rep.EffectiveRange)
	}
}

func TestLOS_TooFar_ShortCircuits(t *testing.T) {
	// The world panics on any query: TooFar must be decided before tracing.
	w := panicWorld{}
	rep := CheckLineOfSight(Vec3{}, Vec3{X: 60}, losCap(), ClearDay(), w, false)
	if rep.Result != LOSTooFar || rep.VisibilityFactor != 0 {
		t.Fatalf("got %v factor %v, want too-far with 0", rep.Result, rep.VisibilityFactor)
	}
}

func TestLOS_BlockedBehindSmoke(t *testing.T) {
	// Two smoke cells (0.4 each) drop accumulated transparency to 0.16
	// before a wall stops the trace: below 0.5 means Blocked.
	smoke := CellOcclusion{Transparency: 0.4, Height: 4.0}
	w := newStubWorld().
		set(2, 0, 1, smoke).
		set(3, 0, 1, smoke).
		wall(7, 0, 0)
	rep := CheckLineOfSight(Vec3{X: 0.5, Y: 0.5}, Vec3{X: 10.5, Y: 0.5}, losCap(), ClearDay(), w, false)
	if rep.Result != LOSBlocked || rep.VisibilityFactor != 0 {
		t.Fatalf("got %v factor %v, want blocked with 0", rep.Result, rep.VisibilityFactor)
	}
	if rep.BlockingCell != (GridCoord{X: 7}) {
		t.Fatalf("blocking cell = %v, want (7,0,0)", rep.BlockingCell)
	}
}

func TestLOS_PartialThroughWindow(t *testing.T) {
	window := CellOcclusion{Transparency: 0.85, Height: 2.2}
	w := newStubWorld().
		set(3, 0, 1, window).
		wall(7, 0, 0)
	rep := CheckLineOfSight(Vec3{X: 0.5, Y: 0.5}, Vec3{X: 10.5, Y: 0.5}, losCap(), ClearDay(), w, false)
	if rep.Result != LOSPartial {
		t.Fatalf("result = %v, want partial", rep.Result)
	}
	if math.Abs(rep.VisibilityFactor-0.85) > 1e-9 {
		t.Fatalf("partial factor = %v, want the accumulated 0.85", rep.VisibilityFactor)
	}
}

func TestLOS_WindowAloneStaysClear(t *testing.T) {
	window := CellOcclusion{Transparency: 0.85, Height: 2.2}
	w := newStubWorld().set(3, 0, 1, window)
	rep := CheckLineOfSight(Vec3{X: 0.5, Y: 0.5}, Vec3{X: 10.5, Y: 0.5}, losCap(), ClearDay(), w, false)
	if rep.Result != LOSClear {
		t.Fatalf("result = %v, want clear", rep.Result)
	}
	// Clear factor folds the window's attenuation in.
	want := (1 - rep.Distance/rep.EffectiveRange) * 0.85
	if math.Abs(rep.VisibilityFactor-want) > 1e-9 {
		t.Fatalf("factor = %v, want %v", rep.VisibilityFactor, want)
	}
}

func TestLOS_LowWallClear(t *testing.T) {
	low := CellOcclusion{BlocksSight: true, Transparency: 1.0, Height: 1.0}
	w := newStubWorld().set(5, 0, 0, low)
	rep := CheckLineOfSight(Vec3{X: 0.5, Y: 0.5}, Vec3{X: 10.5, Y: 0.5}, losCap(), ClearDay(), w, false)
	if rep.Result != LOSClear {
		t.Fatalf("1.0-high obstacle under a 1.7 eye: result = %v, want clear", rep.Result)
	}
}

func TestLOS_BareWallGradedByAccumulatedTransparency(t *testing.T) {
	// A wall with nothing in front stops the trace while the accumulated
	// transparency is still 1.0, which grades as partial with factor 1.0.
	// Kept for compatibility with the established classification rule.
	w := newStubWorld().wall(7, 0, 0)
	rep := CheckLineOfSight(Vec3{X: 0.5, Y: 0.5}, Vec3{X: 10.5, Y: 0.5}, losCap(), ClearDay(), w, false)
	if rep.Result != LOSPartial || rep.VisibilityFactor != 1.0 {
		t.Fatalf("got %v factor %v, want partial/1.0", rep.Result, rep.VisibilityFactor)
	}
}

func TestLOSResult_Strings(t *testing.T) {
	cases := map[LOSResult]string{
		LOSClear:    "clear",
		LOSBlocked:  "blocked",
		LOSPartial:  "partial",
		LOSTooFar:   "too-far",
		LOSOutOfFOV: "out-of-fov",
	}
	for r, want := range cases {
		if r.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(r), r.String(), want)
		}
	}
	if !LOSClear.Visible() || !LOSPartial.Visible() || LOSBlocked.Visible() || LOSTooFar.Visible() {
		t.Error("Visible() grading wrong")
	}
}

func TestInFieldOfView_AheadAndBehind(t *testing.T) {
	forward := Vec3{X: 1}
	if !InFieldOfView(Vec3{}, forward, Vec3{X: 100}, 55) {
		t.Fatal("target directly ahead should be in view")
	}
	if InFieldOfView(Vec3{}, forward, Vec3{X: -100}, 55) {
		t.Fatal("target directly behind should not be in view")
	}
}

func TestInFieldOfView_ConeEdge(t *testing.T) {
	forward := Vec3{X: 1}
	half := 55.0
	rad := half * math.Pi / 180
	inside := Vec3{X: math.Cos(rad - 0.001), Y: math.Sin(rad - 0.001)}
	outside := Vec3{X: math.Cos(rad + 0.001), Y: math.Sin(rad + 0.001)}
	if !InFieldOfView(Vec3{}, forward, inside.Scale(100), half) {
		t.Fatal("target just inside the cone edge should be in view")
	}
	if InFieldOfView(Vec3{}, forward, outside.Scale(100), half) {
		t.Fatal("target just outside the cone edge should not be in view")
	}
}

func TestInFieldOfView_SamePosition(t *testing.T) {
	if !InFieldOfView(Vec3{X: 5, Y: 5}, Vec3{X: 1}, Vec3{X: 5, Y: 5}, 30) {
		t.Fatal("zero-distance target is trivially in view")
	}
}

// panicWorld fails the test if any of its methods is reached.
type panicWorld struct{}

func (panicWorld) CellOcclusionAt(GridCoord) *CellOcclusion { panic("world queried") }
func (panicWorld) WorldToGrid(Vec3) GridCoord               { panic("world queried") }
func (panicWorld) GridToWorld(GridCoord) Vec3               { panic("world queried") }
