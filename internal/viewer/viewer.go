// Package viewer is an interactive debug view of the vision core: it renders
// one scenario world as a top-down grid, overlays the observer's field of
// view, and probes a sight line to the mouse cursor.
package viewer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Grid-Sight/internal/vision"
	"github.com/Garsondee/Grid-Sight/internal/worldmap"
)

// cellPX is the on-screen size of one grid cell.
const cellPX = 22

// viewRadius is how many cells are drawn in each direction from the grid
// origin. Cells outside the window still occlude; they are just not drawn.
const viewRadius = 16

// hudWidth is the pixel width of the side panel.
const hudWidth = 280

const borderWidth = 12

// losColors maps each sight-check grade to its probe line colour.
var losColors = map[vision.LOSResult]color.RGBA{
	vision.LOSClear:    {R: 80, G: 220, B: 80, A: 255},   // green
	vision.LOSPartial:  {R: 235, G: 180, B: 40, A: 255},  // amber
	vision.LOSBlocked:  {R: 230, G: 60, B: 60, A: 255},   // red
	vision.LOSTooFar:   {R: 120, G: 120, B: 120, A: 255}, // grey
	vision.LOSOutOfFOV: {R: 90, G: 110, B: 160, A: 255},  // slate
}

// preset couples a capability profile with its HUD label.
type preset struct {
	name string
	cp   vision.Capability
}

func presets() []preset {
	return []preset{
		{name: "default", cp: vision.DefaultCapability()},
		{name: "player", cp: vision.PlayerCapability()},
		{name: "guard", cp: vision.GuardCapability()},
		{name: "creature", cp: vision.CreatureCapability(40, 270)},
	}
}

// timeStep is one stop of the N-key day cycle.
type timeStep struct {
	name string
	t    float64
}

var timeSteps = []timeStep{
	{name: "noon", t: 0.5},
	{name: "dusk", t: 0.75},
	{name: "midnight", t: 0.0},
	{name: "dawn", t: 0.25},
}

var fogSteps = []float64{0, 0.3, 0.6, 1.0}

// Viewer implements ebiten.Game over a scenario world.
type Viewer struct {
	world    *worldmap.GridWorld
	scenario string

	observer  vision.GridCoord
	presetIdx int
	focused   bool
	timeIdx   int
	fogIdx    int
	showHUD   bool

	snap  vision.Snapshot
	dirty bool

	probe     vision.LOSReport
	probeCell vision.GridCoord
	probeOK   bool

	prevKeys map[ebiten.Key]bool

	// Frames left on the "copied to clipboard" HUD flash.
	copyFlash int
}

// New wraps a built scenario world in an interactive viewer. The observer
// starts at the grid origin.
func New(world *worldmap.GridWorld, scenario string) *Viewer {
	return &Viewer{
		world:    world,
		scenario: scenario,
		showHUD:  true,
		dirty:    true,
		prevKeys: make(map[ebiten.Key]bool),
	}
}

func (v *Viewer) capability() vision.Capability {
	return presets()[v.presetIdx].cp
}

func (v *Viewer) env() vision.Environment {
	return vision.Environment{
		TimeOfDay:    timeSteps[v.timeIdx].t,
		AmbientLight: 1.0,
		FogDensity:   fogSteps[v.fogIdx],
	}
}

// observerPos is the observer's world-space position (cell centre).
func (v *Viewer) observerPos() vision.Vec3 {
	return v.world.GridToWorld(v.observer)
}

func (v *Viewer) Update() error {
	v.handleInput()

	if v.dirty {
		v.snap = vision.Observe(v.observerPos(), v.capability(), v.env(), v.world, v.focused, nil)
		v.dirty = false
	}

	// Sight probe follows the cursor every frame.
	mx, my := ebiten.CursorPosition()
	if c, ok := screenToCell(mx, my); ok {
		v.probeCell = c
		v.probeOK = true
		v.probe = vision.CheckLineOfSight(
			v.observerPos(), v.world.GridToWorld(c),
			v.capability(), v.env(), v.world, v.focused)
	} else {
		v.probeOK = false
	}

	if v.copyFlash > 0 {
		v.copyFlash--
	}
	return nil
}

// handleInput processes movement and toggle keypresses (edge-triggered).
func (v *Viewer) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !v.prevKeys[k]
	}

	// Observer movement: one cell per press, WASD or arrows.
	dx, dy := 0, 0
	if pressed(ebiten.KeyW) || pressed(ebiten.KeyArrowUp) {
		dy--
	}
	if pressed(ebiten.KeyS) || pressed(ebiten.KeyArrowDown) {
		dy++
	}
	if pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight) {
		dx++
	}
	if dx != 0 || dy != 0 {
		nx, ny := v.observer.X+dx, v.observer.Y+dy
		if nx >= -viewRadius && nx <= viewRadius && ny >= -viewRadius && ny <= viewRadius {
			v.observer.X, v.observer.Y = nx, ny
			v.dirty = true
		}
	}

	if pressed(ebiten.KeyF) {
		v.focused = !v.focused
		v.dirty = true
	}
	if pressed(ebiten.KeyN) {
		v.timeIdx = (v.timeIdx + 1) % len(timeSteps)
		v.dirty = true
	}
	if pressed(ebiten.KeyG) {
		v.fogIdx = (v.fogIdx + 1) % len(fogSteps)
		v.dirty = true
	}
	if pressed(ebiten.KeyTab) {
		v.presetIdx = (v.presetIdx + 1) % len(presets())
		v.dirty = true
	}
	if pressed(ebiten.KeyH) {
		v.showHUD = !v.showHUD
	}
	if pressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(v.DebugReport()); err == nil {
			v.copyFlash = 90
		}
	}

	v.prevKeys = currentKeys
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 14, B: 18, A: 255})

	gridPX := float32((2*viewRadius + 1) * cellPX)
	ox, oy := float32(borderWidth), float32(borderWidth)

	// Ground.
	vector.FillRect(screen, ox, oy, gridPX, gridPX, color.RGBA{R: 30, G: 34, B: 30, A: 255}, false)

	// Occluder cells at ground level, coloured by what they are made of.
	for y := -viewRadius; y <= viewRadius; y++ {
		for x := -viewRadius; x <= viewRadius; x++ {
			occ := v.world.CellOcclusionAt(vision.GridCoord{X: x, Y: y})
			if occ == nil {
				continue
			}
			sx, sy := cellToScreen(vision.GridCoord{X: x, Y: y})
			vector.FillRect(screen, sx, sy, cellPX, cellPX, occlusionColor(occ), false)
		}
	}

	// FOV overlay: visible cells tinted by their visibility factor.
	for i, c := range v.snap.VisibleCells {
		if c.X < -viewRadius || c.X > viewRadius || c.Y < -viewRadius || c.Y > viewRadius {
			continue
		}
		f := v.snap.VisibilityFactors[i]
		sx, sy := cellToScreen(c)
		a := uint8(30 + f*110)
		vector.FillRect(screen, sx, sy, cellPX, cellPX, color.RGBA{R: 240, G: 230, B: 120, A: a}, false)
	}

	// Grid lines, faint.
	lineCol := color.RGBA{R: 50, G: 54, B: 50, A: 255}
	for i := 0; i <= 2*viewRadius+1; i++ {
		p := float32(i * cellPX)
		vector.StrokeLine(screen, ox+p, oy, ox+p, oy+gridPX, 1, lineCol, false)
		vector.StrokeLine(screen, ox, oy+p, ox+gridPX, oy+p, 1, lineCol, false)
	}
	vector.StrokeRect(screen, ox-1, oy-1, gridPX+2, gridPX+2, 2, color.RGBA{R: 90, G: 100, B: 90, A: 255}, false)

	// Probe line from observer to the hovered cell.
	if v.probeOK {
		osx, osy := cellCenter(v.observer)
		tsx, tsy := cellCenter(v.probeCell)
		col := losColors[v.probe.Result]
		vector.StrokeLine(screen, osx, osy, tsx, tsy, 2, col, false)
		vector.StrokeCircle(screen, tsx, tsy, cellPX/2-2, 2, col, false)
	}

	// Observer marker.
	osx, osy := cellCenter(v.observer)
	vector.FillCircle(screen, osx, osy, cellPX/2-4, color.RGBA{R: 250, G: 250, B: 250, A: 255}, false)

	if v.showHUD {
		v.drawHUD(screen)
	}
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	x := borderWidth + (2*viewRadius+1)*cellPX + borderWidth
	y := borderWidth + 12
	line := func(s string) {
		text.Draw(screen, s, basicfont.Face7x13, x, y, color.White)
		y += 16
	}

	p := presets()[v.presetIdx]
	env := v.env()
	line("scenario: " + v.scenario)
	line("preset:   " + p.name + focusedTag(v.focused))
	line(fmt.Sprintf("range:    %.1f", p.cp.EffectiveRange(env, v.focused)))
	line("time:     " + timeSteps[v.timeIdx].name)
	line(fmt.Sprintf("fog:      %.1f", fogSteps[v.fogIdx]))
	line(fmt.Sprintf("visible:  %d cells", len(v.snap.VisibleCells)))
	y += 8
	if v.probeOK {
		line(fmt.Sprintf("probe: (%d,%d)", v.probeCell.X, v.probeCell.Y))
		line("  " + v.probe.Result.String())
		line(fmt.Sprintf("  factor %.2f  dist %.1f", v.probe.VisibilityFactor, v.probe.Distance))
	}
	y += 8
	line("WASD  move observer")
	line("F     toggle focus")
	line("N     cycle time of day")
	line("G     cycle fog")
	line("Tab   cycle preset")
	line("C     copy debug report")
	line("H     toggle this panel")
	if v.copyFlash > 0 {
		y += 8
		line("report copied to clipboard")
	}
}

// DebugReport renders the current viewer state as text. The C key puts it on
// the clipboard so a session can be pasted into a bug report.
func (v *Viewer) DebugReport() string {
	p := presets()[v.presetIdx]
	env := v.env()

	var b strings.Builder
	fmt.Fprintf(&b, "--- GridSight debug report ---\n")
	fmt.Fprintf(&b, "scenario=%s observer=(%d,%d) preset=%s focused=%v\n",
		v.scenario, v.observer.X, v.observer.Y, p.name, v.focused)
	fmt.Fprintf(&b, "time=%s fog=%.1f light=%.2f weather=%.2f range=%.1f\n",
		timeSteps[v.timeIdx].name, fogSteps[v.fogIdx],
		env.EffectiveLightLevel(), env.WeatherVisibilityModifier(),
		p.cp.EffectiveRange(env, v.focused))
	fmt.Fprintf(&b, "visible_cells=%d\n", len(v.snap.VisibleCells))
	if v.probeOK {
		fmt.Fprintf(&b, "probe=(%d,%d) result=%s factor=%.2f dist=%.1f\n",
			v.probeCell.X, v.probeCell.Y, v.probe.Result,
			v.probe.VisibilityFactor, v.probe.Distance)
		if v.probe.Result == vision.LOSBlocked || v.probe.Result == vision.LOSPartial {
			bc := v.probe.BlockingCell
			fmt.Fprintf(&b, "blocking_cell=(%d,%d,%d)\n", bc.X, bc.Y, bc.Z)
		}
	}
	return b.String()
}

func (v *Viewer) Layout(_, _ int) (int, int) {
	gridPX := (2*viewRadius + 1) * cellPX
	return borderWidth + gridPX + borderWidth + hudWidth, borderWidth + gridPX + borderWidth
}

func focusedTag(focused bool) string {
	if focused {
		return " (focused)"
	}
	return ""
}

// occlusionColor classifies a cell by its occlusion data. Scenario builders
// only place the canonical materials, so field shape is enough to tell them
// apart without carrying material IDs through the world.
func occlusionColor(occ *vision.CellOcclusion) color.RGBA {
	switch {
	case occ.IsFoliage && occ.Transparency >= 0.8:
		return color.RGBA{R: 90, G: 140, B: 60, A: 255} // tall grass
	case occ.IsFoliage:
		return color.RGBA{R: 40, G: 95, B: 40, A: 255} // hedge
	case occ.BlocksSight && occ.Height <= 1.2:
		return color.RGBA{R: 120, G: 100, B: 80, A: 255} // rubble
	case occ.BlocksSight && occ.Height < 3.0:
		return color.RGBA{R: 110, G: 110, B: 115, A: 255} // low wall
	case occ.BlocksSight:
		return color.RGBA{R: 70, G: 70, B: 78, A: 255} // wall
	case occ.Transparency >= 0.8:
		return color.RGBA{R: 130, G: 180, B: 210, A: 255} // window
	default:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255} // smoke
	}
}

func cellToScreen(c vision.GridCoord) (float32, float32) {
	sx := float32(borderWidth + (c.X+viewRadius)*cellPX)
	sy := float32(borderWidth + (c.Y+viewRadius)*cellPX)
	return sx, sy
}

func cellCenter(c vision.GridCoord) (float32, float32) {
	sx, sy := cellToScreen(c)
	return sx + cellPX/2, sy + cellPX/2
}

func screenToCell(mx, my int) (vision.GridCoord, bool) {
	gx := (mx-borderWidth)/cellPX - viewRadius
	gy := (my-borderWidth)/cellPX - viewRadius
	if mx < borderWidth || my < borderWidth {
		return vision.GridCoord{}, false
	}
	if gx < -viewRadius || gx > viewRadius || gy < -viewRadius || gy > viewRadius {
		return vision.GridCoord{}, false
	}
	return vision.GridCoord{X: gx, Y: gy}, true
}
