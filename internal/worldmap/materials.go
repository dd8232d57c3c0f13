package worldmap

import "github.com/Garsondee/Grid-Sight/internal/vision"

// Material identifies a canonical cell fill used by scenario builders.
type Material uint8

const (
	MatWall         Material = iota // full-height opaque wall
	MatConcreteWall                 // lower opaque wall segment
	MatWindow                       // blocks movement elsewhere, mostly clear to sight
	MatHedge                        // tall foliage, heavy concealment
	MatTallGrass                    // waist-high foliage, look-over concealment
	MatSmoke                        // tall smoke column
	MatRubble                       // low solid debris, seen over
	materialCount                   // sentinel
)

// Occlusion returns the canonical cell data for a material.
//
// Solid materials carry Transparency 1: attenuation models see-through
// volumes only, while solid blocking is governed by BlocksSight plus Height,
// so a low wall is looked over rather than dimming the line crossing it.
func Occlusion(m Material) vision.CellOcclusion {
	switch m {
	case MatWall:
		return vision.CellOcclusion{BlocksSight: true, Transparency: 1.0, Height: 3.0}
	case MatConcreteWall:
		return vision.CellOcclusion{BlocksSight: true, Transparency: 1.0, Height: 2.5}
	case MatWindow:
		return vision.CellOcclusion{Transparency: 0.85, Height: 2.2}
	case MatHedge:
		return vision.CellOcclusion{Transparency: 0.6, Height: 2.0, IsFoliage: true}
	case MatTallGrass:
		return vision.CellOcclusion{Transparency: 0.9, Height: 1.2, IsFoliage: true}
	case MatSmoke:
		return vision.CellOcclusion{Transparency: 0.4, Height: 4.0}
	case MatRubble:
		return vision.CellOcclusion{BlocksSight: true, Transparency: 1.0, Height: 1.0}
	}
	return vision.CellOcclusion{Transparency: 1.0}
}

// Name returns a short label for report output.
func (m Material) Name() string {
	switch m {
	case MatWall:
		return "wall"
	case MatConcreteWall:
		return "concrete"
	case MatWindow:
		return "window"
	case MatHedge:
		return "hedge"
	case MatTallGrass:
		return "grass"
	case MatSmoke:
		return "smoke"
	case MatRubble:
		return "rubble"
	}
	return "air"
}
