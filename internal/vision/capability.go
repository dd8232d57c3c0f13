package vision

import "math"

// minEffectiveRange is the floor applied to every sighted observer's range.
// Blindness is the only condition that produces exactly 0.
const minEffectiveRange = 1.0

// Capability describes an observer's innate vision. Immutable for the
// duration of one query.
type Capability struct {
	BaseRange  float64 // max sight distance in ideal conditions, world units
	FOVDegrees float64 // full field-of-view arc (humans ~210°)
	EyeHeight  float64 // eye offset above the observer's position

	Perception   float64 // ability to notice detail, 0-1
	NightVision  float64 // low-light compensation, 0-1
	VisualAcuity float64 // clarity at distance, 1.0 = 20/20

	Thermal         bool // heat signatures; ignores weather attenuation
	SeeThroughWalls bool // debug/special ability
	Blind           bool
	Dazed           bool // halves acuity

	FocusedFOVDegrees float64 // narrow arc while aiming/using optics
	FocusRangeBonus   float64 // range multiplier while focused
}

// DefaultCapability is a baseline humanoid: short range, ordinary senses.
func DefaultCapability() Capability {
	return Capability{
		BaseRange:         20,
		FOVDegrees:        120,
		EyeHeight:         1.7,
		Perception:        0.5,
		NightVision:       0,
		VisualAcuity:      1.0,
		FocusedFOVDegrees: 60,
		FocusRangeBonus:   1.5,
	}
}

// PlayerCapability has long range and slight night adaptation.
func PlayerCapability() Capability {
	c := DefaultCapability()
	c.BaseRange = 50
	c.FOVDegrees = 110
	c.Perception = 0.7
	c.NightVision = 0.1
	return c
}

// GuardCapability models a trained sentry: wide arc, sharp eyes.
func GuardCapability() Capability {
	c := DefaultCapability()
	c.BaseRange = 30
	c.FOVDegrees = 140
	c.EyeHeight = 1.75
	c.Perception = 0.8
	c.NightVision = 0.2
	c.VisualAcuity = 1.2
	return c
}

// CreatureCapability models an animal with keen low-slung senses.
func CreatureCapability(rangeUnits, fovDegrees float64) Capability {
	c := DefaultCapability()
	c.BaseRange = rangeUnits
	c.FOVDegrees = fovDegrees
	c.EyeHeight = 0.5
	c.Perception = 0.9
	c.NightVision = 0.8
	c.VisualAcuity = 1.5
	return c
}

// Environment is the ambient state shared by every observer in a query
// batch. All densities are 0-1.
type Environment struct {
	TimeOfDay    float64 // 0 = midnight, 0.5 = noon, 1 = midnight
	AmbientLight float64 // 0 = pitch black, 1 = bright daylight

	FogDensity    float64
	RainIntensity float64
	SnowIntensity float64
	DustDensity   float64
	SmokeDensity  float64
	GasDensity    float64
}

// ClearDay is a noon, cloudless environment.
func ClearDay() Environment {
	return Environment{TimeOfDay: 0.5, AmbientLight: 1.0}
}

// EffectiveLightLevel derives the light level from the day/night cycle and
// the raw ambient light. The cycle is a five-segment curve: deep night below
// 0.2 and above 0.8, dawn/dusk in the 0.2-0.3 and 0.7-0.8 bands, full day in
// between. Ambient light can only darken the curve, never brighten it.
func (e Environment) EffectiveLightLevel() float64 {
	var fromTime float64
	switch {
	case e.TimeOfDay < 0.2 || e.TimeOfDay > 0.8:
		fromTime = 0.1
	case e.TimeOfDay < 0.3 || e.TimeOfDay > 0.7:
		fromTime = 0.5
	default:
		fromTime = 1.0
	}
	return math.Min(e.AmbientLight, fromTime)
}

// WeatherVisibilityModifier multiplies the independent per-hazard
// attenuations together. Never negative.
func (e Environment) WeatherVisibilityModifier() float64 {
	m := 1.0
	m *= 1 - e.FogDensity*0.8
	m *= 1 - e.RainIntensity*0.3
	m *= 1 - e.SnowIntensity*0.5
	m *= 1 - e.DustDensity*0.7
	m *= 1 - e.SmokeDensity*0.9
	m *= 1 - e.GasDensity*0.6
	return math.Max(0, m)
}

// EffectiveRange is the maximum sight distance after focus, lighting,
// weather and acuity modifiers. Night vision compensates darkness but never
// reduces range below what ambient light already allows. Thermal vision
// skips weather attenuation entirely. The result is floored at 1.0 for any
// sighted observer; a blind observer gets exactly 0.
func (c Capability) EffectiveRange(env Environment, focused bool) float64 {
	if c.Blind {
		return 0
	}

	r := c.BaseRange
	if focused {
		r *= c.FocusRangeBonus
	}

	light := math.Max(env.EffectiveLightLevel(), c.NightVision)
	r *= light

	if !c.Thermal {
		r *= env.WeatherVisibilityModifier()
	}

	acuity := c.VisualAcuity
	if c.Dazed {
		acuity *= 0.5
	}
	r *= acuity

	return math.Max(minEffectiveRange, r)
}
