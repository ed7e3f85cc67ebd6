// Package conveyor derives drawable component dimensions from
// belt-conveyor level inputs. The formulas are empirically tuned
// engineering heuristics; the coefficients are fixed constants and
// changing any of them silently changes every downstream dimension.
package conveyor

import (
	"fmt"
	"math"

	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
)

// Fixed engineering constants.
const (
	TroughAngleDeg    = 35.0
	SurchargeAngleDeg = 20.0

	// surchargeCoeff is the literal 1/6 coefficient of the surcharge
	// cross-section term.
	surchargeCoeff = 0.16667

	// Effective belt width: edges fold up and a margin is lost on
	// each side.
	edgeFactor = 0.9
	edgeMargin = 50.0 // mm

	// Pulley diameter selection.
	baseFactorSlow   = 0.5 // belt speed < 2.5 m/s
	baseFactorFast   = 0.6
	speedThreshold   = 2.5  // m/s
	capacityDivisor  = 5000.0
	diameterStepMm   = 50.0

	// Capacity derating per degree of inclination.
	inclinationDerate = 0.008
)

// Calculator turns conveyor inputs into a full calculated parameter
// set. It is stateless apart from the material catalog.
type Calculator struct {
	catalog *Catalog
}

// NewCalculator builds a calculator over a material catalog.
func NewCalculator(catalog *Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Materials exposes the catalog entries, sorted by name.
func (c *Calculator) Materials() []Material {
	return c.catalog.List()
}

// Calculate runs the unified generator. Inputs are normalized to
// millimeters internally and results are reported back in the
// selected unit.
func (c *Calculator) Calculate(in models.ConveyorInputs) (*models.CalculatedSystemParameters, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	density, err := c.catalog.Density(in.Material)
	if err != nil {
		return nil, err
	}

	widthMm := units.Convert(in.BeltWidth, in.Unit, units.Millimeter)

	effWidthMm := edgeFactor*widthMm - edgeMargin
	if effWidthMm <= 0 {
		return nil, fmt.Errorf("belt width %v %s is too narrow for a troughed belt", in.BeltWidth, in.Unit)
	}

	// Cross section of a three-roll troughed belt: flat center third,
	// two wings folded at the trough angle, and a surcharge cap.
	b := effWidthMm / 1000 // meters
	third := b / 3
	troughRad := TroughAngleDeg * math.Pi / 180
	surchargeRad := SurchargeAngleDeg * math.Pi / 180

	topWidth := third + 2*third*math.Cos(troughRad)
	wingRise := third * math.Sin(troughRad)
	trapezoidArea := (third + topWidth) / 2 * wingRise
	surchargeArea := surchargeCoeff * math.Tan(surchargeRad) * topWidth * topWidth
	area := trapezoidArea + surchargeArea

	slopeFactor := 1 - inclinationDerate*in.Inclination
	calculatedCapacity := area * in.BeltSpeed * density * 3.6 * slopeFactor
	beltLoad := in.Capacity / (3.6 * in.BeltSpeed)
	loadFactor := in.Capacity / calculatedCapacity
	capacityFactor := 1 + in.Capacity/capacityDivisor

	pulley := derivePulley(widthMm, in.BeltSpeed, capacityFactor)
	idler := deriveIdler(widthMm)
	frame := deriveFrame(widthMm, pulley.Diameter)

	out := &models.CalculatedSystemParameters{
		Conveyor: convertFrame(frame, in.Unit),
		Pulley:   convertPulley(pulley, in.Unit),
		Idler:    convertIdler(idler, in.Unit),
		Details: models.CalculationDetails{
			EffectiveBeltWidth: units.Convert(effWidthMm, units.Millimeter, in.Unit),
			CrossSectionArea:   area,
			CalculatedCapacity: calculatedCapacity,
			BeltLoad:           beltLoad,
			LoadFactor:         loadFactor,
			CapacityFactor:     capacityFactor,
			MaterialDensity:    density,
			TroughAngle:        TroughAngleDeg,
			SurchargeAngle:     SurchargeAngleDeg,
		},
	}
	return out, nil
}

// derivePulley sizes the drive pulley in millimeters. The diameter is
// rounded UP to the next 50mm manufacturing step.
func derivePulley(widthMm, speed, capacityFactor float64) models.PulleyParameters {
	baseFactor := baseFactorSlow
	if speed >= speedThreshold {
		baseFactor = baseFactorFast
	}
	// The epsilon keeps exact step multiples from ceiling one step up
	// when the factor product lands a few ulps above the boundary.
	steps := widthMm * baseFactor * capacityFactor / diameterStepMm
	diameter := math.Ceil(steps-1e-9) * diameterStepMm

	grooveDepth := math.Max(10, diameter*0.04)
	grooveWidth := math.Max(12, diameter*0.05)
	bore := math.Max(40, math.Round(diameter*0.15/5)*5)
	keyWidth := math.Max(8, math.Round(bore*0.3))

	return models.PulleyParameters{
		Diameter:      diameter,
		Thickness:     widthMm + 100, // pulley face overhangs the belt
		BoreDiameter:  bore,
		InnerDiameter: diameter - 2*grooveDepth,
		GrooveDepth:   grooveDepth,
		GrooveWidth:   grooveWidth,
		KeyWayWidth:   keyWidth,
		KeyWayDepth:   math.Max(4, math.Round(keyWidth/2)),
		Unit:          units.Millimeter,
	}
}

// deriveIdler picks the roll from the standard shell series for the
// belt width and sizes the face length for a three-roll set.
func deriveIdler(widthMm float64) models.IdlerParameters {
	var shell float64
	switch {
	case widthMm <= 500:
		shell = 89
	case widthMm <= 800:
		shell = 108
	case widthMm <= 1200:
		shell = 133
	default:
		shell = 159
	}

	shaft := 20.0
	if shell > 108 {
		shaft = 25
	}

	length := math.Ceil((0.378*widthMm+25)/5) * 5

	return models.IdlerParameters{
		OuterDiameter: shell,
		Length:        length,
		InnerDiameter: shaft,
		Unit:          units.Millimeter,
	}
}

// deriveFrame sizes the conveyor frame envelope around the belt and
// drive pulley.
func deriveFrame(widthMm, pulleyDiameterMm float64) models.ConveyorFrame {
	return models.ConveyorFrame{
		Width:        widthMm + 200,
		Height:       pulleyDiameterMm + 200,
		Depth:        widthMm,
		CornerRadius: 0,
		Unit:         units.Millimeter,
	}
}

func convertPulley(p models.PulleyParameters, to units.LengthUnit) models.PulleyParameters {
	conv := func(v float64) float64 { return units.Convert(v, units.Millimeter, to) }
	return models.PulleyParameters{
		Diameter:      conv(p.Diameter),
		Thickness:     conv(p.Thickness),
		BoreDiameter:  conv(p.BoreDiameter),
		InnerDiameter: conv(p.InnerDiameter),
		GrooveDepth:   conv(p.GrooveDepth),
		GrooveWidth:   conv(p.GrooveWidth),
		KeyWayWidth:   conv(p.KeyWayWidth),
		KeyWayDepth:   conv(p.KeyWayDepth),
		Unit:          to,
	}
}

func convertIdler(p models.IdlerParameters, to units.LengthUnit) models.IdlerParameters {
	conv := func(v float64) float64 { return units.Convert(v, units.Millimeter, to) }
	return models.IdlerParameters{
		OuterDiameter: conv(p.OuterDiameter),
		Length:        conv(p.Length),
		InnerDiameter: conv(p.InnerDiameter),
		Unit:          to,
	}
}

func convertFrame(f models.ConveyorFrame, to units.LengthUnit) models.ConveyorFrame {
	conv := func(v float64) float64 { return units.Convert(v, units.Millimeter, to) }
	return models.ConveyorFrame{
		Width:        conv(f.Width),
		Height:       conv(f.Height),
		Depth:        conv(f.Depth),
		CornerRadius: conv(f.CornerRadius),
		Unit:         to,
	}
}
