package models

import (
	"fmt"

	"github.com/techdraw/backend/internal/units"
)

// ConveyorInputs are the belt-conveyor level inputs to the unified
// generator. BeltWidth is in the selected unit; BeltSpeed is always m/s
// and Capacity always t/h, matching the input form.
type ConveyorInputs struct {
	BeltWidth   float64          `json:"beltWidth"`
	BeltSpeed   float64          `json:"beltSpeed"`
	Capacity    float64          `json:"capacity"`
	Material    string           `json:"material"`
	Inclination float64          `json:"inclination"` // degrees
	Unit        units.LengthUnit `json:"unit"`
}

// Validate checks the conveyor-level inputs.
func (c *ConveyorInputs) Validate() error {
	if !c.Unit.Valid() {
		return fmt.Errorf("unknown unit %q", c.Unit)
	}
	if c.BeltWidth <= 0 {
		return fmt.Errorf("belt width must be positive")
	}
	if c.BeltSpeed <= 0 {
		return fmt.Errorf("belt speed must be positive")
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive")
	}
	if c.Inclination < 0 || c.Inclination > 30 {
		return fmt.Errorf("inclination must be between 0 and 30 degrees")
	}
	if c.Material == "" {
		return fmt.Errorf("material is required")
	}
	return nil
}

// ConveyorFrame holds the derived conveyor frame envelope, expressed
// in the selected unit.
type ConveyorFrame struct {
	Width        float64          `json:"width"`
	Height       float64          `json:"height"`
	Depth        float64          `json:"depth"`
	CornerRadius float64          `json:"cornerRadius"`
	Unit         units.LengthUnit `json:"unit"`
}

// CalculationDetails is the audit record of intermediate values from a
// derived-parameter run. Display only; never fed back into geometry.
type CalculationDetails struct {
	EffectiveBeltWidth float64 `json:"effectiveBeltWidth"` // selected unit
	CrossSectionArea   float64 `json:"crossSectionArea"`   // m²
	CalculatedCapacity float64 `json:"calculatedCapacity"` // t/h
	BeltLoad           float64 `json:"beltLoad"`           // kg/m
	LoadFactor         float64 `json:"loadFactor"`
	CapacityFactor     float64 `json:"capacityFactor"`
	MaterialDensity    float64 `json:"materialDensity"` // kg/m³
	TroughAngle        float64 `json:"troughAngle"`     // degrees
	SurchargeAngle     float64 `json:"surchargeAngle"`  // degrees
}

// CalculatedSystemParameters is the composite result of the unified
// generator: three independent drawable parameter sets plus the audit
// details.
type CalculatedSystemParameters struct {
	Conveyor ConveyorFrame      `json:"conveyor"`
	Pulley   PulleyParameters   `json:"pulley"`
	Idler    IdlerParameters    `json:"idler"`
	Details  CalculationDetails `json:"details"`
}
