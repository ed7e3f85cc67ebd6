// handlers_conveyor.go - Derived-parameter calculator endpoints
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techdraw/backend/internal/conveyor"
	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/pkg/logger"
)

// ConveyorHandlerImpl implements the ConveyorHandler interface
type ConveyorHandlerImpl struct {
	calc *conveyor.Calculator
	log  *logger.Logger
}

// NewConveyorHandler creates a new conveyor handler
func NewConveyorHandler(calc *conveyor.Calculator, log *logger.Logger) ConveyorHandler {
	return &ConveyorHandlerImpl{calc: calc, log: log}
}

// HandleCalculate derives the full parameter set for every component
// from the conveyor system inputs.
func (h *ConveyorHandlerImpl) HandleCalculate(c echo.Context) error {
	var in models.ConveyorInputs
	if err := c.Bind(&in); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	result, err := h.calc.Calculate(in)
	if err != nil {
		return NewValidationError(err)
	}

	h.log.Debug("system parameters calculated",
		"beltWidth", in.BeltWidth, "material", in.Material,
		"pulleyDiameter", result.Pulley.Diameter)
	return c.JSON(http.StatusOK, result)
}

// HandleListMaterials returns the material catalog, sorted by name.
func (h *ConveyorHandlerImpl) HandleListMaterials(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"materials": h.calc.Materials(),
	})
}
