package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techdraw/backend/internal/conveyor"
	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
	"github.com/techdraw/backend/pkg/logger"
)

func newConveyorHandler() ConveyorHandler {
	return NewConveyorHandler(conveyor.NewCalculator(conveyor.DefaultCatalog()), logger.Nop())
}

func TestCalculateSystemParameters(t *testing.T) {
	h := newConveyorHandler()

	body := models.ConveyorInputs{
		BeltWidth:   1000,
		BeltSpeed:   1.5,
		Capacity:    500,
		Material:    "coal",
		Inclination: 10,
		Unit:        units.Millimeter,
	}
	c, rec := newJSONContext(t, http.MethodPost, "/api/conveyor/calculate", body)

	require.NoError(t, h.HandleCalculate(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.CalculatedSystemParameters
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 550.0, resp.Pulley.Diameter)
	assert.Equal(t, 800.0, resp.Details.MaterialDensity)
	assert.Greater(t, resp.Idler.OuterDiameter, 0.0)
	assert.Greater(t, resp.Conveyor.Width, 0.0)
}

func TestCalculateUnknownMaterial(t *testing.T) {
	h := newConveyorHandler()

	body := models.ConveyorInputs{
		BeltWidth: 1000, BeltSpeed: 1.5, Capacity: 500,
		Material: "unobtainium", Unit: units.Millimeter,
	}
	c, _ := newJSONContext(t, http.MethodPost, "/api/conveyor/calculate", body)

	err := h.HandleCalculate(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestCalculateRejectsSteepInclination(t *testing.T) {
	h := newConveyorHandler()

	body := models.ConveyorInputs{
		BeltWidth: 1000, BeltSpeed: 1.5, Capacity: 500,
		Material: "coal", Inclination: 45, Unit: units.Millimeter,
	}
	c, _ := newJSONContext(t, http.MethodPost, "/api/conveyor/calculate", body)

	err := h.HandleCalculate(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
}

func TestListMaterials(t *testing.T) {
	h := newConveyorHandler()

	c, rec := newJSONContext(t, http.MethodGet, "/api/materials", nil)
	require.NoError(t, h.HandleListMaterials(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Materials []conveyor.Material `json:"materials"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Materials, 6)
}
