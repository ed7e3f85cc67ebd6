package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/techdraw/backend/internal/geometry"
	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
)

func boxView() geometry.View {
	return geometry.BoxTop(models.BoxDimensions{
		Width: 200, Height: 100, CornerRadius: 10, Unit: units.Millimeter,
	})
}

func TestRenderViewProducesCompleteDocument(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer()

	err := r.RenderView(&buf, boxView(), 800, 600, ThemeLight)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, "200 mm")
	assert.Contains(t, out, "100 mm")
	// Rounded corners become path arcs.
	assert.Contains(t, out, " A ")
}

func TestRenderViewSkipsUnmeasuredViewport(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer()

	err := r.RenderView(&buf, boxView(), 0, 600, ThemeLight)
	assert.ErrorIs(t, err, ErrViewportNotMeasured)
	assert.Zero(t, buf.Len(), "nothing must be written when the viewport is unmeasured")
}

func TestRenderViewThemePalettes(t *testing.T) {
	var light, dark bytes.Buffer
	r := NewRenderer()

	assert.NoError(t, r.RenderView(&light, boxView(), 800, 600, ThemeLight))
	assert.NoError(t, r.RenderView(&dark, boxView(), 800, 600, ThemeDark))

	assert.Contains(t, light.String(), "#ffffff")
	assert.Contains(t, dark.String(), "#0f172a")
	assert.NotEqual(t, light.String(), dark.String())
}

func TestRenderViewDashedGrooveFloor(t *testing.T) {
	v := geometry.PulleyTop(models.PulleyParameters{
		Diameter: 250, Thickness: 120, BoreDiameter: 40, InnerDiameter: 220,
		GrooveDepth: 15, GrooveWidth: 20, KeyWayWidth: 12, KeyWayDepth: 6,
		Unit: units.Millimeter,
	})

	var buf bytes.Buffer
	err := NewRenderer().RenderView(&buf, v, 800, 600, ThemeLight)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "stroke-dasharray:"+dashHidden)
}

func TestRenderViewShadowOnlyOnTopViews(t *testing.T) {
	b := models.BoxDimensions{Width: 200, Height: 100, Depth: 50, Unit: units.Millimeter}

	var top, side bytes.Buffer
	r := NewRenderer()
	assert.NoError(t, r.RenderView(&top, geometry.BoxTop(b), 800, 600, ThemeLight))
	assert.NoError(t, r.RenderView(&side, geometry.BoxSide(b), 800, 600, ThemeLight))

	assert.True(t, strings.Contains(top.String(), "drop-shadow"))
	assert.False(t, strings.Contains(side.String(), "drop-shadow"))
}

func TestRenderIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	r := NewRenderer()
	assert.NoError(t, r.RenderView(&a, boxView(), 640, 480, ThemeDark))
	assert.NoError(t, r.RenderView(&b, boxView(), 640, 480, ThemeDark))
	assert.Equal(t, a.String(), b.String())
}
