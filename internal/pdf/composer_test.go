package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techdraw/backend/internal/models"
)

func testSnapshot(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFitRectNeverOverflows(t *testing.T) {
	tests := []struct {
		name                     string
		areaW, areaH, imgW, imgH float64
	}{
		{"landscape image in landscape area", 277, 155, 1600, 900},
		{"portrait image in landscape area", 277, 155, 900, 1600},
		{"square image", 277, 155, 1000, 1000},
		{"tiny image", 277, 155, 10, 10},
		{"extreme wide", 277, 155, 100000, 10},
		{"extreme tall", 190, 242, 10, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitRect(tt.areaW, tt.areaH, tt.imgW, tt.imgH)
			assert.LessOrEqual(t, w, tt.areaW)
			assert.LessOrEqual(t, h, tt.areaH)
			assert.Greater(t, w, 0.0)
			assert.Greater(t, h, 0.0)
			// Aspect ratio is preserved.
			assert.InDelta(t, tt.imgW/tt.imgH, w/h, 1e-9)
		})
	}
}

func TestFitRectDegenerateImage(t *testing.T) {
	w, h := FitRect(277, 155, 0, 100)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestComposeProducesDocument(t *testing.T) {
	out, err := Compose(testSnapshot(t, 800, 600), TemplateFor(models.ComponentBox), TitleBlock{
		Title:      "Enclosure 200x100",
		Dimensions: "200 x 100 x 50 mm",
		Material:   "Mild steel",
		Scale:      "1:2.5",
		Date:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must be a PDF document")
}

func TestComposeRejectsMissingSnapshot(t *testing.T) {
	_, err := Compose(nil, TemplateFor(models.ComponentBox), TitleBlock{})
	assert.Error(t, err)

	_, err = Compose([]byte("not an image"), TemplateFor(models.ComponentBox), TitleBlock{})
	assert.Error(t, err)
}

func TestTemplateOrientation(t *testing.T) {
	assert.Equal(t, "L", TemplateFor(models.ComponentBox).Orientation)
	assert.Equal(t, "L", TemplateFor(models.ComponentPulley).Orientation)
	assert.Equal(t, "P", TemplateFor(models.ComponentIdler).Orientation)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "box_200x100mm.pdf", Filename(models.ComponentBox, "200x100mm"))
}
