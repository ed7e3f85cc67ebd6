// Package pdf composes export pages: a raster snapshot of the live
// drawing placed into an A4 template above a title block. The snapshot
// is captured by the browser (an external capability); this package
// only validates, scales and places it.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/techdraw/backend/internal/models"
)

// ImageMargin leaves breathing room between the drawing image and the
// template frame.
const ImageMargin = 0.95

// Template fixes the page geometry for one component family. All
// measurements are millimeters.
type Template struct {
	Orientation  string // "L" or "P"
	PageW, PageH float64
	Margin       float64
	TitleBlockH  float64
}

// TemplateFor selects the page template: landscape for box and pulley
// sheets, portrait for the idler detail sheet.
func TemplateFor(c models.Component) Template {
	if c == models.ComponentIdler {
		return Template{Orientation: "P", PageW: 210, PageH: 297, Margin: 10, TitleBlockH: 35}
	}
	return Template{Orientation: "L", PageW: 297, PageH: 210, Margin: 10, TitleBlockH: 35}
}

// TitleBlock carries the text fields of the drawing's metadata panel.
type TitleBlock struct {
	Title      string
	Dimensions string
	Material   string
	Scale      string    // true viewport ratio; empty falls back to "1:1"
	Date       time.Time // zero value means now
}

// FitRect scales (imgW, imgH) uniformly into (areaW, areaH) with the
// image margin applied, never exceeding either bound.
func FitRect(areaW, areaH, imgW, imgH float64) (w, h float64) {
	if imgW <= 0 || imgH <= 0 {
		return 0, 0
	}
	scale := areaW / imgW
	if s := areaH / imgH; s < scale {
		scale = s
	}
	scale *= ImageMargin
	return imgW * scale, imgH * scale
}

// Compose builds the single-page PDF document. It aborts before
// touching the page when the snapshot is missing or not a decodable
// image, so a failed capture can never produce a silently blank sheet.
func Compose(snapshot []byte, tpl Template, meta TitleBlock) ([]byte, error) {
	if len(snapshot) == 0 {
		return nil, fmt.Errorf("pdf: drawing snapshot is empty")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("pdf: snapshot is not a valid image: %w", err)
	}
	if format != "png" {
		return nil, fmt.Errorf("pdf: snapshot must be PNG, got %s", format)
	}

	doc := fpdf.New(tpl.Orientation, "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	// Sheet frame.
	doc.SetLineWidth(0.4)
	frameW := tpl.PageW - 2*tpl.Margin
	frameH := tpl.PageH - 2*tpl.Margin
	doc.Rect(tpl.Margin, tpl.Margin, frameW, frameH, "D")

	// Drawing area above the title block.
	areaX := tpl.Margin
	areaY := tpl.Margin
	areaW := frameW
	areaH := frameH - tpl.TitleBlockH

	imgW, imgH := FitRect(areaW, areaH, float64(cfg.Width), float64(cfg.Height))
	imgX := areaX + (areaW-imgW)/2
	imgY := areaY + (areaH-imgH)/2

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("drawing", opts, bytes.NewReader(snapshot))
	doc.ImageOptions("drawing", imgX, imgY, imgW, imgH, false, opts, 0, "")

	drawTitleBlock(doc, tpl, meta)

	if doc.Err() {
		return nil, fmt.Errorf("pdf: composition failed: %w", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: writing document: %w", err)
	}
	return buf.Bytes(), nil
}

// drawTitleBlock draws the bordered metadata grid along the bottom of
// the frame.
func drawTitleBlock(doc *fpdf.Fpdf, tpl Template, meta TitleBlock) {
	x := tpl.Margin
	w := tpl.PageW - 2*tpl.Margin
	y := tpl.PageH - tpl.Margin - tpl.TitleBlockH
	h := tpl.TitleBlockH

	doc.Rect(x, y, w, h, "D")

	// Two rows: title spans the top, four field cells below.
	rowH := h / 2
	doc.Line(x, y+rowH, x+w, y+rowH)

	doc.SetFont("Helvetica", "B", 12)
	doc.SetXY(x+2, y+rowH/2-3)
	doc.CellFormat(w-4, 6, meta.Title, "", 0, "L", false, 0, "")

	scale := meta.Scale
	if scale == "" {
		scale = "1:1"
	}
	date := meta.Date
	if date.IsZero() {
		date = time.Now()
	}

	fields := []struct {
		label, value string
	}{
		{"Dimensions", meta.Dimensions},
		{"Material", meta.Material},
		{"Date", date.Format("02 Jan 2006")},
		{"Scale", scale},
	}

	cellW := w / float64(len(fields))
	for i, f := range fields {
		cx := x + float64(i)*cellW
		if i > 0 {
			doc.Line(cx, y+rowH, cx, y+h)
		}
		doc.SetFont("Helvetica", "", 7)
		doc.SetXY(cx+2, y+rowH+2)
		doc.CellFormat(cellW-4, 3.5, f.label, "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.SetXY(cx+2, y+rowH+7)
		doc.CellFormat(cellW-4, 4.5, f.value, "", 0, "L", false, 0, "")
	}
}

// Filename encodes the component and its headline dimensions, e.g.
// "drawing_200x100mm.pdf".
func Filename(component models.Component, dims string) string {
	return fmt.Sprintf("%s_%s.pdf", component, dims)
}
