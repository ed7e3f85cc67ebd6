package dxf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/techdraw/backend/internal/geometry"
	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
)

// ViewSpacing is the gap inserted between adjacent views on the
// shared DXF coordinate space, in drawing units.
const ViewSpacing = 50.0

// layerColors maps each layer to its fixed ACI color index.
var layerColors = map[geometry.Layer]int{
	geometry.LayerTopView:     7,
	geometry.LayerSideView:    5,
	geometry.LayerSectionView: 1,
	geometry.LayerDimensions:  3,
}

// layerOrder keeps the LAYER table deterministic.
var layerOrder = []geometry.Layer{
	geometry.LayerTopView,
	geometry.LayerSideView,
	geometry.LayerSectionView,
	geometry.LayerDimensions,
}

// insUnits maps a length unit onto the DXF $INSUNITS code.
var insUnits = map[units.LengthUnit]int{
	units.Millimeter: 4,
	units.Centimeter: 5,
	units.Meter:      6,
	units.Inch:       1,
}

// Serialize emits a self-contained DXF document for a drawing. Views
// are laid out left to right: each view after the first is translated
// by the previous view's primary extent plus ViewSpacing.
func Serialize(d geometry.Drawing) string {
	w := &writer{}

	minX, minY, maxX, maxY := documentExtents(d)

	w.section("HEADER")
	w.tag(9, "$ACADVER")
	w.tag(1, "AC1009")
	w.tag(9, "$INSUNITS")
	w.tagI(70, insUnits[d.Unit])
	w.tag(9, "$EXTMIN")
	w.tagF(10, minX)
	w.tagF(20, minY)
	w.tagF(30, 0)
	w.tag(9, "$EXTMAX")
	w.tagF(10, maxX)
	w.tagF(20, maxY)
	w.tagF(30, 0)
	w.endSection()

	w.section("TABLES")
	w.tag(0, "TABLE")
	w.tag(2, "LAYER")
	w.tagI(70, len(layerOrder))
	for _, layer := range layerOrder {
		w.tag(0, "LAYER")
		w.tag(2, string(layer))
		w.tagI(70, 0)
		w.tagI(62, layerColors[layer])
		w.tag(6, "CONTINUOUS")
	}
	w.tag(0, "ENDTAB")
	w.endSection()

	w.section("BLOCKS")
	w.endSection()

	w.section("ENTITIES")
	offsetX := 0.0
	for i, v := range d.Views {
		if i > 0 {
			offsetX += d.Views[i-1].ExtentX + ViewSpacing
		}
		writeView(w, v, offsetX)
	}
	w.endSection()

	w.tag(0, "EOF")
	return w.String()
}

func writeView(w *writer, v geometry.View, offsetX float64) {
	for _, el := range v.Elements {
		switch p := el.Primitive.(type) {
		case geometry.Line:
			writeLine(w, el.Layer, p, offsetX)
		case geometry.Arc:
			w.tag(0, "ARC")
			w.tag(8, string(el.Layer))
			w.tagF(10, p.Center.X+offsetX)
			w.tagF(20, p.Center.Y)
			w.tagF(30, 0)
			w.tagF(40, p.Radius)
			w.tagF(50, p.StartAngle)
			w.tagF(51, p.EndAngle)
		case geometry.Circle:
			w.tag(0, "CIRCLE")
			w.tag(8, string(el.Layer))
			w.tagF(10, p.Center.X+offsetX)
			w.tagF(20, p.Center.Y)
			w.tagF(30, 0)
			w.tagF(40, p.Radius)
		case geometry.Text:
			writeText(w, el.Layer, p, offsetX)
		case geometry.DimensionGroup:
			writeDimension(w, el.Layer, p, offsetX)
		}
	}
}

func writeLine(w *writer, layer geometry.Layer, l geometry.Line, offsetX float64) {
	w.tag(0, "LINE")
	w.tag(8, string(layer))
	w.tagF(10, l.From.X+offsetX)
	w.tagF(20, l.From.Y)
	w.tagF(30, 0)
	w.tagF(11, l.To.X+offsetX)
	w.tagF(21, l.To.Y)
	w.tagF(31, 0)
}

// textEscaper rewrites symbols that predate Unicode text in DXF.
// R12-era readers only understand the %%c control code for the
// diameter sign and render the raw rune as garbage.
var textEscaper = strings.NewReplacer(
	"∅", "%%c",
	"°", "%%d",
	"±", "%%p",
)

func writeText(w *writer, layer geometry.Layer, t geometry.Text, offsetX float64) {
	w.tag(0, "TEXT")
	w.tag(8, string(layer))
	w.tagF(10, t.At.X+offsetX)
	w.tagF(20, t.At.Y)
	w.tagF(30, 0)
	w.tagF(40, t.Height)
	w.tag(1, textEscaper.Replace(t.Content))
	if t.Rotation != 0 {
		w.tagF(50, t.Rotation)
	}
	if t.Anchor == geometry.AnchorMiddle {
		w.tagI(72, 1)
		w.tagF(11, t.At.X+offsetX)
		w.tagF(21, t.At.Y)
		w.tagF(31, 0)
	}
}

// writeDimension expands a dimension group into plain lines and text.
// Arrowheads become their two flank edges; the label background box is
// a screen legibility artifact and is not exported.
func writeDimension(w *writer, layer geometry.Layer, d geometry.DimensionGroup, offsetX float64) {
	for _, ext := range d.Extensions {
		writeLine(w, layer, ext, offsetX)
	}
	writeLine(w, layer, d.DimLine, offsetX)
	for _, a := range d.Arrows {
		writeLine(w, layer, geometry.Line{From: a.Tip, To: a.Left}, offsetX)
		writeLine(w, layer, geometry.Line{From: a.Tip, To: a.Right}, offsetX)
		writeLine(w, layer, geometry.Line{From: a.Left, To: a.Right}, offsetX)
	}
	writeText(w, layer, d.Label, offsetX)
}

// documentExtents computes $EXTMIN/$EXTMAX over all views, with the
// same translation the entity pass applies.
func documentExtents(d geometry.Drawing) (minX, minY, maxX, maxY float64) {
	offsetX := 0.0
	for i, v := range d.Views {
		if i > 0 {
			offsetX += d.Views[i-1].ExtentX + ViewSpacing
		}
		// Dimension call-outs extend past the silhouette; pad by the
		// same margin the layout resolver reserves.
		padX := v.ExtentX * 0.25
		padY := v.ExtentY * 0.25
		lo, hi := offsetX-v.ExtentX/2-padX, offsetX+v.ExtentX/2+padX
		if i == 0 || lo < minX {
			minX = lo
		}
		if i == 0 || hi > maxX {
			maxX = hi
		}
		if y := -v.ExtentY/2 - padY; i == 0 || y < minY {
			minY = y
		}
		if y := v.ExtentY/2 + padY; i == 0 || y > maxY {
			maxY = y
		}
	}
	return minX, minY, maxX, maxY
}

// Filename patterns encode the key dimensions of the exported
// component.

// BoxFilename returns e.g. "drawing_200x100R10mm.dxf".
func BoxFilename(b models.BoxDimensions) string {
	return fmt.Sprintf("drawing_%sx%sR%s%s.dxf",
		num(b.Width), num(b.Height), num(b.CornerRadius), b.Unit)
}

// PulleyFilename returns e.g. "pulley_D250xT120mm.dxf".
func PulleyFilename(p models.PulleyParameters) string {
	return fmt.Sprintf("pulley_D%sxT%s%s.dxf", num(p.Diameter), num(p.Thickness), p.Unit)
}

// IdlerFilename returns e.g. "idler_D133xL400mm.dxf".
func IdlerFilename(p models.IdlerParameters) string {
	return fmt.Sprintf("idler_D%sxL%s%s.dxf", num(p.OuterDiameter), num(p.Length), p.Unit)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
