// Package dxf serializes geometry drawings into the textual DXF
// entity grammar (group-code/value pairs). It consumes the same
// primitive lists the SVG adapter renders, written unscaled in the
// drawing's selected unit, with each additional view translated along
// the X axis instead of sharing a viewport transform.
package dxf

import (
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates group-code/value pairs.
type writer struct {
	b strings.Builder
}

func (w *writer) tag(code int, value string) {
	w.b.WriteString(strconv.Itoa(code))
	w.b.WriteString("\n")
	w.b.WriteString(value)
	w.b.WriteString("\n")
}

func (w *writer) tagF(code int, value float64) {
	w.tag(code, formatCoord(value))
}

func (w *writer) tagI(code, value int) {
	w.tag(code, strconv.Itoa(value))
}

func (w *writer) section(name string) {
	w.tag(0, "SECTION")
	w.tag(2, name)
}

func (w *writer) endSection() {
	w.tag(0, "ENDSEC")
}

func (w *writer) String() string {
	return w.b.String()
}

// formatCoord renders a coordinate with four decimals, the common DXF
// text convention.
func formatCoord(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
