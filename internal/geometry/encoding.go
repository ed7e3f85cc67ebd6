package geometry

import "encoding/json"

// WireElement is the tagged transport form of an Element, shared by
// the JSON and msgpack geometry endpoints so the frontend can switch
// on a single "kind" field.
type WireElement struct {
	Layer  Layer           `json:"layer" msgpack:"layer"`
	Kind   string          `json:"kind" msgpack:"kind"`
	Line   *Line           `json:"line,omitempty" msgpack:"line,omitempty"`
	Arc    *Arc            `json:"arc,omitempty" msgpack:"arc,omitempty"`
	Circle *Circle         `json:"circle,omitempty" msgpack:"circle,omitempty"`
	Text   *Text           `json:"text,omitempty" msgpack:"text,omitempty"`
	Dim    *DimensionGroup `json:"dim,omitempty" msgpack:"dim,omitempty"`
}

// Wire converts an element list into its transport form.
func Wire(elements []Element) []WireElement {
	out := make([]WireElement, 0, len(elements))
	for _, el := range elements {
		w := WireElement{Layer: el.Layer}
		switch p := el.Primitive.(type) {
		case Line:
			w.Kind, w.Line = "line", &p
		case Arc:
			w.Kind, w.Arc = "arc", &p
		case Circle:
			w.Kind, w.Circle = "circle", &p
		case Text:
			w.Kind, w.Text = "text", &p
		case DimensionGroup:
			w.Kind, w.Dim = "dimension", &p
		default:
			continue
		}
		out = append(out, w)
	}
	return out
}

// MarshalJSON emits the tagged transport form so view payloads are
// self-describing.
func (e Element) MarshalJSON() ([]byte, error) {
	wires := Wire([]Element{e})
	if len(wires) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(wires[0])
}
