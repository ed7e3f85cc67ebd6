package render

// Theme selects one of the two fixed palettes. Theme is an explicit
// parameter of every render call; the adapter never observes ambient
// state to decide colors.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Palette is the fixed color set for one theme.
type Palette struct {
	Background string
	Grid       string
	Stroke     string
	Hidden     string // dashed hidden edges, groove floor
	Dimension  string
	LabelBg    string
	Section    string // red A-A cut line
	Hatch      string
	Shadow     string
}

var palettes = map[Theme]Palette{
	ThemeLight: {
		Background: "#ffffff",
		Grid:       "#e5e7eb",
		Stroke:     "#1f2937",
		Hidden:     "#6b7280",
		Dimension:  "#475569",
		LabelBg:    "#ffffff",
		Section:    "#dc2626",
		Hatch:      "#64748b",
		Shadow:     "rgba(0,0,0,0.25)",
	},
	ThemeDark: {
		Background: "#0f172a",
		Grid:       "#1e293b",
		Stroke:     "#e5e7eb",
		Hidden:     "#94a3b8",
		Dimension:  "#94a3b8",
		LabelBg:    "#0f172a",
		Section:    "#f87171",
		Hatch:      "#94a3b8",
		Shadow:     "rgba(0,0,0,0.6)",
	},
}

// PaletteFor returns the palette for a theme, defaulting to light for
// anything unrecognized.
func PaletteFor(t Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeLight]
}
