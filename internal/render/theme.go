package render

import "sort"

// Theme defines colors for node palettes and diagram elements.
type Theme struct {
	Name   string
	Colors map[string]ThemeColor
}

// ThemeColor defines fill, stroke and font colors for an element.
type ThemeColor struct {
	Fill   string
	Stroke string
	Font   string
}

var themes = map[string]*Theme{
	"default": {
		Name: "default",
		Colors: map[string]ThemeColor{
			"success":  {Fill: "#DCFCE7", Stroke: "#16A34A", Font: "#166534"},
			"failure":  {Fill: "#FEE2E2", Stroke: "#DC2626", Font: "#991B1B"},
			"group":    {Fill: "#F3F4F6", Stroke: "#6B7280", Font: "#374151"},
			"edge":     {Fill: "", Stroke: "#4F46E5", Font: "#3730A3"},
			"dangling": {Fill: "#FEF9C3", Stroke: "#CA8A04", Font: "#854D0E"},
		},
	},
	"dark": {
		Name: "dark",
		Colors: map[string]ThemeColor{
			"success":  {Fill: "#052E16", Stroke: "#22C55E", Font: "#86EFAC"},
			"failure":  {Fill: "#450A0A", Stroke: "#EF4444", Font: "#FCA5A5"},
			"group":    {Fill: "#1F2937", Stroke: "#9CA3AF", Font: "#D1D5DB"},
			"edge":     {Fill: "", Stroke: "#818CF8", Font: "#A5B4FC"},
			"dangling": {Fill: "#422006", Stroke: "#EAB308", Font: "#FDE047"},
		},
	},
	"monochrome": {
		Name: "monochrome",
		Colors: map[string]ThemeColor{
			"success":  {Fill: "#F3F4F6", Stroke: "#374151", Font: "#111827"},
			"failure":  {Fill: "#D1D5DB", Stroke: "#111827", Font: "#111827"},
			"group":    {Fill: "#F9FAFB", Stroke: "#9CA3AF", Font: "#4B5563"},
			"edge":     {Fill: "", Stroke: "#4B5563", Font: "#1F2937"},
			"dangling": {Fill: "#E5E7EB", Stroke: "#6B7280", Font: "#374151"},
		},
	},
	"ocean": {
		Name: "ocean",
		Colors: map[string]ThemeColor{
			"success":  {Fill: "#CFFAFE", Stroke: "#0891B2", Font: "#155E75"},
			"failure":  {Fill: "#FEE2E2", Stroke: "#DC2626", Font: "#991B1B"},
			"group":    {Fill: "#F0F9FF", Stroke: "#38BDF8", Font: "#0369A1"},
			"edge":     {Fill: "", Stroke: "#2563EB", Font: "#1E40AF"},
			"dangling": {Fill: "#E0F2FE", Stroke: "#0284C7", Font: "#075985"},
		},
	},
}

// ThemeNames returns all available theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasTheme reports whether name is a known theme.
func HasTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// GetTheme returns the named theme or the default.
func GetTheme(name string) *Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

// ColorForPalette returns the theme color of a node palette.
func (t *Theme) ColorForPalette(p Palette) ThemeColor {
	return t.ColorForElement(p.String())
}

// ColorForElement returns the theme color for a named element.
func (t *Theme) ColorForElement(name string) ThemeColor {
	if c, ok := t.Colors[name]; ok {
		return c
	}
	return ThemeColor{Fill: "#F9FAFB", Stroke: "#D1D5DB", Font: "#111827"}
}
