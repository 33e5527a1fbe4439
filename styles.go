package chatmbti

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements of the result panels.
type Styles struct {
	PanelTitle    ColorPair // Panel header line
	PanelSelected ColorPair // Header of the panel under the cursor
	Caption       ColorPair // Field captions inside panels
	Muted         ColorPair // Placeholders and advisory text
	Accent        ColorPair // Headline type and label text
	Chip          ColorPair // Word and emoji chips
	BarLeft       ColorPair // Left share of an axis bar
	BarRight      ColorPair // Right share of an axis bar
	Confidence    ColorPair // Confidence bar fill
	StatusLoading ColorPair
	StatusSuccess ColorPair
	StatusError   ColorPair
	StatusBar     ColorPair // Key hint line
}

// Theme provides styles for rendering result panels.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
}
