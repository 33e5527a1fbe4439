// Package lipgloss provides themes and content measurement using the Lipgloss
// styling library.
package lipgloss

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/chatmbti"
)

// Compile-time interface verification.
var _ chatmbti.Theme = (*Theme)(nil)

// ErrUnknownTheme is returned by ThemeByName for unrecognized names.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme implements chatmbti.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles chatmbti.Styles
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() chatmbti.Styles {
	return t.styles
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the theme called name ("dark" or "light").
func ThemeByName(name string) (*Theme, error) {
	switch strings.ToLower(name) {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
}

// DarkTheme returns a theme optimized for dark terminal backgrounds
// (Catppuccin Mocha).
func DarkTheme() *Theme {
	return &Theme{
		styles: chatmbti.Styles{
			PanelTitle: chatmbti.ColorPair{
				Foreground: "#cdd6f4", // Text
				Background: "#313244", // Surface
			},
			PanelSelected: chatmbti.ColorPair{
				Foreground: "#1e1e2e", // Dark text on accent
				Background: "#cba6f7", // Mauve
			},
			Caption: chatmbti.ColorPair{
				Foreground: "#89b4fa", // Blue
			},
			Muted: chatmbti.ColorPair{
				Foreground: "#6c7086", // Overlay
			},
			Accent: chatmbti.ColorPair{
				Foreground: "#f5c2e7", // Pink
			},
			Chip: chatmbti.ColorPair{
				Foreground: "#cdd6f4",
				Background: "#45475a",
			},
			BarLeft: chatmbti.ColorPair{
				Foreground: "#cba6f7",
			},
			BarRight: chatmbti.ColorPair{
				Foreground: "#45475a",
			},
			Confidence: chatmbti.ColorPair{
				Foreground: "#a6e3a1", // Green
			},
			StatusLoading: chatmbti.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#f9e2af", // Yellow
			},
			StatusSuccess: chatmbti.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#a6e3a1", // Green
			},
			StatusError: chatmbti.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#f38ba8", // Red
			},
			StatusBar: chatmbti.ColorPair{
				Foreground: "#a6adc8",
				Background: "#313244",
			},
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds
// (Catppuccin Latte).
func LightTheme() *Theme {
	return &Theme{
		styles: chatmbti.Styles{
			PanelTitle: chatmbti.ColorPair{
				Foreground: "#4c4f69",
				Background: "#e6e9ef",
			},
			PanelSelected: chatmbti.ColorPair{
				Foreground: "#ffffff",
				Background: "#8839ef",
			},
			Caption: chatmbti.ColorPair{
				Foreground: "#1e66f5",
			},
			Muted: chatmbti.ColorPair{
				Foreground: "#9ca0b0",
			},
			Accent: chatmbti.ColorPair{
				Foreground: "#ea76cb",
			},
			Chip: chatmbti.ColorPair{
				Foreground: "#4c4f69",
				Background: "#ccd0da",
			},
			BarLeft: chatmbti.ColorPair{
				Foreground: "#8839ef",
			},
			BarRight: chatmbti.ColorPair{
				Foreground: "#bcc0cc",
			},
			Confidence: chatmbti.ColorPair{
				Foreground: "#40a02b",
			},
			StatusLoading: chatmbti.ColorPair{
				Foreground: "#ffffff",
				Background: "#df8e1d",
			},
			StatusSuccess: chatmbti.ColorPair{
				Foreground: "#ffffff",
				Background: "#40a02b",
			},
			StatusError: chatmbti.ColorPair{
				Foreground: "#ffffff",
				Background: "#d20f39",
			},
			StatusBar: chatmbti.ColorPair{
				Foreground: "#6c6f85",
				Background: "#e6e9ef",
			},
		},
	}
}
