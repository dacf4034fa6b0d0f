package renderer

import "image/color"

// Theme is a color scheme for the field and its effects.
type Theme struct {
	Name       string
	Background color.RGBA
	Points     []color.RGBA
	Line       color.RGBA
	Trail      []color.RGBA
	Confetti   []color.RGBA
	Text       color.RGBA
}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

var confetti = []color.RGBA{
	hex(0x00ffff), hex(0xff00ff), hex(0xffff00), hex(0x00ff00), hex(0xff0088),
}

// Dark is the default night scheme: cyan network, purple and cyan trail.
var Dark = Theme{
	Name:       "dark",
	Background: hex(0x0b0b14),
	Points:     []color.RGBA{hex(0x00ffff), hex(0x22d3ee), hex(0x67e8f9)},
	Line:       hex(0x00ffff),
	Trail:      []color.RGBA{hex(0xa78bfa), hex(0x8b5cf6), hex(0x7c3aed), hex(0x06b6d4), hex(0x0ea5e9)},
	Confetti:   confetti,
	Text:       hex(0xe5e7eb),
}

// Light is the day scheme: blue network, blue and pink trail.
var Light = Theme{
	Name:       "light",
	Background: hex(0xf8fafc),
	Points:     []color.RGBA{hex(0x0891b2), hex(0x6366f1), hex(0x0ea5e9)},
	Line:       hex(0x6366f1),
	Trail:      []color.RGBA{hex(0x6366f1), hex(0x8b5cf6), hex(0xa855f7), hex(0xec4899), hex(0xf43f5e)},
	Confetti:   confetti,
	Text:       hex(0x1f2937),
}

// ThemeFor returns Dark or Light.
func ThemeFor(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// ThemeByName returns the theme with the given name, defaulting to Dark.
func ThemeByName(name string) Theme {
	if name == Light.Name {
		return Light
	}
	return Dark
}

// pick returns palette[i], wrapping, or fallback for an empty palette.
func pick(palette []color.RGBA, i uint8, fallback color.RGBA) color.RGBA {
	if len(palette) == 0 {
		return fallback
	}
	return palette[int(i)%len(palette)]
}
