// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package color maps brand hex colors to the coarse color words the image
// model understands ("blue", "lime green", ...). The classification is a
// fixed threshold ladder over RGB channels, not a perceptual color model:
// identical inputs must keep producing identical words, so the order of the
// checks below is part of the contract.
package color

import (
	"regexp"
	"strconv"
	"strings"
)

// Fallback is returned when no branch of the ladder matches, including
// for input that does not decode as hex.
const Fallback = "colorful"

// hexPattern accepts an optional leading '#' followed by exactly 6 or 3
// hex digits. The same pattern is used by the HTTP layer and the client.
var hexPattern = regexp.MustCompile(`^#?([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// IsHex reports whether s is a valid 3- or 6-digit hex color.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Classify returns the color word for a hex string.
func Classify(hex string) string {
	r, g, b, ok := decode(hex)
	if !ok {
		return Fallback
	}

	maxC := max(r, g, b)
	minC := min(r, g, b)
	l := float64(maxC+minC) / 2 / 255

	if l < 0.15 {
		return "black"
	}
	if l > 0.85 {
		return "white"
	}

	if maxC-minC < 30 {
		if l < 0.4 {
			return "dark gray"
		}
		if l > 0.6 {
			return "light gray"
		}
		return "gray"
	}

	// Red dominance is checked before green, green before blue; ties are
	// resolved by this order.
	if r >= g && r >= b {
		if r-g < 50 && g > b+30 {
			return "yellow"
		}
		if r-g < 50 && r-b < 50 {
			return "orange"
		}
		if g < 100 && b < 100 {
			return "red"
		}
		if b > g {
			return "pink"
		}
		if g > 150 {
			return "orange"
		}
		return "red"
	}

	if g >= r && g >= b {
		if g-r < 50 && b < 100 {
			return "yellow"
		}
		if b > r+30 {
			return "teal"
		}
		if r > 150 {
			return "lime green"
		}
		return "green"
	}

	if b >= r && b >= g {
		if r > g+30 {
			return "purple"
		}
		if r > 150 && g > 150 {
			return "light blue"
		}
		if g > r+30 {
			return "cyan"
		}
		return "blue"
	}

	return Fallback
}

// Describe classifies every color, drops repeated words (keeping the
// first occurrence) and joins the rest with " and ". An empty list
// yields the empty string, which callers treat as "no color".
func Describe(hexes []string) string {
	if len(hexes) == 0 {
		return ""
	}

	seen := make(map[string]bool, len(hexes))
	names := make([]string, 0, len(hexes))
	for _, h := range hexes {
		name := Classify(h)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	return strings.Join(names, " and ")
}

// decode parses "#rrggbb", "rrggbb", "#rgb" or "rgb" into channel values.
// Shorthand digits are doubled ("f0a" -> "ff00aa").
func decode(hex string) (r, g, b int, ok bool) {
	clean := strings.ToLower(strings.TrimPrefix(hex, "#"))
	if len(clean) == 3 {
		clean = string([]byte{clean[0], clean[0], clean[1], clean[1], clean[2], clean[2]})
	}
	if len(clean) != 6 {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(clean, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
