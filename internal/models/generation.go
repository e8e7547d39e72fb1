// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Generation is a persisted record of one icon set request. Records are
// written after a successful POST /api/generate when history is enabled.
type Generation struct {
	ID          uuid.UUID       `json:"id"`
	Prompt      string          `json:"prompt"`
	Style       string          `json:"style"`
	Provider    string          `json:"provider"`
	BrandColors []string        `json:"brandColors"`
	Icons       []GeneratedIcon `json:"icons"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Subjects returns the per-icon prompts in icon order.
func (g *Generation) Subjects() []string {
	out := make([]string, len(g.Icons))
	for i, icon := range g.Icons {
		out[i] = icon.Prompt
	}
	return out
}

// HasColors reports whether the set was generated with brand colours.
func (g *Generation) HasColors() bool {
	return len(g.BrandColors) > 0
}
