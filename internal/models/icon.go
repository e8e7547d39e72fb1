// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// GeneratedIcon is one image of a generated set. ID is the 1-based
// position within the set; URL points at the hosted image (or is a data:
// URI when no storage is configured).
type GeneratedIcon struct {
	ID     int    `json:"id"`
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}
