// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package download

import (
	"fmt"

	"iconforge/internal/models"
	"iconforge/internal/slug"
)

// Files builds the download list for a generated set. Names follow
// "{theme}-icon-{id}.{format}".
func Files(themePrompt string, icons []models.GeneratedIcon, format Format) []File {
	stem := slug.Generate(themePrompt)
	files := make([]File, len(icons))
	for i, icon := range icons {
		files[i] = File{
			URL:  icon.URL,
			Name: fmt.Sprintf("%s-icon-%d.%s", stem, icon.ID, format),
		}
	}
	return files
}
