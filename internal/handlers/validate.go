// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"iconforge/internal/color"
	"iconforge/internal/style"
)

const (
	msgPromptRequired  = "Prompt is required and must be a non-empty string"
	msgInvalidStyle    = "Invalid preset style"
	msgBrandColors     = "Brand colors must be an array of hex color codes"
	msgSubjectRequired = "Subject is required"
	msgColorRequired   = "Color is required"
	msgInvalidIndex    = "Index must be a non-negative integer"
	msgInvalidJSON     = "Request body must be valid JSON"
)

// generateRequest is the body of POST /api/generate.
type generateRequest struct {
	Prompt      string   `json:"prompt"`
	PresetStyle string   `json:"presetStyle"`
	BrandColors []string `json:"brandColors"`
}

// regenerateRequest is the body of POST /api/regenerate.
type regenerateRequest struct {
	Subject     string `json:"subject"`
	PresetStyle string `json:"presetStyle"`
	Color       string `json:"color"`
	Index       *int   `json:"index"`
}

// typeMessages maps a JSON field to the validation message reported when
// the client sends the wrong JSON type for it.
var typeMessages = map[string]string{
	"prompt":      msgPromptRequired,
	"presetStyle": msgInvalidStyle,
	"brandColors": msgBrandColors,
	"subject":     msgSubjectRequired,
	"color":       msgColorRequired,
	"index":       msgInvalidIndex,
}

// decodeJSON reads the request body into dst. Type mismatches on known
// fields become that field's validation message; an oversized body keeps
// its *http.MaxBytesError so it is reported as 413.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if i := strings.IndexByte(field, '.'); i != -1 {
			field = field[:i]
		}
		if msg, ok := typeMessages[field]; ok {
			return styleAware(msg)
		}
	}
	return badRequest(msgInvalidJSON)
}

// styleAware attaches the list of valid style ids to style errors.
func styleAware(msg string) *StatusError {
	if msg == msgInvalidStyle {
		return invalidStyle()
	}
	return badRequest(msg)
}

func invalidStyle() *StatusError {
	return &StatusError{
		Status:  http.StatusBadRequest,
		Message: msgInvalidStyle,
		Fields:  map[string]any{"validStyles": style.IDs()},
	}
}

// validateGenerate checks a generate request in the order clients expect
// errors: prompt, style, then colours.
func validateGenerate(req *generateRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return badRequest(msgPromptRequired)
	}
	if _, ok := style.Lookup(req.PresetStyle); !ok {
		return invalidStyle()
	}
	for _, c := range req.BrandColors {
		if !color.IsHex(c) {
			return badRequest(fmt.Sprintf("Invalid hex color: %s", c))
		}
	}
	return nil
}

// validateRegenerate checks a regenerate request and returns the 0-based
// index to use.
func validateRegenerate(req *regenerateRequest) (int, error) {
	if req.Subject == "" {
		return 0, badRequest(msgSubjectRequired)
	}
	if _, ok := style.Lookup(req.PresetStyle); !ok {
		return 0, invalidStyle()
	}
	if req.Color == "" {
		return 0, badRequest(msgColorRequired)
	}
	if !color.IsHex(req.Color) {
		return 0, badRequest(fmt.Sprintf("Invalid hex color: %s", req.Color))
	}

	index := 0
	if req.Index != nil {
		index = *req.Index
	}
	if index < 0 {
		return 0, badRequest(msgInvalidIndex)
	}
	return index, nil
}
