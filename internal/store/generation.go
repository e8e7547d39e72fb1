// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"iconforge/internal/models"
)

// GenerationStore handles generation history database operations.
type GenerationStore struct {
	db *sql.DB
}

// NewGenerationStore creates a new GenerationStore with the given database connection.
func NewGenerationStore(db *sql.DB) *GenerationStore {
	return &GenerationStore{db: db}
}

// generationColumns lists the columns selected in generation queries.
const generationColumns = `id, prompt, style, provider, brand_colors, icons, created_at`

// scanGeneration scans a generation row and decodes its JSONB columns.
func scanGeneration(scanner interface{ Scan(...any) error }) (*models.Generation, error) {
	var g models.Generation
	var colors, icons []byte
	err := scanner.Scan(&g.ID, &g.Prompt, &g.Style, &g.Provider, &colors, &icons, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(colors, &g.BrandColors); err != nil {
		return nil, fmt.Errorf("decode brand colors: %w", err)
	}
	if err := json.Unmarshal(icons, &g.Icons); err != nil {
		return nil, fmt.Errorf("decode icons: %w", err)
	}
	return &g, nil
}

// Create inserts a generation record and returns it with the generated
// ID and timestamp.
func (s *GenerationStore) Create(g *models.Generation) (*models.Generation, error) {
	colors := g.BrandColors
	if colors == nil {
		colors = []string{}
	}
	colorsJSON, err := json.Marshal(colors)
	if err != nil {
		return nil, fmt.Errorf("encode brand colors: %w", err)
	}
	iconsJSON, err := json.Marshal(g.Icons)
	if err != nil {
		return nil, fmt.Errorf("encode icons: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO generations (prompt, style, provider, brand_colors, icons)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+generationColumns,
		g.Prompt, g.Style, g.Provider, string(colorsJSON), string(iconsJSON),
	)
	created, err := scanGeneration(row)
	if err != nil {
		return nil, fmt.Errorf("create generation: %w", err)
	}
	return created, nil
}

// FindByID retrieves a single generation by its UUID. Returns (nil, nil)
// when no record exists.
func (s *GenerationStore) FindByID(id uuid.UUID) (*models.Generation, error) {
	row := s.db.QueryRow(`SELECT `+generationColumns+` FROM generations WHERE id = $1`, id)
	g, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find generation by id: %w", err)
	}
	return g, nil
}

// List returns the most recent generations, newest first.
func (s *GenerationStore) List(limit, offset int) ([]models.Generation, error) {
	rows, err := s.db.Query(`
		SELECT `+generationColumns+`
		FROM generations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	items := []models.Generation{}
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		items = append(items, *g)
	}
	return items, rows.Err()
}

// Count returns the total number of stored generations.
func (s *GenerationStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM generations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count generations: %w", err)
	}
	return n, nil
}

// Delete removes a generation record. Returns false when nothing matched.
func (s *GenerationStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM generations WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete generation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete generation: %w", err)
	}
	return n > 0, nil
}
