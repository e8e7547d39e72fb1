// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"iconforge/internal/models"
)

func sampleGeneration(prompt string) *models.Generation {
	return &models.Generation{
		Prompt:      prompt,
		Style:       "flat",
		Provider:    "replicate",
		BrandColors: []string{"#FF0000", "#00F"},
		Icons: []models.GeneratedIcon{
			{ID: 1, URL: "https://replicate.delivery/1.png", Prompt: "ball"},
			{ID: 2, URL: "https://replicate.delivery/2.png", Prompt: "kite"},
			{ID: 3, URL: "https://replicate.delivery/3.png", Prompt: "yo-yo"},
			{ID: 4, URL: "https://replicate.delivery/4.png", Prompt: "robot"},
		},
	}
}

func TestGenerationStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewGenerationStore(db)

	created, err := s.Create(sampleGeneration("toys"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { cleanGenerations(t, db, created.ID) })

	if created.ID == uuid.Nil {
		t.Error("expected generated ID")
	}
	if created.CreatedAt.IsZero() || time.Since(created.CreatedAt) > time.Minute {
		t.Errorf("unexpected CreatedAt %v", created.CreatedAt)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("FindByID returned nil for existing record")
	}
	if found.Prompt != "toys" || found.Style != "flat" || found.Provider != "replicate" {
		t.Errorf("found = %+v", found)
	}
	if len(found.BrandColors) != 2 || found.BrandColors[1] != "#00F" {
		t.Errorf("BrandColors = %v", found.BrandColors)
	}
	if len(found.Icons) != 4 || found.Icons[3].Prompt != "robot" || found.Icons[3].ID != 4 {
		t.Errorf("Icons = %+v", found.Icons)
	}
}

func TestGenerationStoreCreateWithoutColors(t *testing.T) {
	db := testDB(t)
	s := NewGenerationStore(db)

	g := sampleGeneration("food")
	g.BrandColors = nil

	created, err := s.Create(g)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { cleanGenerations(t, db, created.ID) })

	if created.BrandColors == nil || len(created.BrandColors) != 0 {
		t.Errorf("BrandColors = %#v, want empty slice", created.BrandColors)
	}
}

func TestGenerationStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewGenerationStore(db)

	g, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if g != nil {
		t.Errorf("expected nil for missing record, got %+v", g)
	}
}

func TestGenerationStoreListNewestFirst(t *testing.T) {
	db := testDB(t)
	s := NewGenerationStore(db)

	first, err := s.Create(sampleGeneration("list-first"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := s.Create(sampleGeneration("list-second"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { cleanGenerations(t, db, first.ID, second.ID) })

	items, err := s.List(2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("List returned %d items, want 2", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Errorf("List order: got %s, %s", items[0].Prompt, items[1].Prompt)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n < 2 {
		t.Errorf("Count = %d, want at least 2", n)
	}
}

func TestGenerationStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewGenerationStore(db)

	created, err := s.Create(sampleGeneration("delete-me"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := s.Delete(created.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: got (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = s.Delete(created.ID)
	if err != nil || ok {
		t.Errorf("second Delete: got (%v, %v), want (false, nil)", ok, err)
	}
}
