// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface over hosted text-to-image models
// (Replicate, OpenAI Images, Google Gemini/Imagen). Each provider implements
// ImageProvider, and the Registry selects the active one by name.
package ai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrMissingCredentials is returned when the active provider has no
	// API key configured.
	ErrMissingCredentials = errors.New("ai: image provider credentials are not configured")

	// ErrNoOutput is returned when the service answers successfully but
	// produces no image.
	ErrNoOutput = errors.New("ai: no image generated")
)

// ImageProvider defines the interface that all image providers implement.
// Each provider handles its own HTTP communication and response parsing.
type ImageProvider interface {
	// GenerateImage runs one text-to-image request and returns the produced
	// images. Providers return ErrNoOutput (possibly wrapped) for an empty
	// result.
	GenerateImage(ctx context.Context, req ImageRequest) ([]Image, error)

	// Name returns the provider identifier (e.g., "replicate", "openai").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Registry manages available image providers and selects the active one.
// Providers are built once at startup and reused for every request; they
// hold only static credentials. All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ImageProvider
	active    string
	moderator Moderator // nil when moderation is disabled
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are silently skipped,
// so selecting one later fails with ErrMissingCredentials.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]ImageProvider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "replicate":
			r.providers[name] = newReplicate(cfg)
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		case "gemini":
			r.providers[name] = newGemini(cfg)
		}
	}

	return r
}

// EnableModeration configures prompt moderation through OpenAI's free
// moderation endpoint. A blank key leaves moderation disabled.
func (r *Registry) EnableModeration(apiKey, baseURL string) {
	if apiKey == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moderator = newOpenAIModerator(apiKey, baseURL)
}

// GenerateImage calls the active provider.
func (r *Registry) GenerateImage(ctx context.Context, req ImageRequest) ([]Image, error) {
	p, err := r.Active()
	if err != nil {
		return nil, err
	}
	return p.GenerateImage(ctx, req)
}

// Active returns the currently active provider.
func (r *Registry) Active() (ImageProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("%w (provider %q)", ErrMissingCredentials, r.active)
	}
	return p, nil
}

// SetActive switches the active provider at runtime. Returns an error if
// the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the names of all providers that have API keys, sorted.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a provider in the registry. Used to inject
// fakes in tests.
func (r *Registry) Register(name string, p ImageProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured and available.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}

// CheckPrompt runs the user prompt through the moderation API before
// generation. Returns a safe result when no moderator is configured.
func (r *Registry) CheckPrompt(ctx context.Context, prompt string) (*ModerationResult, error) {
	r.mu.RLock()
	m := r.moderator
	r.mu.RUnlock()

	if m == nil {
		return &ModerationResult{Safe: true}, nil
	}
	return m.CheckSafety(ctx, prompt)
}
