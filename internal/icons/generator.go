// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package icons turns a theme prompt into a set of generated icons. It
// selects subjects, assembles per-icon prompts for the chosen style and
// brand colours, and fans the image calls out to the active provider.
package icons

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"iconforge/internal/ai"
	"iconforge/internal/color"
	"iconforge/internal/models"
	"iconforge/internal/prompt"
	"iconforge/internal/style"
	"iconforge/internal/theme"
)

// DefaultTimeout bounds a single image call when none is configured.
const DefaultTimeout = 90 * time.Second

var (
	// ErrUnknownStyle is returned for a style id missing from the catalog.
	ErrUnknownStyle = errors.New("icons: unknown style")

	// ErrTimeout is returned when an image call exceeds its deadline.
	ErrTimeout = errors.New("icons: image generation timed out")
)

// ImageSource produces images for a prompt. *ai.Registry satisfies it.
type ImageSource interface {
	GenerateImage(ctx context.Context, req ai.ImageRequest) ([]ai.Image, error)
}

// Publisher turns a provider image into a URL. *storage.Publisher
// satisfies it.
type Publisher interface {
	Publish(ctx context.Context, img ai.Image) (string, error)
}

// Generator runs the icon pipeline. It holds no per-request state and is
// safe for concurrent use.
type Generator struct {
	source    ImageSource
	publisher Publisher
	selector  *theme.Selector
	timeout   time.Duration
}

// New creates a Generator. A nil publisher passes provider URLs through
// unchanged; a nil selector uses a process-seeded one.
func New(source ImageSource, publisher Publisher, selector *theme.Selector, timeout time.Duration) *Generator {
	if selector == nil {
		selector = theme.New()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{
		source:    source,
		publisher: publisher,
		selector:  selector,
		timeout:   timeout,
	}
}

// GenerateIconSet generates theme.SubjectCount icons for the theme prompt.
// All calls run concurrently and the set is returned only if every call
// succeeds. The first error is returned as soon as it happens; the other
// calls finish in the background and their results are discarded.
func (g *Generator) GenerateIconSet(ctx context.Context, themePrompt, styleID string, brandColors []string) ([]models.GeneratedIcon, error) {
	def, ok := style.Lookup(styleID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleID)
	}

	colorDesc := color.Describe(brandColors)
	stylePrompt := def.PromptFor(colorDesc)
	subjects := g.selector.Subjects(themePrompt)

	slog.Info("selected subjects", "subjects", strings.Join(subjects, ", "))
	if colorDesc != "" {
		slog.Info("using colors", "colors", colorDesc)
	}

	// Calls are detached from ctx: a failed or abandoned batch leaves its
	// siblings running until their own deadline. ctx only ends the wait.
	detached := context.WithoutCancel(ctx)
	results := make(chan iconResult, len(subjects))

	var eg errgroup.Group
	for i, subject := range subjects {
		eg.Go(func() error {
			icon, err := g.generateOne(detached, subject, stylePrompt, colorDesc, i)
			results <- iconResult{index: i, icon: icon, err: err}
			return err
		})
	}
	go func() {
		if err := eg.Wait(); err != nil {
			slog.Debug("icon batch settled with error", "error", err)
		}
	}()

	icons := make([]models.GeneratedIcon, len(subjects))
	for range subjects {
		select {
		case r := <-results:
			if r.err != nil {
				return nil, r.err
			}
			icons[r.index] = r.icon
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return icons, nil
}

// iconResult carries one finished call back to GenerateIconSet.
type iconResult struct {
	index int
	icon  models.GeneratedIcon
	err   error
}

// RegenerateIconWithColor generates one icon for subject using the style's
// colour variant and the single colour's name. index is the caller's
// 0-based position; the returned icon's ID is index+1.
func (g *Generator) RegenerateIconWithColor(ctx context.Context, subject, styleID, hex string, index int) (models.GeneratedIcon, error) {
	def, ok := style.Lookup(styleID)
	if !ok {
		return models.GeneratedIcon{}, fmt.Errorf("%w: %q", ErrUnknownStyle, styleID)
	}

	colorName := color.Classify(hex)
	slog.Info("regenerating icon", "index", index+1, "color", colorName)

	return g.generateOne(ctx, subject, def.PromptWithColor, colorName, index)
}

// generateOne runs a single image call under the per-call deadline.
func (g *Generator) generateOne(ctx context.Context, subject, stylePrompt, colorDesc string, index int) (models.GeneratedIcon, error) {
	slog.Info("generating icon", "index", index+1, "subject", subject)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := ai.DefaultImageRequest(prompt.Assemble(subject, stylePrompt, colorDesc))
	images, err := g.source.GenerateImage(callCtx, req)
	if err != nil {
		return models.GeneratedIcon{}, g.wrap(ctx, callCtx, index, err)
	}
	if len(images) == 0 {
		return models.GeneratedIcon{}, fmt.Errorf("icon %d: %w", index+1, ai.ErrNoOutput)
	}

	url, err := g.publish(callCtx, images[0])
	if err != nil {
		return models.GeneratedIcon{}, g.wrap(ctx, callCtx, index, err)
	}

	return models.GeneratedIcon{
		ID:     index + 1,
		URL:    url,
		Prompt: subject,
	}, nil
}

func (g *Generator) publish(ctx context.Context, img ai.Image) (string, error) {
	if g.publisher != nil {
		return g.publisher.Publish(ctx, img)
	}
	if img.URL == "" {
		return "", ai.ErrNoOutput
	}
	return img.URL, nil
}

// wrap maps the per-call deadline onto ErrTimeout. A deadline inherited
// from the parent context is reported as the parent's error.
func (g *Generator) wrap(parent, call context.Context, index int, err error) error {
	if errors.Is(call.Err(), context.DeadlineExceeded) && parent.Err() == nil {
		return fmt.Errorf("icon %d after %s: %w", index+1, g.timeout, ErrTimeout)
	}
	return fmt.Errorf("icon %d: %w", index+1, err)
}
