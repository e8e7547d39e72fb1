// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"log/slog"

	"iconforge/internal/ai"
	"iconforge/internal/config"
	"iconforge/internal/credentials"
	"iconforge/internal/download"
	"iconforge/internal/icons"
	"iconforge/internal/storage"
)

// pipeline holds the components shared by the server and the CLI.
type pipeline struct {
	registry  *ai.Registry
	storage   *storage.Client // nil when S3 is not configured
	generator *icons.Generator
}

// newPipeline builds the provider registry, optional object storage and
// the icon generator. Provider keys missing from the environment are
// looked up in the OS keyring.
func newPipeline(cfg *config.Config) (*pipeline, error) {
	cfg.ReplicateToken = credentials.Resolve("replicate", cfg.ReplicateToken)
	cfg.OpenAIKey = credentials.Resolve("openai", cfg.OpenAIKey)
	cfg.GeminiKey = credentials.Resolve("gemini", cfg.GeminiKey)

	registry := ai.NewRegistry(cfg.ImageProvider, cfg.ProviderConfigs())
	if cfg.ModerationEnabled {
		if cfg.OpenAIKey == "" {
			slog.Warn("moderation enabled but OPENAI_API_KEY is not set, prompts are not checked")
		}
		registry.EnableModeration(cfg.OpenAIKey, cfg.OpenAIBaseURL)
	}
	if !registry.HasProvider(cfg.ImageProvider) {
		slog.Warn("active image provider has no credentials, generation will fail",
			"provider", cfg.ImageProvider)
	}
	slog.Info("image providers initialized",
		"active", registry.ActiveName(),
		"available", registry.Available(),
	)

	client, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		return nil, fmt.Errorf("initialize s3 storage: %w", err)
	}

	// Interfaces stay nil, not typed-nil, when storage is absent.
	var uploader storage.Uploader
	if client != nil {
		uploader = client
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket, "mirror", cfg.S3Mirror)
	} else {
		slog.Info("s3 storage not configured, inline images are returned as data URIs")
	}

	publisher := storage.NewPublisher(uploader, cfg.S3Mirror)
	generator := icons.New(registry, publisher, nil, cfg.GenerationTimeout)

	return &pipeline{
		registry:  registry,
		storage:   client,
		generator: generator,
	}, nil
}

// downloads returns a download client restricted to hosts, reading our
// own bucket through the storage API when it is configured.
func (p *pipeline) downloads(hosts []string) *download.Client {
	var objects download.ObjectSource
	if p.storage != nil {
		objects = p.storage
	}
	return download.NewClient(hosts, objects)
}
