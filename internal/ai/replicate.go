// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Terminal Replicate prediction states; "starting" and "processing" keep polling.
const (
	predictionSucceeded = "succeeded"
	predictionFailed    = "failed"
	predictionCanceled  = "canceled"
)

// replicateProvider implements ImageProvider using the Replicate
// predictions API (POST /v1/models/{owner}/{name}/predictions). The request
// asks the server to hold the connection until the prediction finishes
// (Prefer: wait); if it is still running afterwards the prediction is
// polled until it reaches a terminal state.
type replicateProvider struct {
	config       ProviderConfig
	client       *http.Client
	pollInterval time.Duration
}

// newReplicate creates a new Replicate provider.
func newReplicate(cfg ProviderConfig) *replicateProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.replicate.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "black-forest-labs/flux-schnell"
	}
	return &replicateProvider{
		config:       cfg,
		client:       &http.Client{Timeout: 120 * time.Second},
		pollInterval: time.Second,
	}
}

func (p *replicateProvider) Name() string { return "replicate" }

// GenerateImage creates a prediction and waits for its output URLs.
func (p *replicateProvider) GenerateImage(ctx context.Context, req ImageRequest) ([]Image, error) {
	body := replicateRequest{
		Input: replicateInput{
			Prompt:            req.Prompt,
			NumOutputs:        req.NumOutputs,
			AspectRatio:       req.AspectRatio,
			OutputFormat:      req.OutputFormat,
			OutputQuality:     req.OutputQuality,
			NumInferenceSteps: req.NumInferenceSteps,
			GoFast:            req.GoFast,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("replicate marshal: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s/predictions", p.config.BaseURL, p.config.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("replicate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Prefer", "wait")

	pred, err := p.do(httpReq)
	if err != nil {
		return nil, err
	}

	for !pred.terminal() {
		if pred.URLs.Get == "" {
			return nil, fmt.Errorf("replicate: prediction %s is %s and has no poll URL", pred.ID, pred.Status)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("replicate poll: %w", ctx.Err())
		case <-time.After(p.pollInterval):
		}

		pollReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pred.URLs.Get, nil)
		if err != nil {
			return nil, fmt.Errorf("replicate poll request: %w", err)
		}
		if pred, err = p.do(pollReq); err != nil {
			return nil, err
		}
	}

	switch pred.Status {
	case predictionFailed, predictionCanceled:
		msg := pred.Error
		if msg == "" {
			msg = "no error detail"
		}
		return nil, fmt.Errorf("replicate: prediction %s %s: %s", pred.ID, pred.Status, msg)
	}

	urls, err := pred.outputURLs()
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("replicate: %w", ErrNoOutput)
	}

	images := make([]Image, len(urls))
	for i, u := range urls {
		images[i] = Image{URL: u, ContentType: "image/" + req.OutputFormat}
	}
	return images, nil
}

// do sends an authenticated request and decodes the prediction.
func (p *replicateProvider) do(req *http.Request) (*replicatePrediction, error) {
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replicate http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("replicate read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("replicate API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var pred replicatePrediction
	if err := json.Unmarshal(respBody, &pred); err != nil {
		return nil, fmt.Errorf("replicate unmarshal: %w", err)
	}
	return &pred, nil
}

// --- Replicate API types ---

type replicateInput struct {
	Prompt            string `json:"prompt"`
	NumOutputs        int    `json:"num_outputs"`
	AspectRatio       string `json:"aspect_ratio"`
	OutputFormat      string `json:"output_format"`
	OutputQuality     int    `json:"output_quality"`
	NumInferenceSteps int    `json:"num_inference_steps"`
	GoFast            bool   `json:"go_fast"`
}

type replicateRequest struct {
	Input replicateInput `json:"input"`
}

type replicateURLs struct {
	Get    string `json:"get"`
	Cancel string `json:"cancel"`
}

type replicatePrediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
	URLs   replicateURLs   `json:"urls"`
}

func (p *replicatePrediction) terminal() bool {
	switch p.Status {
	case predictionSucceeded, predictionFailed, predictionCanceled:
		return true
	}
	return false
}

// outputURLs decodes the output, which is a list of URLs for multi-output
// models and a bare string for single-output ones.
func (p *replicatePrediction) outputURLs() ([]string, error) {
	if len(p.Output) == 0 || string(p.Output) == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(p.Output, &list); err == nil {
		return compact(list), nil
	}

	var single string
	if err := json.Unmarshal(p.Output, &single); err != nil {
		return nil, fmt.Errorf("replicate: unexpected output %s", string(p.Output))
	}
	return compact([]string{single}), nil
}

// compact drops empty strings.
func compact(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
