// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package credentials stores image provider API keys in the OS keyring so
// the CLI works without exporting tokens in the shell.
package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "iconforge"

// ErrNotFound is returned when no key is stored for a provider.
var ErrNotFound = errors.New("credentials: no key stored")

// Store sets the API key for provider.
func Store(provider, apiKey string) error {
	if provider == "" {
		return errors.New("credentials: provider is required")
	}
	if apiKey == "" {
		return errors.New("credentials: API key is empty")
	}
	if err := keyring.Set(serviceName, provider, apiKey); err != nil {
		return fmt.Errorf("credentials: store %s: %w", provider, err)
	}
	return nil
}

// Get returns the stored API key for provider.
func Get(provider string) (string, error) {
	if provider == "" {
		return "", errors.New("credentials: provider is required")
	}
	key, err := keyring.Get(serviceName, provider)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w for %s", ErrNotFound, provider)
	}
	if err != nil {
		return "", fmt.Errorf("credentials: get %s: %w", provider, err)
	}
	return key, nil
}

// Delete removes the stored key for provider. Deleting a missing key
// returns ErrNotFound.
func Delete(provider string) error {
	if provider == "" {
		return errors.New("credentials: provider is required")
	}
	err := keyring.Delete(serviceName, provider)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w for %s", ErrNotFound, provider)
	}
	if err != nil {
		return fmt.Errorf("credentials: delete %s: %w", provider, err)
	}
	return nil
}

// Resolve returns value when it is set, otherwise the key stored for
// provider. A missing or unreadable keyring entry yields "".
func Resolve(provider, value string) string {
	if value != "" {
		return value
	}
	key, err := Get(provider)
	if err != nil {
		return ""
	}
	return key
}
