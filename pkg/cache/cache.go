// Package cache stores rendered documents and rasterized artifacts.
//
// # Overview
//
// Rendering is deterministic: the same input record and options always
// produce the same SVG document, and the same document always rasterizes to
// the same PNG or PDF. The render pipeline keys its results accordingly:
//
//  1. [Keyer.DocumentKey] hashes the canonical input together with the chart
//     options and addresses the SVG document.
//  2. [Keyer.ArtifactKey] hashes the SVG document together with the raster
//     options and addresses a PNG or PDF.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Every backend treats expired or corrupt entries as misses.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	DocumentTTL = 7 * 24 * time.Hour
	ArtifactTTL = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// DocumentKeyOpts are the chart options that change the SVG document.
type DocumentKeyOpts struct {
	Kind       string `json:"kind"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	XLimits    string `json:"xlim,omitempty"`
	YLimits    string `json:"ylim,omitempty"`
	ZoomY      bool   `json:"zoom_y,omitempty"`
	Title      string `json:"title,omitempty"`
	Color      string `json:"color,omitempty"`
	ConfigHash string `json:"config,omitempty"`
}

// ArtifactKeyOpts are the options that change a rasterized artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	DPI    int     `json:"dpi,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	DocumentKey(inputHash string, opts DocumentKeyOpts) string
	ArtifactKey(documentHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "document:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey implements [Keyer].
func (DefaultKeyer) DocumentKey(inputHash string, opts DocumentKeyOpts) string {
	return hashKey("document", inputHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", documentHash, opts)
}
