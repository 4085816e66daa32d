// Package model defines the provider-agnostic abstractions for interacting
// with generation backends inside Colony.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Treat payloads as opaque text (no model-specific prompt formats)
//   - Facilitate lightweight mocking for tests (MockGenerator)
//
// Providers (OpenAI-compatible, Anthropic) implement the Generator interface
// from this package so the router remains decoupled from vendor SDKs.
package model
