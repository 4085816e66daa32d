package router

import "errors"

// ErrPlaceholderCredential marks a tier whose credential still carries the
// reserved placeholder value. The startup probe short-circuits on it: the
// tier is recorded as unreachable without any network call being made.
var ErrPlaceholderCredential = errors.New("placeholder credential, tier not configured")
