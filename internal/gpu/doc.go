// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu manages GPU rendering contexts for native windows.
//
// A Display is probed once per process (see Probe). The resulting Shared
// state is then used for every window: each window gets its own Context and
// Surface, owned by a ContextResource.
//
// The package is binding-agnostic. The EGL binding in internal/egl provides
// the Opener used in production; tests use the fakes in gputest.
package gpu
