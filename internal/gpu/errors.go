// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import "errors"

var (
	// ErrProbeFailed is returned when no GPU context can be obtained. It is
	// recovered once, at backend commitment, by falling back to software.
	ErrProbeFailed = errors.New("gpu: probe failed")

	// ErrNoConfig is returned when the display offers no usable configuration.
	ErrNoConfig = errors.New("gpu: no matching config")

	// ErrContextCreation is returned when every context tier fails.
	ErrContextCreation = errors.New("gpu: context creation failed")

	// ErrSurfaceCreation is returned when a present-surface cannot be
	// created or bound for a window.
	ErrSurfaceCreation = errors.New("gpu: surface creation failed")

	// ErrPresentFailed is returned when a buffer swap fails.
	ErrPresentFailed = errors.New("gpu: present failed")

	// ErrReleased is returned by operations on a released ContextResource.
	ErrReleased = errors.New("gpu: context resource released")
)
