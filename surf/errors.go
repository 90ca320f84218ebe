// SPDX-License-Identifier: MIT
package surf

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is the coarse result code for structural errors: a
// non-existent handle referenced by a sync call, an attempt to delete an
// incident entity, an out-of-range subdivision level, and similar.
var ErrInvalidValue = errors.New("surf: invalid value")

// ErrInvalidSyncState is the coarse result code for protocol errors: a sync
// call issued out of order, or against the wrong protocol (full vs
// partial). None of these mutate the instance.
var ErrInvalidSyncState = errors.New("surf: invalid sync state")

// Structural errors, all wrapping ErrInvalidValue via %w so callers can
// branch coarsely with errors.Is(err, ErrInvalidValue) or precisely with
// errors.Is(err, ErrVertexNotFound).
var (
	ErrVertexNotFound  = fmt.Errorf("surf: vertex not found: %w", ErrInvalidValue)
	ErrEdgeNotFound    = fmt.Errorf("surf: edge not found: %w", ErrInvalidValue)
	ErrFaceNotFound    = fmt.Errorf("surf: face not found: %w", ErrInvalidValue)
	ErrIncidentEntity  = fmt.Errorf("surf: entity still has incident references: %w", ErrInvalidValue)
	ErrBadLevel        = fmt.Errorf("surf: subdivLevels out of [1,11]: %w", ErrInvalidValue)
	ErrNoEdgeForFace   = fmt.Errorf("surf: no edge connects consecutive face vertices and edge creation is disallowed: %w", ErrInvalidValue)
	ErrDuplicateVert   = fmt.Errorf("surf: vertex already present in this sync: %w", ErrInvalidValue)
	ErrSelfLoopEdge    = fmt.Errorf("surf: edge endpoints must differ: %w", ErrInvalidValue)
)

// Protocol errors, wrapping ErrInvalidSyncState.
var (
	ErrSyncStateRegressed = fmt.Errorf("surf: sync state may not regress (Vert -> Edge -> Face): %w", ErrInvalidSyncState)
	ErrNoSyncInProgress   = fmt.Errorf("surf: no full or partial sync in progress: %w", ErrInvalidSyncState)
	ErrSyncAlreadyOpen    = fmt.Errorf("surf: a sync is already in progress: %w", ErrInvalidSyncState)
	ErrWrongSyncProtocol  = fmt.Errorf("surf: call does not belong to the active sync protocol: %w", ErrInvalidSyncState)
)
