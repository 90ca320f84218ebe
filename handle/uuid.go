// SPDX-License-Identifier: MIT
package handle

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// FromUUID folds a caller's uuid.UUID down into a 64-bit handle.ID by
// XOR-combining its two halves. This is a convenience for callers that
// mint vertex/edge/face identities from uuid.New() rather
// than from pointer addresses or a monotonic counter — any of those are
// equally valid sources of a handle.ID, since the handle map treats IDs as
// opaque bit patterns.
// Complexity: O(1) time, O(1) space.
func FromUUID(u uuid.UUID) ID {
	hi := binary.BigEndian.Uint64(u[:8])
	lo := binary.BigEndian.Uint64(u[8:])
	return ID(hi ^ lo)
}
