package inventory

import (
	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/storage"
)

// Placement assigns part of an inbound quantity to one block
type Placement struct {
	BlockID  uuid.UUID
	Quantity int64
}

// PlanAllocation distributes a required quantity over blocks using
// first fit: each block in the given order is filled up to its
// remaining capacity before the next one is considered. Blocks with
// no free capacity are skipped.
//
// The function is a pure computation. It never mutates the blocks;
// callers apply the returned placements under their own locks. When
// the combined free capacity is less than required it returns
// shared.ErrInsufficientSpace and no placements.
func PlanAllocation(blocks []storage.Block, required int64) ([]Placement, error) {
	if required <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Required quantity must be positive")
	}

	var free int64
	for _, b := range blocks {
		free += b.Available
	}
	if free < required {
		return nil, shared.ErrInsufficientSpace
	}

	placements := make([]Placement, 0, len(blocks))
	remaining := required
	for _, b := range blocks {
		if remaining == 0 {
			break
		}
		if b.Available <= 0 {
			continue
		}

		take := b.Available
		if take > remaining {
			take = remaining
		}
		placements = append(placements, Placement{BlockID: b.ID, Quantity: take})
		remaining -= take
	}

	return placements, nil
}
