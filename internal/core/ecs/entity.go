package ecs

import "fmt"

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit
// generation in the upper bits. The generation increments when the slot's
// entity is destroyed, so a handle held across a destroy stops matching and
// can never alias a recycled slot. Index 0 is reserved; the zero EntityID is
// never a live handle.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

func (id EntityID) String() string {
	return fmt.Sprintf("entity(%d:%d)", id.Index(), id.Generation())
}

// Cause is a diagnostic tag recorded with create/destroy/start traces so a
// log line shows which subsystem originated a mutation. Never load-bearing.
type Cause string

const (
	CauseDirect  Cause = "direct"
	CauseBuilder Cause = "builder"
	CauseUnknown Cause = "unspecified"
)
