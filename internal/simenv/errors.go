package simenv

import "errors"

// Domain errors shared by backends. Lookup misses are reported as nil
// results, not errors; these cover operations that can genuinely fail.
var (
	// ErrDimensionMismatch indicates a value vector whose length does not
	// match the requested DOF index set.
	ErrDimensionMismatch = errors.New("simenv: dimension mismatch between values and DOF indices")

	// ErrInvalidDOFIndex indicates a DOF index outside [0, NumDOFs).
	ErrInvalidDOFIndex = errors.New("simenv: DOF index out of range")

	// ErrUnknownObject indicates a world-state entry naming an object the
	// world does not contain.
	ErrUnknownObject = errors.New("simenv: unknown object")

	// ErrCrossBackend indicates a query mixing entities from different
	// backend implementations or different worlds.
	ErrCrossBackend = errors.New("simenv: entities belong to different backends")
)
