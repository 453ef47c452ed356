// Package simenv defines the backend-agnostic contract for articulated-robot
// physics worlds.
//
// The package contains no simulation code itself. It specifies the entity
// model and the operations a backend must provide so that planning and
// control algorithms can be written once and run against interchangeable
// implementations:
//
//   - [Entity], [Link], [Joint], [Object], [Robot]: the entity graph
//   - [World]: registry, collision dispatch, stepping, state checkpointing
//   - [DOFLayout]: degree-of-freedom addressing (base-pose vs. joint DOFs)
//   - [Contact], [ObjectState], [WorldState]: value results and snapshots
//   - [Logger], [WorldViewer]: the two external collaborators
//
// # DOF addressing
//
// An object with k base DOFs and m joints has N = k + m DOFs. Indices
// [0,k) address the free pose parameters (x, y, z, rx, ry, rz for a free
// body; k = 0 for a static object), indices [k,N) address joints, so
// jointIndex = dofIndex - k always holds.
//
// # Lifetimes
//
// Handles returned by a World are valid only as long as the World that
// owns them. [Contact] values carry names, never references, and cannot
// extend an entity's lifetime. Do not retain entity handles across
// LoadWorld or world teardown; this precondition is not checked at
// runtime.
package simenv
