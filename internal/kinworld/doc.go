// Package kinworld is the reference in-memory backend for the simenv
// contract. It keeps the full entity graph, forward kinematics and a
// primitive-shape narrow phase (sphere and box) in plain Go, with no
// external collision or physics engine.
//
// Physics stepping is kinematic: a robot controller's output is treated
// as a per-DOF acceleration with unit mass, velocities integrate into
// positions with the configured timestep, and positions are clamped to
// their limits.
//
// A World owns its objects, and an object owns its links and joints in
// flat slices; links and joints refer to each other by index. Handles
// handed out by a world are valid until the next LoadWorld or teardown.
package kinworld
