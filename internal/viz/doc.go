// Package viz renders simulation worlds in the terminal.
//
// The package draws robot skeletons and collision shapes as wireframes on
// a Braille pixel canvas, and wraps the whole thing in an interactive
// Bubble Tea view:
//
//   - [Canvas]: Braille-based pixel canvas
//   - [Camera]: 3D to 2D projection with rotation and zoom
//   - [Viewer]: simenv.WorldViewer that accumulates a wireframe per frame
//   - [Live]: interactive stepping view with DOF traces
//
// # Key Bindings
//
//	Space - Pause/Resume stepping
//	S / R - Save / restore a world checkpoint
//	Tab   - Cycle the traced robot
//	< >   - Cycle the traced DOF
//	x/y/z - Rotate the camera (shift reverses)
//	+ -   - Zoom
package viz
