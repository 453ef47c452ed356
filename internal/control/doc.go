// Package control provides feedback controllers for articulated robots.
//
// Controllers produce a [simenv.ControlFunc] that the world invokes each
// physics step with the robot's DOF state:
//
//   - [PID]: scalar Proportional-Integral-Derivative loop
//   - [MDPID]: one PID loop per degree of freedom
//   - [Position]: drives DOF positions to a target configuration
//   - [Velocity]: tracks a target DOF velocity profile
//   - [Hold]: zero acceleration on every DOF
//
// # Usage
//
//	pc := control.NewPosition(robot.NumDOFs(), 10, 0.1, 2) // Kp, Ki, Kd
//	pc.SetTarget(goal)
//	robot.SetController(pc.Func())
//
// Targets may be swapped between steps for live retargeting.
package control
