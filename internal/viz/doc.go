// Package viz provides the terminal view of a running cluster.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live cluster view, stepped on the UI frame clock
//   - [Canvas]: Braille pixel canvas projecting the cluster's XZ plane
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the starting cluster
//	Tab   - Select the next planet
//	S     - Promote the selected planet to sun
//	A     - Add a random planet
//	X     - Remove the selected planet
//	+/-   - Zoom (spring-eased)
//
// The view owns the tick clock: one UI frame advances the cluster by one
// tick, so a paused view is a frozen simulation.
package viz
