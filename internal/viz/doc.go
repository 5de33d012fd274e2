// Package viz provides an alternative full-screen view built on Bubble Tea.
//
// The view draws the same scene as the raw ANSI renderer and adds a
// legend panel listing every body with its current angle.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Double/halve speed
//	R     - Reset bodies to their phase
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
