// Package viz is the terminal front end: a Bubble Tea program that steps a
// skyrmion field on a ~33 ms tick and draws it with braille characters.
//
//   - [Model]: live view of one field, 2D arrows with the trajectory overlay
//     or a rotatable 3D quiver, plus a stats panel with asciigraph history
//   - [Canvas]: braille dot canvas
//   - a preset picker ([RunInteractive]) in front of the live view
//
// # Key Bindings
//
//	←/→   - field strength ∓/± 0.05
//	↑/↓   - pulse frequency ± 0.1
//	+/-   - pulse amplitude ± 0.1
//	d, p  - cycle direction, pulse type
//	r     - reset the pulse clock
//	Space - pause/resume
//	g     - toggle GIF recording
//	t     - cycle colour themes
//	q     - quit
package viz
