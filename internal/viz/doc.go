// Package viz renders machine runs for the terminal.
//
//   - [Painter]: lipgloss coloring for trace lines, one per [Theme]
//   - [HeadPlot]: asciigraph chart of head position over a recorded run
//   - [LiveModel]: Bubble Tea stepper that animates a machine
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step (pauses)
//	R     - Reset to the input word
//	+/-   - Faster/slower ticks
//	T     - Cycle color themes
//	Q     - Quit
package viz
