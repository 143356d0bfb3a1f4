// Package viz draws a running world in the terminal.
//
// The live view is a Bubble Tea model:
//
//   - [Canvas]: braille dot matrix with per-cell color layers
//   - [Viewport]: world to dot mapping, zoomed and centered on the observer
//   - [Model]: the live view itself, with a telemetry side panel
//   - [NewMenu]: scene picker in front of the live view
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	Up/K  - Select previous entity
//	Down/J- Select next entity
//	O     - Use the selection as observer
//	+/-   - Zoom
//	R     - Toggle rays
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// G starts a recording and G again writes it to [GIFPath] in the current
// directory.
package viz
