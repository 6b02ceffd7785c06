// Package viz renders flights in the terminal.
//
//   - [Canvas]: Braille sub-pixel surface with a world [Viewport]
//   - [Model]: the interactive flight deck (bubbletea)
//   - [Render3D]: wireframe projection for the attitude panel
//   - [RenderChannel], [RenderOverlay]: asciigraph channel plots
//
// The flight deck draws a plan view of the flown trail over the
// reference path, a 3D attitude wireframe, motor load bars and an
// altitude strip chart. Keyboard input maps one key to one bench
// operation; the view never mutates simulation state outside of that.
package viz
