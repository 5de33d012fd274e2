// Package render writes canvases to an ANSI terminal.
//
// The [Renderer] keeps the last emitted frame and, on each call, writes
// only the cells whose glyph or color changed. [Terminal] owns the
// process-wide terminal state (cursor visibility, raw mode, screen
// contents) and restores it on Close.
//
// # Escape Sequences
//
//	ESC[row;colH  cursor position (1-based)
//	ESC[2J ESC[H  clear screen and home
//	ESC[?25l/h    hide/show cursor
//	ESC[…m        foreground color
package render
