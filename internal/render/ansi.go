package render

import (
	"bufio"

	"github.com/san-kum/orrery/internal/orrery"
)

// Pre-allocated ANSI sequences
var (
	csiCursorPos  = []byte("\x1b[") // followed by row;colH
	csiClear      = []byte("\x1b[2J\x1b[H")
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")
	csiReset      = []byte("\x1b[0m")
)

// colorSeq is indexed by orrery.Color.
var colorSeq = [...][]byte{
	orrery.Reset:  csiReset,
	orrery.Yellow: []byte("\x1b[33m"),
	orrery.Blue:   []byte("\x1b[34m"),
	orrery.Red:    []byte("\x1b[31m"),
	orrery.Gray:   []byte("\x1b[90m"),
	orrery.Orange: []byte("\x1b[38;5;208m"),
	orrery.Cyan:   []byte("\x1b[36m"),
}

// ColorSequence returns the SGR sequence selecting c; unknown tags reset.
func ColorSequence(c orrery.Color) []byte {
	if int(c) < len(colorSeq) {
		return colorSeq[c]
	}
	return csiReset
}

// writeInt writes a non-negative integer without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorPos moves to a 0-indexed (col, row)
func writeCursorPos(w *bufio.Writer, col, row int) {
	w.Write(csiCursorPos)
	writeInt(w, row+1)
	w.WriteByte(';')
	writeInt(w, col+1)
	w.WriteByte('H')
}
