// Package term implements the terminal abstraction the line editor
// consumes: raw-mode toggling, cursor motion primitives, width/height
// queries, byte reads with a bounded timeout, and bracketed-paste
// enable/disable. Unlike a full-frame canvas renderer that only enters
// raw mode and leaves screen control to a frame buffer, this version adds
// the incremental cursor-motion primitives an inline line editor needs
// instead.
package term

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// Terminal is the concrete, ioctl-backed implementation of the editor's
// terminal interface.
type Terminal struct {
	in       *os.File
	out      *os.File
	fd       int
	original unix.Termios
	rawSet   bool

	reader *bufio.Reader
	writer *bufio.Writer

	eof bool
}

// New wraps the given input/output files. In practice both are os.Stdin
// and os.Stdout, kept separate to make tests possible with pipes.
func New(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("term: reading termios: %w", err)
	}
	return &Terminal{
		in:       in,
		out:      out,
		fd:       fd,
		original: *termios,
		reader:   bufio.NewReaderSize(in, 4096),
		writer:   bufio.NewWriterSize(out, 4096),
	}, nil
}

// SetRawMode enters or restores raw mode. Restoring is idempotent.
func (t *Terminal) SetRawMode(on bool) error {
	if !on {
		if !t.rawSet {
			return nil
		}
		t.rawSet = false
		return unix.IoctlSetTermios(t.fd, ioctlSetTermios, &t.original)
	}
	raw := t.original
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	// VMIN=0, VTIME=1 (0.1s): a read returns immediately with whatever
	// bytes are available, or blocks up to 100ms for the first byte. This
	// is what lets the decoder tell a bare Escape apart from the start of
	// an Escape-prefixed (Meta) sequence.
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("term: entering raw mode: %w", err)
	}
	t.rawSet = true
	return nil
}

// Width returns the terminal's column count, falling back to
// golang.org/x/term when the ioctl fails (e.g. output redirected).
func (t *Terminal) Width() int {
	w, _ := t.size()
	return w
}

// Height returns the terminal's row count, with the same fallback as Width.
func (t *Terminal) Height() int {
	_, h := t.size()
	return h
}

func (t *Terminal) size() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 && ws.Row > 0 {
		return int(ws.Col), int(ws.Row)
	}
	if w, h, err := xterm.GetSize(int(t.out.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// ReadByte blocks until a byte is available or the input stream ends.
func (t *Terminal) ReadByte() (byte, bool) {
	b, err := t.reader.ReadByte()
	if err != nil {
		t.eof = true
		return 0, false
	}
	return b, true
}

// ReadByteTimeout attempts one raw-mode read (bounded by the VTIME=1
// termios setting) and reports whether a byte arrived in time. It relies
// on raw mode already being active; outside raw mode it behaves like
// ReadByte with no real bound.
//
// Once any byte is already buffered this returns it immediately.
// Otherwise it issues exactly one read syscall against the underlying
// file descriptor rather than going through t.reader: bufio.Reader.fill
// retries a zero-byte, no-error read -- exactly what VMIN=0 VTIME=1
// produces on timeout -- up to 100 times before giving up, which would
// turn one 100ms timeout into as long as 10s.
func (t *Terminal) ReadByteTimeout(_ time.Duration) (byte, bool) {
	if t.reader.Buffered() > 0 {
		return t.ReadByte()
	}
	var buf [1]byte
	n, err := t.in.Read(buf[:])
	if err != nil {
		t.eof = true
		return 0, false
	}
	if n == 0 {
		return 0, false
	}
	return buf[0], true
}

// EOF reports whether the input stream has ended.
func (t *Terminal) EOF() bool { return t.eof }

// Write buffers bytes for the next Flush.
func (t *Terminal) Write(p []byte) { t.writer.Write(p) }

// WriteString buffers a string for the next Flush.
func (t *Terminal) WriteString(s string) { t.writer.WriteString(s) }

// Flush pushes all buffered output to the terminal in one write.
func (t *Terminal) Flush() error { return t.writer.Flush() }

// ClearLine clears the current line from the terminal's home column.
func (t *Terminal) ClearLine() { t.WriteString("\r\033[2K") }

// MoveUp moves the cursor up n rows. n == 0 is a no-op.
func (t *Terminal) MoveUp(n int) {
	if n > 0 {
		fmt.Fprintf(t.writer, "\033[%dA", n)
	}
}

// MoveDown moves the cursor down n rows.
func (t *Terminal) MoveDown(n int) {
	if n > 0 {
		fmt.Fprintf(t.writer, "\033[%dB", n)
	}
}

// MoveCol moves the cursor to absolute column c, counted from 0 (sent as
// the 1-based CSI column c+1).
func (t *Terminal) MoveCol(c int) {
	fmt.Fprintf(t.writer, "\033[%dG", c+1)
}

// MoveLeft moves the cursor left n columns.
func (t *Terminal) MoveLeft(n int) {
	if n > 0 {
		fmt.Fprintf(t.writer, "\033[%dD", n)
	}
}

// EnableBracketedPaste asks the terminal to frame pastes with
// ESC[200~ ... ESC[201~.
func (t *Terminal) EnableBracketedPaste() { t.WriteString("\033[?2004h") }

// DisableBracketedPaste turns bracketed-paste framing back off.
func (t *Terminal) DisableBracketedPaste() { t.WriteString("\033[?2004l") }

// HasColor reports whether the output is a color-capable terminal, per
// the TERM environment variable, without pulling in a full terminfo
// dependency.
func (t *Terminal) HasColor() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
