package glide

import (
	"fmt"
	"io"
	"os"
)

// logger writes prefixed lines to an output writer. Errors are always
// written; tracef lines only in debug mode.
type logger struct {
	out   io.Writer
	debug bool
}

func newLogger() *logger {
	return &logger{out: os.Stderr}
}

func (l *logger) errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, "[glide] error: "+format+"\n", args...)
}

func (l *logger) tracef(format string, args ...any) {
	if !l.debug {
		return
	}
	_, _ = fmt.Fprintf(l.out, "[glide] "+format+"\n", args...)
}
