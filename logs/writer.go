package logs

import (
	"io"
	"os"
)

// Writer receives the text log output. stdout carries the bar protocol, so
// logs go to stderr.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
