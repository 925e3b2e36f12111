package blocks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/e5"
)

var (
	ErrRequestQueueClosed = errors.New("request queue closed")
	ErrEventStreamEnded   = errors.New("events stream ended")
	ErrIconNotFound       = errors.New("icon not found")
)

// BlockError attributes an error to a block instance.
type BlockError struct {
	Block string
	ID    int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("in block %s (#%d): %v", e.Block, e.ID, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// InBlock annotates err with the block kind and id. nil stays nil.
func InBlock(err error, name string, id int) error {
	if err == nil {
		return nil
	}
	return &BlockError{
		Block: name,
		ID:    id,
		Err:   err,
	}
}

// Message renders err without the stack frames attached by e5, on one line.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for trace := range stacktraces(err) {
		msg = strings.ReplaceAll(msg, trace, "")
	}
	var lines []string
	for line := range strings.Lines(msg) {
		line = strings.TrimSuffix(strings.TrimSpace(line), ":")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, ": ")
}

func stacktraces(err error) map[string]struct{} {
	ret := make(map[string]struct{})
	var walk func(error)
	walk = func(err error) {
		switch err := err.(type) {
		case nil:
		case *e5.Stacktrace:
			ret[err.Error()] = struct{}{}
		case interface{ Unwrap() []error }:
			for _, e := range err.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(err.Unwrap())
		}
	}
	walk(err)
	return ret
}
