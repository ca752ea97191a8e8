package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const prompt = "> "

// MaxLineLength is the longest command line, in bytes, the REPL accepts.
// Longer lines are discarded and answered with an error reply.
const MaxLineLength = 4096

type readResult struct {
	text    string
	tooLong bool
	err     error
}

// REPL reads command lines from in and writes replies to out until a quit
// command, the end of input or the cancellation of the context passed to
// Run. A REPL must not be run more than once.
type REPL struct {
	in         *bufio.Reader
	out        io.Writer
	dispatcher *Dispatcher
}

func NewREPL(in io.Reader, out io.Writer, dispatcher *Dispatcher) *REPL {
	return &REPL{in: bufio.NewReader(in), out: out, dispatcher: dispatcher}
}

// Run returns ctx.Err() as soon as ctx is cancelled, even while waiting for
// input. A line read after cancellation is never executed.
func (r *REPL) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	lines := make(chan readResult)
	go r.read(lines, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(r.out, prompt); err != nil {
			return err
		}

		var res readResult
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res = <-lines:
		}
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				_, err := io.WriteString(r.out, "\n")
				return err
			}
			return fmt.Errorf("failed to read command: %w", res.err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd := Parse(res.text)
		if res.tooLong {
			cmd = message(fmt.Sprintf("%s (max %d bytes)", msgTooLong, MaxLineLength))
		}
		out, quit := r.dispatcher.Execute(ctx, cmd)
		if strings.TrimSpace(out) != "" {
			if _, err := fmt.Fprintln(r.out, out); err != nil {
				return err
			}
		}
		if quit {
			return nil
		}
	}
}

// read feeds lines until a read error, which is delivered last, or until
// done is closed.
func (r *REPL) read(lines chan<- readResult, done <-chan struct{}) {
	for {
		text, tooLong, err := readLine(r.in)
		select {
		case lines <- readResult{text: text, tooLong: tooLong, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

// readLine returns the next line without its terminator. Memory use stays
// bounded by MaxLineLength: the rest of an oversized line is skipped.
func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > MaxLineLength {
				tooLong = true
				buf = nil
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}
