package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestREPLRun(t *testing.T) {
	d, _ := newDispatcher(t, "www.uvsq.fr 193.51.31.90\n")
	in := strings.NewReader("www.uvsq.fr\n\nquit\n193.51.31.90\n")
	var out bytes.Buffer

	require.NoError(t, NewREPL(in, &out, d).Run(context.Background()))

	want := "> 193.51.31.90\n" +
		"> " + msgEmpty + "\n" +
		"> " + replyQuit + "\n"
	assert.Equal(t, want, out.String())
}

func TestREPLEndOfInput(t *testing.T) {
	d, _ := newDispatcher(t, "")
	var out bytes.Buffer

	require.NoError(t, NewREPL(strings.NewReader("add 10.0.0.1 a.b"), &out, d).Run(context.Background()))
	assert.Equal(t, "> OK\n> \n", out.String())
}

func TestREPLCanceled(t *testing.T) {
	d, _ := newDispatcher(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewREPL(strings.NewReader("quit\n"), &bytes.Buffer{}, d).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestREPLLongLine(t *testing.T) {
	d, _ := newDispatcher(t, "www.uvsq.fr 193.51.31.90\n")
	in := strings.NewReader(strings.Repeat("x", 70000) + "\nwww.uvsq.fr\nquit\n")
	var out bytes.Buffer

	require.NoError(t, NewREPL(in, &out, d).Run(context.Background()))

	want := "> " + msgTooLong + " (max 4096 bytes)\n" +
		"> 193.51.31.90\n" +
		"> " + replyQuit + "\n"
	assert.Equal(t, want, out.String())
}

func TestREPLLineAtLimit(t *testing.T) {
	d, _ := newDispatcher(t, "")
	in := strings.NewReader(strings.Repeat("x", MaxLineLength) + "\nquit\n")
	var out bytes.Buffer

	require.NoError(t, NewREPL(in, &out, d).Run(context.Background()))
	assert.NotContains(t, out.String(), msgTooLong)
	assert.True(t, strings.HasSuffix(out.String(), "> "+replyQuit+"\n"))
}

func TestREPLCanceledWhileReading(t *testing.T) {
	d, path := newDispatcher(t, "")
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer

	errc := make(chan error, 1)
	go func() { errc <- NewREPL(pr, &out, d).Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Equal(t, "> ", out.String())

	// A line arriving after cancellation is never executed.
	go func() { _, _ = io.WriteString(pw, "add 10.0.0.1 a.uvsq.fr\n") }()
	time.Sleep(20 * time.Millisecond)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, content)
}
