package console

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zinrai/dns-directory-go/internal/infrastructure/persistence"
	"github.com/zinrai/dns-directory-go/internal/usecase"
)

func newDispatcher(t *testing.T, content string) (*Dispatcher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dns.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	dir, err := usecase.NewDirectory(context.Background(), persistence.NewFileStore(path), zap.NewNop())
	require.NoError(t, err)
	return NewDispatcher(dir), path
}

func TestDispatcherExecute(t *testing.T) {
	d, _ := newDispatcher(t, "www.uvsq.fr 193.51.31.90\nftp.uvsq.fr 193.51.31.2\n")
	ctx := context.Background()

	tests := []struct {
		line string
		out  string
		quit bool
	}{
		{line: "www.uvsq.fr", out: "193.51.31.90"},
		{line: "193.51.31.2", out: "ftp.uvsq.fr"},
		{line: "mail.uvsq.fr", out: replyUnknownName},
		{line: "10.0.0.1", out: replyUnknownAddress},
		{line: "ls uvsq.fr", out: "ftp.uvsq.fr 193.51.31.2\nwww.uvsq.fr 193.51.31.90"},
		{line: "ls -a uvsq.fr", out: "193.51.31.2 ftp.uvsq.fr\n193.51.31.90 www.uvsq.fr"},
		{line: "ls example.com", out: "(no entries for domain example.com)"},
		{line: "add 193.51.31.90 mail.uvsq.fr", out: `duplicate address: 193.51.31.90`},
		{line: "add 10.0.0.1 www.uvsq.fr", out: `duplicate name: www.uvsq.fr`},
		{line: "nonsense here", out: msgUnknown},
		{line: "quit", out: replyQuit, quit: true},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			out, quit := d.Execute(ctx, Parse(tc.line))
			assert.Equal(t, tc.out, out)
			assert.Equal(t, tc.quit, quit)
		})
	}
}

func TestDispatcherAdd(t *testing.T) {
	d, path := newDispatcher(t, "")
	ctx := context.Background()

	out, _ := d.Execute(ctx, Parse("add 10.0.0.1 www.uvsq.fr"))
	assert.Equal(t, replyOK, out)

	out, _ = d.Execute(ctx, Parse("www.uvsq.fr"))
	assert.Equal(t, "10.0.0.1", out)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "www.uvsq.fr 10.0.0.1\n", string(content))
}

func TestDispatcherUnknownKind(t *testing.T) {
	d, _ := newDispatcher(t, "")
	out, quit := d.Execute(context.Background(), Command{Kind: Kind(42)})
	assert.Equal(t, "unsupported command kind 42", out)
	assert.False(t, quit)
}
