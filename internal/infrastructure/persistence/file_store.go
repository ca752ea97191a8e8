package persistence

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zinrai/dns-directory-go/internal/domain"
)

// FileStore keeps entries in a flat text file, one "<fqdn> <ipv4>" pair per
// line. Blank lines and lines starting with '#' are ignored on read and are
// not written back.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Location() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) ([]domain.Entry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "open", Location: s.path, Err: err}
	}
	defer f.Close()

	var entries []domain.Entry
	seen := newUniqueness()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				verr.Line = lineNo
			}
			return nil, err
		}
		if err := seen.check(entry); err != nil {
			return nil, fmt.Errorf("line %d: %w: %s", lineNo, err, entry)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "read", Location: s.path, Err: err}
	}
	return entries, nil
}

func parseLine(line string) (domain.Entry, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return domain.Entry{}, &domain.ValidationError{Kind: domain.MalformedLine, Input: line}
	}
	name, err := domain.NewMachineName(fields[0])
	if err != nil {
		return domain.Entry{}, err
	}
	addr, err := domain.NewIPv4Address(fields[1])
	if err != nil {
		return domain.Entry{}, err
	}
	return domain.NewEntry(name, addr), nil
}

// Save writes entries in the given order to a temporary file next to the
// target and renames it into place, so readers see either the old or the
// new content.
func (s *FileStore) Save(ctx context.Context, entries []domain.Entry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.PersistenceError{Op: "create directory for", Location: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return &domain.PersistenceError{Op: "create temporary file for", Location: s.path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := writeEntries(tmp, entries); err != nil {
		tmp.Close()
		return &domain.PersistenceError{Op: "write", Location: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.PersistenceError{Op: "write", Location: s.path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &domain.PersistenceError{Op: "write", Location: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &domain.PersistenceError{Op: "replace", Location: s.path, Err: err}
	}
	return nil
}

func writeEntries(f *os.File, entries []domain.Entry) error {
	w := bufio.NewWriter(f)
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s %s\n", e.Name, e.Address); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}
