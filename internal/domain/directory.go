package domain

import "context"

// Entry pairs one machine name with one address.
type Entry struct {
	Name    MachineName
	Address IPv4Address
}

func NewEntry(name MachineName, addr IPv4Address) Entry {
	return Entry{Name: name, Address: addr}
}

func (e Entry) String() string {
	return e.Name.String() + " " + e.Address.String()
}

// Store is the backing location a directory is bound to for its lifetime.
// Load returns validated entries in source order, or nil when the store does
// not exist yet. Save replaces the whole stored content.
type Store interface {
	Location() string
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
}
