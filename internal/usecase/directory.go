package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zinrai/dns-directory-go/internal/domain"
)

// Directory is the dual-indexed name/address registry. Both indices always
// hold the same set of entries, and every name and every address maps to
// exactly one entry.
type Directory struct {
	store  domain.Store
	logger *zap.Logger

	mu     sync.RWMutex
	byName map[domain.MachineName]domain.Entry
	byAddr map[domain.IPv4Address]domain.Entry
}

// NewDirectory binds a directory to store and loads it. Any load failure,
// including a duplicate name or address, fails construction.
func NewDirectory(ctx context.Context, store domain.Store, logger *zap.Logger) (*Directory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Directory{
		store:  store,
		logger: logger.With(zap.String("store", store.Location())),
		byName: make(map[domain.MachineName]domain.Entry),
		byAddr: make(map[domain.IPv4Address]domain.Entry),
	}
	if err := d.load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load directory from %s: %w", store.Location(), err)
	}
	d.logger.Info("directory loaded", zap.Int("entries", len(d.byName)))
	return d, nil
}

func (d *Directory) load(ctx context.Context) error {
	entries, err := d.store.Load(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, ok := d.byName[e.Name]; ok {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateName, e.Name)
		}
		if _, ok := d.byAddr[e.Address]; ok {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateAddress, e.Address)
		}
		d.byName[e.Name] = e
		d.byAddr[e.Address] = e
	}
	return nil
}

func (d *Directory) Location() string {
	return d.store.Location()
}

func (d *Directory) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byName)
}

func (d *Directory) LookupByName(name domain.MachineName) (domain.Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.byName[name]
	return e, ok
}

func (d *Directory) LookupByAddress(addr domain.IPv4Address) (domain.Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.byAddr[addr]
	return e, ok
}

// ContainsName reports whether fqdn, once trimmed and lower-cased, names an
// entry. Strings that are not valid names are never present.
func (d *Directory) ContainsName(fqdn string) bool {
	name, err := domain.NewMachineName(fqdn)
	if err != nil {
		return false
	}
	_, ok := d.LookupByName(name)
	return ok
}

func (d *Directory) ContainsAddress(ip string) bool {
	addr, err := domain.NewIPv4Address(ip)
	if err != nil {
		return false
	}
	_, ok := d.LookupByAddress(addr)
	return ok
}

// ListByDomain returns the entries whose name's domain equals domainName,
// sorted by name or, with sortByAddress, by the address text. Address order
// is lexicographic on the dotted quad, so "10.0.0.100" sorts before
// "10.0.0.99".
func (d *Directory) ListByDomain(domainName string, sortByAddress bool) ([]domain.Entry, error) {
	want := strings.ToLower(strings.TrimSpace(domainName))
	if want == "" {
		return nil, &domain.ValidationError{Kind: domain.EmptyDomain, Input: domainName}
	}

	d.mu.RLock()
	entries := make([]domain.Entry, 0)
	for name, e := range d.byName {
		if name.Domain() == want {
			entries = append(entries, e)
		}
	}
	d.mu.RUnlock()

	if sortByAddress {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Address.String() < entries[j].Address.String()
		})
	} else {
		sortByName(entries)
	}
	return entries, nil
}

// Add inserts a new entry and persists the whole directory. The name is
// checked for uniqueness before the address. If the store cannot be written
// the insert is undone and a *domain.PersistenceError is returned, so memory
// and storage never disagree.
func (d *Directory) Add(ctx context.Context, addr domain.IPv4Address, name domain.MachineName) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byName[name]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
	}
	if _, ok := d.byAddr[addr]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAddress, addr)
	}

	e := domain.NewEntry(name, addr)
	d.byName[name] = e
	d.byAddr[addr] = e

	if err := d.persist(ctx); err != nil {
		delete(d.byName, name)
		delete(d.byAddr, addr)
		d.logger.Error("persist failed, insert rolled back", zap.Stringer("entry", e), zap.Error(err))
		return err
	}
	d.logger.Debug("entry added", zap.Stringer("name", name), zap.Stringer("address", addr))
	return nil
}

// persist must be called with mu held.
func (d *Directory) persist(ctx context.Context) error {
	entries := make([]domain.Entry, 0, len(d.byName))
	for _, e := range d.byName {
		entries = append(entries, e)
	}
	sortByName(entries)
	return d.store.Save(ctx, entries)
}

func sortByName(entries []domain.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name.String() < entries[j].Name.String()
	})
}
