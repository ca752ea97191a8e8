package persistence

import (
	"github.com/zinrai/dns-directory-go/internal/domain"
)

// uniqueness tracks the names and addresses seen so far while loading, so
// that a repeat is reported at the line or row where it occurs.
type uniqueness struct {
	names     map[domain.MachineName]struct{}
	addresses map[domain.IPv4Address]struct{}
}

func newUniqueness() *uniqueness {
	return &uniqueness{
		names:     make(map[domain.MachineName]struct{}),
		addresses: make(map[domain.IPv4Address]struct{}),
	}
}

// check records e and returns ErrDuplicateName or ErrDuplicateAddress if
// either half was already seen. The name is checked first.
func (u *uniqueness) check(e domain.Entry) error {
	if _, ok := u.names[e.Name]; ok {
		return domain.ErrDuplicateName
	}
	if _, ok := u.addresses[e.Address]; ok {
		return domain.ErrDuplicateAddress
	}
	u.names[e.Name] = struct{}{}
	u.addresses[e.Address] = struct{}{}
	return nil
}
