package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/zinrai/dns-directory-go/internal/domain"
)

const (
	replyQuit           = "Closing DNS directory."
	replyOK             = "OK"
	replyUnknownName    = "ERROR: unknown name"
	replyUnknownAddress = "ERROR: unknown address"
)

// Directory is the part of the registry the console drives.
type Directory interface {
	LookupByName(name domain.MachineName) (domain.Entry, bool)
	LookupByAddress(addr domain.IPv4Address) (domain.Entry, bool)
	ListByDomain(domainName string, sortByAddress bool) ([]domain.Entry, error)
	Add(ctx context.Context, addr domain.IPv4Address, name domain.MachineName) error
}

type Dispatcher struct {
	dir Directory
}

func NewDispatcher(dir Directory) *Dispatcher {
	return &Dispatcher{dir: dir}
}

// Execute runs cmd against the directory and returns the text to show the
// user. quit is true once the session should end.
func (d *Dispatcher) Execute(ctx context.Context, cmd Command) (out string, quit bool) {
	switch cmd.Kind {
	case KindQuit:
		return replyQuit, true
	case KindLookupName:
		return d.lookupName(cmd.Name), false
	case KindLookupAddress:
		return d.lookupAddress(cmd.Address), false
	case KindList:
		return d.list(cmd.Domain, cmd.SortByAddress), false
	case KindAdd:
		return d.add(ctx, cmd.Address, cmd.Name), false
	case KindMessage:
		return cmd.Message, false
	default:
		return fmt.Sprintf("unsupported command kind %d", cmd.Kind), false
	}
}

func (d *Dispatcher) lookupName(name domain.MachineName) string {
	e, ok := d.dir.LookupByName(name)
	if !ok {
		return replyUnknownName
	}
	return e.Address.String()
}

func (d *Dispatcher) lookupAddress(addr domain.IPv4Address) string {
	e, ok := d.dir.LookupByAddress(addr)
	if !ok {
		return replyUnknownAddress
	}
	return e.Name.String()
}

func (d *Dispatcher) list(domainName string, sortByAddress bool) string {
	entries, err := d.dir.ListByDomain(domainName, sortByAddress)
	if err != nil {
		return err.Error()
	}
	if len(entries) == 0 {
		return fmt.Sprintf("(no entries for domain %s)", domainName)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if sortByAddress {
			lines = append(lines, e.Address.String()+" "+e.Name.String())
		} else {
			lines = append(lines, e.String())
		}
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) add(ctx context.Context, addr domain.IPv4Address, name domain.MachineName) string {
	if err := d.dir.Add(ctx, addr, name); err != nil {
		return err.Error()
	}
	return replyOK
}
