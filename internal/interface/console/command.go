package console

import "github.com/zinrai/dns-directory-go/internal/domain"

type Kind int

const (
	// KindMessage carries a fixed reply, such as a usage hint or a
	// validation failure, that needs no directory access.
	KindMessage Kind = iota
	KindQuit
	KindLookupName
	KindLookupAddress
	KindList
	KindAdd
)

// Command is one parsed input line. Only the fields relevant to Kind are
// set, and value-typed arguments are already validated.
type Command struct {
	Kind Kind

	Name    domain.MachineName
	Address domain.IPv4Address

	Domain        string
	SortByAddress bool

	Message string
}

func message(text string) Command {
	return Command{Kind: KindMessage, Message: text}
}
