package console

import (
	"strings"

	"github.com/zinrai/dns-directory-go/internal/domain"
)

const (
	msgEmpty     = "empty command"
	msgUnknown   = "unknown command"
	msgListUsage = "usage: ls [-a] <domain>"
	msgAddUsage  = "usage: add <ip> <fqdn>"
	msgTooLong   = "line too long"
)

// Parse turns one input line into a Command. It never fails: malformed
// input becomes a KindMessage command describing the problem.
//
//	quit | exit        end the session
//	ls [-a] <domain>   list a domain, by name or with -a by address
//	add <ip> <fqdn>    add an entry
//	<ip>               look up the name of an address
//	<fqdn>             look up the address of a name
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return message(msgEmpty)
	}

	switch strings.ToLower(line) {
	case "quit", "exit":
		return Command{Kind: KindQuit}
	}

	tokens := strings.Fields(line)
	switch tokens[0] {
	case "ls":
		return parseList(tokens[1:])
	case "add":
		return parseAdd(tokens[1:])
	}

	if len(tokens) != 1 {
		return message(msgUnknown)
	}
	token := tokens[0]
	if domain.LooksLikeIPv4(token) {
		addr, err := domain.NewIPv4Address(token)
		if err != nil {
			return message(err.Error())
		}
		return Command{Kind: KindLookupAddress, Address: addr}
	}
	name, err := domain.NewMachineName(token)
	if err != nil {
		return message(err.Error())
	}
	return Command{Kind: KindLookupName, Name: name}
}

func parseList(args []string) Command {
	sortByAddress := false
	if len(args) >= 2 && args[0] == "-a" {
		sortByAddress = true
		args = args[1:]
	}
	if len(args) == 0 {
		return message(msgListUsage)
	}
	return Command{Kind: KindList, Domain: args[0], SortByAddress: sortByAddress}
}

func parseAdd(args []string) Command {
	if len(args) != 2 {
		return message(msgAddUsage)
	}
	addr, err := domain.NewIPv4Address(args[0])
	if err != nil {
		return message(err.Error())
	}
	name, err := domain.NewMachineName(args[1])
	if err != nil {
		return message(err.Error())
	}
	return Command{Kind: KindAdd, Address: addr, Name: name}
}
