package domain

import (
	"regexp"
	"strings"
)

// ipv4Pattern accepts a two-digit octet with a leading zero, such as "01",
// but rejects three-digit forms such as "001" or "010".
var ipv4Pattern = regexp.MustCompile(`^((25[0-5]|2[0-4]\d|1?\d?\d)\.){3}(25[0-5]|2[0-4]\d|1?\d?\d)$`)

// IPv4Address is a validated dotted-quad address. The zero value is not a
// valid address; use NewIPv4Address.
type IPv4Address struct {
	value string
}

// NewIPv4Address trims raw and checks it against the dotted-quad grammar.
func NewIPv4Address(raw string) (IPv4Address, error) {
	v := strings.TrimSpace(raw)
	if !ipv4Pattern.MatchString(v) {
		return IPv4Address{}, &ValidationError{Kind: InvalidAddress, Input: raw}
	}
	return IPv4Address{value: v}, nil
}

// LooksLikeIPv4 reports whether s matches the dotted-quad grammar.
func LooksLikeIPv4(s string) bool {
	return ipv4Pattern.MatchString(strings.TrimSpace(s))
}

func (a IPv4Address) String() string {
	return a.value
}
