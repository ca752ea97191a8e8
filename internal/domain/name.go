package domain

import (
	"regexp"
	"strings"
)

var labelPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,63}$`)

// MachineName is a validated, lower-cased fully-qualified domain name with
// at least two labels.
type MachineName struct {
	fqdn string
}

// NewMachineName trims and lower-cases raw, then checks the label grammar.
// A bare hostname without a dot is rejected.
func NewMachineName(raw string) (MachineName, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if !validFQDN(v) {
		return MachineName{}, &ValidationError{Kind: InvalidName, Input: raw}
	}
	return MachineName{fqdn: v}, nil
}

func validFQDN(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") ||
		!strings.Contains(s, ".") || strings.Contains(s, "..") {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") ||
			!labelPattern.MatchString(label) {
			return false
		}
	}
	return true
}

// Domain returns everything after the first label, e.g. "uvsq.fr" for
// "www.uvsq.fr".
func (n MachineName) Domain() string {
	_, domain, _ := strings.Cut(n.fqdn, ".")
	return domain
}

func (n MachineName) String() string {
	return n.fqdn
}
