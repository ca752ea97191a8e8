package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIPv4Address(t *testing.T) {
	valid := map[string]string{
		"193.51.31.90":    "193.51.31.90",
		"  10.0.0.1\t":    "10.0.0.1",
		"0.0.0.0":         "0.0.0.0",
		"255.255.255.255": "255.255.255.255",
		"01.02.3.4":       "01.02.3.4",
	}
	for raw, want := range valid {
		t.Run(raw, func(t *testing.T) {
			a, err := NewIPv4Address(raw)
			require.NoError(t, err)
			assert.Equal(t, want, a.String())
		})
	}

	invalid := []string{
		"",
		"256.1.1.1",
		"1.1.1.300",
		"1.2.3",
		"1.2.3.4.5",
		"1.2.3.",
		"a.b.c.d",
		"1..2.3",
		"1.2.3.4 5",
		"0001.2.3.4",
		"001.2.3.4",
		"1.2.3.010",
	}
	for _, raw := range invalid {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, err := NewIPv4Address(raw)
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, InvalidAddress, verr.Kind)
			assert.Equal(t, raw, verr.Input)
		})
	}
}

func TestIPv4AddressEquality(t *testing.T) {
	a, err := NewIPv4Address("10.0.0.1")
	require.NoError(t, err)
	b, err := NewIPv4Address(" 10.0.0.1 ")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	set := map[IPv4Address]bool{a: true}
	assert.True(t, set[b])
}

func TestLooksLikeIPv4(t *testing.T) {
	assert.True(t, LooksLikeIPv4("192.168.1.1"))
	assert.False(t, LooksLikeIPv4("www.uvsq.fr"))
	assert.False(t, LooksLikeIPv4("300.1.1.1"))
}
