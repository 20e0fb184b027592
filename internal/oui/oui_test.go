package oui

import (
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arpscout/internal/scan"
)

func mustMAC(t *testing.T, s string) net.HardwareAddr {
	t.Helper()
	mac, err := net.ParseMAC(s)
	require.NoError(t, err)
	return mac
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		mac  string
		want string
	}{
		{name: "known prefix", mac: "b8:27:eb:12:34:56", want: "Raspberry Pi"},
		{name: "known prefix uppercase", mac: "3C:22:FB:00:00:01", want: "Apple"},
		{name: "unknown prefix", mac: "02:00:00:00:00:01", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(mustMAC(t, tt.mac)))
		})
	}
}

func TestLookupShortAddress(t *testing.T) {
	assert.Equal(t, "", Lookup(net.HardwareAddr{0xb8, 0x27}))
	assert.Equal(t, "", Lookup(nil))
}

func TestEnrich(t *testing.T) {
	targets := []scan.Target{
		{IPv4: netip.MustParseAddr("10.0.0.1"), MAC: mustMAC(t, "b8:27:eb:aa:bb:cc")},
		{IPv4: netip.MustParseAddr("10.0.0.2"), MAC: mustMAC(t, "02:00:00:aa:bb:cc")},
		{IPv4: netip.MustParseAddr("10.0.0.3"), MAC: mustMAC(t, "b8:27:eb:dd:ee:ff"), Vendor: "Custom"},
	}

	Enrich(targets)

	assert.Equal(t, "Raspberry Pi", targets[0].Vendor)
	assert.Equal(t, "", targets[1].Vendor)
	assert.Equal(t, "Custom", targets[2].Vendor, "existing vendor must not be overwritten")
}
