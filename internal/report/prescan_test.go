package report

import (
	"bytes"
	"fmt"
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arpscout/internal/netinfo"
	"arpscout/internal/scan"
)

func TestPrescanNetworkList(t *testing.T) {
	iface := netinfo.Interface{Name: "eth0"}

	tests := []struct {
		name         string
		networkCount int
		want         string
	}{
		{
			name:         "single network",
			networkCount: 1,
			want:         "Selected interface eth0 with IP 10.0.0.0/24\n",
		},
		{
			name:         "five networks shown in full",
			networkCount: 5,
			want: "Selected interface eth0 with IP " +
				"10.0.0.0/24, 10.0.1.0/24, 10.0.2.0/24, 10.0.3.0/24, 10.0.4.0/24\n",
		},
		{
			name:         "seven networks collapse to five plus suffix",
			networkCount: 7,
			want: "Selected interface eth0 with IP " +
				"10.0.0.0/24, 10.0.1.0/24, 10.0.2.0/24, 10.0.3.0/24, 10.0.4.0/24 (2 more)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			networks := make([]netip.Prefix, 0, tt.networkCount)
			for i := 0; i < tt.networkCount; i++ {
				networks = append(networks, netip.MustParsePrefix(fmt.Sprintf("10.0.%d.0/24", i)))
			}

			var buf bytes.Buffer
			Prescan(&buf, networks, iface, scan.Options{})

			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrescanOverrides(t *testing.T) {
	networks := []netip.Prefix{netip.MustParsePrefix("192.168.1.0/24")}
	iface := netinfo.Interface{Name: "eth0"}

	t.Run("no overrides", func(t *testing.T) {
		var buf bytes.Buffer
		Prescan(&buf, networks, iface, scan.Options{})

		assert.NotContains(t, buf.String(), "will be forced")
	})

	t.Run("forced source and destination", func(t *testing.T) {
		mac, err := net.ParseMAC("ff:ee:dd:cc:bb:aa")
		require.NoError(t, err)

		opts := scan.Options{
			SourceIPv4:     netip.MustParseAddr("192.168.1.250"),
			DestinationMAC: mac,
		}

		var buf bytes.Buffer
		Prescan(&buf, networks, iface, opts)
		out := buf.String()

		assert.Contains(t, out, "The ARP source IPv4 will be forced to 192.168.1.250")
		assert.Contains(t, out, "The ARP destination MAC will be forced to ff:ee:dd:cc:bb:aa")
	})
}

func TestPrescanDoesNotMutateNetworks(t *testing.T) {
	networks := []netip.Prefix{
		netip.MustParsePrefix("10.0.1.0/24"),
		netip.MustParsePrefix("10.0.0.0/24"),
	}

	var buf bytes.Buffer
	Prescan(&buf, networks, netinfo.Interface{Name: "eth0"}, scan.Options{})

	assert.Equal(t, netip.MustParsePrefix("10.0.1.0/24"), networks[0])
	assert.Equal(t, netip.MustParsePrefix("10.0.0.0/24"), networks[1])
}
