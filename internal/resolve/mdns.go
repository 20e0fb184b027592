package resolve

import (
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// mdnsNameByIP sweeps the local segment over multicast DNS and collects the
// A/AAAA announcements heard within the timeout, keyed by IP address.
func mdnsNameByIP(iface *net.Interface, timeout time.Duration) map[string]string {
	out := map[string]string{}

	addr := &net.UDPAddr{IP: net.ParseIP("224.0.0.251"), Port: 5353}

	conn, err := net.ListenMulticastUDP("udp4", iface, addr)
	if err != nil {
		return out
	}
	defer conn.Close()

	_ = conn.SetReadBuffer(1 << 20)

	q := new(dns.Msg)
	q.SetQuestion(dns.Fqdn("_services._dns-sd._udp.local"), dns.TypePTR)

	b, err := q.Pack()
	if err != nil {
		return out
	}

	// Ask twice; mDNS responders routinely miss the first query.
	_, _ = conn.WriteToUDP(b, addr)
	time.Sleep(50 * time.Millisecond)
	_, _ = conn.WriteToUDP(b, addr)

	deadline := time.Now().Add(timeout)
	buf := make([]byte, 65536)

	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			continue
		}

		m := new(dns.Msg)
		if err := m.Unpack(buf[:n]); err != nil {
			continue
		}

		for _, rr := range append(m.Answer, m.Extra...) {
			switch t := rr.(type) {
			case *dns.A:
				out[t.A.String()] = strings.TrimSuffix(t.Hdr.Name, ".")
			case *dns.AAAA:
				out[t.AAAA.String()] = strings.TrimSuffix(t.Hdr.Name, ".")
			}
		}
	}

	return out
}
