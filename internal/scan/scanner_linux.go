package scan

import (
	"errors"
	"net"
	"net/netip"
	"time"

	"github.com/mdlayher/arp"
	"github.com/mdlayher/ethernet"
	"github.com/rs/zerolog"
)

type linuxScanner struct {
	ctx  Context
	opts Options
	log  zerolog.Logger
}

// NewScanner builds the engine for an already-resolved interface context.
func NewScanner(ctx Context, opts Options, log zerolog.Logger) Scanner {
	return &linuxScanner{ctx: ctx, opts: opts, log: log}
}

func (s *linuxScanner) Scan() ([]Target, Summary, error) {
	return s.run(true)
}

func (s *linuxScanner) Passive() ([]Target, Summary, error) {
	return s.run(false)
}

func (s *linuxScanner) run(active bool) ([]Target, Summary, error) {
	c, err := arp.Dial(s.ctx.OSIface)
	if err != nil {
		return nil, Summary{}, err
	}
	defer c.Close()

	start := time.Now()
	if err := c.SetReadDeadline(start.Add(s.opts.Timeout)); err != nil {
		return nil, Summary{}, err
	}

	if active {
		go s.probe(c)
	}

	found := map[netip.Addr]Target{}
	var tally frameTally
	var guard readGuard

	for {
		pkt, _, err := c.Read()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				break
			}
			s.log.Debug().Err(err).Msg("arp read failed")
			backoff, giveUp := guard.failure()
			if giveUp {
				s.log.Warn().Err(err).Msg("abandoning capture after repeated read failures")
				break
			}
			time.Sleep(backoff)
			continue
		}
		guard.success()
		// The ARP client only ever hands us ARP frames, so the received
		// and filtered counters coincide on this platform.
		tally.observe(true)
		addTarget(pkt.SenderIP, pkt.SenderHardwareAddr, found)
	}

	return collect(found), tally.summary(start), nil
}

// probe fires one request per address across every target network, honoring
// the source IPv4 and destination MAC overrides.
func (s *linuxScanner) probe(c *arp.Client) {
	sourceIP := s.ctx.SelfIP
	if s.opts.SourceIPv4.IsValid() {
		sourceIP = s.opts.SourceIPv4
	}
	destMAC := ethernet.Broadcast
	if s.opts.DestinationMAC != nil {
		destMAC = s.opts.DestinationMAC
	}

	for _, network := range networksFor(s.opts, s.ctx) {
		for ip := network.Addr(); network.Contains(ip); ip = ip.Next() {
			pkt, err := arp.NewPacket(arp.OperationRequest, s.ctx.Iface.MAC, sourceIP, destMAC, ip)
			if err != nil {
				s.log.Debug().Err(err).Stringer("target", ip).Msg("build arp request failed")
				continue
			}
			if err := c.WriteTo(pkt, destMAC); err != nil {
				s.log.Debug().Err(err).Stringer("target", ip).Msg("send arp request failed")
			}
		}
	}
}
