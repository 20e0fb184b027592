package scan

import (
	"errors"
	"net"
	"net/netip"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"github.com/rs/zerolog"
)

type darwinScanner struct {
	ctx  Context
	opts Options
	log  zerolog.Logger
}

// NewScanner builds the engine for an already-resolved interface context.
func NewScanner(ctx Context, opts Options, log zerolog.Logger) Scanner {
	return &darwinScanner{ctx: ctx, opts: opts, log: log}
}

func (s *darwinScanner) Scan() ([]Target, Summary, error) {
	return s.run(true)
}

func (s *darwinScanner) Passive() ([]Target, Summary, error) {
	return s.run(false)
}

func (s *darwinScanner) run(active bool) ([]Target, Summary, error) {
	// Capture unfiltered: the packet counter covers every frame on the
	// wire, the ARP counter only the frames the scan actually uses.
	handle, err := pcap.OpenLive(s.ctx.Iface.Name, 65536, true, pcap.BlockForever)
	if err != nil {
		return nil, Summary{}, err
	}
	defer handle.Close()

	start := time.Now()
	found := map[netip.Addr]Target{}
	var tally frameTally

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		src := gopacket.NewPacketSource(handle, handle.LinkType())
		for {
			select {
			case <-stop:
				return
			case pkt := <-src.Packets():
				if pkt == nil {
					continue
				}
				arpLayer := pkt.Layer(layers.LayerTypeARP)
				tally.observe(arpLayer != nil)
				if arpLayer == nil {
					continue
				}
				reply := arpLayer.(*layers.ARP)
				ip, ok := netip.AddrFromSlice(reply.SourceProtAddress)
				if ok && ip.Is4() {
					addTarget(ip, net.HardwareAddr(reply.SourceHwAddress), found)
				}
			}
		}
	}()

	if active {
		for _, network := range networksFor(s.opts, s.ctx) {
			for ip := network.Addr(); network.Contains(ip); ip = ip.Next() {
				if !ip.Is4() {
					continue
				}
				if err := s.sendRequest(handle, ip); err != nil {
					s.log.Debug().Err(err).Stringer("target", ip).Msg("send arp request failed")
				}
			}
		}
	}

	time.Sleep(s.opts.Timeout)
	close(stop)
	<-done

	return collect(found), tally.summary(start), nil
}

// sendRequest injects one hand-built ARP request frame, honoring the source
// IPv4 and destination MAC overrides.
func (s *darwinScanner) sendRequest(handle *pcap.Handle, target netip.Addr) error {
	srcMAC := s.ctx.Iface.MAC
	if len(srcMAC) != 6 {
		return errors.New("unexpected interface MAC length")
	}

	sourceIP := s.ctx.SelfIP
	if s.opts.SourceIPv4.IsValid() {
		sourceIP = s.opts.SourceIPv4
	}
	dstMAC := net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	if s.opts.DestinationMAC != nil {
		dstMAC = s.opts.DestinationMAC
	}

	eth := &layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       dstMAC,
		EthernetType: layers.EthernetTypeARP,
	}

	req := &layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   []byte(srcMAC),
		SourceProtAddress: sourceIP.AsSlice(),
		DstHwAddress:      []byte{0, 0, 0, 0, 0, 0},
		DstProtAddress:    target.AsSlice(),
	}

	buf := gopacket.NewSerializeBuffer()
	serializeOpts := gopacket.SerializeOptions{FixLengths: true}
	if err := gopacket.SerializeLayers(buf, serializeOpts, eth, req); err != nil {
		return err
	}

	return handle.WritePacketData(buf.Bytes())
}
