// vi: sw=4 ts=4:

/*

	Mnemonic:	learning
	Abstract:	The packet-in / learning-bridge fallback: learns a source
				MAC's ingress port on every packet-in, and either installs
				a targeted flow for an already-learned destination or
				floods when the destination is still unknown. Frames are
				parsed only as far as the 14-byte Ethernet header needs --
				a fixed six/six/two byte slice, not general protocol
				decoding, so no packet-parsing library is pulled in for
				it; see DESIGN.md.
	Date:		31 Jul 2026
*/

package controller

import (
	"encoding/binary"
	"fmt"

	"dresnet/flowinstall"
	"dresnet/gizmos"
)

const ethernetHeaderLen = 14
const etherTypeIPv6 uint16 = 0x86dd

type ethernetFrame struct {
	Dst, Src  string
	EtherType uint16
}

func decodeEthernet(raw []byte) (ethernetFrame, error) {
	if len(raw) < ethernetHeaderLen {
		return ethernetFrame{}, fmt.Errorf("controller: frame too short to carry an Ethernet header (%d bytes)", len(raw))
	}
	return ethernetFrame{
		Dst:       formatMAC(raw[0:6]),
		Src:       formatMAC(raw[6:12]),
		EtherType: binary.BigEndian.Uint16(raw[12:14]),
	}, nil
}

func formatMAC(b []byte) string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", b[0], b[1], b[2], b[3], b[4], b[5])
}

// PacketIn is one packet-in event from the transport. BufferID is
// flowinstall.NoBuffer when the switch sent the full payload rather than
// buffering it.
type PacketIn struct {
	Dpid     int64
	InPort   int
	BufferID uint32
	Raw      []byte
}

// OnPacketIn runs the learning bridge fallback for a frame without a
// matching higher-priority flow.
func (c *Core) OnPacketIn(pkt PacketIn) {
	_, _ = c.call(func() (interface{}, error) {
		c.handlePacketIn(pkt)
		return nil, nil
	})
}

func (c *Core) handlePacketIn(pkt PacketIn) {
	frame, err := decodeEthernet(pkt.Raw)
	if err != nil {
		c.log.Debug().Err(err).Int64("dpid", pkt.Dpid).Msg("undecodable frame; dropping")
		return
	}
	if frame.EtherType == etherTypeIPv6 {
		return // IPv6 is dropped silently
	}

	sw := gizmos.SwitchNameFromDatapathID(pkt.Dpid)
	if c.learned[sw] == nil {
		c.learned[sw] = make(map[string]int)
	}
	c.learned[sw][frame.Src] = pkt.InPort

	outPort, known := c.learned[sw][frame.Dst]
	if !known {
		c.floodPacket(pkt)
		return
	}

	match := flowinstall.Match{EthDst: frame.Dst}
	actions := []flowinstall.Action{flowinstall.OutputTo(outPort)}

	var bufferID *uint32
	if pkt.BufferID != flowinstall.NoBuffer {
		b := pkt.BufferID
		bufferID = &b
	}

	if err := c.transport.InstallFlow(pkt.Dpid, flowinstall.PriorityLearningBridge, match, actions, bufferID); err != nil {
		c.log.Warn().Err(err).Str("switch", sw).Msg("learning-bridge flow install failed")
	}
	if bufferID == nil {
		if err := c.transport.SendPacketOut(pkt.Dpid, pkt.InPort, pkt.BufferID, actions, pkt.Raw); err != nil {
			c.log.Warn().Err(err).Str("switch", sw).Msg("packet-out echo failed")
		}
	}
}

func (c *Core) floodPacket(pkt PacketIn) {
	actions := []flowinstall.Action{flowinstall.OutputFlood()}
	if err := c.transport.SendPacketOut(pkt.Dpid, pkt.InPort, pkt.BufferID, actions, pkt.Raw); err != nil {
		c.log.Warn().Err(err).Int64("dpid", pkt.Dpid).Msg("flood packet-out failed")
	}
}
