// vi: sw=4 ts=4:

/*

	Mnemonic:	transport
	Abstract:	A logging stand-in for the OpenFlow driver flowinstall.Transport
				names. The real driver -- wire framing, the echo/hello
				handshake, barrier replies -- lives outside this process;
				this is just enough of a seam for dresnetd to run and show
				its decisions without one.
	Date:		31 Jul 2026
*/

package main

import (
	"github.com/rs/zerolog"

	"dresnet/flowinstall"
)

type loggingTransport struct {
	log zerolog.Logger
}

func newLoggingTransport(log zerolog.Logger) *loggingTransport {
	return &loggingTransport{log: log.With().Str("component", "ofstub").Logger()}
}

func (t *loggingTransport) InstallFlow(dpid int64, priority int64, match flowinstall.Match, actions []flowinstall.Action, bufferID *uint32) error {
	t.log.Debug().
		Int64("dpid", dpid).
		Int64("priority", priority).
		Interface("match", match).
		Interface("actions", actions).
		Msg("install flow")
	return nil
}

func (t *loggingTransport) SendPacketOut(dpid int64, inPort int, bufferID uint32, actions []flowinstall.Action, data []byte) error {
	t.log.Debug().
		Int64("dpid", dpid).
		Int("in_port", inPort).
		Interface("actions", actions).
		Msg("packet out")
	return nil
}
