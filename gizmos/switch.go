// vi: sw=4 ts=4:

/*

	Mnemonic:	switch
	Abstract:	The Switch value type. A switch is identified solely by its
				name; the datapath-id used on the wire is derived from the
				name's numeric suffix (switch "s3" <-> datapath-id 3), the
				OpenFlow dialect's naming convention.
	Date:		31 Jul 2026
*/

package gizmos

import (
	"fmt"
	"strconv"
	"strings"
)

// Switch is a registered OpenFlow datapath. It carries no mutable state of
// its own; links and host attachments live in the Topology that owns it.
type Switch struct {
	Name string
}

// NewSwitch builds a Switch from a name of the form "s<dpid>".
func NewSwitch(name string) Switch {
	return Switch{Name: name}
}

// DatapathID returns the integer suffix of the switch name, e.g. "s12" -> 12.
// This is the reverse of the naming convention used to address switches
// from the flow installer and the admin surface.
func (s Switch) DatapathID() (int64, error) {
	return dpidFromName(s.Name)
}

func dpidFromName(name string) (int64, error) {
	if !strings.HasPrefix(name, "s") {
		log.Warn().Str("switch", name).Msg("switch name does not follow the s<dpid> convention")
		return 0, fmt.Errorf("switch name %q does not follow the s<dpid> convention", name)
	}
	dpid, err := strconv.ParseInt(name[1:], 10, 64)
	if err != nil {
		log.Warn().Str("switch", name).Err(err).Msg("switch name suffix is not a valid datapath id")
		return 0, fmt.Errorf("switch name %q does not follow the s<dpid> convention: %w", name, err)
	}
	return dpid, nil
}

// SwitchNameFromDatapathID is the inverse of DatapathID: it reconstructs the
// "s<dpid>" name the flow installer and admin surface address switches by.
func SwitchNameFromDatapathID(dpid int64) string {
	return "s" + strconv.FormatInt(dpid, 10)
}

func (s Switch) String() string {
	return s.Name
}
