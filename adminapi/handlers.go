// vi: sw=4 ts=4:

/*

	Mnemonic:	handlers
	Abstract:	Topology and host-pair admin handlers: the GET/POST/PUT
				operations on /switch, /link, /port-to-switch, /host-pair
				and /host-client.
	Date:		31 Jul 2026
*/

package adminapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dresnet/controller"
)

func errMethodNotAllowed(method string) error {
	return fmt.Errorf("method %s not supported on this path", method)
}

type switchListResponse struct {
	Switches []string `json:"switches"`
}

func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed(r.Method))
		return
	}
	switches := s.core.Switches()
	names := make([]string, len(switches))
	for i, sw := range switches {
		names[i] = sw.Name
	}
	writeOK(w, switchListResponse{Switches: names})
}

type linkView struct {
	Switch1       string  `json:"switch1"`
	Switch2       string  `json:"switch2"`
	BandwidthMbps float64 `json:"bandwidth_mbps"`
	FailAtSec     int64   `json:"fail_at_sec"`
}

type linkListResponse struct {
	Links []linkView `json:"links"`
}

type switchPort struct {
	Name string `json:"name"`
	Port int    `json:"port"`
}

type addLinkRequest struct {
	Switch1       switchPort `json:"switch1"`
	Switch2       switchPort `json:"switch2"`
	BandwidthMbps float64    `json:"bandwidth_mbps"`
}

type registerFailTimeRequest struct {
	Switch1   string `json:"switch1"`
	Switch2   string `json:"switch2"`
	FailAtSec int64  `json:"fail_at_sec"`
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	log := s.requestLog(r)
	switch r.Method {
	case http.MethodGet:
		links := s.core.Links()
		views := make([]linkView, len(links))
		for i, l := range links {
			views[i] = linkView{Switch1: l.Switch1, Switch2: l.Switch2, BandwidthMbps: l.BandwidthMbps, FailAtSec: l.FailAtSec}
		}
		writeOK(w, linkListResponse{Links: views})

	case http.MethodPost:
		var req addLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.core.AddLink(req.Switch1.Name, req.Switch1.Port, req.Switch2.Name, req.Switch2.Port, req.BandwidthMbps); err != nil {
			log.Warn().Err(err).Msg("addLink rejected")
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeOK(w, nil)

	case http.MethodPut:
		var req registerFailTimeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.core.RegisterLinkFailTime(req.Switch1, req.Switch2, req.FailAtSec); err != nil {
			log.Warn().Err(err).Msg("registerLinkFailTime rejected")
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeOK(w, nil)

	default:
		writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed(r.Method))
	}
}

func (s *Server) handlePortToSwitch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed(r.Method))
		return
	}
	writeOK(w, s.core.PortMapping())
}

type hostPairEndpointView struct {
	Name           string `json:"name"`
	NeighborSwitch string `json:"neighbor_switch"`
}

type hostPairView struct {
	Client hostClientView       `json:"client"`
	Server hostPairEndpointView `json:"server"`
}

type hostClientView struct {
	Name           string  `json:"name"`
	NeighborSwitch string  `json:"neighbor_switch"`
	FailAtSec      int64   `json:"fail_at_sec"`
	DataSizeGB     float64 `json:"datasize_gb"`
}

type hostPairListResponse struct {
	HostPairs []hostPairView `json:"host_pairs"`
}

type hostEndpointRequest struct {
	Name       string  `json:"name"`
	Switch     string  `json:"switch"`
	Port       int     `json:"port"`
	IP         string  `json:"ip"`
	FailAtSec  int64   `json:"fail_at_sec,omitempty"`
	DataSizeGB float64 `json:"datasize_gb,omitempty"`
}

type addHostPairRequest struct {
	Client hostEndpointRequest `json:"client"`
	Server hostEndpointRequest `json:"server"`
}

func (s *Server) handleHostPair(w http.ResponseWriter, r *http.Request) {
	log := s.requestLog(r)
	switch r.Method {
	case http.MethodGet:
		pairs := s.core.HostPairs()
		views := make([]hostPairView, len(pairs))
		for i, p := range pairs {
			views[i] = hostPairView{
				Client: hostClientView{
					Name: p.Client.Name, NeighborSwitch: p.Client.NeighborSwitch,
					FailAtSec: p.Client.FailAtSec, DataSizeGB: p.Client.DataSizeGB,
				},
				Server: hostPairEndpointView{Name: p.Server.Name, NeighborSwitch: p.Server.NeighborSwitch},
			}
		}
		writeOK(w, hostPairListResponse{HostPairs: views})

	case http.MethodPost:
		var req addHostPairRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		client := controller.ClientSpec{
			Name: req.Client.Name, Switch: req.Client.Switch, Port: req.Client.Port,
			IP: req.Client.IP, FailAtSec: req.Client.FailAtSec, DataSizeGB: req.Client.DataSizeGB,
		}
		server := controller.ServerSpec{Name: req.Server.Name, Switch: req.Server.Switch, Port: req.Server.Port, IP: req.Server.IP}
		if err := s.core.AddHostPair(client, server); err != nil {
			log.Warn().Err(err).Msg("addHostPair rejected")
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeOK(w, nil)

	default:
		writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed(r.Method))
	}
}

type updateHostClientRequest struct {
	Name       string  `json:"name"`
	FailAtSec  int64   `json:"fail_at_sec"`
	DataSizeGB float64 `json:"datasize_gb"`
}

func (s *Server) handleHostClient(w http.ResponseWriter, r *http.Request) {
	log := s.requestLog(r)
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed(r.Method))
		return
	}
	var req updateHostClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.core.UpdateHostClient(req.Name, req.FailAtSec, req.DataSizeGB); err != nil {
		log.Warn().Err(err).Msg("updateHostClient rejected")
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w, nil)
}
