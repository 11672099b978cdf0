// vi: sw=4 ts=4:

/*

	Mnemonic:	seed
	Abstract:	Loads a declared (non-discovered) topology snapshot from a
				YAML file and applies it to a running controller.Core --
				switches, links, and host pairs, in that order so every
				later AddLink/AddHostPair call finds its switches already
				registered.
	Date:		31 Jul 2026
*/

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dresnet/controller"
)

// Seed is the on-disk shape of a declared topology.
type Seed struct {
	Switches  []string       `yaml:"switches"`
	Links     []SeedLink     `yaml:"links"`
	HostPairs []SeedHostPair `yaml:"host_pairs"`
}

type SeedLink struct {
	Switch1       string  `yaml:"switch1"`
	Port1         int     `yaml:"port1"`
	Switch2       string  `yaml:"switch2"`
	Port2         int     `yaml:"port2"`
	BandwidthMbps float64 `yaml:"bandwidth_mbps"`
	FailAtSec     int64   `yaml:"fail_at_sec"` // 0 if omitted; Apply then leaves the link at gizmos.UnknownFailTime ("-1")
}

type SeedHostPair struct {
	Client SeedHostClient `yaml:"client"`
	Server SeedHostServer `yaml:"server"`
}

type SeedHostClient struct {
	Name       string  `yaml:"name"`
	Switch     string  `yaml:"switch"`
	Port       int     `yaml:"port"`
	IP         string  `yaml:"ip"`
	FailAtSec  int64   `yaml:"fail_at_sec"`
	DataSizeGB float64 `yaml:"datasize_gb"`
}

type SeedHostServer struct {
	Name   string `yaml:"name"`
	Switch string `yaml:"switch"`
	Port   int    `yaml:"port"`
	IP     string `yaml:"ip"`
}

// LoadSeed reads and parses a topology seed file.
func LoadSeed(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var s Seed
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &s, nil
}

// Apply pushes the seed's switches, links and host pairs into core, in
// dependency order.
func Apply(s *Seed, core *controller.Core) error {
	for _, name := range s.Switches {
		if err := core.AddSwitch(name); err != nil {
			return fmt.Errorf("config: addSwitch(%s): %w", name, err)
		}
	}
	for _, l := range s.Links {
		if err := core.AddLink(l.Switch1, l.Port1, l.Switch2, l.Port2, l.BandwidthMbps); err != nil {
			return fmt.Errorf("config: addLink(%s,%s): %w", l.Switch1, l.Switch2, err)
		}
		if l.FailAtSec != 0 {
			if err := core.RegisterLinkFailTime(l.Switch1, l.Switch2, l.FailAtSec); err != nil {
				return fmt.Errorf("config: registerLinkFailTime(%s,%s): %w", l.Switch1, l.Switch2, err)
			}
		}
	}
	for _, p := range s.HostPairs {
		client := controller.ClientSpec{
			Name: p.Client.Name, Switch: p.Client.Switch, Port: p.Client.Port,
			IP: p.Client.IP, FailAtSec: p.Client.FailAtSec, DataSizeGB: p.Client.DataSizeGB,
		}
		server := controller.ServerSpec{Name: p.Server.Name, Switch: p.Server.Switch, Port: p.Server.Port, IP: p.Server.IP}
		if err := core.AddHostPair(client, server); err != nil {
			return fmt.Errorf("config: addHostPair(%s,%s): %w", p.Client.Name, p.Server.Name, err)
		}
	}
	return nil
}
