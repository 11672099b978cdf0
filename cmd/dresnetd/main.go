// vi: sw=4 ts=4:

/*

	Mnemonic:	dresnetd
	Abstract:	Command-line entrypoint: wires the route calculator, flow
				installer and admin HTTP surface together and starts
				listening. Command line flags cover the config file,
				listen port, update interval, route strategy and
				verbosity.
	Date:		31 Jul 2026
*/

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dresnet/adminapi"
	"dresnet/config"
	"dresnet/controller"
	"dresnet/gizmos"
	"dresnet/routecalc"
)

var (
	cfgFile           string
	apiPort           string
	updateIntervalSec int64
	strategyName      string
	verbose           bool
)

func main() {
	root := &cobra.Command{
		Use:   "dresnetd",
		Short: "disaster-aware backup-mesh SDN controller",
		RunE:  run,
	}
	root.Flags().StringVarP(&cfgFile, "config", "C", "", "declared topology seed file (YAML)")
	root.Flags().StringVarP(&apiPort, "port", "p", "4444", "admin HTTP listen port")
	root.Flags().Int64VarP(&updateIntervalSec, "interval", "i", 30, "update-loop interval, seconds")
	root.Flags().StringVarP(&strategyName, "strategy", "s", "disaster-aware", "route strategy: dijkstra | disaster-aware")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("component", "dresnetd").Logger()
	if verbose {
		log = log.Level(zerolog.DebugLevel)
		gizmos.SetLevel(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	strategy, err := parseStrategy(strategyName)
	if err != nil {
		return err
	}

	// The OpenFlow wire driver is an external collaborator; this stub logs
	// what it would have sent so the process is demonstrable end to end
	// without one.
	transport := newLoggingTransport(log)

	core := controller.NewCore(strategy, updateIntervalSec, transport, log)
	defer core.Close()

	if cfgFile != "" {
		seed, err := config.LoadSeed(cfgFile)
		if err != nil {
			return err
		}
		if err := config.Apply(seed, core); err != nil {
			return err
		}
		log.Info().Str("file", cfgFile).Msg("declared topology loaded")
	}

	server := adminapi.NewServer(core, log)
	log.Info().Str("port", apiPort).Str("strategy", strategy.String()).Msg("admin http api listening")
	return http.ListenAndServe(":"+apiPort, server.Handler())
}

func parseStrategy(name string) (routecalc.Strategy, error) {
	switch name {
	case "dijkstra":
		return routecalc.StrategyDijkstra, nil
	case "disaster-aware", "":
		return routecalc.StrategyDisasterAware, nil
	default:
		return 0, fmt.Errorf("dresnetd: unknown strategy %q", name)
	}
}
