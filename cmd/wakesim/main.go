// Command wakesim tracks a bunch through the induced voltage of a set of
// resonators and impedance tables described by an INI file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/RyanBlaney/wakefield/logging"
	"github.com/RyanBlaney/wakefield/simulation"
)

func main() {
	var (
		configPath, plotPath string
		exampleConfig        bool
		verbose, noColor     bool
	)
	flag.StringVar(&configPath, "config", "", "Configuration file for the run.")
	flag.StringVar(&plotPath, "plot", "", "Write the wake and the final induced voltage to this image.")
	flag.BoolVar(&exampleConfig, "example", false, "Print an example configuration file to stdout.")
	flag.BoolVar(&verbose, "v", false, "Log debug messages.")
	flag.BoolVar(&noColor, "no-color", false, "Disable colored log output.")
	flag.Parse()

	if exampleConfig {
		fmt.Println(simulation.ExampleConfigFile)
		return
	}
	if configPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if noColor {
		logging.DisableColors()
	}
	if verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	cfg, err := simulation.ReadConfig(configPath)
	if err != nil {
		logging.Fatal(err, "Invalid configuration", logging.Fields{"config": configPath})
	}

	sim, err := simulation.New(cfg)
	if err != nil {
		logging.Fatal(err, "Setup failed")
	}
	if err := sim.Run(); err != nil {
		logging.Fatal(err, "Run failed")
	}

	if plotPath != "" {
		if err := sim.WritePlot(plotPath); err != nil {
			logging.Fatal(err, "Plot failed", logging.Fields{"plot": plotPath})
		}
		logging.Info("Plot written", logging.Fields{"plot": plotPath})
	}
}
