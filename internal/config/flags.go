package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagScene  = flag.String("scene", "", "Scene file (YAML)")
	flagScript = flag.String("script", "", "Player input script (tengo)")
	flagTicks  = flag.Int("ticks", -1, "Number of ticks to run (0 = until the scene ends)")
	flagDT     = flag.Float64("dt", 0, "Fixed tick length in seconds")
	flagSeed   = flag.Uint64("seed", 0, "Encounter spawn seed")
	flagWatch  = flag.Bool("watch", false, "Rebuild the scene when its files change")
	flagView   = flag.Bool("view", false, "Show the terminal debug view")
	flagLog    = flag.String("log", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Simulation.Scene = *flagScene
	}
	if *flagScript != "" {
		cfg.Simulation.Script = *flagScript
	}
	if *flagTicks >= 0 {
		cfg.Simulation.Ticks = *flagTicks
	}
	if *flagDT > 0 {
		cfg.Simulation.DeltaTime = float32(*flagDT)
	}
	if *flagSeed != 0 {
		cfg.Simulation.Seed = *flagSeed
	}
	if *flagWatch {
		cfg.Simulation.Watch = true
	}
	if *flagView {
		cfg.View.Enabled = true
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
}
