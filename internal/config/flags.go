package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLevel   = flag.Int("level", -1, "Subdivision level (0-8)")
	flagWorkers = flag.Int("workers", 0, "Worker pool size")
	flagBatch   = flag.Int("batch", 0, "Faces dispatched per batch")
	flagOut     = flag.String("out", "", "Output file path")
	flagFormat  = flag.String("format", "", "Output format: obj, gltf or glb")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLevel >= 0 {
		cfg.Generation.Level = *flagLevel
	}
	if *flagWorkers > 0 {
		cfg.Generation.Workers = *flagWorkers
	}
	if *flagBatch > 0 {
		cfg.Generation.BatchWidth = *flagBatch
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
}
