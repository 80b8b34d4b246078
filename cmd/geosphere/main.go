// geosphere generates icosahedron-based geodesic spheres and exports them as meshes.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/geosphere/internal/config"
	"github.com/Faultbox/geosphere/internal/logger"
	"github.com/Faultbox/geosphere/pkg/formats"
	"github.com/Faultbox/geosphere/pkg/geosphere"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logOpts := logger.Options{Level: cfg.Logging.Level, Console: os.Stdout}
	if cfg.Logging.LogFile != "" {
		logOpts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
		logOpts.File.JSON = cfg.Logging.JSON
	}
	if err := logger.InitWithOptions(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	gen := geosphere.NewGenerator(
		geosphere.WithWorkers(cfg.Generation.Workers),
		geosphere.WithBatchWidth(cfg.Generation.BatchWidth),
		geosphere.WithLogger(logger.Named("generator")),
	)
	defer gen.Close()

	switch command {
	case "generate", "gen":
		err = cmdGenerate(cfg, gen)
	case "stats":
		err = cmdStats(cfg, gen)
	case "save-config":
		err = cfg.Save()
		if err == nil {
			fmt.Printf("Config saved to %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		gen.Close()
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`geosphere - geodesic sphere generator

Usage:
  geosphere [options] <command>

Commands:
  generate     Generate a sphere and write it to the output file
  stats        Generate a sphere and print its mesh statistics
  save-config  Write the effective config to the user config directory
  help         Show this help

Options:
  -config <file>    Config file (default ./geosphere.yaml)
  -level <n>        Subdivision level 0-8
  -workers <n>      Worker pool size
  -batch <n>        Faces dispatched per batch
  -out <file>       Output path (.obj, .gltf, .glb)
  -format <name>    Output format, overrides the extension
  -debug            Enable debug logging

Examples:
  geosphere -level 5 -out sphere.glb generate
  geosphere -level 3 stats`)
}

func cmdGenerate(cfg *config.Config, gen *geosphere.Generator) error {
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	sphere, err := gen.Generate(cfg.Generation.Level)
	if err != nil {
		return err
	}

	started := time.Now()
	if err := formats.Save(cfg.Output.Path, format, sphere); err != nil {
		return err
	}
	logger.Info("mesh written",
		zap.String("path", cfg.Output.Path),
		zap.String("format", string(format)),
		zap.Duration("took", time.Since(started)))
	return nil
}

func cmdStats(cfg *config.Config, gen *geosphere.Generator) error {
	sphere, err := gen.Generate(cfg.Generation.Level)
	if err != nil {
		return err
	}
	st := geosphere.Analyze(sphere)

	fmt.Printf("Level:          %d\n", st.Level)
	fmt.Printf("Resolution:     %d\n", st.Resolution)
	fmt.Printf("Faces:          %d\n", geosphere.FaceCount)
	fmt.Printf("Vertex copies:  %d\n", st.VertexCopies)
	fmt.Printf("Unique:         %d (expected %d)\n", st.UniqueVertices, geosphere.UniqueVertexCount(st.Resolution))
	fmt.Printf("Triangles:      %d\n", st.Triangles)
	fmt.Printf("Angle defect:   %.6f pi\n", st.AngleDefect/math.Pi)
	fmt.Printf("Max seam gap:   %.3g\n", st.MaxSeamGap)
	fmt.Println()
	fmt.Println("Valence:")

	valences := make([]int, 0, len(st.Valence))
	for v := range st.Valence {
		valences = append(valences, v)
	}
	sort.Ints(valences)
	for _, v := range valences {
		fmt.Printf("  %d  %d\n", v, st.Valence[v])
	}
	return nil
}
