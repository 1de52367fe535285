package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Pavelavl/btrees/btree"
	"github.com/Pavelavl/btrees/cli"
	"github.com/Pavelavl/btrees/config"
	"github.com/Pavelavl/btrees/generator"
	"github.com/Pavelavl/btrees/logger"
)

var (
	configPath, variantName, logLevel *string
	degree, seedNumRecords            *int
	shouldSeed                        *bool
)

func main() {
	setupFlags()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	l, err := logger.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	variant, err := btree.ParseVariant(cfg.Tree.Variant)
	if err != nil {
		l.Fatal(err)
	}
	tree, err := btree.New[int](variant, cfg.Tree.Degree, btree.WithLogger(l))
	if err != nil {
		l.Fatal(err)
	}

	gen, err := generator.New(cfg.Generate.Min, cfg.Generate.Max)
	if err != nil {
		l.Fatal(err)
	}
	if *shouldSeed {
		if err := gen.Populate(tree, cfg.Generate.Records); err != nil {
			l.Fatal(err)
		}
		l.WithField("records", cfg.Generate.Records).Info("seeded tree")
	}

	scanner := bufio.NewScanner(os.Stdin)
	demo := cli.NewCli(scanner, os.Stdout, tree, gen, l)
	demo.Start()
}

func setupFlags() {
	configPath = flag.String("config", "", "Path to an ini config file.")
	variantName = flag.String("variant", "", "Tree structure: btree, bplus or bstar. Overrides the config file.")
	degree = flag.Int("degree", 0, "Tree degree t (>= 2). Overrides the config file.")
	logLevel = flag.String("log-level", "", "Log level (debug traces splits). Overrides the config file.")
	shouldSeed = flag.Bool("seed", false, "Seed the tree with random keys created with go-faker.")
	seedNumRecords = flag.Int("records", 0, "Amount of keys to seed the tree with upon startup. Overrides the config file.")
	flag.Usage = func() {
		fmt.Println("\nB-Tree CLI\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cfg *config.Config) {
	if *variantName != "" {
		cfg.Tree.Variant = *variantName
	}
	if *degree != 0 {
		cfg.Tree.Degree = *degree
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *seedNumRecords != 0 {
		cfg.Generate.Records = *seedNumRecords
	}
}
