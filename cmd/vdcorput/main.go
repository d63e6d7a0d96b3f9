// Package main is the vdcorput CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/expmath/vdcorput/internal/bounds"
	"github.com/expmath/vdcorput/internal/catalog"
	"github.com/expmath/vdcorput/internal/config"
	"github.com/expmath/vdcorput/internal/exponent"
	"github.com/expmath/vdcorput/internal/hypothesis"
	"github.com/expmath/vdcorput/internal/knowledge"
	"github.com/expmath/vdcorput/internal/loader"
	"github.com/expmath/vdcorput/internal/server"
	"github.com/expmath/vdcorput/internal/storage"
	"github.com/expmath/vdcorput/internal/watcher"
	"github.com/expmath/vdcorput/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/vdcorput/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if
// that exists it is used. Returns the config and the path that was
// actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "prove":
		runProve()
	case "derive":
		runDerive()
	case "list":
		runList()
	case "version", "--version", "-v":
		fmt.Printf("vdcorput version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`vdcorput - exponent pair prover for the van der Corput method

Usage:
  vdcorput server [-config path] [-debug]        run the HTTP API server
  vdcorput prove -k K -l L [flags]               prove that (K, L) is an exponent pair
  vdcorput derive [flags]                        expand the known pairs under all transforms
  vdcorput list [-kind kind]                     list the known hypotheses
  vdcorput version                               print version

Rationals are written exactly, e.g. -k 13/84 -l 55/84.
`)
}

// buildKnowledge assembles the working set: built-in hypotheses, the
// stored knowledge base when present, and any knowledge files on disk.
func buildKnowledge(cfg *config.Config, logger *zap.Logger) (*hypothesis.Set, error) {
	set := knowledge.DefaultSet()

	if cfg.Storage.DatabasePath != "" {
		if _, err := os.Stat(cfg.Storage.DatabasePath); err == nil {
			store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
			if err != nil {
				return nil, err
			}
			defer store.Close()
			stored, err := store.LoadSet(context.Background())
			if err != nil {
				return nil, err
			}
			added := set.Add(stored.All()...)
			logger.Debug("loaded stored hypotheses",
				zap.String("path", cfg.Storage.DatabasePath), zap.Int("added", added))
		}
	}

	if cfg.Knowledge.Dir != "" {
		ld := loader.New(bounds.NewEvaluator(cfg.Numerics.PrecisionBits))
		hs, err := ld.LoadDir(cfg.Knowledge.Dir)
		if err != nil {
			return nil, err
		}
		added := set.Add(hs...)
		logger.Debug("loaded knowledge files",
			zap.String("dir", cfg.Knowledge.Dir), zap.Int("added", added))
	}
	return set, nil
}

func newProver(cfg *config.Config, logger *zap.Logger) *exponent.Prover {
	return exponent.NewProver(
		exponent.WithLogger(logger),
		exponent.WithExpandOptions(exponent.ExpandOptions{
			Depth: cfg.Closure.SearchDepth,
			Prune: cfg.Closure.PruneOrDefault(),
		}),
	)
}

func mustSetup(configPath string, debugFlag bool) (*config.Config, *zap.Logger) {
	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || debugFlag)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded", zap.String("config_path", resolved))
	return cfg, logger
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := mustSetup(*configPath, *debug)
	defer logger.Sync()

	set, err := buildKnowledge(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load knowledge base", zap.Error(err))
	}
	cat, err := catalog.NewIndex(set)
	if err != nil {
		logger.Fatal("Failed to build catalog", zap.Error(err))
	}

	srv := server.NewServer(set, cat, newProver(cfg, logger), &cfg.Server, logger)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Knowledge.Dir != "" && cfg.Knowledge.WatchOrDefault() {
		w := watcher.New(cfg.Knowledge.Dir, func() {
			newSet, err := buildKnowledge(cfg, logger)
			if err != nil {
				logger.Warn("knowledge reload failed", zap.Error(err))
				return
			}
			newCat, err := catalog.NewIndex(newSet)
			if err != nil {
				logger.Warn("catalog rebuild failed", zap.Error(err))
				return
			}
			srv.Reload(newSet, newCat)
		}, watcher.WithLogger(logger))
		if err := w.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runProve() {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	kStr := fs.String("k", "", "k component of the target pair (rational, e.g. 13/84)")
	lStr := fs.String("l", "", "l component of the target pair (rational, e.g. 55/84)")
	strategy := fs.String("strategy", "", "optimization strategy: date, complexity or none (default: plain optimized search)")
	optimize := fs.Bool("optimize", true, "minimize the citation set (ignored when -strategy is set)")
	save := fs.Bool("save", false, "store the resulting hypothesis in the knowledge database")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	if *kStr == "" || *lStr == "" {
		fmt.Println("both -k and -l are required")
		fs.PrintDefaults()
		os.Exit(1)
	}
	k, err := utils.ParseRat(*kStr)
	if err != nil {
		fmt.Printf("Invalid -k: %v\n", err)
		os.Exit(1)
	}
	l, err := utils.ParseRat(*lStr)
	if err != nil {
		fmt.Printf("Invalid -l: %v\n", err)
		os.Exit(1)
	}

	cfg, logger := mustSetup(*configPath, *debug)
	defer logger.Sync()

	set, err := buildKnowledge(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load knowledge base", zap.Error(err))
	}
	prover := newProver(cfg, logger)

	var proof *hypothesis.Hypothesis
	if *strategy != "" {
		proof, err = prover.FindBestProof(k, l, set, exponent.Strategy(*strategy))
	} else {
		proof, err = prover.FindProof(k, l, set, *optimize)
	}
	if err != nil {
		fmt.Printf("Proof search failed: %v\n", err)
		os.Exit(1)
	}
	if proof == nil {
		fmt.Printf("No result: (%s, %s) is outside the currently provable region.\n",
			k.RatString(), l.RatString())
		os.Exit(2)
	}

	fmt.Printf("%s\n", proof.Name)
	fmt.Printf("  %s\n", proof.Proof)
	fmt.Printf("  Reference: %s\n", proof.Ref)
	printDependencies(proof, "  ")

	if *save {
		store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
		if err != nil {
			logger.Fatal("Failed to open knowledge database", zap.Error(err))
		}
		defer store.Close()
		set.Add(proof)
		if err := store.SaveSet(context.Background(), set); err != nil {
			logger.Fatal("Failed to save knowledge database", zap.Error(err))
		}
		fmt.Printf("Saved to %s\n", cfg.Storage.DatabasePath)
	}
}

func printDependencies(h *hypothesis.Hypothesis, indent string) {
	for _, d := range h.Dependencies {
		fmt.Printf("%s- %s [%s]\n", indent, d.Name, d.Ref)
		printDependencies(d, indent+"  ")
	}
}

func runDerive() {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	depth := fs.Int("depth", 0, "closure depth (default: from config)")
	prune := fs.Bool("prune", true, "prune to convex hull vertices after each round")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := mustSetup(*configPath, *debug)
	defer logger.Sync()

	set, err := buildKnowledge(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	opts := exponent.ExpandOptions{Depth: cfg.Closure.SearchDepth, Prune: *prune}
	if *depth > 0 {
		opts.Depth = *depth
	}

	derived := set.Copy()
	derived.Add(exponent.FromBetaBounds(derived)...)
	derived.Add(exponent.Expand(derived, opts)...)

	pairs := derived.ListKind(hypothesis.KindExponentPair)
	fmt.Printf("%d exponent pairs after closure (depth %d, prune %v):\n", len(pairs), opts.Depth, opts.Prune)
	for _, h := range pairs {
		fmt.Printf("  %s  [%s]\n", h.Payload.(*exponent.Pair), h.Ref)
	}
}

func runList() {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	kind := fs.String("kind", "", "filter by kind: exponent-pair, exponent-pair-transform, beta-bound")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := mustSetup(*configPath, *debug)
	defer logger.Sync()

	set, err := buildKnowledge(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	var hs []*hypothesis.Hypothesis
	if *kind != "" {
		hs = set.ListKind(hypothesis.Kind(*kind))
	} else {
		hs = set.All()
	}
	for _, h := range hs {
		fmt.Printf("%-26s %s [%s]\n", h.Kind, h.Name, h.Ref)
	}
	fmt.Printf("%d hypotheses\n", len(hs))
}
