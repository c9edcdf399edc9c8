// Package main is the Henkan CLI entry point.
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

	"github.com/hyperjump/henkan/internal/config"
	"github.com/hyperjump/henkan/internal/convert"
	"github.com/hyperjump/henkan/internal/server"
	"github.com/hyperjump/henkan/internal/watcher"
	"github.com/hyperjump/henkan/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/henkan/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. A missing default config is not an error: built-in defaults
// apply. The second return value is the path the config was actually read
// from, empty when running on built-in defaults (there is then no file to
// persist changes back to).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, err := config.Load(fallback)
				return cfg, fallback, err
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

// buildConverter assembles a Converter from config, with mode overriding the
// configured error mode when non-empty.
func buildConverter(cfg *config.Config, mode string, logger *zap.Logger) *convert.Converter {
	if mode == "" {
		mode = cfg.Convert.ErrorMode
	}
	opts := []convert.ConverterOption{
		convert.WithErrorMode(convert.ParseErrorMode(mode)),
		convert.WithMaxDepth(cfg.Convert.MaxDepth),
		convert.WithMaxArchiveBytes(cfg.Convert.MaxArchiveBytes),
	}
	if logger != nil {
		opts = append(opts, convert.WithLogger(logger))
	}
	return convert.NewConverter(opts...)
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
	case "convert":
		runConvert()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("henkan version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-entry archive progress, request details)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	conv := buildConverter(cfg, "", logger)

	// The server always runs a watcher so directories can be managed over the
	// API; with no configured roots it just sits idle. Artifacts written from
	// watch events carry failures inline, as in watch mode.
	watchConv := buildConverter(cfg, "inline", logger)
	watchOpts := []watcher.WatcherOption{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.NewWatcher(
		cfg.Watch.Directories,
		cfg.Watch.Extensions,
		cfg.Watch.RecursiveOrDefault(),
		func(path string) {
			artifact, err := writeArtifact(watchConv, path, cfg.Watch.OutputDir)
			if err != nil {
				logger.Warn("watch convert failed", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("converted", zap.String("source", path), zap.String("artifact", artifact))
		},
		watchOpts...,
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	watchSvc.SyncExistingFiles()

	srv := server.NewServer(conv, cfg, logger, watchSvc, resolvedConfigPath)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
	watchCancel()
	watchSvc.Stop()
}

func runConvert() {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	mode := fs.String("mode", "inline", "error mode: inline (error sentence in output) or empty")
	output := fs.String("output", "", "write result to this file instead of stdout")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: henkan convert [flags] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		os.Exit(1)
	}

	conv := buildConverter(cfg, *mode, nil)
	text := conv.Convert(filepath.Base(path), content)

	if *output == "" {
		fmt.Println(text)
		return
	}
	if err := os.WriteFile(*output, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *output)
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (file events, debounced conversions)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if len(cfg.Watch.Directories) == 0 {
		fmt.Println("No watch directories configured (watch.directories in config)")
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Watch mode writes artifacts non-interactively, so failures go inline
	// into the artifact where they are visible.
	conv := buildConverter(cfg, "inline", logger)

	watchOpts := []watcher.WatcherOption{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.NewWatcher(
		cfg.Watch.Directories,
		cfg.Watch.Extensions,
		cfg.Watch.RecursiveOrDefault(),
		func(path string) {
			artifact, err := writeArtifact(conv, path, cfg.Watch.OutputDir)
			if err != nil {
				logger.Warn("watch convert failed", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("converted", zap.String("source", path), zap.String("artifact", artifact))
		},
		watchOpts...,
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	watchSvc.SyncExistingFiles()
	logger.Info("watching", zap.Strings("directories", cfg.Watch.Directories))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	watchCancel()
	watchSvc.Stop()
}

// writeArtifact converts the file at path and writes converted_<base>.txt to
// outputDir (or next to the source when outputDir is empty). Returns the
// artifact path.
func writeArtifact(conv *convert.Converter, path string, outputDir string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	text := conv.Convert(filepath.Base(path), content)

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(path)
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	artifact := filepath.Join(dir, utils.DownloadName(path))
	if err := os.WriteFile(artifact, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", artifact, err)
	}
	return artifact, nil
}

func printUsage() {
	fmt.Println(`henkan - File-to-text converter (DOCX, XLSX, PPTX, HTML, ZIP, TXT)

Usage:
  henkan server [flags]           Start the HTTP API
  henkan convert [flags] <file>   Convert one file to text
  henkan watch [flags]            Convert files dropped into watched directories
  henkan version                  Show version
  henkan help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/henkan/config.yaml)
  --debug            Enable debug logging (per-entry archive progress, request details)

Convert Flags:
  --config string    Config file path
  --mode string      Error mode: inline or empty (default: inline)
  --output string    Write result to this file instead of stdout

Watch Flags:
  --config string    Config file path
  --debug            Enable debug logging (file events, debounced conversions)

Examples:
  henkan server
  henkan convert report.docx
  henkan convert --output report.txt bundle.zip
  henkan watch --debug`)
}
