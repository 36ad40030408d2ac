// cmd/tidepad/main.go
package main

import (
	"fmt"
	stlog "log" // standard log for errors before logger is ready
	"os"

	"github.com/bethropolis/tidepad/internal/app"
	"github.com/bethropolis/tidepad/internal/config"
	"github.com/bethropolis/tidepad/internal/logger"
	"golang.org/x/term"
)

func main() {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(nil)
	args, err := flags.ParseFlags(os.Args[1:])
	if err != nil {
		stlog.Fatalf("Failed to parse flags: %v", err)
	}

	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		os.Exit(0)
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)

	// --- Logger Initialization ---
	logger.EnableFilterDebug(*flags.DebugLog)
	closeLog, err := logger.Setup(cfg.Logger)
	if err != nil {
		stlog.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()

	logger.Infof("Starting %s %s", config.AppName, config.Version)
	if cfgErr != nil {
		logger.Warnf("Config: %v (continuing with defaults)", cfgErr)
	}
	for _, key := range cfg.UnrecognizedKeys() {
		logger.Warnf("Config: unrecognized key %q", key)
	}
	if len(args) > 0 {
		logger.Warnf("Ignoring %d positional argument(s); the editor always starts empty", len(args))
	}

	// Raw mode needs a terminal on both ends.
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintf(os.Stderr, "%s: stdin and stdout must be a terminal\n", config.AppName)
		logger.Fatalf("stdin/stdout is not a terminal")
	}

	// --- Create and Run App ---
	editorApp, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		logger.Fatalf("Error initializing application: %v", err)
	}

	if err := editorApp.Run(); err != nil {
		logger.Fatalf("Application exited with error: %v", err)
	}

	logger.Infof("%s finished.", config.AppName)
}
