package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/image-bridge/internal/capi"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("imgbridge - demonstration host for the image bridge")
	fmt.Println()
	fmt.Println("Usage: imgbridge <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  info <path>      Print the dimensions of an image")
	fmt.Println("  rotate           Rotate every image in image_dir through the bridge")
	fmt.Println("                   and save PNGs to results_dir")
	fmt.Println("  conf             Print the effective configuration")
	fmt.Println("  version, -v      Print version information")
	fmt.Println("  help, -h         Print this help message")
	fmt.Println()
	fmt.Printf("Configuration is read from %s if present, then from the environment:\n", ConfigFileName)
	fmt.Println("  IMGBRIDGE_IMAGE_DIR=<dir>      Source images (default assets/images)")
	fmt.Println("  IMGBRIDGE_RESULTS_DIR=<dir>    Output directory, wiped on each run (default results)")
	fmt.Println("  IMGBRIDGE_LOG_LEVEL=debug      Log bridge handle traffic")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("imgbridge %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		usage()
		return
	}

	// Progress goes to stdout, diagnostics to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := loadConfig(ConfigFileName)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.LogLevel == "debug" {
		log.Printf("imgbridge v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		capi.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	switch os.Args[1] {
	case "info":
		if len(os.Args) < 3 {
			log.Fatal("info requires an image path")
		}
		if err := printInfo(os.Stdout, os.Args[2]); err != nil {
			log.Fatalf("Info error: %v", err)
		}
	case "rotate":
		if _, err := rotateAll(os.Stdout, capi.Default, cfg); err != nil {
			log.Fatalf("Rotate error: %v", err)
		}
	case "conf":
		if err := writeConfig(os.Stdout, cfg); err != nil {
			log.Fatalf("Config error: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}
