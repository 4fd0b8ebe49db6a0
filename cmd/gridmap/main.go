// Package main provides the gridmap command line tool. It reads a table
// declared in the configuration file from a live page or a saved HTML
// snapshot and prints its rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigFile  string
	Table       string
	URL         string
	File        string
	Fields      string
	Start       int
	End         int
	Row         int
	Match       string
	Format      string
	Color       bool
	Copy        bool
	Headless    bool
	Wait        string
	Timeout     time.Duration
	OutputDir   string
	Snapshot    string
	ShowVersion bool
}

func main() {
	// Parse command line flags
	config, err := parseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	// Show version if requested
	if config.ShowVersion {
		fmt.Printf("gridmap v%s\n", version)
		return
	}

	// Create context with signal handling
	ctx, cancel := context.WithCancel(context.Background())

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, config, os.Stdout); err != nil {
		cancel()
		log.Printf("gridmap: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseArgs parses command line flags
func parseArgs(fs *flag.FlagSet, args []string) (*CLIConfig, error) {
	config := &CLIConfig{}

	fs.StringVar(&config.ConfigFile, "config", "", "Path to configuration file (default ~/.gridmap/config.yaml)")
	fs.StringVar(&config.Table, "table", "", "Name of the table definition to read (required)")
	fs.StringVar(&config.URL, "url", "", "Page URL (overrides the table's url)")
	fs.StringVar(&config.File, "file", "", "Read from a saved HTML file instead of a browser")
	fs.StringVar(&config.Fields, "fields", "", "Comma separated field patterns, e.g. 'name,addr*'")
	fs.IntVar(&config.Start, "start", 0, "First row of a range (1-based, inclusive)")
	fs.IntVar(&config.End, "end", 0, "End of a range (1-based, exclusive)")
	fs.IntVar(&config.Row, "row", -1, "Read a single row by 0-based index")
	fs.StringVar(&config.Match, "match", "", "Read the first row containing all comma separated texts")
	fs.StringVar(&config.Format, "format", "table", "Output format: table, json, yaml or markdown")
	fs.BoolVar(&config.Color, "color", false, "Colorize output")
	fs.BoolVar(&config.Copy, "copy", false, "Copy the rendered output to the clipboard")
	fs.BoolVar(&config.Headless, "headless", true, "Run the browser without a window")
	fs.StringVar(&config.Wait, "wait", "", "Selector to wait for before reading")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Browser operation timeout (overrides config)")
	fs.StringVar(&config.OutputDir, "out", "", "Also write json, yaml and markdown artifacts to this directory")
	fs.StringVar(&config.Snapshot, "snapshot", "", "Save the page HTML to this file for later -file runs")
	fs.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "gridmap - read web tables declared in YAML\n\n")
		fmt.Fprintf(out, "Usage: gridmap -table <name> [options]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  # Read a whole table from its configured page\n")
		fmt.Fprintf(out, "  gridmap -table users\n\n")
		fmt.Fprintf(out, "  # Read rows 1-2 of a saved snapshot as JSON\n")
		fmt.Fprintf(out, "  gridmap -table users -file users.html -start 1 -end 3 -format json\n\n")
		fmt.Fprintf(out, "  # Read the row mentioning Bob, name and status only\n")
		fmt.Fprintf(out, "  gridmap -table users -match Bob -fields 'name,status'\n\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return config, nil
}
