/*
Package main implements the wordtrie completion server and CLI application.

wordtrie provides prefix-based word storage with frequency ranking: exact
membership tests, the full sorted word list, the k most common words and
the best completion for a prefix. It can run as a msgpack IPC server over
stdin/stdout for editor integration, or as an interactive CLI for testing.

# Usage

Start the server with default settings:

	wordtrie

Load a plain text word list and run in CLI mode with debug logging:

	wordtrie -txt words.txt -c -d

The data directory holds chunked binary files named dict_0001.bin,
dict_0002.bin, etc; they are loaded lazily up to the configured word limit.
A text word list ("word [count]" per line) can be loaded instead with -txt.

# Configuration

Runtime configuration lives in a TOML file that is created with defaults
when missing:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[dict]
	max_words = 50000
	chunk_size = 10000

# Flags

	-data string   Directory containing binary chunk files (default "data/")
	-txt string    Plain text word list to load instead of chunks
	-config string Custom config file path
	-d             Enable debug logging
	-c             Run in CLI mode instead of server mode
	-limit int     Number of suggestions to return
	-prmin int     Minimum prefix length for suggestions
	-prmax int     Maximum prefix length for suggestions
	-no-filter     Disable input filtering
	-words int     Maximum words to load (0 for all)
	-chunk int     Words per chunk for lazy loading
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the engine, loaders and the chosen frontend together;
// the logic lives in the packages.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	binaryDir := flag.String("data", "data/", "Directory containing the binary chunk files")
	textList := flag.String("txt", "", "Plain text word list to load instead of chunks")
	configPathFlag := flag.String("config", "", "Custom config file path")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (shows all raw dictionary entries)")
	wordLimit := flag.Int("words", defaultConfig.Dict.MaxWords, "Maximum number of words to load (use 0 for all words)")
	chunkSize := flag.Int("chunk", defaultConfig.Dict.ChunkSize, "Number of words per chunk for lazy loading")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPathFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	completer := suggest.NewCompleter()

	var loader *dictionary.Loader
	switch {
	case *textList != "":
		added, err := dictionary.ReadWordList(*textList, completer.AddWord)
		if err != nil {
			log.Fatalf("Failed to load word list: %v", err)
		}
		log.Debugf("Loaded %d words from %s", added, *textList)
	default:
		pathResolver, err := utils.NewPathResolver()
		if err != nil {
			log.Fatalf("Failed to initialize path resolver: %v", err)
		}
		resolvedDataDir, err := pathResolver.GetDataDir(*binaryDir)
		if err != nil {
			log.Fatalf("Failed to resolve data dir: (%v)", err)
		}
		log.Debugf("Using data dir at: %s", resolvedDataDir)
		log.Debugf("Init loader: maxWords=[%d], chunkSize=[%d]", *wordLimit, *chunkSize)

		loader = dictionary.NewLoader(resolvedDataDir, *chunkSize, *wordLimit, completer.AddWord)
		if err := loader.Start(); err != nil {
			log.Warnf("No dictionary loaded (%v), starting with an empty trie", err)
			loader = nil
		}
	}
	if loader != nil {
		defer loader.Stop()
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(completer, loader, appConfig)

	showStartupInfo(completer)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// printVersion renders the styled version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ wordtrie ] ranked prefix completions over a frequency trie")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(completer *suggest.Completer) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==========")
	println(" wordtrie ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("words loaded: %d", completer.Len())
	log.Info("status: ready")
	println("==========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
