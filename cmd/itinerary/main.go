package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeanpaul/itinerary/internal/assistant"
	"github.com/jeanpaul/itinerary/internal/config"
	"github.com/jeanpaul/itinerary/internal/itinerary"
	"github.com/jeanpaul/itinerary/internal/provider"
	"github.com/jeanpaul/itinerary/internal/tui"
	"github.com/jeanpaul/itinerary/pkg/logger"
	"github.com/jeanpaul/itinerary/pkg/version"
)

// app bundles what every command needs. main builds one and hands it down.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	store    *itinerary.Store
	asst     tui.Assistant
	dataPath string
	out      io.Writer
	theme    string
	// markdown renders assistant replies with glamour when true.
	markdown bool
	// unreadable holds the last failed load of dataPath. While set, the
	// next save moves the file aside instead of overwriting it.
	unreadable error
}

func main() {
	dataFlag := flag.String("data", "", "Data file (default from config, data/destinations.json)")
	providerFlag := flag.String("provider", "", "Provider name (openai, ollama, anthropic, google)")
	modelFlag := flag.String("model", "", "Model name")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("itinerary %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "help":
			showHelp()
			return
		case "config":
			if len(args) < 2 || args[1] != "init" {
				fatal("usage: itinerary config init")
			}
			cmdConfigInit()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %s", err)
	}
	if *dataFlag != "" {
		cfg.DataFile = *dataFlag
	}

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) > 0 {
		switch args[0] {
		case "providers":
			cmdProviders(cfg)
			return
		case "doctor":
			if !cmdDoctor(ctx, cfg) {
				os.Exit(1)
			}
			return
		}
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		store:    itinerary.New(log),
		dataPath: cfg.DataFile,
		out:      os.Stdout,
		theme:    cfg.Theme,
		markdown: isTerminal(os.Stdout),
	}
	a.asst = newGateway(cfg, log, *providerFlag, *modelFlag)
	a.loadAtStartup()

	if len(args) == 0 {
		// Ctrl-C should end a blocked prompt the usual way.
		stop()
		if err := a.runMenu(context.Background(), os.Stdin); err != nil {
			fatal("%s", err)
		}
		return
	}

	if err := a.dispatch(ctx, args[0], args[1:]); err != nil {
		fatal("%s", err)
	}
}

// newGateway wires the configured provider into an assistant gateway. When
// the provider cannot be built the gateway still exists and every call
// answers with the placeholder.
func newGateway(cfg *config.Config, log logger.Logger, provName, modelName string) *assistant.Gateway {
	if provName == "" {
		provName = cfg.DefaultProvider
	}
	if modelName == "" && provName == cfg.DefaultProvider {
		modelName = cfg.DefaultModel
	}

	opts := []assistant.Option{
		assistant.WithLogger(log),
		assistant.WithMaxTokens(cfg.MaxTokens),
		assistant.WithTimeout(cfg.Timeout),
	}
	prov, err := makeProvider(cfg, provName, modelName)
	if err != nil {
		log.Warn("assistant disabled", "provider", provName, "error", err)
		return assistant.New(nil, opts...)
	}
	return assistant.New(provider.WithRetry(prov, cfg.MaxRetries), opts...)
}

func makeProvider(cfg *config.Config, name, modelName string) (provider.Provider, error) {
	pcfg, ok := cfg.ProviderFor(name)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q, configure it in %s", name, config.Path())
	}

	model := modelName
	if model == "" {
		model = pcfg.Model
	}

	switch pcfg.Type {
	case "openai":
		return provider.NewOpenAI(name, pcfg.BaseURL, pcfg.APIKey, model), nil
	case "anthropic":
		if !pcfg.HasKey() {
			return nil, fmt.Errorf("anthropic requires api_key (set ANTHROPIC_API_KEY)")
		}
		return provider.NewAnthropic(pcfg.BaseURL, pcfg.APIKey, model), nil
	case "google":
		if !pcfg.HasKey() {
			return nil, fmt.Errorf("google requires api_key (set GEMINI_API_KEY)")
		}
		return provider.NewGoogle(pcfg.BaseURL, pcfg.APIKey, model), nil
	default:
		return nil, fmt.Errorf("unknown provider type %q", pcfg.Type)
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + tui.TitleStyle.Render("itinerary") + ` - plan and track your trips from the terminal

` + tui.LabelStyle.Render("USAGE:") + `
  itinerary [flags]                  Start the interactive menu
  itinerary [flags] <command> [args] Run a single command

` + tui.LabelStyle.Render("COMMANDS:") + `
  add --city C --country C --start YYYY-MM-DD --end YYYY-MM-DD --budget N --activities "a, b"
  remove <city>                      Remove every destination in that city
  update <city> [--city --country --start --end --budget --activities]
  list [--sort start_date|budget]    Show all destinations
  search <city|country|activity> <keyword>
  plan <city>                        Ask the assistant for a daily itinerary
  tips <city>                        Ask the assistant for budget tips
  browse                             Browse destinations full screen
  export <file.xlsx>                 Write destinations to a spreadsheet
  import <glob>                      Merge destinations from other data files
  providers                          List configured providers
  doctor                             Check provider connectivity
  config init                        Write a default config file
  help                               Show this help

` + tui.LabelStyle.Render("FLAGS:") + `
  --data <path>                      Data file to use
  --provider <name>                  Assistant provider (openai, ollama, anthropic, google)
  --model <name>                     Assistant model
  --version                          Show version
  --help, -h                         Show this help

` + tui.LabelStyle.Render("EXAMPLES:") + `
  itinerary add --city Paris --country France --start 2025-06-01 --end 2025-06-10 --budget 2000 --activities "Museum, Eiffel Tower"
  itinerary list --sort budget
  itinerary search activity museum
  itinerary --provider ollama --model llama3.2 plan Paris
`
	fmt.Println(help)
}
