package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/catalogue/tmdb"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/session"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

const usage = `Usage: marquee [flags] [command]

Commands:
  (none)   browse the catalogue
  login    log in and remember the session
  logout   forget the current session
  whoami   print the logged in user
  setup    store the catalogue API key

Flags:
`

func main() {
	var (
		showVersion bool
		configPath  string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(configPath, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	command := ""
	if len(args) > 0 {
		command = args[0]
	}

	if command == "setup" {
		return runSetupFlow(cfg)
	}

	kv, err := store.NewBoltStore(cfg.Session.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open session storage: %w", err)
	}
	defer kv.Close()

	sessions := session.NewStore(kv,
		session.WithLoginDelay(cfg.Session.LoginDelay),
		session.WithLogger(logger),
	)

	switch command {
	case "login":
		return runLogin(sessions)
	case "logout":
		if err := sessions.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		fmt.Println("✓ Logged out")
		return nil
	case "whoami":
		return runWhoami(sessions)
	case "":
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}

	// Check if configured
	if !cfg.IsConfigured() {
		fmt.Println()
		fmt.Println("No catalogue API key is configured.")
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Create catalogue client
	client := tmdb.NewClient(
		cfg.Catalogue.BaseURL,
		cfg.Catalogue.APIKey,
		cfg.Catalogue.ImageBaseURL,
		cfg.Catalogue.Placeholder,
		tmdb.WithHTTPClient(&http.Client{Timeout: cfg.Catalogue.Timeout}),
		tmdb.WithRateLimit(rate.Limit(cfg.Catalogue.RateLimit), cfg.Catalogue.RateBurst),
		tmdb.WithLogger(logger),
	)

	// Create services
	browseSvc := service.NewBrowseService(client, logger)
	movieSvc := service.NewMovieService(client, logger)
	genreSvc := service.NewGenreService(client, logger)

	// Create TUI model
	model := tui.NewModel(browseSvc, movieSvc, genreSvc, sessions, cfg.UI.CastLimit)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow prompts for the catalogue API key and saves it
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var apiKey string
	for {
		input, err := readSecret(reader, "Enter your TMDB API key: ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		apiKey = strings.TrimSpace(input)
		if apiKey != "" {
			break
		}
		fmt.Println("API key cannot be empty. Please try again.")
	}

	cfg.Catalogue.APIKey = apiKey
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// runLogin prompts for credentials until they are accepted
func runLogin(sessions *session.Store) error {
	if user := sessions.CurrentUser(); user != nil {
		fmt.Printf("Already logged in as %s. Logging in again replaces the session.\n", user.Username)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Username: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		username := strings.TrimSpace(input)
		if username == "" {
			fmt.Println("Username is required.")
			continue
		}

		password, err := readSecret(reader, "Password: ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		user, err := loginWithSpinner(ctx, sessions, username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if user == nil {
			fmt.Println("✗ Invalid username or password")
			fmt.Println()
			continue
		}

		fmt.Printf("✓ Logged in as %s\n", user.Username)
		return nil
	}
}

func runWhoami(sessions *session.Store) error {
	user := sessions.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s (id %s)\n", user.Username, user.ID)
	return nil
}

// readSecret reads a line without echo when stdin is a terminal
func readSecret(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := reader.ReadString('\n')
		return strings.TrimRight(line, "\r\n"), err
	}
	b, err := term.ReadPassword(fd)
	fmt.Println()
	return string(b), err
}

// loginWithSpinner runs the login with a visual spinner
func loginWithSpinner(ctx context.Context, sessions *session.Store, username, password string) (*domain.SessionRecord, error) {
	// Channel to receive result
	type result struct {
		user *domain.SessionRecord
		err  error
	}
	resultCh := make(chan result, 1)

	// Start login in background
	go func() {
		user, err := sessions.Login(ctx, username, password)
		resultCh <- result{user, err}
	}()

	// Spinner animation
	frame := 0

	// Print initial spinner
	fmt.Printf("\r%s Logging in...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			// Clear spinner line
			fmt.Print(clearSpinnerLine)
			return res.user, res.err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Logging in...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
		}
	}
}
