package cmd

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/parley/internal/app"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/history"
	"github.com/zhubert/parley/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	chatID                string
	simulateRate          float64
	latency               time.Duration
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "parley [history.json]",
	Short: "Terminal viewer for chat histories",
	Long: `Parley opens a chat history in the terminal. Messages are grouped into
sections of loaded history, and runs of group events or deleted messages
collapse into a single row that can be expanded.

The history file defaults to history_path from ~/.parley/config.json.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVar(&chatID, "chat", "", "ID of the chat to open (defaults to the first)")
	rootCmd.Flags().Float64Var(&simulateRate, "simulate", 0, "Chance per poll of simulated incoming messages (0 disables)")
	rootCmd.Flags().DurationVar(&latency, "latency", 0, "Simulated fetch latency")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("parley %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("parley %s\n", version)
}

// historyPath picks the history file from the arguments or the config.
func historyPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if p := cfg.GetHistoryPath(); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("no history file: pass one as an argument or set history_path in %s", cfg.Path())
}

// loadArchive reads a history file into a fresh archive.
func loadArchive(path string) (*history.Archive, *history.File, error) {
	f, err := history.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	archive := history.NewArchive()
	archive.Add(f)
	archive.SetLatency(latency)
	return archive, f, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	path, err := historyPath(args, cfg)
	if err != nil {
		return err
	}
	archive, f, err := loadArchive(path)
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	opts := []app.Option{app.WithChat(chatID)}
	if simulateRate > 0 {
		target := chatID
		if target == "" {
			target = f.Chat.ID
		}
		opts = append(opts, app.WithFeed(app.NewFeed(archive, target, time.Now().UnixNano(), simulateRate)))
	}

	m := app.New(cfg, archive, opts...)
	defer m.Shutdown()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
