package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/skillcheck/internal/config"
	"github.com/abhisek/skillcheck/internal/logging"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "skillcheck",
	Short: "Terminal client for skills assessment interviews",
	Long: `Skillcheck runs a skills assessment interview against an Interview Service.
Questions are a mix of multiple choice and open answers; each answer is
evaluated as you go and a full report is shown at the end.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	addConfigFlags(rootCmd)

	rootCmd.AddCommand(plainCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(versionCmd)
}

func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file")
	flags.String("env-file", "", "Path to a dotenv file (default .env, skipped when missing)")
	flags.String("api-url", "", "Interview Service base URL (overrides SKILLCHECK_API_BASE_URL)")
	flags.String("log-file", "", "Log file path (overrides SKILLCHECK_LOG_FILE)")
	flags.BoolP("verbose", "v", false, "Log at debug level")
}

// setup loads the configuration and opens the log file for every
// subcommand that talks to the service.
func setup(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	l, err := logging.New(c.Log.File, c.Log.Level, verbose)
	if err != nil {
		return err
	}

	cfg, logger = c, l
	logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("api", c.API.BaseURL),
		zap.Duration("timeout", c.API.Timeout),
	)
	return nil
}

// loadConfig layers flags on top of config.Load and validates the result.
// Flags have the highest priority.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	c, err := config.Load(config.Options{File: file, EnvFile: envFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		c.API.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		c.Log.File = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
