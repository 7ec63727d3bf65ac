package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/skillcheck/internal/app"
	"github.com/abhisek/skillcheck/internal/config"
	"github.com/abhisek/skillcheck/internal/interview"
	"github.com/abhisek/skillcheck/internal/session"
)

// newClient builds the HTTP client for the configured Interview Service.
func newClient(c *config.Config, logger *zap.Logger) *interview.Client {
	return interview.NewClient(interview.ClientConfig{
		BaseURL: c.API.BaseURL,
		Token:   c.API.Token,
		Logger:  logger,
	},
		interview.WithRequestTimeout(c.API.Timeout),
		interview.WithConnTimeout(c.API.ConnTimeout),
	)
}

// newController wires a session controller to the Interview Service.
func newController(c *config.Config, logger *zap.Logger) *session.Controller {
	svc := interview.WithLogging(newClient(c, logger), logger)
	return session.NewController(svc, logger)
}

// runApp launches the TUI.
func runApp(cmd *cobra.Command) error {
	logger.Info("starting interview client", zap.String("api", cfg.API.BaseURL))
	return app.Run(cmd.Context(), newController(cfg, logger))
}
