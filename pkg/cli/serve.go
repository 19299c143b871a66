package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/doorman/pkg/cli/config"
	httpctrl "github.com/secmon-lab/doorman/pkg/controller/http"
	"github.com/secmon-lab/doorman/pkg/repository/memory"
	"github.com/secmon-lab/doorman/pkg/service/llm"
	"github.com/secmon-lab/doorman/pkg/usecase"
	"github.com/secmon-lab/doorman/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var botProfile string
	var slackCfg config.Slack
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("DOORMAN_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "bot-profile",
			Usage:       "Path to the TOML bot behavior profile",
			Sources:     cli.EnvVars("DOORMAN_BOT_PROFILE"),
			Destination: &botProfile,
		},
	}
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			profile, err := config.LoadBotProfile(botProfile)
			if err != nil {
				return goerr.Wrap(err, "failed to load bot profile")
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack service")
			}
			if !slackCfg.IsWebhookConfigured() {
				return goerr.New("--slack-signing-secret is required for webhook verification")
			}

			// Cards and counters live in process memory only
			repo := memory.New()
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithResponder(profile.ToResponder()),
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				llmSvc, err := llm.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize LLM service")
				}
				ucOpts = append(ucOpts, usecase.WithLLMService(llmSvc))
				logging.Default().Info("LLM replies enabled", "gemini", geminiCfg)
			} else {
				logging.Default().Info("Gemini project not configured, LLM replies disabled")
			}

			uc := usecase.New(repo, slackSvc, ucOpts...)

			// Clear leftover scheduled messages before accepting events
			if channels := profile.Schedule.CleanupChannels; len(channels) > 0 {
				if err := uc.Schedule.Cleanup(ctx, channels); err != nil {
					return goerr.Wrap(err, "scheduled message sweep failed")
				}
			}

			httpHandler := httpctrl.New(
				httpctrl.WithSlackWebhook(httpctrl.NewSlackWebhookHandler(uc.Event), slackCfg.SigningSecret()),
				httpctrl.WithSlackInteraction(httpctrl.NewSlackInteractionHandler(uc.Onboarding)),
				httpctrl.WithSlackCommand(httpctrl.NewSlackCommandHandler(uc.Event)),
			)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
