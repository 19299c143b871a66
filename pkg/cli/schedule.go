package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/doorman/pkg/cli/config"
	"github.com/secmon-lab/doorman/pkg/usecase"
	"github.com/secmon-lab/doorman/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSchedule() *cli.Command {
	var slackCfg config.Slack
	var channelID string

	channelFlag := &cli.StringFlag{
		Name:        "channel",
		Usage:       "Target channel ID",
		Required:    true,
		Sources:     cli.EnvVars("DOORMAN_SCHEDULE_CHANNEL"),
		Destination: &channelID,
	}

	newScheduleUC := func() (*usecase.ScheduleUseCase, error) {
		slackSvc, err := slackCfg.Configure()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure slack service")
		}
		return usecase.NewScheduleUseCase(slackSvc), nil
	}

	var text string
	var at time.Time
	postCmd := &cli.Command{
		Name:  "post",
		Usage: "Schedule a message for future delivery",
		Flags: []cli.Flag{
			channelFlag,
			&cli.StringFlag{
				Name:        "text",
				Usage:       "Message text",
				Required:    true,
				Destination: &text,
			},
			&cli.TimestampFlag{
				Name:  "at",
				Usage: "Delivery time (RFC3339)",
				Config: cli.TimestampConfig{
					Layouts: []string{time.RFC3339},
				},
				Required:    true,
				Destination: &at,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := newScheduleUC()
			if err != nil {
				return err
			}

			id, err := uc.Schedule(ctx, channelID, text, at)
			if err != nil {
				return err
			}

			logging.Default().Info("scheduled", "id", id, "channel", channelID, "at", at)
			return nil
		},
	}

	listCmd := &cli.Command{
		Name:  "list",
		Usage: "List pending scheduled messages of a channel",
		Flags: []cli.Flag{channelFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := newScheduleUC()
			if err != nil {
				return err
			}

			msgs, err := uc.List(ctx, channelID)
			if err != nil {
				return err
			}

			for _, msg := range msgs {
				logging.Default().Info("pending",
					"id", msg.ID,
					"channel", msg.ChannelID,
					"post_at", msg.PostAt,
					"text", msg.Text,
				)
			}
			logging.Default().Info("listed scheduled messages", "channel", channelID, "count", len(msgs))
			return nil
		},
	}

	clearCmd := &cli.Command{
		Name:  "clear",
		Usage: "Delete all pending scheduled messages of a channel",
		Flags: []cli.Flag{channelFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := newScheduleUC()
			if err != nil {
				return err
			}

			deleted, err := uc.CleanupChannel(ctx, channelID)
			if err != nil {
				return err
			}

			logging.Default().Info("cleared scheduled messages", "channel", channelID, "deleted", deleted)
			return nil
		},
	}

	return &cli.Command{
		Name:  "schedule",
		Usage: "Manage scheduled messages",
		Flags: slackCfg.Flags(),
		Commands: []*cli.Command{
			postCmd,
			listCmd,
			clearCmd,
		},
	}
}
