package api

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/announcer"
	"github.com/travigo/expolly/pkg/config"
	"github.com/travigo/expolly/pkg/elastic_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the Slack webhook API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:    "config",
						Usage:   "path to a YAML config file",
						EnvVars: []string{"EXPOLLY_CONFIG"},
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}
					if cfg.SlackToken == "" {
						return errors.New("EXPOLLY_SLACK_TOKEN must be set to run the web api")
					}

					routeAnnouncer, err := announcer.Setup(c.Context, cfg)
					if err != nil {
						return err
					}

					log.Info().Str("listen", c.String("listen")).Msg("Starting web api")

					err = SetupServer(c.String("listen"), routeAnnouncer, Options{
						SlackToken:  cfg.SlackToken,
						TriggerWord: cfg.TriggerWord,
					})

					if closeErr := routeAnnouncer.Close(); closeErr != nil {
						log.Error().Err(closeErr).Msg("Failed to close audio storage")
					}
					elastic_client.WaitUntilQueueEmpty()

					return err
				},
			},
		},
	}
}
