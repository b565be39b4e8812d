package announcer

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/config"
	"github.com/travigo/expolly/pkg/disambiguation"
	"github.com/travigo/expolly/pkg/document"
	"github.com/travigo/expolly/pkg/elastic_client"
	"github.com/travigo/expolly/pkg/itinerary"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "announce",
		Usage: "Search a route and print the announcement",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "origin station name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "destination station name",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "speak",
				Usage: "synthesise and upload the audio",
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML config file",
				EnvVars: []string{"EXPOLLY_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			var options []config.Option
			if !c.Bool("speak") {
				options = append(options, config.WithoutAudio())
			}

			cfg, err := config.Load(c.String("config"), options...)
			if err != nil {
				return err
			}

			announcer, err := Setup(c.Context, cfg)
			if err != nil {
				return err
			}

			reply := announcer.Announce(c.Context, Command{Origin: c.String("from"), Destination: c.String("to")})
			fmt.Fprintln(c.App.Writer, reply.Text)

			if err := announcer.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close audio storage")
			}
			elastic_client.WaitUntilQueueEmpty()

			return nil
		},
	}
}

func RegisterRenderCLI() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render a saved searchCourse response without calling the API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "path to the JSON response",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			file, err := os.Open(c.String("file"))
			if err != nil {
				return err
			}
			defer file.Close()

			decoded, err := document.Decode(file)
			if err != nil {
				return err
			}

			text, err := RenderDocument(c.Context, decoded)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, text)

			return nil
		},
	}
}

// RenderDocument renders a whole searchCourse reply. Error replies give the
// error text without a station lookup.
func RenderDocument(ctx context.Context, decoded any) (string, error) {
	resultSet, ok := document.Get(decoded, "ResultSet")
	if !ok {
		resultSet = decoded
	}

	if errorDocument, ok := document.Get(resultSet, "Error"); ok {
		return disambiguation.Resolve(ctx, errorDocument, "", "", nil), nil
	}

	route, err := itinerary.Extract(resultSet, itinerary.SelectFirst)
	if err != nil {
		return "", err
	}

	return itinerary.Render(route), nil
}
