package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/announcer"
	"github.com/travigo/expolly/pkg/api"
	"github.com/travigo/expolly/pkg/database"
	"github.com/travigo/expolly/pkg/elastic_client"
	"github.com/travigo/expolly/pkg/redis_client"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// Route search timestamps and audio file names are Japan time
	loc, _ := time.LoadLocation("Asia/Tokyo")
	time.Local = loc

	if os.Getenv("EXPOLLY_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("EXPOLLY_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	if err := redis_client.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := elastic_client.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Elasticsearch")
	}

	app := &cli.App{
		Name:        "expolly",
		Description: "Announces train routes between two stations as Japanese speech",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			announcer.RegisterCLI(),
			announcer.RegisterRenderCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
