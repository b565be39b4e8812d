package redis_client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/util"
)

// Client stays nil when no redis address is configured.
var Client *redis.Client

const defaultConnectionPassword = ""
const defaultDatabase = 0

func Connect() error {
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	address := env["EXPOLLY_REDIS_ADDRESS"]
	if address == "" {
		log.Info().Msg("Skipping Redis setup")
		return nil
	}

	if env["EXPOLLY_REDIS_PASSWORD"] != "" {
		password = env["EXPOLLY_REDIS_PASSWORD"]
	}

	if env["EXPOLLY_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["EXPOLLY_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	Client = client

	log.Info().Str("address", address).Msg("Redis client setup")

	return nil
}
