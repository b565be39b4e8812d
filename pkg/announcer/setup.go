package announcer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/config"
	"github.com/travigo/expolly/pkg/ekispert"
	"github.com/travigo/expolly/pkg/history"
	"github.com/travigo/expolly/pkg/itinerary"
	"github.com/travigo/expolly/pkg/redis_client"
	"github.com/travigo/expolly/pkg/speech"
	"github.com/travigo/expolly/pkg/storage"
)

const (
	stationCacheExpiration = 24 * time.Hour
	localStationCacheSize  = 256
)

// Setup builds an Announcer from the loaded configuration. The shared
// connections (redis, mongo, elastic) must already be set up.
func Setup(ctx context.Context, cfg *config.Config) (*Announcer, error) {
	stationCache, err := newStationCache()
	if err != nil {
		return nil, err
	}

	announcer := &Announcer{
		Search:       ekispert.NewClient(cfg.Ekispert.URL, cfg.Ekispert.APIKey, ekispert.WithStationCache(stationCache)),
		SelectCourse: itinerary.SelectFirst,
	}

	switch cfg.Speech.Provider {
	case "polly":
		polly, err := speech.NewPolly(ctx, cfg.Speech.PollyRegion, cfg.Speech.PollyVoice)
		if err != nil {
			return nil, fmt.Errorf("polly setup: %w", err)
		}
		announcer.Speech = polly
	case "google":
		google, err := speech.NewGoogle(ctx, cfg.Speech.GoogleCredentials, cfg.Speech.GoogleVoice)
		if err != nil {
			return nil, fmt.Errorf("google text-to-speech setup: %w", err)
		}
		announcer.Speech = google
	default:
		log.Info().Msg("Speech synthesis disabled")
	}

	switch cfg.Storage.Provider {
	case "s3":
		s3Store, err := storage.NewS3(ctx, cfg.Storage.Bucket, cfg.Storage.URLExpiry)
		if err != nil {
			return nil, fmt.Errorf("s3 setup: %w", err)
		}
		announcer.Store = s3Store
	case "gcs":
		gcsStore, err := storage.NewGCS(ctx, cfg.Storage.Bucket, cfg.Storage.GoogleCredentials, cfg.Storage.URLExpiry)
		if err != nil {
			return nil, fmt.Errorf("gcs setup: %w", err)
		}
		announcer.Store = gcsStore
	default:
		log.Info().Msg("Audio storage disabled")
	}

	if recorder := history.NewRecorder(); recorder != nil {
		announcer.History = recorder
	}

	return announcer, nil
}

func newStationCache() (*ekispert.StationCache, error) {
	if redis_client.Client != nil {
		return ekispert.NewRedisStationCache(redis_client.Client, stationCacheExpiration), nil
	}

	return ekispert.NewLocalStationCache(localStationCacheSize)
}
