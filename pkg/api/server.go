package api

import (
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/api/routes"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	SlackToken  string
	TriggerWord string
}

func NewApp(announcer routes.Announcer, options Options) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	webApp.Get("version", routes.APIVersion)

	routes.SlackRouter(webApp.Group("/slack", EnsureSlackToken(options.SlackToken)), announcer, options.TriggerWord)

	return webApp
}

// SetupServer serves until SIGINT or SIGTERM and returns once in-flight
// requests have finished.
func SetupServer(listen string, announcer routes.Announcer, options Options) error {
	listener, err := net.Listen("tcp", listen)
	if err != nil {
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	return Serve(NewApp(announcer, options), listener, signals)
}

func Serve(webApp *fiber.App, listener net.Listener, signals <-chan os.Signal) error {
	errs := make(chan error, 1)
	go func() {
		errs <- webApp.Listener(listener)
	}()

	select {
	case err := <-errs:
		return err
	case sig := <-signals:
		log.Info().Str("signal", sig.String()).Msg("Shutting down web api")
		return webApp.ShutdownWithTimeout(shutdownTimeout)
	}
}
