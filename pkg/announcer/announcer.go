// Package announcer answers a two-station chat command with a spoken route
// announcement.
package announcer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/disambiguation"
	"github.com/travigo/expolly/pkg/ekispert"
	"github.com/travigo/expolly/pkg/history"
	"github.com/travigo/expolly/pkg/itinerary"
	"github.com/travigo/expolly/pkg/speech"
	"github.com/travigo/expolly/pkg/storage"
)

const (
	OutcomeAnnounced    = "announced"
	OutcomeSearchFailed = "search_failed"

	SearchFailedText  = "route search failed, please try again later"
	InternalErrorText = "internal error: could not read the route search response"

	audioFileExtension = ".mp3"
	fileNameTimeFormat = "20060102-150405"
)

type CourseSearcher interface {
	SearchCourse(ctx context.Context, from string, to string) (*ekispert.Response, error)
	StationLight(ctx context.Context, name string) (any, error)
}

type Recorder interface {
	Record(ctx context.Context, record history.Record) error
}

// Announcer runs one command end to end. Speech, Store and History are
// optional; without Speech or Store the reply is the text alone.
type Announcer struct {
	Search  CourseSearcher
	Speech  speech.Synthesizer
	Store   storage.Store
	History Recorder

	SelectCourse itinerary.CourseSelector
	Now          func() time.Time
}

type Reply struct {
	Text    string
	Outcome string

	Narrative  string
	AudioURL   string
	Resolution *disambiguation.Resolution
}

func (a *Announcer) Announce(ctx context.Context, command Command) Reply {
	reply := a.announce(ctx, command)

	if a.History != nil {
		record := history.Record{
			Timestamp:   a.now(),
			Origin:      command.Origin,
			Destination: command.Destination,
			Outcome:     reply.Outcome,
			Narrative:   reply.Narrative,
			AudioURL:    reply.AudioURL,
		}
		if reply.Resolution != nil {
			record.ErrorCode = reply.Resolution.Code
			record.Candidates = reply.Resolution.Candidates
		}

		// Failures are logged by the recorder and never change the reply
		a.History.Record(ctx, record)
	}

	return reply
}

// HandleText parses a chat message and announces it, returning the reply
// text. Parse failures are answered with the error message.
func (a *Announcer) HandleText(ctx context.Context, text string, triggerWord string) string {
	command, err := ParseCommand(text, triggerWord)
	if err != nil {
		log.Info().Err(err).Str("text", text).Msg("Rejected command")
		return err.Error()
	}

	return a.Announce(ctx, command).Text
}

func (a *Announcer) announce(ctx context.Context, command Command) Reply {
	announceLogger := log.With().Str("origin", command.Origin).Str("destination", command.Destination).Logger()

	response, err := a.Search.SearchCourse(ctx, command.Origin, command.Destination)
	if err != nil {
		announceLogger.Error().Err(err).Msg("Route search failed")
		return Reply{Text: SearchFailedText, Outcome: OutcomeSearchFailed}
	}

	if response.StatusCode != http.StatusOK {
		resolution := disambiguation.Explain(ctx, response.ErrorDocument(), command.Origin, command.Destination, a.Search.StationLight)

		announceLogger.Info().
			Int("status", response.StatusCode).
			Str("code", resolution.Code).
			Str("kind", resolution.Kind.String()).
			Int("candidates", len(resolution.Candidates)).
			Msg("Route search rejected")

		return Reply{
			Text:       resolution.Text,
			Outcome:    resolution.Kind.String(),
			Resolution: &resolution,
		}
	}

	route, err := itinerary.Extract(response.ResultSet, a.SelectCourse)
	if err != nil {
		var dataError *itinerary.DataError
		if errors.As(err, &dataError) {
			announceLogger.Error().Err(err).Str("field", dataError.Field).Msg("Malformed route search response")
		} else {
			announceLogger.Error().Err(err).Msg("Malformed route search response")
		}
		return Reply{Text: InternalErrorText, Outcome: disambiguation.KindDataError.String()}
	}

	announceLogger.Debug().Msg(pretty.Sprint(route))

	narrative := itinerary.Render(route)
	announceLogger.Info().Str("narrative", narrative).Msg("Rendered announcement")

	reply := Reply{
		Text:      narrative,
		Outcome:   OutcomeAnnounced,
		Narrative: narrative,
	}

	audioURL, err := a.publish(ctx, command, narrative)
	if err != nil {
		announceLogger.Error().Err(err).Msg("Failed to publish announcement audio")
		return reply
	}

	if audioURL != "" {
		reply.AudioURL = audioURL
		reply.Text = narrative + "\n" + audioURL
	}

	return reply
}

func (a *Announcer) publish(ctx context.Context, command Command, narrative string) (string, error) {
	if a.Speech == nil || a.Store == nil {
		return "", nil
	}

	audio, err := a.Speech.Synthesize(ctx, narrative)
	if err != nil {
		return "", err
	}

	return a.Store.Put(ctx, FileName(command, a.now()), audio.Data, audio.ContentType)
}

// Close releases the audio store when it holds a client that needs closing.
func (a *Announcer) Close() error {
	if closer, ok := a.Store.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

func (a *Announcer) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}

	return time.Now()
}

// FileName is the object key for an announcement, e.g. 新宿-東京_20240501-080730.mp3.
func FileName(command Command, at time.Time) string {
	return command.Origin + "-" + command.Destination + "_" + at.Format(fileNameTimeFormat) + audioFileExtension
}
