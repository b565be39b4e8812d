// Package disambiguation turns a failed route search into the reply text,
// listing exact station names when one of the requested names was ambiguous.
package disambiguation

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/document"
)

// AmbiguousStationCode is the Ekispert error code for a station name that
// matches several stations.
const AmbiguousStationCode = "E102"

const (
	candidatePrompt    = "\nplease specify with a unique station name.\n"
	candidateSeparator = "　"
)

// Kind classifies why a request could not be announced.
type Kind int

const (
	KindDataError Kind = iota
	KindUpstreamAmbiguity
	KindUpstreamOther
	KindLookupFailure
)

func (k Kind) String() string {
	switch k {
	case KindDataError:
		return "data_error"
	case KindUpstreamAmbiguity:
		return "upstream_ambiguity"
	case KindLookupFailure:
		return "lookup_failure"
	default:
		return "upstream_error"
	}
}

// Classify maps an upstream error code. Codes other than the ambiguous
// station code all fall into KindUpstreamOther.
func Classify(code string) Kind {
	if code == AmbiguousStationCode {
		return KindUpstreamAmbiguity
	}

	return KindUpstreamOther
}

// NameLookup fetches the stationLight ResultSet for a name.
type NameLookup func(ctx context.Context, name string) (any, error)

// CandidateList holds exact station names in the order the lookup returned them.
type CandidateList []string

// Candidates reads Point[].Station.Name out of a stationLight ResultSet.
// Points without a name are skipped.
func Candidates(resultSet any) CandidateList {
	points, ok := document.Get(resultSet, "Point")
	if !ok {
		return nil
	}

	var candidates CandidateList
	for _, point := range document.List(points) {
		if name, ok := document.String(point, "Station", "Name"); ok {
			candidates = append(candidates, name)
		}
	}

	return candidates
}

type Resolution struct {
	Kind       Kind
	Code       string
	Message    string
	Candidates CandidateList

	Text string
}

// Resolve returns the reply text for a searchCourse error document.
func Resolve(ctx context.Context, errorDocument any, originName string, destinationName string, lookup NameLookup) string {
	return Explain(ctx, errorDocument, originName, destinationName, lookup).Text
}

// Explain is Resolve with the classification and candidates kept.
func Explain(ctx context.Context, errorDocument any, originName string, destinationName string, lookup NameLookup) Resolution {
	code, _ := document.String(errorDocument, "code")
	message, ok := document.String(errorDocument, "Message")
	if !ok {
		message, _ = document.String(errorDocument, "message")
	}

	resolution := Resolution{
		Kind:    Classify(code),
		Code:    code,
		Message: message,
		Text:    "response status code is not 200\n" + code + ": " + message,
	}

	if resolution.Kind != KindUpstreamAmbiguity {
		return resolution
	}

	ambiguousName := ambiguousName(message, originName, destinationName)
	if ambiguousName == "" || lookup == nil {
		resolution.Kind = KindLookupFailure
		return resolution
	}

	resultSet, err := lookup(ctx, ambiguousName)
	if err != nil {
		log.Warn().Err(err).Str("name", ambiguousName).Msg("Station lookup failed")
		resolution.Kind = KindLookupFailure
		return resolution
	}

	candidates := Candidates(resultSet)
	if len(candidates) == 0 {
		resolution.Kind = KindLookupFailure
		return resolution
	}

	resolution.Candidates = candidates
	resolution.Text += candidatePrompt + strings.Join(candidates, candidateSeparator)

	return resolution
}

func ambiguousName(message string, originName string, destinationName string) string {
	switch {
	case originName != "" && strings.Contains(message, originName):
		return originName
	case destinationName != "" && strings.Contains(message, destinationName):
		return destinationName
	}

	return ""
}
