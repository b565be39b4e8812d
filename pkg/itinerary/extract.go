package itinerary

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/document"
)

const fareSummaryKind = "FareSummary"

// CourseSelector picks the course to announce out of the normalised
// ResultSet.Course list. The list is never empty.
type CourseSelector func(courses []any) any

// SelectFirst announces whichever course the search service listed first.
func SelectFirst(courses []any) any {
	return courses[0]
}

// Extract builds an Itinerary from a searchCourse ResultSet. A nil selector
// means SelectFirst.
func Extract(resultSet any, selectCourse CourseSelector) (*Itinerary, error) {
	if selectCourse == nil {
		selectCourse = SelectFirst
	}

	courses, ok := document.Get(resultSet, "Course")
	if !ok {
		return nil, missing("Course")
	}
	courseList := document.List(courses)
	if len(courseList) == 0 {
		return nil, missing("Course")
	}
	course := selectCourse(courseList)

	route, ok := document.Get(course, "Route")
	if !ok {
		return nil, missing("Route")
	}

	itinerary := &Itinerary{Fare: extractFare(course)}
	var err error

	for _, field := range []string{"timeOther", "timeOnBoard", "timeWalk"} {
		minutes, err := intField(route, "Route."+field, field)
		if err != nil {
			return nil, err
		}
		itinerary.DurationMinutes += minutes
	}

	if itinerary.TransferCount, err = intField(route, "Route.transferCount", "transferCount"); err != nil {
		return nil, err
	}

	if itinerary.LineSegments, err = extractLines(route); err != nil {
		return nil, err
	}

	if itinerary.StopPoints, err = extractPoints(route); err != nil {
		return nil, err
	}

	if err := itinerary.Validate(); err != nil {
		return nil, err
	}

	return itinerary, nil
}

// extractFare returns nil when the course has no usable FareSummary amount.
// A missing or malformed Oneway counts as no fare.
func extractFare(course any) *int {
	prices, ok := document.Get(course, "Price")
	if !ok {
		return nil
	}

	for _, price := range document.List(prices) {
		if kind, _ := document.String(price, "kind"); kind != fareSummaryKind {
			continue
		}

		fare, err := intField(price, "Price.Oneway", "Oneway")
		if err != nil {
			log.Warn().Err(err).Msg("Ignoring unusable fare summary")
			return nil
		}

		return &fare
	}

	return nil
}

func extractLines(route any) ([]LineSegment, error) {
	lines, ok := document.Get(route, "Line")
	if !ok {
		return nil, missing("Route.Line")
	}

	var segments []LineSegment
	for i, line := range document.List(lines) {
		prefix := fmt.Sprintf("Route.Line[%d].", i)

		name, ok := document.String(line, "Name")
		if !ok {
			return nil, missing(prefix + "Name")
		}
		departure, ok := document.String(line, "DepartureState", "Datetime", "text")
		if !ok {
			return nil, missing(prefix + "DepartureState.Datetime.text")
		}
		arrival, ok := document.String(line, "ArrivalState", "Datetime", "text")
		if !ok {
			return nil, missing(prefix + "ArrivalState.Datetime.text")
		}

		segments = append(segments, LineSegment{
			TrainName:          name,
			DepartureTimestamp: departure,
			ArrivalTimestamp:   arrival,
		})
	}

	return segments, nil
}

func extractPoints(route any) ([]StopPoint, error) {
	points, ok := document.Get(route, "Point")
	if !ok {
		return nil, missing("Route.Point")
	}

	var stopPoints []StopPoint
	for i, point := range document.List(points) {
		name, ok := document.String(point, "Station", "Name")
		if !ok {
			return nil, missing(fmt.Sprintf("Route.Point[%d].Station.Name", i))
		}

		stopPoints = append(stopPoints, StopPoint{
			StationName: name,
			StationType: ParseStationType(stationTypeText(point)),
		})
	}

	return stopPoints, nil
}

// Station.Type is a bare string for rail, but an object such as
// {"text": "bus", "detail": "local"} for other modes.
func stationTypeText(point any) string {
	if text, ok := document.String(point, "Station", "Type"); ok {
		return text
	}

	text, _ := document.String(point, "Station", "Type", "text")
	return text
}

func intField(value any, field string, key string) (int, error) {
	text, ok := document.String(value, key)
	if !ok {
		return 0, missing(field)
	}

	number, err := strconv.Atoi(text)
	if err != nil {
		return 0, &DataError{Field: field, Err: err}
	}
	if number < 0 {
		return 0, &DataError{Field: field, Err: fmt.Errorf("negative value %d", number)}
	}

	return number, nil
}
