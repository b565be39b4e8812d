// Package itinerary turns an Ekispert searchCourse result into a spoken
// route announcement.
package itinerary

import "fmt"

type StationType int

const (
	StationTypeOther StationType = iota
	StationTypeTrain
	StationTypePlane
	StationTypeShip
	StationTypeWalk
	StationTypeStrange
)

var stationTypeNames = map[string]StationType{
	"train":   StationTypeTrain,
	"plane":   StationTypePlane,
	"ship":    StationTypeShip,
	"walk":    StationTypeWalk,
	"strange": StationTypeStrange,
}

// ParseStationType maps the raw Station.Type value. Anything unknown,
// including bus stops, is StationTypeOther.
func ParseStationType(raw string) StationType {
	if stationType, ok := stationTypeNames[raw]; ok {
		return stationType
	}

	return StationTypeOther
}

func (t StationType) String() string {
	for name, stationType := range stationTypeNames {
		if stationType == t {
			return name
		}
	}

	return "other"
}

type StopPoint struct {
	StationName string
	StationType StationType
}

type LineSegment struct {
	TrainName          string
	DepartureTimestamp string
	ArrivalTimestamp   string
}

// Itinerary is a single course as the announcement needs it. Fare is nil
// when the course carries no FareSummary price.
type Itinerary struct {
	Fare            *int
	DurationMinutes int
	TransferCount   int

	LineSegments []LineSegment
	StopPoints   []StopPoint
}

func (i *Itinerary) Origin() StopPoint {
	return i.StopPoints[0]
}

func (i *Itinerary) Destination() StopPoint {
	return i.StopPoints[len(i.StopPoints)-1]
}

// TransferPoints are the stop points between origin and destination.
func (i *Itinerary) TransferPoints() []StopPoint {
	return i.StopPoints[1 : len(i.StopPoints)-1]
}

func (i *Itinerary) FirstSegment() LineSegment {
	return i.LineSegments[0]
}

func (i *Itinerary) LastSegment() LineSegment {
	return i.LineSegments[len(i.LineSegments)-1]
}

// Validate checks the shape Render relies on.
func (i *Itinerary) Validate() error {
	if len(i.LineSegments) == 0 {
		return &DataError{Field: "Route.Line", Err: fmt.Errorf("no line segments")}
	}
	if len(i.StopPoints) < 2 {
		return &DataError{Field: "Route.Point", Err: fmt.Errorf("expected at least 2 stop points, got %d", len(i.StopPoints))}
	}
	if i.TransferCount < 0 {
		return &DataError{Field: "Route.transferCount", Err: fmt.Errorf("negative transfer count %d", i.TransferCount)}
	}

	return nil
}
