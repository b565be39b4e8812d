package itinerary

import (
	"strconv"
	"strings"
)

const (
	boundForMarker = "行"
	boundForSuffix = "き"

	otherStationSuffix = "停"
	transferSeparator  = "、"

	// FareUnavailable stands in for the fare amount when the course has no
	// FareSummary price.
	FareUnavailable = "運賃不明"
)

var stationSuffixes = map[StationType]string{
	StationTypeTrain:   "駅",
	StationTypePlane:   "",
	StationTypeShip:    "",
	StationTypeWalk:    "",
	StationTypeStrange: "",
}

// StationSuffix is the word appended to a station name of the given type
// when it is read out.
func StationSuffix(stationType StationType) string {
	if suffix, ok := stationSuffixes[stationType]; ok {
		return suffix
	}

	return otherStationSuffix
}

// Label is the station name as it is read out, e.g. 新宿駅.
func (p StopPoint) Label() string {
	return p.StationName + StationSuffix(p.StationType)
}

// TrainDisplayName completes a name ending in 行 ("bound for") into 行き.
func TrainDisplayName(name string) string {
	if strings.HasSuffix(name, boundForMarker) {
		return name + boundForSuffix
	}

	return name
}

// SplitTimestamp splits 2024-05-01T08:07:30+09:00 into its date and its
// time of day without the UTC offset. No timezone conversion is applied.
func SplitTimestamp(timestamp string) (date string, clock string) {
	date, clock, found := strings.Cut(timestamp, "T")
	if !found {
		return "", timestamp
	}

	if offset := strings.IndexAny(clock, "+-"); offset >= 0 {
		clock = clock[:offset]
	}

	return date, clock
}

// ClockTime returns the HH:MM of a timestamp by dropping everything from
// the last colon of its time of day.
func ClockTime(timestamp string) string {
	_, clock := SplitTimestamp(timestamp)

	if colon := strings.LastIndex(clock, ":"); colon >= 0 {
		return clock[:colon]
	}

	return clock
}

// Render builds the announcement for a validated itinerary.
func Render(itinerary *Itinerary) string {
	departureTrainName := TrainDisplayName(itinerary.FirstSegment().TrainName)
	arrivalTrainName := TrainDisplayName(itinerary.LastSegment().TrainName)

	var sb strings.Builder

	sb.WriteString(itinerary.Origin().Label())
	sb.WriteString("を")
	sb.WriteString(ClockTime(itinerary.FirstSegment().DepartureTimestamp))
	sb.WriteString("に")
	sb.WriteString(departureTrainName)
	sb.WriteString("にて出発すると、")

	sb.WriteString(itinerary.Destination().Label())
	sb.WriteString("には")
	sb.WriteString(ClockTime(itinerary.LastSegment().ArrivalTimestamp))
	sb.WriteString("に")
	if departureTrainName != arrivalTrainName {
		sb.WriteString(arrivalTrainName)
		sb.WriteString("にて")
	}
	sb.WriteString("到着します。")

	sb.WriteString("片道")
	if itinerary.Fare != nil {
		sb.WriteString(strconv.Itoa(*itinerary.Fare))
		sb.WriteString("円")
	} else {
		sb.WriteString(FareUnavailable)
	}
	sb.WriteString("で")
	sb.WriteString(strconv.Itoa(itinerary.DurationMinutes))
	sb.WriteString("分かかります。")

	if itinerary.TransferCount > 0 {
		var labels []string
		for _, point := range itinerary.TransferPoints() {
			labels = append(labels, point.Label())
		}

		sb.WriteString("乗換が途中")
		sb.WriteString(strconv.Itoa(itinerary.TransferCount))
		// Without interior stop points there is no station to name
		if len(labels) == 0 {
			sb.WriteString("回必要です。")
		} else {
			sb.WriteString("回必要で")
			sb.WriteString(strings.Join(labels, transferSeparator))
			sb.WriteString("にて乗り換えてください。")
		}
	}

	return sb.String()
}
