package itinerary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fare(amount int) *int {
	return &amount
}

func TestRenderDirectCourse(t *testing.T) {
	itinerary, err := Extract(loadResultSet(t, "testdata/direct.json"), SelectFirst)
	require.NoError(t, err)

	expected := "新宿駅を08:07にＪＲ山手線内回り・品川行きにて出発すると、東京駅には08:23に到着します。片道200円で16分かかります。"

	assert.Equal(t, expected, Render(itinerary))
	assert.Equal(t, Render(itinerary), Render(itinerary))
}

func TestRenderWithTransfers(t *testing.T) {
	itinerary, err := Extract(loadResultSet(t, "testdata/transfers.json"), SelectFirst)
	require.NoError(t, err)

	expected := "吉祥寺駅を07:58にＪＲ中央線快速・東京行きにて出発すると、" +
		"東京タワー停には09:15に都営バス・東98にて到着します。" +
		"片道1080円で77分かかります。" +
		"乗換が途中2回必要で四ツ谷駅、東京駅八重洲口停にて乗り換えてください。"

	assert.Equal(t, expected, Render(itinerary))
}

func TestRenderArrivalTrainClause(t *testing.T) {
	base := Itinerary{
		Fare:            fare(300),
		DurationMinutes: 20,
		StopPoints: []StopPoint{
			{StationName: "渋谷", StationType: StationTypeTrain},
			{StationName: "横浜", StationType: StationTypeTrain},
		},
	}

	sameTrain := base
	sameTrain.LineSegments = []LineSegment{
		{TrainName: "東急東横線・元町・中華街行", DepartureTimestamp: "2024-05-01T09:00:00+09:00", ArrivalTimestamp: "2024-05-01T09:10:00+09:00"},
		{TrainName: "東急東横線・元町・中華街行", DepartureTimestamp: "2024-05-01T09:12:00+09:00", ArrivalTimestamp: "2024-05-01T09:20:00+09:00"},
	}
	assert.Equal(t, 0, strings.Count(Render(&sameTrain), "にて到着します"))

	differentTrain := base
	differentTrain.LineSegments = []LineSegment{
		{TrainName: "東急東横線・菊名行", DepartureTimestamp: "2024-05-01T09:00:00+09:00", ArrivalTimestamp: "2024-05-01T09:10:00+09:00"},
		{TrainName: "ＪＲ横須賀線", DepartureTimestamp: "2024-05-01T09:12:00+09:00", ArrivalTimestamp: "2024-05-01T09:20:00+09:00"},
	}
	rendered := Render(&differentTrain)
	assert.Equal(t, 1, strings.Count(rendered, "ＪＲ横須賀線にて到着します。"))
	assert.Contains(t, rendered, "09:20に")
}

func TestRenderWithoutFare(t *testing.T) {
	itinerary := &Itinerary{
		DurationMinutes: 3,
		LineSegments: []LineSegment{
			{TrainName: "京王線", DepartureTimestamp: "2024-05-01T10:00:00+09:00", ArrivalTimestamp: "2024-05-01T10:03:00+09:00"},
		},
		StopPoints: []StopPoint{
			{StationName: "笹塚", StationType: StationTypeTrain},
			{StationName: "明大前", StationType: StationTypeTrain},
		},
	}

	rendered := Render(itinerary)

	assert.Equal(t, "笹塚駅を10:00に京王線にて出発すると、明大前駅には10:03に到着します。片道運賃不明で3分かかります。", rendered)
	assert.NotContains(t, rendered, "円")
}

func TestRenderTransferClauseOnlyWithTransfers(t *testing.T) {
	itinerary := &Itinerary{
		Fare:            fare(500),
		DurationMinutes: 40,
		TransferCount:   0,
		LineSegments: []LineSegment{
			{TrainName: "A線", DepartureTimestamp: "2024-05-01T10:00:00+09:00", ArrivalTimestamp: "2024-05-01T10:40:00+09:00"},
		},
		StopPoints: []StopPoint{
			{StationName: "甲", StationType: StationTypeTrain},
			{StationName: "乙", StationType: StationTypeWalk},
			{StationName: "丙", StationType: StationTypeTrain},
		},
	}
	assert.NotContains(t, Render(itinerary), "乗換")

	itinerary.TransferCount = 1
	assert.True(t, strings.HasSuffix(Render(itinerary), "乗換が途中1回必要で乙にて乗り換えてください。"))
}

func TestRenderTransferCountWithoutInteriorPoints(t *testing.T) {
	itinerary := &Itinerary{
		Fare:            fare(500),
		DurationMinutes: 40,
		TransferCount:   1,
		LineSegments: []LineSegment{
			{TrainName: "A線", DepartureTimestamp: "2024-05-01T10:00:00+09:00", ArrivalTimestamp: "2024-05-01T10:20:00+09:00"},
			{TrainName: "B線", DepartureTimestamp: "2024-05-01T10:25:00+09:00", ArrivalTimestamp: "2024-05-01T10:40:00+09:00"},
		},
		StopPoints: []StopPoint{
			{StationName: "甲", StationType: StationTypeTrain},
			{StationName: "丙", StationType: StationTypeTrain},
		},
	}

	rendered := Render(itinerary)

	assert.True(t, strings.HasSuffix(rendered, "片道500円で40分かかります。乗換が途中1回必要です。"))
	assert.NotContains(t, rendered, "でにて")
}

func TestStationSuffix(t *testing.T) {
	assert.Equal(t, "駅", StationSuffix(StationTypeTrain))
	assert.Equal(t, "", StationSuffix(StationTypePlane))
	assert.Equal(t, "", StationSuffix(StationTypeShip))
	assert.Equal(t, "", StationSuffix(StationTypeWalk))
	assert.Equal(t, "", StationSuffix(StationTypeStrange))
	assert.Equal(t, "停", StationSuffix(StationTypeOther))

	assert.Equal(t, "羽田空港", StopPoint{StationName: "羽田空港", StationType: StationTypePlane}.Label())
}

func TestTrainDisplayName(t *testing.T) {
	assert.Equal(t, "ＪＲ山手線内回り・品川行き", TrainDisplayName("ＪＲ山手線内回り・品川行"))
	assert.Equal(t, "ＪＲ山手線内回り・品川行き", TrainDisplayName("ＪＲ山手線内回り・品川行き"))
	assert.Equal(t, "京王線", TrainDisplayName("京王線"))
	assert.Equal(t, "", TrainDisplayName(""))
}

func TestClockTime(t *testing.T) {
	assert.Equal(t, "08:07", ClockTime("2024-05-01T08:07:30+09:00"))
	assert.Equal(t, "23:59", ClockTime("2024-05-01T23:59:59-05:00"))
	assert.Equal(t, "08:07", ClockTime("2024-05-01T08:07:30"))

	date, clock := SplitTimestamp("2024-05-01T08:07:30+09:00")
	assert.Equal(t, "2024-05-01", date)
	assert.Equal(t, "08:07:30", clock)
}
