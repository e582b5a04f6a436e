package stats

import (
	"time"

	"github.com/ldhishere/judo-diary/internal/diary"
)

// fixed score scales, shared by the daily and yearly series
var (
	conditionScores = map[string]float64{
		diary.ConditionBad:    1,
		diary.ConditionNormal: 2,
		diary.ConditionGood:   3,
		diary.ConditionGreat:  4,
	}
	intensityScores = map[string]float64{
		diary.IntensityLow:    1,
		diary.IntensityMedium: 2.5,
		diary.IntensityHigh:   4,
	}
)

// TechniqueStats is one row of the frequency distribution. Count is the
// number of training days the technique appears on, percentage is the share
// of training days in the window, rounded per row.
type TechniqueStats struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// PieSlice is one circular sector of the technique pie, as two boundary
// points on the unit circle plus the svg large arc flag
type PieSlice struct {
	Name     string  `json:"name"`
	Fraction float64 `json:"fraction"`
	StartX   float64 `json:"startX"`
	StartY   float64 `json:"startY"`
	EndX     float64 `json:"endX"`
	EndY     float64 `json:"endY"`
	LargeArc bool    `json:"largeArc"`
}

// DailyPoint is one slot of the densified monthly series, nil scores
// meaning no log exists for that day
type DailyPoint struct {
	Day       int      `json:"day"`
	Condition *float64 `json:"condition"`
	Intensity *float64 `json:"intensity"`
}

// MonthlyTrendPoint is one month of the yearly trend, averages taken only
// over days that have logs
type MonthlyTrendPoint struct {
	Month        string   `json:"month"`
	HasData      bool     `json:"hasData"`
	AvgCondition *float64 `json:"avgCondition"`
	AvgIntensity *float64 `json:"avgIntensity"`
}

// ActivityBucket is one month of the rolling activity histogram
type ActivityBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ConditionCounts breaks the logs of a window down by reported condition,
// missing or unknown values counted as normal
type ConditionCounts struct {
	Bad    int `json:"bad"`
	Normal int `json:"normal"`
	Good   int `json:"good"`
	Great  int `json:"great"`
}

// Window is the aggregation range: a single calendar month, or all time
// (the zero value)
type Window struct {
	year  int
	month time.Month
}

func MonthOf(year int, month time.Month) Window {
	return Window{year: year, month: month}
}

func AllTime() Window {
	return Window{}
}

func (w Window) allTime() bool {
	return w.year == 0
}

func (w Window) contains(day time.Time) bool {
	if w.allTime() {
		return true
	}
	return day.Year() == w.year && day.Month() == w.month
}

const monthLabelLayout = "2006-01"
