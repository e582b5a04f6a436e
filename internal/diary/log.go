package diary

import (
	"strings"
	"time"
)

// DateLayout is the calendar day format used as the natural key of a training log
const DateLayout = "2006-01-02"

const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"

	ConditionBad    = "bad"
	ConditionNormal = "normal"
	ConditionGood   = "good"
	ConditionGreat  = "great"
)

// TrainingLog is one day's training record. The date is the natural key,
// the id is a surrogate kept stable across edits of the same day.
type TrainingLog struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Techniques string `json:"techniques"`
	Notes      string `json:"notes"`
	Intensity  string `json:"intensity"`
	Condition  string `json:"condition"`
}

// Day parses the log date into a calendar day
func (tl TrainingLog) Day() (time.Time, error) {
	return time.Parse(DateLayout, tl.Date)
}

// TechniqueList parses the comma joined techniques string into a list of
// technique names. Empty segments are dropped, and a technique repeated
// within the same day collapses to a single occurrence (first seen order).
func (tl TrainingLog) TechniqueList() []string {
	if tl.Techniques == "" {
		return nil
	}

	seen := make(map[string]bool)
	var techniques []string
	for _, segment := range strings.Split(tl.Techniques, ",") {
		technique := strings.TrimSpace(segment)
		if technique == "" || seen[technique] {
			continue
		}
		seen[technique] = true
		techniques = append(techniques, technique)
	}
	return techniques
}

// JoinTechniques renders the store representation of a technique list
func JoinTechniques(techniques []string) string {
	return strings.Join(techniques, ", ")
}

// Normalized returns a copy of the log with unknown or missing intensity and
// condition values replaced by their defaults (medium / normal). Aggregations
// always consume normalized logs, so the default substitution lives here and
// nowhere else.
func (tl TrainingLog) Normalized() TrainingLog {
	switch tl.Intensity {
	case IntensityLow, IntensityMedium, IntensityHigh:
	default:
		tl.Intensity = IntensityMedium
	}

	switch tl.Condition {
	case ConditionBad, ConditionNormal, ConditionGood, ConditionGreat:
	default:
		tl.Condition = ConditionNormal
	}

	return tl
}

// ValidDate reports whether the given string is a valid YYYY-MM-DD day
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}
