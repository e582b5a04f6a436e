package stats

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/ldhishere/judo-diary/internal/diary"
	"github.com/ldhishere/judo-diary/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

const pieTopSlices = 5

// PieSliceOtherName labels the slice folding everything beyond the top ranks
const PieSliceOtherName = "other"

type logsRepo interface {
	ListAll(ctx context.Context) ([]diary.TrainingLog, error)
}

// Analyzer derives the journal statistics from the raw log collection.
// Every method is a pure read, the repo is never written to.
type Analyzer struct {
	repo logsRepo

	// NowFunc is replaceable in tests
	NowFunc func() time.Time
}

func NewAnalyzer(repo logsRepo) *Analyzer {
	return &Analyzer{
		repo:    repo,
		NowFunc: time.Now,
	}
}

// TechniqueFrequency computes, for every technique appearing in the window,
// on how many training days it was practiced. A technique repeated within
// one day still counts once. Percentage is the share of the window's
// training days, rounded per row, so percentages need not sum to 100.
// Rows come sorted by count descending, equal counts by name ascending.
func (a *Analyzer) TechniqueFrequency(ctx context.Context, window Window) ([]TechniqueStats, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.diary.techniqueFrequency")
	defer span.End()

	logs, err := a.windowLogs(ctx, window)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, tl := range logs {
		for _, technique := range tl.TechniqueList() {
			counts[technique]++
		}
	}

	totalDays := len(logs)
	techniqueStats := make([]TechniqueStats, 0, len(counts))
	for name, count := range counts {
		techniqueStats = append(techniqueStats, TechniqueStats{
			Name:       name,
			Count:      count,
			Percentage: int(math.Round(float64(count) / float64(totalDays) * 100)),
		})
	}

	sort.Slice(techniqueStats, func(i, j int) bool {
		if techniqueStats[i].Count != techniqueStats[j].Count {
			return techniqueStats[i].Count > techniqueStats[j].Count
		}
		return techniqueStats[i].Name < techniqueStats[j].Name
	})

	return techniqueStats, nil
}

// PieChart derives the circular sectors for the top techniques of the
// window. Slice fractions come from the share of all technique day
// occurrences. With more than five techniques the rest folds into a single
// "other" slice whose end boundary sits at angle zero, closing the circle
// exactly no matter how the top shares round.
func (a *Analyzer) PieChart(ctx context.Context, window Window) ([]PieSlice, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.diary.pieChart")
	defer span.End()

	techniqueStats, err := a.TechniqueFrequency(ctx, window)
	if err != nil {
		return nil, err
	}
	if len(techniqueStats) == 0 {
		return []PieSlice{}, nil
	}

	totalInstances := 0
	for _, ts := range techniqueStats {
		totalInstances += ts.Count
	}

	topStats := techniqueStats
	if len(topStats) > pieTopSlices {
		topStats = topStats[:pieTopSlices]
	}

	cumulative := 0.0
	slices := make([]PieSlice, 0, len(topStats)+1)
	for _, ts := range topStats {
		fraction := float64(ts.Count) / float64(totalInstances)
		startX, startY := math.Cos(2*math.Pi*cumulative), math.Sin(2*math.Pi*cumulative)
		cumulative += fraction
		endX, endY := math.Cos(2*math.Pi*cumulative), math.Sin(2*math.Pi*cumulative)
		slices = append(slices, PieSlice{
			Name:     ts.Name,
			Fraction: fraction,
			StartX:   startX,
			StartY:   startY,
			EndX:     endX,
			EndY:     endY,
			LargeArc: fraction > 0.5,
		})
	}

	if len(techniqueStats) > pieTopSlices {
		fraction := 1 - cumulative
		slices = append(slices, PieSlice{
			Name:     PieSliceOtherName,
			Fraction: fraction,
			StartX:   math.Cos(2 * math.Pi * cumulative),
			StartY:   math.Sin(2 * math.Pi * cumulative),
			// end at angle zero, not at an independently rounded cumulative
			EndX:     1,
			EndY:     0,
			LargeArc: fraction > 0.5,
		})
	}

	return slices, nil
}

// DailySeries produces one entry per calendar day of the given month. Days
// without a log carry nil scores, never an interpolated value.
func (a *Analyzer) DailySeries(ctx context.Context, year int, month time.Month) ([]DailyPoint, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.diary.dailySeries")
	defer span.End()

	logs, err := a.windowLogs(ctx, MonthOf(year, month))
	if err != nil {
		return nil, err
	}

	logPerDay := make(map[int]diary.TrainingLog)
	for _, tl := range logs {
		day, err := tl.Day()
		if err != nil {
			continue
		}
		logPerDay[day.Day()] = tl
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	series := make([]DailyPoint, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		point := DailyPoint{Day: day}
		if tl, ok := logPerDay[day]; ok {
			normalized := tl.Normalized()
			condition := conditionScores[normalized.Condition]
			intensity := intensityScores[normalized.Intensity]
			point.Condition = &condition
			point.Intensity = &intensity
		}
		series = append(series, point)
	}

	return series, nil
}

// YearlyTrend produces twelve entries, one per month of the given year,
// with the average condition and intensity scores over that month's logs.
// Months without logs yield nil averages, not zero.
func (a *Analyzer) YearlyTrend(ctx context.Context, year int) ([]MonthlyTrendPoint, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.diary.yearlyTrend")
	defer span.End()

	logs, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type monthAccumulator struct {
		conditionSum float64
		intensitySum float64
		count        int
	}
	perMonth := make(map[time.Month]*monthAccumulator)

	for _, tl := range logs {
		day, err := tl.Day()
		if err != nil {
			log.Tracef("yearly trend: skipping log with invalid date [%s]", tl.Date)
			continue
		}
		if day.Year() != year {
			continue
		}
		normalized := tl.Normalized()
		acc := perMonth[day.Month()]
		if acc == nil {
			acc = &monthAccumulator{}
			perMonth[day.Month()] = acc
		}
		acc.conditionSum += conditionScores[normalized.Condition]
		acc.intensitySum += intensityScores[normalized.Intensity]
		acc.count++
	}

	trend := make([]MonthlyTrendPoint, 0, 12)
	for month := time.January; month <= time.December; month++ {
		point := MonthlyTrendPoint{
			Month: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(monthLabelLayout),
		}
		if acc := perMonth[month]; acc != nil {
			avgCondition := acc.conditionSum / float64(acc.count)
			avgIntensity := acc.intensitySum / float64(acc.count)
			point.HasData = true
			point.AvgCondition = &avgCondition
			point.AvgIntensity = &avgIntensity
		}
		trend = append(trend, point)
	}

	return trend, nil
}

// MonthlyActivity counts training days per month over a six month window.
// The window ends at the latest of: the reference month, the current month,
// and the month of the most recent log, so future dated logs are never
// truncated away.
func (a *Analyzer) MonthlyActivity(ctx context.Context, reference time.Time) ([]ActivityBucket, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.diary.monthlyActivity")
	defer span.End()

	logs, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	baseMonth := monthStart(a.NowFunc())
	if refMonth := monthStart(reference); refMonth.After(baseMonth) {
		baseMonth = refMonth
	}

	countPerMonth := make(map[time.Time]int)
	for _, tl := range logs {
		day, err := tl.Day()
		if err != nil {
			log.Tracef("monthly activity: skipping log with invalid date [%s]", tl.Date)
			continue
		}
		logMonth := monthStart(day)
		countPerMonth[logMonth]++
		if logMonth.After(baseMonth) {
			baseMonth = logMonth
		}
	}

	buckets := make([]ActivityBucket, 0, 6)
	for i := 5; i >= 0; i-- {
		month := baseMonth.AddDate(0, -i, 0)
		buckets = append(buckets, ActivityBucket{
			Month: month.Format(monthLabelLayout),
			Count: countPerMonth[month],
		})
	}

	return buckets, nil
}

// ConditionSummary counts the window's logs per reported condition,
// missing or unknown values landing on normal
func (a *Analyzer) ConditionSummary(ctx context.Context, window Window) (*ConditionCounts, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.diary.conditionSummary")
	defer span.End()

	logs, err := a.windowLogs(ctx, window)
	if err != nil {
		return nil, err
	}

	counts := &ConditionCounts{}
	for _, tl := range logs {
		switch tl.Normalized().Condition {
		case diary.ConditionBad:
			counts.Bad++
		case diary.ConditionNormal:
			counts.Normal++
		case diary.ConditionGood:
			counts.Good++
		case diary.ConditionGreat:
			counts.Great++
		}
	}

	return counts, nil
}

// windowLogs lists the store and keeps the logs whose day falls inside the
// window. Logs with unparsable dates are skipped, they can never land in a
// calendar bucket anyway.
func (a *Analyzer) windowLogs(ctx context.Context, window Window) ([]diary.TrainingLog, error) {
	logs, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]diary.TrainingLog, 0, len(logs))
	for _, tl := range logs {
		day, err := tl.Day()
		if err != nil {
			log.Tracef("skipping log with invalid date [%s]", tl.Date)
			continue
		}
		if window.contains(day) {
			filtered = append(filtered, tl)
		}
	}
	return filtered, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
