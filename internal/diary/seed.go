package diary

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var seedIntensities = []string{IntensityLow, IntensityMedium, IntensityHigh}
var seedConditions = []string{ConditionBad, ConditionNormal, ConditionGood, ConditionGreat}

// Seed fills the store with generated training logs between the two days,
// training on roughly four days out of ten. Returns the number of logs
// created.
func Seed(ctx context.Context, api Api, techniquePool []string, from, to time.Time) (int, error) {
	count := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if gofakeit.Float64Range(0, 1) > 0.4 {
			continue
		}

		pool := make([]string, len(techniquePool))
		copy(pool, techniquePool)
		gofakeit.ShuffleStrings(pool)
		picked := pool[:gofakeit.Number(1, 3)]

		trainingLog := TrainingLog{
			Date:       day.Format(DateLayout),
			Techniques: JoinTechniques(picked),
			Notes:      gofakeit.Sentence(gofakeit.Number(5, 12)),
			Intensity:  gofakeit.RandomString(seedIntensities),
			Condition:  gofakeit.RandomString(seedConditions),
		}

		if _, err := api.UpsertByDate(ctx, trainingLog); err != nil {
			return count, fmt.Errorf("seed log for %s: %w", trainingLog.Date, err)
		}
		count++
	}

	return count, nil
}
