package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTrainingLog_TechniqueList(t *testing.T) {
	testCases := []struct {
		name       string
		techniques string
		expected   []string
	}{
		{
			name:       "empty",
			techniques: "",
			expected:   nil,
		},
		{
			name:       "single",
			techniques: "Seoi-nage",
			expected:   []string{"Seoi-nage"},
		},
		{
			name:       "multiple with spaces",
			techniques: "Seoi-nage, Uchi-mata,Osoto-gari",
			expected:   []string{"Seoi-nage", "Uchi-mata", "Osoto-gari"},
		},
		{
			name:       "repeats collapse to first occurrence",
			techniques: "Seoi-nage, Uchi-mata, Seoi-nage",
			expected:   []string{"Seoi-nage", "Uchi-mata"},
		},
		{
			name:       "empty segments dropped",
			techniques: "Seoi-nage, , ,Uchi-mata,",
			expected:   []string{"Seoi-nage", "Uchi-mata"},
		},
		{
			name:       "only separators",
			techniques: " , ,, ",
			expected:   nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tl := TrainingLog{Techniques: tc.techniques}
			assert.Equal(t, tc.expected, tl.TechniqueList())
		})
	}
}

func TestJoinTechniques(t *testing.T) {
	assert.Equal(t, "", JoinTechniques(nil))
	assert.Equal(t, "Seoi-nage", JoinTechniques([]string{"Seoi-nage"}))
	assert.Equal(t,
		"Seoi-nage, Uchi-mata",
		JoinTechniques([]string{"Seoi-nage", "Uchi-mata"}),
	)
}

func TestTrainingLog_Normalized(t *testing.T) {
	tl := TrainingLog{
		Date:      "2025-06-01",
		Intensity: "insane",
		Condition: "",
	}

	normalized := tl.Normalized()
	assert.Equal(t, IntensityMedium, normalized.Intensity)
	assert.Equal(t, ConditionNormal, normalized.Condition)
	// the original stays untouched
	assert.Equal(t, "insane", tl.Intensity)

	known := TrainingLog{Intensity: IntensityHigh, Condition: ConditionGreat}
	normalized = known.Normalized()
	assert.Equal(t, IntensityHigh, normalized.Intensity)
	assert.Equal(t, ConditionGreat, normalized.Condition)
}

func TestTrainingLog_Day(t *testing.T) {
	tl := TrainingLog{Date: "2025-06-15"}
	day, err := tl.Day()
	require.NoError(t, err)
	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, 6, int(day.Month()))
	assert.Equal(t, 15, day.Day())

	_, err = TrainingLog{Date: "15.06.2025."}.Day()
	assert.Error(t, err)
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-06-01"))
	assert.False(t, ValidDate("2025-6-1"))
	assert.False(t, ValidDate("2025-13-01"))
	assert.False(t, ValidDate(""))
	assert.False(t, ValidDate("not-a-date"))
}
