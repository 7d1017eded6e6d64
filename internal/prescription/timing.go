package prescription

import (
	"math"
	"sort"

	"github.com/getSweetSpotcl/fitai/internal/analytics"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/stats"
)

// DayPeriod buckets the day into the windows used for performance
// attribution.
type DayPeriod string

const (
	PeriodMorning   DayPeriod = "morning"   // before 12:00
	PeriodAfternoon DayPeriod = "afternoon" // before 17:00
	PeriodEvening   DayPeriod = "evening"
)

// ScheduledSlot is one planned workout in the weekly schedule.
type ScheduledSlot struct {
	Slot             fitness.TimeSlot `json:"slot"`
	Period           DayPeriod        `json:"period"`
	PerformanceScore float64          `json:"performanceScore"`
}

// ScheduleRecommendation is the ranked weekly plan.
type ScheduleRecommendation struct {
	Slots               []ScheduledSlot `json:"slots"`
	BestPeriod          DayPeriod       `json:"bestPeriod"`
	AdherencePrediction float64         `json:"adherencePrediction"`
}

// OptimizeWorkoutTiming ranks the user's available time slots by how
// well they historically performed at that time of day. Last-resort
// slots are excluded from the plan.
func OptimizeWorkoutTiming(
	schedule []fitness.TimeSlot,
	performanceData []fitness.WorkoutHistory,
) ScheduleRecommendation {
	scores := periodScores(performanceData)

	var slots []ScheduledSlot
	for _, slot := range schedule {
		if slot.LastResort {
			continue
		}
		period := periodForHour(slot.StartHour)
		slots = append(slots, ScheduledSlot{
			Slot:             slot,
			Period:           period,
			PerformanceScore: stats.Round2(scores[period]),
		})
	}

	// Best period first, then keep the caller's week order.
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].PerformanceScore > slots[j].PerformanceScore
	})

	return ScheduleRecommendation{
		Slots:               slots,
		BestPeriod:          bestPeriod(scores),
		AdherencePrediction: adherencePrediction(len(slots)),
	}
}

// periodScores averages the training stress score of past sessions per
// time-of-day bucket.
func periodScores(performanceData []fitness.WorkoutHistory) map[DayPeriod]float64 {
	totals := make(map[DayPeriod]float64)
	counts := make(map[DayPeriod]int)
	for _, session := range performanceData {
		period := periodForHour(session.Date.Hour())
		totals[period] += analytics.CalculateTrainingStressScore(session)
		counts[period]++
	}

	scores := make(map[DayPeriod]float64, len(totals))
	for period, total := range totals {
		scores[period] = total / float64(counts[period])
	}
	return scores
}

func periodForHour(hour int) DayPeriod {
	switch {
	case hour < 12:
		return PeriodMorning
	case hour < 17:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}

// bestPeriod breaks score ties in morning, afternoon, evening order so
// the result does not depend on map iteration.
func bestPeriod(scores map[DayPeriod]float64) DayPeriod {
	best := PeriodMorning
	bestScore := math.Inf(-1)
	for _, period := range []DayPeriod{PeriodMorning, PeriodAfternoon, PeriodEvening} {
		if score, ok := scores[period]; ok && score > bestScore {
			best = period
			bestScore = score
		}
	}
	return best
}

// adherencePrediction grows with the number of planned slots up to a
// ceiling. Three workouts a week is already a solid habit.
func adherencePrediction(slotCount int) float64 {
	return stats.Round2(math.Min(0.5+0.1*float64(slotCount), 0.9))
}
