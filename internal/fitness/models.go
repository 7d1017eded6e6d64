// Package fitness defines the shared data model for workout history,
// user profiles, and the exercise catalog. All types are plain value
// objects supplied by the caller per request; nothing here is persisted
// by the analytics code.
package fitness

import "time"

// ExperienceLevel describes how long a user has been training.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// Severity grades constraints and risk factors.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// ConstraintType classifies a user constraint.
type ConstraintType string

const (
	ConstraintTime        ConstraintType = "time"
	ConstraintEquipment   ConstraintType = "equipment"
	ConstraintInjury      ConstraintType = "injury"
	ConstraintEnvironment ConstraintType = "environment"
)

// RiskType classifies an injury risk factor.
type RiskType string

const (
	RiskVolume        RiskType = "volume"
	RiskIntensity     RiskType = "intensity"
	RiskFrequency     RiskType = "frequency"
	RiskRecovery      RiskType = "recovery"
	RiskBiomechanical RiskType = "biomechanical"
)

// Trend describes the direction of a fitted performance series.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)

// Periodization names a macro-level volume/intensity strategy.
type Periodization string

const (
	PeriodizationLinear     Periodization = "linear"
	PeriodizationUndulating Periodization = "undulating"
	PeriodizationBlock      Periodization = "block"
)

// SetPerformance is one completed set of an exercise.
type SetPerformance struct {
	Reps     int      `json:"reps"`
	Weight   float64  `json:"weight"`
	RPE      *float64 `json:"rpe,omitempty"`
	RestTime *int     `json:"restTime,omitempty"` // seconds
}

// ExercisePerformance is one exercise within a session.
type ExercisePerformance struct {
	ExerciseID  string           `json:"exerciseId"`
	Name        string           `json:"name"`
	Sets        []SetPerformance `json:"sets"`
	TotalVolume float64          `json:"totalVolume"`
	OneRepMax   *float64         `json:"oneRepMax,omitempty"`
	AvgRPE      float64          `json:"avgRpe"`
}

// HeartRateSample is one point of a session's heart-rate time series.
type HeartRateSample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Zone      string    `json:"zone"`
}

// WorkoutHistory is one completed workout session.
type WorkoutHistory struct {
	ID            string                `json:"id"`
	UserID        string                `json:"userId"`
	Date          time.Time             `json:"date"`
	Exercises     []ExercisePerformance `json:"exercises"`
	Duration      float64               `json:"duration"` // minutes
	TotalVolume   float64               `json:"totalVolume"`
	AvgRPE        float64               `json:"avgRpe"`
	HeartRateData []HeartRateSample     `json:"heartRateData,omitempty"`
	RecoveryScore *float64              `json:"recoveryScore,omitempty"` // 0-1
}

// Constraint limits what a user can or should do.
type Constraint struct {
	Type        ConstraintType `json:"type"`
	Severity    Severity       `json:"severity"`
	Description string         `json:"description"`
}

// PhysicalProfile carries the anthropometrics relevant to prescription.
type PhysicalProfile struct {
	Age      int      `json:"age"`
	WeightKg float64  `json:"weightKg"`
	HeightCm float64  `json:"heightCm"`
	Injuries []string `json:"injuries,omitempty"`
}

// PerformanceMetrics is a summarized historical datapoint kept on the profile.
type PerformanceMetrics struct {
	Date        time.Time `json:"date"`
	TotalVolume float64   `json:"totalVolume"`
	AvgRPE      float64   `json:"avgRpe"`
}

// UserProfile is the recommendation context for a user.
type UserProfile struct {
	UserID             string               `json:"userId"`
	ExperienceLevel    ExperienceLevel      `json:"experienceLevel"`
	Goals              []string             `json:"goals"`
	Preferences        map[string]string    `json:"preferences,omitempty"`
	PhysicalProfile    PhysicalProfile      `json:"physicalProfile"`
	Constraints        []Constraint         `json:"constraints,omitempty"`
	PerformanceHistory []PerformanceMetrics `json:"performanceHistory,omitempty"`
}

// Exercise is a read-only catalog entry.
type Exercise struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	MuscleGroups      []string `json:"muscleGroups"`
	Equipment         []string `json:"equipment"`
	Difficulty        float64  `json:"difficulty"` // 1-10
	Compound          bool     `json:"compound"`
	Contraindications []string `json:"contraindications,omitempty"`
	FormCues          []string `json:"formCues,omitempty"`
}

// MovementPattern summarizes observed movement quality for a pattern
// such as squat or hinge.
type MovementPattern struct {
	Pattern     string   `json:"pattern"`
	Consistency float64  `json:"consistency"` // 0-1
	Asymmetries []string `json:"asymmetries,omitempty"`
}

// RiskFactor is one detected contributor to injury risk.
type RiskFactor struct {
	Type        RiskType `json:"type"`
	Severity    Severity `json:"severity"`
	Likelihood  float64  `json:"likelihood"` // 0-1
	Description string   `json:"description"`
	Timeframe   string   `json:"timeframe"`
}

// FatigueMarker is one observation of accumulated fatigue on a 1-10 scale.
type FatigueMarker struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Type  string    `json:"type"`
}

// TimeSlot is an availability window in a user's weekly schedule.
type TimeSlot struct {
	Day        time.Weekday `json:"day"`
	StartHour  int          `json:"startHour"`
	Duration   int          `json:"duration"` // minutes
	LastResort bool         `json:"lastResort"`
}
