package analytics

import (
	"math"

	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/stats"
)

const minSessionsForRisk = 3

// RiskAssessment aggregates the independent risk detectors into an
// overall rating plus preventive guidance.
type RiskAssessment struct {
	OverallRisk       fitness.Severity     `json:"overallRisk"`
	RiskFactors       []fitness.RiskFactor `json:"riskFactors"`
	PreventiveActions []string             `json:"preventiveActions"`
	MonitoringPoints  []string             `json:"monitoringPoints"`
	ConfidenceScore   float64              `json:"confidenceScore"`
}

// AssessInjuryRisk runs the volume, intensity, recovery, and
// movement-pattern detectors over the user's history. With fewer than 3
// sessions it returns a conservative low-risk default instead of failing,
// since risk assessment is advisory and should not block usage.
func AssessInjuryRisk(
	userID string,
	history []fitness.WorkoutHistory,
	patterns []fitness.MovementPattern,
) RiskAssessment {
	sessions := sessionsForUser(userID, history)
	if len(sessions) < minSessionsForRisk {
		return RiskAssessment{
			OverallRisk:       fitness.SeverityLow,
			RiskFactors:       []fitness.RiskFactor{},
			PreventiveActions: []string{"Registra más entrenamientos para una evaluación completa."},
			MonitoringPoints:  []string{"Consistencia de entrenamiento"},
			ConfidenceScore:   0.3,
		}
	}

	var factors []fitness.RiskFactor
	if factor, ok := volumeRisk(sessions); ok {
		factors = append(factors, factor)
	}
	if factor, ok := intensityRisk(sessions); ok {
		factors = append(factors, factor)
	}
	if factor, ok := recoveryRisk(sessions); ok {
		factors = append(factors, factor)
	}
	factors = append(factors, movementRisks(patterns)...)

	confidence := stats.Round2(math.Min(float64(len(sessions))/12, 1) * factorConfidence(len(factors)))

	return RiskAssessment{
		OverallRisk:       overallRisk(factors),
		RiskFactors:       factors,
		PreventiveActions: preventiveActions(factors),
		MonitoringPoints:  monitoringPoints(factors),
		ConfidenceScore:   confidence,
	}
}

// volumeRisk flags a steep volume ramp over the last 4 sessions.
func volumeRisk(sessions []fitness.WorkoutHistory) (fitness.RiskFactor, bool) {
	recent := sessions
	if len(recent) > 4 {
		recent = recent[len(recent)-4:]
	}
	volumes := make([]float64, len(recent))
	for i, session := range recent {
		volumes[i] = session.TotalVolume
	}
	if fit := stats.LinearRegression(volumes); fit.Slope > 0.3 {
		return fitness.RiskFactor{
			Type:        fitness.RiskVolume,
			Severity:    fitness.SeverityHigh,
			Likelihood:  0.7,
			Description: "El volumen de entrenamiento está subiendo demasiado rápido.",
			Timeframe:   "1-2 semanas",
		}, true
	}
	return fitness.RiskFactor{}, false
}

// intensityRisk flags a sustained run of near-maximal sessions.
func intensityRisk(sessions []fitness.WorkoutHistory) (fitness.RiskFactor, bool) {
	var hard int
	for _, session := range sessions {
		if session.AvgRPE > 8.5 {
			hard++
		}
	}
	if float64(hard)/float64(len(sessions)) > 0.6 {
		return fitness.RiskFactor{
			Type:        fitness.RiskIntensity,
			Severity:    fitness.SeverityModerate,
			Likelihood:  0.5,
			Description: "Demasiadas sesiones cerca del esfuerzo máximo.",
			Timeframe:   "2-4 semanas",
		}, true
	}
	return fitness.RiskFactor{}, false
}

func recoveryRisk(sessions []fitness.WorkoutHistory) (fitness.RiskFactor, bool) {
	if recoveryScore(sessions) < 0.3 {
		return fitness.RiskFactor{
			Type:        fitness.RiskRecovery,
			Severity:    fitness.SeverityHigh,
			Likelihood:  0.8,
			Description: "Recuperación insuficiente entre sesiones.",
			Timeframe:   "Inmediato",
		}, true
	}
	return fitness.RiskFactor{}, false
}

// movementRisks produces one factor per failing condition per pattern.
func movementRisks(patterns []fitness.MovementPattern) []fitness.RiskFactor {
	var factors []fitness.RiskFactor
	for _, pattern := range patterns {
		if pattern.Consistency < 0.6 {
			factors = append(factors, fitness.RiskFactor{
				Type:        fitness.RiskBiomechanical,
				Severity:    fitness.SeverityModerate,
				Likelihood:  0.5,
				Description: "Técnica inconsistente en el patrón " + pattern.Pattern + ".",
				Timeframe:   "2-4 semanas",
			})
		}
		if len(pattern.Asymmetries) > 0 {
			factors = append(factors, fitness.RiskFactor{
				Type:        fitness.RiskBiomechanical,
				Severity:    fitness.SeverityModerate,
				Likelihood:  0.6,
				Description: "Asimetrías detectadas en el patrón " + pattern.Pattern + ".",
				Timeframe:   "2-4 semanas",
			})
		}
	}
	return factors
}

func overallRisk(factors []fitness.RiskFactor) fitness.Severity {
	if len(factors) == 0 {
		return fitness.SeverityLow
	}
	var sum float64
	for _, factor := range factors {
		if factor.Severity == fitness.SeverityHigh {
			return fitness.SeverityHigh
		}
		sum += factor.Likelihood
	}
	mean := sum / float64(len(factors))
	switch {
	case mean > 0.7:
		return fitness.SeverityHigh
	case mean > 0.4:
		return fitness.SeverityModerate
	default:
		return fitness.SeverityLow
	}
}

func factorConfidence(factorCount int) float64 {
	if factorCount > 0 {
		return 0.8
	}
	return 0.6
}

// preventiveActions is a deterministic text list keyed by the risk types
// present in the assessment.
func preventiveActions(factors []fitness.RiskFactor) []string {
	actions := []string{"Mantén una técnica estricta en todos los ejercicios."}
	for _, riskType := range presentRiskTypes(factors) {
		switch riskType {
		case fitness.RiskVolume:
			actions = append(actions, "Reduce el volumen semanal un 10-20% durante las próximas dos semanas.")
		case fitness.RiskIntensity:
			actions = append(actions, "Limita las sesiones por encima de RPE 8.5 a una por semana.")
		case fitness.RiskRecovery:
			actions = append(actions, "Prioriza el sueño y añade un día de descanso adicional.")
		case fitness.RiskBiomechanical:
			actions = append(actions, "Trabaja movilidad y ejercicios unilaterales correctivos.")
		case fitness.RiskFrequency:
			actions = append(actions, "Espacia las sesiones que cargan los mismos grupos musculares.")
		}
	}
	return actions
}

func monitoringPoints(factors []fitness.RiskFactor) []string {
	points := []string{"RPE por sesión"}
	for _, riskType := range presentRiskTypes(factors) {
		switch riskType {
		case fitness.RiskVolume:
			points = append(points, "Volumen semanal total")
		case fitness.RiskIntensity:
			points = append(points, "Proporción de sesiones cerca del fallo")
		case fitness.RiskRecovery:
			points = append(points, "Calidad de sueño y dolor muscular")
		case fitness.RiskBiomechanical:
			points = append(points, "Simetría y control del movimiento")
		case fitness.RiskFrequency:
			points = append(points, "Días de descanso entre sesiones")
		}
	}
	return points
}

// presentRiskTypes returns the distinct risk types in detector order.
func presentRiskTypes(factors []fitness.RiskFactor) []fitness.RiskType {
	order := []fitness.RiskType{
		fitness.RiskVolume,
		fitness.RiskIntensity,
		fitness.RiskFrequency,
		fitness.RiskRecovery,
		fitness.RiskBiomechanical,
	}
	present := make(map[fitness.RiskType]bool, len(factors))
	for _, factor := range factors {
		present[factor.Type] = true
	}
	var types []fitness.RiskType
	for _, riskType := range order {
		if present[riskType] {
			types = append(types, riskType)
		}
	}
	return types
}
