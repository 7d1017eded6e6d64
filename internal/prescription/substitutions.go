// Package prescription composes exercise substitutions, workout
// prescriptions, deload recommendations, and weekly scheduling from a
// static exercise catalog and the user's constraints and goals. All
// operations are total functions over well-formed input: malformed input
// such as an empty catalog degrades to empty or default results.
package prescription

import (
	"math"
	"sort"
	"strings"

	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/stats"
)

const maxSubstitutions = 5

// Substitution is one ranked replacement candidate for an exercise.
type Substitution struct {
	Exercise    fitness.Exercise `json:"exercise"`
	Similarity  float64          `json:"similarity"`
	Suitability float64          `json:"suitability"`
	Score       float64          `json:"score"`
}

// GenerateExerciseSubstitutions ranks catalog exercises that can replace
// the original. Candidates must share at least one muscle group, must not
// require equipment ruled out by an equipment constraint, and must not be
// contraindicated by an injury constraint. The top 5 by combined
// similarity and suitability are returned.
func GenerateExerciseSubstitutions(
	original fitness.Exercise,
	catalog []fitness.Exercise,
	constraints []fitness.Constraint,
) []Substitution {
	suitability := constraintSuitability(constraints)

	var candidates []Substitution
	for _, candidate := range catalog {
		if candidate.ID == original.ID {
			continue
		}
		if countOverlap(original.MuscleGroups, candidate.MuscleGroups) == 0 {
			continue
		}
		if excludedByConstraints(candidate, constraints) {
			continue
		}

		similarity := similarityScore(original, candidate)
		candidates = append(candidates, Substitution{
			Exercise:    candidate,
			Similarity:  stats.Round2(similarity),
			Suitability: stats.Round2(suitability),
			Score:       stats.Round2(similarity + suitability),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > maxSubstitutions {
		candidates = candidates[:maxSubstitutions]
	}
	return candidates
}

// similarityScore weights muscle-group overlap heaviest, then category,
// compound/isolation match, and difficulty closeness.
func similarityScore(original, candidate fitness.Exercise) float64 {
	var score float64

	if len(original.MuscleGroups) > 0 {
		overlap := float64(countOverlap(original.MuscleGroups, candidate.MuscleGroups)) /
			float64(len(original.MuscleGroups))
		score += 0.4 * math.Min(overlap, 1)
	}
	if candidate.Category == original.Category {
		score += 0.2
	}
	if candidate.Compound == original.Compound {
		score += 0.2
	}
	// Difficulty runs 1-10, so 9 is the widest possible gap.
	score += 0.2 * (1 - math.Abs(original.Difficulty-candidate.Difficulty)/9)

	return score
}

// constraintSuitability starts at 1.0 and subtracts a penalty per
// constraint by severity, floored at 0.
func constraintSuitability(constraints []fitness.Constraint) float64 {
	suitability := 1.0
	for _, constraint := range constraints {
		switch constraint.Severity {
		case fitness.SeverityHigh:
			suitability -= 0.3
		case fitness.SeverityModerate:
			suitability -= 0.2
		case fitness.SeverityLow:
			suitability -= 0.1
		}
	}
	return math.Max(suitability, 0)
}

// excludedByConstraints rules out candidates whose equipment appears in
// an equipment constraint or whose contraindications match an injury
// constraint. Matching is case-insensitive substring over the free-text
// description.
func excludedByConstraints(candidate fitness.Exercise, constraints []fitness.Constraint) bool {
	for _, constraint := range constraints {
		description := strings.ToLower(constraint.Description)
		switch constraint.Type {
		case fitness.ConstraintEquipment:
			for _, equipment := range candidate.Equipment {
				if strings.Contains(description, strings.ToLower(equipment)) {
					return true
				}
			}
		case fitness.ConstraintInjury:
			for _, contraindication := range candidate.Contraindications {
				if strings.Contains(description, strings.ToLower(contraindication)) ||
					strings.Contains(strings.ToLower(contraindication), description) {
					return true
				}
			}
		case fitness.ConstraintTime, fitness.ConstraintEnvironment:
		}
	}
	return false
}

func countOverlap(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, item := range a {
		set[strings.ToLower(item)] = true
	}
	var count int
	for _, item := range b {
		if set[strings.ToLower(item)] {
			count++
		}
	}
	return count
}
