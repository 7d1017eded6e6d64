// Package routine generates AI-assisted training routines through the
// OpenAI chat-completion API. The model is selected by subscription plan
// and the response is validated and repaired against a fixed schema
// before anything else consumes it.
package routine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Plan model selection. Higher tiers get progressively larger models.
const (
	modelFree    = "gpt-4o-mini"
	modelPremium = "gpt-4o"
	modelPro     = "gpt-4.1"
)

// Defaults applied when the model leaves optional fields unset.
const (
	defaultDifficulty = "intermediate"
	defaultDuration   = 60
)

// RoutineExercise is one exercise inside a generated routine.
type RoutineExercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"restSeconds"`
}

// Routine is the schema the model must produce.
type Routine struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Difficulty         string            `json:"difficulty"`
	EstimatedDuration  int               `json:"estimatedDuration"` // minutes
	TargetMuscleGroups []string          `json:"targetMuscleGroups"`
	EquipmentNeeded    []string          `json:"equipmentNeeded"`
	Exercises          []RoutineExercise `json:"exercises"`
}

// Generator asks a chat model for routines matching the schema.
type Generator struct {
	client openai.Client
	logger *slog.Logger
}

// NewGenerator creates a routine generator backed by the OpenAI API.
func NewGenerator(apiKey string, logger *slog.Logger) *Generator {
	return &Generator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		logger: logger,
	}
}

// ModelForPlan maps a subscription plan to the chat model it is entitled
// to. Unknown plans get the free-tier model.
func ModelForPlan(plan string) string {
	switch strings.ToLower(plan) {
	case "premium":
		return modelPremium
	case "pro":
		return modelPro
	default:
		return modelFree
	}
}

// Generate produces a routine for the profile using the plan's model.
func (g *Generator) Generate(
	ctx context.Context,
	plan string,
	profile fitness.UserProfile,
) (Routine, error) {
	model := ModelForPlan(plan)
	prompt := buildPrompt(profile)

	g.logger.DebugContext(ctx, "generating routine",
		slog.String("model", model),
		slog.String("user_id", profile.UserID))

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("Eres un entrenador personal. Responde únicamente con el JSON pedido."),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "routine",
					Description: openai.String("A structured training routine"),
					Schema:      routineSchema(),
					Strict:      openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		g.logger.WarnContext(ctx, "chat completion failed, using fallback routine",
			slog.String("model", model), errors.SlogError(err))
		return FallbackRoutine(profile), nil
	}
	if len(completion.Choices) == 0 {
		g.logger.WarnContext(ctx, "chat completion returned no choices, using fallback routine",
			slog.String("model", model))
		return FallbackRoutine(profile), nil
	}

	routine, err := parseRoutine(completion.Choices[0].Message.Content)
	if err != nil {
		g.logger.WarnContext(ctx, "unusable routine response, using fallback routine",
			slog.String("model", model), errors.SlogError(err))
		return FallbackRoutine(profile), nil
	}
	return routine, nil
}

// FallbackRoutine is the deterministic routine served when generation
// fails. Users always get something usable instead of an error.
func FallbackRoutine(profile fitness.UserProfile) Routine {
	difficulty := string(profile.ExperienceLevel)
	if difficulty == "" {
		difficulty = defaultDifficulty
	}
	return Routine{
		Name:               "Rutina de cuerpo completo",
		Description:        "Rutina básica de cuerpo completo con ejercicios fundamentales.",
		Difficulty:         difficulty,
		EstimatedDuration:  defaultDuration,
		TargetMuscleGroups: []string{"quads", "chest", "back"},
		EquipmentNeeded:    []string{"barbell"},
		Exercises: []RoutineExercise{
			{Name: "Back Squat", Sets: 3, Reps: "8-12", RestSeconds: 90},
			{Name: "Bench Press", Sets: 3, Reps: "8-12", RestSeconds: 90},
			{Name: "Barbell Row", Sets: 3, Reps: "8-12", RestSeconds: 90},
		},
	}
}

// buildPrompt describes the user so the model can tailor the routine.
func buildPrompt(profile fitness.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crea una rutina de entrenamiento para un usuario de nivel %s.\n", profile.ExperienceLevel)
	if len(profile.Goals) > 0 {
		fmt.Fprintf(&b, "Objetivos: %s.\n", strings.Join(profile.Goals, ", "))
	}
	for _, constraint := range profile.Constraints {
		fmt.Fprintf(&b, "Restricción (%s, %s): %s.\n", constraint.Type, constraint.Severity, constraint.Description)
	}
	b.WriteString("Devuelve la rutina como JSON con nombre, descripción, dificultad, duración estimada, grupos musculares, equipamiento y ejercicios.")
	return b.String()
}

// parseRoutine decodes the model output and repairs missing fields so
// downstream code always sees a fully populated structure.
func parseRoutine(content string) (Routine, error) {
	var routine Routine
	if err := json.Unmarshal([]byte(content), &routine); err != nil {
		return Routine{}, errors.Wrap(err, "unmarshal routine")
	}
	if routine.Name == "" {
		return Routine{}, errors.New("generated routine is missing a name")
	}
	return repairRoutine(routine), nil
}

// repairRoutine fills schema defaults for fields the model left empty.
func repairRoutine(routine Routine) Routine {
	if routine.Difficulty == "" {
		routine.Difficulty = defaultDifficulty
	}
	if routine.EstimatedDuration <= 0 {
		routine.EstimatedDuration = defaultDuration
	}
	if routine.TargetMuscleGroups == nil {
		routine.TargetMuscleGroups = []string{}
	}
	if routine.EquipmentNeeded == nil {
		routine.EquipmentNeeded = []string{}
	}
	if routine.Exercises == nil {
		routine.Exercises = []RoutineExercise{}
	}
	return routine
}

func routineSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"required": []string{
			"name", "description", "difficulty", "estimatedDuration",
			"targetMuscleGroups", "equipmentNeeded", "exercises",
		},
		"properties": map[string]any{
			"name":        map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []string{"beginner", "intermediate", "advanced"},
			},
			"estimatedDuration": map[string]any{
				"type":        "integer",
				"description": "Estimated duration in minutes",
			},
			"targetMuscleGroups": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"equipmentNeeded": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"exercises": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"name", "sets", "reps", "restSeconds"},
					"properties": map[string]any{
						"name":        map[string]any{"type": "string"},
						"sets":        map[string]any{"type": "integer"},
						"reps":        map[string]any{"type": "string"},
						"restSeconds": map[string]any{"type": "integer"},
					},
					"additionalProperties": false,
				},
			},
		},
		"additionalProperties": false,
	}
}
