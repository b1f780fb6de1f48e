package domain

import "encoding/json"

// The three fixed pipeline stages.
const (
	StageIdeaDevelopment = "idea_development"
	StagePrototyping     = "prototyping"
	StagePitch           = "pitch"
)

// Stages lists the fixed pipeline stages in execution order.
var Stages = []string{StageIdeaDevelopment, StagePrototyping, StagePitch}

// Keys of the context state document. KeyStageOutputs holds the structured
// per-stage bundles; the remaining keys are the legacy flat work products that
// older pipeline versions wrote at the top level of state.
const (
	KeyStageOutputs = "stage_outputs"

	KeyIdea                = "idea"
	KeyResearch            = "research"
	KeyResearchFinal       = "research_final"
	KeyLegalInsights       = "legal_insights"
	KeyPrototype           = "prototype"
	KeyArchitecture        = "architecture"
	KeyDesign              = "design"
	KeyFinalDesigns        = "final_designs"
	KeyPitch               = "pitch"
	KeyMarketingStrategies = "marketing_strategies"
)

// Keys used inside synthesized stage_outputs bundles where they differ from
// the legacy key they were filled from.
const (
	KeyFinalValidation = "final_validation"
	KeyDesignSystem    = "design_system"
	KeyPitchDeck       = "pitch_deck"
)

// ContextDocument is a context snapshot as written by the pipeline
// (context_final.json or context_<stage>.json). State is kept as a decoded
// JSON object: stage payloads are opaque to the viewer, which only tests key
// presence, and a typed struct would drop unknown fields from raw views.
type ContextDocument struct {
	State         map[string]any `json:"state,omitempty"`
	StageContexts map[string]any `json:"stage_contexts,omitempty"`
	HistoryLength int            `json:"history_length,omitempty"`
}

// StageOutputs returns the structured per-stage section of state, or nil if it
// is absent or not an object.
func (d *ContextDocument) StageOutputs() map[string]any {
	if d == nil || d.State == nil {
		return nil
	}
	outputs, _ := d.State[KeyStageOutputs].(map[string]any)
	return outputs
}

// ResultsBundle is the artifact written by a single-stage run (results.json).
// StageOutput is opaque; FullContext embeds a complete context snapshot.
type ResultsBundle struct {
	Stage         string           `json:"stage"`
	Input         string           `json:"input"`
	Success       bool             `json:"success"`
	ExperimentDir string           `json:"experiment_dir"`
	StageOutput   json.RawMessage  `json:"stage_output,omitempty"`
	FullContext   *ContextDocument `json:"full_context,omitempty"`
}
