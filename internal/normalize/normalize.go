// Package normalize reconciles the two generations of the context state
// schema into one canonical shape.
//
// Early pipeline versions stored stage work products as flat top-level state
// fields (idea, research, prototype, pitch, ...). Later versions write a
// structured state.stage_outputs section keyed by stage. Document backfills
// the structured section from the legacy fields so every consumer sees one
// shape, without ever touching data that is already structured.
package normalize

import "github.com/ainnovators/viewer/internal/domain"

// Document returns a canonical copy of doc: for each stage missing from
// state.stage_outputs whose legacy indicator field is present, a structured
// bundle is synthesized from the flat fields. Existing stage_outputs entries
// are never overwritten, even when stale legacy duplicates coexist.
//
// The function is pure and idempotent. doc is not mutated; a document without
// a usable state section is returned unchanged.
func Document(doc *domain.ContextDocument) *domain.ContextDocument {
	if doc == nil || doc.State == nil {
		return doc
	}
	if raw, ok := doc.State[domain.KeyStageOutputs]; ok {
		if _, isObject := raw.(map[string]any); !isObject {
			// Unrecognized stage_outputs shape: degrade, never fail.
			return doc
		}
	}

	state := copyMap(doc.State)
	outputs, _ := state[domain.KeyStageOutputs].(map[string]any)
	if outputs == nil {
		outputs = make(map[string]any)
	}

	if _, ok := outputs[domain.StageIdeaDevelopment]; !ok {
		if bundle := ideaDevelopmentBundle(state); bundle != nil {
			outputs[domain.StageIdeaDevelopment] = bundle
		}
	}
	if _, ok := outputs[domain.StagePrototyping]; !ok {
		if bundle := prototypingBundle(state); bundle != nil {
			outputs[domain.StagePrototyping] = bundle
		}
	}
	if _, ok := outputs[domain.StagePitch]; !ok {
		if bundle := pitchBundle(state); bundle != nil {
			outputs[domain.StagePitch] = bundle
		}
	}

	state[domain.KeyStageOutputs] = outputs
	return &domain.ContextDocument{
		State:         state,
		StageContexts: doc.StageContexts,
		HistoryLength: doc.HistoryLength,
	}
}

// ideaDevelopmentBundle synthesizes the idea_development entry from legacy
// fields. The legacy indicator is the idea field; the validation slot prefers
// research_final over research.
func ideaDevelopmentBundle(state map[string]any) map[string]any {
	idea, ok := legacyField(state, domain.KeyIdea)
	if !ok {
		return nil
	}
	bundle := map[string]any{domain.KeyIdea: idea}
	if v, ok := legacyField(state, domain.KeyResearchFinal); ok {
		bundle[domain.KeyFinalValidation] = v
	} else if v, ok := legacyField(state, domain.KeyResearch); ok {
		bundle[domain.KeyFinalValidation] = v
	}
	if v, ok := legacyField(state, domain.KeyLegalInsights); ok {
		bundle[domain.KeyLegalInsights] = v
	}
	return bundle
}

// prototypingBundle synthesizes the prototyping entry. The legacy indicator is
// the prototype field; the legacy design field maps to the structured
// design_system slot.
func prototypingBundle(state map[string]any) map[string]any {
	prototype, ok := legacyField(state, domain.KeyPrototype)
	if !ok {
		return nil
	}
	bundle := map[string]any{domain.KeyPrototype: prototype}
	if v, ok := legacyField(state, domain.KeyArchitecture); ok {
		bundle[domain.KeyArchitecture] = v
	}
	if v, ok := legacyField(state, domain.KeyDesign); ok {
		bundle[domain.KeyDesignSystem] = v
	}
	if v, ok := legacyField(state, domain.KeyFinalDesigns); ok {
		bundle[domain.KeyFinalDesigns] = v
	}
	return bundle
}

// pitchBundle synthesizes the pitch entry. The legacy pitch field becomes the
// structured pitch_deck slot.
func pitchBundle(state map[string]any) map[string]any {
	pitch, ok := legacyField(state, domain.KeyPitch)
	if !ok {
		return nil
	}
	bundle := map[string]any{domain.KeyPitchDeck: pitch}
	if v, ok := legacyField(state, domain.KeyMarketingStrategies); ok {
		bundle[domain.KeyMarketingStrategies] = v
	}
	return bundle
}

// legacyField reports a legacy state field as present only when it is non-null:
// the pipeline initializes every legacy key to null, so a null value carries
// no stage data.
func legacyField(state map[string]any, key string) (any, bool) {
	v, ok := state[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

// copyValue deep-copies a value decoded by encoding/json: objects, arrays,
// and scalars only.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
