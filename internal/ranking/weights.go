package ranking

// Weights blends the three clarity components. Weights are relative, not
// required to sum to one.
type Weights struct {
	Resolution float64
	FPS        float64
	Codec      float64
}

// DefaultWeights returns the baseline blend used when a query carries no
// perceptual term.
func DefaultWeights() Weights {
	return Weights{Resolution: 0.5, FPS: 0.3, Codec: 0.2}
}

// Merge returns a copy with the given components replaced. Keys not present
// in the override keep their current value; unknown keys are ignored.
func (w Weights) Merge(overrides map[string]float64) Weights {
	merged := w
	if v, ok := overrides["resolution"]; ok {
		merged.Resolution = v
	}
	if v, ok := overrides["fps"]; ok {
		merged.FPS = v
	}
	if v, ok := overrides["codec"]; ok {
		merged.Codec = v
	}
	return merged
}

// Map returns the weights keyed by component name, for evidence payloads.
func (w Weights) Map() map[string]float64 {
	return map[string]float64{
		"resolution": w.Resolution,
		"fps":        w.FPS,
		"codec":      w.Codec,
	}
}
