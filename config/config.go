package config

// AnchorParams holds the inputs of a single anchor table: the side of the
// zero-origin base square and the aspect ratios and scales enumerated from it.
type AnchorParams struct {
	BaseSize int       `json:"base_size" yaml:"base_size" toml:"base_size"`
	Ratios   []float32 `json:"ratios" yaml:"ratios" toml:"ratios"`
	Scales   []float32 `json:"scales" yaml:"scales" toml:"scales"`
}

// DefaultAnchorParams returns the Faster R-CNN setup: a 16px base window,
// ratios 0.5, 1 and 2, and scales 2^3 through 2^5.
// Every call returns new slices.
func DefaultAnchorParams() AnchorParams {
	return AnchorParams{
		BaseSize: 16,
		Ratios:   []float32{0.5, 1, 2},
		Scales:   []float32{8, 16, 32},
	}
}

func NewAnchorParams(baseSize int, ratios, scales []float32) AnchorParams {
	return AnchorParams{
		BaseSize: baseSize,
		Ratios:   append([]float32(nil), ratios...),
		Scales:   append([]float32(nil), scales...),
	}
}

// Clone returns a copy that shares no backing arrays with p.
func (p AnchorParams) Clone() AnchorParams {
	return NewAnchorParams(p.BaseSize, p.Ratios, p.Scales)
}

// AnchorConfig is the per-stride entry of a feature pyramid setup.
type AnchorConfig struct {
	BaseSize      int       `json:"base_size" yaml:"base_size" toml:"base_size"`
	Ratios        []float32 `json:"ratios" yaml:"ratios" toml:"ratios"`
	Scales        []float32 `json:"scales" yaml:"scales" toml:"scales"`
	AllowedBorder int       `json:"allowed_border" yaml:"allowed_border" toml:"allowed_border"`
}

func NewAnchorConfig(baseSize int, ratios, scales []float32, allowedBorder int) AnchorConfig {
	return AnchorConfig{
		BaseSize:      baseSize,
		Ratios:        append([]float32(nil), ratios...),
		Scales:        append([]float32(nil), scales...),
		AllowedBorder: allowedBorder,
	}
}

// Params drops the border setting and returns the table inputs of the entry.
func (c AnchorConfig) Params() AnchorParams {
	return NewAnchorParams(c.BaseSize, c.Ratios, c.Scales)
}

// DefaultFPNAnchorConfig returns the three-level RetinaFace pyramid keyed by stride.
func DefaultFPNAnchorConfig() map[string]AnchorConfig {
	ratio := []float32{1.0}
	return map[string]AnchorConfig{
		"32": NewAnchorConfig(16, ratio, []float32{32, 16}, 9999),
		"16": NewAnchorConfig(16, ratio, []float32{8, 4}, 9999),
		"8":  NewAnchorConfig(16, ratio, []float32{2, 1}, 9999),
	}
}
