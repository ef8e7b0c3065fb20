package go_rpn_anchors

import (
	"github.com/charmbracelet/log"
	"github.com/okieraised/go-rpn-anchors/config"
	"github.com/okieraised/go-rpn-anchors/processing"
	"github.com/okieraised/go-rpn-anchors/utils"
	"gorgonia.org/tensor"
)

type AnchorGenerator struct {
	logger *log.Logger
	params config.AnchorParams
	fpn    map[string]config.AnchorConfig
	dense  bool
}

// NewAnchorGenerator returns a generator for cfg. A nil cfg uses
// config.DefaultFile and a nil logger uses log.Default. Each section is
// validated by the method that uses it, so a bad anchor section does not
// block GenerateFPN.
func NewAnchorGenerator(cfg *config.File, logger *log.Logger) (*AnchorGenerator, error) {
	if cfg == nil {
		cfg = config.DefaultFile()
	}
	if logger == nil {
		logger = log.Default()
	}

	params := cfg.Anchor.Clone()

	fpn := make(map[string]config.AnchorConfig, len(cfg.FPN))
	for k, v := range cfg.FPN {
		fpn[k] = config.NewAnchorConfig(v.BaseSize, v.Ratios, v.Scales, v.AllowedBorder)
	}

	return &AnchorGenerator{
		logger: logger,
		params: params,
		fpn:    fpn,
		dense:  cfg.Dense,
	}, nil
}

// Params returns a copy of the single-level parameters.
func (g *AnchorGenerator) Params() config.AnchorParams {
	return g.params.Clone()
}

// Generate returns the (len(ratios)*len(scales), 4) anchor table.
func (g *AnchorGenerator) Generate() (*tensor.Dense, error) {
	g.logger.Debug("generating anchors",
		"base_size", g.params.BaseSize,
		"ratios", g.params.Ratios,
		"scales", g.params.Scales,
	)

	anchors, err := processing.GenerateAnchorsFromParams(g.params)
	if err != nil {
		g.logger.Error("anchor generation failed", "err", err)
		return nil, err
	}

	g.logger.Debug("generated anchors", "shape", anchors.Shape())
	return anchors, nil
}

// GenerateFPN returns one anchor table per configured stride, largest stride first.
func (g *AnchorGenerator) GenerateFPN() ([]processing.StrideAnchors, error) {
	g.logger.Debug("generating pyramid anchors", "levels", len(g.fpn), "dense", g.dense)

	levels, err := processing.GenerateAnchorsFPN(utils.RefPointer(g.dense), g.fpn)
	if err != nil {
		g.logger.Error("pyramid anchor generation failed", "err", err)
		return nil, err
	}

	for _, level := range levels {
		g.logger.Debug("generated level", "stride", level.Stride, "shape", level.Anchors.Shape())
	}
	return levels, nil
}
