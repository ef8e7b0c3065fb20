package cli

import (
	"github.com/okieraised/go-rpn-anchors"
	"github.com/okieraised/go-rpn-anchors/config"
	"github.com/spf13/cobra"
)

type generateOpts struct {
	configPath string
	baseSize   int
	ratios     []float32
	scales     []float32
	format     string
}

func newGenerateCmd() *cobra.Command {
	opts := generateOpts{}
	defaults := config.DefaultAnchorParams()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print the anchor table for a base size, ratios and scales",
		Example: `  anchorgen generate
  anchorgen generate --base-size 32 --ratios 1 --scales 2,4
  anchorgen generate --config anchors.yaml --format table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("base-size") {
				cfg.Anchor.BaseSize = opts.baseSize
			}
			if flags.Changed("ratios") {
				cfg.Anchor.Ratios = opts.ratios
			}
			if flags.Changed("scales") {
				cfg.Anchor.Scales = opts.scales
			}

			logger := loggerFromContext(cmd.Context())
			gen, err := go_rpn_anchors.NewAnchorGenerator(cfg, logger)
			if err != nil {
				return err
			}
			anchors, err := gen.Generate()
			if err != nil {
				return err
			}
			return renderTable(cmd.OutOrStdout(), opts.format, "", anchors)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML or TOML config file")
	cmd.Flags().IntVar(&opts.baseSize, "base-size", defaults.BaseSize, "side of the base square window in pixels")
	cmd.Flags().Float32SliceVar(&opts.ratios, "ratios", defaults.Ratios, "aspect ratios (height over width)")
	cmd.Flags().Float32SliceVar(&opts.scales, "scales", defaults.Scales, "scale multipliers")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatPlain, "output format: plain or table")

	return cmd
}

func loadConfig(path string) (*config.File, error) {
	if path == "" {
		return config.DefaultFile(), nil
	}
	return config.LoadFile(path)
}
