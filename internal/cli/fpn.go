package cli

import (
	"fmt"

	"github.com/okieraised/go-rpn-anchors"
	"github.com/spf13/cobra"
)

func newFPNCmd() *cobra.Command {
	var (
		configPath string
		dense      bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "fpn",
		Short: "Print one anchor table per feature pyramid stride",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dense") {
				cfg.Dense = dense
			}

			gen, err := go_rpn_anchors.NewAnchorGenerator(cfg, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			levels, err := gen.GenerateFPN()
			if err != nil {
				return err
			}
			for _, level := range levels {
				title := fmt.Sprintf("stride %d, allowed border %d", level.Stride, level.AllowedBorder)
				if err := renderTable(cmd.OutOrStdout(), format, title, level.Anchors); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML or TOML config file")
	cmd.Flags().BoolVar(&dense, "dense", false, "append a copy of each table shifted by half the stride")
	cmd.Flags().StringVarP(&format, "format", "f", formatPlain, "output format: plain or table")

	return cmd
}
