package cmd

import (
	"github.com/spf13/cobra"
	"github.com/trknhr/diachronic/internal/config"
)

func NewModelCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Print the hypotheses and their vanilla probabilities as YAML",
		Long: `Prints the model in effect, in the format accepted by --model.
Without --model this is the built-in two-bowl table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := config.LoadModel(opts.modelPath)
			if err != nil {
				return err
			}
			return config.FromModel(model).Encode(cmd.OutOrStdout())
		},
	}
}
