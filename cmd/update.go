package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/trknhr/diachronic/internal/bayes"
	"github.com/trknhr/diachronic/internal/config"
	"github.com/trknhr/diachronic/internal/logger"
)

func NewUpdateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <observation>...",
		Short: "Fold the given observations into a uniform prior",
		Long: `Applies Bayes' rule to each observation in order, starting from a
uniform prior, and prints the posterior after every step.

Observations are vanilla or chocolate; v and c are accepted too.`,
		Example: `
  diachronic update vanilla chocolate vanilla
  diachronic update v v c`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseObservations(args)
			if err != nil {
				return err
			}
			model, err := config.LoadModel(opts.modelPath)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			logger.Debug("run %s: %d observations from the command line", runID, len(data))
			return runFold(cmd.Context(), cmd.OutOrStdout(), runID, model, data)
		},
	}
}

// parseObservations rejects the whole list before anything is printed.
func parseObservations(args []string) ([]bayes.Observation, error) {
	data := make([]bayes.Observation, 0, len(args))
	for _, arg := range args {
		o, err := bayes.ParseObservation(arg)
		if err != nil {
			return nil, err
		}
		data = append(data, o)
	}
	return data, nil
}
