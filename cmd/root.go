package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/trknhr/diachronic/internal/bayes"
	"github.com/trknhr/diachronic/internal/config"
	"github.com/trknhr/diachronic/internal/logger"
	"github.com/trknhr/diachronic/internal/report"
	"github.com/trknhr/diachronic/internal/sample"
)

const defaultCount = 20

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	modelPath string
	logLevel  string
	logFile   string
}

func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var (
		truth string
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "diachronic",
		Short: "Update beliefs about which bowl a cookie came from, one draw at a time",
		Long: `Draws cookies from a bowl and applies Bayes' rule after every draw,
printing the posterior probability of each bowl as it goes.

Bowl 1 holds 30 vanilla and 10 chocolate cookies, bowl 2 holds 20 of each.
Every run starts from a uniform prior.`,
		Example: `
  # The classic demonstration: 20 draws from bowl1
  diachronic

  # Reproducible run from bowl2
  diachronic --truth bowl2 --seed 7 -n 50`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(opts.logFile, opts.logLevel)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var seedp *uint64
			if cmd.Flags().Changed("seed") {
				seedp = &seed
			}
			return RunDemo(cmd.Context(), cmd.OutOrStdout(), opts.modelPath, truth, count, seedp)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.modelPath, "model", "", "YAML file with the hypotheses and their vanilla probabilities (default: the two cookie bowls)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error, none")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "also append logs to this file")

	cmd.Flags().StringVar(&truth, "truth", "", "hypothesis the cookies are actually drawn from (default: the first one, bowl1)")
	cmd.Flags().IntVarP(&count, "count", "n", defaultCount, "number of cookies to draw")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the cookie draws (unseeded when omitted)")

	cmd.AddCommand(NewUpdateCmd(opts), NewModelCmd(opts))

	return cmd
}

// RunDemo draws count cookies from truth and prints the posterior after
// each one. An empty truth picks the model's first hypothesis; a nil seed
// draws from an unseeded source.
func RunDemo(ctx context.Context, out io.Writer, modelPath, truth string, count int, seed *uint64) error {
	if count < 0 {
		return fmt.Errorf("count must not be negative, got %d", count)
	}

	model, err := config.LoadModel(modelPath)
	if err != nil {
		return err
	}
	h := model.Hypotheses()[0]
	if truth != "" {
		if h, err = model.Lookup(truth); err != nil {
			return err
		}
	}

	runID := uuid.NewString()
	var gen *sample.Generator
	if seed != nil {
		gen = sample.NewSeeded(model, *seed)
		logger.Debug("run %s: truth=%s count=%d seed=%d", runID, h, count, *seed)
	} else {
		gen = sample.NewUnseeded(model)
		logger.Debug("run %s: truth=%s count=%d unseeded", runID, h, count)
	}

	return runFold(ctx, out, runID, model, gen.Generate(h, count))
}

func runFold(ctx context.Context, out io.Writer, runID string, model *bayes.Model, data []bayes.Observation) error {
	final, err := model.Run(ctx, model.Uniform(), data, report.NewWriter(out))
	if err != nil {
		logger.Error("run %s: %v", runID, err)
		return fmt.Errorf("run %s failed: %w", runID, err)
	}
	logger.Info("run %s: %d observations, final priors %s", runID, len(data), report.Priors(final))
	return nil
}

func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}
