// dist reads newline-separated numbers and describes their
// distribution: summary statistics, discreteness classification,
// entropy with a bootstrap confidence interval, and KL divergence
// between two samples.
package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aclements/go-npstat/stats"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
	defer zap.L().Sync()

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// bootFlags are the bootstrap-related flags shared by the entropy and
// kl subcommands.
type bootFlags struct {
	resamples  int
	confidence float64
	method     string
	seed       uint64
	neighbors  int
}

func (f *bootFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.resamples, "bootstrap", "b", 1000, "number of bootstrap resamples")
	cmd.Flags().Float64VarP(&f.confidence, "confidence", "c", 0.95, "confidence level of the interval")
	cmd.Flags().StringVarP(&f.method, "method", "m", "percentile", "interval method: percentile or bca")
	cmd.Flags().Uint64VarP(&f.seed, "seed", "s", 0, "bootstrap RNG seed (0 = nondeterministic)")
	cmd.Flags().IntVarP(&f.neighbors, "neighbors", "k", 0, "neighbor count for the KNN estimator (0 = default)")
}

func (f *bootFlags) bootstrap() (stats.Bootstrap, error) {
	var method stats.CIMethod
	switch f.method {
	case "percentile":
		method = stats.Percentile
	case "bca":
		method = stats.BCa
	default:
		return stats.Bootstrap{}, fmt.Errorf("unknown interval method %q", f.method)
	}
	return stats.Bootstrap{
		Resamples:  f.resamples,
		Confidence: f.confidence,
		Method:     method,
		Seed:       f.seed,
	}, nil
}

func (f *bootFlags) estimator() stats.EstimatorConfig {
	return stats.EstimatorConfig{K: f.neighbors}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dist",
		Short:         "describe empirical distributions",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(describeCmd(), entropyCmd(), klCmd())
	return root
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [file]",
		Short: "summary statistics and classification of a sample",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, s, err := readDist(arg0(args))
			if err != nil {
				return err
			}

			fmt.Printf("N %d  sum %.6g  mean %.6g", len(s.Xs), s.Sum(), s.Mean())
			gmean := s.GeoMean()
			if !math.IsNaN(gmean) {
				fmt.Printf("  gmean %.6g", gmean)
			}
			fmt.Printf("  std dev %.6g  variance %.6g\n", s.StdDev(), s.Variance())
			fmt.Println()

			if d.IsDiscrete() {
				fmt.Printf("discrete")
				if step, ok := d.LatticeStep(); ok {
					origin, _ := d.LatticeOrigin()
					fmt.Printf("  lattice step %.6g  origin %.6g", step, origin)
				}
				fmt.Println()
			} else {
				fmt.Println("continuous")
			}
			fmt.Printf("mode %.6g  multimodal %v\n", d.Mode(), d.IsLikelyMultimodal())
			fmt.Println()

			// Quartiles and tails.
			labels := map[int]string{0: "min", 50: "median", 100: "max"}
			for _, p := range []int{0, 1, 5, 25, 50, 75, 95, 99, 100} {
				label, ok := labels[p]
				if !ok {
					label = fmt.Sprintf("%d%%ile", p)
				}
				fmt.Printf("%8s %.6g\n", label, s.Quantile(float64(p)/100))
			}
			return nil
		},
	}
}

func entropyCmd() *cobra.Command {
	var flags bootFlags
	cmd := &cobra.Command{
		Use:   "entropy [file]",
		Short: "entropy estimate with a bootstrap confidence interval",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boot, err := flags.bootstrap()
			if err != nil {
				return err
			}
			d, _, err := readDist(arg0(args))
			if err != nil {
				return err
			}

			est := d.EntropyEstimate(flags.estimator(), boot)
			printEstimate("entropy", est)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func klCmd() *cobra.Command {
	var flags bootFlags
	cmd := &cobra.Command{
		Use:   "kl P Q",
		Short: "KL divergence D(P‖Q) between two samples",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			boot, err := flags.bootstrap()
			if err != nil {
				return err
			}
			p, _, err := readDist(args[0])
			if err != nil {
				return err
			}
			q, _, err := readDist(args[1])
			if err != nil {
				return err
			}

			opt := &stats.KLOptions{Estimator: flags.estimator()}
			est, ok := p.KLDivergenceEstimate(q, opt, boot)
			if !ok {
				return fmt.Errorf("KL divergence of %s relative to %s is undefined", args[0], args[1])
			}
			printEstimate("KL divergence", est)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func printEstimate(what string, est stats.BootstrapEstimate) {
	fmt.Printf("%s %.6g nats\n", what, est.Value)
	if !math.IsNaN(est.Lower) {
		method := "percentile"
		if est.Method == stats.BCa {
			method = "BCa"
		}
		fmt.Printf("%g%% CI [%.6g, %.6g]  (%s, %d resamples)\n",
			100*est.Confidence, est.Lower, est.Upper, method, est.Resamples)
	}
}

func arg0(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// readDist reads a sample from path ("-" for stdin) and builds its
// empirical distribution.
func readDist(path string) (*stats.Empirical, stats.Sample, error) {
	r := io.Reader(os.Stdin)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, stats.Sample{}, err
		}
		defer f.Close()
		r = f
	}

	s, err := readInput(r)
	if err != nil {
		return nil, stats.Sample{}, err
	}
	s.Sort()

	d, err := stats.NewEmpirical(s.Xs)
	if err != nil {
		return nil, stats.Sample{}, err
	}
	zap.L().Debug("loaded sample",
		zap.String("path", path),
		zap.Int("n", len(s.Xs)),
		zap.Bool("discrete", d.IsDiscrete()))
	return d, s, nil
}

func readInput(r io.Reader) (sample stats.Sample, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l := scanner.Text()
		if l == "" {
			continue
		}
		value, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return sample, err
		}
		sample.Xs = append(sample.Xs, value)
	}
	return sample, scanner.Err()
}
