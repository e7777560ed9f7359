package app

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nfvri/lora-telemetry-sim/pkg/manager"
)

type options struct {
	configPath string
	outputDir  string
	logLevel   string
}

// NewRootCommand builds the telemetry-sim command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "telemetry-sim",
		Short:         "LoRa UAV telemetry latency, PSR and usability analyses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML parameter file overlaid onto the study defaults")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", ".", "directory receiving tables and plots")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		simpleCommand(opts, "latency", "Simulate end-to-end latency per fleet size", func(m *manager.Manager) error {
			_, err := m.RunLatency()
			return err
		}),
		simpleCommand(opts, "psr", "Sweep packet success rate over distance", func(m *manager.Manager) error {
			_, err := m.RunPSR()
			return err
		}),
		simpleCommand(opts, "range", "Solve the median link range per environment", func(m *manager.Manager) error {
			_, err := m.RunLinkRange()
			return err
		}),
		&cobra.Command{
			Use:   "formative <study.csv>",
			Short: "Summarize a formative usability study",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := opts.manager()
				if err != nil {
					return err
				}
				_, err = m.RunFormative(args[0])
				return err
			},
		},
		&cobra.Command{
			Use:   "all [study.csv]",
			Short: "Run every analysis and export the workbook",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := opts.manager()
				if err != nil {
					return err
				}
				study := ""
				if len(args) == 1 {
					study = args[0]
				}
				return m.RunAll(study)
			},
		},
	)
	return root
}

func (o *options) manager() (*manager.Manager, error) {
	return manager.NewManager(&manager.Config{ConfigPath: o.configPath, OutputDir: o.outputDir})
}

func simpleCommand(opts *options, use, short string, run func(*manager.Manager) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager()
			if err != nil {
				return err
			}
			return run(m)
		},
	}
}
