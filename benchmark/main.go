package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kdduha/plantdoc/internal/client"
	"github.com/kdduha/plantdoc/internal/config"
	"github.com/kdduha/plantdoc/internal/intake"
	"github.com/kdduha/plantdoc/internal/ui"
	"github.com/spf13/cobra"
)

var classifierURL string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "plantdoc-bench",
		Short:        "Drive the diagnosis flow against a classifier from the terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&classifierURL, "classifier", "", "classifier base URL (defaults to CLASSIFIER_BASE_URL)")

	root.AddCommand(
		newStatusCmd(),
		newTrainCmd(),
		newDiagnoseCmd(),
		newReportCmd(),
		newBenchCmd(),
	)
	return root
}

// newController builds a single-session controller the same way the
// console does for a browser.
func newController() (*ui.Controller, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if classifierURL != "" {
		cfg.Classifier.BaseURL = classifierURL
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	c := client.New(cfg.Classifier, nil)
	c.SetLogger(logger)

	// Banners stay until the command prints them.
	return ui.NewController(logger, c, 0), nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the model is loaded",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, err := newController()
			if err != nil {
				return err
			}
			err = ctl.CheckModelStatus(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), ctl.Snapshot().Status.Text)
			return err
		},
	}
}

// consoleControl mirrors the train button on the terminal.
type consoleControl struct {
	cmd   *cobra.Command
	label string
}

func (c *consoleControl) Label() string {
	return c.label
}

func (c *consoleControl) SetLabel(label string) {
	c.label = label
	fmt.Fprintf(c.cmd.ErrOrStderr(), "[%s]\n", label)
}

func (c *consoleControl) SetDisabled(bool) {}

func newTrainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Retrain the model and wait for it to finish",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, err := newController()
			if err != nil {
				return err
			}
			err = ctl.TrainModel(cmd.Context(), &consoleControl{cmd: cmd, label: ui.TrainLabel})
			printNotifications(cmd, ctl)
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ctl.Snapshot().Status.Text)
			}
			return err
		},
	}
}

func newDiagnoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose <image>",
		Short: "Upload one leaf photo and print the diagnosis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := diagnose(cmd.Context(), args[0])
			if err != nil {
				printNotifications(cmd, ctl)
				return err
			}
			printResult(cmd, ctl.Snapshot().Result)
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "report <image>",
		Short: "Diagnose a leaf photo and save the text report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := diagnose(cmd.Context(), args[0])
			if err != nil {
				printNotifications(cmd, ctl)
				return err
			}

			doc, err := ctl.DownloadReport()
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, doc.Filename)
			if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for the report file")
	return cmd
}

func newBenchCmd() *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Diagnose every image under <dir>/<format>/ and print timings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			results := runBench(cmd.Context(), dataDir, diagnose)
			printMarkdown(cmd.OutOrStdout(), results)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "dir", "data", "directory with one subdirectory per image format")
	return cmd
}

func diagnose(ctx context.Context, path string) (*ui.Controller, error) {
	ctl, err := newController()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ctl, err
	}
	err = ctl.HandleFile(ctx, intake.File{
		Name: filepath.Base(path),
		Size: int64(len(data)),
		Data: data,
	})
	return ctl, err
}

func printResult(cmd *cobra.Command, r *ui.ResultView) {
	if r == nil {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n\n%s\n\nSymptoms: %s\n", r.Disease, r.BadgeText, r.Description, r.Symptoms)
	for i, remedy := range r.Remedies {
		fmt.Fprintf(out, "%d. %s\n", i+1, remedy)
	}
}

func printNotifications(cmd *cobra.Command, ctl *ui.Controller) {
	if ctl == nil {
		return
	}
	for _, n := range ctl.Snapshot().Notifications {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", strings.ToUpper(string(n.Kind)), n.Message)
	}
}
