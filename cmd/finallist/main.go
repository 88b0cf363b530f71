// Package main provides the CLI entry point for finallist-go.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/ukaji3/finallist-go/pkg/finallist"
	"github.com/ukaji3/finallist-go/pkg/finallist/models"
	"github.com/ukaji3/finallist-go/pkg/finallist/settings"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logLevel       string
	templatePath   string
	outputDir      string
	showHeaderInfo bool
	autoOpen       bool
	recalcHelper   string
	jobs           int
)

var (
	statusOK         = color.New(color.FgGreen).SprintFunc()
	statusNoTable    = color.New(color.FgYellow).SprintFunc()
	statusUnreadable = color.New(color.FgRed).SprintFunc()
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := &cobra.Command{
		Use:   "finallist",
		Short: "Merge order workbooks into one final-list workbook",
		Long: `finallist-go reads structured Excel order workbooks, extracts their
header metadata and item tables, and merges them into a single templated
final-list workbook with per-order totals and a grand summary.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.AddCommand(newScanCommand(), newMergeCommand())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [files...]",
		Short: "Scan order workbooks and report their item counts",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScan,
	}
	cmd.Flags().IntVar(&jobs, "jobs", 0, "Concurrent scans (0 = one per file)")
	return cmd
}

func newMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [files...]",
		Short: "Merge order workbooks into a final-list workbook",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMerge,
	}
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template workbook path (default: Final_List_Template.xlsx beside the executable)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default: first source file's directory)")
	cmd.Flags().BoolVar(&showHeaderInfo, "show-header-info", true, "Render per-order header cells")
	cmd.Flags().BoolVar(&autoOpen, "auto-open", false, "Open the output workbook when done")
	cmd.Flags().StringVar(&recalcHelper, "recalc-helper", "", "External recalculation executable run on the output")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "Concurrent scans (0 = one per file)")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	log, err := buildLogger(logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	merger := finallist.NewMerger(log)
	results := merger.Scan(cmd.Context(), args, jobs)

	total := 0
	for _, sr := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%-50s %s\n", filepath.Base(sr.Path), scanStatus(sr))
		if sr.Outcome == models.ScanOK {
			total += sr.ItemCount()
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d files, %d items\n", len(results), total)
	return nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	log, err := buildLogger(logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := optionsFromFlags(cmd)

	merger := finallist.NewMerger(log)
	res, err := merger.Merge(cmd.Context(), args, opts)
	if err != nil {
		return err
	}

	for _, sr := range res.Scans {
		fmt.Fprintf(cmd.OutOrStdout(), "%-50s %s\n", filepath.Base(sr.Path), scanStatus(sr))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s (%d orders, %d items)\n",
		statusOK("merged:"), res.OutputPath, res.OrderCount, res.ItemCount)

	rememberBrowseDir(args[0])
	return nil
}

// optionsFromFlags starts from the persisted settings and applies any flags
// the user set explicitly.
func optionsFromFlags(cmd *cobra.Command) finallist.Options {
	opts := finallist.DefaultOptions()
	if s := loadSettings(); s != nil {
		opts.ShowHeaderInfo = s.ShowHeaderInfo
		opts.AutoOpen = s.AutoOpen
	}

	opts.TemplatePath = templatePath
	opts.OutputDir = outputDir
	opts.RecalcHelper = recalcHelper
	opts.Jobs = jobs
	if cmd.Flags().Changed("show-header-info") {
		opts.ShowHeaderInfo = showHeaderInfo
	}
	if cmd.Flags().Changed("auto-open") {
		opts.AutoOpen = autoOpen
	}
	return opts
}

func loadSettings() *settings.Settings {
	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	return settings.Load(filepath.Dir(exe))
}

func rememberBrowseDir(firstSource string) {
	s := loadSettings()
	if s == nil {
		return
	}
	s.LastBrowseDir = filepath.Dir(firstSource)
	_ = s.Save()
}

func scanStatus(sr models.ScanResult) string {
	switch sr.Outcome {
	case models.ScanOK:
		return statusOK(fmt.Sprintf("%d items", sr.ItemCount()))
	case models.ScanNoTable:
		return statusNoTable("no data table")
	default:
		return statusUnreadable("unreadable")
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
