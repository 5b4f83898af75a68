// SubGHz Inspector - interactive terminal viewer for sub-GHz RAW capture files
// This program plots the pulse durations of a .sub capture, trims it to a time
// range and exports the result in the same format.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"subghz-inspector/internal/config"
	"subghz-inspector/internal/logging"
	"subghz-inspector/internal/session"
	"subghz-inspector/internal/tui"
	"subghz-inspector/internal/version"
)

// Command line flag variables
var (
	cfgFile      string // Configuration file path
	verbose      bool   // Enable debug logging
	pointLimit   string // Max points per polarity class, or ALL
	showPositive bool   // Draw values >= 0
	showNegative bool   // Draw values < 0
	autoScale    bool   // Fit the value axis to the data
	output       string // Export directory
	watch        bool   // Reload the capture when it changes on disk
	showVersion  bool   // Show version information
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "subghz-inspector [file.sub]",
	Short: "Interactive viewer and trimmer for sub-GHz RAW captures",
	Long: `SubGHz Inspector loads a RAW capture (.sub), plots its pulse durations
against time, and lets you trim it to a time range, inspect statistics and
export the trimmed capture in the same format.

Keys:
  p / n    toggle positive / negative values
  a        toggle auto-scale
  l        cycle the point limit (1,000 → 5,000 → 10,000 → 50,000 → ALL)
  t        trim to a time range (start end, seconds), then y/n to confirm
  r        reset to the original data
  s        statistics
  e        export <name>_trimmed.sub
  o        open another file
  ?        more keys
  q        quit`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetVersionInfo("SubGHz Inspector"))
			return
		}

		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if err := runInspector(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// init initializes the CLI flags and configuration
func init() {
	defaults := config.DefaultConfig()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging (written to logging.file or subghz-inspector.log)")

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")
	rootCmd.Flags().StringVarP(&pointLimit, "point-limit", "l", defaults.Display.PointLimit, "max points per polarity class (number or ALL)")
	rootCmd.Flags().BoolVar(&showPositive, "show-positive", defaults.Display.ShowPositive, "draw positive values")
	rootCmd.Flags().BoolVar(&showNegative, "show-negative", defaults.Display.ShowNegative, "draw negative values")
	rootCmd.Flags().BoolVar(&autoScale, "auto-scale", defaults.Display.AutoScale, "fit the value axis to the data")
	rootCmd.Flags().StringVarP(&output, "output", "o", defaults.Export.OutputDir, "directory for exported files")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the capture when it changes on disk")

	// Bind command line flags to viper configuration keys
	viper.BindPFlag("display.point_limit", rootCmd.Flags().Lookup("point-limit"))
	viper.BindPFlag("display.show_positive", rootCmd.Flags().Lookup("show-positive"))
	viper.BindPFlag("display.show_negative", rootCmd.Flags().Lookup("show-negative"))
	viper.BindPFlag("display.auto_scale", rootCmd.Flags().Lookup("auto-scale"))
	viper.BindPFlag("export.output_dir", rootCmd.Flags().Lookup("output"))
}

// runInspector loads the configuration and runs the terminal UI
func runInspector(path string) error {
	cfg, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	if verbose {
		level = logging.LevelDebug
	}
	logging.SetLevel(level)

	// stdout belongs to the UI, so log lines go to a file or nowhere
	logFile := cfg.Logging.File
	if logFile == "" && verbose {
		logFile = "subghz-inspector.log"
	}
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "subghz")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		logging.Discard()
	}

	opts, err := cfg.PlotOptions()
	if err != nil {
		return err
	}

	sess := session.New(
		session.WithLineWidth(cfg.Export.LineWidth),
		session.WithSuffix(cfg.Export.Suffix),
	)
	model := tui.New(tui.Options{
		Path:        path,
		Plot:        opts,
		OutputDir:   cfg.Export.OutputDir,
		Watch:       watch && path != "",
		GraphWidth:  cfg.Graph.Width,
		GraphHeight: cfg.Graph.Height,
		Session:     sess,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if m, ok := finalModel.(tui.Model); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// main is the entry point of the application
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
