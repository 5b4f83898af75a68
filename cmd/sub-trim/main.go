// SubGHz Trim - batch tool that cuts a sub-GHz RAW capture to a time range
// The trimmed capture keeps the original header fields and is written as
// <name>_trimmed.sub next to the other exports.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"subghz-inspector/internal/config"
	"subghz-inspector/internal/logging"
	"subghz-inspector/internal/session"
	"subghz-inspector/internal/version"
)

var (
	cfgFile     string  // Configuration file path
	startTime   float64 // Trim start in seconds
	endTime     float64 // Trim end in seconds
	outputDir   string  // Output directory
	suffix      string  // Output file name suffix
	lineWidth   int     // RAW_Data line width
	showStats   bool    // Print statistics of the trimmed data
	verbose     bool    // Enable verbose logging
	showVersion bool    // Show version information
	dryRun      bool    // Show what would be written without doing it
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sub-trim [file.sub]",
	Short: "Trim a sub-GHz RAW capture to a time range",
	Long: `SubGHz Trim keeps the pulses of a RAW capture whose start time lies in
[start, end) seconds, shifts them to start at 0 and writes them as a new
.sub file with the original header fields.

Example usage:
  sub-trim garage.sub --start 0.25 --end 1.5
  sub-trim garage.sub --start 0 --end 0.8 --output ./trimmed --stats
  sub-trim garage.sub --start 1 --end 2 --dry-run --verbose`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Handle version flag
		if showVersion {
			fmt.Println(version.GetVersionInfo("SubGHz Trim"))
			return
		}

		if len(args) == 0 {
			fmt.Fprintf(os.Stderr, "Error: filename required\n")
			cmd.Usage()
			os.Exit(1)
		}

		if err := runTrim(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	defaults := config.DefaultConfig()

	// Version flag
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")

	// Range flags
	rootCmd.Flags().Float64VarP(&startTime, "start", "s", 0, "trim start in seconds")
	rootCmd.Flags().Float64VarP(&endTime, "end", "e", 0, "trim end in seconds (exclusive)")

	// Output flags
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", defaults.Export.OutputDir, "output directory")
	rootCmd.Flags().StringVar(&suffix, "suffix", defaults.Export.Suffix, "suffix appended to the source file name")
	rootCmd.Flags().IntVar(&lineWidth, "line-width", defaults.Export.LineWidth, "maximum RAW_Data line width")

	// Control flags
	rootCmd.Flags().BoolVar(&showStats, "stats", false, "print statistics of the trimmed data")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be written without doing it")

	// Mark required flags, but version should be handled first
	rootCmd.MarkFlagRequired("end")

	// Handle version flag early
	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Println(version.GetVersionInfo("SubGHz Trim"))
			os.Exit(0)
		}
		return nil
	}

	viper.BindPFlag("export.output_dir", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("export.suffix", rootCmd.Flags().Lookup("suffix"))
	viper.BindPFlag("export.line_width", rootCmd.Flags().Lookup("line-width"))
}

// runTrim is the main application logic
func runTrim(filename string) error {
	// Display banner
	fmt.Printf("╔══════════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║                 SUBGHZ RAW TRIM %s                     ║\n", fmt.Sprintf("%-8s", version.GetVersion()))
	fmt.Printf("╚══════════════════════════════════════════════════════════════╝\n\n")

	cfg, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	closer, err := logging.Setup(cfg.Logging.Level, cfg.Logging.File, verbose)
	if err != nil {
		return err
	}
	defer closer.Close()
	if !verbose && cfg.Logging.File == "" {
		logging.Discard()
	}

	if verbose {
		fmt.Printf("🔧 Configuration:\n")
		fmt.Printf("   Input: %s\n", filename)
		fmt.Printf("   Range: %.6fs - %.6fs\n", startTime, endTime)
		fmt.Printf("   Output Directory: %s\n", cfg.Export.OutputDir)
		fmt.Printf("   Suffix: %s\n", cfg.Export.Suffix)
		fmt.Printf("   Line Width: %d\n", cfg.Export.LineWidth)
		fmt.Printf("   Dry Run: %t\n\n", dryRun)
	}

	sess := session.New(
		session.WithLineWidth(cfg.Export.LineWidth),
		session.WithSuffix(cfg.Export.Suffix),
	)
	if err := sess.LoadFile(filename); err != nil {
		return err
	}

	original := sess.Original()
	fmt.Printf("📂 Loaded: %s (%s data points, %s)\n",
		filepath.Base(filename), original.Meta.DataPoints, original.Meta.Duration)
	if n := sess.Discarded(); n > 0 {
		fmt.Printf("⚠️  Skipped %d unparseable tokens\n", n)
	}

	if err := sess.TrimCurrent(startTime, endTime); err != nil {
		return fmt.Errorf("failed to trim %s: %w", filepath.Base(filename), err)
	}

	trimmed := sess.Current()
	fmt.Printf("✂️  Data trimmed to %.3fs - %.3fs\n", startTime, endTime)
	fmt.Printf("   Data Points: %s → %s\n", original.Meta.DataPoints, trimmed.Meta.DataPoints)
	fmt.Printf("   Duration: %s → %s\n", original.Meta.Duration, trimmed.Meta.Duration)
	fmt.Printf("   RSSI Range: %s\n\n", trimmed.Meta.RSSIRange)

	if showStats {
		st, err := sess.Statistics()
		if err != nil {
			return fmt.Errorf("failed to compute statistics: %w", err)
		}
		text, err := st.Report()
		if err != nil {
			return err
		}
		fmt.Printf("📈 %s\n", text)
	}

	target := filepath.Join(cfg.Export.OutputDir, sess.ExportName())
	if dryRun {
		fmt.Printf("🔍 Dry run: would write %s\n", target)
		return nil
	}

	if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path, err := sess.ExportFile(cfg.Export.OutputDir)
	if err != nil {
		return err
	}

	size := ""
	if info, err := os.Stat(path); err == nil {
		size = fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
	}
	fmt.Printf("💾 Data exported as .sub file: %s%s\n", path, size)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
