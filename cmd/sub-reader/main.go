// SubGHz Reader - Utility to display the contents of sub-GHz RAW capture files
// This program prints the header, pulse summary, statistics and a graph of a .sub file
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
	"subghz-inspector/internal/plot"
	"subghz-inspector/internal/report"
	"subghz-inspector/internal/session"
	"subghz-inspector/internal/version"
)

var (
	cfgFile      string
	showSamples  bool
	showStats    bool
	outputFormat string
	showGraph    bool
	graphWidth   int
	graphHeight  int
	pointLimit   string
	pngFile      string
	verbose      bool
	showVersion  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sub-reader [file.sub]",
	Short: "Display contents of sub-GHz RAW capture files",
	Long: `SubGHz Reader displays the header fields and pulse data of RAW .sub capture files.
Useful for checking a capture before trimming or replaying it.

Display modes:
  --samples    List pulses (index, start time, duration, polarity)
  --stats      Show statistical analysis of the pulse durations
  --graph      Draw an ASCII graph of pulse durations over time
  --png        Render the graph as a PNG chart`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Handle version flag
		if showVersion {
			fmt.Println(version.GetVersionInfo("SubGHz Reader"))
			return
		}

		// Require filename if not showing version
		if len(args) == 0 {
			fmt.Fprintf(os.Stderr, "Error: filename required\n")
			cmd.Usage()
			os.Exit(1)
		}

		if err := displayFile(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	defaults := config.DefaultConfig()

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")
	rootCmd.Flags().BoolVarP(&showSamples, "samples", "s", false, "list pulse data")
	rootCmd.Flags().BoolVar(&showStats, "stats", false, "show statistical analysis of pulses")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "output format (table, json, csv, yaml)")
	rootCmd.Flags().BoolVarP(&showGraph, "graph", "g", false, "generate ASCII graph of pulse durations over time")
	rootCmd.Flags().IntVar(&graphWidth, "graph-width", defaults.Graph.Width, "width of the ASCII graph in characters")
	rootCmd.Flags().IntVar(&graphHeight, "graph-height", defaults.Graph.Height, "height of the ASCII graph in lines")
	rootCmd.Flags().StringVarP(&pointLimit, "point-limit", "l", defaults.Display.PointLimit, "max points per polarity class in graphs and listings (number or ALL)")
	rootCmd.Flags().StringVar(&pngFile, "png", "", "write the graph as a PNG chart to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging to stderr")

	viper.BindPFlag("graph.width", rootCmd.Flags().Lookup("graph-width"))
	viper.BindPFlag("graph.height", rootCmd.Flags().Lookup("graph-height"))
	viper.BindPFlag("display.point_limit", rootCmd.Flags().Lookup("point-limit"))
}

// displayFile reads and displays the contents of a capture file
func displayFile(filename string) error {
	// Check if file exists
	fileInfo, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filename)
	} else if err != nil {
		return err
	}

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

	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	opts, err := cfg.PlotOptions()
	if err != nil {
		return err
	}

	sess := session.New()
	if err := sess.LoadFile(filename); err != nil {
		return err
	}

	doc, err := report.New(sess, report.Options{Stats: showStats, Samples: showSamples, Limit: opts.Limit})
	if err != nil {
		return err
	}

	if pngFile != "" {
		if err := writePNG(sess, opts, cfg.Chart.Width, cfg.Chart.Height); err != nil {
			return err
		}
	}

	// Machine readable formats carry everything in one document
	if format != report.FormatTable {
		return report.Write(os.Stdout, doc, format)
	}

	fmt.Printf("SUBGHZ RAW FILE READER %s\n\n", version.GetVersion())

	fmt.Printf("📁 File Information:\n")
	fmt.Printf("Name: %s\n", filepath.Base(filename))
	fmt.Printf("Size: %s (%d bytes)\n", humanize.Bytes(uint64(fileInfo.Size())), fileInfo.Size())
	fmt.Printf("Modified: %s\n\n", fileInfo.ModTime().Format("2006-01-02 15:04:05"))

	displayPulseInfo(sess)

	if err := report.Write(os.Stdout, doc, report.FormatTable); err != nil {
		return err
	}

	if showGraph {
		displayGraph(sess, opts, cfg.Graph.Width, cfg.Graph.Height)
	}

	if pngFile != "" {
		fmt.Printf("🖼️  Chart written to %s\n", pngFile)
	}

	return nil
}

// displayPulseInfo shows a summary of the pulse train
func displayPulseInfo(sess *session.Session) {
	ts := sess.Current().Series
	var positive, negative int
	for _, v := range ts.Samples() {
		if plot.Classify(v) == plot.Negative {
			negative++
		} else {
			positive++
		}
	}

	fmt.Printf("📡 Pulse Information:\n")
	fmt.Printf("Total Pulses: %s\n", humanize.Comma(int64(ts.Len())))
	fmt.Printf("Positive (mark): %s\n", humanize.Comma(int64(positive)))
	fmt.Printf("Negative (space): %s\n", humanize.Comma(int64(negative)))
	fmt.Printf("Capture Duration: %.6f seconds\n", ts.Duration())
	if n := sess.Discarded(); n > 0 {
		fmt.Printf("⚠️  Unparseable tokens skipped: %d\n", n)
	}
	fmt.Println()
}

// displayGraph draws the current series as an ASCII scatter plot
func displayGraph(sess *session.Session, opts plot.Options, width, height int) {
	p, err := sess.Plot(opts)
	if err != nil || p.Displayed() == 0 {
		fmt.Printf("📈 Pulse Graph: No data to display\n\n")
		return
	}

	ts := sess.Current().Series
	fmt.Printf("📈 Pulse Duration Over Time:\n")
	fmt.Printf("Pulses: %d | Duration: %.3f seconds | Range: %d to %d µs\n",
		ts.Len(), ts.Duration(), ts.Min(), ts.Max())
	fmt.Println()

	fmt.Printf("Duration (µs)\n")
	fmt.Print(plot.RenderASCII(p, width, height, nil))
	fmt.Printf("\n%s\n", plot.Legend(p, nil))
	fmt.Printf("%s\n\n", p.Status())
}

// writePNG renders the current series as a PNG chart
func writePNG(sess *session.Session, opts plot.Options, width, height int) error {
	p, err := sess.Plot(opts)
	if err != nil {
		return err
	}

	file, err := os.Create(pngFile)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %w", err)
	}
	defer file.Close()

	if err := plot.RenderPNG(file, p, width, height); err != nil {
		return fmt.Errorf("failed to write PNG: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
