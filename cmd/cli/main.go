package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wavescope/adapters/memstore"
	"wavescope/adapters/tabular"
	"wavescope/app"
	"wavescope/internal/config"
	"wavescope/internal/cursor"
	"wavescope/internal/frame"
	"wavescope/internal/plot"
	"wavescope/internal/testkit"
	"wavescope/ui"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wavescope",
		Short: "Wavescope CLI for inspecting and measuring waveform captures",
	}

	rootCmd.AddCommand(
		newColumnsCmd(),
		newStatsCmd(),
		newRenderCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newColumnsCmd() *cobra.Command {
	var skipRows int

	cmd := &cobra.Command{
		Use:   "columns [data-file]",
		Short: "List the columns of a waveform file after cleaning",
		Long: `Load a CSV or Excel file through the cleaning pipeline and list the
columns that survive, with their inferred types.

Example: wavescope columns capture.csv --skip-rows 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(args[0], skipRows)
		},
	}

	cmd.Flags().IntVar(&skipRows, "skip-rows", 0, "Leading rows to skip before the header")

	return cmd
}

func runColumns(path string, skipRows int) error {
	f, err := loadFrame(path, skipRows, "")
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d rows, %d columns\n\n", filepath.Base(path), f.Nrow(), f.Ncol())
	fmt.Printf("%-24s %-10s %s\n", "COLUMN", "TYPE", "PLOTTABLE")
	for _, info := range f.ColumnInfos() {
		plottable := "-"
		if info.Numeric {
			plottable = "yes"
		}
		fmt.Printf("%-24s %-10s %s\n", info.Name, info.Type, plottable)
	}

	return nil
}

func newStatsCmd() *cobra.Command {
	var skipRows int
	var index string
	var columns []string
	var fromLabel, toLabel string

	cmd := &cobra.Command{
		Use:   "stats [data-file]",
		Short: "Measure waveforms over a row range",
		Long: `Aggregate the selected waveforms over an inclusive row range, the same
measurement a workbench cursor performs. Range bounds are row labels of
the chosen index; omitted bounds default to the first and last row.

Example: wavescope stats capture.csv --index t --from 0.5 --to 1.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args[0], skipRows, index, columns, fromLabel, toLabel)
		},
	}

	cmd.Flags().IntVar(&skipRows, "skip-rows", 0, "Leading rows to skip before the header")
	cmd.Flags().StringVar(&index, "index", "", "Column used as the row index")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Waveforms to measure (default: all numeric columns)")
	cmd.Flags().StringVar(&fromLabel, "from", "", "First row label of the range")
	cmd.Flags().StringVar(&toLabel, "to", "", "Last row label of the range")

	return cmd
}

func runStats(path string, skipRows int, index string, columns []string, fromLabel, toLabel string) error {
	f, err := loadFrame(path, skipRows, index)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		columns = f.NumericColumns()
	}

	lo, hi, err := resolveBounds(f, fromLabel, toLabel)
	if err != nil {
		return err
	}

	c := cursor.Build(1, f, columns, cursor.State{Enabled: true, MinPos: lo, MaxPos: hi})
	if c.HasError() {
		return fmt.Errorf("%s", c.ErrorMessage())
	}

	fmt.Printf("Range [%s, %s] covers %d rows\n\n", c.MinLabel, c.MaxLabel, c.RowCount())
	fmt.Printf("%-24s %12s %12s %12s %12s\n", "WAVEFORM", "MEAN", "STD", "MIN", "MAX")
	for _, s := range c.Stats {
		fmt.Printf("%-24s %12s %12s %12s %12s\n",
			s.Column, fnum(s.Mean), fnum(s.Std), fnum(s.Min), fnum(s.Max))
	}

	return nil
}

func newRenderCmd() *cobra.Command {
	var skipRows, width, height int
	var index, out string
	var columns []string
	var cursorRanges []string

	cmd := &cobra.Command{
		Use:   "render [data-file]",
		Short: "Render the waveform chart to an SVG or PNG file",
		Long: `Render the selected waveforms as a line chart. Each --cursor range adds
a shaded band and per-waveform mean lines over that range, the same
overlay a workbench cursor draws. An omitted bound defaults to the
matching end of the data.

Example: wavescope render capture.csv -o capture.svg --index t --cursor 0.5:1.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0], out, skipRows, index, columns, cursorRanges, width, height)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "chart.svg", "Output file, .svg or .png")
	cmd.Flags().IntVar(&skipRows, "skip-rows", 0, "Leading rows to skip before the header")
	cmd.Flags().StringVar(&index, "index", "", "Column used as the x axis")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Waveforms to draw (default: all numeric columns)")
	cmd.Flags().StringArrayVar(&cursorRanges, "cursor", nil, "Cursor range as from:to row labels (repeatable, up to 3)")
	cmd.Flags().IntVar(&width, "width", 0, "Chart width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Chart height in pixels")

	return cmd
}

func runRender(path, out string, skipRows int, index string, columns []string, cursorRanges []string, width, height int) error {
	if len(cursorRanges) > cursor.Count {
		return fmt.Errorf("at most %d cursors can be drawn", cursor.Count)
	}

	f, err := loadFrame(path, skipRows, index)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		columns = f.NumericColumns()
	}

	canvas, err := plot.Build(f, columns)
	if err != nil {
		return err
	}
	canvas.SetSize(width, height)

	for i, arg := range cursorRanges {
		fromLabel, toLabel, ok := strings.Cut(arg, ":")
		if !ok {
			return fmt.Errorf("invalid cursor range %q (use from:to)", arg)
		}
		lo, hi, err := resolveBounds(f, fromLabel, toLabel)
		if err != nil {
			return err
		}
		c := cursor.Build(i+1, f, columns, cursor.State{Enabled: true, MinPos: lo, MaxPos: hi})
		if c.HasError() {
			return fmt.Errorf("cursor %d: %s", c.ID, c.ErrorMessage())
		}
		c.Draw(canvas, plot.BandColor(i))
	}

	var format plot.Format
	switch strings.ToLower(filepath.Ext(out)) {
	case ".svg":
		format = plot.SVG
	case ".png":
		format = plot.PNG
	default:
		return fmt.Errorf("unsupported output extension %q (use .svg or .png)", filepath.Ext(out))
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := canvas.Render(format, file); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}

	fmt.Printf("Wrote %s (%d waveforms, %d rows)\n", out, len(columns), f.Nrow())
	return nil
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Wavescope workbench server",
		Long: `Start the web workbench. Configuration is read from the environment:
- PORT (default: 8080)
- WAVESCOPE_MAX_UPLOAD_MB (default: 50)
- WAVESCOPE_PARSE_CONCURRENCY (default: 4)
- WAVESCOPE_DATASET_TTL (default: 2h)
- WAVESCOPE_DATASET_CAP (default: 16)
- WAVESCOPE_DEMO (default: false; preload a synthetic dataset)

Example: WAVESCOPE_DEMO=true wavescope serve --port 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")

	return cmd
}

func runServe(ctx context.Context, port string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port != "" {
		appConfig.Server.Port = port
	}

	repo := memstore.New(memstore.Config{
		TTL:      appConfig.Store.TTL,
		Capacity: appConfig.Store.Capacity,
	})
	datasets := app.NewDatasetService(repo, tabular.NewReader(), appConfig.Upload.MaxUploadBytes, appConfig.Upload.ParseConcurrency)
	workbench := app.NewWorkbenchService(repo)

	if appConfig.Demo.Enabled {
		if err := datasets.Seed(ctx, testkit.NewKit().Dataset("demo-waves.csv")); err != nil {
			return fmt.Errorf("failed to seed demo dataset: %w", err)
		}
		log.Println("Demo dataset loaded")
	}

	server, err := ui.NewApp(ui.Config{Port: appConfig.Server.Port}, datasets, workbench)
	if err != nil {
		return fmt.Errorf("failed to create UI app: %w", err)
	}

	log.Printf("Starting Wavescope on http://localhost:%s", appConfig.Server.Port)
	return server.Start()
}

func loadFrame(path string, skipRows int, index string) (*frame.Frame, error) {
	records, err := tabular.NewReader().ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	return frame.Build(records, frame.Options{SkipRows: skipRows, IndexColumn: index})
}

// resolveBounds turns optional from/to labels into row positions,
// defaulting an omitted bound to the matching end of the frame.
func resolveBounds(f *frame.Frame, fromLabel, toLabel string) (int, int, error) {
	labels := f.IndexLabels()
	if len(labels) == 0 {
		return 0, 0, fmt.Errorf("no rows to measure")
	}
	if fromLabel == "" {
		fromLabel = labels[0]
	}
	if toLabel == "" {
		toLabel = labels[len(labels)-1]
	}
	return f.ResolveRange(fromLabel, toLabel)
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
