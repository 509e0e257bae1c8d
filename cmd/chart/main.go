package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/beelight/beelight/pkg/brightness"
	"github.com/beelight/beelight/pkg/data"
	"github.com/beelight/beelight/pkg/report"
)

// Config holds chart tool configuration
type Config struct {
	CSVPath    string
	OutputPath string

	MinAmbient int
	MaxAmbient int
	BinCount   int
	Steps      int
}

func main() {
	cfg := parseFlags()

	ctx := context.Background()

	provider := data.NewCSVProvider(cfg.CSVPath)
	history, err := provider.FetchObservations(ctx)
	if err != nil {
		log.Fatalf("Failed to load record log: %v", err)
	}
	log.Printf("Loaded %d observations", len(history))

	m, err := brightness.NewModel(brightness.Config{
		MinAmbient:     cfg.MinAmbient,
		MaxAmbient:     cfg.MaxAmbient,
		BinCount:       cfg.BinCount,
		TimeWeight:     0.3,
		RecencyWeight:  0.4,
		ActivityWeight: 0.3,
	})
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}
	m.LoadHistorical(history, time.Now().Unix(), true)

	summary := report.Summarize(history)
	now := time.Now().Unix()

	// Sweep the ambient domain. Each Predict call feeds the smoothing
	// window, so the rendered curve is the smoothed response, same as a
	// live sweep would produce.
	bins := m.Bins()
	sweepMin := bins[0].Min
	sweepMax := bins[len(bins)-1].Max

	xAxis := make([]int, 0, cfg.Steps)
	curve := make([]opts.LineData, 0, cfg.Steps)
	for i := 0; i < cfg.Steps; i++ {
		ambient := sweepMin + i*(sweepMax-sweepMin)/(cfg.Steps-1)
		xAxis = append(xAxis, ambient)
		if value, ok := m.Predict(ambient, now, true); ok {
			curve = append(curve, opts.LineData{Value: value})
		} else {
			curve = append(curve, opts.LineData{Value: nil})
		}
	}

	scatterData := make([]opts.ScatterData, 0, len(history))
	for _, obs := range history {
		if obs.IsManualAdjustment {
			scatterData = append(scatterData, opts.ScatterData{
				Value: []interface{}{obs.AmbientLight, obs.ScreenBrightness},
			})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Brightness model", Width: "1100px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Predicted brightness vs ambient light",
			Subtitle: fmt.Sprintf("%d observations (%d manual), ambient p50=%.0f", summary.Count, summary.ManualCount, summary.AmbientP50),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "ambient light"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "brightness %", Min: 0, Max: 105}),
	)
	line.SetXAxis(xAxis)
	line.AddSeries("prediction", curve, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	scatter := charts.NewScatter()
	scatter.AddSeries("manual adjustments", scatterData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	line.Overlap(scatter)

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}

	log.Printf("Chart written to %s", cfg.OutputPath)
	fmt.Println()
	fmt.Println(summary)
	fmt.Println()
	fmt.Println("Bin boundaries:")
	printBins(bins)
}

func printBins(bins []*brightness.AdaptiveBin) {
	for i, b := range bins {
		fmt.Printf("  bin %2d: [%d, %d) samples=%d\n", i, b.Min, b.Max, b.Size())
	}
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.CSVPath, "csv", "brightness_data.csv", "record log CSV path")
	flag.StringVar(&cfg.OutputPath, "out", "brightness_model.html", "output HTML path")
	flag.IntVar(&cfg.MinAmbient, "min-ambient", 0, "ambient domain lower bound")
	flag.IntVar(&cfg.MaxAmbient, "max-ambient", 2000, "ambient domain upper bound")
	flag.IntVar(&cfg.BinCount, "bins", 10, "number of ambient bins")
	flag.IntVar(&cfg.Steps, "steps", 300, "sweep resolution")

	flag.Parse()

	if cfg.Steps < 2 {
		fmt.Println("Usage: chart [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	return cfg
}
