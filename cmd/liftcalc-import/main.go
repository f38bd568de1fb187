package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftcalc/internal/ingest"
	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/rpe"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	csvPath := flag.String("path", "", "path to an Alpha Progression CSV export (or pass it as the first argument)")
	bias := flag.String("bias", "low", "RPE chart bias: low, moderate or high")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftcalc-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	path := *csvPath
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftcalc-import [-bias low] export.csv\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	b, err := rpe.ParseBias(*bias)
	if err != nil {
		log.Error("invalid -bias", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(path)
	if err != nil {
		log.Error("failed to open export", "path", path, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	result, err := alpha.NewProvider(b, log).Ingest(context.Background(), f)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	printSummary(result)
}

func printSummary(result *ingest.Result) {
	fmt.Println()
	fmt.Println("=== e1RM Summary ===")
	fmt.Printf("  Sessions:         %d\n", result.SessionsReceived)
	fmt.Printf("  Working sets:     %d\n", result.SetsReceived)
	fmt.Printf("  Estimated:        %d\n", result.SetsEstimated)
	fmt.Printf("  Skipped:          %d (bodyweight-plus or off-chart)\n", result.SetsSkipped)
	fmt.Printf("  Bias:             %s\n", result.Bias)
	if result.Message != "" {
		fmt.Printf("  Note:             %s\n", result.Message)
	}

	if len(result.Exercises) > 0 {
		fmt.Println()
		fmt.Printf("  %-32s %8s  %s\n", "Exercise", "e1RM", "Best set")
		for _, e := range result.Exercises {
			fmt.Printf("  %-32s %8.1f  %g kg x %d @ RPE %g (%s)\n",
				e.Exercise, e.E1RM, e.WeightKg, e.Reps, e.RPE, e.Date.Format("2006-01-02"))
		}
	}
	fmt.Println()
}
