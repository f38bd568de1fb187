package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftcalc/internal/config"
	"github.com/claude/liftcalc/internal/export"
	"github.com/claude/liftcalc/internal/rpe"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (plate inventory, bar, strategy)")
	out := flag.String("out", "", "output .xlsx path (required)")
	loads := flag.String("loads", "", "add a plate-loading sheet for from:to:step, e.g. 60:200:2.5")
	e1rm := flag.Float64("e1rm", 0, "add a working-weight sheet for this e1RM in kg")
	bias := flag.String("bias", "", "bias for the working-weight sheet (default from config)")
	round := flag.Float64("round", 2.5, "round working weights down to this increment")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftcalc-chart", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *out == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftcalc-chart -out chart.xlsx [-loads 60:200:2.5] [-e1rm 150 -bias low]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	wb, err := export.New()
	if err != nil {
		log.Error("failed to create workbook", "error", err)
		os.Exit(1)
	}
	defer wb.Close()

	if err := wb.AddRPECharts(); err != nil {
		log.Error("RPE charts failed", "error", err)
		os.Exit(1)
	}

	if *loads != "" {
		r, err := export.ParseLoadRange(*loads)
		if err != nil {
			log.Error("invalid -loads", "error", err)
			os.Exit(1)
		}
		if err := wb.AddLoadChart(cfg.Plates.LoadRequest(), cfg.Plates.SolverStrategy(), r); err != nil {
			log.Error("load chart failed", "error", err)
			os.Exit(1)
		}
		log.Info("load chart added", "from", r.From, "to", r.To, "step", r.Step)
	}

	if *e1rm > 0 {
		b := cfg.E1RM.Request().Bias
		if *bias != "" {
			if b, err = rpe.ParseBias(*bias); err != nil {
				log.Error("invalid -bias", "error", err)
				os.Exit(1)
			}
		}
		if err := wb.AddWorkingSets(*e1rm, b, *round); err != nil {
			log.Error("working sets failed", "error", err)
			os.Exit(1)
		}
		log.Info("working-weight sheet added", "e1rm", *e1rm, "bias", b)
	}

	if err := wb.SaveAs(*out); err != nil {
		log.Error("save failed", "error", err)
		os.Exit(1)
	}
	log.Info("workbook written", "path", *out)
}
