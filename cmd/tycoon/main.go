package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"etl-tycoon/internal/engine"
	"etl-tycoon/internal/graph"
	"etl-tycoon/internal/level"
	"etl-tycoon/internal/model"
	"etl-tycoon/internal/sim"
)

func main() {
	levelPath := flag.String("level", "", "level YAML to check the pipeline against")
	strict := flag.Bool("strict", false, "treat category-flow violations as errors")
	jitter := flag.Bool("jitter", false, "apply ±20% latency jitter")
	seed := flag.Int64("seed", 0, "jitter seed")
	services := flag.Bool("services", false, "simulate against the mock service stack")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: tycoon [flags] <pipeline.json>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Printf("❌ Could not read pipeline: %v\n", err)
		os.Exit(1)
	}
	var spec model.PipelineSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		fmt.Printf("❌ Invalid pipeline JSON: %v\n", err)
		os.Exit(1)
	}

	g, err := graph.FromSpec(spec)
	if err != nil {
		fmt.Printf("❌ Invalid pipeline: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New()
	eng.Validator.StrictCategoryFlow = *strict
	eng.Simulator.Jitter = *jitter
	eng.Simulator.Seed = *seed
	if *services {
		stack, err := sim.NewStack()
		if err != nil {
			fmt.Printf("❌ Could not start mock services: %v\n", err)
			os.Exit(1)
		}
		defer stack.Close()
		eng.Simulator.Services = stack
	}

	name := spec.Name
	if name == "" {
		name = flag.Arg(0)
	}
	fmt.Printf("🏗️  Analyzing pipeline %q (%d blocks, %d connections)\n", name, len(spec.Blocks), len(spec.Connections))

	analysis := eng.Analyze(g)
	printValidation(analysis.Validation)
	if analysis.Simulation == nil {
		fmt.Println("🛑 Pipeline is not eligible for simulation; fix the errors above.")
		os.Exit(1)
	}
	printSimulation(*analysis.Simulation)
	printScore(*analysis.Score)

	if *levelPath != "" {
		lvl, err := level.Load(*levelPath)
		if err != nil {
			fmt.Printf("❌ Could not load level: %v\n", err)
			os.Exit(1)
		}
		printLevel(lvl.Evaluate(spec, *analysis.Simulation, *analysis.Score))
	}
}

func printValidation(report model.ValidationReport) {
	if len(report.Findings) == 0 {
		fmt.Println("✅ Validation passed with no findings")
		return
	}
	fmt.Printf("🔍 Validation: %d errors, %d warnings\n", report.ErrorCount(), report.WarningCount())
	for _, f := range report.Findings {
		icon := "⚠️"
		if f.Severity == model.SeverityError {
			icon = "❌"
		}
		where := ""
		if f.BlockID != "" {
			where = " [" + f.BlockID + "]"
		}
		fmt.Printf("   %s %s%s: %s\n", icon, f.Code, where, f.Message)
	}
}

func printSimulation(report model.SimulationReport) {
	fmt.Println("⚙️  Simulation:")
	for _, id := range report.Order {
		m := report.Nodes[id]
		marker := "  "
		if m.Bottleneck {
			marker = "🔥"
		}
		fmt.Printf("   %s %-20s %8.1fms  %6.2f units  %10.0f rec/s\n",
			marker, id, m.LatencyMS, m.CostUnits, m.Throughput)
		for _, w := range m.Warnings {
			fmt.Printf("      ⚠️ %s\n", w)
		}
	}
	fmt.Printf("   Total latency: %.1fms | Total cost: %.2f units | Bottleneck: %.0f rec/s",
		report.TotalLatencyMS, report.TotalCost, report.BottleneckThroughput)
	if report.BottleneckBlockID != "" {
		fmt.Printf(" (%s)", report.BottleneckBlockID)
	}
	fmt.Println()
}

func printScore(score model.ScoreReport) {
	fmt.Printf("🏆 Score: %.1f (latency %.1f, throughput %.1f, quality %.1f, cost penalty %.1f) | grade %s\n",
		score.FinalScore, score.LatencyScore, score.ThroughputScore, score.QualityScore, score.CostPenalty, score.QualityGrade)
	for _, b := range score.Badges {
		fmt.Printf("   🎖️ %s\n", b)
	}
}

func printLevel(res level.Result) {
	if res.Complete {
		fmt.Printf("🎉 Level %s complete! Final score: %.1f\n", res.LevelID, res.FinalScore)
		return
	}
	fmt.Printf("😞 Level %s not complete:\n", res.LevelID)
	for _, reason := range res.Reasons {
		fmt.Printf("   • %s\n", reason)
	}
}
