package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/veridex/veridex/internal/engine"
	"github.com/veridex/veridex/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Evaluate all check files in a directory in parallel",
	Long: `Batch evaluates every *.json check file in a directory:
- Checks are processed in parallel with a configurable worker count
- Claims within each check are evaluated in parallel as well
- One JSON report is written per check

Example:
  veridex batch ./checks
  veridex batch ./checks --concurrency 4 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent checks")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./veridex-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&sourcesPath, "sources", "", "reputation table YAML (default: built-in table)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

// checkJob evaluates one check file inside the pool.
type checkJob struct {
	ctx      context.Context
	path     string
	engine   *engine.Engine
	renderer *engine.Renderer
}

// checkJobResult reports one processed file.
type checkJobResult struct {
	path  string
	score float64
	err   error
}

func (r *checkJobResult) GetError() error { return r.err }

func (j *checkJob) Execute(poolCtx context.Context) worker.Result {
	// Honor the batch deadline as well as pool shutdown.
	ctx := j.ctx
	select {
	case <-poolCtx.Done():
		return &checkJobResult{path: j.path, err: poolCtx.Err()}
	default:
	}

	check, err := LoadCheck(j.path)
	if err != nil {
		return &checkJobResult{path: j.path, err: err}
	}

	report := j.engine.EvaluateCheck(ctx, *check)

	name := strings.TrimSuffix(filepath.Base(j.path), filepath.Ext(j.path))
	outPath := filepath.Join(outputDir, name+".report.json")
	if err := j.renderer.RenderJSON(report, outPath); err != nil {
		return &checkJobResult{path: j.path, err: err}
	}
	return &checkJobResult{path: j.path, score: report.Score.CredibilityScore}
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	paths, err := filepath.Glob(filepath.Join(args[0], "*.json"))
	if err != nil {
		return fmt.Errorf("list check files: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no *.json check files in %s", args[0])
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	cfg := buildConfig()
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}
	renderer := engine.NewRenderer(cfg.Output.IncludeFooter)

	pool := worker.NewPool(concurrency)
	pool.Start()
	go func() {
		for _, path := range paths {
			pool.Submit(&checkJob{ctx: ctx, path: path, engine: eng, renderer: renderer})
		}
		pool.Close()
	}()

	failures := 0
	for _, result := range pool.Wait() {
		r := result.(*checkJobResult)
		if r.err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.path, r.err)
			continue
		}
		fmt.Printf("✓ %s (score %.0f)\n", r.path, r.score)
	}

	fmt.Printf("\nProcessed %d check(s), %d failed. Reports in %s\n", len(paths), failures, outputDir)
	if failures > 0 {
		return fmt.Errorf("%d of %d checks failed", failures, len(paths))
	}
	return nil
}
