// Command scheduler runs one Master.Run/Reduce cycle against a local
// worker pool built from a config file, dispatching a registered
// user function over a slice of inputs read from flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/AshishBagdane/go-faas-scheduler/internal/config"
	"github.com/AshishBagdane/go-faas-scheduler/internal/factory"
	"github.com/AshishBagdane/go-faas-scheduler/internal/observability"
	"github.com/AshishBagdane/go-faas-scheduler/internal/scheduler"

	_ "github.com/AshishBagdane/go-faas-scheduler/examples/userfuncs"
)

func main() {
	configPath := flag.String("config", "", "path to a scheduler config file (YAML or JSON); uses DefaultConfig if empty")
	symbol := flag.String("symbol", "sum_chunk", "registered user function symbol to dispatch")
	input := flag.String("input", "1,2,3,4,5,6,7,8", "comma-separated integer input")
	observe := flag.Bool("observe", false, "trace and record metrics for this run (set OTEL_EXPORTER_JAEGER_ENDPOINT for a real Jaeger exporter)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "cmd/scheduler")

	ctx := context.Background()
	master, err := buildMaster(ctx, *configPath)
	if err != nil {
		logger.Error("failed to build master", "error", err)
		os.Exit(1)
	}

	if *observe {
		shutdown, err := observability.InitTracing(ctx, "go-faas-scheduler")
		if err != nil {
			logger.Error("failed to init tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error("tracer shutdown failed", "error", err)
			}
		}()
		master = master.
			WithTracer(observability.NewOtelTracer("go-faas-scheduler")).
			WithMetrics(&consoleMetricsCollector{logger: logger})
	}

	values, err := parseInts(*input)
	if err != nil {
		logger.Error("invalid input", "error", err)
		os.Exit(1)
	}

	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}

	result, err := master.Run(ctx, items, *symbol)
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	for i, outcome := range result {
		if outcome.Ok() {
			fmt.Printf("chunk %d: %v\n", i, outcome.Value)
		} else {
			fmt.Printf("chunk %d: error: %v\n", i, outcome.Err)
		}
	}

	aggregated, err := master.Reduce(result, sumInts)
	if err != nil {
		logger.Error("reduce failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("aggregated: %v\n", aggregated)
}

func buildMaster(ctx context.Context, path string) (*scheduler.Master, error) {
	if path == "" {
		return factory.NewMasterFromConfig(ctx, config.DefaultConfig())
	}
	return config.LoadAndBuild(ctx, path)
}

func parseInts(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// consoleMetricsCollector logs every recorded metric through the same
// logger as the rest of this command, in place of a real metrics backend.
type consoleMetricsCollector struct {
	logger *slog.Logger
}

func (c *consoleMetricsCollector) Count(name string, value int, tags map[string]string) {
	c.logger.Info("metric", "kind", "count", "name", name, "value", value, "tags", tags)
}

func (c *consoleMetricsCollector) Gauge(name string, value float64, tags map[string]string) {
	c.logger.Info("metric", "kind", "gauge", "name", name, "value", value, "tags", tags)
}

func (c *consoleMetricsCollector) Histogram(name string, value float64, tags map[string]string) {
	c.logger.Info("metric", "kind", "histogram", "name", name, "value", value, "tags", tags)
}

var _ observability.MetricsCollector = (*consoleMetricsCollector)(nil)

func sumInts(results []any) (any, error) {
	total := 0
	for _, r := range results {
		switch v := r.(type) {
		case int:
			total += v
		}
	}
	return total, nil
}
