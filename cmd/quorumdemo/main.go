package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/quorumkit/quorumkit/internal/solver"
	"github.com/quorumkit/quorumkit/pkg/quorum"
)

var (
	version   = "0.1.0"
	buildTime = "unknown"
)

func main() {
	var (
		nodeNames    = flag.String("nodes", "a,b,c", "Comma-separated node identifiers")
		topology     = flag.String("topology", "majority", "Quorum topology: majority, or, and, grid")
		readFraction = flag.Float64("read-fraction", 0.5, "Read fraction used for the load-optimal strategy")
		configFile   = flag.String("config", "", "Solver configuration file path")
		timeout      = flag.Duration("timeout", 10*time.Second, "Timeout for resilience and strategy computation")
		showVersion  = flag.Bool("version", false, "Show version")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("quorumdemo v%s (built: %s)\n", version, buildTime)
		os.Exit(0)
	}

	var cfg *solver.Config
	var err error
	if *configFile != "" {
		cfg, err = solver.LoadConfigFromFile(*configFile)
		if err != nil {
			log.Fatalf("Failed to load solver config: %v", err)
		}
	} else {
		cfg = solver.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid solver configuration: %v", err)
	}

	names := splitAndTrim(*nodeNames, ",")
	if len(names) == 0 {
		log.Fatalf("At least one node identifier is required")
	}

	reads, err := buildTopology(*topology, names)
	if err != nil {
		log.Fatalf("Failed to build topology %q: %v", *topology, err)
	}

	log.Printf("Building quorum system: topology=%s nodes=%v", *topology, names)

	qs, err := quorum.FromReads(reads, quorum.WithSolverConfig[string](cfg))
	if err != nil {
		log.Fatalf("Failed to construct quorum system: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resilience, err := qs.Resilience(ctx)
	if err != nil {
		log.Fatalf("Failed to compute resilience: %v", err)
	}
	log.Printf("resilience=%d", resilience)

	dist, err := quorum.NewPointDistribution(*readFraction)
	if err != nil {
		log.Fatalf("Invalid read fraction: %v", err)
	}

	strategy, err := qs.Strategy(ctx, dist)
	if err != nil {
		log.Fatalf("Failed to compute load-optimal strategy: %v", err)
	}

	readQuorums, readWeights := strategy.ReadQuorums()
	fmt.Println("read quorums:")
	for i, q := range readQuorums {
		fmt.Printf("  %v  weight=%.4f\n", q.Slice(), readWeights[i])
	}

	writeQuorums, writeWeights := strategy.WriteQuorums()
	fmt.Println("write quorums:")
	for i, q := range writeQuorums {
		fmt.Printf("  %v  weight=%.4f\n", q.Slice(), writeWeights[i])
	}

	fmt.Printf("load=%.4f capacity=%.4f network_load=%.4f\n",
		strategy.Load(dist), strategy.Capacity(dist), strategy.NetworkLoad(dist))
}

// buildTopology constructs a read expression over leaves named by names,
// matching one of a handful of shapes useful for a demo run. "grid"
// requires a number of names divisible into equal-sized rows; it falls
// back to a single row if names doesn't factor evenly into 2 or more rows.
func buildTopology(topology string, names []string) (quorum.Expr[string], error) {
	leaves := make([]quorum.Expr[string], len(names))
	for i, name := range names {
		n, err := quorum.NewNode(name)
		if err != nil {
			return nil, err
		}
		leaves[i] = n.Leaf()
	}

	switch topology {
	case "or":
		return quorum.Or[string](leaves...), nil
	case "and":
		return quorum.And[string](leaves...), nil
	case "majority":
		return quorum.Majority[string](leaves)
	case "grid":
		return buildGrid(names, leaves)
	default:
		return nil, fmt.Errorf("unknown topology %q", topology)
	}
}

func buildGrid(names []string, leaves []quorum.Expr[string]) (quorum.Expr[string], error) {
	rows := gridRowCount(len(names))
	if rows < 2 {
		return quorum.And[string](leaves...), nil
	}

	cols := len(names) / rows
	rowExprs := make([]quorum.Expr[string], rows)
	for r := 0; r < rows; r++ {
		rowExprs[r] = quorum.And[string](leaves[r*cols : (r+1)*cols]...)
	}
	return quorum.Or[string](rowExprs...), nil
}

// gridRowCount returns the largest divisor of n in [2, sqrt(n)], or 1 if n
// has no such divisor (prime or too small to form a grid).
func gridRowCount(n int) int {
	best := 1
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			best = d
		}
	}
	return best
}

func splitAndTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
