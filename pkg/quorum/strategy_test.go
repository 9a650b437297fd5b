package quorum

import (
	"context"
	"testing"
)

func buildMajorityThreeSystem(t *testing.T) *QuorumSystem[string] {
	t.Helper()
	a, b, c := mustNode(t, "a"), mustNode(t, "b"), mustNode(t, "c")
	maj, err := Majority[string]([]Expr[string]{a.Leaf(), b.Leaf(), c.Leaf()})
	if err != nil {
		t.Fatalf("Majority: %v", err)
	}
	qs, err := FromReads[string](maj)
	if err != nil {
		t.Fatalf("FromReads: %v", err)
	}
	return qs
}

func TestNetworkLoadCountsReplicasContacted(t *testing.T) {
	qs := buildMajorityThreeSystem(t)
	dist, err := NewPointDistribution(0.5)
	if err != nil {
		t.Fatalf("NewPointDistribution: %v", err)
	}
	strat, err := qs.Strategy(context.Background(), dist)
	if err != nil {
		t.Fatalf("Strategy: %v", err)
	}

	// Every read and write quorum in majority-of-3 has size 2.
	if got := strat.NetworkLoad(dist); !almostEqual(got, 2.0, 1e-4) {
		t.Errorf("expected network load 2.0, got %v", got)
	}
}

func TestLatencyMatchesNetworkLoad(t *testing.T) {
	qs := buildMajorityThreeSystem(t)
	dist, err := NewPointDistribution(0.5)
	if err != nil {
		t.Fatalf("NewPointDistribution: %v", err)
	}
	strat, err := qs.Strategy(context.Background(), dist)
	if err != nil {
		t.Fatalf("Strategy: %v", err)
	}

	if strat.Latency(dist) != strat.NetworkLoad(dist) {
		t.Errorf("expected Latency to equal NetworkLoad, got %v vs %v", strat.Latency(dist), strat.NetworkLoad(dist))
	}
}

func TestNodeLoadMatchesMaxAcrossSymmetricNodes(t *testing.T) {
	qs := buildMajorityThreeSystem(t)
	dist, err := NewPointDistribution(0.5)
	if err != nil {
		t.Fatalf("NewPointDistribution: %v", err)
	}
	strat, err := qs.Strategy(context.Background(), dist)
	if err != nil {
		t.Fatalf("Strategy: %v", err)
	}

	nodes := qs.reads.Nodes()
	for _, n := range nodes {
		if got := strat.NodeLoad(n, dist); !almostEqual(got, 2.0/3.0, 1e-3) {
			t.Errorf("expected symmetric node load 2/3 for node %v, got %v", n.X, got)
		}
	}
}

func TestGetReadQuorumAndGetWriteQuorumReturnKnownQuorums(t *testing.T) {
	qs := buildMajorityThreeSystem(t)
	dist, err := NewPointDistribution(0.5)
	if err != nil {
		t.Fatalf("NewPointDistribution: %v", err)
	}
	strat, err := qs.Strategy(context.Background(), dist)
	if err != nil {
		t.Fatalf("Strategy: %v", err)
	}

	readQuorums, _ := strat.ReadQuorums()
	writeQuorums, _ := strat.WriteQuorums()

	rng := NewRand(1, 1)
	for i := 0; i < 50; i++ {
		rq := strat.GetReadQuorum(rng)
		if !containsSet(readQuorums, rq) {
			t.Fatalf("GetReadQuorum returned a quorum not in the strategy's read quorum list: %v", rq.Slice())
		}
		wq := strat.GetWriteQuorum(rng)
		if !containsSet(writeQuorums, wq) {
			t.Fatalf("GetWriteQuorum returned a quorum not in the strategy's write quorum list: %v", wq.Slice())
		}
	}
}

func containsSet(sets []Set[string], target Set[string]) bool {
	for _, s := range sets {
		if len(s) != len(target) {
			continue
		}
		match := true
		for x := range s {
			if !target.Contains(x) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
