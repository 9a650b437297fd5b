// Package quorum computes and analyzes read/write quorum systems for
// replicated storage and consensus protocols.
//
// A quorum system is built from an Expr over a set of Node values: the
// expression denotes the read quorums (and, by duality or explicit
// construction, the write quorums). The package answers three questions
// about a QuorumSystem: which sets are quorums, how many node failures it
// tolerates (resilience), and, given a workload's read/write mix, how to
// spread requests over quorums to minimize the busiest node's load
// (strategy).
//
// Known limitation: Strategy's load-optimal weights are computed for the
// mean read fraction of a workload distribution, while Strategy.Load
// evaluates the expected worst-case load across the whole distribution.
// The two coincide for a point-mass distribution but can diverge for a
// spread one; the optimizer is only proven optimal at the mean. This
// asymmetry is inherent to the formulation and is not "fixed" here.
//
// Quorums produced by an Expr need not be minimal; non-minimal quorums are
// accepted and have well-defined (if possibly suboptimal) semantics.
package quorum
