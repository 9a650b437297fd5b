package quorum

// Strategy is a frozen snapshot of a load-optimal strategy: a probability
// distribution over read quorums and one over write quorums, along with
// the node set and capacities the weights were computed against.
// Strategies own their node set and quorum lists independently of the
// QuorumSystem that produced them; nothing about a QuorumSystem can
// change after construction; Strategy simply never aliases mutable state.
type Strategy[T comparable] struct {
	nodes         map[T]*Node[T]
	readCapacity  map[T]float64
	writeCapacity map[T]float64

	reads        []Set[T]
	readWeights  []float64
	writes       []Set[T]
	writeWeights []float64

	// unweightedReadLoad[x] = Σ { readWeights[i] : x ∈ reads[i] }, and
	// symmetrically for writes. Precomputed once so Load/NodeLoad don't
	// re-walk every quorum on every call.
	unweightedReadLoad  map[T]float64
	unweightedWriteLoad map[T]float64

	readSampler  *categoricalSampler
	writeSampler *categoricalSampler
}

func newStrategy[T comparable](
	nodes map[T]*Node[T],
	reads []Set[T], readWeights []float64,
	writes []Set[T], writeWeights []float64,
) *Strategy[T] {
	s := &Strategy[T]{
		nodes:               nodes,
		readCapacity:        make(map[T]float64, len(nodes)),
		writeCapacity:       make(map[T]float64, len(nodes)),
		reads:               reads,
		readWeights:         readWeights,
		writes:              writes,
		writeWeights:        writeWeights,
		unweightedReadLoad:  make(map[T]float64),
		unweightedWriteLoad: make(map[T]float64),
	}

	for x, n := range nodes {
		s.readCapacity[x] = n.ReadCapacity
		s.writeCapacity[x] = n.WriteCapacity
	}

	for i, q := range reads {
		for x := range q {
			s.unweightedReadLoad[x] += readWeights[i]
		}
	}
	for j, q := range writes {
		for x := range q {
			s.unweightedWriteLoad[x] += writeWeights[j]
		}
	}

	s.readSampler = newCategoricalSampler(readWeights)
	s.writeSampler = newCategoricalSampler(writeWeights)
	return s
}

// ReadQuorums returns the read quorums in the order their weights are
// reported, alongside the matching weight slice.
func (s *Strategy[T]) ReadQuorums() ([]Set[T], []float64) {
	return s.reads, s.readWeights
}

// WriteQuorums returns the write quorums in the order their weights are
// reported, alongside the matching weight slice.
func (s *Strategy[T]) WriteQuorums() ([]Set[T], []float64) {
	return s.writes, s.writeWeights
}

// nodeLoadAt returns the per-fraction pointwise node load for a single
// read fraction fr.
func (s *Strategy[T]) nodeLoadAt(x T, fr float64) float64 {
	var load float64
	if rc, ok := s.readCapacity[x]; ok {
		load += fr * s.unweightedReadLoad[x] / rc
	}
	if wc, ok := s.writeCapacity[x]; ok {
		load += (1 - fr) * s.unweightedWriteLoad[x] / wc
	}
	return load
}

func (s *Strategy[T]) maxNodeLoadAt(fr float64) float64 {
	var max float64
	first := true
	for x := range s.nodes {
		l := s.nodeLoadAt(x, fr)
		if first || l > max {
			max = l
			first = false
		}
	}
	return max
}

// Load is the expected worst-case per-node load: Σ_f d(f) · maxₓ
// node_load(x, f). This is distinct from maxₓ Σ_f d(f) · node_load(x, f);
// see the package doc comment for the asymmetry this implies.
func (s *Strategy[T]) Load(dist Distribution) float64 {
	var load float64
	for f, w := range dist {
		load += w * s.maxNodeLoadAt(f)
	}
	return load
}

// Capacity is the expected throughput upper bound in the same units as
// node capacities: 1 / Load(dist).
func (s *Strategy[T]) Capacity(dist Distribution) float64 {
	return 1 / s.Load(dist)
}

// NetworkLoad is fr · Σᵢ |Rᵢ|·rᵢ + (1-fr) · Σⱼ |Wⱼ|·wⱼ, where fr is dist's
// mean read fraction: the expected number of replicas contacted per
// operation.
func (s *Strategy[T]) NetworkLoad(dist Distribution) float64 {
	fr := dist.Mean()

	var readNetworkLoad float64
	for i, q := range s.reads {
		readNetworkLoad += float64(len(q)) * s.readWeights[i]
	}
	var writeNetworkLoad float64
	for j, q := range s.writes {
		writeNetworkLoad += float64(len(q)) * s.writeWeights[j]
	}

	return fr*readNetworkLoad + (1-fr)*writeNetworkLoad
}

// NodeLoad is Σ_f d(f) · node_load(node.X, f): the expected load placed on
// a single node under dist.
func (s *Strategy[T]) NodeLoad(node *Node[T], dist Distribution) float64 {
	var load float64
	for f, w := range dist {
		load += w * s.nodeLoadAt(node.X, f)
	}
	return load
}

// Latency approximates the per-quorum hop count spec.md §1 allows (the
// system "does not model latency beyond a per-quorum hop count"): the
// expected number of replicas a request under dist must wait on, which
// for a one-round quorum protocol coincides with NetworkLoad per
// operation rather than per replica contacted in aggregate.
func (s *Strategy[T]) Latency(dist Distribution) float64 {
	return s.NetworkLoad(dist)
}

// GetReadQuorum samples a read quorum from the categorical distribution
// defined by the read weights, using rng. Sampling never fails once the
// Strategy is constructed.
func (s *Strategy[T]) GetReadQuorum(rng *Rand) Set[T] {
	return s.reads[s.readSampler.sample(rng)]
}

// GetWriteQuorum samples a write quorum from the categorical distribution
// defined by the write weights, using rng.
func (s *Strategy[T]) GetWriteQuorum(rng *Rand) Set[T] {
	return s.writes[s.writeSampler.sample(rng)]
}
