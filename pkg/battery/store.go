package battery

import "sync"

// Counters tracks the per-test bookkeeping spec.md §3 requires:
// count >= valid = success + failure, valid_p_val <= valid.
type Counters struct {
	Count      int
	Valid      int
	Success    int
	Failure    int
	ValidPVal  int
}

// PValueStore is a per-test, append-only, mutex-guarded collection of
// p-values. A test that emits k>1 p-values per iteration (CUSUM=2,
// NonOverlapping=#templates, RandomExcursions=8,
// RandomExcursionsVariant=18, Serial=2) uses k partitions; values land
// at fixed offset iteration*partitions+p so final order matches
// iteration order regardless of which worker finished first (spec.md
// §5 ordering guarantee).
type PValueStore struct {
	mu         sync.Mutex
	partitions int
	values     []float64
	counters   []Counters
}

// NewPValueStore allocates a store sized for iterations*partitions
// values up front, avoiding reallocation once workers start appending
// (spec.md §9, "pre-sized to avoid reallocation under concurrency").
func NewPValueStore(iterations, partitions int) *PValueStore {
	if partitions <= 0 {
		partitions = 1
	}
	values := make([]float64, iterations*partitions)
	for i := range values {
		values[i] = NonPValue
	}
	return &PValueStore{
		partitions: partitions,
		values:     values,
		counters:   make([]Counters, partitions),
	}
}

// Partitions returns the number of p-values this store's test emits
// per iteration.
func (s *PValueStore) Partitions() int { return s.partitions }

// Set records the p-values for one iteration across all partitions of
// this test, alpha is used to update the success/failure counters.
// declined marks an iteration where the test opted out entirely
// (precondition not met); in that case every partition slot is left as
// NonPValue and only Count is incremented, per spec.md §4.18.
func (s *PValueStore) Set(iteration int, pvalues []float64, alpha float64, declined bool) {
	if len(pvalues) != s.partitions {
		panic("battery: pvalues length does not match store partition count")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	base := iteration * s.partitions
	for part, p := range pvalues {
		s.counters[part].Count++
		if declined || p == NonPValue {
			s.values[base+part] = NonPValue
			continue
		}
		s.values[base+part] = p
		s.counters[part].Valid++
		s.counters[part].ValidPVal++
		if p >= 0 && p <= 1 && p >= alpha {
			s.counters[part].Success++
		} else {
			s.counters[part].Failure++
		}
	}
}

// Partition returns the slice of p-values belonging to partition idx,
// one per iteration, including NonPValue sentinels.
func (s *PValueStore) Partition(idx int) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, 0, len(s.values)/s.partitions)
	for i := idx; i < len(s.values); i += s.partitions {
		out = append(out, s.values[i])
	}
	return out
}

// CountersFor returns a copy of the accumulated counters for partition
// idx.
func (s *PValueStore) CountersFor(idx int) Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[idx]
}
