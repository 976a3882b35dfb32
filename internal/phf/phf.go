// Package phf builds and evaluates minimal perfect hash tables over fixed
// string key sets.  Construction runs in the snapshot generator; evaluation
// is a single candidate-slot probe with no collision chain, so embedded
// lookups cost one hash plus one verification of the stored entry.
//
// The scheme is a two-level displacement hash: a first-level hash assigns
// every key to a bucket, and each bucket carries a seed under which all of
// its keys land on distinct free slots.  Buckets holding a single key skip
// the seed search and store their slot directly, encoded as a negative
// value.
package phf

import (
	"fmt"
	"slices"
	"sort"
)

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211

	// maxSeed bounds the per-bucket seed search.  With ~4 keys per bucket
	// the search succeeds within a few hundred attempts in practice; hitting
	// the bound means construction failed rather than looping forever.
	maxSeed = 1 << 24
)

// hash is FNV-1a folded over a seed and then the key bytes, finished with
// a Murmur3-style avalanche.  The finisher is load-bearing: the FNV fold
// alone is linear in the low bits, so the parity difference between two
// keys would be the same under every seed, and no seed could ever separate
// such keys modulo an even table size.  Seed 0 is reserved for the
// bucket-selection level; slot seeds start at 1.
func hash(seed uint64, key string) uint64 {
	h := uint64(fnvOffset) ^ seed
	h *= fnvPrime
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= fnvPrime
	}
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 29
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 32
	return h
}

// Table is a minimal perfect hash over a fixed key set of size N.  Seeds
// holds one entry per bucket: values >= 1 are slot-hash seeds, negative
// values v directly assign slot -v-1.  The zero Table is valid and maps
// every key to slot 0.
//
// Slot is total: keys outside the construction set still map to some slot,
// so callers verify the entry found there against the queried key.
type Table struct {
	Seeds []int32
	N     uint32
}

// Slot returns the table slot for key, in [0, N).
func (t *Table) Slot(key string) uint32 {
	if t.N == 0 || len(t.Seeds) == 0 {
		return 0
	}
	d := t.Seeds[hash(0, key)%uint64(len(t.Seeds))]
	if d < 0 {
		return uint32(-d - 1)
	}
	return uint32(hash(uint64(d), key) % uint64(t.N))
}

// Build constructs a minimal perfect hash over keys, which must be
// distinct.  The resulting Table maps the i-th key of some permutation to
// slot i: every slot in [0, len(keys)) is hit exactly once.
func Build(keys []string) (Table, error) {
	n := len(keys)
	if n == 0 {
		return Table{}, nil
	}

	seen := make(map[string]struct{}, n)
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			return Table{}, fmt.Errorf("phf: duplicate key %q", k)
		}
		seen[k] = struct{}{}
	}

	// Level 1: distribute keys over buckets, ~4 keys per bucket.
	m := (n + 3) / 4
	buckets := make([][]string, m)
	for _, k := range keys {
		b := hash(0, k) % uint64(m)
		buckets[b] = append(buckets[b], k)
	}

	// Largest buckets first: they need the most free slots, so they get
	// first pick while the slot array is emptiest.
	order := make([]int, 0, m)
	var singles []int
	for b, bk := range buckets {
		switch {
		case len(bk) > 1:
			order = append(order, b)
		case len(bk) == 1:
			singles = append(singles, b)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		return len(buckets[order[i]]) > len(buckets[order[j]])
	})

	seeds := make([]int32, m)
	occupied := make([]bool, n)
	trial := make([]uint64, 0, 8)

	for _, b := range order {
		bk := buckets[b]
		assigned := false
		for seed := uint64(1); seed <= maxSeed; seed++ {
			trial = trial[:0]
			ok := true
			for _, k := range bk {
				s := hash(seed, k) % uint64(n)
				if occupied[s] || slices.Contains(trial, s) {
					ok = false
					break
				}
				trial = append(trial, s)
			}
			if ok {
				for _, s := range trial {
					occupied[s] = true
				}
				seeds[b] = int32(seed)
				assigned = true
				break
			}
		}
		if !assigned {
			return Table{}, fmt.Errorf("phf: no collision-free seed for a bucket of %d keys", len(bk))
		}
	}

	// Single-key buckets take the remaining free slots directly.  Exactly
	// as many free slots remain as there are single-key buckets.
	fi := 0
	for _, b := range singles {
		for occupied[fi] {
			fi++
		}
		seeds[b] = -int32(fi) - 1
		occupied[fi] = true
	}

	return Table{Seeds: seeds, N: uint32(n)}, nil
}
