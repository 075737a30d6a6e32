package nutrition

import "sort"

// tally 計數並記住第一次出現的順序
type tally[K comparable] struct {
	counts map[K]int
	order  []K
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{counts: make(map[K]int)}
}

func (t *tally[K]) add(k K) {
	if _, seen := t.counts[k]; !seen {
		t.order = append(t.order, k)
	}
	t.counts[k]++
}

// top 取出現次數最多的前 n 個，平手依第一次出現順序
func (t *tally[K]) top(n int) []K {
	keys := append([]K(nil), t.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	if keys == nil {
		keys = []K{}
	}
	return keys
}
