package cmap

// Range calls fn for every entry until fn returns false. Each shard
// is read-locked only while its entries are visited, so entries added
// or removed on other shards during the walk may or may not be seen.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.RLock()
		for k, v := range s.items {
			if !fn(k, v) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}

// Keys returns a snapshot of all keys in shard order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Count())
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.RLock()
		for k := range s.items {
			keys = append(keys, k)
		}
		s.mu.RUnlock()
	}
	return keys
}
