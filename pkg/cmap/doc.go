// Package cmap provides the sharded concurrent map behind stockd's
// keyed runtime state, such as the per-client rate limiter registry.
//
// Keys are spread across power-of-two shards by maphash, and each
// shard carries its own RWMutex. Lookups on different keys proceed in
// parallel instead of serializing on one lock, which is what a plain
// mutex-guarded map or sync.Map degrades to under write-heavy load.
//
//	limiters := cmap.New[string, *rate.Limiter]()
//	lim, _ := limiters.GetOrSet(clientIP, rate.NewLimiter(r, b))
//
// GetOrSet and Update run their critical section under the shard
// lock, so read-modify-write sequences need no outer synchronization.
//
// @adr AD-0102
package cmap
