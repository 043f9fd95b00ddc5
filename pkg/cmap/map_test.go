package cmap

import (
	"fmt"
	"sync"
	"testing"
)

func TestSetGet(t *testing.T) {
	m := New[string, int]()

	m.Set("10.0.0.1", 3)
	m.Set("10.0.0.2", 7)

	if v, ok := m.Get("10.0.0.1"); !ok || v != 3 {
		t.Errorf("Get(10.0.0.1) = %d, %v, want 3, true", v, ok)
	}
	if v, ok := m.Get("10.0.0.2"); !ok || v != 7 {
		t.Errorf("Get(10.0.0.2) = %d, %v, want 7, true", v, ok)
	}
	if _, ok := m.Get("10.0.0.3"); ok {
		t.Error("Get on absent key reported ok")
	}
}

func TestSetReplaces(t *testing.T) {
	m := New[int64, int64]()

	m.Set(1, 100)
	m.Set(1, 99)

	if v, _ := m.Get(1); v != 99 {
		t.Errorf("value after second Set = %d, want 99", v)
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
}

func TestGetOrSet(t *testing.T) {
	m := New[string, int]()

	v, present := m.GetOrSet("client-a", 1)
	if present || v != 1 {
		t.Errorf("first GetOrSet = %d, %v, want 1, false", v, present)
	}

	v, present = m.GetOrSet("client-a", 2)
	if !present || v != 1 {
		t.Errorf("second GetOrSet = %d, %v, want 1, true", v, present)
	}
}

func TestGetOrSetSingleWinner(t *testing.T) {
	m := New[string, *int]()

	const clients = 64
	var wg sync.WaitGroup
	got := make([]*int, clients)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			candidate := new(int)
			got[i], _ = m.GetOrSet("10.1.2.3", candidate)
		}(i)
	}
	wg.Wait()

	for i := 1; i < clients; i++ {
		if got[i] != got[0] {
			t.Fatalf("goroutine %d observed a different pointer than goroutine 0", i)
		}
	}
}

func TestUpdate(t *testing.T) {
	m := New[string, int]()

	v := m.Update("hits", func(cur int, exists bool) int {
		if exists {
			t.Error("Update on absent key reported exists")
		}
		return cur + 1
	})
	if v != 1 {
		t.Errorf("first Update = %d, want 1", v)
	}

	v = m.Update("hits", func(cur int, exists bool) int {
		if !exists {
			t.Error("Update on present key reported absent")
		}
		return cur + 1
	})
	if v != 2 {
		t.Errorf("second Update = %d, want 2", v)
	}
}

func TestUpdateConcurrentCounter(t *testing.T) {
	m := New[string, int]()

	const workers = 16
	const perWorker = 200

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Update("requests", func(cur int, _ bool) int { return cur + 1 })
			}
		}()
	}
	wg.Wait()

	if v, _ := m.Get("requests"); v != workers*perWorker {
		t.Errorf("counter = %d, want %d", v, workers*perWorker)
	}
}

func TestDelete(t *testing.T) {
	m := New[string, int]()

	m.Set("stale", 1)
	m.Delete("stale")
	if _, ok := m.Get("stale"); ok {
		t.Error("key still present after Delete")
	}

	// Absent key is a no-op.
	m.Delete("never-set")
}

func TestCountAndClear(t *testing.T) {
	m := New[string, int]()

	for i := 0; i < 50; i++ {
		m.Set(fmt.Sprintf("198.51.100.%d", i), i)
	}
	if m.Count() != 50 {
		t.Errorf("Count() = %d, want 50", m.Count())
	}

	m.Clear()
	if m.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", m.Count())
	}
	if _, ok := m.Get("198.51.100.7"); ok {
		t.Error("entry survived Clear")
	}
}

func TestNewWithShards(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{1, 1},
		{8, 8},
		{10, 16},
		{100, 128},
		{0, DefaultShardCount},
		{-3, DefaultShardCount},
	}
	for _, tc := range cases {
		m := NewWithShards[string, int](tc.n)
		if got := m.ShardCount(); got != tc.want {
			t.Errorf("NewWithShards(%d).ShardCount() = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestStructKey(t *testing.T) {
	type route struct {
		Method string
		Path   string
	}
	m := New[route, int]()

	m.Set(route{"POST", "/api/order/{id}"}, 1)
	if v, ok := m.Get(route{"POST", "/api/order/{id}"}); !ok || v != 1 {
		t.Errorf("Get(struct key) = %d, %v, want 1, true", v, ok)
	}
	if _, ok := m.Get(route{"GET", "/api/order/{id}"}); ok {
		t.Error("distinct struct key matched")
	}
}

func TestConcurrentMixedOps(t *testing.T) {
	m := New[int, int]()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := i % 64
				switch i % 4 {
				case 0:
					m.Set(key, w)
				case 1:
					m.Get(key)
				case 2:
					m.GetOrSet(key, w)
				case 3:
					m.Delete(key)
				}
			}
		}(w)
	}
	wg.Wait()
}
