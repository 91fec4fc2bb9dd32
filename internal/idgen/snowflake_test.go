package idgen

import (
	"sync"
	"testing"
	"time"
)

func TestNewSnowflake_ValidatesNodeID(t *testing.T) {
	for _, id := range []int64{-1, MaxNodeID + 1} {
		if _, err := NewSnowflake(id); err == nil {
			t.Fatalf("expected error for node %d", id)
		}
	}
	if _, err := NewSnowflake(MaxNodeID); err != nil {
		t.Fatalf("expected max node accepted, got %v", err)
	}
}

func TestSnowflakeNextID_UniqueAndIncreasing(t *testing.T) {
	sf, err := NewSnowflake(3)
	if err != nil {
		t.Fatalf("new snowflake: %v", err)
	}

	var last uint64
	for i := 0; i < 10000; i++ {
		id, err := sf.NextID()
		if err != nil {
			t.Fatalf("next id: %v", err)
		}
		if id <= last {
			t.Fatalf("expected increasing ids, got %d after %d", id, last)
		}
		if node := (id >> nodeShift) & MaxNodeID; node != 3 {
			t.Fatalf("expected node 3 encoded, got %d", node)
		}
		last = id
	}
}

func TestSnowflakeNextID_Concurrent(t *testing.T) {
	sf, _ := NewSnowflake(1)

	const workers, perWorker = 8, 500
	ids := make(chan uint64, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := sf.NextID()
				if err != nil {
					t.Errorf("next id: %v", err)
					return
				}
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]struct{}, workers*perWorker)
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = struct{}{}
	}
}

func TestSnowflakeNextID_ClockBackwards(t *testing.T) {
	sf, _ := NewSnowflake(0)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sf.now = func() time.Time { return base }
	if _, err := sf.NextID(); err != nil {
		t.Fatalf("next id: %v", err)
	}

	sf.now = func() time.Time { return base.Add(-time.Second) }
	if _, err := sf.NextID(); err == nil {
		t.Fatalf("expected clock backwards error")
	}
}
