package pool

import (
	"errors"
	"fmt"
	"testing"
)

type slot struct {
	Value int
	Ref   *int
}

func TestObjectPool_CapacityIsExact(t *testing.T) {
	for _, capacity := range []uint32{0, 1, 2, 7, 64} {
		t.Run(fmt.Sprintf("cap=%d", capacity), func(t *testing.T) {
			p := New[slot](capacity)
			for i := uint32(0); i < capacity; i++ {
				if _, err := p.Alloc(); err != nil {
					t.Fatalf("alloc %d failed: %v", i, err)
				}
			}
			if !p.Full() {
				t.Error("expected pool to be full")
			}
			if _, err := p.Alloc(); !errors.Is(err, ErrPoolExhausted) {
				t.Errorf("expected ErrPoolExhausted, got %v", err)
			}
			if p.Size() != capacity {
				t.Errorf("expected size %d, got %d", capacity, p.Size())
			}
		})
	}
}

func TestObjectPool_IndicesAreDistinct(t *testing.T) {
	p := New[slot](16)
	seen := map[uint32]bool{}
	for i := 0; i < 16; i++ {
		idx, err := p.Alloc()
		if err != nil {
			t.Fatal(err)
		}
		if seen[idx] {
			t.Fatalf("index %d handed out twice", idx)
		}
		if idx >= p.Capacity() {
			t.Fatalf("index %d out of capacity", idx)
		}
		seen[idx] = true
	}
}

func TestObjectPool_FreeClearsAndReuses(t *testing.T) {
	p := New[slot](4)
	x := 5
	idx, _ := p.Alloc()
	s := p.Get(idx)
	s.Value = 42
	s.Ref = &x

	p.Free(idx)
	if p.Allocated(idx) {
		t.Error("slot still marked allocated after Free")
	}

	again, err := p.Alloc()
	if err != nil {
		t.Fatal(err)
	}
	if again != idx {
		t.Errorf("expected freed index %d to be reused, got %d", idx, again)
	}
	if got := *p.Get(again); got != (slot{}) {
		t.Errorf("expected zero value after reuse, got %+v", got)
	}
}

func TestObjectPool_PointersStable(t *testing.T) {
	p := New[slot](8)
	first, _ := p.Alloc()
	ptr := p.Get(first)
	ptr.Value = 1

	for i := 0; i < 7; i++ {
		idx, _ := p.Alloc()
		p.Get(idx).Value = 100 + i
	}
	if p.Get(first) != ptr {
		t.Error("slot address changed after further allocations")
	}
	if ptr.Value != 1 {
		t.Errorf("expected value 1, got %d", ptr.Value)
	}
}

func TestObjectPool_Range(t *testing.T) {
	p := New[slot](5)
	for i := 0; i < 4; i++ {
		idx, _ := p.Alloc()
		p.Get(idx).Value = int(idx)
	}
	p.Free(1)

	var visited []uint32
	p.Range(func(index uint32, obj *slot) bool {
		if obj.Value != int(index) {
			t.Errorf("slot %d holds %d", index, obj.Value)
		}
		visited = append(visited, index)
		return true
	})
	if fmt.Sprint(visited) != "[0 2 3]" {
		t.Errorf("unexpected visit order %v", visited)
	}

	count := 0
	p.Range(func(uint32, *slot) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("expected early stop after 1, got %d", count)
	}
}

func TestObjectPool_Allocated(t *testing.T) {
	p := New[slot](2)
	if p.Allocated(0) || p.Allocated(5) {
		t.Error("fresh pool reports allocated slots")
	}
	idx, _ := p.Alloc()
	if !p.Allocated(idx) {
		t.Error("expected allocated slot")
	}
}

func BenchmarkObjectPool_AllocFree(b *testing.B) {
	p := New[slot](1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		idx, err := p.Alloc()
		if err != nil {
			b.Fatal(err)
		}
		p.Free(idx)
	}
}
