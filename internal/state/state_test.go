package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/isochrone"
	"github.com/anis00/mawaquit/internal/praytimes"
)

func testKey(day int) SweepKey {
	return SweepKey{
		Date:    fmt.Sprintf("2024-06-%02d", day),
		Country: "MAR",
		Prayer:  praytimes.EventIsha,
		Method:  praytimes.MethodMWL,
		Bands:   false,
	}
}

func testResult(minute int) SweepResult {
	return SweepResult{
		Curves: []isochrone.Curve{
			{
				Minute: minute,
				Label:  "19:00",
				Points: []geo.Point{{Lat: 33, Lon: -7}, {Lat: 34, Lon: -7.1}},
			},
		},
	}
}

func TestNewCache(t *testing.T) {
	c := NewCache(8)
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestNewCache_ClampsMax(t *testing.T) {
	c := NewCache(0)

	c.mu.RLock()
	max := c.max
	c.mu.RUnlock()

	if max != 32 {
		t.Errorf("max = %d, want 32", max)
	}
}

func TestCache_PutGet(t *testing.T) {
	c := NewCache(8)

	key := testKey(21)
	c.Put(key, testResult(1140))

	res, ok := c.Get(key)
	if !ok {
		t.Fatal("Get missed a stored key")
	}
	if len(res.Curves) != 1 {
		t.Fatalf("curves = %d, want 1", len(res.Curves))
	}
	if res.Curves[0].Minute != 1140 {
		t.Errorf("minute = %d, want 1140", res.Curves[0].Minute)
	}
	if res.Bands != nil {
		t.Errorf("bands = %v, want nil for a lines result", res.Bands)
	}

	if _, ok := c.Get(testKey(22)); ok {
		t.Error("Get hit a key that was never stored")
	}
}

func TestCache_KeyDistinguishesBandsMode(t *testing.T) {
	c := NewCache(8)

	lines := testKey(21)
	c.Put(lines, testResult(1140))

	bands := lines
	bands.Bands = true
	if _, ok := c.Get(bands); ok {
		t.Error("bands key hit a lines result")
	}
}

func TestCache_Overwrite(t *testing.T) {
	c := NewCache(8)

	key := testKey(21)
	c.Put(key, testResult(1140))
	c.Put(key, testResult(1200))

	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 after overwrite", c.Len())
	}

	res, ok := c.Get(key)
	if !ok {
		t.Fatal("Get missed after overwrite")
	}
	if res.Curves[0].Minute != 1200 {
		t.Errorf("minute = %d, want the newer 1200", res.Curves[0].Minute)
	}
}

func TestCache_EvictsOldestFirst(t *testing.T) {
	c := NewCache(3)

	for day := 1; day <= 5; day++ {
		c.Put(testKey(day), testResult(1140+day))
	}

	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}

	for day := 1; day <= 2; day++ {
		if _, ok := c.Get(testKey(day)); ok {
			t.Errorf("day %d should have been evicted", day)
		}
	}
	for day := 3; day <= 5; day++ {
		if _, ok := c.Get(testKey(day)); !ok {
			t.Errorf("day %d should still be cached", day)
		}
	}
}

func TestCache_GetIsCopy(t *testing.T) {
	c := NewCache(8)

	key := testKey(21)
	c.Put(key, testResult(1140))

	res, _ := c.Get(key)
	res.Curves[0].Minute = 9999
	res.Curves = append(res.Curves, isochrone.Curve{Minute: 1})

	res2, _ := c.Get(key)
	if len(res2.Curves) != 1 {
		t.Errorf("curves = %d, want 1 after caller append", len(res2.Curves))
	}
	if res2.Curves[0].Minute != 1140 {
		t.Errorf("minute = %d, caller mutation leaked into the cache", res2.Curves[0].Minute)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache(16)

	var wg sync.WaitGroup
	iterations := 100

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			c.Put(testKey(i%28+1), testResult(1140+i))
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_, _ = c.Get(testKey(i%28 + 1))
				_ = c.Len()
			}
		}()
	}

	wg.Wait()
}
