package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRunWorkerPoolRunsEveryJob(t *testing.T) {
	stockCodes := []string{"000001.XSHE", "000002.XSHE", "600000.XSHG", "600001.XSHG"}
	var seen sync.Map

	results := RunWorkerPool(context.Background(), stockCodes, 2, func(_ context.Context, stockCode string) error {
		seen.Store(stockCode, true)
		return nil
	})

	if len(results) != len(stockCodes) {
		t.Fatalf("got %d results, want %d", len(results), len(stockCodes))
	}
	for _, sc := range stockCodes {
		if _, ok := seen.Load(sc); !ok {
			t.Errorf("stock %s was never processed", sc)
		}
	}
}

func TestRunWorkerPoolIsolatesErrors(t *testing.T) {
	stockCodes := []string{"000001.XSHE", "000002.XSHE", "000003.XSHE"}
	var succeeded atomic.Int32

	results := RunWorkerPool(context.Background(), stockCodes, 3, func(_ context.Context, stockCode string) error {
		if stockCode == "000002.XSHE" {
			return errors.New("boom")
		}
		succeeded.Add(1)
		return nil
	})

	if succeeded.Load() != 2 {
		t.Errorf("succeeded = %d, want 2 (one job's error must not stop the others)", succeeded.Load())
	}

	var failures int
	for _, r := range results {
		if r.Err != nil {
			failures++
			if r.StockCode != "000002.XSHE" {
				t.Errorf("unexpected failing stock %s", r.StockCode)
			}
		}
	}
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
}

func TestRunWorkerPoolDefaultsToOneWorker(t *testing.T) {
	results := RunWorkerPool(context.Background(), []string{"000001.XSHE"}, 0, func(_ context.Context, _ string) error {
		return nil
	})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestRunWorkerPoolEmptyInput(t *testing.T) {
	results := RunWorkerPool(context.Background(), nil, 4, func(_ context.Context, _ string) error {
		t.Fatal("job should never run for an empty stock list")
		return nil
	})
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}
