package compacthash_test

import (
	"testing"

	"github.com/katalvlaran/amremap/compacthash"
)

// benchmarkTable builds a table of the given kind holding n entries and
// measures a full insert+query cycle per iteration.
func benchmarkTable(b *testing.B, kind compacthash.Kind, n int) {
	opts := compacthash.DefaultOptions()
	opts.Kind = kind
	opts.Seed = 1
	f, err := compacthash.NewFactory(opts)
	if err != nil {
		b.Fatalf("NewFactory failed: %v", err)
	}
	tb, err := f.NewTable(1<<24, n)
	if err != nil {
		b.Fatalf("NewTable failed: %v", err)
	}

	b.ResetTimer() // ignore setup time
	for iter := 0; iter < b.N; iter++ {
		tb.Reset()
		for k := 0; k < n; k++ {
			if err := tb.Insert(k*37, k); err != nil {
				b.Fatalf("Insert failed: %v", err)
			}
		}
		for k := 0; k < n; k++ {
			if _, ok := tb.Query(k * 37); !ok {
				b.Fatal("entry lost")
			}
		}
	}
}

// BenchmarkPerfect_10k measures the direct-indexed backend.
func BenchmarkPerfect_10k(b *testing.B) { benchmarkTable(b, compacthash.Perfect, 10_000) }

// BenchmarkLinear_10k measures step-1 open addressing.
func BenchmarkLinear_10k(b *testing.B) { benchmarkTable(b, compacthash.Linear, 10_000) }

// BenchmarkQuadratic_10k measures cumulative-n² open addressing.
func BenchmarkQuadratic_10k(b *testing.B) { benchmarkTable(b, compacthash.Quadratic, 10_000) }

// BenchmarkPrimeJump_10k measures key-strided open addressing.
func BenchmarkPrimeJump_10k(b *testing.B) { benchmarkTable(b, compacthash.PrimeJump, 10_000) }
