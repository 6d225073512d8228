//go:build jscan

package benchmarks_test

import (
	"testing"

	"github.com/romshark/jscan"
)

// jscan: walk every value of the wide object without decoding it.
func Benchmark_ParseOnly_jscan_Wide(b *testing.B) {
	data := string(wideUserJSON(64))
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		err := jscan.Scan(jscan.Options{}, data, func(i *jscan.Iterator) (exit bool) {
			_ = i.ValueType
			return false
		})
		if err.IsErr() {
			b.Fatal(err)
		}
	}
}
