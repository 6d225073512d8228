//go:build jstream

package benchmarks_test

import (
	"bytes"
	"testing"

	"github.com/bcicen/jstream"
)

// jstream: emit the top-level members of the wide object, the same split the
// partial JSON reader performs before matching fields.
func Benchmark_ParseOnly_jstream_Wide(b *testing.B) {
	data := wideUserJSON(64)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		dec := jstream.NewDecoder(bytes.NewReader(data), 1).EmitKV()
		n := 0
		for mv := range dec.Stream() {
			if _, ok := mv.Value.(jstream.KV); !ok {
				b.Fatal("expected key/value")
			}
			n++
		}
		if err := dec.Err(); err != nil {
			b.Fatal(err)
		}
		if n == 0 {
			b.Fatal("no members")
		}
	}
}
