package benchmarks_test

import (
	"encoding/json"
	"testing"

	"github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fastjson"

	"github.com/reoring/partial/benchmarks"
	"github.com/reoring/partial/codec/jsoncodec"
)

func benchmarkPartial(b *testing.B, data []byte) {
	for _, drv := range benchmarks.Drivers() {
		opts := jsoncodec.Options{Driver: drv}
		b.Run(drv.Name(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				if _, err := jsoncodec.Unmarshal(userSchema, data, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func Benchmark_Decode_partial_Small(b *testing.B) { benchmarkPartial(b, smallUserJSON()) }
func Benchmark_Decode_partial_Wide(b *testing.B)  { benchmarkPartial(b, wideUserJSON(64)) }

func benchmarkPlain(b *testing.B, data []byte, unmarshal func([]byte, any) error) {
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		var v plainUser
		if err := unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_std_Small(b *testing.B) {
	benchmarkPlain(b, smallUserJSON(), json.Unmarshal)
}

func Benchmark_Decode_gojson_Small(b *testing.B) {
	benchmarkPlain(b, smallUserJSON(), gojson.Unmarshal)
}

func Benchmark_Decode_sonic_Small(b *testing.B) {
	benchmarkPlain(b, smallUserJSON(), sonic.Unmarshal)
}

func Benchmark_Decode_jsoniter_Small(b *testing.B) {
	benchmarkPlain(b, smallUserJSON(), jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal)
}

func Benchmark_ParseOnly_fastjson_Wide(b *testing.B) {
	data := wideUserJSON(64)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		var p fastjson.Parser
		if _, err := p.ParseBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Encode_partial_Small(b *testing.B) {
	u, err := jsoncodec.Unmarshal(userSchema, smallUserJSON())
	if err != nil {
		b.Fatal(err)
	}
	for _, drv := range benchmarks.Drivers() {
		opts := jsoncodec.Options{Driver: drv}
		b.Run(drv.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := jsoncodec.Marshal(userSchema, u, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
