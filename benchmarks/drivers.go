// Package benchmarks compares the partial JSON front end, under each value
// driver, with plain decoding by the JSON libraries it can sit on.
package benchmarks

import (
	"github.com/bytedance/sonic"
	jsoniter "github.com/json-iterator/go"

	"github.com/reoring/partial/codec/jsoncodec"
)

// Sonic returns a jsoncodec.Driver backed by bytedance/sonic in its
// encoding/json compatible configuration.
func Sonic() jsoncodec.Driver { return sonicDriver{} }

// JSONIter returns a jsoncodec.Driver backed by json-iterator in its
// encoding/json compatible configuration. Errors raised by nested
// UnmarshalJSON methods reach the caller as text only, so they are reported
// as parse_error at the member.
func JSONIter() jsoncodec.Driver { return jsoniterDriver{} }

type sonicDriver struct{}

func (sonicDriver) Unmarshal(data []byte, v any) error { return sonic.ConfigStd.Unmarshal(data, v) }
func (sonicDriver) Marshal(v any) ([]byte, error)      { return sonic.ConfigStd.Marshal(v) }
func (sonicDriver) Name() string                       { return "sonic" }

var jsoniterStd = jsoniter.ConfigCompatibleWithStandardLibrary

type jsoniterDriver struct{}

func (jsoniterDriver) Unmarshal(data []byte, v any) error { return jsoniterStd.Unmarshal(data, v) }
func (jsoniterDriver) Marshal(v any) ([]byte, error)      { return jsoniterStd.Marshal(v) }
func (jsoniterDriver) Name() string                       { return "jsoniter" }

// Drivers lists every driver the benchmarks run with.
func Drivers() []jsoncodec.Driver {
	return []jsoncodec.Driver{jsoncodec.GoJSON(), jsoncodec.Std(), Sonic(), JSONIter()}
}
