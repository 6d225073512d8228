package jsoncodec

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

// Driver performs the nested value (de)serialization for one field. The
// default implementation is backed by goccy/go-json; Std keeps everything on
// encoding/json. Both honor json.Marshaler and json.Unmarshaler, so nested
// tracked models that delegate to this package keep their definedness.
type Driver interface {
	Unmarshal(data []byte, v any) error
	Marshal(v any) ([]byte, error)
	Name() string
}

// GoJSON returns the goccy/go-json backed driver.
func GoJSON() Driver { return goJSONDriver{} }

// Std returns the encoding/json backed driver.
func Std() Driver { return stdDriver{} }

type goJSONDriver struct{}

func (goJSONDriver) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (goJSONDriver) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (goJSONDriver) Name() string                       { return "go-json" }

type stdDriver struct{}

func (stdDriver) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (stdDriver) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (stdDriver) Name() string                       { return "encoding/json" }
