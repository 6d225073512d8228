package benchmarks_test

import (
	"bytes"
	"strconv"

	"github.com/reoring/partial"
)

type user struct {
	partial.Partial[user]
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Active bool    `json:"active"`
	Score  float64 `json:"score"`
}

var userSchema = partial.MustSchemaOf[user]()

// plainUser is the same shape without tracking, the baseline for plain
// library decoding.
type plainUser struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Active bool    `json:"active"`
	Score  float64 `json:"score"`
}

func smallUserJSON() []byte { return []byte(`{"id":"u_1","name":"alice","age":30}`) }

// wideUserJSON returns a user object padded with extra unknown members, the
// case where the lookup table pays for members no field asks for.
func wideUserJSON(extra int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"id":"u_1","name":"alice","age":30,"active":true,"score":1.5`)
	for i := 0; i < extra; i++ {
		buf.WriteString(`,"x`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`":{"n":`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`}`)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}
