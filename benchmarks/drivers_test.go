package benchmarks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/partial"
	"github.com/reoring/partial/benchmarks"
	"github.com/reoring/partial/codec/jsoncodec"
)

func TestDrivers_RoundTripDefinedFields(t *testing.T) {
	for _, drv := range benchmarks.Drivers() {
		t.Run(drv.Name(), func(t *testing.T) {
			opts := jsoncodec.Options{Driver: drv}
			u, err := jsoncodec.Unmarshal(userSchema, []byte(`{"age":15,"score":125.25}`), opts)
			require.NoError(t, err)
			assert.Equal(t, []string{"Age", "Score"}, userSchema.DefinedNames(u))
			assert.Equal(t, 15, u.Age)
			assert.Equal(t, 125.25, u.Score)

			out, err := jsoncodec.Marshal(userSchema, u, opts)
			require.NoError(t, err)
			assert.JSONEq(t, `{"age":15,"score":125.25}`, string(out))
		})
	}
}

func TestDrivers_TypeMismatchIsReportedAtMember(t *testing.T) {
	for _, drv := range benchmarks.Drivers() {
		t.Run(drv.Name(), func(t *testing.T) {
			_, err := jsoncodec.Unmarshal(userSchema, []byte(`{"age":"x"}`), jsoncodec.Options{Driver: drv})
			require.Error(t, err)
			iss, ok := partial.AsIssues(err)
			require.True(t, ok)
			assert.Equal(t, "/age", iss[0].Path)
			assert.Contains(t, []string{partial.CodeInvalidType, partial.CodeParseError}, iss[0].Code)
		})
	}
}
