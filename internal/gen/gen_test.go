package gen

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestScan_CollectsTrackedTypes(t *testing.T) {
	pkg, err := Scan("testdata/models", nil)
	require.NoError(t, err)
	assert.Equal(t, "models", pkg.Name)

	var names []string
	for _, td := range pkg.Types {
		names = append(names, td.Name)
	}
	assert.Equal(t, []string{"User", "Empty"}, names)
	assert.Equal(t, []ImportSpec{{Path: "time"}}, pkg.Imports)

	user := pkg.Types[0]
	assert.Equal(t, FieldDef{Name: "Meta", Type: "Meta"}, user.Fields[0])
	assert.Equal(t, FieldDef{Name: "BankBalance", Type: "float64", Wire: "balance"}, user.Fields[3])
	assert.Equal(t, FieldDef{Name: "A", Type: "*int"}, user.Fields[6])
	assert.Len(t, user.Fields, 8)
	assert.Empty(t, pkg.Types[1].Fields)
}

func TestScan_Filter(t *testing.T) {
	pkg, err := Scan("testdata/models", []string{"Empty"})
	require.NoError(t, err)
	require.Len(t, pkg.Types, 1)
	assert.Empty(t, pkg.Imports)

	_, err = Scan("testdata/models", []string{"Borrowed"})
	assert.ErrorContains(t, err, "does not embed partial.Partial[Borrowed]")

	_, err = Scan("testdata/models", []string{"Ignored"})
	assert.Error(t, err)
}

func TestScan_NoTrackedTypes(t *testing.T) {
	pkg, err := Scan("testdata/noTracked", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain", pkg.Name)
	assert.Empty(t, pkg.Types)

	_, err = Scan("testdata/missing", nil)
	assert.Error(t, err)
}

func TestRender_Golden(t *testing.T) {
	pkg, err := Scan("testdata/models", nil)
	require.NoError(t, err)
	out, err := Render(pkg, Options{})
	require.NoError(t, err)
	newGoldie(t).Assert(t, "models", out)
}

func TestRender_GoldenWithMethods(t *testing.T) {
	pkg, err := Scan("testdata/models", []string{"Empty"})
	require.NoError(t, err)
	out, err := Render(pkg, Options{Methods: true})
	require.NoError(t, err)
	newGoldie(t).Assert(t, "models_methods", out)
}

func TestRender_RequiresPackageName(t *testing.T) {
	_, err := Render(&Package{}, Options{})
	assert.Error(t, err)
}

func TestSchemaVar(t *testing.T) {
	assert.Equal(t, "userSchema", SchemaVar("User"))
	assert.Equal(t, "urlConfigSchema", SchemaVar("URLConfig"))
	assert.Equal(t, "orderItemSchema", SchemaVar("orderItem"))
}
