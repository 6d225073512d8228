package partial_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/partial"
)

type address struct {
	Zip string
}

type customer struct {
	partial.Partial[customer]
	Name    string
	Address address
	Tags    []string
}

var customerSchema = partial.MustSchemaOf[customer]()

func (c *customer) nameRef() *string { return &c.Name }

func (c *customer) displayName() *string {
	s := strings.ToUpper(c.Name)
	return &s
}

func TestSelect_TopLevelField(t *testing.T) {
	f, err := partial.Select(customerSchema, func(c *customer) *string { return &c.Name })
	require.NoError(t, err)
	assert.Equal(t, "Name", f.Name())
	assert.Same(t, customerSchema.MustField("Name"), f)

	f, err = partial.Select(customerSchema, func(c *customer) *address { return &c.Address })
	require.NoError(t, err)
	assert.Equal(t, "Address", f.Name())
}

func TestSelect_Invalid(t *testing.T) {
	literal := "x"
	tests := map[string]func(*testing.T) error{
		"nil selector": func(*testing.T) error {
			_, err := partial.Select[customer, string](customerSchema, nil)
			return err
		},
		"nil result": func(*testing.T) error {
			_, err := partial.Select(customerSchema, func(*customer) *string { return nil })
			return err
		},
		"literal": func(*testing.T) error {
			_, err := partial.Select(customerSchema, func(*customer) *string { return &literal })
			return err
		},
		"nested chain": func(*testing.T) error {
			_, err := partial.Select(customerSchema, func(c *customer) *string { return &c.Address.Zip })
			return err
		},
		"method call": func(*testing.T) error {
			_, err := partial.Select(customerSchema, (*customer).displayName)
			return err
		},
		"tracker": func(*testing.T) error {
			_, err := partial.Select(customerSchema, func(c *customer) *partial.Partial[customer] { return &c.Partial })
			return err
		},
	}
	for name, run := range tests {
		t.Run(name, func(t *testing.T) {
			err := run(t)
			require.Error(t, err)
			assert.ErrorIs(t, err, partial.ErrInvalidSelector)
			iss, ok := partial.AsIssues(err)
			require.True(t, ok)
			assert.Equal(t, partial.CodeInvalidSelector, iss[0].Code)
		})
	}
}

func TestSelect_MethodReturningFieldAddress(t *testing.T) {
	// A method that returns the field address is indistinguishable from a
	// direct selector and resolves to the field.
	f, err := partial.Select(customerSchema, (*customer).nameRef)
	require.NoError(t, err)
	assert.Equal(t, "Name", f.Name())
}

func TestIsDefined_FreeFunctions(t *testing.T) {
	m, err := partial.DecodeObject(customerSchema, []partial.Member{member("Name", `"n"`)}, partial.Options{})
	require.NoError(t, err)

	ok, err := partial.IsDefined(customerSchema, m, func(c *customer) *string { return &c.Name })
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = partial.IsUndefined(customerSchema, m, func(c *customer) *address { return &c.Address })
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = partial.IsDefined(customerSchema, m, func(c *customer) *string { return &c.Address.Zip })
	assert.ErrorIs(t, err, partial.ErrInvalidSelector)

	assert.Panics(t, func() {
		partial.MustSelect(customerSchema, func(c *customer) *string { return &c.Address.Zip })
	})
}

type marker struct{}

type flags struct {
	partial.Partial[flags]
	A marker
	B marker
	C int
}

var flagsSchema = partial.MustSchemaOf[flags]()

func TestSelect_ZeroSizeFieldsAreAmbiguous(t *testing.T) {
	_, err := partial.Select(flagsSchema, func(f *flags) *marker { return &f.B })
	require.Error(t, err)
	assert.ErrorIs(t, err, partial.ErrInvalidSelector)
	assert.Contains(t, err.Error(), `ambiguous between "A" and "B"`)

	// C shares the address but not the type.
	f, err := partial.Select(flagsSchema, func(f *flags) *int { return &f.C })
	require.NoError(t, err)
	assert.Equal(t, "C", f.Name())

	m, err := partial.DecodeObject(flagsSchema, []partial.Member{member("A", `{}`)}, partial.Options{})
	require.NoError(t, err)
	_, err = partial.IsDefined(flagsSchema, m, func(f *flags) *marker { return &f.B })
	assert.ErrorIs(t, err, partial.ErrInvalidSelector)
	assert.True(t, m.IsDefined(flagsSchema.MustField("A")))
	assert.False(t, m.IsDefined(flagsSchema.MustField("B")))
}
