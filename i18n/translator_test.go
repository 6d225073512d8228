package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	assert.Equal(t, "invalid type", T("invalid_type", nil))
	assert.Equal(t, "expected object, got array", T("unexpected_shape", map[string]string{"got": "array"}))
	assert.Equal(t, "expected object", T("unexpected_shape", nil))

	SetLanguage("ja")
	defer SetLanguage("en")
	assert.NotEqual(t, "invalid type", T("invalid_type", nil))
	assert.Contains(t, T("duplicate_key", map[string]string{"key": "NAME"}), "NAME")
}

func TestTranslator_UnknownCodeEchoes(t *testing.T) {
	assert.Equal(t, "something_else", T("something_else", nil))
}

type fixed string

func (f fixed) Message(string, map[string]string) string { return string(f) }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(fixed("custom"))
	assert.Equal(t, "custom", T("parse_error", nil))
	SetTranslator(nil)
	assert.Equal(t, "parse error", T("parse_error", nil))
}
