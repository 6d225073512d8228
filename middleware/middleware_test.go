package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/partial"
	"github.com/reoring/partial/codec/jsoncodec"
	"github.com/reoring/partial/middleware"
)

type profile struct {
	partial.Partial[profile]
	Name  string `json:"name"`
	Email string `json:"email"`
}

var (
	profileSchema = partial.MustSchemaOf[profile]()
	profileName   = profileSchema.MustField("Name")
	profileEmail  = profileSchema.MustField("Email")
)

func TestHandler_StoresModelInContext(t *testing.T) {
	var got *profile
	h := middleware.Handler(profileSchema, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, ok := middleware.ModelFromContext[profile](r.Context())
		require.True(t, ok)
		got = m
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPatch, "/profile", strings.NewReader(`{"email":"a@example.com"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.True(t, got.IsDefined(profileEmail))
	assert.False(t, got.IsDefined(profileName))
}

func TestHandler_RejectsInvalidBody(t *testing.T) {
	h := middleware.Handler(profileSchema, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not be called")
	}))

	tests := []struct {
		name string
		body string
		code string
		path string
	}{
		{"array", `[]`, partial.CodeUnexpectedShape, "/"},
		{"duplicate", `{"name":"a","name":"b"}`, partial.CodeDuplicateKey, "/name"},
		{"type", `{"name":1}`, partial.CodeInvalidType, "/name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var payload struct {
				Issues []middleware.IssueView `json:"issues"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
			require.NotEmpty(t, payload.Issues)
			assert.Equal(t, tt.code, payload.Issues[0].Code)
			assert.Equal(t, tt.path, payload.Issues[0].Path)
		})
	}
}

func TestHandler_BodyTooLarge(t *testing.T) {
	h := middleware.Handler(profileSchema, http.NotFoundHandler())
	body := `{"name":"` + strings.Repeat("x", middleware.MaxBodyBytes) + `"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload, "error")
}

func TestBind_CustomOptions(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"NAME":"n"}`))
	opt := jsoncodec.Options{Options: partial.Options{CaseInsensitive: true}}
	m, err := middleware.Bind(httptest.NewRecorder(), req, profileSchema, opt)
	require.NoError(t, err)
	assert.Equal(t, "n", m.Name)
}

func TestModelFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := middleware.ModelFromContext[profile](req.Context())
	assert.False(t, ok)
}
