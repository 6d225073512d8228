package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/partial"
	"github.com/reoring/partial/codec/jsoncodec"
	"github.com/reoring/partial/middleware"
)

// BindJSON decodes the request body into T using schema s, stores the model
// in the request context and continues; on failure it aborts with the
// middleware error payload.
func BindJSON[T any](s *partial.Schema[T], opts ...jsoncodec.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := middleware.Bind(c.Writer, c.Request, s, opts...)
		if err != nil {
			c.AbortWithStatusJSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithModel(c.Request.Context(), m))
		c.Next()
	}
}

// GetModel fetches the model stored by BindJSON.
func GetModel[T any](c *gin.Context) (*T, bool) {
	return middleware.ModelFromContext[T](c.Request.Context())
}
