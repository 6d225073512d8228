package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/partial"
	"github.com/reoring/partial/codec/jsoncodec"
	"github.com/reoring/partial/middleware"
)

// BindJSON decodes the request body into T using schema s and stores the
// model in the request context, or answers with the middleware error payload.
func BindJSON[T any](s *partial.Schema[T], opts ...jsoncodec.Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m, err := middleware.Bind(c.Response(), c.Request(), s, opts...)
			if err != nil {
				return c.JSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			}
			c.SetRequest(c.Request().WithContext(middleware.ContextWithModel(c.Request().Context(), m)))
			return next(c)
		}
	}
}

// GetModel fetches the model stored by BindJSON.
func GetModel[T any](c echo.Context) (*T, bool) {
	return middleware.ModelFromContext[T](c.Request().Context())
}
