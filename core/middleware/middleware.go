package middleware

import (
	"timelink/core/constants"
	"timelink/core/logger"
	"timelink/core/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Middleware assembles the cross-cutting echo middleware chain.
type Middleware struct{}

func New() *Middleware {
	return &Middleware{}
}

// Setup attaches the default middleware stack to the echo instance.
func (m *Middleware) Setup(e *echo.Echo) {
	e.Use(m.RequestID())
	e.Use(echomw.Recover())
	e.Use(m.RequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
	}))
}

// RequestID assigns a short id to every request unless the client sent one.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(constants.HeaderRequestID)
			if reqID == "" {
				reqID = utils.GenerateID()
			}
			c.Set(constants.ContextRequestID, reqID)
			c.Response().Header().Set(constants.HeaderRequestID, reqID)
			return next(c)
		}
	}
}

// RequestLogger logs one line per request through the app logger.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", c.Get(constants.ContextRequestID),
			}
			if v.Error != nil {
				args = append(args, "error", v.Error)
				logger.Warn("HTTP:Request", args...)
				return nil
			}
			logger.Info("HTTP:Request", args...)
			return nil
		},
	})
}
