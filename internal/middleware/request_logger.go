package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// 1リクエスト1行のアクセスログ
func RequestLogger(log *logrus.Entry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			entry := log.WithFields(logrus.Fields{
				"method":      req.Method,
				"path":        c.Path(),
				"uri":         req.RequestURI,
				"status":      res.Status,
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  res.Header().Get(echo.HeaderXRequestID),
			})
			switch {
			case res.Status >= 500:
				entry.Error("request")
			case res.Status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return nil
		}
	}
}
