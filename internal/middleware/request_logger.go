package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger writes one diagnostic line per request. gin's own logger
// prints to stdout, which the dashboard owns.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		subject := Subject(c)
		if subject == "" {
			subject = "-"
		}
		logger.Debugf("api %s %s status=%d latency=%s subject=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), subject)
	}
}
