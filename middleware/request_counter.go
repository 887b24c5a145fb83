package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mYstoRi/medcontest/utils"
)

// requestCounterTTL keeps daily counters around long enough to be read the
// next day, then lets Redis expire them.
const requestCounterTTL = 48 * time.Hour

// RequestCounter records successful GET request counts per day and path into
// Redis. Best effort: a Redis failure never affects the request.
func RequestCounter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		path := c.Request.URL.Path
		// Skip non-content endpoints to avoid skewing the counters.
		if path == "/health" || strings.HasPrefix(path, "/static/") {
			return
		}

		rc := utils.GetRedis()
		if rc == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		key := "pv:" + time.Now().In(time.Local).Format("2006-01-02") + ":" + path
		pipe := rc.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, requestCounterTTL)
		_, _ = pipe.Exec(ctx)
	}
}
