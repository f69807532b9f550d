package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ollamadash/config"
)

const contextReachableKey = "upstreamReachable"

// ConnectionFailedMessage is shown when a route needs the upstream service
// and it cannot be reached.
const ConnectionFailedMessage = "Ollama connection failed!"

// Heartbeater is the part of the inference client the probe needs.
type Heartbeater interface {
	Heartbeat(ctx context.Context) error
}

// Probe checks upstream reachability before the route runs. Under the soft
// policy the result is only recorded; under the hard policy an unreachable
// upstream ends the request with the error view.
func Probe(client Heartbeater, policy config.GatePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		reachable := true
		if err := client.Heartbeat(c.Request.Context()); err != nil {
			reachable = false
			slog.Warn("upstream unreachable", "path", c.Request.URL.Path, "error", err)
		}
		c.Set(contextReachableKey, reachable)

		if !reachable && policy == config.GateHard {
			c.HTML(http.StatusServiceUnavailable, "error.tmpl", gin.H{"Message": ConnectionFailedMessage})
			c.Abort()
			return
		}

		c.Next()
	}
}

// UpstreamReachable reports what Probe recorded. Routes without the probe
// are treated as reachable.
func UpstreamReachable(c *gin.Context) bool {
	v, ok := c.Get(contextReachableKey)
	if !ok {
		return true
	}
	reachable, _ := v.(bool)
	return reachable
}
