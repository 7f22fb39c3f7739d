package middlewares

import (
	"net/http"
	"time"
	"tracybot-service/internal/pkg/exceptions"
	"tracybot-service/internal/pkg/utils"

	"github.com/go-chi/httprate"
)

// RateLimit limits requests per client IP per second and answers with the
// usual error body when the limit is hit.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil, r.RemoteAddr))
		}),
	)
}
