package httpapi

import (
	"net/http"

	limiter "github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// limiterMiddleware rejects clients exceeding the configured rate with 429.
var limiterMiddleware *stdlib.Middleware

// SetRateLimit configures per-client rate limiting from a formatted rate
// such as "100-S" or "5000-H". An empty rate disables limiting.
func SetRateLimit(formatted string) error {
	if formatted == "" {
		limiterMiddleware = nil
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return err
	}
	limiterMiddleware = stdlib.NewMiddleware(limiter.New(memory.NewStore(), rate))
	return nil
}

func rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiterMiddleware == nil {
			next.ServeHTTP(w, r)
			return
		}
		limiterMiddleware.Handler(next).ServeHTTP(w, r)
	})
}
