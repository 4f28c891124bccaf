package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stayhub/wallet-service/pkg/logger"
)

// Idempotency replays the cached response for a repeated mutating
// request carrying the same Idempotency-Key, which makes retrying a
// whole logical operation safe after a transient failure. Requests
// without the header pass through untouched.
type Idempotency struct {
	cache  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewIdempotency(cache *redis.Client, ttl time.Duration, logger logger.Logger) *Idempotency {
	return &Idempotency{cache: cache, ttl: ttl, logger: logger}
}

func (m *Idempotency) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get("Idempotency-Key")
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		dataKey := fmt.Sprintf("idempotency:%s:%s:%s", r.Method, r.URL.Path, key)

		if m.replay(w, r, dataKey) {
			return
		}

		// First request with this key wins the lock; a concurrent
		// duplicate gets a conflict instead of a double execution.
		locked, err := m.cache.SetNX(r.Context(), dataKey+":lock", 1, m.ttl).Result()
		if err != nil {
			m.logger.Errorf("idempotency cache: %s", err)
			next.ServeHTTP(w, r)
			return
		}
		if !locked {
			if m.replay(w, r, dataKey) {
				return
			}
			w.WriteHeader(http.StatusConflict)
			return
		}

		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		m.store(r, dataKey, recorder)
	})
}

type storedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

func (m *Idempotency) replay(w http.ResponseWriter, r *http.Request, dataKey string) bool {
	payload, err := m.cache.Get(r.Context(), dataKey).Bytes()
	if err != nil {
		return false
	}

	var stored storedResponse
	if err = json.Unmarshal(payload, &stored); err != nil {
		return false
	}

	w.Header().Set("Idempotent-Replay", "true")
	w.WriteHeader(stored.Status)
	_, _ = w.Write(stored.Body)

	return true
}

func (m *Idempotency) store(r *http.Request, dataKey string, recorder *responseRecorder) {
	payload, err := json.Marshal(storedResponse{
		Status: recorder.status,
		Body:   recorder.body.Bytes(),
	})
	if err != nil {
		return
	}

	if err = m.cache.Set(r.Context(), dataKey, payload, m.ttl).Err(); err != nil {
		m.logger.Errorf("idempotency cache: %s", err)
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
