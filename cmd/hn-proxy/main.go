// Command hn-proxy is a small HTTP server exposing the Hacker News client:
// cached, deduplicated, rate-limited reads of story lists and items, plus
// Prometheus metrics.
//
// Endpoints:
//
//	GET /health
//	GET /metrics
//	GET /lists/{kind}           e.g. /lists/top
//	GET /items/{id}
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/chunghha/hn-client/pkg/client"
	"github.com/chunghha/hn-client/pkg/hn"
	"github.com/chunghha/hn-client/pkg/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := logging.Setup(logging.Config{
		Level:  logging.Level(getEnv("LOG_LEVEL", "info")),
		Pretty: os.Getenv("LOG_PRETTY") == "true",
		Output: os.Stderr,
	}).With().Str("component", "hn-proxy").Logger()

	cfg := client.DefaultConfig()

	// Optional Redis second-level cache; the proxy works without it.
	if addr := os.Getenv("REDIS_URL"); addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: addr})
		cfg.Redis = redisClient
		logger.Info().Str("addr", addr).Msg("Redis body cache enabled")
	}

	hnClient, err := client.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create client")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/lists/", listHandler(hnClient))
	mux.HandleFunc("/items/", itemHandler(hnClient))

	addr := ":" + getEnv("PORT", "8080")
	logger.Info().Str("addr", addr).Msg("Starting hn-proxy")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

type listResponse struct {
	Kind  string `json:"kind"`
	IDs   []int  `json:"ids"`
	Stale bool   `json:"stale"`
}

func listHandler(c *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := hn.ListKind(r.URL.Path[len("/lists/"):])
		if !kind.Valid() {
			http.Error(w, "unknown list kind", http.StatusNotFound)
			return
		}

		ids, stale, err := c.FetchStoryIDs(r.Context(), kind)
		if err != nil {
			writeFetchError(w, err)
			return
		}
		writeJSON(w, listResponse{Kind: kind.String(), IDs: ids, Stale: stale})
	}
}

type itemResponse struct {
	Story hn.Story `json:"story"`
	Stale bool     `json:"stale"`
}

func itemHandler(c *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.URL.Path[len("/items/"):])
		if err != nil {
			http.Error(w, "invalid item id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		story, stale, err := c.FetchStory(ctx, id)
		if err != nil {
			writeFetchError(w, err)
			return
		}
		writeJSON(w, itemResponse{Story: story, Stale: stale})
	}
}

func writeFetchError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	var perm *client.PermanentError
	switch {
	case errors.Is(err, client.ErrCancelled):
		status = http.StatusRequestTimeout
	case errors.As(err, &perm):
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
