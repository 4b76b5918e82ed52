// Package console implements the agent console services: snippet execution
// with a result cache, system status reporting, and outcome routing to the
// notification center.
package console

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/deckworks/agentdeck/internal/core/config"
	"github.com/deckworks/agentdeck/internal/core/logging"
)

// Result is the outcome of a single snippet execution.
type Result struct {
	Success   bool          `json:"success"`
	Output    string        `json:"output"`
	Errors    string        `json:"errors"`
	Duration  time.Duration `json:"duration"`
	FromCache bool          `json:"from_cache"`
}

// CacheStats summarizes the executor's result cache.
type CacheStats struct {
	Entries int     `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

type cacheEntry struct {
	result  Result
	expires time.Time
}

// Executor runs code snippets through a configured interpreter subprocess and
// caches successful results by content hash.
type Executor struct {
	command []string
	timeout time.Duration
	ttl     time.Duration

	mu     sync.Mutex
	cache  map[string]cacheEntry
	hits   int64
	misses int64

	now func() time.Time
	log zerolog.Logger
}

// NewExecutor creates an executor from the given settings.
func NewExecutor(cfg config.ExecutorConfig) *Executor {
	return &Executor{
		command: cfg.Command,
		timeout: cfg.Timeout(),
		ttl:     cfg.CacheTTL(),
		cache:   make(map[string]cacheEntry),
		now:     time.Now,
		log:     logging.Component("executor"),
	}
}

// Run executes code and returns its outcome. A cached result is returned when
// an identical snippet completed successfully within the cache TTL. Run never
// returns an error; failures are reported in the Result.
func (e *Executor) Run(ctx context.Context, code string) Result {
	key := snippetKey(code)
	if res, ok := e.cached(key); ok {
		e.log.Debug().Str("key", key[:8]).Msg("cache hit")
		return res
	}

	res := e.execute(ctx, code)
	if res.Success {
		e.store(key, res)
	}
	return res
}

// CacheStats returns a snapshot of the cache counters. Expired entries are
// evicted before counting.
func (e *Executor) CacheStats() CacheStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	for key, entry := range e.cache {
		if now.After(entry.expires) {
			delete(e.cache, key)
		}
	}

	stats := CacheStats{
		Entries: len(e.cache),
		Hits:    e.hits,
		Misses:  e.misses,
	}
	if total := e.hits + e.misses; total > 0 {
		stats.HitRate = float64(e.hits) / float64(total)
	}
	return stats
}

// ClearCache drops all cached results.
func (e *Executor) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]cacheEntry)
}

func (e *Executor) execute(ctx context.Context, code string) Result {
	tmp, err := os.CreateTemp("", "agentdeck-*.snippet")
	if err != nil {
		return Result{Errors: fmt.Sprintf("create snippet file: %v", err)}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(code); err != nil {
		_ = tmp.Close()
		return Result{Errors: fmt.Sprintf("write snippet file: %v", err)}
	}
	if err := tmp.Close(); err != nil {
		return Result{Errors: fmt.Sprintf("close snippet file: %v", err)}
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := append(append([]string{}, e.command[1:]...), tmp.Name())
	cmd := exec.CommandContext(runCtx, e.command[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := e.now()
	runErr := cmd.Run()
	elapsed := e.now().Sub(start)

	res := Result{
		Output:   stdout.String(),
		Errors:   stderr.String(),
		Duration: elapsed,
	}

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		res.Errors = fmt.Sprintf("execution timed out after %s", e.timeout)
	case runErr != nil:
		if res.Errors == "" {
			res.Errors = runErr.Error()
		}
	default:
		res.Success = true
	}

	return res
}

func (e *Executor) cached(key string) (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.cache[key]
	if !ok || e.now().After(entry.expires) {
		e.misses++
		return Result{}, false
	}

	e.hits++
	res := entry.result
	res.FromCache = true
	return res, true
}

func (e *Executor) store(key string, res Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache[key] = cacheEntry{result: res, expires: e.now().Add(e.ttl)}
}

func snippetKey(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
