package jobs

import (
	"context"
	"encoding/json"
	"strings"

	"boardrent-backend/internal/logger"
	"boardrent-backend/internal/storage"
)

// JobRunner coordinates the scheduled storage maintenance jobs
type JobRunner struct {
	gateway storage.Gateway
}

func NewJobRunner(gateway storage.Gateway) *JobRunner {
	return &JobRunner{gateway: gateway}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// PruneEmptyScopes deletes keys whose stored collection is empty.
// Abandoned guest carts and cleared per-user scopes leave behind "[]"
// payloads that this job sweeps up.
func (jr *JobRunner) PruneEmptyScopes() {
	jr.runWithRecovery("PruneEmptyScopes", func() {
		ctx := context.Background()
		keys, err := jr.gateway.Keys(ctx)
		if err != nil {
			logger.Error("Failed to list storage keys", "error", err)
			return
		}

		pruned := 0
		for _, key := range keys {
			if !isCollectionKey(key) {
				continue
			}
			data, err := jr.gateway.Load(ctx, key)
			if err != nil {
				continue
			}
			var items []json.RawMessage
			if err := json.Unmarshal(data, &items); err != nil {
				// Corrupt data loads as empty state anyway; leave it
				// for inspection rather than deleting evidence.
				continue
			}
			if len(items) > 0 {
				continue
			}
			if err := jr.gateway.Delete(ctx, key); err != nil {
				logger.Error("Failed to prune scope", "scope", key, "error", err)
				continue
			}
			pruned++
		}
		logger.Info("Pruned empty scopes", "count", pruned)
	})
}

// ReportStorageStats logs the number of stored scopes per namespace
func (jr *JobRunner) ReportStorageStats() {
	jr.runWithRecovery("ReportStorageStats", func() {
		keys, err := jr.gateway.Keys(context.Background())
		if err != nil {
			logger.Error("Failed to list storage keys", "error", err)
			return
		}

		counts := make(map[string]int)
		for _, key := range keys {
			ns, _, found := strings.Cut(key, ":")
			if !found {
				ns = "other"
			}
			counts[ns]++
		}
		logger.Info("Storage stats",
			"total", len(keys),
			"carts", counts[storage.NamespaceCart],
			"orders", counts[storage.NamespaceOrders],
			"sessions", counts[storage.NamespaceSession])
	})
}

// RunAll runs every maintenance job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.PruneEmptyScopes()
	jr.ReportStorageStats()
}

// isCollectionKey reports whether the key belongs to a namespace that
// stores a collection. Session keys store a single object and are
// never pruned.
func isCollectionKey(key string) bool {
	return strings.HasPrefix(key, storage.NamespaceCart+":") ||
		strings.HasPrefix(key, storage.NamespaceOrders+":")
}
