package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/todoflow-labs/list-service/internal/apperr"
)

// Key addresses one document for a batch delete request.
type Key struct {
	Key      string
	RangeKey string
}

// WriteRequest is one entry in a batch write: either a delete by key or
// a put of a full record.
type WriteRequest struct {
	Delete *Key
	Put    Record
}

// BatchWrite applies up to MaxBatchSize write requests against one
// table in a single pipelined call. Larger sets are the caller's job
// to chunk.
func (g *Gateway) BatchWrite(ctx context.Context, table string, requests []WriteRequest) error {
	if len(requests) > MaxBatchSize {
		return apperr.Unavailable(fmt.Errorf("batch of %d exceeds the %d request cap", len(requests), MaxBatchSize))
	}

	t := g.tables[table]
	pipe := g.rdb.TxPipeline()
	for _, req := range requests {
		switch {
		case req.Delete != nil:
			pipe.Del(ctx, docKey(table, req.Delete.Key, req.Delete.RangeKey))
			if t.Index != "" && req.Delete.RangeKey != "" {
				pipe.SRem(ctx, indexKey(table, t.Index, req.Delete.RangeKey), docKey(table, req.Delete.Key, req.Delete.RangeKey))
			}
		case req.Put != nil:
			key, rangeVal, err := g.recordKey(table, req.Put)
			if err != nil {
				return err
			}
			doc, err := json.Marshal(req.Put)
			if err != nil {
				return apperr.Unavailable(err)
			}
			pipe.Set(ctx, docKey(table, key, rangeVal), doc, 0)
			if t.Index != "" && rangeVal != "" {
				pipe.SAdd(ctx, indexKey(table, t.Index, rangeVal), docKey(table, key, rangeVal))
			}
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

// Chunk splits items into order-preserving groups of at most size.
// Every chunk except possibly the last has exactly size items; empty
// input yields no chunks. size must be at least 1.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		panic("store: chunk size must be at least 1")
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
