// Package store is the gateway to the document store backing the
// service. Records are JSON documents addressed by table and key; a
// table may declare a range attribute (part of the primary key) and a
// secondary index over that attribute, kept as a redis set of document
// keys. Store failures surface as domain errors carrying the cause,
// never as silently dropped results.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/todoflow-labs/list-service/internal/apperr"
)

// MaxBatchSize is the store's per-call cap on batch write requests.
const MaxBatchSize = 25

type Record = map[string]any

// Table declares the key schema of one table. RangeAttr names the
// attribute completing the primary key ("" for a simple key); Index
// names the secondary index kept over that attribute ("" for none).
type Table struct {
	RangeAttr string
	Index     string
}

type Gateway struct {
	rdb    *redis.Client
	tables map[string]Table
}

func New(rdb *redis.Client, tables map[string]Table) *Gateway {
	if tables == nil {
		tables = map[string]Table{}
	}
	return &Gateway{rdb: rdb, tables: tables}
}

func docKey(table, key, rangeKey string) string {
	if rangeKey != "" {
		return table + ":" + key + ":" + rangeKey
	}
	return table + ":" + key
}

func indexKey(table, index, partition string) string {
	return table + ":" + index + ":" + partition
}

// GetByKey is a single-item point lookup. A missing or empty document
// is NotFound, not an empty record.
func (g *Gateway) GetByKey(ctx context.Context, table, key, rangeKey string) (Record, error) {
	raw, err := g.rdb.Get(ctx, docKey(table, key, rangeKey)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFound(key)
	}
	if err != nil {
		return nil, apperr.Unavailable(err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if len(rec) == 0 {
		return nil, apperr.NotFound(key)
	}
	return rec, nil
}

// Put is an unconditional upsert. The record must carry an "id"
// attribute and, for range-keyed tables, the range attribute.
func (g *Gateway) Put(ctx context.Context, table string, rec Record) error {
	key, rangeVal, err := g.recordKey(table, rec)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return apperr.Unavailable(err)
	}

	pipe := g.rdb.TxPipeline()
	pipe.Set(ctx, docKey(table, key, rangeVal), doc, 0)
	if t := g.tables[table]; t.Index != "" && rangeVal != "" {
		pipe.SAdd(ctx, indexKey(table, t.Index, rangeVal), docKey(table, key, rangeVal))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

// UpdateByKey merges the named attribute assignments into the stored
// document and always refreshes updatedAt. Returns the updated record.
func (g *Gateway) UpdateByKey(ctx context.Context, table, key, rangeKey string, assignments Record) (Record, error) {
	rec, err := g.GetByKey(ctx, table, key, rangeKey)
	if err != nil {
		return nil, err
	}
	for attr, value := range assignments {
		rec[attr] = value
	}
	rec["updatedAt"] = time.Now().UnixMilli()

	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := g.rdb.Set(ctx, docKey(table, key, rangeKey), doc, 0).Err(); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return rec, nil
}

// DeleteByKey removes the document and its index membership.
func (g *Gateway) DeleteByKey(ctx context.Context, table, key, rangeKey string) error {
	pipe := g.rdb.TxPipeline()
	pipe.Del(ctx, docKey(table, key, rangeKey))
	if t := g.tables[table]; t.Index != "" && rangeKey != "" {
		pipe.SRem(ctx, indexKey(table, t.Index, rangeKey), docKey(table, key, rangeKey))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

// QueryByIndex returns every record in the index partition, ordered by
// document key. An empty partition yields an empty slice, not an error.
func (g *Gateway) QueryByIndex(ctx context.Context, table, index, partition string) ([]Record, error) {
	members, err := g.rdb.SMembers(ctx, indexKey(table, index, partition)).Result()
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	if len(members) == 0 {
		return []Record{}, nil
	}
	sort.Strings(members)

	docs, err := g.rdb.MGet(ctx, members...).Result()
	if err != nil {
		return nil, apperr.Unavailable(err)
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			continue // index member with no document, skip
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, apperr.Unavailable(err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (g *Gateway) recordKey(table string, rec Record) (key, rangeVal string, err error) {
	key, _ = rec["id"].(string)
	if key == "" {
		return "", "", apperr.Unavailable(fmt.Errorf("record for table %s has no id", table))
	}
	if attr := g.tables[table].RangeAttr; attr != "" {
		rangeVal, _ = rec[attr].(string)
		if rangeVal == "" {
			return "", "", apperr.Unavailable(fmt.Errorf("record for table %s has no %s", table, attr))
		}
	}
	return key, rangeVal, nil
}
