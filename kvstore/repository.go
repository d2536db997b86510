package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// RepositoryConfig carries the per-entity pieces a Repository needs:
// the key namespace, how to derive a record's id, and an optional
// substring-search predicate.
type RepositoryConfig[T any] struct {
	Prefix  string
	Key     func(T) string
	Matches func(T, string) bool
}

// Repository is a typed view over a KeyValue namespace. One instance
// per entity kind; the store is passed in explicitly.
type Repository[T any] struct {
	kv  KeyValue
	cfg RepositoryConfig[T]
}

// NewRepository builds a Repository for one entity kind.
func NewRepository[T any](kv KeyValue, cfg RepositoryConfig[T]) *Repository[T] {
	return &Repository[T]{kv: kv, cfg: cfg}
}

func (r *Repository[T]) key(id string) string {
	return r.cfg.Prefix + ":" + id
}

// Save upserts one record under its derived id.
func (r *Repository[T]) Save(ctx context.Context, record T) error {
	id := r.cfg.Key(record)
	if id == "" {
		return fmt.Errorf("%s: record has empty key", r.cfg.Prefix)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%s: marshal %s: %w", r.cfg.Prefix, id, err)
	}

	return r.kv.Set(ctx, r.key(id), data)
}

// SaveAll upserts records in one pipelined write.
func (r *Repository[T]) SaveAll(ctx context.Context, records []T) error {
	entries := make(map[string][]byte, len(records))
	for _, record := range records {
		id := r.cfg.Key(record)
		if id == "" {
			return fmt.Errorf("%s: record has empty key", r.cfg.Prefix)
		}
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("%s: marshal %s: %w", r.cfg.Prefix, id, err)
		}
		entries[r.key(id)] = data
	}

	return r.kv.SetMulti(ctx, entries)
}

// FindByID returns the record stored under id, or ErrNotFound.
func (r *Repository[T]) FindByID(ctx context.Context, id string) (T, error) {
	var record T

	data, err := r.kv.Get(ctx, r.key(id))
	if err != nil {
		return record, err
	}

	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("%s: unmarshal %s: %w", r.cfg.Prefix, id, err)
	}

	return record, nil
}

// FindAll returns every record in the namespace in key order.
func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	keys, err := r.kv.Keys(ctx, r.cfg.Prefix+":")
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(keys))
	for _, k := range keys {
		data, err := r.kv.Get(ctx, k)
		if err != nil {
			// Deleted between listing and read; skip.
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}

		var record T
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("%s: unmarshal %s: %w", r.cfg.Prefix, k, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// FindAllPaged returns one page of records. Pages start at 1.
func (r *Repository[T]) FindAllPaged(ctx context.Context, page, limit int) ([]T, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	start := (page - 1) * limit
	if start >= len(all) {
		return []T{}, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], nil
}

// Search returns records matching the configured predicate.
func (r *Repository[T]) Search(ctx context.Context, term string) ([]T, error) {
	if r.cfg.Matches == nil {
		return nil, fmt.Errorf("%s: search not configured", r.cfg.Prefix)
	}

	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]T, 0)
	for _, record := range all {
		if r.cfg.Matches(record, term) {
			matched = append(matched, record)
		}
	}

	return matched, nil
}

// Delete removes the record stored under id, if any.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.kv.Delete(ctx, r.key(id))
}

// Count returns the namespace size.
func (r *Repository[T]) Count(ctx context.Context) (int, error) {
	return r.kv.Count(ctx, r.cfg.Prefix+":")
}
