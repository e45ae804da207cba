package store

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/giaphaapp/giapha-server/internal/errors"
)

// Entity provides generic CRUD operations for one record kind.
// Records are stored as JSON under prefix+id; secondary index entries live
// under prefix+"idx:"+name+":"+key and map back to the primary ID.
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []Index[T]
}

// Index defines a secondary index on an entity. Index keys must be unique
// across records; multi-valued lookups use ListByIndexPrefix with keys that
// embed the record ID.
type Index[T any] struct {
	name            string
	keyGen          func(*T) []string
	lookupTransform func(string) string // optional normalization applied on lookup
}

// NewEntity creates a new Entity instance for type T.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{
		store:  s,
		prefix: prefix,
	}
}

// WithIndex adds a secondary index to the entity.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{name: name, keyGen: keyGen})
	return e
}

// WithIndexTransform adds a secondary index whose lookup values are passed
// through transform first, enabling case- and diacritic-insensitive lookups.
func (e *Entity[T]) WithIndexTransform(name string, keyGen func(*T) []string, transform func(string) string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{name: name, keyGen: keyGen, lookupTransform: transform})
	return e
}

func (e *Entity[T]) key(id string) []byte {
	return []byte(e.prefix + id)
}

func (e *Entity[T]) indexKey(name, value string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + value)
}

// Create stores a new entity under the given ID.
// Returns ErrAlreadyExists if the ID or any index key is taken.
func (e *Entity[T]) Create(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(e.key(id)); err == nil {
			return errors.ErrAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check existing key: %w", err)
		}

		for _, idx := range e.indexes {
			for _, indexKey := range idx.keyGen(entity) {
				if _, err := txn.Get(e.indexKey(idx.name, indexKey)); err == nil {
					return errors.Wrapf(errors.ErrAlreadyExists, errors.CodeAlreadyExists,
						"index %s conflict on %s", idx.name, indexKey)
				} else if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("check index key: %w", err)
				}
			}
		}

		if err := txn.Set(e.key(id), data); err != nil {
			return fmt.Errorf("set key: %w", err)
		}
		for _, idx := range e.indexes {
			for _, indexKey := range idx.keyGen(entity) {
				if err := txn.Set(e.indexKey(idx.name, indexKey), []byte(id)); err != nil {
					return fmt.Errorf("set index key: %w", err)
				}
			}
		}
		return nil
	})
}

// Get retrieves an entity by ID.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get key: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		})
	})
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetByIndex retrieves an entity through a secondary index.
// The index's lookup transform, if any, is applied to value first.
func (e *Entity[T]) GetByIndex(ctx context.Context, indexName, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, idx := range e.indexes {
		if idx.name == indexName && idx.lookupTransform != nil {
			value = idx.lookupTransform(value)
			break
		}
	}

	var id string
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.indexKey(indexName, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return e.Get(ctx, id)
}

// ListByIndexPrefix returns all entities whose index key starts with the
// given value, after applying the index's lookup transform. Used for
// multi-valued indexes whose keys embed the record ID.
func (e *Entity[T]) ListByIndexPrefix(ctx context.Context, indexName, value string) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, idx := range e.indexes {
		if idx.name == indexName && idx.lookupTransform != nil {
			value = idx.lookupTransform(value)
			break
		}
	}

	var ids []string
	prefix := e.indexKey(indexName, value)
	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		entity, err := e.Get(ctx, id)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				continue // index entry raced a delete
			}
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// Update replaces an existing entity, maintaining its index entries.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Update(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		var old T
		item, err := txn.Get(e.key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get existing key: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &old)
		}); err != nil {
			return err
		}

		for _, idx := range e.indexes {
			for _, indexKey := range idx.keyGen(&old) {
				if err := txn.Delete(e.indexKey(idx.name, indexKey)); err != nil {
					return fmt.Errorf("delete old index key: %w", err)
				}
			}
		}

		if err := txn.Set(e.key(id), data); err != nil {
			return fmt.Errorf("set key: %w", err)
		}
		for _, idx := range e.indexes {
			for _, indexKey := range idx.keyGen(entity) {
				if err := txn.Set(e.indexKey(idx.name, indexKey), []byte(id)); err != nil {
					return fmt.Errorf("set index key: %w", err)
				}
			}
		}
		return nil
	})
}

// Delete removes an entity and its index entries.
// Idempotent: deleting a missing entity is not an error.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		var entity T
		item, err := txn.Get(e.key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get key: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		}); err != nil {
			return err
		}

		for _, idx := range e.indexes {
			for _, indexKey := range idx.keyGen(&entity) {
				if err := txn.Delete(e.indexKey(idx.name, indexKey)); err != nil {
					return fmt.Errorf("delete index key: %w", err)
				}
			}
		}
		return txn.Delete(e.key(id))
	})
}

// List returns all entities of this kind in key order.
func (e *Entity[T]) List(ctx context.Context) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*T
	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(e.prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			// Skip index entries, which share the prefix.
			rest := strings.TrimPrefix(string(item.Key()), e.prefix)
			if strings.HasPrefix(rest, "idx:") {
				continue
			}

			var entity T
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entity)
			}); err != nil {
				return err
			}
			out = append(out, &entity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
