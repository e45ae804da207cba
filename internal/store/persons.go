package store

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/giaphaapp/giapha-server/internal/domain"
	"github.com/giaphaapp/giapha-server/internal/errors"
	"github.com/giaphaapp/giapha-server/internal/policy"
)

// PersonByID retrieves a person record. Implements policy.PersonResolver so
// the classifier can inherit a referenced person's tier.
func (s *Store) PersonByID(ctx context.Context, id string) (*domain.Person, error) {
	return s.Persons.Get(ctx, id)
}

// SearchPersonsByName returns persons whose folded name starts with the
// folded query.
func (s *Store) SearchPersonsByName(ctx context.Context, query string) ([]*domain.Person, error) {
	return s.Persons.ListByIndexPrefix(ctx, "name", query)
}

// UpdatePersonContact rewrites a person's contact bundle. The corrective
// reclassification check runs inside the same transaction: a living public
// person who gains contact data is tightened to members-only atomically, so
// no concurrent read ever observes tier 0 alongside the fresh contact field.
// Returns the updated person and whether the tier was tightened.
func (s *Store) UpdatePersonContact(ctx context.Context, personID string, contact domain.ContactBundle) (*domain.Person, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var (
		person    domain.Person
		tightened bool
	)

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(personPrefix + personID)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get person: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &person)
		}); err != nil {
			return err
		}

		person.Contact = contact
		if policy.NeedsTightening(&person) {
			person.Tier = domain.TierMembers
			tightened = true
		}
		person.Touch()

		data, err := json.Marshal(&person)
		if err != nil {
			return fmt.Errorf("marshal person: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, false, err
	}

	if tightened && s.logger != nil {
		s.logger.Info("person tier tightened on contact change",
			"person_id", personID, "tier", int(person.Tier))
	}
	return &person, tightened, nil
}

// UpdatePersonTier sets a person's tier explicitly. Used by admins.
func (s *Store) UpdatePersonTier(ctx context.Context, personID string, tier domain.Tier) (*domain.Person, error) {
	if !tier.Valid() {
		return nil, errors.Validationf("tier %d out of range", tier)
	}

	person, err := s.Persons.Get(ctx, personID)
	if err != nil {
		return nil, err
	}

	person.Tier = tier
	person.Touch()
	if err := s.Persons.Update(ctx, personID, person); err != nil {
		return nil, err
	}
	return person, nil
}

// SweepPersonTiers runs the corrective reclassification pass over every
// person in a single transaction: any living public person with contact data
// is rewritten to members-only. The sweep only tightens and is idempotent;
// it returns the number of persons changed.
func (s *Store) SweepPersonTiers(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	changed := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(personPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		type pending struct {
			key  []byte
			data []byte
		}
		var writes []pending

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			if bytes.HasPrefix(item.Key()[len(personPrefix):], []byte("idx:")) {
				continue
			}
			var person domain.Person
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &person)
			}); err != nil {
				return err
			}

			if !policy.NeedsTightening(&person) {
				continue
			}
			person.Tier = domain.TierMembers
			person.Touch()

			data, err := json.Marshal(&person)
			if err != nil {
				return fmt.Errorf("marshal person %s: %w", person.ID, err)
			}
			writes = append(writes, pending{key: item.KeyCopy(nil), data: data})
		}

		// Writes are applied after iteration; badger iterators must not
		// observe their own transaction's writes.
		for _, w := range writes {
			if err := txn.Set(w.key, w.data); err != nil {
				return err
			}
		}
		changed = len(writes)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.logger != nil {
		s.logger.Info("tier sweep complete", "changed", changed)
	}
	return changed, nil
}
