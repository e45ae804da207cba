// Package store provides Badger-backed persistence for genealogy records.
package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/giaphaapp/giapha-server/internal/domain"
	"github.com/giaphaapp/giapha-server/internal/names"
)

// Key prefixes per record kind.
const (
	personPrefix  = "person:"
	unionPrefix   = "union:"
	linkPrefix    = "link:"
	eventPrefix   = "event:"
	mediaPrefix   = "media:"
	userPrefix    = "user:"
	sessionPrefix = "session:"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	Persons  *Entity[domain.Person]
	Unions   *Entity[domain.FamilyUnion]
	Links    *Entity[domain.ParentChildLink]
	Events   *Entity[domain.Event]
	Media    *Entity[domain.MediaAsset]
	Users    *Entity[domain.User]
	Sessions *Entity[domain.Session]
}

// New opens the database at path and initializes the record entities.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Badger's internal logging is too chatty
	opts.SyncWrites = true // survive crashes without corrupting the lineage

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
	}

	// Person names are indexed in folded form so "nguyen van binh" finds
	// "Nguyễn Văn Bình". Folded names collide between relatives, so the key
	// embeds the record ID and lookups use ListByIndexPrefix.
	s.Persons = NewEntity[domain.Person](s, personPrefix).
		WithIndexTransform("name",
			func(p *domain.Person) []string {
				if p.FullName == "" {
					return nil
				}
				return []string{names.Fold(p.FullName) + "#" + p.ID}
			},
			names.Fold,
		)

	s.Unions = NewEntity[domain.FamilyUnion](s, unionPrefix)
	s.Links = NewEntity[domain.ParentChildLink](s, linkPrefix)
	s.Events = NewEntity[domain.Event](s, eventPrefix)
	s.Media = NewEntity[domain.MediaAsset](s, mediaPrefix)

	s.Users = NewEntity[domain.User](s, userPrefix).
		WithIndexTransform("email",
			func(u *domain.User) []string { return []string{strings.ToLower(u.Email)} },
			strings.ToLower,
		)

	s.Sessions = NewEntity[domain.Session](s, sessionPrefix).
		WithIndex("refresh",
			func(sess *domain.Session) []string { return []string{sess.RefreshTokenHash} },
		)

	if logger != nil {
		logger.Info("database opened", "path", path)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
