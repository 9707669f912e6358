package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/samber/oops"
	_ "modernc.org/sqlite"

	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// SQLiteStore keeps every record as a JSON document in one table.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *log.Logger
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// OpenSQLite opens or creates the database at path. ":memory:" opens a
// private in-memory database.
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	memory := path == ":memory:"

	connStr := path
	if memory {
		// shared cache so every pooled connection sees the same database,
		// named so separate stores stay separate
		connStr = fmt.Sprintf("file:stash-%s?mode=memory&cache=shared", uuid.NewString())
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, storeFailed(err, "opening database %q", path)
	}

	if memory {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storeFailed(err, "pinging database %q", path)
	}

	if !memory {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, storeFailed(err, "enabling WAL mode")
		}
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	debug(logger, "opened sqlite store", "path", path)
	return s, nil
}

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		kind TEXT NOT NULL,
		id TEXT NOT NULL,
		body TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (kind, id)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents(kind, updated_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return storeFailed(err, "creating schema")
	}
	return nil
}

func storeFailed(err error, format string, args ...any) error {
	return oops.Code("STORE_FAILED").Wrapf(err, format, args...)
}

func notFound(kind, id string) error {
	return oops.
		Code("NOT_FOUND").
		With("kind", kind).
		With("id", id).
		Errorf("%s %q not found", kind, id)
}

func getDoc[T any](ctx context.Context, q querier, kind, id string) (*T, error) {
	var body string
	err := q.QueryRowContext(ctx, "SELECT body FROM documents WHERE kind = ? AND id = ?", kind, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(kind, id)
	}
	if err != nil {
		return nil, storeFailed(err, "reading %s %q", kind, id)
	}

	var record T
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		return nil, storeFailed(err, "decoding %s %q", kind, id)
	}
	return &record, nil
}

// listDocs returns every document of kind in id order
func listDocs[T any](ctx context.Context, q querier, kind string) ([]T, error) {
	rows, err := q.QueryContext(ctx, "SELECT body FROM documents WHERE kind = ? ORDER BY id", kind)
	if err != nil {
		return nil, storeFailed(err, "listing %s records", kind)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, storeFailed(err, "scanning %s record", kind)
		}
		var record T
		if err := json.Unmarshal([]byte(body), &record); err != nil {
			return nil, storeFailed(err, "decoding %s record", kind)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailed(err, "listing %s records", kind)
	}
	return out, nil
}

func putDoc(ctx context.Context, q querier, kind, id string, record any, updated time.Time) error {
	body, err := json.Marshal(record)
	if err != nil {
		return storeFailed(err, "encoding %s %q", kind, id)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO documents (kind, id, body, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, kind, id, string(body), updated.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return storeFailed(err, "writing %s %q", kind, id)
	}
	return nil
}

func deleteDoc(ctx context.Context, q querier, kind, id string) error {
	res, err := q.ExecContext(ctx, "DELETE FROM documents WHERE kind = ? AND id = ?", kind, id)
	if err != nil {
		return storeFailed(err, "deleting %s %q", kind, id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(kind, id)
	}
	return nil
}

// inTx runs fn in a transaction, committing when it returns nil
func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeFailed(err, "beginning transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return storeFailed(err, "committing transaction")
	}
	return nil
}

func (s *SQLiteStore) Collections(ctx context.Context) ([]models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDocs[models.Collection](ctx, s.db, KindCollection)
}

func (s *SQLiteStore) Items(ctx context.Context) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDocs[models.Item](ctx, s.db, KindItem)
}

func (s *SQLiteStore) WishItems(ctx context.Context) ([]models.WishItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDocs[models.WishItem](ctx, s.db, KindWish)
}

func (s *SQLiteStore) Collection(ctx context.Context, id string) (*models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getDoc[models.Collection](ctx, s.db, KindCollection, id)
}

func (s *SQLiteStore) Item(ctx context.Context, id string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getDoc[models.Item](ctx, s.db, KindItem, id)
}

func (s *SQLiteStore) WishItem(ctx context.Context, id string) (*models.WishItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getDoc[models.WishItem](ctx, s.db, KindWish, id)
}

func (s *SQLiteStore) SaveCollection(ctx context.Context, c *models.Collection) error {
	if err := files.PrepareCollection(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return putDoc(ctx, s.db, KindCollection, c.ID, c, c.UpdatedAt)
}

func (s *SQLiteStore) SaveItem(ctx context.Context, item *models.Item) error {
	if err := files.PrepareItem(item); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return putDoc(ctx, s.db, KindItem, item.ID, item, item.UpdatedAt)
}

func (s *SQLiteStore) SaveWishItem(ctx context.Context, w *models.WishItem) error {
	if err := files.PrepareWishItem(w); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return putDoc(ctx, s.db, KindWish, w.ID, w, w.UpdatedAt)
}

func (s *SQLiteStore) DeleteCollection(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := deleteDoc(ctx, tx, KindCollection, id); err != nil {
			return err
		}

		items, err := listDocs[models.Item](ctx, tx, KindItem)
		if err != nil {
			return err
		}
		for i := range items {
			item := &items[i]
			if !slices.Contains(item.CollectionIDs, id) {
				continue
			}
			item.CollectionIDs = slices.DeleteFunc(item.CollectionIDs, func(c string) bool { return c == id })
			if err := files.PrepareItem(item); err != nil {
				return err
			}
			if err := putDoc(ctx, tx, KindItem, item.ID, item, item.UpdatedAt); err != nil {
				return err
			}
		}
		debug(s.logger, "deleted collection", "id", id)
		return nil
	})
}

func (s *SQLiteStore) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := deleteDoc(ctx, tx, KindItem, id); err != nil {
			return err
		}

		collections, err := listDocs[models.Collection](ctx, tx, KindCollection)
		if err != nil {
			return err
		}
		for i := range collections {
			c := &collections[i]
			if !slices.Contains(c.ItemIDs, id) {
				continue
			}
			c.ItemIDs = slices.DeleteFunc(c.ItemIDs, func(item string) bool { return item == id })
			if err := files.PrepareCollection(c); err != nil {
				return err
			}
			if err := putDoc(ctx, tx, KindCollection, c.ID, c, c.UpdatedAt); err != nil {
				return err
			}
		}
		debug(s.logger, "deleted item", "id", id)
		return nil
	})
}

func (s *SQLiteStore) DeleteWishItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteDoc(ctx, s.db, KindWish, id)
}

func (s *SQLiteStore) AddToCollection(ctx context.Context, collectionID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		c, err := getDoc[models.Collection](ctx, tx, KindCollection, collectionID)
		if err != nil {
			return err
		}
		item, err := getDoc[models.Item](ctx, tx, KindItem, itemID)
		if err != nil {
			return err
		}

		if !slices.Contains(c.ItemIDs, itemID) {
			c.ItemIDs = append(c.ItemIDs, itemID)
			if err := files.PrepareCollection(c); err != nil {
				return err
			}
			if err := putDoc(ctx, tx, KindCollection, c.ID, c, c.UpdatedAt); err != nil {
				return err
			}
		}
		if !slices.Contains(item.CollectionIDs, collectionID) {
			item.CollectionIDs = append(item.CollectionIDs, collectionID)
			if err := files.PrepareItem(item); err != nil {
				return err
			}
			if err := putDoc(ctx, tx, KindItem, item.ID, item, item.UpdatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) OrderCollection(ctx context.Context, collectionID string, itemIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		c, err := getDoc[models.Collection](ctx, tx, KindCollection, collectionID)
		if err != nil {
			return err
		}
		ordered, err := files.Reorder(c.ItemIDs, itemIDs)
		if err != nil {
			return oops.With("collection", collectionID).Wrap(err)
		}
		c.ItemIDs = ordered
		if err := files.PrepareCollection(c); err != nil {
			return err
		}
		return putDoc(ctx, tx, KindCollection, c.ID, c, c.UpdatedAt)
	})
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
