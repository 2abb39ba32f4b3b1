package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
)

// entry is one named, JSON-encoded collection.
type entry struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// SQLiteStore implements Store on a single-file sqlite database, the
// server-side stand-in for browser-scoped storage. Last write wins
// across processes; within one process mutations are serialized.
type SQLiteStore struct {
	db  *gorm.DB
	now func() time.Time

	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the store at dsn and runs migrations.
func NewSQLiteStore(dsn string, opts ...Option) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = "overrides.db"
	}
	if err := ensureDir(dsn); err != nil {
		return nil, err
	}

	dbLogger := gormlogger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenStore, err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", ErrOpenStore, err)
	}

	s := &SQLiteStore{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ensureDir creates the parent directory for a file-backed DSN.
func ensureDir(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create dir %q: %v", ErrOpenStore, dir, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AddEvent persists a locally created event, assigning its id.
func (s *SQLiteStore) AddEvent(ctx context.Context, e model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.readEvents(ctx, keyLocalEvents)
	e.ID = s.nextID(eventIDs(events))
	e.Origin = model.OriginLocal

	// Newest first, so reconciled output shows fresh additions on top.
	events = append([]model.Event{e}, events...)
	if err := s.writeJSON(ctx, keyLocalEvents, events); err != nil {
		return model.Event{}, err
	}
	return e, nil
}

// ReplaceLocalEvent records a full-replacement edit for a locally added event.
func (s *SQLiteStore) ReplaceLocalEvent(ctx context.Context, id int64, replacement model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !containsEventID(s.readEvents(ctx, keyLocalEvents), id) {
		return ErrEventNotFound
	}

	edits := s.readEdits(ctx)
	replacement.ID = id
	replacement.Origin = model.OriginLocal
	edits[id] = replacement
	return s.writeJSON(ctx, keyLocalEdits, edits)
}

// RemoveLocalEvent drops a locally added event and any edit overlay for it.
func (s *SQLiteStore) RemoveLocalEvent(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.readEvents(ctx, keyLocalEvents)
	if !containsEventID(events, id) {
		return ErrEventNotFound
	}

	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if err := s.writeJSON(ctx, keyLocalEvents, kept); err != nil {
		return err
	}

	edits := s.readEdits(ctx)
	if _, ok := edits[id]; ok {
		delete(edits, id)
		return s.writeJSON(ctx, keyLocalEdits, edits)
	}
	return nil
}

// TombstoneEvent records a deletion marker for a seed event id.
func (s *SQLiteStore) TombstoneEvent(ctx context.Context, id int64) error {
	return s.tombstone(ctx, keyDeletedEventIDs, id)
}

// AddCategory persists a locally created category, assigning its id.
func (s *SQLiteStore) AddCategory(ctx context.Context, c model.Category) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := s.readCategories(ctx)
	c.ID = s.nextID(categoryIDs(cats))
	c.IsCustom = true

	cats = append(cats, c)
	if err := s.writeJSON(ctx, keyLocalCategories, cats); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// RenameCategory renames a locally added category in place.
func (s *SQLiteStore) RenameCategory(ctx context.Context, id int64, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := s.readCategories(ctx)
	for i := range cats {
		if cats[i].ID == id {
			cats[i].Name = newName
			return s.writeJSON(ctx, keyLocalCategories, cats)
		}
	}
	return ErrCategoryNotFound
}

// RemoveCategory drops a locally added category.
func (s *SQLiteStore) RemoveCategory(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := s.readCategories(ctx)
	kept := cats[:0]
	found := false
	for _, c := range cats {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return ErrCategoryNotFound
	}
	return s.writeJSON(ctx, keyLocalCategories, kept)
}

// TombstoneCategory records a deletion marker for a seed category id.
func (s *SQLiteStore) TombstoneCategory(ctx context.Context, id int64) error {
	return s.tombstone(ctx, keyDeletedCategoryIDs, id)
}

// ListLocalEvents returns locally added events, newest first.
func (s *SQLiteStore) ListLocalEvents(ctx context.Context) ([]model.Event, error) {
	return s.readEvents(ctx, keyLocalEvents), nil
}

// ListLocalEdits returns recorded edits keyed by event id.
func (s *SQLiteStore) ListLocalEdits(ctx context.Context) (map[int64]model.Event, error) {
	return s.readEdits(ctx), nil
}

// ListDeletedEventIDs returns the event tombstone set.
func (s *SQLiteStore) ListDeletedEventIDs(ctx context.Context) ([]int64, error) {
	return s.readIDs(ctx, keyDeletedEventIDs), nil
}

// ListLocalCategories returns locally added categories in insertion order.
func (s *SQLiteStore) ListLocalCategories(ctx context.Context) ([]model.Category, error) {
	return s.readCategories(ctx), nil
}

// ListDeletedCategoryIDs returns the category tombstone set.
func (s *SQLiteStore) ListDeletedCategoryIDs(ctx context.Context) ([]int64, error) {
	return s.readIDs(ctx, keyDeletedCategoryIDs), nil
}

func (s *SQLiteStore) tombstone(ctx context.Context, key string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.readIDs(ctx, key)
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return s.writeJSON(ctx, key, append(ids, id))
}

// nextID derives an id from the current time in milliseconds, the
// original scheme. Only an exact collision with an existing local id is
// nudged forward; see the open-question notes.
func (s *SQLiteStore) nextID(taken map[int64]struct{}) int64 {
	id := s.now().UnixMilli()
	for {
		if _, exists := taken[id]; !exists {
			return id
		}
		id++
	}
}

// readJSON decodes one entry. Missing or corrupt values degrade to the
// zero collection so a damaged store never blocks reads.
func (s *SQLiteStore) readJSON(ctx context.Context, key string, dest any) bool {
	var e entry
	err := s.db.WithContext(ctx).First(&e, "key = ?", key).Error
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(e.Value), dest); err != nil {
		return false
	}
	return true
}

func (s *SQLiteStore) readEvents(ctx context.Context, key string) []model.Event {
	var events []model.Event
	if !s.readJSON(ctx, key, &events) {
		return nil
	}
	return events
}

func (s *SQLiteStore) readEdits(ctx context.Context) map[int64]model.Event {
	edits := make(map[int64]model.Event)
	if !s.readJSON(ctx, keyLocalEdits, &edits) {
		return make(map[int64]model.Event)
	}
	return edits
}

func (s *SQLiteStore) readCategories(ctx context.Context) []model.Category {
	var cats []model.Category
	if !s.readJSON(ctx, keyLocalCategories, &cats) {
		return nil
	}
	return cats
}

func (s *SQLiteStore) readIDs(ctx context.Context, key string) []int64 {
	var ids []int64
	if !s.readJSON(ctx, key, &ids) {
		return nil
	}
	return ids
}

// writeJSON rewrites one entry in a single upsert, keeping each
// mutation atomic with respect to its own entry.
func (s *SQLiteStore) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrWriteEntry, key, err)
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry{Key: key, Value: string(data)}).Error
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteEntry, key, err)
	}
	return nil
}

func eventIDs(events []model.Event) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(events))
	for _, e := range events {
		ids[e.ID] = struct{}{}
	}
	return ids
}

func categoryIDs(cats []model.Category) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(cats))
	for _, c := range cats {
		ids[c.ID] = struct{}{}
	}
	return ids
}

func containsEventID(events []model.Event, id int64) bool {
	for _, e := range events {
		if e.ID == id {
			return true
		}
	}
	return false
}
