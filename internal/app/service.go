// Package service provides the core business service that implements
// the dependencies required by the HTTP API: reconciled reads over the
// seed snapshot plus the local override store, and validated mutations.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	busadapter "github.com/ehsandc/Event-App-on-render/internal/adapters/mq/bus"
	repository "github.com/ehsandc/Event-App-on-render/internal/adapters/repository"
	"github.com/ehsandc/Event-App-on-render/internal/adapters/seed"
	"github.com/ehsandc/Event-App-on-render/internal/domain/filter"
	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
	"github.com/ehsandc/Event-App-on-render/internal/domain/reconcile"
	"github.com/ehsandc/Event-App-on-render/pkg/logger"
	"github.com/ehsandc/Event-App-on-render/pkg/metrics"
)

// SeedSource abstracts where the seed document comes from.
type SeedSource interface {
	Fetch(ctx context.Context) (model.SeedData, error)
}

// Service implements the API dependencies for the event catalog.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	bus      busadapter.Bus
	seeds    SeedSource
	snapshot model.SeedData

	// Configuration
	seedURL     string
	seedTimeout time.Duration
	storePath   string
	refreshSpec string

	// State
	cron    *cron.Cron
	started bool
	now     func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeedURL sets the seed document location (URL or file path).
func WithSeedURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.seedURL = url
		}
	}
}

// WithSeedTimeout bounds a single seed fetch.
func WithSeedTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.seedTimeout = d
		}
	}
}

// WithStorePath sets the sqlite file backing the override store.
func WithStorePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.storePath = path
		}
	}
}

// WithRefreshSchedule enables periodic seed refresh with a cron expression.
func WithRefreshSchedule(spec string) Option {
	return func(s *Service) {
		s.refreshSpec = spec
	}
}

// WithClock overrides the time source used for date-bucket filtering.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStore injects a pre-built override store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBus injects a pre-built notification bus.
func WithBus(b busadapter.Bus) Option {
	return func(s *Service) {
		if b != nil {
			s.bus = b
		}
	}
}

// WithSeedSource injects a pre-built seed source.
func WithSeedSource(src SeedSource) Option {
	return func(s *Service) {
		if src != nil {
			s.seeds = src
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seedURL:     "events.json",
		seedTimeout: 15 * time.Second,
		storePath:   "overrides.db",
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components and loads the seed snapshot.
// A failed initial fetch is not fatal: the service starts with an empty
// snapshot and the fetch can be retried via Refresh.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting event catalog service...")

	if s.seeds == nil {
		s.seeds = seed.NewFetcher(s.seedURL, seed.WithTimeout(s.seedTimeout))
	}
	if s.store == nil {
		store, err := repository.NewSQLiteStore(s.storePath)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.store = store
	}
	if s.bus == nil {
		s.bus = busadapter.NewInMemoryBus()
	}

	s.started = true
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "initial seed fetch failed; starting with empty snapshot",
			logger.String("seed_url", s.seedURL),
			logger.Error(err),
		)
	}

	if s.refreshSpec != "" {
		c := cron.New()
		if _, err := c.AddFunc(s.refreshSpec, func() {
			if err := s.Refresh(context.Background()); err != nil {
				s.logger.Warn(context.Background(), "scheduled seed refresh failed", logger.Error(err))
			}
		}); err != nil {
			return err
		}
		c.Start()
		s.mu.Lock()
		s.cron = c
		s.mu.Unlock()
		s.logger.Info(ctx, "scheduled seed refresh", logger.String("cron", s.refreshSpec))
	}

	s.logger.Info(ctx, "event catalog service started",
		logger.String("seed_url", s.seedURL),
		logger.String("store_path", s.storePath),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping event catalog service...")

	if s.cron != nil {
		s.cron.Stop()
	}
	if s.bus != nil {
		_ = s.bus.Close()
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "event catalog service stopped")
}

// Refresh refetches the seed document and replaces the current
// snapshot. A superseded in-flight fetch simply loses: last write wins.
func (s *Service) Refresh(ctx context.Context) error {
	metrics.RecordSeedFetch()
	doc, err := s.seeds.Fetch(ctx)
	if err != nil {
		metrics.RecordSeedFetchError()
		return err
	}

	s.mu.Lock()
	s.snapshot = doc
	s.mu.Unlock()

	metrics.UpdateSeedEvents(len(doc.Events))
	s.logger.Info(ctx, "seed snapshot loaded",
		logger.Int("events", len(doc.Events)),
		logger.Int("categories", len(doc.Categories)),
		logger.Int("users", len(doc.Users)),
	)
	s.publish(ctx, busadapter.TopicDataChanged)
	return nil
}

// Events returns the reconciled event view: local additions first, then
// seed events, with edits substituted and tombstoned ids dropped.
func (s *Service) Events(ctx context.Context) ([]model.Event, error) {
	snap := s.seedSnapshot()

	added, err := s.store.ListLocalEvents(ctx)
	if err != nil {
		return nil, err
	}
	edited, err := s.store.ListLocalEdits(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := s.store.ListDeletedEventIDs(ctx)
	if err != nil {
		return nil, err
	}

	events := reconcile.Events(snap.Events, added, edited, deleted)
	metrics.UpdateReconciledEvents(len(events))
	metrics.UpdateLocalEvents(len(added))
	metrics.UpdateTombstones(len(deleted))
	return events, nil
}

// FilterEvents returns the reconciled events matching spec.
func (s *Service) FilterEvents(ctx context.Context, spec model.FilterSpec) ([]model.Event, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Events(events, categories, users, spec, s.now()), nil
}

// GetEvent returns one reconciled event by id.
func (s *Service) GetEvent(ctx context.Context, id int64) (model.Event, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return model.Event{}, err
	}
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Event{}, ErrEventNotFound
}

// AddEvent validates and persists a locally created event.
func (s *Service) AddEvent(ctx context.Context, e model.Event) (model.Event, error) {
	if strings.TrimSpace(e.Title) == "" {
		return model.Event{}, ErrInvalidEvent
	}
	if !e.EndTime.After(e.StartTime) {
		return model.Event{}, ErrInvalidEvent
	}

	created, err := s.store.AddEvent(ctx, e)
	if err != nil {
		metrics.RecordStoreError()
		return model.Event{}, err
	}
	metrics.RecordStoreMutation("add_event")
	s.logger.Info(ctx, "event added", logger.Int64("id", created.ID), logger.String("title", created.Title))
	s.publish(ctx, busadapter.TopicDataChanged)
	return created, nil
}

// EditEvent replaces a locally added event wholesale. Seed events are
// read-only: editing one is reported as not found and nothing changes.
func (s *Service) EditEvent(ctx context.Context, id int64, replacement model.Event) error {
	if strings.TrimSpace(replacement.Title) == "" {
		return ErrInvalidEvent
	}
	if !replacement.EndTime.After(replacement.StartTime) {
		return ErrInvalidEvent
	}

	if err := s.store.ReplaceLocalEvent(ctx, id, replacement); err != nil {
		return err
	}
	metrics.RecordStoreMutation("edit_event")
	s.logger.Info(ctx, "event edited", logger.Int64("id", id))
	s.publish(ctx, busadapter.TopicDataChanged)
	return nil
}

// DeleteEvent removes an event from the reconciled view: locally added
// events are dropped from the store, seed events get a tombstone.
func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	target, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	switch target.Origin {
	case model.OriginLocal:
		if err := s.store.RemoveLocalEvent(ctx, id); err != nil {
			return err
		}
	default:
		if err := s.store.TombstoneEvent(ctx, id); err != nil {
			return err
		}
	}
	metrics.RecordStoreMutation("delete_event")
	s.logger.Info(ctx, "event deleted", logger.Int64("id", id), logger.String("origin", string(target.Origin)))
	s.publish(ctx, busadapter.TopicDataChanged)
	return nil
}

// Categories returns the reconciled category view, seed first.
func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	snap := s.seedSnapshot()

	local, err := s.store.ListLocalCategories(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := s.store.ListDeletedCategoryIDs(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.Categories(snap.Categories, local, deleted), nil
}

// AddCategory creates a custom category. The name must not collide,
// case-insensitively, with any active category.
func (s *Service) AddCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, ErrInvalidName
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return model.Category{}, err
	}
	if nameTaken(categories, name, 0) {
		return model.Category{}, ErrDuplicateName
	}

	created, err := s.store.AddCategory(ctx, model.Category{Name: name})
	if err != nil {
		metrics.RecordStoreError()
		return model.Category{}, err
	}
	metrics.RecordStoreMutation("add_category")
	s.logger.Info(ctx, "category added", logger.Int64("id", created.ID), logger.String("name", created.Name))
	s.publish(ctx, busadapter.TopicDataChanged)
	return created, nil
}

// RenameCategory renames a custom category, subject to the same
// uniqueness rule as creation. Seed categories are read-only.
func (s *Service) RenameCategory(ctx context.Context, id int64, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrInvalidName
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	target, ok := findCategory(categories, id)
	if !ok {
		return ErrCategoryNotFound
	}
	if !target.IsCustom {
		return ErrCategoryReadOnly
	}
	if nameTaken(categories, newName, id) {
		return ErrDuplicateName
	}

	if err := s.store.RenameCategory(ctx, id, newName); err != nil {
		return err
	}
	metrics.RecordStoreMutation("rename_category")
	s.logger.Info(ctx, "category renamed", logger.Int64("id", id), logger.String("name", newName))
	s.publish(ctx, busadapter.TopicDataChanged)
	return nil
}

// DeleteCategory removes a category once nothing references it. Custom
// categories are dropped from the store, seed categories tombstoned.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	categories, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	target, ok := findCategory(categories, id)
	if !ok {
		return ErrCategoryNotFound
	}

	events, err := s.Events(ctx)
	if err != nil {
		return err
	}
	for _, e := range events {
		if e.HasCategory(id) {
			return ErrCategoryInUse
		}
	}

	if target.IsCustom {
		err = s.store.RemoveCategory(ctx, id)
	} else {
		err = s.store.TombstoneCategory(ctx, id)
	}
	if err != nil {
		return err
	}
	metrics.RecordStoreMutation("delete_category")
	s.logger.Info(ctx, "category deleted", logger.Int64("id", id), logger.String("name", target.Name))
	s.publish(ctx, busadapter.TopicDataChanged)
	return nil
}

// Users returns the read-only user collection from the seed snapshot.
func (s *Service) Users(ctx context.Context) ([]model.User, error) {
	return s.seedSnapshot().Users, nil
}

// ResetFilters broadcasts the reset signal; subscribed views drop back
// to the default filter specification.
func (s *Service) ResetFilters(ctx context.Context) {
	s.publish(ctx, busadapter.TopicResetFilters)
}

// Subscribe registers a bus handler and returns its unsubscribe token.
// Before Start wires a bus there is nothing to subscribe to; the token
// is returned empty.
func (s *Service) Subscribe(topic busadapter.Topic, h busadapter.Handler) string {
	if s.bus == nil {
		return ""
	}
	return s.bus.Subscribe(topic, h)
}

// Unsubscribe removes a bus subscription.
func (s *Service) Unsubscribe(token string) {
	if s.bus == nil {
		return
	}
	s.bus.Unsubscribe(token)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	snap := s.seedSnapshot()

	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        started,
		"seedEvents":     len(snap.Events),
		"seedCategories": len(snap.Categories),
		"users":          len(snap.Users),
	}

	if started {
		if added, err := s.store.ListLocalEvents(ctx); err == nil {
			stats["localEvents"] = len(added)
		}
		if deleted, err := s.store.ListDeletedEventIDs(ctx); err == nil {
			stats["deletedEvents"] = len(deleted)
		}
		if cats, err := s.store.ListLocalCategories(ctx); err == nil {
			stats["localCategories"] = len(cats)
		}
	}

	return stats
}

func (s *Service) seedSnapshot() model.SeedData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Service) publish(ctx context.Context, topic busadapter.Topic) {
	if s.bus == nil {
		return
	}
	if s.bus.Publish(ctx, topic) {
		metrics.RecordBusPublish(string(topic))
	}
}

func findCategory(categories []model.Category, id int64) (model.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// nameTaken reports a case-insensitive name collision against any
// active category other than self.
func nameTaken(categories []model.Category, name string, self int64) bool {
	for _, c := range categories {
		if c.ID != self && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
