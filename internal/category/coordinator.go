package category

import (
	"context"
	"sync"
	"time"

	apperrors "medcast/internal/errors"
	"medcast/internal/events"
	"medcast/internal/logger"
	"medcast/internal/models"
)

// DefaultRefreshDebounce is how long the Coordinator waits after an
// external change notification before re-reading the store, letting a
// just-completed remote write settle first.
const DefaultRefreshDebounce = 500 * time.Millisecond

// Coordinator owns the authoritative in-memory snapshot of the category
// collection and the tree derived from it. All mutations validate locally,
// persist through the Store, and reconcile the snapshot from the store's
// authoritative response, or from a full refetch when the response is not
// itself authoritative (reorder, batch status, cascade delete).
//
// The persisted collection remains the source of truth; the snapshot is a
// cache that external change notifications refresh. A failed mutation
// leaves the snapshot untouched, and nothing is retried automatically.
// Concurrent refreshes are last-write-wins: a stale response arriving late
// may briefly overwrite newer state until the next notification.
type Coordinator struct {
	store    Store
	bus      *events.Bus
	debounce time.Duration

	mu         sync.RWMutex
	categories []models.Category
	tree       []TreeNode
	loading    bool
	degraded   bool
	lastErr    error
}

// CoordinatorOption customizes a Coordinator at construction.
type CoordinatorOption func(*Coordinator)

// WithRefreshDebounce overrides the debounce delay applied to external
// change notifications.
func WithRefreshDebounce(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) { c.debounce = d }
}

// NewCoordinator creates a Coordinator over the given store. The bus may be
// nil when external change notifications are not needed (tests, one-shot
// tools). Call Refresh to load the initial snapshot and Start to react to
// bus notifications.
func NewCoordinator(store Store, bus *events.Bus, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		store:      store,
		bus:        bus,
		debounce:   DefaultRefreshDebounce,
		categories: []models.Category{},
		tree:       []TreeNode{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start subscribes to categories-updated notifications and refreshes the
// snapshot, debounced, until ctx is cancelled. It returns immediately; the
// subscription runs on its own goroutine.
func (c *Coordinator) Start(ctx context.Context) {
	if c.bus == nil {
		return
	}
	ch, cancel := c.bus.Subscribe(events.CategoriesUpdated)

	go func() {
		defer cancel()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				if timer == nil {
					timer = time.NewTimer(c.debounce)
				} else {
					timer.Stop()
					timer.Reset(c.debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				if err := c.Refresh(ctx); err != nil {
					logger.Get().Warnw("category refresh after external change failed", "error", err)
				}
			}
		}
	}()
}

// Refresh replaces the snapshot with the store's full collection. On
// failure the snapshot is left as is when it already holds data; when the
// Coordinator has never loaded successfully it falls back to the built-in
// seed set and marks itself degraded so callers can surface the data as
// such. Two refreshes with no intervening mutation yield identical
// snapshots.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	cats, err := c.store.ListCategories(ctx)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		if len(c.categories) == 0 || c.degraded {
			c.categories = DefaultCategories()
			c.tree = BuildTree(c.categories)
			c.degraded = true
		}
		c.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrUnavailable, err)
	}

	c.mu.Lock()
	c.categories = cats
	c.tree = BuildTree(cats)
	c.degraded = false
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

// Create validates the payload against the current snapshot and, if valid,
// persists it. The store's authoritative record, never the client payload,
// is appended to the snapshot, so server-assigned fields cannot drift.
func (c *Coordinator) Create(ctx context.Context, in Input) (*models.Category, error) {
	c.mu.RLock()
	res := Validate(in, c.categories, "")
	c.mu.RUnlock()
	if !res.Valid {
		return nil, apperrors.WithFields(apperrors.ErrValidation, res.Errors)
	}

	created, err := c.store.CreateCategory(ctx, in)
	if err != nil {
		c.recordErr(err)
		return nil, err
	}

	c.mu.Lock()
	c.categories = append(c.categories, *created)
	c.tree = BuildTree(c.categories)
	c.lastErr = nil
	c.mu.Unlock()
	return created, nil
}

// Update validates the payload excluding the category itself, persists it,
// and replaces the matching snapshot entry with the store's response.
func (c *Coordinator) Update(ctx context.Context, id string, in Input) (*models.Category, error) {
	c.mu.RLock()
	_, exists := findByID(c.categories, id)
	res := Validate(in, c.categories, id)
	c.mu.RUnlock()

	if !exists {
		return nil, apperrors.ErrCategoryNotFound
	}
	if !res.Valid {
		return nil, apperrors.WithFields(apperrors.ErrValidation, res.Errors)
	}

	updated, err := c.store.UpdateCategory(ctx, id, in)
	if err != nil {
		c.recordErr(err)
		return nil, err
	}

	c.mu.Lock()
	for i := range c.categories {
		if c.categories[i].ID == id {
			c.categories[i] = *updated
			break
		}
	}
	c.tree = BuildTree(c.categories)
	c.lastErr = nil
	c.mu.Unlock()
	return updated, nil
}

// Delete removes the given categories, gated by impact analysis. An unsafe
// deletion (children or associated audio) is rejected without Force; the
// returned impact tells the caller what a forced delete would affect. The
// whole batch is one policy decision: a single store request whose partial
// failures surface as one error. After a cascade the snapshot is reconciled
// by a full refetch rather than by guessing which children the store
// actually removed.
func (c *Coordinator) Delete(ctx context.Context, ids []string, opts DeleteOptions) (*DeleteImpact, error) {
	c.mu.RLock()
	var targets []models.Category
	for _, id := range ids {
		if t, ok := findByID(c.categories, id); ok {
			targets = append(targets, t)
		}
	}
	impact := AnalyzeDelete(targets, c.categories)
	c.mu.RUnlock()

	if len(targets) != len(ids) {
		return nil, apperrors.ErrCategoryNotFound
	}
	if !impact.CanSafeDelete && !opts.Force {
		return &impact, apperrors.ErrCategoryNotEmpty
	}

	var err error
	if len(ids) == 1 {
		err = c.store.DeleteCategory(ctx, ids[0], opts)
	} else {
		var batch *BatchResult
		batch, err = c.store.BatchDeleteCategories(ctx, ids, opts)
		if err == nil && len(batch.Failed) > 0 {
			err = apperrors.WithMessage(apperrors.ErrInternalServer, "some categories could not be deleted")
		}
	}
	if err != nil {
		c.recordErr(err)
		return &impact, err
	}

	if opts.Cascade && impact.HasChildren {
		if rerr := c.Refresh(ctx); rerr != nil {
			return &impact, rerr
		}
		return &impact, nil
	}

	removed := make(map[string]bool, len(ids))
	for _, id := range ids {
		removed[id] = true
	}
	c.mu.Lock()
	kept := c.categories[:0]
	for _, cat := range c.categories {
		if !removed[cat.ID] {
			kept = append(kept, cat)
		}
	}
	c.categories = kept
	c.tree = BuildTree(c.categories)
	c.lastErr = nil
	c.mu.Unlock()
	return &impact, nil
}

// Reorder persists a batch of sort-order changes and reconciles with a full
// refetch, since relative order among untouched siblings can shift
// implicitly. Targets must exist; nothing else is validated.
func (c *Coordinator) Reorder(ctx context.Context, reqs []ReorderRequest) error {
	c.mu.RLock()
	var missing bool
	for _, r := range reqs {
		if _, ok := findByID(c.categories, r.ID); !ok {
			missing = true
			break
		}
	}
	c.mu.RUnlock()
	if missing {
		return apperrors.ErrCategoryNotFound
	}

	if err := c.store.ReorderCategories(ctx, reqs); err != nil {
		c.recordErr(err)
		return err
	}
	return c.Refresh(ctx)
}

// SetStatus activates or deactivates a batch of categories. The store
// response carries no authoritative records, so the snapshot is reconciled
// by a full refetch.
func (c *Coordinator) SetStatus(ctx context.Context, ids []string, isActive bool) error {
	c.mu.RLock()
	var missing bool
	for _, id := range ids {
		if _, ok := findByID(c.categories, id); !ok {
			missing = true
			break
		}
	}
	c.mu.RUnlock()
	if missing {
		return apperrors.ErrCategoryNotFound
	}

	if err := c.store.BatchUpdateStatus(ctx, ids, isActive); err != nil {
		c.recordErr(err)
		return err
	}
	return c.Refresh(ctx)
}

// PreviewDelete computes the delete impact for the given targets against
// the current snapshot without mutating anything. Unknown ids are ignored;
// the confirmation dialog recomputes this whenever the selection changes.
func (c *Coordinator) PreviewDelete(ids []string) DeleteImpact {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var targets []models.Category
	for _, id := range ids {
		if t, ok := findByID(c.categories, id); ok {
			targets = append(targets, t)
		}
	}
	return AnalyzeDelete(targets, c.categories)
}

func (c *Coordinator) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Coordinator) recordErr(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}
