package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"RiskView/internal/domain/models"
	domrepo "RiskView/internal/domain/repository"
	"RiskView/internal/services/render"
	"RiskView/internal/services/sorter"
	applogger "RiskView/pkg/logger"

	"github.com/google/uuid"
)

// Views creates view controllers sharing one set of collaborators.
type Views struct {
	loader   *Loader
	renderer *render.Renderer
	sorter   *sorter.Sorter
	gens     domrepo.Generations
	store    domrepo.SnapshotStore
	metrics  domrepo.Metrics
	logger   *applogger.Logger
}

// NewViews wires the view factory. store may be nil when views are not persisted.
func NewViews(loader *Loader, renderer *render.Renderer, srt *sorter.Sorter, gens domrepo.Generations,
	store domrepo.SnapshotStore, m domrepo.Metrics, l *applogger.Logger) *Views {
	if l == nil {
		l = applogger.Nop()
	}
	return &Views{
		loader:   loader,
		renderer: renderer,
		sorter:   srt,
		gens:     gens,
		store:    store,
		metrics:  m,
		logger:   l,
	}
}

// Loader exposes the request resolver.
func (v *Views) Loader() *Loader {
	return v.loader
}

// New returns an idle controller; an empty id gets a random one.
func (v *Views) New(id string) *Controller {
	if id == "" {
		id = uuid.NewString()
	}
	return &Controller{
		views: v,
		snap:  models.ViewSnapshot{ID: id, State: models.StateIdle, Sort: models.DefaultSortState()},
	}
}

// Restore rebuilds a controller from a snapshot.
func (v *Views) Restore(snap *models.ViewSnapshot) *Controller {
	c := v.New(snap.ID)
	id := c.snap.ID
	c.snap = *snap
	c.snap.ID = id
	c.snap.Rows = append([]models.MetricRow(nil), snap.Rows...)
	return c
}

// Open restores the controller saved under id, or returns a fresh one.
func (v *Views) Open(ctx context.Context, id string) (*Controller, error) {
	if v.store == nil || id == "" {
		return v.New(id), nil
	}
	snap, err := v.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("open view %s: %w", id, err)
	}
	if snap == nil {
		return v.New(id), nil
	}
	return v.Restore(snap), nil
}

// Save persists the controller's state when a store is configured. State that belongs to
// a superseded generation is not written and Save returns ErrStale.
func (v *Views) Save(ctx context.Context, c *Controller) error {
	if v.store == nil {
		return nil
	}
	snap := c.Snapshot()
	latest, err := v.gens.Current(ctx, snap.ID)
	if err != nil {
		return fmt.Errorf("save view %s: current generation: %w", snap.ID, err)
	}
	if snap.Generation != latest {
		return ErrStale
	}
	if err := v.store.Save(ctx, &snap); err != nil {
		return fmt.Errorf("save view %s: %w", snap.ID, err)
	}
	return nil
}

// Controller owns the state of one view: what is loaded, how it is sorted and filtered.
// Loads are guarded by a per-view generation so that only the latest one is applied.
type Controller struct {
	views *Views

	mu   sync.Mutex
	snap models.ViewSnapshot
}

// ID returns the view id.
func (c *Controller) ID() string {
	return c.snap.ID
}

// State returns the current view state.
func (c *Controller) State() models.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.State
}

// Load fetches target and displays it. A load overtaken by a newer one returns ErrStale
// and leaves the view untouched. Other failures put the view in the error state and
// return both the error tree and the error.
func (c *Controller) Load(ctx context.Context, basePath string, target models.ViewTarget) (*render.RenderTree, error) {
	gen, err := c.Begin(ctx, basePath, target)
	if err != nil {
		return nil, err
	}
	return c.Finish(ctx, gen, basePath, target)
}

// Begin issues the next load generation and puts the view in the loading state. Callers
// that fetch asynchronously call Begin in request order and Finish in any order.
func (c *Controller) Begin(ctx context.Context, basePath string, target models.ViewTarget) (int64, error) {
	gen, err := c.views.gens.Next(ctx, c.ID())
	if err != nil {
		return 0, fmt.Errorf("next generation: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkLatestLocked(ctx, gen, target); err != nil {
		return 0, err
	}
	c.snap.Generation = gen
	c.snap.State = models.StateLoading
	c.snap.Target = target
	c.snap.BasePath = basePath
	c.snap.Message = ""
	return gen, nil
}

// Finish fetches target for a generation issued by Begin and applies the result unless a
// newer generation has been issued meanwhile.
func (c *Controller) Finish(ctx context.Context, gen int64, basePath string, target models.ViewTarget) (*render.RenderTree, error) {
	v := c.views
	res, ferr := v.loader.Fetch(ctx, basePath, target)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkLatestLocked(ctx, gen, target); err != nil {
		return nil, err
	}

	if ferr != nil {
		c.snap.State = models.StateError
		c.snap.Message = UserMessage(ferr)
		c.snap.Heatmap = nil
		c.snap.Rows = nil
		if v.metrics != nil {
			v.metrics.RecordError(errorKind(ferr))
		}
		return c.treeLocked(), ferr
	}

	if res.Heatmap != nil {
		c.snap.State = models.StateHeatmapDisplayed
		c.snap.Heatmap = res.Heatmap
		c.snap.Rows = nil
		c.snap.Year = render.AllYears
	} else {
		c.snap.State = models.StateCategoryDisplayed
		c.snap.Heatmap = nil
		c.snap.Rows = res.Rows
		c.snap.Sort = models.DefaultSortState()
		c.snap.Year = ""
	}
	if v.metrics != nil {
		v.metrics.RecordRender(viewKind(target))
	}
	return c.treeLocked(), nil
}

// checkLatestLocked returns ErrStale when gen is no longer the view's latest generation.
func (c *Controller) checkLatestLocked(ctx context.Context, gen int64, target models.ViewTarget) error {
	v := c.views
	latest, err := v.gens.Current(ctx, c.ID())
	if err != nil {
		return fmt.Errorf("current generation: %w", err)
	}
	if gen == latest {
		return nil
	}
	kind := viewKind(target)
	if v.metrics != nil {
		v.metrics.RecordStale(kind)
	}
	v.logger.Debug("discarding stale load",
		applogger.String("view_id", c.ID()),
		applogger.String("view", kind),
		applogger.Int64("generation", gen),
		applogger.Int64("latest", latest),
	)
	return ErrStale
}

// LoadRequest resolves req and loads it. A request that cannot be resolved fails the view.
func (c *Controller) LoadRequest(ctx context.Context, basePath string, req models.ViewRequest) (*render.RenderTree, error) {
	target, err := c.views.loader.Resolve(req)
	if err != nil {
		return c.Fail(ctx, err)
	}
	return c.Load(ctx, basePath, target)
}

// Fail puts the view in the error state for err. It also supersedes any load in flight.
func (c *Controller) Fail(ctx context.Context, err error) (*render.RenderTree, error) {
	v := c.views
	gen, gerr := v.gens.Next(ctx, c.ID())
	if gerr != nil {
		return nil, fmt.Errorf("next generation: %w", gerr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if serr := c.checkLatestLocked(ctx, gen, c.snap.Target); serr != nil {
		return nil, serr
	}
	c.snap.Generation = gen
	c.snap.State = models.StateError
	c.snap.Message = UserMessage(err)
	c.snap.Heatmap = nil
	c.snap.Rows = nil
	if v.metrics != nil {
		v.metrics.RecordError(errorKind(err))
	}
	return c.treeLocked(), err
}

// Sort reorders the category table without refetching. Sorting the active column again
// flips its direction.
func (c *Controller) Sort(column string) (*render.RenderTree, error) {
	col, err := sorter.ParseColumn(column)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.State != models.StateCategoryDisplayed {
		return nil, fmt.Errorf("sort: %w", ErrWrongView)
	}
	c.snap.Sort = c.snap.Sort.Toggle(col)
	c.snap.Rows = c.views.sorter.Sort(c.snap.Rows, c.snap.Sort)
	return c.treeLocked(), nil
}

// FilterYear shows only year's row of the heatmap; "all" or "" shows every row.
func (c *Controller) FilterYear(year string) (*render.RenderTree, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.State != models.StateHeatmapDisplayed {
		return nil, fmt.Errorf("filter year: %w", ErrWrongView)
	}
	if year == "" {
		year = render.AllYears
	}
	c.snap.Year = year
	return c.treeLocked(), nil
}

// Tree renders the current state.
func (c *Controller) Tree() *render.RenderTree {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.treeLocked()
}

// Snapshot returns a copy of the controller state.
func (c *Controller) Snapshot() models.ViewSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.snap
	s.Rows = append([]models.MetricRow(nil), c.snap.Rows...)
	return s
}

func (c *Controller) treeLocked() *render.RenderTree {
	s := &c.snap
	r := c.views.renderer
	switch s.State {
	case models.StateLoading:
		return render.Loading(s.ID, s.Target)
	case models.StateError:
		return render.Error(s.ID, s.Message)
	case models.StateHeatmapDisplayed:
		h := render.FilterYear(r.Heatmap(s.Heatmap, s.Target), s.Year)
		return render.HeatmapTree(s.ID, h)
	case models.StateCategoryDisplayed:
		return render.CategoryTree(s.ID, r.Category(s.Target.Category, s.Rows, s.Sort))
	default:
		return render.Idle(s.ID)
	}
}

func viewKind(t models.ViewTarget) string {
	if t.IsHeatmap() {
		return string(render.ViewHeatmap)
	}
	return string(render.ViewCategory)
}

func errorKind(err error) string {
	var fe *FetchError
	switch {
	case errors.Is(err, ErrNoData):
		return "no_data"
	case errors.Is(err, ErrNoTarget):
		return "no_target"
	case errors.Is(err, ErrInvalidParam):
		return "invalid_param"
	case errors.As(err, &fe):
		return "fetch"
	default:
		return "load"
	}
}
