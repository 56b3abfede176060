package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/loadsim-service/internal/domain/model"
	"github.com/guttosm/loadsim-service/internal/editor"
	"github.com/guttosm/loadsim-service/internal/geometry"
	"github.com/guttosm/loadsim-service/internal/metrics"
	"github.com/guttosm/loadsim-service/internal/repository"
	"github.com/guttosm/loadsim-service/internal/resolver"
	"github.com/guttosm/loadsim-service/internal/scene"
	"github.com/guttosm/loadsim-service/internal/service/cache"
)

// Service-level errors mapped to HTTP statuses by the transport layer.
var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrSimulationNotFound means no stored simulation has the given id.
	ErrSimulationNotFound = errors.New("simulation not found")
	// ErrBatchNotFound means the simulation has no batch with the given id.
	ErrBatchNotFound = errors.New("batch not found in simulation")
	// ErrSimulationExists means an ingest reused an existing simulation id.
	ErrSimulationExists = errors.New("simulation already exists")
)

// SimulationSummary is one row in the simulation listing; batch trees
// are only decoded when a single simulation is fetched.
type SimulationSummary struct {
	SimulationID string    `json:"simulation_id"`
	Name         string    `json:"name,omitempty"`
	Version      int       `json:"version"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SimulationView is one stored simulation with its batch trees.
type SimulationView struct {
	SimulationID string         `json:"simulation_id"`
	Name         string         `json:"name,omitempty"`
	Version      int            `json:"version"`
	Batches      []*model.Batch `json:"batches"`
}

// SceneView is the flattened, render-ready view of one batch plus the
// editing state of its session.
type SceneView struct {
	BatchID     int64           `json:"batchid"`
	BatchName   string          `json:"batchname"`
	BatchType   model.BatchType `json:"batchtype"`
	OwnDims     geometry.Vec3   `json:"own_dims"`
	LoadDims    geometry.Vec3   `json:"load_dims"`
	RenderScale float64         `json:"render_scale"`
	Selected    string          `json:"selected_itemid,omitempty"`
	EditMode    bool            `json:"edit_mode"`
	Nodes       []scene.Node    `json:"nodes"`
}

// MoveCommand is a drag-end: the raw target center for an item, in
// model units relative to the load-volume center.
type MoveCommand struct {
	ItemID string
	Target geometry.Vec3
}

// MoveOutcome reports where the drag actually landed. Resolved false
// means the resolver gave up and the item snapped back; the tree and
// store are untouched in that case.
type MoveOutcome struct {
	ItemID   string        `json:"itemid"`
	Position geometry.Vec3 `json:"position"`
	Resolved bool          `json:"resolved"`
	Depth    int           `json:"depth"`
	Version  int           `json:"version,omitempty"`
}

// RotateCommand flips an item along one of the two fixed cycles.
type RotateCommand struct {
	ItemID    string
	Direction editor.RotationDirection
}

// SimulationService provides simulation viewing and editing operations.
type SimulationService interface {
	ListSimulations(ctx context.Context, limit int) ([]SimulationSummary, error)
	CreateSimulation(ctx context.Context, simulationID, name string, batches []*model.Batch) (*SimulationView, error)
	GetSimulation(ctx context.Context, simulationID string) (*SimulationView, error)
	GetScene(ctx context.Context, simulationID string, batchID int64) (*SceneView, error)
	Select(ctx context.Context, simulationID string, batchID int64, itemID string, editMode bool) (*SceneView, error)
	Move(ctx context.Context, simulationID string, batchID int64, cmd MoveCommand) (*MoveOutcome, error)
	Rotate(ctx context.Context, simulationID string, batchID int64, cmd RotateCommand) (*SceneView, error)
	// Stop releases background resources (scene cache janitors).
	Stop()
}

// SimulationServiceImpl implements SimulationService. Editing sessions
// are in-memory, one per (simulation, batch), created lazily from the
// stored snapshot and kept for the life of the process.
type SimulationServiceImpl struct {
	repo       repository.SimulationsRepositoryInterface
	logging    LoggingService
	sceneCache cache.Cache
	res        *resolver.Resolver

	mu       sync.Mutex
	sessions map[string]*editor.Session
}

// SimulationOption configures a SimulationServiceImpl.
type SimulationOption func(*SimulationServiceImpl)

// WithSceneCache enables read-side scene caching with the given
// capacity and TTL. The cache is invalidated on every successful edit.
func WithSceneCache(capacity int, ttl time.Duration) SimulationOption {
	return func(s *SimulationServiceImpl) {
		s.sceneCache = NewShardedCache(capacity, ttl, 16)
	}
}

// WithAuditLogging records editor actions through the logging service.
func WithAuditLogging(logging LoggingService) SimulationOption {
	return func(s *SimulationServiceImpl) {
		s.logging = logging
	}
}

// WithResolverDepth overrides the resolver's recursion ceiling.
func WithResolverDepth(maxDepth int) SimulationOption {
	return func(s *SimulationServiceImpl) {
		s.res = resolver.New(maxDepth)
	}
}

// NewSimulationService creates a new simulation service.
func NewSimulationService(repo repository.SimulationsRepositoryInterface, opts ...SimulationOption) *SimulationServiceImpl {
	s := &SimulationServiceImpl{
		repo:     repo,
		res:      resolver.New(resolver.DefaultMaxDepth),
		sessions: make(map[string]*editor.Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListSimulations returns stored simulations newest first, without
// their batch trees.
func (s *SimulationServiceImpl) ListSimulations(ctx context.Context, limit int) ([]SimulationSummary, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	docs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]SimulationSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, SimulationSummary{
			SimulationID: doc.SimulationID,
			Name:         doc.Name,
			Version:      doc.Version,
			UpdatedAt:    doc.UpdatedAt,
		})
	}
	return summaries, nil
}

// CreateSimulation ingests the batch trees produced by the packing
// backend as a new version-1 snapshot. Simulation ids come from the
// backend and must be fresh; re-ingesting an id is rejected rather
// than silently resetting editor writes.
func (s *SimulationServiceImpl) CreateSimulation(ctx context.Context, simulationID, name string, batches []*model.Batch) (*SimulationView, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	existing, err := s.repo.Get(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSimulationExists
	}
	doc, err := s.repo.Create(ctx, simulationID, name, batches)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, simulationID, 0, "", "create", map[string]interface{}{
		"batches": len(batches),
	})
	return &SimulationView{
		SimulationID: doc.SimulationID,
		Name:         doc.Name,
		Version:      doc.Version,
		Batches:      batches,
	}, nil
}

// GetSimulation returns the stored simulation with all its batches.
func (s *SimulationServiceImpl) GetSimulation(ctx context.Context, simulationID string) (*SimulationView, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	doc, err := s.repo.Get(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrSimulationNotFound
	}
	batches, err := doc.Batches()
	if err != nil {
		return nil, fmt.Errorf("decoding simulation %s snapshot: %w", simulationID, err)
	}
	return &SimulationView{
		SimulationID: doc.SimulationID,
		Name:         doc.Name,
		Version:      doc.Version,
		Batches:      batches,
	}, nil
}

// GetScene returns the flattened render view of one batch. Flattened
// nodes are served from the scene cache when present; session state
// (selection, edit mode) is always read fresh.
func (s *SimulationServiceImpl) GetScene(ctx context.Context, simulationID string, batchID int64) (*SceneView, error) {
	session, err := s.session(ctx, simulationID, batchID)
	if err != nil {
		return nil, err
	}

	key := sceneKey(simulationID, batchID)
	nodes, ok := s.cachedScene(key)
	if !ok {
		nodes = session.Scene()
		if s.sceneCache != nil {
			s.sceneCache.Set(key, nodes)
		}
	}
	return s.sceneView(session, nodes), nil
}

// Select applies a selection transition (empty item id clears the
// selection) and toggles edit mode, returning the updated scene.
func (s *SimulationServiceImpl) Select(ctx context.Context, simulationID string, batchID int64, itemID string, editMode bool) (*SceneView, error) {
	session, err := s.session(ctx, simulationID, batchID)
	if err != nil {
		return nil, err
	}
	session.SetEditMode(editMode)
	if err := session.Select(itemID); err != nil {
		return nil, err
	}
	s.audit(ctx, simulationID, batchID, itemID, "select", nil)
	return s.sceneView(session, session.Scene()), nil
}

// Move performs a drag-end: resolve the target against every other
// item, patch the tree, persist the batch, and invalidate the cached
// scene. A resolver fallback is not an error; the outcome reports it
// and nothing is written.
func (s *SimulationServiceImpl) Move(ctx context.Context, simulationID string, batchID int64, cmd MoveCommand) (*MoveOutcome, error) {
	session, err := s.session(ctx, simulationID, batchID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	patched, result, err := session.EndDrag(cmd.ItemID, cmd.Target)
	if err != nil {
		return nil, err
	}
	metrics.RecordDragResolution(time.Since(start), result.Depth, result.Resolved)

	outcome := &MoveOutcome{
		ItemID:   cmd.ItemID,
		Position: result.Position,
		Resolved: result.Resolved,
		Depth:    result.Depth,
	}
	if !result.Resolved {
		return outcome, nil
	}

	doc, err := s.repo.SaveBatch(ctx, simulationID, patched)
	if err != nil {
		// The session still serves the pre-drag tree; a retry starts clean.
		return nil, err
	}
	session.Commit(patched)
	if doc != nil {
		outcome.Version = doc.Version
	}
	s.invalidateScene(simulationID, batchID)
	s.audit(ctx, simulationID, batchID, cmd.ItemID, "move", map[string]interface{}{
		"x": result.Position.X, "y": result.Position.Y, "z": result.Position.Z,
		"depth": result.Depth,
	})
	return outcome, nil
}

// Rotate flips the selected item along the requested cycle, persists
// the batch, and returns the updated scene. Overlap introduced by a
// rotation is left in place until the next drag resolves it.
func (s *SimulationServiceImpl) Rotate(ctx context.Context, simulationID string, batchID int64, cmd RotateCommand) (*SceneView, error) {
	session, err := s.session(ctx, simulationID, batchID)
	if err != nil {
		return nil, err
	}

	patched, err := session.Rotate(cmd.ItemID, cmd.Direction)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.SaveBatch(ctx, simulationID, patched); err != nil {
		return nil, err
	}
	session.Commit(patched)
	s.invalidateScene(simulationID, batchID)
	s.audit(ctx, simulationID, batchID, cmd.ItemID, "rotate", map[string]interface{}{
		"direction": string(cmd.Direction),
	})
	return s.sceneView(session, session.Scene()), nil
}

// Stop releases the scene cache's background janitor.
func (s *SimulationServiceImpl) Stop() {
	if s.sceneCache != nil {
		s.sceneCache.Stop()
	}
}

// session returns the editing session for a batch, creating it from
// the stored snapshot on first access.
func (s *SimulationServiceImpl) session(ctx context.Context, simulationID string, batchID int64) (*editor.Session, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	key := sceneKey(simulationID, batchID)
	s.mu.Lock()
	if session, ok := s.sessions[key]; ok {
		s.mu.Unlock()
		return session, nil
	}
	s.mu.Unlock()

	// Load outside the lock; concurrent first access may fetch twice
	// but only one session wins.
	view, err := s.GetSimulation(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	var batch *model.Batch
	for _, b := range view.Batches {
		if b.BatchID == batchID {
			batch = b
			break
		}
	}
	if batch == nil {
		return nil, ErrBatchNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[key]; ok {
		return session, nil
	}
	session := editor.NewSession(batch, s.res)
	s.sessions[key] = session
	return session, nil
}

func (s *SimulationServiceImpl) sceneView(session *editor.Session, nodes []scene.Node) *SceneView {
	batch := session.Batch()
	selected, _ := session.Selected()
	return &SceneView{
		BatchID:     batch.BatchID,
		BatchName:   batch.BatchName,
		BatchType:   batch.BatchType,
		OwnDims:     batch.OwnDims(),
		LoadDims:    batch.LoadDims(),
		RenderScale: float64(batch.RenderScale()),
		Selected:    selected,
		EditMode:    session.EditMode(),
		Nodes:       nodes,
	}
}

func (s *SimulationServiceImpl) cachedScene(key string) ([]scene.Node, bool) {
	if s.sceneCache == nil {
		return nil, false
	}
	return s.sceneCache.Get(key)
}

func (s *SimulationServiceImpl) invalidateScene(simulationID string, batchID int64) {
	if s.sceneCache != nil {
		s.sceneCache.Invalidate(sceneKey(simulationID, batchID))
	}
}

// audit records an editor action best-effort; storage failures are
// logged and swallowed so they never fail the edit itself.
func (s *SimulationServiceImpl) audit(ctx context.Context, simulationID string, batchID int64, itemID, action string, fields map[string]interface{}) {
	if s.logging == nil {
		return
	}
	entry := &model.LogEntry{
		Level:        "info",
		Message:      "editor action",
		SimulationID: simulationID,
		BatchID:      batchID,
		ItemID:       itemID,
		ActionType:   action,
		Fields:       fields,
	}
	if err := s.logging.CreateLog(ctx, entry); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to store audit log entry")
	}
}

func sceneKey(simulationID string, batchID int64) string {
	return fmt.Sprintf("%s/%d", simulationID, batchID)
}
