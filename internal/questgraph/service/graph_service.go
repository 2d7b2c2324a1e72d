package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/questmap/questmap-backend/internal/observability"
	"github.com/questmap/questmap-backend/internal/questgraph/domain"
	"github.com/questmap/questmap-backend/internal/questgraph/graph"
	"github.com/questmap/questmap-backend/internal/questgraph/graph/export"
	"github.com/questmap/questmap-backend/internal/questgraph/ingest/parser"
	"github.com/questmap/questmap-backend/internal/questgraph/locale"
	"github.com/questmap/questmap-backend/internal/questgraph/repository"
)

// ViewCache is the subset of repository.ViewCache the service uses.
type ViewCache interface {
	Key(fingerprint, lang, nodeID string) string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
}

// Snapshot is one immutable generation of the dataset.
type Snapshot struct {
	Index       *graph.Index
	Fingerprint string
	LoadedAt    time.Time
}

type Options struct {
	DataPath string
	Catalog  *locale.Catalog
	Cache    ViewCache
	Metrics  *observability.Collector
	Logger   *zap.Logger
}

type GraphService struct {
	dataPath string
	catalog  *locale.Catalog
	cache    ViewCache
	metrics  *observability.Collector
	log      *zap.Logger

	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
}

// New loads the dataset at opt.DataPath and returns a ready service.
func New(opt Options) (*GraphService, error) {
	g, fp, err := parser.Load(opt.DataPath)
	if err != nil {
		return nil, err
	}
	s := newService(opt)
	s.swap(g, fp)
	s.log.Info("dataset loaded",
		zap.String("path", opt.DataPath),
		zap.String("fingerprint", fp),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)
	return s, nil
}

// NewFromGraph serves an already decoded graph. Reload is unavailable unless
// opt.DataPath is set.
func NewFromGraph(g *domain.Graph, fingerprint string, opt Options) *GraphService {
	s := newService(opt)
	s.swap(g, fingerprint)
	return s
}

func newService(opt Options) *GraphService {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &GraphService{
		dataPath: opt.DataPath,
		catalog:  opt.Catalog,
		cache:    opt.Cache,
		metrics:  opt.Metrics,
		log:      log,
	}
}

func (s *GraphService) swap(g *domain.Graph, fp string) {
	s.current.Store(&Snapshot{
		Index:       graph.NewIndex(g),
		Fingerprint: fp,
		LoadedAt:    time.Now().UTC(),
	})
}

func (s *GraphService) Snapshot() *Snapshot { return s.current.Load() }

func (s *GraphService) Graph() *domain.Graph { return s.Snapshot().Index.Graph() }

func (s *GraphService) Node(id string) (domain.Node, error) {
	n, ok := s.Snapshot().Index.Node(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	return n, nil
}

// Predecessors returns the predecessor subgraph of id in the current snapshot.
func (s *GraphService) Predecessors(id string) *domain.Graph {
	return s.predecessors(s.Snapshot(), id)
}

func (s *GraphService) predecessors(snap *Snapshot, id string) *domain.Graph {
	start := time.Now()
	out := snap.Index.OnlyPredecessors(id)
	if s.metrics != nil {
		s.metrics.FilterDuration.Observe(time.Since(start).Seconds())
		s.metrics.ClosureSize.Observe(float64(len(out.Nodes)))
	}
	return out
}

// Localizer returns the localizer for lang. Without a catalog, node ids are
// used as names.
func (s *GraphService) Localizer(lang string) locale.Localizer {
	if s.catalog == nil {
		return locale.IdentityLocalizer{}
	}
	return s.catalog.For(lang)
}

// viewLang is the language a view is cached under. Requests for languages
// the catalog lacks all render from the fallback table and share its entries.
func (s *GraphService) viewLang(lang string) string {
	if s.catalog == nil {
		return ""
	}
	return s.catalog.Resolve(lang)
}

// Elements projects the predecessor subgraph of id, or the whole graph when
// id is empty, to Cytoscape elements. Results are cached per dataset
// fingerprint; cache failures only cost a recomputation.
func (s *GraphService) Elements(ctx context.Context, id, lang string) (*export.Elements, error) {
	snap := s.Snapshot()
	lang = s.viewLang(lang)

	var key string
	if s.cache != nil {
		key = s.cache.Key(snap.Fingerprint, lang, id)
		if els, ok := s.cachedElements(ctx, key); ok {
			return els, nil
		}
	}

	g := snap.Index.Graph()
	if id != "" {
		g = s.predecessors(snap, id)
	}
	els, err := export.ToCyto(g, s.Localizer(lang))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if b, err := json.Marshal(els); err == nil {
			if err := s.cache.Set(ctx, key, b); err != nil {
				s.log.Warn("view cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return els, nil
}

func (s *GraphService) cachedElements(ctx context.Context, key string) (*export.Elements, bool) {
	b, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.log.Warn("view cache read failed", zap.String("key", key), zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.CacheMisses.Inc()
		}
		return nil, false
	}

	var els export.Elements
	if err := json.Unmarshal(b, &els); err != nil {
		s.log.Warn("view cache entry corrupt", zap.String("key", key), zap.Error(err))
		if s.metrics != nil {
			s.metrics.CacheMisses.Inc()
		}
		return nil, false
	}
	if s.metrics != nil {
		s.metrics.CacheHits.Inc()
	}
	return &els, true
}

// Reload re-reads the dataset file. It reports whether a new snapshot was
// installed; on error the current snapshot stays in place.
func (s *GraphService) Reload(ctx context.Context) (bool, error) {
	if s.dataPath == "" {
		return false, errors.New("reload: service has no data path")
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if err := ctx.Err(); err != nil {
		return false, err
	}

	g, fp, err := parser.Load(s.dataPath)
	if err != nil {
		s.countReload("error")
		s.log.Error("dataset reload failed", zap.String("path", s.dataPath), zap.Error(err))
		return false, err
	}
	if fp == s.Snapshot().Fingerprint {
		s.countReload("unchanged")
		return false, nil
	}

	s.swap(g, fp)
	s.countReload("swapped")
	s.log.Info("dataset reloaded",
		zap.String("fingerprint", fp),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)
	return true, nil
}

func (s *GraphService) countReload(result string) {
	if s.metrics != nil {
		s.metrics.Reloads.WithLabelValues(result).Inc()
	}
}
