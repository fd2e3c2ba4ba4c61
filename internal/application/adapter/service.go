package adapter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/lattice/internal/cachemanager"
	domadapter "github.com/zjrosen/lattice/internal/domain/adapter"
	"github.com/zjrosen/lattice/internal/domain/ifspec"
	"github.com/zjrosen/lattice/internal/log"
	"github.com/zjrosen/lattice/internal/pubsub"
	"github.com/zjrosen/lattice/internal/tracing"
	"github.com/zjrosen/lattice/internal/watcher"
)

// Service errors
var (
	ErrNoDocument = errors.New("no registry document loaded")
)

// Query identifies one adapter lookup by spec names.
type Query struct {
	Required []string
	Provided string
	Name     string
}

// ReloadInfo is the payload published after a document (re)load.
type ReloadInfo struct {
	Path       string
	Generation uint64
}

// InterfaceInfo describes one declared interface for presentation.
type InterfaceInfo struct {
	Name      string
	Bases     []string
	Ancestors []string
}

// Snapshot is a consistent read of the loaded document for presentation.
type Snapshot struct {
	Interfaces    []InterfaceInfo
	Adapters      []AdapterDef
	Subscriptions []SubscriptionDef
	Generation    uint64
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTracer sets the tracer used for lookup spans.
func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithCacheTTL sets the lookup cache time-to-live. Zero disables caching.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// Service wraps the domain registry behind a reader-writer lock and adds
// document loading, factory cataloging, lookup caching, tracing, and live
// reload. The domain registry itself stays lock-free; this is the host
// synchronisation the core design delegates outward.
type Service struct {
	mu         sync.RWMutex
	registry   *domadapter.Registry
	interfaces map[string]*ifspec.Interface
	doc        *Document
	path       string

	factories map[string]domadapter.Factory

	tracer   trace.Tracer
	cacheTTL time.Duration
	cache    cachemanager.CacheManager[string, any]
	lookups  *cachemanager.ReadThroughCache[string, any, Query]
	broker   *pubsub.Broker[ReloadInfo]
	fw       *watcher.Watcher
}

// NewService creates a service with an empty registry.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		registry:   domadapter.New(),
		interfaces: make(map[string]*ifspec.Interface),
		factories:  make(map[string]domadapter.Factory),
		tracer:     noop.NewTracerProvider().Tracer("noop"),
		cacheTTL:   time.Minute,
		broker:     pubsub.NewBroker[ReloadInfo](),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cache = cachemanager.NewInMemoryCacheManager[string, any](
		"lookup", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	s.lookups = cachemanager.NewReadThroughCache(s.cache, s.lookupUncached, s.cacheTTL <= 0)

	return s
}

// RegisterFactory adds a factory to the catalog under id. Documents loaded
// afterwards resolve matching factory ids to it.
func (s *Service) RegisterFactory(id string, factory domadapter.Factory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factories[id] = factory
}

// LoadBytes builds a fresh registry from a YAML document and swaps it in.
func (s *Service) LoadBytes(data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	return s.install(doc, "")
}

// LoadFile builds a fresh registry from a YAML document on disk and swaps
// it in. The path is remembered for Watch.
func (s *Service) LoadFile(path string) error {
	doc, err := ParseDocumentFile(path)
	if err != nil {
		return err
	}
	return s.install(doc, path)
}

func (s *Service) install(doc *Document, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	interfaces, err := buildInterfaces(doc)
	if err != nil {
		return err
	}
	registry, err := buildRegistry(doc, interfaces, s.factories)
	if err != nil {
		return err
	}

	s.registry = registry
	s.interfaces = interfaces
	s.doc = doc
	if path != "" {
		s.path = path
	}

	// A fresh registry restarts its generation counter, so fingerprints of
	// the old registry could collide with new ones. Drop them all.
	_ = s.cache.Flush(context.Background())

	generation := registry.Generation()
	log.Info(log.CatLoader, "registry document installed", "path", s.path, "generation", generation)
	s.broker.Publish(pubsub.ReloadedEvent, ReloadInfo{Path: s.path, Generation: generation})
	return nil
}

// Generation returns the current registry generation.
func (s *Service) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.Generation()
}

// Snapshot returns a consistent copy of the loaded document for listing.
func (s *Service) Snapshot() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return Snapshot{}, ErrNoDocument
	}

	infos := make([]InterfaceInfo, 0, len(s.interfaces))
	for name, iface := range s.interfaces {
		bases := make([]string, len(iface.Bases()))
		for i, b := range iface.Bases() {
			bases[i] = b.Name()
		}
		ancestors := make([]string, len(iface.Ancestors()))
		for i, a := range iface.Ancestors() {
			ancestors[i] = a.Name()
		}
		infos = append(infos, InterfaceInfo{Name: name, Bases: bases, Ancestors: ancestors})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return Snapshot{
		Interfaces:    infos,
		Adapters:      append([]AdapterDef(nil), s.doc.Adapters...),
		Subscriptions: append([]SubscriptionDef(nil), s.doc.Subscriptions...),
		Generation:    s.registry.Generation(),
	}, nil
}

// Lookup runs an adapter lookup by spec names, served from the generation-
// keyed cache when warm.
func (s *Service) Lookup(ctx context.Context, q Query) (any, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanLookup,
		trace.WithAttributes(tracing.LookupAttrs(q.Required, q.Provided, q.Name, s.Generation())...))
	defer span.End()

	value, err := s.lookups.Get(ctx, s.fingerprint(q), q, s.cacheTTL)
	span.SetAttributes(tracing.HitAttr(err == nil && value != nil))
	return value, err
}

// lookupUncached is the cache loader: it resolves names and queries the
// domain registry under the read lock.
func (s *Service) lookupUncached(ctx context.Context, q Query) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	required, err := resolveSpecNames(s.interfaces, q.Required)
	if err != nil {
		return nil, err
	}
	provided, err := resolveSpecName(s.interfaces, q.Provided)
	if err != nil {
		return nil, err
	}
	return s.registry.Lookup(required, provided, q.Name, nil), nil
}

// LookupAll returns one (name, value) pair per distinct name, sorted by
// name for stable output.
func (s *Service) LookupAll(ctx context.Context, requiredNames []string, providedName string) ([]domadapter.NamedValue, error) {
	_, span := s.tracer.Start(ctx, tracing.SpanLookupAll,
		trace.WithAttributes(tracing.LookupAttrs(requiredNames, providedName, "", s.Generation())...))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	required, err := resolveSpecNames(s.interfaces, requiredNames)
	if err != nil {
		return nil, err
	}
	provided, err := resolveSpecName(s.interfaces, providedName)
	if err != nil {
		return nil, err
	}

	all := s.registry.LookupAll(required, provided)
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// Subscriptions returns all matching subscription values, broad before
// narrow. An empty provided name queries the handler buckets.
func (s *Service) Subscriptions(ctx context.Context, requiredNames []string, providedName string) ([]any, error) {
	_, span := s.tracer.Start(ctx, tracing.SpanSubscriptions,
		trace.WithAttributes(tracing.LookupAttrs(requiredNames, providedName, "", s.Generation())...))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	required, err := resolveSpecNames(s.interfaces, requiredNames)
	if err != nil {
		return nil, err
	}
	var provided ifspec.Spec
	if providedName != "" {
		provided, err = resolveSpecName(s.interfaces, providedName)
		if err != nil {
			return nil, err
		}
	}
	return s.registry.Subscriptions(required, provided), nil
}

// Register writes an adapter registration through to the registry.
func (s *Service) Register(required []ifspec.Spec, provided ifspec.Spec, name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.Register(required, provided, name, value)
}

// Subscribe writes a subscription through to the registry.
func (s *Service) Subscribe(required []ifspec.Spec, provided ifspec.Spec, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.Subscribe(required, provided, value)
}

// Unsubscribe removes subscriptions through the registry.
func (s *Service) Unsubscribe(required []ifspec.Spec, provided ifspec.Spec, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.Unsubscribe(required, provided, value)
}

// Watch reloads the document whenever it changes on disk, until ctx is
// cancelled. LoadFile must have been called first.
func (s *Service) Watch(ctx context.Context, debounce time.Duration) error {
	s.mu.RLock()
	path := s.path
	s.mu.RUnlock()
	if path == "" {
		return ErrNoDocument
	}

	fw, err := watcher.New(watcher.Config{Path: path, DebounceDur: debounce})
	if err != nil {
		return err
	}
	onChange, err := fw.Start()
	if err != nil {
		_ = fw.Stop()
		return err
	}
	s.fw = fw

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-onChange:
				if !ok {
					return
				}
				if err := s.LoadFile(path); err != nil {
					log.ErrorErr(log.CatWatcher, "reload failed", err, "path", path)
				}
			}
		}
	}()

	return nil
}

// Events exposes the reload broker for UI subscribers.
func (s *Service) Events() *pubsub.Broker[ReloadInfo] {
	return s.broker
}

// Close stops the watcher and the event broker.
func (s *Service) Close() error {
	var err error
	if s.fw != nil {
		err = s.fw.Stop()
		s.fw = nil
	}
	s.broker.Close()
	return err
}

// fingerprint builds the cache key. The generation prefix makes every entry
// unreachable after any registry mutation.
func (s *Service) fingerprint(q Query) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(s.Generation(), 10))
	b.WriteByte('|')
	b.WriteString(strings.Join(q.Required, ","))
	b.WriteByte('|')
	b.WriteString(q.Provided)
	b.WriteByte('|')
	b.WriteString(q.Name)
	return b.String()
}

// ValueString renders an opaque registry value for display.
func ValueString(v any) string {
	if v == nil {
		return "<none>"
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
