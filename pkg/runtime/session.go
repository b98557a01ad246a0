package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/TechXTT/iotorm/pkg/request"
	"github.com/TechXTT/iotorm/pkg/store"
)

var (
	// ErrInvalidURI is returned when a host and port cannot be read from a URI.
	ErrInvalidURI = errors.New("invalid connection uri")
	// ErrRegistryClosed is returned by Session after Close.
	ErrRegistryClosed = errors.New("session registry closed")
)

// SessionKey returns the cache identity of cfg's URI and account.
func SessionKey(cfg *request.Config) string {
	sep := "?"
	if strings.Contains(cfg.URI, "?") {
		sep = "&"
	}
	return cfg.URI + sep + "username=" + cfg.Account
}

// ParseEndpoint extracts host and port from scheme://host[:port][/path][?query].
// The port defaults to store.DefaultPort when empty or absent.
func ParseEndpoint(uri string) (string, int, error) {
	host := strings.TrimSpace(uri)
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.Index(host, "?"); i >= 0 {
		host = host[:i]
	}
	if i := strings.Index(host, "/"); i >= 0 {
		host = host[:i]
	}
	port := store.DefaultPort
	if i := strings.Index(host, ":"); i >= 0 {
		p := strings.TrimSpace(host[i+1:])
		host = host[:i]
		if p != "" {
			n, err := strconv.Atoi(p)
			if err != nil || n <= 0 || n > 65535 {
				return "", 0, fmt.Errorf("%w: bad port %q in %q", ErrInvalidURI, p, uri)
			}
			port = n
		}
	}
	if host == "" {
		return "", 0, fmt.Errorf("%w: no host in %q", ErrInvalidURI, uri)
	}
	return host, port, nil
}

// slot holds the session of one identity. Its lock serialises opening and
// closing for that identity only.
type slot struct {
	mu     sync.Mutex
	id     uuid.UUID
	sess   store.Session
	closed bool
}

// Registry caches one open session per connection identity.
type Registry struct {
	opener store.Opener
	log    *slog.Logger

	mu     sync.Mutex
	slots  map[string]*slot
	closed bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry returns an empty registry opening sessions with opener.
func NewRegistry(opener store.Opener, opts ...Option) *Registry {
	r := &Registry{opener: opener, log: slog.Default(), slots: map[string]*slot{}}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Session returns the cached session for cfg's identity. When none is cached
// and autoCreate is set, a session is opened and cached; otherwise nil is
// returned with a nil error.
func (r *Registry) Session(ctx context.Context, cfg *request.Config, autoCreate bool) (store.Session, error) {
	key := SessionKey(cfg)
	for {
		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			return nil, ErrRegistryClosed
		}
		sl, ok := r.slots[key]
		if !ok {
			if !autoCreate {
				r.mu.Unlock()
				return nil, nil
			}
			sl = &slot{}
			r.slots[key] = sl
		}
		r.mu.Unlock()

		sl.mu.Lock()
		if sl.closed {
			// closed after we found it; look again
			sl.mu.Unlock()
			continue
		}
		if sl.sess != nil || !autoCreate {
			s := sl.sess
			sl.mu.Unlock()
			return s, nil
		}
		s, id, err := r.open(ctx, cfg)
		if err != nil {
			sl.closed = true
			sl.mu.Unlock()
			r.drop(key, sl)
			return nil, err
		}
		sl.sess, sl.id = s, id
		sl.mu.Unlock()
		return s, nil
	}
}

func (r *Registry) open(ctx context.Context, cfg *request.Config) (store.Session, uuid.UUID, error) {
	host, port, err := ParseEndpoint(cfg.URI)
	if err != nil {
		return nil, uuid.Nil, err
	}
	ep := store.Endpoint{URI: cfg.URI, Host: host, Port: port, Account: cfg.Account, Credential: cfg.Password}
	s, err := r.opener.Open(ctx, ep)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("open session %s: %w", ep.Addr(), err)
	}
	id := uuid.New()
	r.log.Info("session opened", "session_id", id.String(), "host", host, "port", port, "account", cfg.Account)
	return s, id, nil
}

func (r *Registry) drop(key string, sl *slot) {
	r.mu.Lock()
	if r.slots[key] == sl {
		delete(r.slots, key)
	}
	r.mu.Unlock()
}

// CloseSession removes cfg's session from the cache and closes it. A missing
// session is a no-op; close failures are logged, never returned.
func (r *Registry) CloseSession(cfg *request.Config) {
	key := SessionKey(cfg)
	r.mu.Lock()
	sl, ok := r.slots[key]
	if ok {
		delete(r.slots, key)
	}
	r.mu.Unlock()
	if ok {
		r.closeSlot(sl)
	}
}

// CloseAll closes every cached session and empties the cache.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	slots := r.slots
	r.slots = map[string]*slot{}
	r.mu.Unlock()

	keys := make([]string, 0, len(slots))
	for k := range slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.closeSlot(slots[k])
	}
}

// Close drains the registry and rejects further Session calls. It is meant to
// run once from the host's graceful shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.CloseAll()
}

// Len returns the number of cached identities.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

func (r *Registry) closeSlot(sl *slot) {
	sl.mu.Lock()
	s, id := sl.sess, sl.id
	sl.sess, sl.closed = nil, true
	sl.mu.Unlock()
	if s == nil {
		return
	}
	if err := safeClose(s); err != nil {
		r.log.Warn("session close failed", "session_id", id.String(), "error", err)
		return
	}
	r.log.Info("session closed", "session_id", id.String())
}

// safeClose turns a panicking Close into an error.
func safeClose(s store.Session) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during close: %v", p)
		}
	}()
	return s.Close()
}
