package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goAuthz "github.com/MrEthical07/goAuthz"
	"github.com/MrEthical07/goAuthz/permission"
	"go.uber.org/zap"
)

// Validator decodes a raw token into verified claims. Implementations own
// signature checks; the Extractor only interprets exp, role and permissions.
type Validator interface {
	Decode(ctx context.Context, token string) (goAuthz.UserClaims, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(ctx context.Context, token string) (goAuthz.UserClaims, error)

// Decode calls f.
func (f ValidatorFunc) Decode(ctx context.Context, token string) (goAuthz.UserClaims, error) {
	return f(ctx, token)
}

var errNilValidator = errors.New("nil validator")

// Extractor resolves claims from requests and enforces permission checks.
// It is safe for concurrent use once built.
type Extractor struct {
	cfg       goAuthz.Config
	validator Validator
	logger    *zap.Logger
	clock     goAuthz.Clock
	metrics   *goAuthz.Metrics
	audit     goAuthz.AuditSink
	queue     *goAuthz.AuditDispatcher
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger for rejections. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock replaces the clock used for expiry checks.
func WithClock(clock goAuthz.Clock) Option {
	return func(e *Extractor) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithMetrics shares a Metrics instance, e.g. across several extractors.
func WithMetrics(m *goAuthz.Metrics) Option {
	return func(e *Extractor) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithAuditSink sets the sink for denial events. Events are only emitted
// when cfg.Audit.Enabled is set, and reach the sink asynchronously.
func WithAuditSink(sink goAuthz.AuditSink) Option {
	return func(e *Extractor) {
		if sink != nil {
			e.audit = sink
		}
	}
}

// New builds an Extractor. cfg must pass Config.Validate.
func New(cfg goAuthz.Config, v Validator, opts ...Option) (*Extractor, error) {
	if v == nil {
		return nil, errNilValidator
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Extractor{
		cfg:       cfg,
		validator: v,
		logger:    zap.NewNop(),
		clock:     goAuthz.SystemClock,
		audit:     goAuthz.NoOpSink{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = goAuthz.NewMetrics(cfg.Metrics)
	}
	e.logger = e.logger.Named("authz")
	if cfg.Audit.Enabled {
		e.queue = goAuthz.NewAuditDispatcher(cfg.Audit, e.audit, e.metrics)
		e.audit = e.queue
	}

	return e, nil
}

// Metrics returns the decision counters.
func (e *Extractor) Metrics() *goAuthz.Metrics { return e.metrics }

// Close flushes queued audit events. Handlers must not run after Close.
func (e *Extractor) Close() {
	e.queue.Close()
}

// Extract resolves and checks claims without touching the response.
// Errors wrap goAuthz.ErrUnauthenticated or goAuthz.ErrTokenExpired.
func (e *Extractor) Extract(r *http.Request) (goAuthz.UserClaims, error) {
	claims, _, err := e.resolve(r)
	return claims, err
}

func (e *Extractor) resolve(r *http.Request) (goAuthz.UserClaims, goAuthz.MetricID, error) {
	token, ok := e.token(r)
	if !ok {
		return goAuthz.UserClaims{}, goAuthz.MetricUnauthenticated, goAuthz.ErrUnauthenticated
	}

	claims, err := e.validator.Decode(r.Context(), token)
	if err != nil {
		return goAuthz.UserClaims{}, goAuthz.MetricTokenMalformed, fmt.Errorf("%w: %w", goAuthz.ErrUnauthenticated, err)
	}
	if claims.IsExpiredWith(e.clock) {
		return goAuthz.UserClaims{}, goAuthz.MetricTokenExpired, goAuthz.ErrTokenExpired
	}

	return claims, goAuthz.MetricAuthorized, nil
}

func (e *Extractor) token(r *http.Request) (string, bool) {
	if e.cfg.CookieName != "" {
		if c, err := r.Cookie(e.cfg.CookieName); err == nil && c.Value != "" {
			return c.Value, true
		}
	}
	if e.cfg.HeaderName != "" {
		return bearerToken(r.Header.Get(e.cfg.HeaderName))
	}
	return "", false
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if len(value) < len(bearer) || !strings.EqualFold(value[:len(bearer)], bearer) {
		return "", false
	}

	token := strings.TrimSpace(value[len(bearer):])
	if token == "" {
		return "", false
	}

	return token, true
}

// Authenticate rejects requests without valid, unexpired claims (401) and
// requests whose claims miss cfg.RequiredPermissions (403). Admitted claims
// are stored in the request context. Authenticate owns the request's
// decision: guards stacked after it record denials, and the request counts
// as authorized once when none of them denied it.
func (e *Extractor) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		claims, id, err := e.resolve(r)
		if err != nil {
			e.observe(start)
			e.unauthorized(w, r, id, err)
			return
		}
		if !claims.CanAll(e.cfg.RequiredPermissions) {
			e.observe(start)
			e.forbidden(w, r, claims, e.cfg.RequiredPermissions)
			return
		}
		e.observe(start)

		e.admit(w, r, claims, next)
	})
}

func (e *Extractor) admit(w http.ResponseWriter, r *http.Request, claims goAuthz.UserClaims, next http.Handler) {
	d := &decision{}
	ctx := withDecision(WithClaims(r.Context(), claims), d)
	next.ServeHTTP(w, r.WithContext(ctx))
	if !d.denied {
		e.metrics.Inc(goAuthz.MetricAuthorized)
	}
}

func (e *Extractor) observe(start time.Time) {
	e.metrics.Observe(goAuthz.MetricCheckLatency, time.Since(start))
}

// Optional stores valid claims in the context when present and never
// rejects the request.
func (e *Extractor) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		claims, _, err := e.resolve(r)
		if err != nil {
			e.logger.Debug("optional claims unavailable", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// Check reports whether a request may proceed given its claims.
type Check func(r *http.Request, claims goAuthz.UserClaims) bool

// Guard gates next on check. Claims come from the context when an earlier
// Authenticate stored them, otherwise they are resolved from the request
// and Guard owns the decision. required is only used for logging and audit.
func (e *Extractor) Guard(check Check, required permission.Set) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				var (
					id  goAuthz.MetricID
					err error
				)
				claims, id, err = e.resolve(r)
				if err != nil {
					e.observe(start)
					e.unauthorized(w, r, id, err)
					return
				}
			}

			d := decisionFromContext(r.Context())
			owner := d == nil
			if !check(r, claims) {
				if owner {
					e.observe(start)
				}
				e.forbidden(w, r, claims, required)
				return
			}

			if !owner {
				next.ServeHTTP(w, r)
				return
			}
			e.observe(start)
			e.admit(w, r, claims, next)
		})
	}
}

// RequireAll admits claims whose effective permissions contain every bit of p.
func (e *Extractor) RequireAll(p permission.Set) func(http.Handler) http.Handler {
	return e.Guard(func(_ *http.Request, c goAuthz.UserClaims) bool { return c.CanAll(p) }, p)
}

// RequireAny admits claims sharing at least one bit with p. An empty p
// admits nothing.
func (e *Extractor) RequireAny(p permission.Set) func(http.Handler) http.Handler {
	return e.Guard(func(_ *http.Request, c goAuthz.UserClaims) bool { return c.CanAny(p) }, p)
}

// RequireAdmin checks the effective Admin bit, so an override can revoke it.
func (e *Extractor) RequireAdmin() func(http.Handler) http.Handler {
	return e.RequireAll(permission.Admin)
}

// RequirePremium checks the effective Premium bit.
func (e *Extractor) RequirePremium() func(http.Handler) http.Handler {
	return e.RequireAll(permission.Premium)
}

func (e *Extractor) unauthorized(w http.ResponseWriter, r *http.Request, id goAuthz.MetricID, err error) {
	e.metrics.Inc(id)

	if id == goAuthz.MetricTokenMalformed {
		e.logger.Warn("token rejected", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		e.logger.Debug("unauthenticated request", zap.String("path", r.URL.Path), zap.Error(err))
	}

	if e.cfg.Audit.Enabled {
		e.audit.Emit(r.Context(), goAuthz.AuditEvent{
			Timestamp: e.clock.Now().UTC(),
			EventType: goAuthz.AuditEventUnauthenticated,
			Method:    r.Method,
			Path:      r.URL.Path,
			Reason:    err.Error(),
		})
	}

	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func (e *Extractor) forbidden(w http.ResponseWriter, r *http.Request, claims goAuthz.UserClaims, required permission.Set) {
	if d := decisionFromContext(r.Context()); d != nil {
		d.denied = true
	}
	e.metrics.Inc(goAuthz.MetricForbidden)

	effective := claims.EffectivePermissions()
	e.logger.Debug("permission denied",
		zap.Stringer("subject", claims.Subject),
		zap.String("role", claims.Role.Name()),
		zap.Stringer("required", required),
		zap.Stringer("effective", effective),
		zap.Bool("override", claims.HasOverride()),
	)

	if e.cfg.Audit.Enabled {
		e.audit.Emit(r.Context(), goAuthz.AuditEvent{
			Timestamp: e.clock.Now().UTC(),
			EventType: goAuthz.AuditEventDenied,
			Subject:   claims.Subject.String(),
			Role:      claims.Role.Name(),
			Required:  required.String(),
			Effective: effective.String(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Reason:    goAuthz.ErrPermissionDenied.Error(),
		})
	}

	http.Error(w, "forbidden", http.StatusForbidden)
}
