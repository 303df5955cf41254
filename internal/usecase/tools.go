package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/creasty/defaults"

	"TAMCP/internal/domain/models"
	domrepo "TAMCP/internal/domain/repository"
	"TAMCP/internal/services/indicators"
	pkgcache "TAMCP/pkg/cache"
	xhttp "TAMCP/pkg/http"
	applogger "TAMCP/pkg/logger"
)

// ErrUnknownTool is returned by Call for names not in the catalogue.
var ErrUnknownTool = errors.New("unknown tool")

const auditTimeout = 5 * time.Second

// ToolRegistry decodes tool arguments, runs the calculator and takes care of
// caching, metrics and audit events around each call.
type ToolRegistry struct {
	calc     *indicators.Calculator
	cache    pkgcache.Service
	cacheTTL time.Duration
	metrics  domrepo.Metrics
	audit    domrepo.AuditPublisher
	log      *applogger.Logger
	tools    map[string]*tool
	order    []string
}

type RegistryOption func(*ToolRegistry)

// WithCache enables result caching. A nil cache leaves caching off.
func WithCache(c pkgcache.Service, ttl time.Duration) RegistryOption {
	return func(r *ToolRegistry) {
		r.cache = c
		r.cacheTTL = ttl
	}
}

func WithMetrics(m domrepo.Metrics) RegistryOption {
	return func(r *ToolRegistry) { r.metrics = m }
}

func WithAudit(a domrepo.AuditPublisher) RegistryOption {
	return func(r *ToolRegistry) { r.audit = a }
}

func WithLogger(l *applogger.Logger) RegistryOption {
	return func(r *ToolRegistry) { r.log = l }
}

func NewToolRegistry(calc *indicators.Calculator, opts ...RegistryOption) *ToolRegistry {
	r := &ToolRegistry{
		calc:  calc,
		log:   applogger.NewNop(),
		tools: make(map[string]*tool),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, t := range builtinTools() {
		r.tools[t.desc.Name] = t
		r.order = append(r.order, t.desc.Name)
	}
	return r
}

// List returns the tool descriptors in catalogue order.
func (r *ToolRegistry) List() []models.ToolDescriptor {
	out := make([]models.ToolDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].desc)
	}
	return out
}

// Has reports whether name is a known tool.
func (r *ToolRegistry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Call runs tool name with JSON arguments and returns the JSON encoded result.
// Argument problems are reported as models.ErrInvalidInput, unknown names as ErrUnknownTool.
func (r *ToolRegistry) Call(ctx context.Context, name string, raw json.RawMessage) (json.RawMessage, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	start := time.Now()
	ev := &models.ToolCallEvent{Tool: name, Timestamp: start.UTC()}

	out, err := r.call(ctx, t, raw, ev)

	dur := time.Since(start)
	ev.DurationMs = dur.Milliseconds()
	switch {
	case err == nil:
		ev.Status = "ok"
	case errors.Is(err, models.ErrInvalidInput):
		ev.Status = "invalid"
		ev.Error = err.Error()
	default:
		ev.Status = "error"
		ev.Error = err.Error()
		r.log.Error("tool call failed", applogger.String("tool", name), applogger.Error(err))
	}

	if r.metrics != nil {
		r.metrics.RecordToolCall(name, ev.Status)
		r.metrics.RecordLatency("tool."+name, dur.Seconds())
	}
	r.publish(ctx, ev)

	r.log.Debug("tool call",
		applogger.String("tool", name),
		applogger.String("status", ev.Status),
		applogger.Int("points", ev.Points),
		applogger.Bool("cached", ev.Cached),
		applogger.Duration("duration_ms", dur),
	)
	return out, err
}

func (r *ToolRegistry) call(ctx context.Context, t *tool, raw json.RawMessage, ev *models.ToolCallEvent) (json.RawMessage, error) {
	args := t.newArgs()
	if err := decodeArgs(ctx, raw, t.aliases, args); err != nil {
		return nil, err
	}
	ev.Points = args.Points()

	key := r.cacheKey(t.desc.Name, args)
	if key != "" {
		if data, err := r.cache.Get(ctx, key); err == nil {
			ev.Cached = true
			r.recordCache(t.desc.Name, true)
			return data, nil
		} else if !errors.Is(err, pkgcache.ErrCacheMiss) {
			r.log.Warn("cache get failed", applogger.String("tool", t.desc.Name), applogger.Error(err))
		}
		r.recordCache(t.desc.Name, false)
	}

	res, err := t.run(r.calc, args)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	if key != "" {
		if err := r.cache.Set(ctx, key, data, r.cacheTTL); err != nil {
			r.log.Warn("cache set failed", applogger.String("tool", t.desc.Name), applogger.Error(err))
		}
	}
	return data, nil
}

func (r *ToolRegistry) cacheKey(name string, args toolArgs) string {
	if r.cache == nil {
		return ""
	}
	key, err := pkgcache.ToolKey(name, args)
	if err != nil {
		r.log.Warn("cache key failed", applogger.String("tool", name), applogger.Error(err))
		return ""
	}
	return key
}

func (r *ToolRegistry) recordCache(name string, hit bool) {
	if r.metrics != nil {
		r.metrics.RecordCacheLookup(name, hit)
	}
}

// publish sends the audit event. It outlives request cancellation and never fails the call.
func (r *ToolRegistry) publish(ctx context.Context, ev *models.ToolCallEvent) {
	if r.audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if err := r.audit.Publish(ctx, ev); err != nil {
		if r.metrics != nil {
			r.metrics.RecordError("audit_publish")
		}
		r.log.Warn("audit publish failed", applogger.String("tool", ev.Tool), applogger.Error(err))
	}
}

// decodeArgs applies defaults, then overlays the JSON object, then runs tag validation.
// Missing or null arguments decode as an empty object.
func decodeArgs(ctx context.Context, raw json.RawMessage, aliases map[string]string, dst toolArgs) error {
	if err := defaults.Set(dst); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	if len(aliases) > 0 {
		var err error
		if raw, err = renameKeys(raw, aliases); err != nil {
			return err
		}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		var inv *models.InvalidInputError
		if errors.As(err, &inv) {
			return inv
		}
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			return models.InvalidInputf("%s must be %s", ute.Field, kindName(ute.Type))
		}
		return models.InvalidInputf("arguments must be a JSON object")
	}

	if err := xhttp.ValidateStruct(ctx, dst); err != nil {
		return models.InvalidInputf("%s", err.Error())
	}
	return nil
}

// renameKeys rewrites legacy argument names. A canonical key wins over its alias.
func renameKeys(raw json.RawMessage, aliases map[string]string) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, models.InvalidInputf("arguments must be a JSON object")
	}
	changed := false
	for from, to := range aliases {
		v, ok := obj[from]
		if !ok {
			continue
		}
		if _, exists := obj[to]; !exists {
			obj[to] = v
		}
		delete(obj, from)
		changed = true
	}
	if !changed {
		return raw, nil
	}
	return json.Marshal(obj)
}

func kindName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "a list"
	case reflect.String:
		return "a string"
	default:
		return "a " + t.Kind().String()
	}
}
