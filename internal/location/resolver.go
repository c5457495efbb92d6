// Package location turns postal codes into "City, State" display strings.
//
// Resolution is tiered: the static table and process cache answer
// synchronously; misses are echoed as the raw code and refined in the
// background through the shared cache and the geocoder. Failures never
// reach the caller, who keeps the raw code.
package location

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/bandseeking/bandseeking-go/internal/domain"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Geocoder finds the best match for a postal code.
type Geocoder interface {
	LookupPostalCode(ctx context.Context, postalCode string) (*domain.GeoMatch, error)
}

// SharedCache is an optional cross-process copy of resolved localities.
type SharedCache interface {
	GetLocality(ctx context.Context, postalCode string) (domain.Locality, bool, error)
	SetLocality(ctx context.Context, postalCode string, locality domain.Locality) error
}

var postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)

// IsPostalCode reports whether code is exactly five ASCII digits.
func IsPostalCode(code string) bool {
	return postalCodePattern.MatchString(code)
}

type Config struct {
	LookupTimeout time.Duration
}

type Resolver struct {
	geocoder Geocoder
	shared   SharedCache
	logger   *zap.Logger

	static map[string]domain.Locality
	cache  sync.Map // postal code -> domain.Locality, never evicted

	group         singleflight.Group
	inflight      conc.WaitGroup
	lookupTimeout time.Duration
}

// NewResolver builds a resolver. shared may be nil.
func NewResolver(geocoder Geocoder, shared SharedCache, logger *zap.Logger, cfg Config) *Resolver {
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 10 * time.Second
	}
	return &Resolver{
		geocoder:      geocoder,
		shared:        shared,
		logger:        logger,
		static:        staticLocalities,
		lookupTimeout: cfg.LookupTimeout,
	}
}

// Lookup consults the static table and the process cache only.
func (r *Resolver) Lookup(code string) (domain.Locality, bool) {
	if locality, ok := r.static[code]; ok {
		return locality, true
	}
	if val, ok := r.cache.Load(code); ok {
		return val.(domain.Locality), true
	}
	return domain.Locality{}, false
}

// Resolve returns the best value available without blocking: "City, State"
// on a synchronous hit, the raw code otherwise. On a miss for a well-formed
// code a background lookup is started; if it succeeds onUpdate receives the
// refined value. onUpdate is never called on failure and may be nil. A
// panic inside onUpdate is logged and does not reach Close.
//
// The background lookup is not tied to the caller and keeps running (and
// fills the cache) after the caller has moved on.
func (r *Resolver) Resolve(code string, onUpdate func(string)) string {
	if locality, ok := r.Lookup(code); ok {
		return locality.String()
	}
	if !IsPostalCode(code) {
		return code
	}

	r.inflight.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.lookupTimeout)
		defer cancel()

		if locality, ok := r.refine(ctx, code); ok && onUpdate != nil {
			r.notify(code, locality.String(), onUpdate)
		}
	})
	return code
}

func (r *Resolver) notify(code, value string, onUpdate func(string)) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Location update callback panicked",
				zap.String("postal_code", code),
				zap.Any("panic", rec),
			)
		}
	}()
	onUpdate(value)
}

// ResolveWait runs the whole chain and returns the final value. It is for
// callers without a way to observe a later update.
func (r *Resolver) ResolveWait(ctx context.Context, code string) string {
	if locality, ok := r.Lookup(code); ok {
		return locality.String()
	}
	if !IsPostalCode(code) {
		return code
	}

	ctx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	if locality, ok := r.refine(ctx, code); ok {
		return locality.String()
	}
	return code
}

// Close waits for background lookups to finish.
func (r *Resolver) Close() {
	r.inflight.Wait()
}

// refine coalesces concurrent lookups for the same code. The shared fetch
// runs detached from every caller under its own timeout, so a caller that
// gives up only stops waiting; the others still get the result and the
// cache is still filled.
func (r *Resolver) refine(ctx context.Context, code string) (domain.Locality, bool) {
	ch := r.group.DoChan(code, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.lookupTimeout)
		defer cancel()

		locality, ok := r.fetch(lookupCtx, code)
		if !ok {
			return nil, nil
		}
		return locality, nil
	})

	select {
	case res := <-ch:
		locality, ok := res.Val.(domain.Locality)
		return locality, ok
	case <-ctx.Done():
		return domain.Locality{}, false
	}
}

func (r *Resolver) fetch(ctx context.Context, code string) (domain.Locality, bool) {
	if r.shared != nil {
		locality, found, err := r.shared.GetLocality(ctx, code)
		if err != nil {
			r.logger.Warn("Shared location cache unavailable", zap.String("postal_code", code), zap.Error(err))
		} else if found {
			r.cache.Store(code, locality)
			return locality, true
		}
	}

	if r.geocoder == nil {
		return domain.Locality{}, false
	}

	match, err := r.geocoder.LookupPostalCode(ctx, code)
	if err != nil {
		r.logger.Debug("Postal code lookup failed, keeping raw code",
			zap.String("postal_code", code),
			zap.Error(err),
		)
		return domain.Locality{}, false
	}

	locality := match.Locality()
	if locality.IsZero() {
		r.logger.Debug("Geocoding match has no city/state",
			zap.String("postal_code", code),
			zap.String("display_name", match.DisplayName),
		)
		return domain.Locality{}, false
	}

	r.cache.Store(code, locality)
	if r.shared != nil {
		if err := r.shared.SetLocality(ctx, code, locality); err != nil {
			r.logger.Warn("Failed to store locality in shared cache", zap.String("postal_code", code), zap.Error(err))
		}
	}

	r.logger.Debug("Postal code resolved",
		zap.String("postal_code", code),
		zap.String("locality", locality.String()),
	)
	return locality, true
}
