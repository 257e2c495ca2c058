package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobtrack/internal/database"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream failure")
	ErrInternal     = errors.New("internal error")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// Message returns the detail after the sentinel prefix, for display.
func Message(err error) string {
	for _, s := range []error{ErrInvalidInput, ErrNotFound, ErrConflict, ErrUnauthorized, ErrUpstream} {
		if errors.Is(err, s) {
			msg := strings.TrimPrefix(err.Error(), s.Error())
			msg = strings.TrimPrefix(msg, ": ")
			if msg == "" {
				return s.Error()
			}
			return msg
		}
	}
	return ErrInternal.Error()
}

// storeErr translates repository and database errors. Anything unexpected is
// logged and surfaced as ErrInternal.
func storeErr(logger *zap.Logger, op string, what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound(what)
	case errors.Is(err, database.ErrForeignKey):
		return invalid("referenced record does not exist")
	case errors.Is(err, database.ErrUniqueViolation):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	logger.Error("store failure", zap.String("op", op), zap.Error(err))
	return ErrInternal
}

const AnalyticsSummaryKey = "analytics:summary"

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Notifier interface {
	NotifyChange(entity string, action ws.Action, id uuid.UUID)
}

// Deps is shared by every write usecase.
type Deps struct {
	Logger   *zap.Logger
	Cache    Cache
	Notifier Notifier
	Now      func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// changed drops derived caches and tells open clients to re-fetch.
func (d Deps) changed(ctx context.Context, entity string, action ws.Action, id uuid.UUID) {
	if d.Cache != nil {
		if err := d.Cache.Delete(ctx, AnalyticsSummaryKey); err != nil {
			d.Logger.Warn("analytics cache invalidation failed", zap.Error(err))
		}
	}
	if d.Notifier != nil {
		d.Notifier.NotifyChange(entity, action, id)
	}
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
