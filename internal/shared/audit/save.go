package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/metrics"
	"gorm.io/gorm"
)

var (
	ErrForceInsertAndUpdate  = errors.New("audit: cannot force both insert and update")
	ErrUpdateWithoutIdentity = errors.New("audit: cannot update a record without primary key")
	ErrNoRowsUpdated         = errors.New("audit: update did not affect any rows")
)

// stampedKey marks statements already stamped by Saver so the Plugin
// callbacks leave them alone
const stampedKey = "audit:stamped"

// SaveOptions mirrors the knobs of a classic ORM save call
type SaveOptions struct {
	ForceInsert bool
	ForceUpdate bool

	// Fields restricts the update to the given columns. nil means all columns;
	// an empty non-nil slice only saves the audit columns (or nothing when the
	// entity opts out of AlwaysUpdateAuditFields).
	Fields []string
}

// Saver stamps audit fields and persists entities
type Saver struct {
	// CurrentUser resolves the acting member. Defaults to ActorFromContext.
	CurrentUser func(ctx context.Context) (Actor, bool)

	now func() time.Time
}

// NewSaver creates a saver that reads the actor from the context
func NewSaver() *Saver {
	return &Saver{
		CurrentUser: ActorFromContext,
	}
}

// WithClock replaces the time source; nil falls back to the db's NowFunc
func (s *Saver) WithClock(now func() time.Time) *Saver {
	s.now = now
	return s
}

func (s *Saver) clock(db *gorm.DB) time.Time {
	if s.now != nil {
		return s.now()
	}
	if db != nil && db.Config != nil && db.NowFunc != nil {
		return db.NowFunc()
	}
	return time.Now()
}

func (s *Saver) actor(ctx context.Context) *Actor {
	resolve := s.CurrentUser
	if resolve == nil {
		resolve = ActorFromContext
	}

	actor, ok := resolve(ctx)
	if !ok || !actor.Valid() {
		return nil
	}
	return &actor
}

// Save stamps e and writes it through db
func (s *Saver) Save(ctx context.Context, db *gorm.DB, e Entity, opts SaveOptions) error {
	if opts.ForceInsert && opts.ForceUpdate {
		return ErrForceInsertAndUpdate
	}

	isNew := e.IsNew()
	if isNew && (opts.ForceUpdate || opts.Fields != nil) {
		return ErrUpdateWithoutIdentity
	}

	actor := s.actor(ctx)
	Stamp(e, actor, s.clock(db))
	recordStamp(isNew || opts.ForceInsert, actor)

	fields := opts.Fields
	if fields != nil && e.AlwaysUpdateAuditFields() {
		fields = MergeUpdateFields(fields)
	}
	if fields != nil && len(fields) == 0 {
		return nil
	}

	tx := db.WithContext(ctx).Set(stampedKey, true)

	switch {
	case isNew || opts.ForceInsert:
		if err := tx.Create(e).Error; err != nil {
			return fmt.Errorf("audit: create %T: %w", e, err)
		}
	case fields != nil:
		result := tx.Model(e).Select(fields).Updates(e)
		if result.Error != nil {
			return fmt.Errorf("audit: update %T fields=%v: %w", e, fields, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNoRowsUpdated
		}
	case opts.ForceUpdate:
		result := tx.Model(e).Select("*").Updates(e)
		if result.Error != nil {
			return fmt.Errorf("audit: update %T: %w", e, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNoRowsUpdated
		}
	default:
		if err := tx.Save(e).Error; err != nil {
			return fmt.Errorf("audit: save %T: %w", e, err)
		}
	}

	logger.FromContext(ctx).Debug("audit 필드 저장",
		"entity", fmt.Sprintf("%T", e),
		"created", isNew || opts.ForceInsert,
		"fields", fields,
		"actor", actorLabel(actor),
	)
	return nil
}

func recordStamp(created bool, actor *Actor) {
	operation := "update"
	if created {
		operation = "create"
	}
	metrics.AuditStamps.WithLabelValues(operation, actorLabel(actor)).Inc()
}

func actorLabel(actor *Actor) string {
	if actor == nil {
		return "anonymous"
	}
	return "member"
}

var defaultSaver = NewSaver()

// Save stamps and persists e with the default Saver
func Save(ctx context.Context, db *gorm.DB, e Entity, opts SaveOptions) error {
	return defaultSaver.Save(ctx, db, e, opts)
}
