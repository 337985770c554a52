package audit

import (
	"fmt"
	"reflect"
	"slices"

	"gorm.io/gorm"
)

const (
	pluginName          = "audit"
	stampCreateCallback = "audit:stamp_create"
	stampUpdateCallback = "audit:stamp_update"

	onConflictClause = "ON CONFLICT"
)

// Plugin stamps audit fields for writes issued directly through GORM
// (db.Create, db.Save, db.Updates with a struct, batches of either) instead
// of Saver.Save.
//
// Usage:
//
//	if err := db.Use(audit.NewPlugin(audit.NewSaver())); err != nil {
//	    return err
//	}
type Plugin struct {
	saver *Saver
}

var _ gorm.Plugin = (*Plugin)(nil)

func NewPlugin(saver *Saver) *Plugin {
	if saver == nil {
		saver = NewSaver()
	}
	return &Plugin{saver: saver}
}

func (p *Plugin) Name() string {
	return pluginName
}

// Initialize registers the stamping stage ahead of GORM's create and update callbacks
func (p *Plugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register(stampCreateCallback, p.stampCreate); err != nil {
		return fmt.Errorf("audit: register %s: %w", stampCreateCallback, err)
	}
	if err := db.Callback().Update().Before("gorm:update").Register(stampUpdateCallback, p.stampUpdate); err != nil {
		return fmt.Errorf("audit: register %s: %w", stampUpdateCallback, err)
	}
	return nil
}

// stampCreate treats every row as created. An upsert (db.Save on a slice) may
// hit existing rows, so there only rows without a primary key get created_by.
func (p *Plugin) stampCreate(db *gorm.DB) {
	entities, actor, ok := p.prepare(db)
	if !ok {
		return
	}

	_, upsert := db.Statement.Clauses[onConflictClause]
	now := p.saver.clock(db)
	for _, e := range entities {
		created := !upsert || e.IsNew()
		if created {
			StampCreated(e, actor, now)
		} else {
			Stamp(e, actor, now)
		}
		recordStamp(created, actor)
	}
}

// stampUpdate never writes created_by. A destination without a primary key
// (db.Model(&T{}).Where(...).Updates(&T{...})) is a partial value applied to
// many rows, so only the lastmodified columns are stamped and selected.
func (p *Plugin) stampUpdate(db *gorm.DB) {
	entities, actor, ok := p.prepare(db)
	if !ok {
		return
	}

	now := p.saver.clock(db)
	loaded := true
	for _, e := range entities {
		if e.IsNew() {
			StampModified(e, actor, now)
			loaded = false
		} else {
			Stamp(e, actor, now)
		}
		recordStamp(false, actor)
	}

	selects := db.Statement.Selects
	if len(selects) == 0 || slices.Contains(selects, "*") || !entities[0].AlwaysUpdateAuditFields() {
		return
	}
	if loaded {
		db.Statement.Selects = MergeUpdateFields(selects)
	} else {
		db.Statement.Selects = MergeModifiedFields(selects)
	}
}

func (p *Plugin) prepare(db *gorm.DB) ([]Entity, *Actor, bool) {
	if db.Error != nil || db.Statement == nil {
		return nil, nil, false
	}

	if v, ok := db.Get(stampedKey); ok {
		if stamped, _ := v.(bool); stamped {
			return nil, nil, false
		}
	}

	entities := statementEntities(db.Statement)
	if len(entities) == 0 {
		return nil, nil, false
	}
	return entities, p.saver.actor(db.Statement.Context), true
}

// statementEntities returns the audited records a statement writes: the
// destination itself, or each element of a slice or array destination
func statementEntities(stmt *gorm.Statement) []Entity {
	if e, ok := stmt.Dest.(Entity); ok {
		return []Entity{e}
	}

	rv := stmt.ReflectValue
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil
	}

	entities := make([]Entity, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		switch {
		case elem.Kind() == reflect.Pointer:
			if elem.IsNil() {
				continue
			}
		case elem.CanAddr():
			elem = elem.Addr()
		default:
			continue
		}

		if e, ok := elem.Interface().(Entity); ok {
			entities = append(entities, e)
		}
	}
	return entities
}
