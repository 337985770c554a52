package audit

import (
	"time"

	"github.com/changhyeonkim/ambient-toolbox/internal/model"
)

// Column names of model.CommonInfo that are always written on restricted updates
const (
	ColumnLastModifiedAt = "lastmodified_at"
	ColumnLastModifiedBy = "lastmodified_by"
	ColumnCreatedAt      = "created_at"
	ColumnCreatedBy      = "created_by"
)

var UpdateFieldNames = []string{
	ColumnLastModifiedAt,
	ColumnLastModifiedBy,
	ColumnCreatedAt,
	ColumnCreatedBy,
}

// ModifiedFieldNames are the audit columns an update without a loaded record may write
var ModifiedFieldNames = []string{
	ColumnLastModifiedAt,
	ColumnLastModifiedBy,
}

// Timestamped is implemented by records embedding model.CreatedAtInfo
type Timestamped interface {
	Timestamps() *model.CreatedAtInfo
}

// Entity is implemented by records embedding model.CommonInfo
type Entity interface {
	Timestamped
	AuditFields() *model.CommonInfo
	AlwaysUpdateAuditFields() bool
	IsNew() bool
}

// StampCreatedAt fills created_at for records saved without one
func StampCreatedAt(r Timestamped, now time.Time) {
	info := r.Timestamps()
	if info.CreatedAt.IsZero() {
		info.CreatedAt = now
	}
}

// Stamp refreshes lastmodified_at and, when actor is a valid identity, the
// user columns. created_by is only written while the entity is still new.
func Stamp(e Entity, actor *Actor, now time.Time) {
	if e.IsNew() {
		StampCreated(e, actor, now)
		return
	}
	StampModified(e, actor, now)
	StampCreatedAt(e, now)
}

// StampCreated stamps a record that is about to be inserted
func StampCreated(e Entity, actor *Actor, now time.Time) {
	StampModified(e, actor, now)
	if actor != nil && actor.Valid() {
		id := actor.ID
		e.AuditFields().CreatedBy = &id
	}
	StampCreatedAt(e, now)
}

// StampModified touches only lastmodified_at and lastmodified_by. The new
// lastmodified_at is strictly after the previous one.
func StampModified(e Entity, actor *Actor, now time.Time) {
	info := e.AuditFields()

	modifiedAt := now
	if prev := info.LastModifiedAt; !prev.IsZero() && !modifiedAt.After(prev) {
		modifiedAt = prev.Add(time.Microsecond)
	}
	info.LastModifiedAt = modifiedAt

	if actor != nil && actor.Valid() {
		id := actor.ID
		info.LastModifiedBy = &id
	}
}

// MergeUpdateFields returns fields followed by any audit column it lacks
func MergeUpdateFields(fields []string) []string {
	return mergeFields(fields, UpdateFieldNames)
}

// MergeModifiedFields is MergeUpdateFields without the created_* columns
func MergeModifiedFields(fields []string) []string {
	return mergeFields(fields, ModifiedFieldNames)
}

func mergeFields(fields, extra []string) []string {
	merged := make([]string, 0, len(fields)+len(extra))
	seen := make(map[string]struct{}, cap(merged))

	for _, names := range [][]string{fields, extra} {
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}

	return merged
}
