package model

import (
	"time"
)

// CreatedAtInfo 생성 시각만 필요한 엔티티용
// 비어 있으면 저장 시 audit 패키지가 채운다 (과거 데이터 fallback)
type CreatedAtInfo struct {
	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
}

// Timestamps returns the embedded creation timestamp block.
func (c *CreatedAtInfo) Timestamps() *CreatedAtInfo {
	return c
}

// CommonInfo 생성/수정 시각과 생성자/수정자를 함께 관리
// CreatedBy, LastModifiedBy는 요청 context의 사용자로 audit.Saver가 설정
type CommonInfo struct {
	CreatedAtInfo
	CreatedBy      *uint32   `gorm:"column:created_by"`
	LastModifiedAt time.Time `gorm:"column:lastmodified_at;not null;index"`
	LastModifiedBy *uint32   `gorm:"column:lastmodified_by"`
}

// AuditFields returns the embedded audit block.
func (c *CommonInfo) AuditFields() *CommonInfo {
	return c
}

// AlwaysUpdateAuditFields reports whether the audit columns are added to
// restricted (field-list) updates. Entities may shadow it to opt out.
func (c *CommonInfo) AlwaysUpdateAuditFields() bool {
	return true
}
