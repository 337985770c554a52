package member

import (
	"context"

	"github.com/changhyeonkim/ambient-toolbox/internal/model"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/audit"
	"gorm.io/gorm"
)

type MemberRepository struct {
	saver *audit.Saver
}

func NewMemberRepository(saver *audit.Saver) *MemberRepository {
	if saver == nil {
		saver = audit.NewSaver()
	}
	return &MemberRepository{
		saver: saver,
	}
}

func (m *MemberRepository) IsExist(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("email = ?", email).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Create inserts a new member; audit fields are stamped from the actor in ctx
func (m *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return m.saver.Save(ctx, db, member, audit.SaveOptions{ForceInsert: true})
}

// UpdateFields writes only the given columns (plus the audit columns)
func (m *MemberRepository) UpdateFields(ctx context.Context, db *gorm.DB, member *model.Member, fields []string) error {
	return m.saver.Save(ctx, db, member, audit.SaveOptions{Fields: fields})
}

func (m *MemberRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("email = ?", email).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (m *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("id = ?", ID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}
