package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/changhyeonkim/ambient-toolbox/internal/model"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/database"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"gorm.io/gorm"
)

type MemberService struct {
	db               *gorm.DB
	memberRepository *MemberRepository
}

func NewMemberService(db *gorm.DB, memberRepository *MemberRepository) *MemberService {
	return &MemberService{
		db:               db,
		memberRepository: memberRepository,
	}
}

func (s *MemberService) GetProfile(ctx context.Context, memberID uint32) (*GetProfileResponse, error) {
	var response *GetProfileResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.findMember(ctx, tx, memberID)
		if err != nil {
			return err
		}

		response = toProfileResponse(member)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}

// UpdateProfile saves only the changed columns. lastmodified_by becomes the actor in ctx.
func (s *MemberService) UpdateProfile(ctx context.Context, memberID uint32, request *UpdateProfileRequest) (*GetProfileResponse, error) {
	log := logger.FromContext(ctx)
	var response *GetProfileResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.findMember(ctx, tx, memberID)
		if err != nil {
			return err
		}

		fields := make([]string, 0, 2)
		if request.Name != nil {
			member.Name = *request.Name
			fields = append(fields, "name")
		}
		if request.PhoneNumber != nil {
			member.PhoneNumber = *request.PhoneNumber
			fields = append(fields, "phone_number")
		}
		if len(fields) == 0 {
			return ErrNoProfileChanges
		}

		if err := s.memberRepository.UpdateFields(ctx, tx, member, fields); err != nil {
			log.Error("Failed to update member profile", "error", err)
			return fmt.Errorf("update member: %w", err)
		}

		log.Info("Member profile updated", "member_id", memberID, "fields", fields)
		response = toProfileResponse(member)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}

func (s *MemberService) findMember(ctx context.Context, tx *gorm.DB, memberID uint32) (*model.Member, error) {
	member, err := s.memberRepository.FindByID(ctx, tx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	return member, nil
}

func toProfileResponse(member *model.Member) *GetProfileResponse {
	return &GetProfileResponse{
		ID:             member.ID,
		Name:           member.Name,
		Email:          member.Email,
		PhoneNumber:    member.PhoneNumber,
		CreatedAt:      member.CreatedAt,
		CreatedBy:      member.CreatedBy,
		LastModifiedAt: member.LastModifiedAt,
		LastModifiedBy: member.LastModifiedBy,
	}
}
