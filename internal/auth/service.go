package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/changhyeonkim/ambient-toolbox/internal/member"
	"github.com/changhyeonkim/ambient-toolbox/internal/model"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/database"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db               *gorm.DB
	memberRepository *member.MemberRepository
	tokenManager     token.Manager
}

func NewAuthService(db *gorm.DB, memberRepository *member.MemberRepository, tokenManager token.Manager) *AuthService {
	return &AuthService{
		db:               db,
		memberRepository: memberRepository,
		tokenManager:     tokenManager,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	member, err := a.memberRepository.FindByEmail(ctx, a.db, request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 이메일 존재 여부는 응답으로 드러내지 않는다
			log.Warn("로그인 실패 - member email not found", "email", logger.MaskEmail(request.Email))
			return nil, fmt.Errorf("login %w", ErrInCorrectEmailPassword)
		}
		log.Error("로그인 실패 - 알 수 없는 오류", "error", err)
		return nil, fmt.Errorf("로그인 실패: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(request.Password)); err != nil {
		log.Warn("로그인 실패 - invalid password", "email", logger.MaskEmail(request.Email))
		return nil, fmt.Errorf("login %w", ErrInCorrectEmailPassword)
	}

	response, err := a.issueTokens(ctx, member)
	if err != nil {
		return nil, err
	}

	log.Info("로그인 성공", "member_id", member.ID, "email", logger.MaskEmail(request.Email))
	return response, nil
}

// Refresh exchanges a refresh token for a new token pair. The member is
// looked up again so tokens of deleted members stop working.
func (a *AuthService) Refresh(ctx context.Context, request *RefreshRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokenManager.ValidateTokenOfType(request.RefreshToken, token.REFRESH)
	if err != nil {
		log.Warn("토큰 재발급 실패 - refresh token 검증 실패", "error", err)
		return nil, fmt.Errorf("refresh: %v %w", err, ErrInvalidRefreshToken)
	}

	memberID, err := strconv.ParseUint(claims.MemberID, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("refresh: member_id=%q %w", claims.MemberID, ErrInvalidRefreshToken)
	}

	member, err := a.memberRepository.FindByID(ctx, a.db, uint32(memberID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("토큰 재발급 실패 - 회원 없음", "member_id", memberID)
			return nil, fmt.Errorf("refresh: member_id=%d %w", memberID, ErrInvalidRefreshToken)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}

	response, err := a.issueTokens(ctx, member)
	if err != nil {
		return nil, err
	}

	log.Info("토큰 재발급 성공", "member_id", member.ID)
	return response, nil
}

func (a *AuthService) issueTokens(ctx context.Context, member *model.Member) (*LoginResponse, error) {
	log := logger.FromContext(ctx)
	memberID := strconv.FormatUint(uint64(member.ID), 10)

	accessToken, err := a.tokenManager.GenerateAccessToken(memberID, member.Email)
	if err != nil {
		log.Error("access token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(memberID, member.Email)
	if err != nil {
		log.Error("refresh token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Signup runs without an actor, so the new member's created_by stays null
func (a *AuthService) Signup(ctx context.Context, request *SignupRequest) (*SignupResponse, error) {
	log := logger.FromContext(ctx)
	var response *SignupResponse

	err := database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		exists, err := a.memberRepository.IsExist(ctx, tx, request.Email)
		if err != nil {
			log.Error("Failed to check member existence", "error", err)
			return fmt.Errorf("check member existence: %w", err)
		}
		if exists {
			log.Warn("Member already exists", "email", logger.MaskEmail(request.Email))
			return fmt.Errorf("signup %w", member.ErrMemberAlreadyExists)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", "error", err)
			return fmt.Errorf("hash password: %w", err)
		}

		newMember := model.NewMember(request.Name, request.Email, request.PhoneNumber, string(hashedPassword))
		if err := a.memberRepository.Create(ctx, tx, newMember); err != nil {
			log.Error("Failed to create member", "error", err)
			return fmt.Errorf("create member: %w", err)
		}

		log.Info("Member created successfully",
			"member_id", newMember.ID,
			"email", logger.MaskEmail(request.Email),
			"phone", logger.MaskPhone(request.PhoneNumber),
		)
		response = &SignupResponse{ID: newMember.ID, CreatedAt: newMember.CreatedAt}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}
