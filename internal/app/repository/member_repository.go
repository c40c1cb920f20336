package repository

import (
	"errors"
	"fmt"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/pkg/logger"
	"gorm.io/gorm"
)

type MemberRepository interface {
	GetByEmail(email string) (*model.Member, error)
	Validate(email string) (*model.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) GetByEmail(email string) (*model.Member, error) {
	var member model.Member
	err := r.db.Where("email = ?", email).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, email: %s", ErrMemberNotFound, email)
		}
		logger.Error("Failed to find member by email in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return &member, nil
}

// Validate는 회원 존재와 인증 완료를 함께 확인합니다.
// 모든 변경성 작업은 이 검사로 시작합니다.
func (r *memberRepository) Validate(email string) (*model.Member, error) {
	member, err := r.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if !member.IsVerified {
		return nil, fmt.Errorf("%w, email: %s", ErrMemberNotVerified, email)
	}
	return member, nil
}
