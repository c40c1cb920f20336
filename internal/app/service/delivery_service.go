package service

import (
	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/internal/app/repository"
	"github.com/sjlee/order-api/pkg/logger"
	"gorm.io/gorm"
)

type DeliveryInput struct {
	CustomerName string `json:"customer_name" binding:"required"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	Address      string `json:"address" binding:"required"`
	IsDefault    bool   `json:"is_default"`
}

type DeliveryService interface {
	AddDelivery(email string, input DeliveryInput) (*model.Delivery, error)
	ModifyDelivery(email string, deliveryID uint, input DeliveryInput) (*model.Delivery, error)
	DeleteDelivery(email string, deliveryID uint) error
	GetDefaultDelivery(email string) (*model.Delivery, error)
	GetDeliveries(email string, page, limit int) ([]model.Delivery, int64, error)

	SaveDeliveryMemo(email string, memo string) (*model.DeliveryMemo, error)
	DeleteDeliveryMemo(email string, memoID uint) error
	GetRecentDeliveryMemo(email string) (*model.DeliveryMemo, error)
	GetDeliveryMemos(email string, page, limit int) ([]model.DeliveryMemo, int64, error)
}

type deliveryService struct {
	db *gorm.DB
}

func NewDeliveryService(db *gorm.DB) DeliveryService {
	return &deliveryService{db: db}
}

func (s *deliveryService) AddDelivery(email string, input DeliveryInput) (*model.Delivery, error) {
	var created *model.Delivery
	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repository.NewMemberRepository(tx)
		deliveryRepo := repository.NewDeliveryRepository(tx)

		member, err := memberRepo.Validate(email)
		if err != nil {
			return err
		}

		// 기본 배송지는 회원당 하나만 유지한다.
		if input.IsDefault {
			if err := deliveryRepo.ClearDefault(member.ID); err != nil {
				return err
			}
		}

		delivery := model.Delivery{
			MemberID:     member.ID,
			CustomerName: input.CustomerName,
			PhoneNumber:  input.PhoneNumber,
			Address:      input.Address,
			IsDefault:    input.IsDefault,
		}
		if err := deliveryRepo.Create(&delivery); err != nil {
			return err
		}

		created = &delivery
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Delivery added", map[string]interface{}{
		"email":       email,
		"delivery_id": created.ID,
		"is_default":  created.IsDefault,
	})
	return created, nil
}

func (s *deliveryService) ModifyDelivery(email string, deliveryID uint, input DeliveryInput) (*model.Delivery, error) {
	var modified *model.Delivery
	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repository.NewMemberRepository(tx)
		deliveryRepo := repository.NewDeliveryRepository(tx)

		member, err := memberRepo.Validate(email)
		if err != nil {
			return err
		}

		delivery, err := deliveryRepo.GetByID(deliveryID)
		if err != nil {
			return err
		}

		if input.IsDefault && !delivery.IsDefault {
			if err := deliveryRepo.ClearDefault(member.ID); err != nil {
				return err
			}
		}

		delivery.CustomerName = input.CustomerName
		delivery.PhoneNumber = input.PhoneNumber
		delivery.Address = input.Address
		delivery.IsDefault = input.IsDefault
		if err := deliveryRepo.Save(delivery); err != nil {
			return err
		}

		modified = delivery
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modified, nil
}

func (s *deliveryService) DeleteDelivery(email string, deliveryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repository.NewMemberRepository(tx)
		deliveryRepo := repository.NewDeliveryRepository(tx)

		member, err := memberRepo.Validate(email)
		if err != nil {
			return err
		}
		return deliveryRepo.Delete(deliveryID, member.ID)
	})
}

func (s *deliveryService) GetDefaultDelivery(email string) (*model.Delivery, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	deliveryRepo := repository.NewDeliveryRepository(s.db)

	member, err := memberRepo.Validate(email)
	if err != nil {
		return nil, err
	}
	return deliveryRepo.GetDefaultByMemberID(member.ID)
}

func (s *deliveryService) GetDeliveries(email string, page, limit int) ([]model.Delivery, int64, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	deliveryRepo := repository.NewDeliveryRepository(s.db)

	member, err := memberRepo.Validate(email)
	if err != nil {
		return nil, 0, err
	}

	offset, limit := normalizePage(page, limit)
	return deliveryRepo.FindByMemberID(member.ID, offset, limit)
}

func (s *deliveryService) SaveDeliveryMemo(email string, memo string) (*model.DeliveryMemo, error) {
	var created *model.DeliveryMemo
	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repository.NewMemberRepository(tx)
		deliveryRepo := repository.NewDeliveryRepository(tx)

		member, err := memberRepo.Validate(email)
		if err != nil {
			return err
		}

		row := model.DeliveryMemo{MemberID: member.ID, Memo: memo}
		if err := deliveryRepo.CreateMemo(&row); err != nil {
			return err
		}
		created = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *deliveryService) DeleteDeliveryMemo(email string, memoID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repository.NewMemberRepository(tx)
		deliveryRepo := repository.NewDeliveryRepository(tx)

		member, err := memberRepo.Validate(email)
		if err != nil {
			return err
		}
		return deliveryRepo.DeleteMemo(memoID, member.ID)
	})
}

func (s *deliveryService) GetRecentDeliveryMemo(email string) (*model.DeliveryMemo, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	deliveryRepo := repository.NewDeliveryRepository(s.db)

	member, err := memberRepo.Validate(email)
	if err != nil {
		return nil, err
	}
	return deliveryRepo.GetRecentMemoByMemberID(member.ID)
}

func (s *deliveryService) GetDeliveryMemos(email string, page, limit int) ([]model.DeliveryMemo, int64, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	deliveryRepo := repository.NewDeliveryRepository(s.db)

	member, err := memberRepo.Validate(email)
	if err != nil {
		return nil, 0, err
	}

	offset, limit := normalizePage(page, limit)
	return deliveryRepo.FindMemosByMemberID(member.ID, offset, limit)
}

// normalizePage는 1부터 시작하는 페이지 번호를 offset/limit 쌍으로 바꿉니다.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return (page - 1) * limit, limit
}
