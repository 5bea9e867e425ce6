package services

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"transportcoin-service/internal/models"
	"transportcoin-service/pkg/common"
)

type SupportService struct {
	DB *gorm.DB
}

func NewSupportService(db *gorm.DB) *SupportService {
	return &SupportService{DB: db}
}

func (s *SupportService) ListForUser(userId int) (interface{}, error) {
	var threads []models.SupportThread
	if err := s.DB.Where("user_id = ?", userId).
		Order("updated_at DESC").Limit(50).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return common.NewSuccessResponse(map[string]interface{}{"threads": threads}, "Threads fetched"), nil
}

// CreateForWithdrawal opens (or reopens) the single thread attached to one of
// the caller's withdrawal requests.
func (s *SupportService) CreateForWithdrawal(userId, withdrawalRequestId int) (interface{}, error) {
	if withdrawalRequestId <= 0 {
		return common.NewErrorResponse("withdrawalRequestId is required.",
			common.CodeValidation, http.StatusBadRequest), nil
	}

	var wr models.WithdrawalRequest
	err := s.DB.Where("id = ? AND user_id = ?", withdrawalRequestId, userId).First(&wr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewErrorResponse("Withdrawal not found.",
			common.CodeNotFound, http.StatusNotFound), nil
	}
	if err != nil {
		return nil, err
	}

	thread, err := s.upsertThread(userId, withdrawalRequestId)
	if err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{"thread": thread}, "Thread ready"), nil
}

func (s *SupportService) upsertThread(userId, withdrawalRequestId int) (*models.SupportThread, error) {
	var thread models.SupportThread
	err := s.DB.Where("withdrawal_request_id = ?", withdrawalRequestId).First(&thread).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		thread = models.SupportThread{
			UserId:              userId,
			WithdrawalRequestId: &withdrawalRequestId,
			Status:              models.ThreadOpen,
		}
		if err := s.DB.Create(&thread).Error; err != nil {
			return nil, err
		}
		return &thread, nil
	}
	if err != nil {
		return nil, err
	}

	if thread.Status != models.ThreadOpen {
		if err := s.DB.Model(&thread).Update("status", models.ThreadOpen).Error; err != nil {
			return nil, err
		}
		thread.Status = models.ThreadOpen
	}
	return &thread, nil
}

func (s *SupportService) GetThread(userId, threadId int) (interface{}, error) {
	var thread models.SupportThread
	err := s.DB.Where("id = ? AND user_id = ?", threadId, userId).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&thread).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewErrorResponse("Thread not found.",
			common.CodeNotFound, http.StatusNotFound), nil
	}
	if err != nil {
		return nil, err
	}
	return common.NewSuccessResponse(map[string]interface{}{"thread": thread}, "Thread fetched"), nil
}

// PostUserMessage appends a USER message. A message on a CLOSED thread
// reopens it.
func (s *SupportService) PostUserMessage(userId, threadId int, body string) (interface{}, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return common.NewErrorResponse("Message is required.",
			common.CodeValidation, http.StatusBadRequest), nil
	}

	var thread models.SupportThread
	err := s.DB.Where("id = ? AND user_id = ?", threadId, userId).First(&thread).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewErrorResponse("Thread not found.",
			common.CodeNotFound, http.StatusNotFound), nil
	}
	if err != nil {
		return nil, err
	}

	var msg models.SupportMessage
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		msg = models.SupportMessage{
			ThreadId: threadId,
			Sender:   models.SenderUser,
			Body:     body,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.SupportThread{}).
			Where("id = ?", threadId).
			Updates(map[string]interface{}{
				"status":     models.ThreadOpen,
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{"message": msg}, "Message sent"), nil
}

// ThreadForTransaction resolves the support thread behind a withdrawal audit
// row via its explicit withdrawal link.
func (s *SupportService) ThreadForTransaction(userId, transactionId int) (interface{}, error) {
	if transactionId <= 0 {
		return common.NewErrorResponse("transactionId is required.",
			common.CodeValidation, http.StatusBadRequest), nil
	}

	var trx models.Transaction
	err := s.DB.Where("id = ? AND user_id = ?", transactionId, userId).First(&trx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewErrorResponse("Transaction not found.",
			common.CodeNotFound, http.StatusNotFound), nil
	}
	if err != nil {
		return nil, err
	}

	if trx.WithdrawalRequestId == nil {
		return common.NewErrorResponse("This transaction is not a withdrawal request.",
			common.CodeValidation, http.StatusBadRequest), nil
	}

	thread, err := s.upsertThread(userId, *trx.WithdrawalRequestId)
	if err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"threadId":            thread.ID,
		"withdrawalRequestId": *trx.WithdrawalRequestId,
	}, "Thread resolved"), nil
}

func (s *SupportService) AdminList() (interface{}, error) {
	var threads []models.SupportThread
	if err := s.DB.Order("updated_at DESC").Limit(100).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return common.NewSuccessResponse(map[string]interface{}{"threads": threads}, "Threads fetched"), nil
}

func (s *SupportService) AdminPostMessage(threadId int, body string) (interface{}, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return common.NewErrorResponse("Message body is required.",
			common.CodeValidation, http.StatusBadRequest), nil
	}

	var thread models.SupportThread
	err := s.DB.First(&thread, threadId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewErrorResponse("Thread not found.",
			common.CodeNotFound, http.StatusNotFound), nil
	}
	if err != nil {
		return nil, err
	}

	var msg models.SupportMessage
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		msg = models.SupportMessage{
			ThreadId: threadId,
			Sender:   models.SenderAdmin,
			Body:     body,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.SupportThread{}).
			Where("id = ?", threadId).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{"message": msg}, "Message sent"), nil
}

func (s *SupportService) CloseThread(threadId int) (interface{}, error) {
	res := s.DB.Model(&models.SupportThread{}).
		Where("id = ?", threadId).
		Update("status", models.ThreadClosed)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return common.NewErrorResponse("Thread not found.",
			common.CodeNotFound, http.StatusNotFound), nil
	}
	return common.NewSuccessResponse(nil, "Thread closed"), nil
}
