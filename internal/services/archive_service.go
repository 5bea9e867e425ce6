package services

import (
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"transportcoin-service/internal/models"
)

type TransactionArchiveService struct {
	DB *gorm.DB
}

func NewTransactionArchiveService(db *gorm.DB) *TransactionArchiveService {
	return &TransactionArchiveService{DB: db}
}

// ArchiveTransactions moves terminal ledger rows older than 4 months into
// the archive table. PENDING rows stay put: they are still referenced by
// open withdrawal and purchase flows.
func (s *TransactionArchiveService) ArchiveTransactions() {
	cutoff := time.Now().AddDate(0, -4, 0)

	var old []models.Transaction
	if err := s.DB.Where("created_at < ? AND status IN ?", cutoff,
		[]string{models.TrxSuccess, models.TrxFailed}).
		Find(&old).Error; err != nil {
		log.WithError(err).Error("failed to load transactions for archiving")
		return
	}

	if len(old) == 0 {
		log.Info("No transactions to archive")
		return
	}

	archived := make([]models.ArchivedTransaction, 0, len(old))
	ids := make([]int, 0, len(old))
	for _, trx := range old {
		archived = append(archived, models.ArchivedTransaction{
			UserId:              trx.UserId,
			WalletId:            trx.WalletId,
			Reference:           trx.Reference,
			Type:                trx.Type,
			Amount:              trx.Amount,
			Status:              trx.Status,
			Description:         trx.Description,
			AdminNote:           trx.AdminNote,
			WithdrawalRequestId: trx.WithdrawalRequestId,
			PurchaseId:          trx.PurchaseId,
			CreatedAt:           trx.CreatedAt,
		})
		ids = append(ids, trx.ID)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Transaction{}, ids).Error
	})
	if err != nil {
		log.WithError(err).Error("transaction archiving failed")
		return
	}

	log.WithField("count", len(old)).Info("Archived old ledger transactions")
}

// StartScheduler runs the archive job daily at midnight.
func (s *TransactionArchiveService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		log.Info("Running scheduled transaction archive task")
		s.ArchiveTransactions()
	})
	if err != nil {
		log.WithError(err).Error("failed to schedule archive task")
		return
	}
	c.Start()
	log.Info("Transaction archive scheduler started (daily at 00:00)")
}
