package services

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"transportcoin-service/internal/models"
	"transportcoin-service/pkg/common"
)

type PurchaseService struct {
	DB     *gorm.DB
	Config *ConfigService
}

func NewPurchaseService(db *gorm.DB, config *ConfigService) *PurchaseService {
	return &PurchaseService{DB: db, Config: config}
}

type PurchaseRequestDTO struct {
	UserId    int
	TcgAmount int64
}

// Request records a BTC-funded TCGold buy. Funding happens off-platform, so
// no balance moves here; the wallet is only credited when an admin confirms
// the BTC payment.
func (s *PurchaseService) Request(data PurchaseRequestDTO) (interface{}, error) {
	if !validLedgerAmount(data.TcgAmount) {
		return common.NewErrorResponse("tcgAmount must be a positive integer within the supported range.",
			common.CodeValidation, http.StatusBadRequest), nil
	}

	config, err := s.Config.LoadOrInit()
	if err != nil {
		return nil, err
	}
	if config.BtcDepositAddress == nil || *config.BtcDepositAddress == "" {
		return common.NewErrorResponse("BTC deposit address is not configured. Please contact support.",
			common.CodeValidation, http.StatusBadRequest), nil
	}
	btcAddress := *config.BtcDepositAddress

	var purchase models.TcGoldPurchase
	var trx models.Transaction

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		wallet, err := getOrCreateWallet(tx, data.UserId)
		if err != nil {
			return err
		}

		// Keep the wallet's displayed deposit address in sync with config.
		if wallet.BtcDepositAddress == nil || *wallet.BtcDepositAddress != btcAddress {
			if err := tx.Model(&models.Wallet{}).
				Where("id = ?", wallet.ID).
				Update("btc_deposit_address", btcAddress).Error; err != nil {
				return err
			}
		}

		purchase = models.TcGoldPurchase{
			UserId:        data.UserId,
			TcgAmount:     data.TcgAmount,
			UsdValueCents: PurchaseUsdCents(data.TcgAmount),
			BtcAddress:    btcAddress,
			Status:        models.PurchasePending,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		trx = models.Transaction{
			UserId:      data.UserId,
			WalletId:    &wallet.ID,
			Reference:   common.NewReference(),
			Type:        models.TrxTcGoldPurchase,
			Amount:      data.TcgAmount,
			Status:      models.TrxPending,
			Description: fmt.Sprintf("TCGold purchase request for %d TCG via BTC", data.TcgAmount),
			PurchaseId:  &purchase.ID,
		}
		return tx.Create(&trx).Error
	})
	if err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"purchase":    purchase,
		"transaction": trx,
		"tcgUsdCents": int64(TcGoldUsdCents),
	}, "TCGold purchase request created"), nil
}

type AdminListPurchasesDTO struct {
	Status string
	Page   int
	Limit  int
}

func (s *PurchaseService) AdminList(data AdminListPurchasesDTO) (interface{}, error) {
	status := data.Status
	if status == "" {
		status = models.PurchasePending
	}
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	page := data.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.TcGoldPurchase{}).Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var purchases []models.TcGoldPurchase
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&purchases).Error; err != nil {
		return nil, err
	}

	return common.PaginateResponse(purchases, total, page, limit, "TCGold purchases fetched"), nil
}

// Confirm credits the buyer's TCGold balance exactly once. The PENDING
// predicate on the transition is what makes repeated confirms safe.
func (s *PurchaseService) Confirm(purchaseId int, btcTxId string) (interface{}, error) {
	var purchase models.TcGoldPurchase
	var wallet *models.Wallet
	var abort common.ErrorResponse

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&purchase, purchaseId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abort = common.NewErrorResponse("Purchase not found.",
					common.CodeNotFound, http.StatusNotFound)
				return errAborted
			}
			return err
		}

		updates := map[string]interface{}{"status": models.PurchaseConfirmed}
		if btcTxId != "" {
			updates["btc_tx_id"] = btcTxId
		}
		res := tx.Model(&models.TcGoldPurchase{}).
			Where("id = ? AND status = ?", purchaseId, models.PurchasePending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			abort = common.NewErrorResponse("Only PENDING purchases can be updated.",
				common.CodeInvalidState, http.StatusConflict)
			return errAborted
		}

		var err error
		wallet, err = getOrCreateWallet(tx, purchase.UserId)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Wallet{}).
			Where("id = ?", wallet.ID).
			UpdateColumn("tc_gold_balance", gorm.Expr("tc_gold_balance + ?", purchase.TcgAmount)).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Transaction{}).
			Where("purchase_id = ?", purchaseId).
			Update("status", models.TrxSuccess).Error; err != nil {
			return err
		}

		if err := tx.First(&purchase, purchaseId).Error; err != nil {
			return err
		}
		return tx.First(wallet, wallet.ID).Error
	})
	if errors.Is(err, errAborted) {
		return abort, nil
	}
	if err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"purchase": purchase,
		"wallet":   wallet,
	}, "TCGold purchase confirmed"), nil
}

// Reject marks the purchase REJECTED. No balance was moved at request time,
// so there is nothing to refund.
func (s *PurchaseService) Reject(purchaseId int, note string) (interface{}, error) {
	var purchase models.TcGoldPurchase
	var abort common.ErrorResponse

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&purchase, purchaseId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abort = common.NewErrorResponse("Purchase not found.",
					common.CodeNotFound, http.StatusNotFound)
				return errAborted
			}
			return err
		}

		res := tx.Model(&models.TcGoldPurchase{}).
			Where("id = ? AND status = ?", purchaseId, models.PurchasePending).
			Update("status", models.PurchaseRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			abort = common.NewErrorResponse("Only PENDING purchases can be updated.",
				common.CodeInvalidState, http.StatusConflict)
			return errAborted
		}

		updates := map[string]interface{}{"status": models.TrxFailed}
		if note != "" {
			updates["admin_note"] = note
		}
		if err := tx.Model(&models.Transaction{}).
			Where("purchase_id = ?", purchaseId).
			Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&purchase, purchaseId).Error
	})
	if errors.Is(err, errAborted) {
		return abort, nil
	}
	if err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{"purchase": purchase}, "TCGold purchase rejected"), nil
}
