package services

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"transportcoin-service/internal/models"
	"transportcoin-service/pkg/common"
)

// errAborted signals a business-rule rollback inside a DB transaction. The
// caller returns the prepared error envelope instead of surfacing it.
var errAborted = errors.New("operation aborted")

type WalletService struct {
	DB *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{DB: db}
}

// getOrCreateWallet loads the user's wallet, creating an empty one on first
// touch.
func getOrCreateWallet(tx *gorm.DB, userId int) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Where(models.Wallet{UserId: userId}).FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

type DepositDTO struct {
	UserId      int
	Amount      int64
	Description string
}

func (s *WalletService) Deposit(data DepositDTO) (interface{}, error) {
	if !validLedgerAmount(data.Amount) {
		return common.NewErrorResponse("Amount must be a positive integer TCN value within the supported range.",
			common.CodeValidation, http.StatusBadRequest), nil
	}

	description := data.Description
	if description == "" {
		description = "Manual Transportcoin deposit into TCN balance."
	}

	var wallet *models.Wallet
	var trx models.Transaction

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, err = getOrCreateWallet(tx, data.UserId)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Wallet{}).
			Where("id = ?", wallet.ID).
			UpdateColumn("tcn_balance", gorm.Expr("tcn_balance + ?", data.Amount)).Error; err != nil {
			return err
		}

		trx = models.Transaction{
			UserId:      data.UserId,
			WalletId:    &wallet.ID,
			Reference:   common.NewReference(),
			Type:        models.TrxDeposit,
			Amount:      data.Amount,
			Status:      models.TrxSuccess,
			Description: description,
		}
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		return tx.First(wallet, wallet.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"wallet":      wallet,
		"transaction": trx,
	}, "Deposit successful"), nil
}

// Summary returns the wallet (created lazily) and the latest ledger entries.
func (s *WalletService) Summary(userId int) (interface{}, error) {
	wallet, err := getOrCreateWallet(s.DB, userId)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.DB.Where("user_id = ?", userId).
		Order("created_at DESC").Limit(20).
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"wallet":       wallet,
		"transactions": transactions,
	}, "Wallet fetched"), nil
}

type TradeDTO struct {
	UserId int
	Amount int64 // TCGold units
}

// BuyTcGold swaps TCN for TCGold at the fixed internal rate in one atomic
// update. The balance predicate on the UPDATE is the authoritative funds
// check; a stale pre-read can never oversell.
func (s *WalletService) BuyTcGold(data TradeDTO) (interface{}, error) {
	if !validLedgerAmount(data.Amount) {
		return common.NewErrorResponse("Amount must be a positive integer number of TCGold tokens within the supported range.",
			common.CodeValidation, http.StatusBadRequest), nil
	}

	costTcn := data.Amount * TcnPerTcGold

	var wallet *models.Wallet
	var trx models.Transaction
	var abort common.ErrorResponse

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, err = getOrCreateWallet(tx, data.UserId)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND tcn_balance >= ?", wallet.ID, costTcn).
			Updates(map[string]interface{}{
				"tcn_balance":     gorm.Expr("tcn_balance - ?", costTcn),
				"tc_gold_balance": gorm.Expr("tc_gold_balance + ?", data.Amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			abort = common.NewErrorResponseWithData("Insufficient TCN balance.",
				common.CodeInsufficientFunds, http.StatusBadRequest, map[string]int64{
					"required": costTcn,
					"current":  wallet.TcnBalance,
				})
			return errAborted
		}

		trx = models.Transaction{
			UserId:      data.UserId,
			WalletId:    &wallet.ID,
			Reference:   common.NewReference(),
			Type:        models.TrxBuyTcGold,
			Amount:      data.Amount,
			Status:      models.TrxSuccess,
			Description: fmt.Sprintf("Bought %d TCG for %d TCN", data.Amount, costTcn),
		}
		if err := tx.Create(&trx).Error; err != nil {
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
		"wallet":      wallet,
		"transaction": trx,
	}, "TCGold purchased"), nil
}

// SellTcGold is the inverse swap at the same fixed rate.
func (s *WalletService) SellTcGold(data TradeDTO) (interface{}, error) {
	if !validLedgerAmount(data.Amount) {
		return common.NewErrorResponse("Amount must be a positive integer number of TCGold tokens within the supported range.",
			common.CodeValidation, http.StatusBadRequest), nil
	}

	creditTcn := data.Amount * TcnPerTcGold

	var wallet *models.Wallet
	var trx models.Transaction
	var abort common.ErrorResponse

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, err = getOrCreateWallet(tx, data.UserId)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND tc_gold_balance >= ?", wallet.ID, data.Amount).
			Updates(map[string]interface{}{
				"tc_gold_balance": gorm.Expr("tc_gold_balance - ?", data.Amount),
				"tcn_balance":     gorm.Expr("tcn_balance + ?", creditTcn),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			abort = common.NewErrorResponseWithData("Insufficient TCGold balance.",
				common.CodeInsufficientFunds, http.StatusBadRequest, map[string]int64{
					"required": data.Amount,
					"current":  wallet.TcGoldBalance,
				})
			return errAborted
		}

		trx = models.Transaction{
			UserId:      data.UserId,
			WalletId:    &wallet.ID,
			Reference:   common.NewReference(),
			Type:        models.TrxSellTcGold,
			Amount:      data.Amount,
			Status:      models.TrxSuccess,
			Description: fmt.Sprintf("Sold %d TCG for %d TCN", data.Amount, creditTcn),
		}
		if err := tx.Create(&trx).Error; err != nil {
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
		"wallet":      wallet,
		"transaction": trx,
	}, "TCGold sold"), nil
}
