package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"transportcoin-service/internal/models"
	"transportcoin-service/pkg/common"
)

// Task type for the payout worker (mirrored in consumers to avoid an import
// cycle).
const TypePayoutDispatch = "payout-dispatch"

type PayoutDispatchPayload struct {
	WithdrawalId int    `json:"withdrawalId"`
	UserId       int    `json:"userId"`
	AmountTcn    int64  `json:"amountTcn"`
	Asset        string `json:"asset"`
	Network      string `json:"network"`
	Address      string `json:"address"`
}

// TaskEnqueuer is the part of asynq.Client the service needs to hand
// approved withdrawals to the payout worker.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type WithdrawalService struct {
	DB     *gorm.DB
	Config *ConfigService
	Tasks  TaskEnqueuer // nil disables payout dispatch
}

func NewWithdrawalService(db *gorm.DB, config *ConfigService, tasks TaskEnqueuer) *WithdrawalService {
	return &WithdrawalService{DB: db, Config: config, Tasks: tasks}
}

type WithdrawCryptoDTO struct {
	UserId  int
	Amount  int64
	Asset   string
	Network string
	Address string
}

// RequestCryptoWithdrawal debits the TCN amount, records the withdrawal
// request with its linked audit row, and opens a support thread, all in one
// database transaction. The TCGold hold is a requirement to submit, not a
// debit: the held tokens are never spent.
func (s *WithdrawalService) RequestCryptoWithdrawal(data WithdrawCryptoDTO) (interface{}, error) {
	if !validLedgerAmount(data.Amount) {
		return common.NewErrorResponse("Amount must be a positive integer TCN value within the supported range.",
			common.CodeValidation, http.StatusBadRequest), nil
	}
	address := strings.TrimSpace(data.Address)
	if address == "" {
		return common.NewErrorResponse("Destination address is required.",
			common.CodeValidation, http.StatusBadRequest), nil
	}
	asset := data.Asset
	if asset == "" {
		asset = "TCN"
	}
	network := data.Network
	if network == "" {
		network = "INTERNAL"
	}

	var wallet *models.Wallet
	var withdrawal models.WithdrawalRequest
	var trx models.Transaction
	var thread models.SupportThread
	var abort common.ErrorResponse

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, err = getOrCreateWallet(tx, data.UserId)
		if err != nil {
			return err
		}

		hold := RequiredHold(data.Amount)
		if wallet.TcGoldBalance < hold {
			abort = common.NewErrorResponseWithData(
				fmt.Sprintf("Insufficient TCGold. You need %d TCG held to withdraw %d TCN.", hold, data.Amount),
				common.CodeInsufficientTcGold, http.StatusBadRequest, map[string]int64{
					"required": hold,
					"current":  wallet.TcGoldBalance,
				})
			return errAborted
		}

		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND tcn_balance >= ?", wallet.ID, data.Amount).
			UpdateColumn("tcn_balance", gorm.Expr("tcn_balance - ?", data.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			abort = common.NewErrorResponseWithData("Insufficient TCN balance.",
				common.CodeInsufficientFunds, http.StatusBadRequest, map[string]int64{
					"required": data.Amount,
					"current":  wallet.TcnBalance,
				})
			return errAborted
		}

		withdrawal = models.WithdrawalRequest{
			UserId:    data.UserId,
			Asset:     asset,
			Network:   network,
			Address:   address,
			AmountTcn: data.Amount,
			Status:    models.WithdrawalPending,
		}
		if err := tx.Create(&withdrawal).Error; err != nil {
			return err
		}

		trx = models.Transaction{
			UserId:              data.UserId,
			WalletId:            &wallet.ID,
			Reference:           common.NewReference(),
			Type:                models.TrxWithdrawCryptoReq,
			Amount:              data.Amount,
			Status:              models.TrxPending,
			Description:         fmt.Sprintf("Withdraw %d TCN as %s on %s", data.Amount, asset, network),
			WithdrawalRequestId: &withdrawal.ID,
		}
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		thread = models.SupportThread{
			UserId:              data.UserId,
			WithdrawalRequestId: &withdrawal.ID,
			Status:              models.ThreadOpen,
		}
		if err := tx.Create(&thread).Error; err != nil {
			return err
		}
		opening := models.SupportMessage{
			ThreadId: thread.ID,
			Sender:   models.SenderUser,
			Body:     fmt.Sprintf("Withdrawal request #%d submitted for %d TCN (%s / %s).", withdrawal.ID, data.Amount, asset, network),
		}
		if err := tx.Create(&opening).Error; err != nil {
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
		"withdrawal":  withdrawal,
		"transaction": trx,
		"threadId":    thread.ID,
	}, "Withdrawal request created"), nil
}

func (s *WithdrawalService) ListForUser(userId int) (interface{}, error) {
	var withdrawals []models.WithdrawalRequest
	if err := s.DB.Where("user_id = ?", userId).
		Order("created_at DESC").Limit(30).
		Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return common.NewSuccessResponse(map[string]interface{}{"withdrawals": withdrawals}, "Withdrawals fetched"), nil
}

// Meta returns the informational SLA plus the user's pending request count.
func (s *WithdrawalService) Meta(userId int) (interface{}, error) {
	config, err := s.Config.LoadOrInit()
	if err != nil {
		return nil, err
	}

	var pendingCount int64
	if err := s.DB.Model(&models.WithdrawalRequest{}).
		Where("user_id = ? AND status = ?", userId, models.WithdrawalPending).
		Count(&pendingCount).Error; err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"slaDays":      config.WithdrawalDelayDays,
		"pendingCount": pendingCount,
	}, "Withdrawal meta fetched"), nil
}

type AdminListWithdrawalsDTO struct {
	Status string
	Page   int
	Limit  int
}

func (s *WithdrawalService) AdminList(data AdminListWithdrawalsDTO) (interface{}, error) {
	status := data.Status
	if status == "" {
		status = models.WithdrawalPending
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

	query := s.DB.Model(&models.WithdrawalRequest{}).Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var withdrawals []models.WithdrawalRequest
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&withdrawals).Error; err != nil {
		return nil, err
	}

	return common.PaginateResponse(withdrawals, total, page, limit, "Withdrawal requests fetched"), nil
}

// Approve moves a PENDING request to COMPLETED and marks its linked audit
// rows SUCCESS. No balance change: the funds left the wallet at request time.
// The transition predicate makes concurrent approve/reject lose cleanly.
func (s *WithdrawalService) Approve(withdrawalId int) (interface{}, error) {
	var withdrawal models.WithdrawalRequest
	var abort common.ErrorResponse

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&withdrawal, withdrawalId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abort = common.NewErrorResponse("Withdrawal not found.",
					common.CodeNotFound, http.StatusNotFound)
				return errAborted
			}
			return err
		}

		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", withdrawalId, models.WithdrawalPending).
			Update("status", models.WithdrawalCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			abort = common.NewErrorResponse(fmt.Sprintf("Withdrawal is already %s.", withdrawal.Status),
				common.CodeInvalidState, http.StatusConflict)
			return errAborted
		}

		if err := tx.Model(&models.Transaction{}).
			Where("withdrawal_request_id = ?", withdrawalId).
			Update("status", models.TrxSuccess).Error; err != nil {
			return err
		}

		return tx.First(&withdrawal, withdrawalId).Error
	})
	if errors.Is(err, errAborted) {
		return abort, nil
	}
	if err != nil {
		return nil, err
	}

	s.dispatchPayout(withdrawal)

	return common.NewSuccessResponse(map[string]interface{}{"withdrawal": withdrawal}, "Withdrawal approved"), nil
}

// dispatchPayout hands the approved request to the payout worker. Enqueue
// failures are logged, not surfaced: the ledger transition already committed.
func (s *WithdrawalService) dispatchPayout(withdrawal models.WithdrawalRequest) {
	if s.Tasks == nil {
		return
	}
	payload, err := json.Marshal(PayoutDispatchPayload{
		WithdrawalId: withdrawal.ID,
		UserId:       withdrawal.UserId,
		AmountTcn:    withdrawal.AmountTcn,
		Asset:        withdrawal.Asset,
		Network:      withdrawal.Network,
		Address:      withdrawal.Address,
	})
	if err != nil {
		log.WithError(err).Error("failed to build payout dispatch task")
		return
	}
	if _, err := s.Tasks.Enqueue(asynq.NewTask(TypePayoutDispatch, payload)); err != nil {
		log.WithError(err).WithField("withdrawalId", withdrawal.ID).
			Error("failed to enqueue payout dispatch")
	}
}

// Reject moves a PENDING request to REJECTED and refunds the TCN exactly
// once. Transition and refund commit together, so a raced second reject sees
// a non-PENDING row and changes nothing.
func (s *WithdrawalService) Reject(withdrawalId int, note string) (interface{}, error) {
	var withdrawal models.WithdrawalRequest
	var wallet models.Wallet
	var abort common.ErrorResponse

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&withdrawal, withdrawalId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abort = common.NewErrorResponse("Withdrawal not found.",
					common.CodeNotFound, http.StatusNotFound)
				return errAborted
			}
			return err
		}

		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", withdrawalId, models.WithdrawalPending).
			Update("status", models.WithdrawalRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			abort = common.NewErrorResponse(fmt.Sprintf("Withdrawal is already %s.", withdrawal.Status),
				common.CodeInvalidState, http.StatusConflict)
			return errAborted
		}

		if err := tx.Model(&models.Wallet{}).
			Where("user_id = ?", withdrawal.UserId).
			UpdateColumn("tcn_balance", gorm.Expr("tcn_balance + ?", withdrawal.AmountTcn)).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"status": models.TrxFailed}
		if note != "" {
			updates["admin_note"] = note
		}
		if err := tx.Model(&models.Transaction{}).
			Where("withdrawal_request_id = ?", withdrawalId).
			Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.First(&withdrawal, withdrawalId).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", withdrawal.UserId).First(&wallet).Error
	})
	if errors.Is(err, errAborted) {
		return abort, nil
	}
	if err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"withdrawal": withdrawal,
		"wallet":     wallet,
	}, "Withdrawal rejected and refunded"), nil
}
