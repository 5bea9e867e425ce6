package services

import (
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"

	"transportcoin-service/internal/models"
	"transportcoin-service/pkg/common"
)

func newWithdrawalService() *WithdrawalService {
	return NewWithdrawalService(testDB, NewConfigService(testDB), nil)
}

// fakeEnqueuer records tasks instead of talking to Redis.
type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func TestWithdrawRequiresTcGoldHold(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	wallets := NewWalletService(testDB)
	wallets.Deposit(DepositDTO{UserId: 201, Amount: 100000})

	svc := newWithdrawalService()

	// 100000 TCN needs 1000 TCG held; the wallet has none.
	res, err := svc.RequestCryptoWithdrawal(WithdrawCryptoDTO{
		UserId: 201, Amount: 100000, Address: "bc1qexample",
	})
	if err != nil {
		t.Fatalf("RequestCryptoWithdrawal failed: %v", err)
	}

	errRes, ok := res.(common.ErrorResponse)
	if !ok || errRes.Code != common.CodeInsufficientTcGold {
		t.Fatalf("Expected INSUFFICIENT_TCGOLD, got %+v", res)
	}

	var wallet models.Wallet
	testDB.Where("user_id = ?", 201).First(&wallet)
	if wallet.TcnBalance != 100000 {
		t.Errorf("Balance must be unchanged, got %d", wallet.TcnBalance)
	}
	var count int64
	testDB.Model(&models.WithdrawalRequest{}).Where("user_id = ?", 201).Count(&count)
	if count != 0 {
		t.Errorf("No withdrawal row should exist, found %d", count)
	}
}

func TestWithdrawHappyPath(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	wallets := NewWalletService(testDB)
	wallets.Deposit(DepositDTO{UserId: 202, Amount: 100000})
	testDB.Model(&models.Wallet{}).Where("user_id = ?", 202).
		Update("tc_gold_balance", 1000)

	svc := newWithdrawalService()

	res, err := svc.RequestCryptoWithdrawal(WithdrawCryptoDTO{
		UserId: 202, Amount: 100000, Address: "bc1qexample",
	})
	if err != nil {
		t.Fatalf("RequestCryptoWithdrawal failed: %v", err)
	}
	if _, ok := res.(common.SuccessResponse); !ok {
		t.Fatalf("Expected success, got %+v", res)
	}

	var wallet models.Wallet
	testDB.Where("user_id = ?", 202).First(&wallet)
	if wallet.TcnBalance != 0 || wallet.TcGoldBalance != 1000 {
		t.Errorf("Expected {0, 1000}, got {%d, %d}", wallet.TcnBalance, wallet.TcGoldBalance)
	}

	var wr models.WithdrawalRequest
	testDB.Where("user_id = ?", 202).First(&wr)
	if wr.Status != models.WithdrawalPending {
		t.Errorf("Expected PENDING, got %s", wr.Status)
	}
	if wr.Asset != "TCN" || wr.Network != "INTERNAL" {
		t.Errorf("Expected defaults TCN/INTERNAL, got %s/%s", wr.Asset, wr.Network)
	}

	var trx models.Transaction
	testDB.Where("withdrawal_request_id = ?", wr.ID).First(&trx)
	if trx.Status != models.TrxPending {
		t.Errorf("Expected PENDING transaction, got %s", trx.Status)
	}

	var thread models.SupportThread
	if err := testDB.Where("withdrawal_request_id = ?", wr.ID).First(&thread).Error; err != nil {
		t.Fatalf("Expected auto-created support thread: %v", err)
	}
	if thread.Status != models.ThreadOpen {
		t.Errorf("Expected OPEN thread, got %s", thread.Status)
	}
}

func TestRejectRefundsExactlyOnce(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	wallets := NewWalletService(testDB)
	wallets.Deposit(DepositDTO{UserId: 203, Amount: 100000})
	testDB.Model(&models.Wallet{}).Where("user_id = ?", 203).
		Update("tc_gold_balance", 1000)

	svc := newWithdrawalService()
	svc.RequestCryptoWithdrawal(WithdrawCryptoDTO{UserId: 203, Amount: 100000, Address: "bc1qexample"})

	var wr models.WithdrawalRequest
	testDB.Where("user_id = ?", 203).First(&wr)

	res, err := svc.Reject(wr.ID, "suspicious address")
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if _, ok := res.(common.SuccessResponse); !ok {
		t.Fatalf("Expected success, got %+v", res)
	}

	var wallet models.Wallet
	testDB.Where("user_id = ?", 203).First(&wallet)
	if wallet.TcnBalance != 100000 {
		t.Errorf("Expected refund to 100000, got %d", wallet.TcnBalance)
	}

	var trx models.Transaction
	testDB.Where("withdrawal_request_id = ?", wr.ID).First(&trx)
	if trx.Status != models.TrxFailed {
		t.Errorf("Expected FAILED transaction, got %s", trx.Status)
	}
	if trx.AdminNote == nil || *trx.AdminNote != "suspicious address" {
		t.Errorf("Expected admin note on transaction, got %+v", trx.AdminNote)
	}

	// Second reject must not double-credit.
	res, err = svc.Reject(wr.ID, "")
	if err != nil {
		t.Fatalf("Second Reject failed: %v", err)
	}
	errRes, ok := res.(common.ErrorResponse)
	if !ok || errRes.Code != common.CodeInvalidState {
		t.Fatalf("Expected INVALID_STATE, got %+v", res)
	}

	testDB.Where("user_id = ?", 203).First(&wallet)
	if wallet.TcnBalance != 100000 {
		t.Errorf("Balance must not be double-credited, got %d", wallet.TcnBalance)
	}
}

func TestApproveMarksLinkedTransactions(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	wallets := NewWalletService(testDB)
	wallets.Deposit(DepositDTO{UserId: 204, Amount: 500})
	testDB.Model(&models.Wallet{}).Where("user_id = ?", 204).
		Update("tc_gold_balance", 10)

	svc := newWithdrawalService()
	svc.RequestCryptoWithdrawal(WithdrawCryptoDTO{UserId: 204, Amount: 500, Address: "bc1qexample"})

	var wr models.WithdrawalRequest
	testDB.Where("user_id = ?", 204).First(&wr)

	res, err := svc.Approve(wr.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, ok := res.(common.SuccessResponse); !ok {
		t.Fatalf("Expected success, got %+v", res)
	}

	testDB.First(&wr, wr.ID)
	if wr.Status != models.WithdrawalCompleted {
		t.Errorf("Expected COMPLETED, got %s", wr.Status)
	}

	var trx models.Transaction
	testDB.Where("withdrawal_request_id = ?", wr.ID).First(&trx)
	if trx.Status != models.TrxSuccess {
		t.Errorf("Expected SUCCESS transaction, got %s", trx.Status)
	}

	// Approved funds never come back.
	var wallet models.Wallet
	testDB.Where("user_id = ?", 204).First(&wallet)
	if wallet.TcnBalance != 0 {
		t.Errorf("Expected balance 0 after approval, got %d", wallet.TcnBalance)
	}

	// Second approve must fail with a conflict.
	res, err = svc.Approve(wr.ID)
	if err != nil {
		t.Fatalf("Second Approve failed: %v", err)
	}
	errRes, ok := res.(common.ErrorResponse)
	if !ok || errRes.Code != common.CodeInvalidState {
		t.Fatalf("Expected INVALID_STATE, got %+v", res)
	}
}

func TestApproveEnqueuesExactlyOnePayoutTask(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	wallets := NewWalletService(testDB)
	wallets.Deposit(DepositDTO{UserId: 206, Amount: 1000})
	testDB.Model(&models.Wallet{}).Where("user_id = ?", 206).
		Update("tc_gold_balance", 10)

	queue := &fakeEnqueuer{}
	svc := NewWithdrawalService(testDB, NewConfigService(testDB), queue)
	svc.RequestCryptoWithdrawal(WithdrawCryptoDTO{UserId: 206, Amount: 1000, Address: "bc1qexample"})

	var wr models.WithdrawalRequest
	testDB.Where("user_id = ?", 206).First(&wr)

	if _, err := svc.Approve(wr.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	if len(queue.tasks) != 1 {
		t.Fatalf("Expected exactly 1 payout task, got %d", len(queue.tasks))
	}
	task := queue.tasks[0]
	if task.Type() != TypePayoutDispatch {
		t.Errorf("Expected task type %s, got %s", TypePayoutDispatch, task.Type())
	}

	var payload PayoutDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("failed to decode payout payload: %v", err)
	}
	if payload.WithdrawalId != wr.ID || payload.UserId != 206 ||
		payload.AmountTcn != 1000 || payload.Address != "bc1qexample" {
		t.Errorf("Payload does not match approved withdrawal: %+v", payload)
	}

	// A raced second approve fails and must not enqueue again.
	svc.Approve(wr.ID)
	if len(queue.tasks) != 1 {
		t.Errorf("Conflicting approve must not enqueue, got %d tasks", len(queue.tasks))
	}
}

func TestRejectNeverEnqueuesPayout(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	wallets := NewWalletService(testDB)
	wallets.Deposit(DepositDTO{UserId: 207, Amount: 1000})
	testDB.Model(&models.Wallet{}).Where("user_id = ?", 207).
		Update("tc_gold_balance", 10)

	queue := &fakeEnqueuer{}
	svc := NewWithdrawalService(testDB, NewConfigService(testDB), queue)
	svc.RequestCryptoWithdrawal(WithdrawCryptoDTO{UserId: 207, Amount: 1000, Address: "bc1qexample"})

	var wr models.WithdrawalRequest
	testDB.Where("user_id = ?", 207).First(&wr)

	if _, err := svc.Reject(wr.ID, "declined"); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	if len(queue.tasks) != 0 {
		t.Errorf("Reject must not enqueue payout tasks, got %d", len(queue.tasks))
	}
}

func TestWithdrawalMeta(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newWithdrawalService()

	res, err := svc.Meta(205)
	if err != nil {
		t.Fatalf("Meta failed: %v", err)
	}

	success, ok := res.(common.SuccessResponse)
	if !ok {
		t.Fatalf("Expected success, got %+v", res)
	}

	data := success.Data.(map[string]interface{})
	if data["slaDays"] != models.DefaultWithdrawalDelayDays {
		t.Errorf("Expected default SLA %d, got %v", models.DefaultWithdrawalDelayDays, data["slaDays"])
	}
	if data["pendingCount"] != int64(0) {
		t.Errorf("Expected 0 pending, got %v", data["pendingCount"])
	}
}
