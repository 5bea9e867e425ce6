package services

import (
	"testing"

	"transportcoin-service/internal/models"
	"transportcoin-service/pkg/common"
)

func setBtcAddress(t *testing.T, address string) {
	t.Helper()
	config := NewConfigService(testDB)
	if _, err := config.Update(UpdateConfigDTO{BtcDepositAddress: &address}); err != nil {
		t.Fatalf("failed to set BTC address: %v", err)
	}
}

func TestPurchaseRequiresConfiguredAddress(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPurchaseService(testDB, NewConfigService(testDB))

	res, err := svc.Request(PurchaseRequestDTO{UserId: 301, TcgAmount: 10})
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	errRes, ok := res.(common.ErrorResponse)
	if !ok || errRes.Code != common.CodeValidation {
		t.Fatalf("Expected VALIDATION_ERROR without BTC address, got %+v", res)
	}
}

func TestPurchaseRequestRecordsUsdValue(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	setBtcAddress(t, "bc1qplatform")
	svc := NewPurchaseService(testDB, NewConfigService(testDB))

	res, err := svc.Request(PurchaseRequestDTO{UserId: 302, TcgAmount: 10})
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if _, ok := res.(common.SuccessResponse); !ok {
		t.Fatalf("Expected success, got %+v", res)
	}

	var purchase models.TcGoldPurchase
	testDB.Where("user_id = ?", 302).First(&purchase)
	if purchase.UsdValueCents != 2500 {
		t.Errorf("Expected 2500 cents for 10 TCG, got %d", purchase.UsdValueCents)
	}
	if purchase.Status != models.PurchasePending {
		t.Errorf("Expected PENDING, got %s", purchase.Status)
	}
	if purchase.BtcAddress != "bc1qplatform" {
		t.Errorf("Expected platform BTC address, got %s", purchase.BtcAddress)
	}

	var trx models.Transaction
	testDB.Where("purchase_id = ?", purchase.ID).First(&trx)
	if trx.Status != models.TrxPending || trx.Type != models.TrxTcGoldPurchase {
		t.Errorf("Expected PENDING TCG_PURCHASE transaction, got %s/%s", trx.Type, trx.Status)
	}

	// No TCGold is credited before confirmation.
	var wallet models.Wallet
	testDB.Where("user_id = ?", 302).First(&wallet)
	if wallet.TcGoldBalance != 0 {
		t.Errorf("TCGold must not be credited yet, got %d", wallet.TcGoldBalance)
	}
}

func TestConfirmCreditsExactlyOnce(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	setBtcAddress(t, "bc1qplatform")
	svc := NewPurchaseService(testDB, NewConfigService(testDB))
	svc.Request(PurchaseRequestDTO{UserId: 303, TcgAmount: 10})

	var purchase models.TcGoldPurchase
	testDB.Where("user_id = ?", 303).First(&purchase)

	res, err := svc.Confirm(purchase.ID, "txid-abc")
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if _, ok := res.(common.SuccessResponse); !ok {
		t.Fatalf("Expected success, got %+v", res)
	}

	var wallet models.Wallet
	testDB.Where("user_id = ?", 303).First(&wallet)
	if wallet.TcGoldBalance != 10 {
		t.Errorf("Expected 10 TCG credited, got %d", wallet.TcGoldBalance)
	}

	testDB.First(&purchase, purchase.ID)
	if purchase.Status != models.PurchaseConfirmed {
		t.Errorf("Expected CONFIRMED, got %s", purchase.Status)
	}
	if purchase.BtcTxId == nil || *purchase.BtcTxId != "txid-abc" {
		t.Errorf("Expected recorded BTC txid, got %+v", purchase.BtcTxId)
	}

	var trx models.Transaction
	testDB.Where("purchase_id = ?", purchase.ID).First(&trx)
	if trx.Status != models.TrxSuccess {
		t.Errorf("Expected SUCCESS transaction, got %s", trx.Status)
	}

	// Second confirm must not credit again.
	res, err = svc.Confirm(purchase.ID, "txid-abc")
	if err != nil {
		t.Fatalf("Second Confirm failed: %v", err)
	}
	errRes, ok := res.(common.ErrorResponse)
	if !ok || errRes.Code != common.CodeInvalidState {
		t.Fatalf("Expected INVALID_STATE, got %+v", res)
	}

	testDB.Where("user_id = ?", 303).First(&wallet)
	if wallet.TcGoldBalance != 10 {
		t.Errorf("TCGold must not be double-credited, got %d", wallet.TcGoldBalance)
	}
}

func TestRejectPurchaseNeverCredits(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	setBtcAddress(t, "bc1qplatform")
	svc := NewPurchaseService(testDB, NewConfigService(testDB))
	svc.Request(PurchaseRequestDTO{UserId: 304, TcgAmount: 5})

	var purchase models.TcGoldPurchase
	testDB.Where("user_id = ?", 304).First(&purchase)

	res, err := svc.Reject(purchase.ID, "no payment received")
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if _, ok := res.(common.SuccessResponse); !ok {
		t.Fatalf("Expected success, got %+v", res)
	}

	var wallet models.Wallet
	testDB.Where("user_id = ?", 304).First(&wallet)
	if wallet.TcGoldBalance != 0 {
		t.Errorf("Rejected purchase must not credit, got %d", wallet.TcGoldBalance)
	}

	var trx models.Transaction
	testDB.Where("purchase_id = ?", purchase.ID).First(&trx)
	if trx.Status != models.TrxFailed {
		t.Errorf("Expected FAILED transaction, got %s", trx.Status)
	}
	if trx.AdminNote == nil || *trx.AdminNote != "no payment received" {
		t.Errorf("Expected admin note, got %+v", trx.AdminNote)
	}
}
