package services

import (
	"testing"

	"transportcoin-service/internal/models"
	"transportcoin-service/pkg/common"
)

func TestConfigLazyDefaults(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewConfigService(testDB)

	config, err := svc.LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit failed: %v", err)
	}

	if config.ID != models.PlatformConfigId {
		t.Errorf("Expected singleton id %d, got %d", models.PlatformConfigId, config.ID)
	}
	if config.WithdrawalDelayDays != models.DefaultWithdrawalDelayDays {
		t.Errorf("Expected default delay %d, got %d", models.DefaultWithdrawalDelayDays, config.WithdrawalDelayDays)
	}
	if config.BtcDepositAddress != nil {
		t.Errorf("Expected no BTC address by default, got %v", *config.BtcDepositAddress)
	}

	var count int64
	testDB.Model(&models.PlatformConfig{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one config row, got %d", count)
	}
}

func TestConfigUpdate(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewConfigService(testDB)

	delay := 7
	address := "  bc1qplatform  "
	res, err := svc.Update(UpdateConfigDTO{
		WithdrawalDelayDays: &delay,
		BtcDepositAddress:   &address,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, ok := res.(common.SuccessResponse); !ok {
		t.Fatalf("Expected success, got %+v", res)
	}

	config, _ := svc.LoadOrInit()
	if config.WithdrawalDelayDays != 7 {
		t.Errorf("Expected delay 7, got %d", config.WithdrawalDelayDays)
	}
	if config.BtcDepositAddress == nil || *config.BtcDepositAddress != "bc1qplatform" {
		t.Errorf("Expected trimmed address, got %+v", config.BtcDepositAddress)
	}
}

func TestConfigUpdateRejectsBadDelay(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewConfigService(testDB)

	delay := 0
	res, err := svc.Update(UpdateConfigDTO{WithdrawalDelayDays: &delay})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	errRes, ok := res.(common.ErrorResponse)
	if !ok || errRes.Code != common.CodeValidation {
		t.Errorf("Expected VALIDATION_ERROR, got %+v", res)
	}
}
