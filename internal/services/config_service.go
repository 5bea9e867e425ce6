package services

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"transportcoin-service/internal/models"
	"transportcoin-service/pkg/common"
)

// ConfigService owns the PlatformConfig singleton. Readers always go through
// LoadOrInit so a missing row never bubbles up as an error.
type ConfigService struct {
	DB *gorm.DB
}

func NewConfigService(db *gorm.DB) *ConfigService {
	return &ConfigService{DB: db}
}

// LoadOrInit returns the singleton config row, creating it with defaults on
// first access.
func (s *ConfigService) LoadOrInit() (*models.PlatformConfig, error) {
	var config models.PlatformConfig
	err := s.DB.First(&config, models.PlatformConfigId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		config = models.PlatformConfig{
			ID:                  models.PlatformConfigId,
			WithdrawalDelayDays: models.DefaultWithdrawalDelayDays,
		}
		if err := s.DB.Create(&config).Error; err != nil {
			return nil, err
		}
		return &config, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (s *ConfigService) Get() (interface{}, error) {
	config, err := s.LoadOrInit()
	if err != nil {
		return nil, err
	}
	return common.NewSuccessResponse(map[string]interface{}{"config": config}, "Config fetched"), nil
}

type UpdateConfigDTO struct {
	WithdrawalDelayDays *int
	BtcDepositAddress   *string
}

func (s *ConfigService) Update(data UpdateConfigDTO) (interface{}, error) {
	config, err := s.LoadOrInit()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if data.WithdrawalDelayDays != nil {
		if *data.WithdrawalDelayDays <= 0 {
			return common.NewErrorResponse("withdrawalDelayDays must be a positive integer.",
				common.CodeValidation, http.StatusBadRequest), nil
		}
		updates["withdrawal_delay_days"] = *data.WithdrawalDelayDays
	}
	if data.BtcDepositAddress != nil {
		updates["btc_deposit_address"] = strings.TrimSpace(*data.BtcDepositAddress)
	}

	if len(updates) > 0 {
		if err := s.DB.Model(config).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := s.DB.First(config, models.PlatformConfigId).Error; err != nil {
			return nil, err
		}
	}

	return common.NewSuccessResponse(map[string]interface{}{"config": config}, "Config updated"), nil
}
