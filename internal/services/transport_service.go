package services

import (
	"net/http"

	"gorm.io/gorm"

	"transportcoin-service/internal/models"
	"transportcoin-service/pkg/common"
)

// TransportService owns the append-only activity log. Events describe
// transport work (routes driven, fuel bought) and may carry reward amounts,
// but they never credit wallets themselves.
type TransportService struct {
	DB *gorm.DB
}

func NewTransportService(db *gorm.DB) *TransportService {
	return &TransportService{DB: db}
}

func (s *TransportService) ListForUser(userId int) (interface{}, error) {
	var events []models.TransportEvent
	if err := s.DB.Where("user_id = ?", userId).
		Order("created_at DESC").Limit(100).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return common.NewSuccessResponse(map[string]interface{}{"events": events}, "Events fetched"), nil
}

type AdminCreateEventDTO struct {
	UserId           int
	Type             string
	Label            string
	Route            *string
	VehicleId        *string
	Location         *string
	AmountFuelLitres *int64
	AmountTcn        *int64
	AmountTcg        *int64
}

func (s *TransportService) AdminCreate(data AdminCreateEventDTO) (interface{}, error) {
	if data.UserId <= 0 || data.Type == "" || data.Label == "" {
		return common.NewErrorResponse("userId, type and label are required.",
			common.CodeValidation, http.StatusBadRequest), nil
	}

	event := models.TransportEvent{
		UserId:           data.UserId,
		Type:             data.Type,
		Label:            data.Label,
		Route:            data.Route,
		VehicleId:        data.VehicleId,
		Location:         data.Location,
		AmountFuelLitres: data.AmountFuelLitres,
		AmountTcn:        data.AmountTcn,
		AmountTcg:        data.AmountTcg,
	}
	if err := s.DB.Create(&event).Error; err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{"event": event}, "Event created"), nil
}

func (s *TransportService) AdminList(userId int) (interface{}, error) {
	query := s.DB.Model(&models.TransportEvent{})
	if userId > 0 {
		query = query.Where("user_id = ?", userId)
	}

	var events []models.TransportEvent
	if err := query.Order("created_at DESC").Limit(100).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return common.NewSuccessResponse(map[string]interface{}{"events": events}, "Events fetched"), nil
}
