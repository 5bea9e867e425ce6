package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"transportcoin-service/internal/consumers"
)

// Task Types
const (
	TypePayoutDispatch = "payout-dispatch"
)

// Task Creators

func NewPayoutDispatchTask(payload consumers.PayoutDispatchDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePayoutDispatch, data), nil
}
