package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"transportcoin-service/internal/consumers"
)

type Worker struct {
	Processor *consumers.PayoutProcessor
}

func NewWorker(processor *consumers.PayoutProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandlePayoutDispatch(ctx context.Context, t *asynq.Task) error {
	var p consumers.PayoutDispatchDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	w.Processor.ProcessPayoutDispatch(p)
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.PayoutProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypePayoutDispatch, worker.HandlePayoutDispatch)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
