package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/diyath7/small-shop-system/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueLowStock = "jobs:low-stock"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// LowStockAlert is enqueued after a committed sale leaves a product at or
// below its reorder level.
type LowStockAlert struct {
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	Remaining    int    `json:"remaining"`
	ReorderLevel int    `json:"reorder_level"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueLowStockAlert pushes a reorder notification job to Redis.
func (d *Dispatcher) EnqueueLowStockAlert(ctx context.Context, alert LowStockAlert) error {
	if d.rdb == nil {
		return nil
	}
	data, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	job := Job{Type: "low-stock", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueLowStock, encoded).Err()
}

// Pool consumes alert jobs and mails them to the configured address.
type Pool struct {
	rdb     *redis.Client
	mailer  *infra.Mailer
	alertTo string
}

func NewPool(rdb *redis.Client, mailer *infra.Mailer, alertTo string) *Pool {
	return &Pool{rdb: rdb, mailer: mailer, alertTo: alertTo}
}

// Start launches numWorkers goroutines consuming the alert queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, QueueLowStock).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.handle(ctx, []byte(result[1]))
		}
	}
}

func (p *Pool) handle(_ context.Context, raw []byte) {
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Err(err).Msg("worker: malformed job envelope")
		return
	}
	switch job.Type {
	case "low-stock":
		var alert LowStockAlert
		if err := json.Unmarshal(job.Payload, &alert); err != nil {
			log.Error().Err(err).Msg("worker: malformed low-stock payload")
			return
		}
		if p.alertTo == "" {
			return
		}
		if err := p.mailer.SendLowStockAlert(p.alertTo, alert.ProductName, alert.Remaining, alert.ReorderLevel); err != nil {
			log.Error().Err(err).
				Uint("product_id", alert.ProductID).
				Msg("worker: low-stock alert email failed")
			return
		}
		log.Info().
			Uint("product_id", alert.ProductID).
			Int("remaining", alert.Remaining).
			Msg("low-stock alert sent")
	default:
		log.Warn().Str("type", job.Type).Msg("worker: unknown job type")
	}
}
