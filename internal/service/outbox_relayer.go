package service

import (
	"context"
	"log/slog"
	"time"

	"Bitta/internal/model"
	"Bitta/internal/pkg"
)

type OutboxStore interface {
	List(ctx context.Context, batchSize int) ([]model.Outbox, error)
	RetryUpdate(ctx context.Context, id uint64) error
	SuccessUpdate(ctx context.Context, id uint64) error
}

// Sender 投递一条 outbox 事件
type Sender func(ctx context.Context, ob *model.Outbox) error

// OutboxRelayer 定时把 outbox 表中的事件投递出去
type OutboxRelayer struct {
	repo      OutboxStore
	sender    Sender
	batchSize int
	interval  time.Duration
}

func NewOutboxRelayer(repo OutboxStore, sender Sender, batchSize int, interval time.Duration) *OutboxRelayer {
	if batchSize <= 0 {
		batchSize = 200
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &OutboxRelayer{
		repo:      repo,
		sender:    sender,
		batchSize: batchSize,
		interval:  interval,
	}
}

// Run 阻塞直到 ctx 取消
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

// Start 在后台运行 Run，返回的 stop 取消并等待当前批次结束；
// stop 返回后 sender 不会再被调用
func (r *OutboxRelayer) Start(parent context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) int {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		slog.ErrorContext(ctx, "outbox query failed", "error", err)
		return 0
	}
	sent := 0
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			slog.WarnContext(ctx, "outbox send failed", "id", ob.ID, "event", ob.EventType, "retry", ob.Retry, "error", err)
			if err := r.repo.RetryUpdate(ctx, ob.ID); err != nil {
				slog.ErrorContext(ctx, "outbox retry update failed", "id", ob.ID, "error", err)
			}
			continue
		}
		if err := r.repo.SuccessUpdate(ctx, ob.ID); err != nil {
			slog.ErrorContext(ctx, "outbox success update failed", "id", ob.ID, "error", err)
			continue
		}
		sent++
	}
	return sent
}

// KafkaSender 以聚合 ID 为 key 投递到 kafka
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.Outbox) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.AggregateID), []byte(ob.Payload), map[string]string{
			"event_type":     ob.EventType,
			"aggregate_type": ob.AggregateType,
		})
	}
}

// LogSender 未配置 kafka 时使用，只打印日志
func LogSender(ctx context.Context, ob *model.Outbox) error {
	slog.InfoContext(ctx, "outbox event", "type", ob.EventType, "aggregate", ob.AggregateType, "id", ob.AggregateID, "payload", ob.Payload)
	return nil
}
