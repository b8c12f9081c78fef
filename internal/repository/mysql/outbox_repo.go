package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Bitta/internal/model"

	"gorm.io/gorm"
)

// MaxOutboxRetry 超过次数的事件不再投递，留给人工处理
const MaxOutboxRetry = 5

type OutboxRepository struct {
	DB *gorm.DB
}

// Append 写 outbox 事件；在事务 context 中调用时与业务写入一起提交
func (r *OutboxRepository) Append(ctx context.Context, eventType, aggregateType string, aggregateID uint64, data any) error {
	payload, err := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"event":      eventType,
		"id":         aggregateID,
		"data":       data,
	})
	if err != nil {
		return err
	}
	return conn(ctx, r.DB).Create(&model.Outbox{
		EventType:     eventType,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Payload:       string(payload),
		Status:        model.OutboxPending,
	}).Error
}

// List 查询待投递和可重试的事件
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.Outbox, error) {
	var list []model.Outbox
	if err := conn(ctx, r.DB).
		Where("status IN ? AND retry < ?", []int8{model.OutboxPending, model.OutboxFailed}, MaxOutboxRetry).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败，记录重试次数
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return conn(ctx, r.DB).Model(&model.Outbox{}).Where("id=?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return conn(ctx, r.DB).Model(&model.Outbox{}).Where("id=?", id).
		Update("status", model.OutboxSent).Error
}
