package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/absensi-backend/internal/config"
	"github.com/stemsi/absensi-backend/internal/model"
)

// EventPublisher fans attendance events out to live listeners and the audit trail.
type EventPublisher interface {
	Publish(ctx context.Context, e model.AttendanceEvent) error
}

// RedisEventPublisher publishes on the events channel and, when auditing is
// enabled, queues the event for the audit worker. Both happen in one pipeline.
type RedisEventPublisher struct {
	rdb   *redis.Client
	audit bool
}

// NewRedisEventPublisher creates a new RedisEventPublisher.
func NewRedisEventPublisher(rdb *redis.Client, audit bool) *RedisEventPublisher {
	return &RedisEventPublisher{rdb: rdb, audit: audit}
}

// Publish implements EventPublisher.
func (p *RedisEventPublisher) Publish(ctx context.Context, e model.AttendanceEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pipe := p.rdb.Pipeline()
	pipe.Publish(ctx, config.RedisKey.EventsChannel, data)
	if p.audit {
		pipe.RPush(ctx, config.RedisKey.AuditQueue, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, model.AttendanceEvent) error { return nil }
