package cache

import (
	"context"
	"fmt"
	"time"

	"OnDuty/storage/redis"
)

const (
	// 自动标记批次与消息处理的幂等标记
	autoMarkRunPrefix      = "automark:run"
	casualCreditPrefix     = "balance:casual_credit"
	messageProcessedPrefix = "message:processed"

	runTTL       = 48 * time.Hour
	processedTTL = 48 * time.Hour
)

// IsAutoMarkDone 检查指定日期的自动标记批次是否已完成
func IsAutoMarkDone(ctx context.Context, date string) (bool, error) {
	key := redis.Key(autoMarkRunPrefix, date)
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check auto-mark run status: %w", err)
	}
	return result > 0, nil
}

// MarkAutoMarkDone 标记指定日期的自动标记批次已完成
func MarkAutoMarkDone(ctx context.Context, date string) error {
	key := redis.Key(autoMarkRunPrefix, date)
	return redis.Client().Set(ctx, key, "1", runTTL).Err()
}

// UnmarkAutoMarkDone 清除批次完成标记（用于重跑）
func UnmarkAutoMarkDone(ctx context.Context, date string) error {
	key := redis.Key(autoMarkRunPrefix, date)
	return redis.Client().Del(ctx, key).Err()
}

// IsCasualCreditDone 检查指定年月的事假发放批次是否已完成
func IsCasualCreditDone(ctx context.Context, year, month int) (bool, error) {
	key := redis.Key(casualCreditPrefix, fmt.Sprintf("%d-%02d", year, month))
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check casual credit status: %w", err)
	}
	return result > 0, nil
}

// MarkCasualCreditDone 标记指定年月的事假发放批次已完成
// 数据库层的 lastCasualCreditMonth 哨兵仍然兜底，这里只是减少重复扫描
func MarkCasualCreditDone(ctx context.Context, year, month int) error {
	key := redis.Key(casualCreditPrefix, fmt.Sprintf("%d-%02d", year, month))
	return redis.Client().Set(ctx, key, "1", 35*24*time.Hour).Err()
}

// TryMarkMessageProcessing 尝试原子性地标记消息正在处理（使用 SETNX）
// 返回 true 表示成功标记（首次处理），false 表示已被标记（重复消息或正在处理）
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}

	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}

// UnmarkMessageProcessing 取消消息处理标记（处理失败时调用，允许重试）
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// MarkMessageProcessed 标记消息已处理（处理成功时调用，延长 TTL）
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}
	return redis.Client().Set(ctx, key, "completed", ttl).Err()
}
