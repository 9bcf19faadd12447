package notify

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"OnDuty/config"
	"OnDuty/pkg/logger"
)

// Client 通知投递客户端接口。核心业务只做 fire-and-forget 投递，
// 投递失败不回传到考勤事务。
type Client interface {
	// SendSingle 发送单条通知
	// phone: 手机号
	// signName: 短信签名名称
	// templateCode: 模板代码
	// templateParam: 模板参数（JSON 字符串）
	SendSingle(ctx context.Context, phone, signName, templateCode, templateParam string) error

	// SendBatch 批量发送通知，templateParams 与 phones 一一对应
	SendBatch(ctx context.Context, phones []string, signName, templateCode string, templateParams []string) error
}

var (
	notifyClient Client
	notifyOnce   sync.Once
	notifyErr    error
)

// Init 初始化通知客户端
func Init() error {
	notifyOnce.Do(func() {
		cfg := config.Cfg

		switch cfg.NotifyProvider {
		case "aliyun":
			notifyClient, notifyErr = NewAliyunClient()
		case "mock":
			notifyClient = NewMockClient()
		default:
			notifyErr = fmt.Errorf("unsupported notify provider: %s", cfg.NotifyProvider)
		}

		if notifyErr != nil {
			logger.Logger.Error("Failed to initialize notify client", zap.Error(notifyErr))
			return
		}

		logger.Logger.Info("Notify client initialized successfully",
			zap.String("provider", cfg.NotifyProvider),
		)
	})

	return notifyErr
}

func GetClient() Client {
	if notifyClient == nil {
		panic("notify client not initialized, call notify.Init() first")
	}
	return notifyClient
}

func SendSingle(ctx context.Context, phone, signName, templateCode, templateParam string) error {
	return GetClient().SendSingle(ctx, phone, signName, templateCode, templateParam)
}

func SendBatch(ctx context.Context, phones []string, signName, templateCode string, templateParams []string) error {
	return GetClient().SendBatch(ctx, phones, signName, templateCode, templateParams)
}
