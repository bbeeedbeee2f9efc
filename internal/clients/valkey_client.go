package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

type ValkeyClient struct {
	Client valkey.Client
}

type ValkeyConfig struct {
	Addr     string
	Password string
	UseTLS   bool
}

const (
	VALKEY_REPORT_COUNT_KEY  = "reports:bad_prediction:count"
	VALKEY_REPORT_RECENT_KEY = "reports:bad_prediction:recent"

	// How many flagged predictions to keep around for triage.
	VALKEY_REPORT_RECENT_MAX = 100
)

func InitValkey(cfg ValkeyConfig) (*ValkeyClient, error) {
	var initErr error
	valkeyOnce.Do(func() {
		opts := valkey.ClientOption{
			InitAddress:      []string{cfg.Addr},
			Password:         cfg.Password,
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}
		if cfg.UseTLS {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(opts)
		if err != nil {
			initErr = fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
			initErr = fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", res.Error())
			return
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance, initErr
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

// IncrementReportCount bumps the running bad-prediction counter and keeps a
// bounded list of the most recent reports.
func (vc *ValkeyClient) IncrementReportCount(ctx context.Context, reportJSON []byte) (int64, error) {
	res := vc.Client.Do(ctx, vc.Client.B().Incr().Key(VALKEY_REPORT_COUNT_KEY).Build())
	if res.Error() != nil {
		return 0, res.Error()
	}
	count, err := res.AsInt64()
	if err != nil {
		return 0, err
	}

	completed := []valkey.Completed{
		vc.Client.B().Lpush().Key(VALKEY_REPORT_RECENT_KEY).Element(string(reportJSON)).Build(),
		vc.Client.B().Ltrim().Key(VALKEY_REPORT_RECENT_KEY).Start(0).Stop(VALKEY_REPORT_RECENT_MAX - 1).Build(),
	}
	for _, r := range vc.Client.DoMulti(ctx, completed...) {
		if r.Error() != nil {
			slog.Warn("[ValkeyClient] Failed to store recent report",
				slog.String("error", r.Error().Error()))
		}
	}

	return count, nil
}
