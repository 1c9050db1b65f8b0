package jobs

import (
	"context"
	"log"
	"time"

	"github.com/edubridge/lms-backend/internal/promotion"
	"github.com/edubridge/lms-backend/internal/services"
)

// PromotionSweeper periodically checks both promotion features and disables
// any that have elapsed. It is the server-side trigger of the auto-expire
// logic; connected clients hit the public endpoint as the on-demand trigger,
// and both paths are safe to race.
type PromotionSweeper struct {
	settingsService services.SettingsService
	interval        time.Duration
	timeout         time.Duration
}

// NewPromotionSweeper creates a new PromotionSweeper
func NewPromotionSweeper(settingsService services.SettingsService, interval, timeout time.Duration) *PromotionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PromotionSweeper{
		settingsService: settingsService,
		interval:        interval,
		timeout:         timeout,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (s *PromotionSweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		log.Printf("Promotion sweeper started (interval %s)", s.interval)
		for {
			select {
			case <-ctx.Done():
				log.Println("Promotion sweeper stopped")
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce performs a single sweep pass over both feature types. Errors are
// logged and retried on the next tick; a stuck store call is cut off by the
// pass timeout rather than stalling the ticker.
func (s *PromotionSweeper) RunOnce(ctx context.Context) {
	for _, feature := range []promotion.FeatureType{promotion.FeatureAIAssistant, promotion.FeaturePremiumTrial} {
		passCtx, cancel := context.WithTimeout(ctx, s.timeout)
		result, err := s.settingsService.AutoExpire(passCtx, feature)
		cancel()
		if err != nil {
			log.Printf("[WARN] promotion sweep: %s check failed: %v", feature, err)
			continue
		}
		if result.Expired {
			log.Printf("promotion sweep: %s", result.Message)
		}
	}
}
