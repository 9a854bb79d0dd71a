package tramline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/tramline/config"
	"github.com/theoremus-urban-solutions/tramline/gtfsrt"
	"github.com/theoremus-urban-solutions/tramline/queues"
	"github.com/theoremus-urban-solutions/tramline/tracking"
)

// TickSource produces vehicle snapshots on demand.
type TickSource interface {
	Next(ctx context.Context) (tracking.Tick, error)
}

// Poll reads src every interval and applies each snapshot to svc until ctx
// is cancelled. Fetch and apply failures are logged and the loop goes on.
func Poll(ctx context.Context, src TickSource, interval time.Duration, svc *Service) error {
	if interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		pollOnce(ctx, src, svc)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func pollOnce(ctx context.Context, src TickSource, svc *Service) {
	tick, err := src.Next(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("Vehicle feed read failed: %v", err)
		}
		return
	}
	if err := applyTick(svc, tick); err != nil {
		log.Printf("Vehicle snapshot not applied: %v", err)
	}
}

// applyTick applies tick, treating a stale snapshot as a no-op.
func applyTick(svc *Service, tick tracking.Tick) error {
	ops, err := svc.ApplyTick(tick)
	if errors.Is(err, tracking.ErrStaleTick) {
		log.Printf("Skipping stale vehicle snapshot (feed timestamp %d < %d)", tick.Timestamp, svc.FeedTimestamp())
		return nil
	}
	if err != nil {
		return err
	}
	if len(ops) > 0 {
		log.Printf("Applied vehicle snapshot: %d vehicles, %d operations", len(tick.Vehicles), len(ops))
	}
	return nil
}

// RunFeed keeps svc current from the feed named by cfg until ctx is
// cancelled. A "none" feed blocks until cancellation.
func RunFeed(ctx context.Context, cfg config.FeedConfig, colorByRoute map[string]string, svc *Service) error {
	switch cfg.Kind {
	case "", "none":
		<-ctx.Done()
		return nil
	case "gtfsrt":
		client := gtfsrt.NewClient(time.Duration(cfg.TimeoutMS) * time.Millisecond)
		src := gtfsrt.NewSource(client, cfg.VehiclePositionsURL, colorByRoute)
		log.Printf("Polling vehicle positions from %s every %dms", cfg.VehiclePositionsURL, cfg.ReadIntervalMS)
		return Poll(ctx, src, time.Duration(cfg.ReadIntervalMS)*time.Millisecond, svc)
	case "amqp":
		consumer := queues.NewConsumer(cfg.AMQPURL, cfg.Queue)
		log.Printf("Consuming vehicle snapshots as %s", consumer.Tag())
		return consumer.Run(ctx, func(_ context.Context, tick tracking.Tick) error {
			return applyTick(svc, tick)
		})
	default:
		return fmt.Errorf("unsupported feed kind %q", cfg.Kind)
	}
}
