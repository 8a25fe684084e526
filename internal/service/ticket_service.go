package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/billetweb-booking/internal/provider"
	"github.com/iliyamo/billetweb-booking/internal/tool"
)

// FeedSource returns the three raw Billetweb feeds of the event.
// *provider.Client satisfies it.
type FeedSource interface {
	FetchAll(ctx context.Context) (provider.Feeds, error)
}

// TicketService implements the buy-tickets tool: fetch, aggregate, build.
// Nothing is kept between invocations.
type TicketService struct {
	source  FeedSource
	builder *tool.Builder
	eventID string
	alerts  AlertPublisher
	logger  *zap.Logger
	now     func() time.Time
}

// NewTicketService wires a TicketService.  alerts may be nil to disable
// alert publication.
func NewTicketService(source FeedSource, builder *tool.Builder, eventID string, alerts AlertPublisher, logger *zap.Logger) *TicketService {
	if source == nil || builder == nil {
		panic("nil dependency passed to NewTicketService")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		source:  source,
		builder: builder,
		eventID: eventID,
		alerts:  alerts,
		logger:  logger,
		now:     time.Now,
	}
}

// Invoke runs one buy-tickets call.  The tool takes no arguments, so input
// is ignored.  Any fetch or parse error fails the call with no partial
// result.
func (s *TicketService) Invoke(ctx context.Context, _ json.RawMessage) (tool.Result, error) {
	invocationID := uuid.NewString()
	log := s.logger.With(zap.String("invocation_id", invocationID), zap.String("tool", tool.BuyTicketsName))

	feeds, err := s.source.FetchAll(ctx)
	if err != nil {
		log.Warn("fetch feeds failed", zap.Error(err))
		return tool.Result{}, err
	}
	snap, err := Aggregate(feeds.Sessions, feeds.Tickets, feeds.Availability)
	if err != nil {
		log.Warn("aggregate feeds failed", zap.Error(err))
		return tool.Result{}, err
	}

	if s.alerts != nil {
		if ev, ok := alertFor(invocationID, s.eventID, snap, s.now()); ok {
			if err := s.alerts.PublishAvailabilityAlert(ctx, ev); err != nil {
				log.Warn("publish availability alert failed", zap.Error(err))
			}
		}
	}

	log.Info("tool invoked",
		zap.Int("sessions", len(snap.Sessions)),
		zap.Int("tiers", len(snap.Tiers)),
		zap.Int("notices", len(snap.Notices)),
	)
	return s.builder.Build(snap), nil
}
