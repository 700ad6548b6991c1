package app

import (
	"context"
	"encoding/json"

	"band_booking_service/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// BookingEventListener reads booking lifecycle notifications from Kafka and
// feeds them to the injector. Malformed or failed events are logged and
// skipped; the injector append is the only side effect.
type BookingEventListener struct {
	reader   *kafka.Reader
	injector *BookingEventInjector
}

// NewBookingEventListener init booking event listener
func NewBookingEventListener(reader *kafka.Reader, injector *BookingEventInjector) *BookingEventListener {
	return &BookingEventListener{
		reader:   reader,
		injector: injector,
	}
}

// Run consumes until ctx is cancelled.
func (l *BookingEventListener) Run(ctx context.Context) {
	for {
		m, err := l.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Log.Info("booking event listener stopped")
				return
			}
			logger.Log.Errorf("read booking event:", err)
			continue
		}

		var ev BookingEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			logger.Log.Errorf("unmarshal booking event:", err)
			continue
		}
		if err := l.injector.Handle(ctx, ev); err != nil {
			logger.Log.Errorf("inject booking event:", err)
		}
	}
}
