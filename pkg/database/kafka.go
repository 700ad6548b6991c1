package database

import (
	"context"
	"fmt"
	"time"

	"band_booking_service/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// NewKafkaReaderWithRetry builds a Kafka reader and verifies the brokers are
// reachable before handing it out.
func NewKafkaReaderWithRetry(k KafkaConnection) (*kafka.Reader, error) {
	var err error

	for attempt := 1; attempt <= k.RetryCount; attempt++ {
		var conn *kafka.Conn
		conn, err = kafka.DialContext(context.Background(), "tcp", k.Brokers[0])
		if err == nil {
			conn.Close()
			return kafka.NewReader(kafka.ReaderConfig{
				Brokers: k.Brokers,
				Topic:   k.Topic,
				GroupID: k.GroupID,
			}), nil
		}

		logger.Log.Warn(fmt.Sprintf("kafka dial failed (attempt %d/%d): %v", attempt, k.RetryCount, err))
		time.Sleep(k.RetryInterval * time.Second)
	}

	return nil, fmt.Errorf("unable to reach kafka after %d attempts: %w", k.RetryCount, err)
}
