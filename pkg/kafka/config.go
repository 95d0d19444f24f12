package kafka

import "time"

const defaultBatchTimeout = 10 * time.Millisecond

// Config holds Kafka connection parameters. SASL is enabled when
// SASLMechanism is set.
type Config struct {
	ClientID string
	Brokers  []string
	TLS      bool

	SASLMechanism string // PLAIN, SCRAM-SHA-256, SCRAM-SHA-512
	SASLUsername  string
	SASLPassword  string

	// BatchTimeout bounds how long a writer waits to fill a batch.
	// Zero means 10ms.
	BatchTimeout time.Duration
}

func (c Config) batchTimeout() time.Duration {
	if c.BatchTimeout <= 0 {
		return defaultBatchTimeout
	}
	return c.BatchTimeout
}
