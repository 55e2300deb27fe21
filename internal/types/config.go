package types

import "time"

type Config struct {
	APIAddr              string
	StorageDirectory     string
	JWTSecret            string
	NatsURL              string
	NatsSubject          string
	AgentPingTimeout     time.Duration
	KeysInjectionTimeout time.Duration
	EventWorkers         int
	// HealthRateLimit is the number of health requests per second allowed per
	// caller. Zero disables the limit.
	HealthRateLimit float64
}
