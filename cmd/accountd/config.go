package main

import "time"

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"accountd"`

	// StorageDriver selects the user store: "memory" or "postgres".
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`

	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"3s"`
}

const (
	driverMemory   = "memory"
	driverPostgres = "postgres"
	driverRedis    = "redis"
)
