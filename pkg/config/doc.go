// Package config loads application configuration from environment variables
// into tagged structs using github.com/caarlos0/env/v11, with optional .env
// files read by github.com/joho/godotenv.
//
// Each configuration type is parsed once and cached for the lifetime of the
// process, so packages can call Load for their own Config type without
// coordinating:
//
//	type Config struct {
//		ConnURL string `env:"PG_CONN_URL,required"`
//		MaxConn int32  `env:"PG_MAX_CONN" envDefault:"10"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// LoadEnv reads explicit dotenv files and clears the cache. ResetCache is
// exposed for tests that change the environment between loads.
//
// Errors are sentinels usable with errors.Is: ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config
