// Package config loads environment variables into typed configuration
// structs using caarlos0/env, with an optional .env file picked up once via
// godotenv.
//
// Each configuration type is parsed once per process and cached, so every
// package can call Load for its own Config without re-reading the
// environment:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// MustLoad panics on failure and is meant for configuration the process
// cannot start without.
package config
