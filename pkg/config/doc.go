// Package config loads typed configuration from the environment and from
// YAML files.
//
// It wraps github.com/joho/godotenv, github.com/caarlos0/env/v11 and
// gopkg.in/yaml.v3:
//
//   - Load parses the environment into a struct using `env` tags. The default
//     .env file is read once if present, and each configuration type is parsed
//     only once per process.
//   - LoadEnv reads one or more .env files into the environment.
//   - LoadFile decodes a YAML file and lets environment variables override it.
//   - ResetCache clears parsed values between tests.
//
// # Usage
//
//	type Settings struct {
//	    Addr     string   `env:"FLASHKIT_ADDR" envDefault:":8080" yaml:"addr"`
//	    Location string   `env:"FLASHKIT_LOCATION" yaml:"location"`
//	}
//
//	var s Settings
//	if err := config.Load(&s); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// From a file, with env still taking precedence:
//
//	if err := config.LoadFile("flashkit.yaml", &s); err != nil {
//	    log.Fatalf("loading config: %v", err)
//	}
//
// # Error Handling
//
// Sentinel errors for errors.Is:
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrNilPointer: nil pointer passed to a loader.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrReadingConfigFile and ErrParsingConfigFile: LoadFile failures.
package config
