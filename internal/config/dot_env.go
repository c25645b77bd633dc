package config

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
)

// DotEnvTryLoad forcefully overrides ENV variables through **a maybe available** .env file.
//
// This function should only be called after the DefaultServiceConfigFromEnv was called at least once,
// because the go-starter way to load a .env file is only meant for local development.
func DotEnvTryLoad(absolutePathToEnvFile string, overrideEnvFunc func(key string, value string) error) {
	err := DotEnvLoad(absolutePathToEnvFile, overrideEnvFunc)

	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatal().Err(err).Str("envFile", absolutePathToEnvFile).Msg(".env parse error!")
		}
	} else {
		log.Warn().Str("envFile", absolutePathToEnvFile).Msg(".env overrides ENV variables!")
	}
}

// DotEnvLoad forcefully overrides ENV variables through the supplied .env file.
func DotEnvLoad(absolutePathToEnvFile string, overrideEnvFunc func(key string, value string) error) error {
	file, err := os.Open(absolutePathToEnvFile)
	if err != nil {
		return err
	}

	defer file.Close()

	envs, err := gotenv.StrictParse(file)
	if err != nil {
		return err
	}

	for key, value := range envs {
		if err := overrideEnvFunc(key, value); err != nil {
			return err
		}
	}

	return nil
}
