package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ApplyFile overrides the treasury settings with the keys present in a yaml, toml or json
// file. Keys missing from the file keep their current value. The private key cannot be set this way.
func (t *Treasury) ApplyFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	privateKey := t.PrivateKey
	configFile := t.ConfigFile

	if err := v.Unmarshal(t, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return errors.Wrap(err, "failed to decode config file")
	}

	t.PrivateKey = privateKey
	t.ConfigFile = configFile

	return nil
}
