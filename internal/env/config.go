package env

import (
	"evac-ca/internal/sims/evac"

	"github.com/spf13/viper"
)

// FromYaml loads an evac.Config from a YAML file. Keys mirror the Config
// struct (width, height, exitwidth, seed, params.fieldsensitivity, ...);
// missing keys keep their defaults.
func FromYaml(path string) (evac.Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")

	cfg := evac.DefaultConfig()
	if err := vp.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := vp.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
