package config

import (
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GOTYPIST_STATS_FILE.
const EnvPrefix = "GOTYPIST_STATS"

// ApplyEnv overlays GOTYPIST_STATS_FILE, GOTYPIST_STATS_DB and
// GOTYPIST_STATS_COLOR on top of the file settings.
func ApplyEnv(cfg FileConfig) FileConfig {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	overlay := func(key string, target **string) {
		if !v.IsSet(key) {
			return
		}
		value := v.GetString(key)
		*target = &value
	}
	overlay("file", &cfg.Stats.File)
	overlay("db", &cfg.Stats.DB)
	overlay("color", &cfg.Stats.Color)
	return cfg
}
