package config

import "github.com/spf13/viper"

func SetDefaults() {
	viper.SetDefault("tts.engine", "auto")
	viper.SetDefault("tts.voice", "default")
	viper.SetDefault("tts.rate", 1.0)
	viper.SetDefault("tts.pitch", 1.0)
	viper.SetDefault("tts.volume", 1.0)
	viper.SetDefault("reader.chunk_max", 200)
	viper.SetDefault("reader.gap_ms", 150)
	viper.SetDefault("api.base_url", "http://localhost:5000")
	viper.SetDefault("cache.max_age_hours", 24)
}
