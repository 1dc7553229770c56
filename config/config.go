package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultCacheBlocks = 1024

type Config struct {
	File        string
	Format      string
	CacheBlocks int
	Debug       bool
}

func LoadConfig() Config {
	godotenv.Load(".env")
	return Config{
		File:        os.Getenv("PST_FILE"),
		Format:      envOr("PST_FORMAT", "unicode"),
		CacheBlocks: envInt("PST_CACHE_BLOCKS", defaultCacheBlocks),
		Debug:       envBool("PST_DEBUG"),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}
