package config

import (
	"os"
	"strconv"
	"time"
)

var Global = AppConfig{
	NodeId:    "collab_gw-1",
	Port:      8080,
	JwtSecret: "mN9b1f8zPq+W2xjX/45sKcVd0TfyoG+3Hp5Z8q9Rj1o=",
	Mongo: MongoConf{
		Uri:         "mongodb://localhost:27017",
		Database:    "collabsphere",
		MaxPoolSize: 20,
		MaxRetry:    3,
	},
	Redis: RedisConf{
		Addr: "127.0.0.1:6379",
		DB:   0,
	},
	KeepVersions:  50,
	VersionsLimit: 20,
	PresenceTTL:   2 * time.Minute,
	CursorColors: []string{
		"#3B82F6", "#EF4444", "#10B981", "#F59E0B",
		"#8B5CF6", "#EC4899", "#06B6D4", "#84CC16",
	},
}

// LoadEnv applies environment overrides on top of the built-in defaults.
func LoadEnv() {
	Global.NodeId = getEnv("NODE_ID", Global.NodeId)
	Global.Port = getEnvInt("PORT", Global.Port)
	Global.JwtSecret = getEnv("JWT_SECRET", Global.JwtSecret)

	Global.Mongo.Uri = getEnv("MONGO_URI", Global.Mongo.Uri)
	Global.Mongo.Database = getEnv("MONGO_DB", Global.Mongo.Database)
	Global.Mongo.Username = getEnv("MONGO_USER", Global.Mongo.Username)
	Global.Mongo.Password = getEnv("MONGO_PASSWORD", Global.Mongo.Password)

	Global.Redis.Addr = getEnv("REDIS_ADDR", Global.Redis.Addr)
	Global.Redis.Password = getEnv("REDIS_PASSWORD", Global.Redis.Password)

	Global.KeepVersions = getEnvInt("KEEP_VERSIONS", Global.KeepVersions)
	Global.VersionsLimit = getEnvInt("VERSIONS_LIMIT", Global.VersionsLimit)
	Global.PresenceTTL = getEnvDuration("PRESENCE_TTL", Global.PresenceTTL)
}

func GetJwtSecret() []byte {
	return []byte(Global.JwtSecret)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
