package config

import "time"

type MongoConf struct {
	Uri         string
	Database    string
	Username    string
	Password    string
	MaxPoolSize int
	MaxRetry    int
}

type RedisConf struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	NodeId    string // 节点ID
	Port      int    // http 启动端口
	JwtSecret string

	Mongo MongoConf
	Redis RedisConf

	KeepVersions  int           // retention trim: versions kept per document
	VersionsLimit int           // history page size (newest first)
	PresenceTTL   time.Duration // redis presence key TTL

	CursorColors []string // palette, assigned by room join order
}
