package config

import "time"

type Config struct {
	App   AppConfig   `env-prefix:"APP_"`
	HTTP  HTTPConfig  `env-prefix:"HTTP_"`
	Redis RedisConfig `env-prefix:"REDIS_"`
	Mongo MongoConfig `env-prefix:"MONGO_"`
	WS    WSConfig    `env-prefix:"WS_"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Pretty   bool   `env:"PRETTY" env-default:"false"`
}

type HTTPConfig struct {
	Addr string `env:"ADDR" env-default:":8081"`
}

type RedisConfig struct {
	Addr        string        `env:"ADDR" env-default:"localhost:6379"`
	DB          int           `env:"DB" env-default:"0"`
	KeyPrefix   string        `env:"KEY_PREFIX" env-default:"note:"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" env-default:"5s"`
}

type MongoConfig struct {
	URI        string        `env:"URI" env-default:"mongodb://localhost:27017"`
	Database   string        `env:"DATABASE" env-default:"note_db"`
	Collection string        `env:"COLLECTION" env-default:"notes"`
	Timeout    time.Duration `env:"TIMEOUT" env-default:"5s"`
}

type WSConfig struct {
	Path         string        `env:"PATH" env-default:"/ws"`
	ReadLimit    int64         `env:"READ_LIMIT" env-default:"65536"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" env-default:"10s"`
	PongTimeout  time.Duration `env:"PONG_TIMEOUT" env-default:"60s"`
	SendBuffer   int           `env:"SEND_BUFFER" env-default:"64"`
}
