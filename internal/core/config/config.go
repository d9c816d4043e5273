package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Session struct {
	CookieName string
	TTLHours   int
	Secure     bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

// CORS 逗号分隔，"*" 表示全放开（沿用旧系统配置键）
type CORS struct {
	AllowedOrigins   string
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials bool
}

// Storage S3 兼容对象存储；Endpoint/AK/SK 任一为空则禁用图片上传
type Storage struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

type AdminSetup struct {
	Secret string // 为空则 bootstrap 接口整体关闭
}

type Config struct {
	App        App
	Log        Log
	DB         DB
	Redis      Redis `mapstructure:"redis"`
	Session    Session
	JWT        JWT
	CORS       CORS
	Storage    Storage
	AdminSetup AdminSetup
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 10)
	v.SetDefault("app.http.writetimeoutsec", 20)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("db.maxopenconns", 50)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("session.cookiename", "him_session")
	v.SetDefault("session.ttlhours", 24)
	v.SetDefault("cors.allowedorigins", "*")
	v.SetDefault("cors.allowedmethods", "GET,POST,PUT,DELETE,OPTIONS")
	v.SetDefault("cors.allowedheaders", "*")
	v.SetDefault("cors.allowcredentials", true)
	v.SetDefault("jwt.issuer", "him-backend")
	v.SetDefault("jwt.accesstokenttlmin", 120)
}
