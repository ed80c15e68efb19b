package config

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
init 時設置 viper watch 與 onConfigChange
讀取時使用讀寫鎖
*/
var configSingleton *ConfigSingleton
var muonce sync.Once

type ConfigSingleton struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	Env               string        `mapstructure:"ENV"`
	ServerPort        string        `mapstructure:"SERVER_PORT"`
	DbName            string        `mapstructure:"POSTGRES_DB"`
	DbHost            string        `mapstructure:"POSTGRES_HOST"`
	DbPort            string        `mapstructure:"POSTGRES_PORT"`
	DbUser            string        `mapstructure:"POSTGRES_USER"`
	DbPas             string        `mapstructure:"POSTGRES_PASSWORD"`
	AutoMigrate       bool          `mapstructure:"AUTO_MIGRATE"`
	SeedFile          string        `mapstructure:"SEED_FILE"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int           `mapstructure:"REDIS_DB"`
	KafkaBrokers      string        `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic   string        `mapstructure:"KAFKA_ORDER_TOPIC"`
	OperationTimeout  time.Duration `mapstructure:"OPERATION_TIMEOUT"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	SubjectCacheTTL   time.Duration `mapstructure:"SUBJECT_CACHE_TTL"`
	LoginRateCapacity int           `mapstructure:"LOGIN_RATE_CAPACITY"`
	LoginRatePerSec   int           `mapstructure:"LOGIN_RATE_PER_SEC"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
}

// Brokers KAFKA_BROKERS 以逗號分隔
func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("SEED_FILE", "docs/books.yaml")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_ORDER_TOPIC", "bookstore.order.placed")
	v.SetDefault("OPERATION_TIMEOUT", "3s")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SUBJECT_CACHE_TTL", "10m")
	v.SetDefault("LOGIN_RATE_CAPACITY", 5)
	v.SetDefault("LOGIN_RATE_PER_SEC", 1)
	v.SetDefault("LOG_LEVEL", "info")
}

var configKeys = []string{
	"ENV", "SERVER_PORT",
	"POSTGRES_DB", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD",
	"AUTO_MIGRATE", "SEED_FILE",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"KAFKA_BROKERS", "KAFKA_ORDER_TOPIC",
	"OPERATION_TIMEOUT", "SESSION_TTL", "SUBJECT_CACHE_TTL",
	"LOGIN_RATE_CAPACITY", "LOGIN_RATE_PER_SEC",
	"LOG_LEVEL",
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	muonce.Do(func() {
		configSingleton = &ConfigSingleton{}
		v := viper.New()
		cf, err := load(v, EnvFilePath())
		if err != nil {
			log.Fatalf("failed to read config: %v", err)
		}
		configSingleton.Config = cf

		if v.ConfigFileUsed() == "" {
			return
		}
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			cf, err := load(v, e.Name)
			if err != nil {
				log.Printf("failed to reload config file: %v", err)
				return
			}
			configSingleton.mu.Lock()
			configSingleton.Config = cf
			configSingleton.mu.Unlock()
		})
	})
}

// EnvFilePath BOOKSTORE_ENV_FILE 未設定時使用工作目錄下的 .env
func EnvFilePath() string {
	if p := os.Getenv("BOOKSTORE_ENV_FILE"); p != "" {
		return p
	}
	return ".env"
}

// LoadFrom 單純回傳錯誤, 由外部決定要不要 Fatal
func LoadFrom(path string) (*Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()
	// Unmarshal 只會讀到已知的 key, env 需要逐一 bind
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}
