package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CfgDB        ConfigDB    `yaml:"db"`
	CfgRedis     ConfigRedis `yaml:"redis"`
	CfgKafka     ConfigKafka `yaml:"kafka"`
	CfgCart      ConfigCart  `yaml:"cart"`
	MaxOpenConns int         `yaml:"max_open_conns"`
	ServerPort   string      `yaml:"srv_port"`
}

type ConfigDB struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Port     uint   `yaml:"port"`
	Database string `yaml:"database"`
	Host     string `yaml:"host"`
}

// ConfigRedis пустой Addr означает хранение корзин в памяти процесса
type ConfigRedis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ConfigKafka пустой список брокеров отключает события корзины
type ConfigKafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// ConfigCart IdleTTL сколько корзина без записей держится в памяти сервиса
type ConfigCart struct {
	KeyPrefix string        `yaml:"key_prefix"`
	IdleTTL   time.Duration `yaml:"idle_ttl"`
}

func defaultConfig() Config {
	return Config{
		CfgRedis: ConfigRedis{
			Timeout: 2 * time.Second,
		},
		CfgKafka: ConfigKafka{
			Topic: "cart-events",
		},
		CfgCart: ConfigCart{
			KeyPrefix: "cart:",
		},
		MaxOpenConns: 10,
		ServerPort:   ":8080",
	}
}

func NewConfig(configPath string) (*Config, error) {
	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	c := defaultConfig()
	err = yaml.Unmarshal(cfg, &c)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CartIdleTTL срок жизни корзины в памяти. Если корзины лежат в Redis с TTL,
// он не может быть больше TTL, иначе истекший снимок вернется при следующей записи
func (c *Config) CartIdleTTL() time.Duration {
	ttl := c.CfgCart.IdleTTL
	if c.CfgRedis.Addr != "" && c.CfgRedis.TTL > 0 && (ttl <= 0 || ttl > c.CfgRedis.TTL) {
		ttl = c.CfgRedis.TTL
	}

	return ttl
}
