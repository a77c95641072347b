package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/smarttools-ng/storefront/internal/money"
	"github.com/smarttools-ng/storefront/internal/promo"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"PG_MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"PG_MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"PG_CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"PG_CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type Redis struct {
	Addr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// Cart carries the shipping rules the calculator and the reducer derive
// totals from. Amounts are kobo.
type Cart struct {
	FreeShippingThreshold money.Money `yaml:"free_shipping_threshold" env:"FREE_SHIPPING_THRESHOLD" env-default:"5000000"`
	BaseShippingFee       money.Money `yaml:"base_shipping_fee" env:"BASE_SHIPPING_FEE" env-default:"500000"`
	RemoteStateMultiplier float64     `yaml:"remote_state_multiplier" env:"REMOTE_STATE_MULTIPLIER" env-default:"1.5"`
	RemoteStates          []string    `yaml:"remote_states" env:"REMOTE_STATES" env-default:"borno,yobe,adamawa,taraba,gombe,bauchi"`
	WeightAllowanceGrams  int         `yaml:"weight_allowance_grams" env:"WEIGHT_ALLOWANCE_GRAMS" env-default:"1000"`
	SurchargePerKg        money.Money `yaml:"surcharge_per_kg" env:"SURCHARGE_PER_KG" env-default:"50000"`
}

type Otel struct {
	ExporterEndpoint string `yaml:"EXPORTER_ENDPOINT" env:"EXPORTER_ENDPOINT" env-default:""`
}

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Database   Database     `yaml:"database"`
	Redis      Redis        `yaml:"redis"`
	Cart       Cart         `yaml:"cart"`
	Otel       Otel         `yaml:"otel"`
	Promos     []promo.Rule `yaml:"promos"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	if len(cfg.Promos) == 0 {
		cfg.Promos = promo.DefaultRules()
	}

	return &cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *Redis) GetDSN() string {
	return fmt.Sprintf("redis://:%s@%s/%d", r.Password, r.Addr, r.DB)
}
