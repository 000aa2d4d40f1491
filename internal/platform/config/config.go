package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀，例如 BOOKKEEPING_DATABASE_DSN
const EnvPrefix = "BOOKKEEPING"

// Config 服务的全部配置，每个字段都有默认值 (见 setDefaults)
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Inventory InventoryConfig `mapstructure:"inventory" yaml:"inventory"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port" yaml:"port"`
	Mode            string        `mapstructure:"mode" yaml:"mode"` // debug | release | test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" yaml:"driver"` // postgres | mysql | sqlite
	DSN             string        `mapstructure:"dsn" yaml:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"` // silent | error | warn | info
	ConnectRetries  int           `mapstructure:"connect_retries" yaml:"connect_retries"`
	RetryInterval   time.Duration `mapstructure:"retry_interval" yaml:"retry_interval"`
}

// InventoryConfig 库存记账策略
// 未传 journal_lines 时，按这里的科目代码在服务端生成分录
type InventoryConfig struct {
	AllowNegativeStock bool   `mapstructure:"allow_negative_stock" yaml:"allow_negative_stock"`
	PurchaseDebitCode  string `mapstructure:"purchase_debit_code" yaml:"purchase_debit_code"`
	PurchaseCreditCode string `mapstructure:"purchase_credit_code" yaml:"purchase_credit_code"`
	SaleDebitCode      string `mapstructure:"sale_debit_code" yaml:"sale_debit_code"`
	SaleCreditCode     string `mapstructure:"sale_credit_code" yaml:"sale_credit_code"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "bookkeeping.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_level", "error")
	v.SetDefault("database.connect_retries", 10)
	v.SetDefault("database.retry_interval", 2*time.Second)

	v.SetDefault("inventory.allow_negative_stock", true)
	v.SetDefault("inventory.purchase_debit_code", "5000")
	v.SetDefault("inventory.purchase_credit_code", "2000")
	v.SetDefault("inventory.sale_debit_code", "1000")
	v.SetDefault("inventory.sale_credit_code", "4000")
}

// Load 按 默认值 < 配置文件 < .env < 环境变量 的优先级加载配置
// path 为空或文件不存在时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	// .env 是可选的
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 启动前的配置校验
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	return nil
}

// Default 返回全部默认值
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// 默认值本身不会解析失败
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Save 把配置写成 YAML 文件
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
