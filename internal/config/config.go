package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"filmorate/internal/constants"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Mode string `yaml:"mode"` // gin 模式: debug, release, test
		TLS  struct {
			Enabled  bool   `yaml:"enabled"`
			CertFile string `yaml:"cert_file"`
			KeyFile  string `yaml:"key_file"`
		} `yaml:"tls"`
	} `yaml:"server"`

	Storage struct {
		Backend string `yaml:"backend"` // memory 或 database
	} `yaml:"storage"`

	Database struct {
		Driver       string `yaml:"driver"` // mysql 或 sqlite
		DSN          string `yaml:"dsn"`    // Data Source Name
		MaxIdleConns int    `yaml:"max_idle_conns"`
		MaxOpenConns int    `yaml:"max_open_conns"`
	} `yaml:"database"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	CORS struct {
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"cors"`
}

// GlobalConfig 全局配置
var GlobalConfig = Default()

// Default 默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.Mode = "release"
	cfg.Storage.Backend = constants.StorageMemory
	cfg.Database.Driver = constants.DriverMySQL
	cfg.Database.DSN = "root:123456@tcp(127.0.0.1:3306)/filmorate?charset=utf8mb4&parseTime=True&loc=UTC"
	cfg.Database.MaxIdleConns = 10
	cfg.Database.MaxOpenConns = 100
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	cfg.CORS.AllowOrigins = []string{"http://localhost:3000"}
	return cfg
}

// Init 初始化全局配置，配置文件路径可通过 FILMORATE_CONFIG 指定
func Init() error {
	path := os.Getenv("FILMORATE_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	GlobalConfig = cfg
	return nil
}

// Load 读取配置文件；文件不存在时使用默认配置。环境变量优先于文件
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// 使用默认配置
	case err != nil:
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FILMORATE_STORAGE"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("FILMORATE_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("FILMORATE_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("FILMORATE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// applyDefaults 文件中留空的字段回退为默认值
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = def.Server.Mode
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = def.Storage.Backend
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = def.Database.Driver
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = def.Database.MaxIdleConns
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = def.Database.MaxOpenConns
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case constants.StorageMemory, constants.StorageDatabase:
	default:
		return fmt.Errorf("未知的存储后端: %q", c.Storage.Backend)
	}
	if c.Storage.Backend == constants.StorageDatabase {
		switch c.Database.Driver {
		case constants.DriverMySQL, constants.DriverSQLite:
		default:
			return fmt.Errorf("未知的数据库驱动: %q", c.Database.Driver)
		}
		if c.Database.DSN == "" {
			return errors.New("database.dsn 不能为空")
		}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("端口无效: %d", c.Server.Port)
	}
	return nil
}
