package database

import (
	"fmt"
	"time"

	"filmorate/internal/config"
	"filmorate/internal/constants"
	"filmorate/internal/logging"
	"filmorate/internal/storage/dbstore"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dialector 根据驱动名选择 gorm 方言
func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case constants.DriverMySQL:
		return mysql.Open(dsn), nil
	case constants.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("未知的数据库驱动: %q", driver)
	}
}

// InitDB 初始化数据库连接并迁移表结构
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dial, err := dialector(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	// gorm 日志输出到 zerolog
	newLogger := logger.New(
		logging.GormWriter{},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == constants.DriverSQLite {
		// sqlite 单写者；内存库的每个连接互相独立
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := dbstore.Migrate(db); err != nil {
		return nil, err
	}

	logging.Info().
		Str("driver", cfg.Database.Driver).
		Msg("数据库初始化成功")
	return db, nil
}
