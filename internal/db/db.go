package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

func GetDB() *gorm.DB {
	return db
}

// InitDB 连接 MySQL 并自动迁移表结构
func InitDB(dsn string, logger *zap.Logger) error {
	conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return err
	}
	db = conn
	logger.Info("connected to mysql")
	return nil
}

// Migrate 自动迁移表结构
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&User{}, &Entry{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
