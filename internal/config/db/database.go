package db

import (
	"fmt"
	"time"

	"github.com/tamilsociety/tls-platform/internal/config"
	"github.com/tamilsociety/tls-platform/internal/domain/audit"
	"github.com/tamilsociety/tls-platform/internal/domain/notification"
	"github.com/tamilsociety/tls-platform/internal/domain/project"
	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init opens the postgres connection described by the loaded config.
func Init() error {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
		config.DbSSLMode,
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	DB = conn
	logger.Log.Info("database connected", zap.String("host", config.DbHost), zap.String("db", config.DbName))
	return nil
}

// Migrate creates or updates every table the service owns.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&project.ProjectItem{},
		&recruitment.Form{},
		&recruitment.Response{},
		&notification.Notification{},
		&audit.AuditLog{},
	)
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
