package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/termgate/termgate/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init() error {
	dbPath := config.Cfg.DatabasePath
	dbDir := filepath.Dir(dbPath)
	if dbDir != "" {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("create db directory: %w", err)
		}
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}

	if err := DB.AutoMigrate(&Target{}, &Setting{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	return nil
}

func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetSetting(key string) (string, error) {
	var s Setting
	if err := DB.Where("key = ?", key).First(&s).Error; err != nil {
		return "", err
	}
	return s.Value, nil
}

func SetSetting(key, value string) error {
	return DB.Where("key = ?", key).Assign(Setting{Value: value}).FirstOrCreate(&Setting{Key: key}).Error
}

// Target helpers

func GetTargetByClientID(clientID string) (*Target, error) {
	var t Target
	if err := DB.Where("client_id = ?", clientID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func CreateTarget(t *Target) error {
	return DB.Create(t).Error
}

func UpsertTarget(t *Target) error {
	var existing Target
	err := DB.Where("client_id = ?", t.ClientID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return DB.Create(t).Error
	}
	if err != nil {
		return err
	}
	t.ID = existing.ID
	return DB.Save(t).Error
}

func DeleteTargetByClientID(clientID string) error {
	res := DB.Where("client_id = ?", clientID).Delete(&Target{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func ListTargets() ([]Target, error) {
	var targets []Target
	if err := DB.Order("client_id").Find(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}
