package database

import (
	"fmt"

	"kardio/config"
	"kardio/logger"
	"kardio/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	logLevel := gormlogger.Info
	if cfg.Server.Mode == "release" {
		logLevel = gormlogger.Warn
	}

	var err error
	DB, err = gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	maxIdle, maxOpen := cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	if maxOpen <= 0 {
		maxOpen = 100
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)

	if err := Migrate(DB); err != nil {
		return err
	}

	if err := SeedCategories(DB); err != nil {
		return fmt.Errorf("初始化默认类别失败: %w", err)
	}

	logger.Log.Info().Msg("数据库初始化成功")
	return nil
}

// Migrate 自动迁移数据库表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Merchant{},
		&models.Transaction{},
		&models.UserCategoryRule{},
		&models.CategoryChangeReport{},
	)
}

// SeedCategories 初始化默认类别（仅当表为空时）
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := models.GetDefaultCategories()
	cats := make([]models.Category, 0, len(defaults))
	for i, d := range defaults {
		cats = append(cats, models.Category{
			Name:  d.Name,
			Sort:  (i + 1) * 10,
			Color: d.Color,
		})
	}
	return db.Create(&cats).Error
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
