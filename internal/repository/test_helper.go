package repository

import (
	"fmt"
	"sync/atomic"

	"github.com/wfunc/rgs-engine/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// SetupTestDB 为测试套件设置内存数据库
func SetupTestDB() *gorm.DB {
	// ":memory:"在每个连接上是独立的数据库；用带名字的共享缓存内存库让连接池共享同一数据库
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Game{},
		&models.Jackpot{},
		&models.SpinLog{},
	); err != nil {
		panic(err)
	}

	return db
}

// CleanupTestDB 清理测试数据库
func CleanupTestDB(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}
