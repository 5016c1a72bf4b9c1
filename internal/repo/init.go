package repo

import (
	"github.com/harikrishna2005/bot-launcher/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.RebalanceRecord{})
}
