package db

import (
	"time"

	"github.com/terraincognita07/quaresma/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StateRepository struct {
	database *gorm.DB
}

func NewStateRepository(database *gorm.DB) *StateRepository {
	return &StateRepository{database: database}
}

func (repo *StateRepository) Find(key string) (models.StateEntry, bool, error) {
	entry := models.StateEntry{}
	result := repo.database.Where("state_key = ?", key).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.StateEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.StateEntry{}, false, nil
	}
	return entry, true, nil
}

// Put writes value under key, replacing any previous row.
func (repo *StateRepository) Put(key string, value string) error {
	entry := models.StateEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (repo *StateRepository) ListKeys() ([]string, error) {
	keys := make([]string, 0)
	if err := repo.database.Model(&models.StateEntry{}).Order("state_key ASC").Pluck("state_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}
