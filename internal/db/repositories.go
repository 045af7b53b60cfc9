package db

import "gorm.io/gorm"

type Repositories struct {
	States *StateRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		States: NewStateRepository(database),
	}
}
