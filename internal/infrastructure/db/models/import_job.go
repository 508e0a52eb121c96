package models

import "time"

type ImportJob struct {
	ID               int64  `gorm:"primaryKey"`
	JobID            string `gorm:"size:100;not null;uniqueIndex"`
	Filename         string `gorm:"size:255;not null"`
	TotalRecords     int64  `gorm:"not null;default:0"`
	ProcessedRecords int64  `gorm:"not null;default:0"`
	Status           string `gorm:"size:50;not null;default:pending"`
	Errors           string `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ImportJob) TableName() string {
	return "import_jobs"
}
