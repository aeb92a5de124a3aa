package model

import "time"

// SchemaVersion records one applied migration step. Rows are append-only;
// the newest row is the live schema version.
type SchemaVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Driver    string    `gorm:"type:varchar(16);not null"`
	Details   string    `gorm:"type:text"`
	AppliedAt time.Time `gorm:"not null;index"`
}

func (SchemaVersion) TableName() string {
	return "schema_versions"
}
