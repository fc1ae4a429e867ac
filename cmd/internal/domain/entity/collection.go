package entity

// CollectionRow stores one whole record collection when the sqlite backend is used.
type CollectionRow struct {
	Name      string `gorm:"primaryKey;autoIncrement:false"`
	Payload   string `gorm:"not null;type:text"`
	Version   int64  `gorm:"not null;default:0"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}
