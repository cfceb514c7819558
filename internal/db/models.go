package db

// Item is the sole persisted resource: a store-assigned id plus a required
// name and an optional description.
type Item struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for the Item model.
func (Item) TableName() string {
	return "items"
}
