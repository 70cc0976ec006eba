package models

type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EName     string    `gorm:"unique;not null" json:"ename"`
	ARName    string    `gorm:"unique;not null" json:"arname"`
	SortOrder int       `json:"sort_order"`
	Products  []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
