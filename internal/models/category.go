package models

const (
	CategoryCallsID uint = 1
	CategoryLifeID  uint = 2
)

const (
	UncategorizedName  = "Uncategorized"
	UncategorizedColor = "#0000FF"
)

type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null;uniqueIndex" json:"name"`
	Color string `gorm:"not null" json:"color"`
}

func (Category) TableName() string {
	return "categories"
}

func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryCallsID, Name: "Call Friends", Color: "#abc4ff"},
		{ID: CategoryLifeID, Name: "Life", Color: "#a8e6cf"},
		{ID: 3, Name: "Work", Color: "#cdb4db"},
		{ID: 4, Name: "Personal Development", Color: "#ffb36c"},
	}
}
