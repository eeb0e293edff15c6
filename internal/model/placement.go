package model

// StepPlacement 一行代表一个步骤在某页上的落位，
// component 全局唯一保证同一步骤不会同时出现在两页。
type StepPlacement struct {
	BaseModel
	PageNumber int    `gorm:"not null;index:idx_step_placements_page" json:"page_number"`
	Component  string `gorm:"uniqueIndex;type:varchar(32);not null" json:"component"`
}

// TableName 指定表名
func (StepPlacement) TableName() string {
	return "step_placements"
}
