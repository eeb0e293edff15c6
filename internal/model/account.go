package model

import "time"

// OnboardStepDone 完成整个向导后写入的进度值，沿用前端约定的哨兵值。
const OnboardStepDone = 999

// Account 账号模型，向导提交按 email 幂等 upsert。

type Account struct {
	BaseModel
	PublicID int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	Email    string `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // 明文存储是演示行为，生产必须哈希

	// 可选小节落库后的扁平字段
	About  string     `gorm:"type:text;not null;default:''" json:"about"`
	Street string     `gorm:"type:varchar(255);not null;default:''" json:"street"`
	City   string     `gorm:"type:varchar(128);not null;default:''" json:"city"`
	State  string     `gorm:"type:varchar(64);not null;default:''" json:"state"`
	Zip    string     `gorm:"type:varchar(32);not null;default:''" json:"zip"`
	Birth  *time.Time `gorm:"column:birth_date" json:"birth_date,omitempty"`

	OnboardStep int `gorm:"not null;default:0" json:"onboard_step"`
}

// TableName 指定表名
func (Account) TableName() string {
	return "accounts"
}
