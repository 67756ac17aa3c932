package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	FullName     string `gorm:"size:128"`
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `gorm:"size:255"`
}

// Profile 表示用户的结构化简历资料，每个用户至多一条。
// Skills/Projects/Experience 以 JSON 序列化存储，保证顺序与内容完整往返。
type Profile struct {
	gorm.Model
	UserID       uint `gorm:"uniqueIndex"`
	User         User `gorm:"constraint:OnDelete:CASCADE"`
	FullName     string
	Email        string
	Phone        string `gorm:"size:64"`
	ProfileImage string `gorm:"type:text"` // data URL，自包含图像编码
	College      string
	Degree       string
	PassingYear  string         `gorm:"size:16"`
	Skills       datatypes.JSON `gorm:"type:jsonb"`
	Projects     datatypes.JSON `gorm:"type:jsonb"`
	Experience   datatypes.JSON `gorm:"type:jsonb"`
}

// Document 表示用户保存的一份简历文档（模板生成或自由编辑）。
// 删除为硬删除，因此不嵌入 gorm.Model（其 DeletedAt 会触发软删除语义）。
type Document struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint `gorm:"index"`
	User      User `gorm:"constraint:OnDelete:CASCADE"`
	Name      string
	Content   string `gorm:"type:text"`
	PdfUrl    string `gorm:"size:512"`
	Status    string `gorm:"size:32"`
}
