package domain

import "time"

// Submission 表示一条已接受的联系表单留言。
type Submission struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

// TableName 指定数据库表名
func (Submission) TableName() string {
	return "contact_submissions"
}
