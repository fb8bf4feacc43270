package models

import "time"

// Vote is one user's vote on one feedback item. The composite primary key
// (user_id, feedback_id) is what keeps a user to a single vote per item.
type Vote struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FeedbackID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"feedback_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Feedback   *Feedback `gorm:"foreignKey:FeedbackID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the table name for the Vote model
func (Vote) TableName() string {
	return "votes"
}
