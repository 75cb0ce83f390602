package models

import "time"

// Idea - Çalışan öneri/fikir kaydı
type Idea struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"`
	User   User `gorm:"foreignKey:UserID"`

	Title string `gorm:"size:200;not null"`
	Body  string `gorm:"size:2000"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Votes []IdeaVote `gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE"`
}

// IdeaVote - Bir kullanıcı bir fikre en fazla bir kez oy verebilir,
// unique index bunu veritabanı seviyesinde garanti eder.
type IdeaVote struct {
	ID        uint `gorm:"primaryKey"`
	IdeaID    uint `gorm:"uniqueIndex:idx_idea_user;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_idea_user;not null"`
	CreatedAt time.Time
}
