package models

import (
	"time"

	"gorm.io/gorm"
)

// Socials holds the profile's links for the supported platforms.
type Socials struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is the one-per-user professional profile. It exclusively owns its
// experience and education entries; both lists are kept newest-first.
type Profile struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company       string         `json:"company"`
	Website       string         `json:"website"`
	Location      string         `json:"location"`
	Bio           string         `json:"bio"`
	Status        string         `gorm:"not null" json:"status"`
	GithubProfile string         `json:"githubprofile"`
	Skills        []string       `gorm:"serializer:json" json:"skills"`
	Socials       Socials        `gorm:"serializer:json" json:"socials"`
	Experience    []Experience   `gorm:"foreignKey:ProfileID" json:"experience"`
	Education     []Education    `gorm:"foreignKey:ProfileID" json:"education"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Experience is a single work-history entry owned by a profile. The entry ID
// is assigned at insertion and never changes.
type Experience struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProfileID   uint           `gorm:"not null;index" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Company     string         `gorm:"not null" json:"company"`
	Location    string         `json:"location"`
	StartDate   string         `gorm:"not null" json:"startdate"`
	EndDate     string         `json:"enddate"`
	Current     bool           `json:"current"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Education is a single education-history entry owned by a profile.
type Education struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ProfileID    uint           `gorm:"not null;index" json:"-"`
	School       string         `gorm:"not null" json:"school"`
	Degree       string         `gorm:"not null" json:"degree"`
	FieldOfStudy string         `gorm:"not null" json:"fieldofstudy"`
	StartDate    string         `gorm:"not null" json:"startdate"`
	EndDate      string         `json:"enddate"`
	Current      bool           `json:"current"`
	Courses      []string       `gorm:"serializer:json" json:"courses"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
