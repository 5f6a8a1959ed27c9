package model

// BeachGrade is a row of the beaches_grades view: a beach with the average
// rating of its reviews.
type BeachGrade struct {
	BeachID      uint     `gorm:"column:beach_id" json:"beachId"`
	Slug         string   `gorm:"column:slug" json:"slug"`
	Name         string   `gorm:"column:name" json:"name"`
	Island       string   `gorm:"column:island" json:"island"`
	Municipality string   `gorm:"column:municipality" json:"municipality"`
	CoverURL     string   `gorm:"column:cover_url" json:"coverUrl"`
	Grade        *float64 `gorm:"column:grade" json:"grade"`
	ReviewsCount int64    `gorm:"column:reviews_count" json:"reviewsCount"`
}

func (BeachGrade) TableName() string { return "beaches_grades" }
