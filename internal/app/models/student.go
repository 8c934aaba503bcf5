package models

// Student defines the student model based on the 'students' table.
// The (last name, first name, contact) triple is unique, case-insensitive
// on the name fields.
type Student struct {
	ID            int64  `json:"id" db:"id"`
	LastName      string `json:"lastName" db:"last_name"`
	FirstName     string `json:"firstName" db:"first_name"`
	Contact       string `json:"contact" db:"contact"`
	Cohort        string `json:"cohort" db:"cohort"`
	SocialLinks   string `json:"socialLinks" db:"social_links"`
	ImageData     []byte `json:"-" db:"image_data"`
	ThumbnailData []byte `json:"-" db:"thumbnail_data"`
	User          *User  `json:"user,omitempty"` // Relation, no db tag
}
