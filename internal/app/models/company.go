package models

// Company defines the company model based on the 'companies' table
type Company struct {
	ID            int64  `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Address       string `json:"address" db:"address"`
	Contact       string `json:"contact" db:"contact"`
	Description   string `json:"description" db:"description"`
	ImageData     []byte `json:"-" db:"image_data"`
	ThumbnailData []byte `json:"-" db:"thumbnail_data"`
	User          *User  `json:"user,omitempty"` // Relation, no db tag
}
