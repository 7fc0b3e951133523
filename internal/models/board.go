package models

// Board is a named workspace owning lists. Creating a board also
// creates the owner BoardUser row for CreatedBy in the same
// transaction; deleting a board removes its memberships, lists, and
// cards.
type Board struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"not null" json:"name"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	CreatedBy       uint   `gorm:"not null;index" json:"created_by"`
}
