package models

// Card is a task item within a list. DueDate and CreatedAt are kept as
// plain strings for wire compatibility with existing clients.
type Card struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	ListID      uint   `gorm:"not null;index" json:"list_id"`
	Position    int    `gorm:"not null" json:"position"`
	DueDate     string `json:"due_date"`
	CreatedAt   string `gorm:"autoCreateTime:false" json:"created_at"`
	Description string `json:"description"`
}
