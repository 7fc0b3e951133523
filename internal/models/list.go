package models

// List is an ordered column of cards within a board. Position is a
// caller-assigned sort key; values need not be contiguous and are not
// compacted on delete.
type List struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	BoardID  uint   `gorm:"not null;index" json:"board_id"`
	Position int    `gorm:"not null" json:"position"`
}
