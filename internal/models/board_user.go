package models

// Board membership roles.
const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// BoardUser is the membership/ACL row linking a user to a board. The
// pair (BoardID, UserID) is the primary key.
type BoardUser struct {
	BoardID uint   `gorm:"primaryKey;autoIncrement:false" json:"board_id"`
	UserID  uint   `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Role    string `gorm:"not null" json:"role"`
	Starred bool   `gorm:"not null;default:false" json:"starred"`
}
