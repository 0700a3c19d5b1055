package entity

const (
	ActionUserCreated        = "user_created"
	ActionAccessTokenCreated = "access_token_created"
	ActionAccessTokenDeleted = "access_token_deleted"
)

type ActionLog struct {
	Base

	UserID string `gorm:"index"`
	Type   string
}
