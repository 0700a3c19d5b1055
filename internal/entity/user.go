package entity

type User struct {
	Base

	Username string `gorm:"uniqueIndex"`

	ProviderName   string `gorm:"uniqueIndex:idx_users_provider"`
	ProviderUserID string `gorm:"uniqueIndex:idx_users_provider"`

	AvatarURL string
	Settings  Map `gorm:"type:text"`
}
