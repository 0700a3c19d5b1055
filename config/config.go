package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	ApiServer ServerConfigs
	ClientURL string
	Database  DatabaseConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Storage   S3Configs
	File      FileConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type AuthConfigs struct {
	// TokenSecret signs the registration carrier token.
	TokenSecret string

	// Https controls the Secure flag of every auth cookie.
	Https bool

	AccessToken  TokenConfigs
	Registration TokenConfigs

	GitHub OAuth2Configs
	GitLab OAuth2Configs
	Google OAuth2Configs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type OAuth2Configs struct {
	Name         string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	// REST providers.
	AuthURL  string
	TokenURL string
	UserURL  string

	// Field names of the user-info payload. Empty values fall back to
	// "id", "login" and "avatar_url".
	IDField        string
	UsernameField  string
	AvatarURLField string

	// OIDC providers.
	Issuer string
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	SSLDisabled    bool
}

type FileConfigs struct {
	MaxSize      int64
	AvatarBucket string
}
