package main

import (
	"os"
	"strconv"
	"time"

	"github.com/pastevault/backend/config"
)

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return def
}

func getBoolEnv(key string, def bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}

	return def
}

func getInt64Env(key string, def int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}

	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}

	return def
}

func (s *srv) loadConfig() {
	s.cfg = config.Configs{
		Env:       getEnv("ENV", "local"),
		ClientURL: getEnv("CLIENT_URL", "http://localhost:3000"),
		ApiServer: config.ServerConfigs{
			Host: getEnv("API_HOST", "localhost"),
			Port: getEnv("API_PORT", "8080"),
			Cert: getEnv("API_CERT", ""),
			Key:  getEnv("API_KEY", ""),
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "pastevault"),
			Password: getEnv("MYSQL_PASSWORD", "pastevault"),
			Database: getEnv("MYSQL_DATABASE", "pastevault"),
		},
		Session: config.SessionConfigs{
			Secret: getEnv("SESSION_SECRET", "session-secret"),
			Name:   getEnv("SESSION_NAME", "auth_session"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			Https:       getBoolEnv("HTTPS", false),
			AccessToken: config.TokenConfigs{
				Name:       getEnv("ACCESS_TOKEN_NAME", "pastevault"),
				Expiration: getDurationEnv("ACCESS_TOKEN_DURATION", 30*24*time.Hour),
			},
			Registration: config.TokenConfigs{
				Name:       getEnv("REGISTRATION_TOKEN_NAME", "pastevault-registration"),
				Expiration: getDurationEnv("REGISTRATION_TOKEN_DURATION", time.Hour),
			},
			GitHub: config.OAuth2Configs{
				Name:         "github",
				ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
				ClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
				RedirectURL:  getEnv("GITHUB_REDIRECT_URL", ""),
				Scopes:       []string{"read:user"},
				AuthURL:      "https://github.com/login/oauth/authorize",
				TokenURL:     "https://github.com/login/oauth/access_token",
				UserURL:      "https://api.github.com/user",
			},
			GitLab: config.OAuth2Configs{
				Name:          "gitlab",
				ClientID:      getEnv("GITLAB_CLIENT_ID", ""),
				ClientSecret:  getEnv("GITLAB_CLIENT_SECRET", ""),
				RedirectURL:   getEnv("GITLAB_REDIRECT_URL", ""),
				Scopes:        []string{"read_user"},
				AuthURL:       "https://gitlab.com/oauth/authorize",
				TokenURL:      "https://gitlab.com/oauth/token",
				UserURL:       "https://gitlab.com/api/v4/user",
				UsernameField: "username",
			},
			Google: config.OAuth2Configs{
				Name:         "google",
				ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
				ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
				RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
				Scopes:       []string{"profile", "email"},
				Issuer:       "https://accounts.google.com",
			},
		},
		Storage: config.S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", ""),
			SSLDisabled:    getBoolEnv("STORAGE_SSL_DISABLED", true),
		},
		File: config.FileConfigs{
			MaxSize:      getInt64Env("MAX_FILE_SIZE", 2<<20),
			AvatarBucket: getEnv("AVATAR_BUCKET", "avatars"),
		},
	}
}
