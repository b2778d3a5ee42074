package internal

import (
	"fmt"
	"strings"
	"time"

	"mood-chat/domain"
)

// Config is the environment of the server and the viewer.
type Config struct {
	Host    string `env:"HOST,default=localhost"`
	Port    int    `env:"PORT,default=8080"`
	OpsPort int    `env:"OPS_PORT,default=8089"`

	LogLevel       string `env:"LOG_LEVEL,default=info"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH"`

	TokenSecret   string        `env:"TOKEN_SECRET,required=true"`
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME,default=24h"`
	AllowedUsers  string        `env:"ALLOWED_USERS"`

	WordlistPath              string `env:"WORDLIST_PATH"`
	ModerationCharReplacement string `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`

	QueueSize            int           `env:"QUEUE_SIZE,default=64"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=256"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=5s"`
	RetryAttempts        int           `env:"RETRY_ATTEMPTS,default=3"`
	RetryBackoff         time.Duration `env:"RETRY_BACKOFF,default=50ms"`
	HistoryPageSize      int           `env:"HISTORY_PAGE_SIZE,default=50"`
	MaxPayloadBytes      int           `env:"MAX_PAYLOAD_BYTES,default=4096"`
	TypingTTL            time.Duration `env:"TYPING_TTL,default=6s"`
	ReapInterval         time.Duration `env:"REAP_INTERVAL,default=2s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=1s"`
}

// Replacement returns the moderation mask character.
func (c Config) Replacement() (rune, error) {
	r := []rune(c.ModerationCharReplacement)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			c.ModerationCharReplacement,
		)
	}
	return r[0], nil
}

// Users parses the comma-separated allow list; empty means any well-formed
// identity is accepted.
func (c Config) Users() []domain.UserID {
	if strings.TrimSpace(c.AllowedUsers) == "" {
		return nil
	}
	var users []domain.UserID
	for _, raw := range strings.Split(c.AllowedUsers, ",") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			users = append(users, domain.UserID(trimmed))
		}
	}
	return users
}
