package authentication

// keystring.go keeps the CLI session on the OS keyring, namespaced by sanitized email.
import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "cineforo-cli"
	activeKey   = "active_session"
	tokenSuffix = "_auth_tokens"
)

// ErrNoSession means nobody is logged in on this device
var ErrNoSession = errors.New("no active session, run 'cineforo auth login' first")

type StoredCredentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Expired reports whether the access token is past its expiry at now
func (c *StoredCredentials) Expired(now time.Time) bool {
	return c.ExpiresAt > 0 && now.Unix() >= c.ExpiresAt
}

// SanitizeEmail turns an email into a storage key prefix: lower case, "@" and "." become "_"
func SanitizeEmail(email string) string {
	r := strings.NewReplacer("@", "_", ".", "_")
	return r.Replace(strings.ToLower(strings.TrimSpace(email)))
}

func tokenKey(email string) string {
	return SanitizeEmail(email) + tokenSuffix
}

// SetActive marks email as the user the CLI acts as
func SetActive(email string) error {
	return keyring.Set(serviceName, activeKey, strings.ToLower(strings.TrimSpace(email)))
}

func Active() (string, error) {
	email, err := keyring.Get(serviceName, activeKey)
	if errors.Is(err, keyring.ErrNotFound) || (err == nil && email == "") {
		return "", ErrNoSession
	}
	return email, err
}

func ClearActive() error {
	return ignoreNotFound(keyring.Delete(serviceName, activeKey))
}

func StoreTokens(email string, creds *StoredCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, tokenKey(email), string(data))
}

func GetTokens(email string) (*StoredCredentials, error) {
	value, err := keyring.Get(serviceName, tokenKey(email))
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func DeleteTokens(email string) error {
	return ignoreNotFound(keyring.Delete(serviceName, tokenKey(email)))
}

func ignoreNotFound(err error) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
