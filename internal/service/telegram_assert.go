package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// assertionMaxAge — после этого срока auth_date считается протухшим
// и привязка отклоняется.
const assertionMaxAge = 24 * time.Hour

// TelegramAssertion — payload login widget'а Telegram: утверждаемая
// идентичность плюс подпись платформы над остальными полями.
type TelegramAssertion struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	AuthDate  int64  `json:"auth_date"`
	Hash      string `json:"hash"`
}

// TelegramVerifier проверяет подпись login widget'а по схеме платформы:
// HMAC-SHA256 над отсортированной строкой key=value, ключ — SHA256 от
// токена бота. Без этой проверки chat id в assertion нельзя доверять.
type TelegramVerifier struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time // подменяется в тестах
}

func NewTelegramVerifier(botToken string) *TelegramVerifier {
	key := sha256.Sum256([]byte(botToken))
	return &TelegramVerifier{key: key[:], maxAge: assertionMaxAge, now: time.Now}
}

// Check возвращает ErrStaleAssertion для устаревшего auth_date и
// ErrBadAssertion при несовпадении подписи.
func (v *TelegramVerifier) Check(a TelegramAssertion) error {
	authAt := time.Unix(a.AuthDate, 0)
	if v.now().Sub(authAt) > v.maxAge {
		return ErrStaleAssertion
	}

	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(dataCheckString(a)))
	want := mac.Sum(nil)

	got, err := hex.DecodeString(a.Hash)
	if err != nil || !hmac.Equal(got, want) {
		return ErrBadAssertion
	}
	return nil
}

// dataCheckString собирает строку проверки: все поля кроме hash,
// непустые, в алфавитном порядке ключей, через '\n'.
func dataCheckString(a TelegramAssertion) string {
	pairs := []string{
		fmt.Sprintf("auth_date=%d", a.AuthDate),
		fmt.Sprintf("first_name=%s", a.FirstName),
		fmt.Sprintf("id=%d", a.ID),
	}
	if a.LastName != "" {
		pairs = append(pairs, "last_name="+a.LastName)
	}
	if a.PhotoURL != "" {
		pairs = append(pairs, "photo_url="+a.PhotoURL)
	}
	if a.Username != "" {
		pairs = append(pairs, "username="+a.Username)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\n")
}
