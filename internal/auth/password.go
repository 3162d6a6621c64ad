package auth

import "golang.org/x/crypto/bcrypt"

// passwordCost — фиксированная стоимость bcrypt: проверка укладывается
// примерно в 100мс на обычном железе.
const passwordCost = 10

// HashPassword возвращает bcrypt-дайджест пароля. Соль генерируется заново
// при каждом вызове, поэтому два хеша одного пароля различаются.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword сверяет пароль с сохранённым дайджестом.
// Неверный пароль и повреждённый дайджест неразличимы для вызывающего:
// оба дают false, без ошибки.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
