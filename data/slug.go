package data

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const slugMaxLength = 50

// slugMaxProbes ограничивает количество последовательных проверок слага.
// После исчерпания лимита используется случайный суффикс, чтобы исключить
// бесконечный цикл при массовом создании досок с одинаковыми именами.
const slugMaxProbes = 25

// Slugify строит URL-безопасный идентификатор из имени доски.
// Имя приводится к нижнему регистру, все символы кроме [a-z0-9 -] удаляются,
// пробелы заменяются дефисами, повторы и краевые дефисы схлопываются,
// результат обрезается до 50 символов. Для имен без латинских символов
// (например, кириллица или японский) возвращается случайный токен.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	// Пробельные последовательности превращаются в одиночные дефисы
	slug := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if len(slug) > slugMaxLength {
		slug = slug[:slugMaxLength]
	}

	if slug == "" {
		return randomSlugToken()
	}
	return slug
}

// randomSlugToken возвращает короткий случайный алфавитно-цифровой токен.
func randomSlugToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
}

// GenerateUniqueSlugWithTx подбирает свободный слаг для имени доски в рамках транзакции.
// Проверка ведется по всем активным доскам (не только доскам пользователя).
// На коллизии последовательно пробуются суффиксы -1, -2, ...; после slugMaxProbes
// попыток добавляется случайный суффикс. Окончательную гарантию уникальности
// дает UNIQUE-индекс на Boards.Slug - вызывающая сторона повторяет вставку при конфликте.
func GenerateUniqueSlugWithTx(tx *sqlx.Tx, name string) (string, error) {
	base := Slugify(name)
	slug := base
	for i := 1; i <= slugMaxProbes; i++ {
		var exists bool
		err := tx.Get(&exists, `SELECT COUNT(*) > 0 FROM Boards WHERE Slug = ?`, slug)
		if err != nil {
			return "", fmt.Errorf("GenerateUniqueSlugWithTx: ошибка проверки слага %s: %w", slug, err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, randomSlugToken()), nil
}
