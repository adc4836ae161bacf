package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"простое имя", "My Board", "my-board"},
		{"лишние пробелы", "  My   Board  ", "my-board"},
		{"спецсимволы", "My Board! (v2)", "my-board-v2"},
		{"дефисы схлопываются", "a -- b --- c", "a-b-c"},
		{"краевые дефисы", "-hello-", "hello"},
		{"цифры сохраняются", "Sprint 42", "sprint-42"},
		{"уже слаг", "already-a-slug", "already-a-slug"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := strings.Repeat("abcde ", 20)
	slug := Slugify(long)
	assert.LessOrEqual(t, len(slug), slugMaxLength)
	assert.NotEmpty(t, slug)
}

func TestSlugifyNonLatinFallsBackToRandom(t *testing.T) {
	slug := Slugify("Моя доска")
	assert.Len(t, slug, 6)
	// Повторный вызов дает другой токен
	assert.NotEqual(t, slug, Slugify("Моя доска"))
}

func TestGenerateUniqueSlugProbesSuffixes(t *testing.T) {
	testDB(t)

	first := mustCreateBoard(t, 1, "My Board")
	assert.Equal(t, "my-board", first.Slug)

	second := mustCreateBoard(t, 1, "My Board")
	assert.Equal(t, "my-board-1", second.Slug)

	third := mustCreateBoard(t, 1, "My Board")
	assert.Equal(t, "my-board-2", third.Slug)
}

func TestGenerateUniqueSlugExhaustsProbes(t *testing.T) {
	testDB(t)

	// Занимаем базовый слаг и все последовательные суффиксы
	for i := 0; i <= slugMaxProbes; i++ {
		_ = mustCreateBoard(t, 1, "Clone")
	}

	board := mustCreateBoard(t, 1, "Clone")
	require.True(t, strings.HasPrefix(board.Slug, "clone-"))
	// Случайный суффикс вместо следующего номера
	assert.NotEqual(t, "clone-26", board.Slug)
}
