package redisx

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

var _ fiber.Storage = (*Storage)(nil)

func TestKeysArePrefixed(t *testing.T) {
	s := NewStorage(New("127.0.0.1:0"), "limiter:")
	assert.Equal(t, "limiter:1.2.3.4", s.key("1.2.3.4"))
}

func TestEmptyKeysAreNoops(t *testing.T) {
	s := NewStorage(New("127.0.0.1:0"), "csrf:")
	b, err := s.Get("")
	assert.NoError(t, err)
	assert.Nil(t, b)
	assert.NoError(t, s.Set("", []byte("x"), 0))
	assert.NoError(t, s.Delete(""))
}
