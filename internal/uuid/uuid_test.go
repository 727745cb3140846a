package uuid_test

import (
	"testing"

	"github.com/KirkDiggler/ability-engine/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	first := gen.New()
	second := gen.New()

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}
