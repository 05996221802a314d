package models_test

import (
	"testing"

	"github.com/smarthealthquote/smarthealthquote/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "$285.00", models.FormatCents(28500))
	assert.Equal(t, "$0.05", models.FormatCents(5))
	assert.Equal(t, "$1500.00", models.FormatCents(150000))
	assert.Equal(t, "-$12.34", models.FormatCents(-1234))
}
