package repos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petuhovskiy/qsampler/internal/models"
)

func TestDrawSaverArgs_Apply(t *testing.T) {
	args := DrawSaverArgs{Session: "desk", Run: 4}

	d := &models.Draw{Question: "A"}
	args.Apply(d)
	assert.Equal(t, "desk", d.Session)
	assert.Equal(t, uint(4), d.Run)

	// explicit values are kept
	d = &models.Draw{Session: "other", Run: 1}
	args.Apply(d)
	assert.Equal(t, "other", d.Session)
	assert.Equal(t, uint(1), d.Run)
}
