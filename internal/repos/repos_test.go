package repos

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/petuhovskiy/qsampler/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Draw{}, &models.RunCounter{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Run with `export $(cat .env | xargs) && go test ./internal/repos/ -v`
func TestRunRepo_Next(t *testing.T) {
	db := testDB(t)
	repo := NewRunRepo(db)
	session := fmt.Sprintf("test-%d", time.Now().UnixNano())

	first, err := repo.Next(session)
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	second, err := repo.Next(session)
	require.NoError(t, err)
	assert.Equal(t, uint(2), second)

	other, err := repo.Next(session + "-other")
	require.NoError(t, err)
	assert.Equal(t, uint(1), other)
}

func TestDrawSaver_Save(t *testing.T) {
	db := testDB(t)
	session := fmt.Sprintf("test-%d", time.Now().UnixNano())
	saver := NewDrawSaver(NewDrawRepo(db), DrawSaverArgs{Session: session, Run: 3})

	draw := &models.Draw{Seq: 1, Question: "A", Answer: "1", Weight: 2, Active: 4}
	require.NoError(t, saver.Save(draw))
	assert.NotZero(t, draw.ID)

	var stored models.Draw
	require.NoError(t, db.First(&stored, draw.ID).Error)
	assert.Equal(t, session, stored.Session)
	assert.Equal(t, uint(3), stored.Run)
	assert.Equal(t, "A", stored.Question)
	assert.Equal(t, 2.0, stored.Weight)
}
