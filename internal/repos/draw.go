package repos

import (
	"gorm.io/gorm"

	"github.com/petuhovskiy/qsampler/internal/models"
)

type DrawRepo struct {
	db *gorm.DB
}

func NewDrawRepo(db *gorm.DB) *DrawRepo {
	return &DrawRepo{
		db: db,
	}
}

// Save draw to the database.
func (r *DrawRepo) Save(draw *models.Draw) error {
	return r.db.Save(draw).Error
}

