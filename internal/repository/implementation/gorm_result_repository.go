package implementation

import (
	"context"
	"errors"

	"ai-pitch-evaluator-be/internal/model"
	"ai-pitch-evaluator-be/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormResultRepository struct {
	db *gorm.DB
}

func NewGormResultRepository(db *gorm.DB) *GormResultRepository {
	return &GormResultRepository{db: db}
}

func (r *GormResultRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&model.PitchResult{})
}

func (r *GormResultRepository) Get(ctx context.Context, userName string) ([]byte, bool, error) {
	var m model.PitchResult
	if err := r.db.WithContext(ctx).Where("user_name = ?", userName).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(m.Value), true, nil
}

func (r *GormResultRepository) Put(ctx context.Context, userName string, value []byte) error {
	m := model.PitchResult{UserName: userName, Value: datatypes.JSON(value)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}

func (r *GormResultRepository) ListRaw(ctx context.Context) ([]contract.RawResult, error) {
	var models []model.PitchResult
	if err := r.db.WithContext(ctx).Order("user_name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]contract.RawResult, 0, len(models))
	for _, m := range models {
		out = append(out, contract.RawResult{UserName: m.UserName, Value: []byte(m.Value)})
	}
	return out, nil
}
