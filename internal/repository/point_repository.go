package repository

import (
	"context"
	"time"

	"github.com/archonitDev/reformly-server/internal/model"
	"gorm.io/gorm"
)

// PointSum is one row of the grouped ledger aggregation.
type PointSum struct {
	UserUID string `gorm:"column:user_uid"`
	Points  int64  `gorm:"column:points"`
}

type PointRepository interface {
	// Record appends a ledger entry and applies the delta to the user's
	// cached total in one transaction. It reports whether the total was
	// clamped at zero. A zero delta is a no-op.
	Record(ctx context.Context, userUID string, delta int64, source model.PointSource) (clamped bool, err error)
	// GroupSums sums ledger deltas per user, optionally bounded to
	// entries created at or after from, ordered by the sum descending.
	GroupSums(ctx context.Context, from *time.Time, limit int) ([]PointSum, error)
}

type pointRepository struct {
	db *gorm.DB
}

func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepository{db: db}
}

func (r *pointRepository) Record(ctx context.Context, userUID string, delta int64, source model.PointSource) (bool, error) {
	if delta == 0 {
		return false, nil
	}
	clamped := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := &model.PointEntry{
			UserUID: userUID,
			Delta:   delta,
			Source:  source,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		// The guarded UPDATE takes the row lock that serializes
		// concurrent writers for the same user. Zero rows affected
		// means the user does not exist and the whole unit aborts.
		res := tx.Model(&model.User{}).
			Where("uid = ?", userUID).
			UpdateColumn("total_points", gorm.Expr("total_points + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// The cached total never goes negative; the ledger keeps the
		// raw history.
		clampRes := tx.Model(&model.User{}).
			Where("uid = ? AND total_points < 0", userUID).
			UpdateColumn("total_points", 0)
		if clampRes.Error != nil {
			return clampRes.Error
		}
		clamped = clampRes.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return clamped, nil
}

func (r *pointRepository) GroupSums(ctx context.Context, from *time.Time, limit int) ([]PointSum, error) {
	if limit <= 0 {
		limit = 20
	}
	q := r.db.WithContext(ctx).
		Model(&model.PointEntry{}).
		Select("user_uid, SUM(delta) AS points").
		Group("user_uid").
		Order("points DESC").
		Limit(limit)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	var sums []PointSum
	if err := q.Scan(&sums).Error; err != nil {
		return nil, err
	}
	return sums, nil
}
