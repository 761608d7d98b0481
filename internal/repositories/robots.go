package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/rohits-web03/robofriends/internal/models"
	"gorm.io/gorm"
)

// ErrAlreadyExists reports a username, email or phone collision.
var ErrAlreadyExists = errors.New("robot already exists")

const pgUniqueViolation = "23505"

type RobotRepository struct {
	db *gorm.DB
}

func NewRobotRepository(db *gorm.DB) *RobotRepository {
	return &RobotRepository{db: db}
}

// List returns every robot in insertion order. The slice is never nil.
func (r *RobotRepository) List(ctx context.Context) ([]models.Robot, error) {
	robots := []models.Robot{}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&robots).Error; err != nil {
		return nil, err
	}
	return robots, nil
}

// PhoneExists matches phone exactly; no normalization is applied.
func (r *RobotRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Robot{}).Where("phone = ?", phone).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stores the robot. The unique indexes are the authority on
// duplicates; a collision comes back as ErrAlreadyExists.
func (r *RobotRepository) Create(ctx context.Context, in models.NewRobot) (models.Robot, error) {
	robot := in.Robot()
	if err := r.db.WithContext(ctx).Create(&robot).Error; err != nil {
		if isUniqueViolation(err) {
			return models.Robot{}, ErrAlreadyExists
		}
		return models.Robot{}, err
	}
	return robot, nil
}

func (r *RobotRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Robot{}).Count(&count).Error
	return count, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
