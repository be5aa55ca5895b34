package postgres

import (
	"context"
	"errors"

	"github.com/Prince260602/internhubs/internal/models"
	"github.com/Prince260602/internhubs/internal/utils"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	Insert(ctx context.Context, log *models.NotificationLog) error
	ListByKind(ctx context.Context, kind models.NotificationKind, limit int) ([]models.NotificationLog, error)
	GetByID(ctx context.Context, id string) (*models.NotificationLog, error)
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

// MigrateNotifications creates or updates the notification_logs table.
func MigrateNotifications(db *gorm.DB) error {
	return db.AutoMigrate(&models.NotificationLog{})
}

func (r *notificationRepo) Insert(ctx context.Context, log *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *notificationRepo) ListByKind(ctx context.Context, kind models.NotificationKind, limit int) ([]models.NotificationLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []models.NotificationLog
	q := r.db.WithContext(ctx)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*models.NotificationLog, error) {
	var row models.NotificationLog
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

type nopNotificationRepo struct{}

// NopNotificationRepo drops every record. Used when POSTGRES_URI is unset.
func NopNotificationRepo() NotificationRepo { return nopNotificationRepo{} }

func (nopNotificationRepo) Insert(context.Context, *models.NotificationLog) error { return nil }

func (nopNotificationRepo) ListByKind(context.Context, models.NotificationKind, int) ([]models.NotificationLog, error) {
	return []models.NotificationLog{}, nil
}

func (nopNotificationRepo) GetByID(context.Context, string) (*models.NotificationLog, error) {
	return nil, utils.ErrNotFound
}
