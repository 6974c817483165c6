package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// LockSlot usa advisory lock de transação: liberado no COMMIT/ROLLBACK.
func (r *AppointmentGormRepository) LockSlot(
	ctx context.Context,
	slot domain.Slot,
) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "appointment-slot:"+slot.Key()).
		Error
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) UserExists(
	ctx context.Context,
	id uint,
) (bool, error) {
	return exists(ctx, r.db, &models.User{}, id)
}

func (r *AppointmentGormRepository) ServiceExists(
	ctx context.Context,
	id uint,
) (bool, error) {
	return exists(ctx, r.db, &models.Service{}, id)
}

// --------------------------------------------------
// Conflict
// --------------------------------------------------

func (r *AppointmentGormRepository) SlotTaken(
	ctx context.Context,
	slot domain.Slot,
	excludeID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"date = ? AND time_slot = ? AND status <> ? AND id <> ?",
			slot.DateKey(),
			slot.TimeSlot,
			string(domain.StatusCancelled),
			excludeID,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("User", "Service").Create(ap).Error
}

func (r *AppointmentGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("User", "Service").Save(ap).Error
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service")

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.ServiceID != nil {
		q = q.Where("service_id = ?", *f.ServiceID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.From != nil {
		q = q.Where("date >= ?", f.From.Format(domain.DateLayout))
	}
	if f.To != nil {
		q = q.Where("date <= ?", f.To.Format(domain.DateLayout))
	}

	apps := []models.Appointment{}
	if err := q.
		Order("date ASC").
		Order("time_slot ASC").
		Order("id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func exists(ctx context.Context, db *gorm.DB, model any, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
