package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) Transaction(
	ctx context.Context,
	fn func(tx catalog.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ServiceGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceGormRepository) Get(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceGormRepository) List(ctx context.Context, f catalog.ListFilter) ([]models.Service, error) {
	q := r.db.WithContext(ctx)

	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if f.Query != "" {
		q = q.Where("name ILIKE ?", "%"+f.Query+"%")
	}

	list := []models.Service{}
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ServiceGormRepository) Update(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ServiceGormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Appointments of the service
// --------------------------------------------------

func (r *ServiceGormRepository) CancelFutureAppointments(
	ctx context.Context,
	serviceID uint,
	from appointment.Slot,
) (int64, error) {

	day := from.DateKey()

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("service_id = ? AND status <> ?", serviceID, string(appointment.StatusCancelled)).
		Where("date > ? OR (date = ? AND time_slot >= ?)", day, day, from.TimeSlot).
		Update("status", string(appointment.StatusCancelled))

	return res.RowsAffected, res.Error
}

func (r *ServiceGormRepository) DeleteAppointments(ctx context.Context, serviceID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Delete(&models.Appointment{})

	return res.RowsAffected, res.Error
}

var _ catalog.Repository = (*ServiceGormRepository)(nil)
