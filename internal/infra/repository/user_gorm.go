package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Transaction(
	ctx context.Context,
	fn func(tx account.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UserGormRepository{db: tx})
	})
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserGormRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindConflicting(
	ctx context.Context,
	email string,
	cpf string,
	excludeID uint,
) (*models.User, error) {

	q := r.db.WithContext(ctx).Where("id <> ?", excludeID)

	switch {
	case email != "" && cpf != "":
		q = q.Where("email = ? OR cpf = ?", email, cpf)
	case email != "":
		q = q.Where("email = ?", email)
	case cpf != "":
		q = q.Where("cpf = ?", cpf)
	default:
		return nil, nil
	}

	var users []models.User
	if err := q.Limit(1).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// List devolve os usuários com o total de agendamentos de cada um.
func (r *UserGormRepository) List(ctx context.Context, query string) ([]account.Summary, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*, COUNT(appointments.id) AS appointment_count").
		Joins("LEFT JOIN appointments ON appointments.user_id = users.id").
		Group("users.id")

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("users.name ILIKE ? OR users.email ILIKE ?", like, like)
	}

	list := []account.Summary{}
	if err := q.Order("users.name ASC").Scan(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserGormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserGormRepository) DeleteAppointments(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Appointment{})

	return res.RowsAffected, res.Error
}

var _ account.Repository = (*UserGormRepository)(nil)
