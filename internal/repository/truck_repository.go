package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"frota-service/internal/model"
)

// ErrVersionMismatch sinaliza uma escrita com versão obsoleta; a política de
// last-write-wins do sistema antigo foi trocada por checagem otimista.
var ErrVersionMismatch = errors.New("version mismatch")

type TruckRepository struct {
	db *gorm.DB
}

func NewTruckRepository(db *gorm.DB) *TruckRepository {
	return &TruckRepository{db: db}
}

func (r *TruckRepository) Create(ctx context.Context, truck *model.Truck) error {
	return r.db.WithContext(ctx).Create(truck).Error
}

func (r *TruckRepository) GetByID(ctx context.Context, id string) (*model.Truck, error) {
	var truck model.Truck
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&truck).Error
	if err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *TruckRepository) GetByPlate(ctx context.Context, plate string) (*model.Truck, error) {
	var truck model.Truck
	err := r.db.WithContext(ctx).Where("plate = ?", plate).First(&truck).Error
	if err != nil {
		return nil, err
	}
	return &truck, nil
}

type TruckListFilter struct {
	Status   *model.TruckStatus
	DriverID *string
}

func (r *TruckRepository) List(ctx context.Context, filter TruckListFilter) ([]model.Truck, error) {
	var trucks []model.Truck
	query := r.db.WithContext(ctx).Model(&model.Truck{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}

	if err := query.Order("created_at DESC").Find(&trucks).Error; err != nil {
		return nil, err
	}
	return trucks, nil
}

// UpdateVersioned grava o caminhão somente se a versão gravada ainda for
// expectedVersion; truck.Version já deve carregar expectedVersion+1.
func (r *TruckRepository) UpdateVersioned(ctx context.Context, truck *model.Truck, expectedVersion int64) error {
	res := r.db.WithContext(ctx).
		Model(truck).
		Where("version = ?", expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(truck)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	return nil
}

func (r *TruckRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Truck{}).Error
}

func (r *TruckRepository) CountByStatus(ctx context.Context) (map[model.TruckStatus]int64, error) {
	type row struct {
		Status model.TruckStatus
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Truck{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.TruckStatus]int64, len(rows))
	for _, item := range rows {
		counts[item.Status] += item.Total
	}
	return counts, nil
}
