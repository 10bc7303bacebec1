package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"frota-service/internal/model"
)

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) Create(ctx context.Context, route *model.Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *RouteRepository) GetByID(ctx context.Context, id string) (*model.Route, error) {
	var route model.Route
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&route).Error
	if err != nil {
		return nil, err
	}
	route.Normalize()
	return &route, nil
}

func (r *RouteRepository) GetByCode(ctx context.Context, code string) (*model.Route, error) {
	var route model.Route
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&route).Error
	if err != nil {
		return nil, err
	}
	route.Normalize()
	return &route, nil
}

type RouteListFilter struct {
	Status   *model.WorkStatus
	DriverID *string
	TruckID  *string
}

func (r *RouteRepository) List(ctx context.Context, filter RouteListFilter) ([]model.Route, error) {
	var routes []model.Route
	query := r.db.WithContext(ctx).Model(&model.Route{})

	if filter.Status != nil {
		query = query.Where("status IN ?", model.StatusFilterValues(*filter.Status))
	}
	if filter.DriverID != nil {
		// Motorista pode ser o titular ou constar apenas na lista de
		// auxiliares guardada em JSONB.
		member, _ := json.Marshal([]string{*filter.DriverID})
		query = query.Where("driver_id = ? OR assigned_drivers @> ?", *filter.DriverID, string(member))
	}
	if filter.TruckID != nil {
		query = query.Where("truck_id = ?", *filter.TruckID)
	}

	if err := query.Order("created_at DESC").Find(&routes).Error; err != nil {
		return nil, err
	}
	for i := range routes {
		routes[i].Normalize()
	}
	return routes, nil
}

func (r *RouteRepository) UpdateVersioned(ctx context.Context, route *model.Route, expectedVersion int64) error {
	res := r.db.WithContext(ctx).
		Model(route).
		Where("version = ?", expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(route)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	return nil
}

func (r *RouteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Route{}).Error
}

func (r *RouteRepository) CountByStatus(ctx context.Context) (map[model.WorkStatus]int64, error) {
	type row struct {
		Status model.WorkStatus
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Route{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.WorkStatus]int64, len(rows))
	for _, item := range rows {
		counts[model.NormalizeStatus(item.Status)] += item.Total
	}
	return counts, nil
}
