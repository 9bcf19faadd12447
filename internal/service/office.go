package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"OnDuty/internal/model"
	"OnDuty/internal/model/dto"
	pkgerrors "OnDuty/pkg/errors"
	"OnDuty/pkg/logger"
	"OnDuty/pkg/metrics"
	"OnDuty/storage/database"
	"OnDuty/utils"
)

const (
	minRadiusMeters = 10
	maxRadiusMeters = 500
)

var (
	officeService *OfficeService
	officeOnce    sync.Once
)

func Office() *OfficeService {
	officeOnce.Do(func() {
		officeService = &OfficeService{}
	})
	return officeService
}

type OfficeService struct{}

// CreateOffice 创建办公地点，可选地在同一事务内激活
func (s *OfficeService) CreateOffice(ctx context.Context, req *dto.CreateOfficeRequest) (*dto.OfficeData, error) {
	if !utils.ValidCoordinate(req.Latitude, req.Longitude) {
		return nil, pkgerrors.InvalidCoordinates
	}
	if req.RadiusMeters < minRadiusMeters || req.RadiusMeters > maxRadiusMeters {
		return nil, pkgerrors.InvalidRadius
	}

	method := req.DetectionMethod
	if method == "" {
		method = "gps"
	}

	office := &model.OfficeLocation{
		Name:            req.Name,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		RadiusMeters:    req.RadiusMeters,
		DetectionMethod: method,
		AccuracyMeters:  req.AccuracyMeters,
		IsActive:        false,
	}

	db := database.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(office).Error; err != nil {
			return fmt.Errorf("failed to create office: %w", err)
		}
		if req.Activate {
			return activateOfficeTx(tx, office.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.Activate {
		office.IsActive = true
	}

	logger.Logger.Info("Office location created",
		zap.Int64("office_id", office.ID),
		zap.String("name", office.Name),
		zap.Bool("active", office.IsActive),
	)

	return toOfficeData(office), nil
}

// ActivateOffice 激活指定办公地点，其余全部停用，整体原子执行
func (s *OfficeService) ActivateOffice(ctx context.Context, officeID int64) (*dto.OfficeData, error) {
	db := database.DB().WithContext(ctx)

	var office model.OfficeLocation
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&office, officeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.OfficeNotFound
			}
			return fmt.Errorf("failed to query office: %w", err)
		}
		return activateOfficeTx(tx, officeID)
	})
	if err != nil {
		return nil, err
	}

	office.IsActive = true
	logger.Logger.Info("Office location activated",
		zap.Int64("office_id", officeID),
		zap.String("name", office.Name),
	)

	return toOfficeData(&office), nil
}

// activateOfficeTx 先停用全部，再激活目标行
func activateOfficeTx(tx *gorm.DB, officeID int64) error {
	if err := tx.Model(&model.OfficeLocation{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate offices: %w", err)
	}
	if err := tx.Model(&model.OfficeLocation{}).
		Where("id = ?", officeID).
		Update("is_active", true).Error; err != nil {
		return fmt.Errorf("failed to activate office: %w", err)
	}
	return nil
}

// GetActiveOffice 查询当前激活的办公地点
func (s *OfficeService) GetActiveOffice(ctx context.Context) (*model.OfficeLocation, error) {
	var office model.OfficeLocation
	err := database.DB().WithContext(ctx).
		Where("is_active = ?", true).
		First(&office).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NoActiveOffice
		}
		return nil, fmt.Errorf("failed to query active office: %w", err)
	}
	return &office, nil
}

// ListOffices 查询全部办公地点
func (s *OfficeService) ListOffices(ctx context.Context) ([]*dto.OfficeData, error) {
	var offices []model.OfficeLocation
	err := database.DB().WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&offices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}

	result := make([]*dto.OfficeData, 0, len(offices))
	for i := range offices {
		result = append(result, toOfficeData(&offices[i]))
	}
	return result, nil
}

// Evaluate 地理围栏判定，距离等于半径时放行
// 没有激活的办公地点时判定失败并返回配置错误，不允许静默放行
func (s *OfficeService) Evaluate(ctx context.Context, lat, lon float64) (*dto.GeofenceResult, error) {
	if !utils.ValidCoordinate(lat, lon) {
		return nil, pkgerrors.InvalidCoordinates
	}

	office, err := s.GetActiveOffice(ctx)
	if err != nil {
		return &dto.GeofenceResult{Allowed: false, DistanceMeters: 0}, err
	}

	distance := utils.HaversineDistance(lat, lon, office.Latitude, office.Longitude)
	metrics.RecordGeofenceDistance(office.ID, distance)

	return fenceResult(office, distance), nil
}

func fenceResult(office *model.OfficeLocation, distance float64) *dto.GeofenceResult {
	result := &dto.GeofenceResult{
		Allowed:        distance <= office.RadiusMeters,
		DistanceMeters: distance,
		RadiusMeters:   office.RadiusMeters,
		OfficeID:       office.ID,
		OfficeName:     office.Name,
	}
	if !result.Allowed {
		result.ExcessMeters = utils.Round2(distance - office.RadiusMeters)
	}
	return result
}

func toOfficeData(o *model.OfficeLocation) *dto.OfficeData {
	return &dto.OfficeData{
		ID:           o.ID,
		Name:         o.Name,
		Latitude:     o.Latitude,
		Longitude:    o.Longitude,
		RadiusMeters: o.RadiusMeters,
		IsActive:     o.IsActive,
	}
}
