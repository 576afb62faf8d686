package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/golang-sql/civil"
	"go.uber.org/zap"

	"ppe-tracker/internal/alerts"
	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/repositories"
	"ppe-tracker/pkg/types"
)

const dashboardCachePrefix = "dashboard:"

// DashboardInvalidator drops cached dashboards after a write.
type DashboardInvalidator interface {
	InvalidateDashboard(ctx context.Context)
}

type DashboardServiceInterface interface {
	DashboardInvalidator
	GetDashboard(ctx context.Context) (*dto.DashboardDTO, error)
	Refresh(ctx context.Context) (*dto.DashboardDTO, error)
}

type DashboardService struct {
	alertService   AlertServiceInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	inspectionRepo repositories.InspectionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	ttl            time.Duration
	listSize       int
	logger         *zap.Logger
}

func NewDashboardService(
	alertService AlertServiceInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	inspectionRepo repositories.InspectionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	ttl time.Duration,
	listSize int,
	logger *zap.Logger,
) *DashboardService {
	if listSize <= 0 {
		listSize = 10
	}
	return &DashboardService{
		alertService:   alertService,
		equipmentRepo:  equipmentRepo,
		inspectionRepo: inspectionRepo,
		cacheRepo:      cacheRepo,
		ttl:            ttl,
		listSize:       listSize,
		logger:         logger,
	}
}

func (s *DashboardService) cacheKey() string {
	return dashboardCachePrefix + s.alertService.Today().String()
}

// GetDashboard serves the cached dashboard of the day or builds a new one.
func (s *DashboardService) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	key := s.cacheKey()
	if raw, err := s.cacheRepo.Get(ctx, key); err == nil {
		var cached dto.DashboardDTO
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("dashboard cache entry is corrupt", zap.String("key", key))
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		s.logger.Warn("dashboard cache read failed", zap.Error(err))
	}

	return s.Refresh(ctx)
}

// Refresh rebuilds the dashboard and stores it in the cache.
func (s *DashboardService) Refresh(ctx context.Context) (*dto.DashboardDTO, error) {
	result, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.cacheRepo.Set(ctx, s.cacheKey(), payload, s.ttl); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

func (s *DashboardService) InvalidateDashboard(ctx context.Context) {
	if err := s.cacheRepo.DelByPrefix(ctx, dashboardCachePrefix); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) build(ctx context.Context) (*dto.DashboardDTO, error) {
	var (
		wg       sync.WaitGroup
		snapshot *AlertSnapshot
		byType   []types.DashboardCountByGroup
		recent   []entities.Inspection
		errs     [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		snapshot, errs[0] = s.alertService.Evaluate(ctx, nil)
	}()
	go func() {
		defer wg.Done()
		byType, errs[1] = s.equipmentRepo.CountByType(ctx)
	}()
	go func() {
		defer wg.Done()
		recent, errs[2] = s.inspectionRepo.Recent(ctx, uint64(s.listSize))
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return summarize(snapshot, byType, recent, s.listSize), nil
}

func summarize(snapshot *AlertSnapshot, byType []types.DashboardCountByGroup, recent []entities.Inspection, listSize int) *dto.DashboardDTO {
	result := &dto.DashboardDTO{
		AsOf:              snapshot.Today.String(),
		TotalEquipment:    len(snapshot.Alerts),
		CountByType:       byType,
		DueSoon:           []types.DashboardDueItem{},
		Overdue:           []types.DashboardDueItem{},
		RecentInspections: make([]types.DashboardActivityItem, 0, len(recent)),
	}

	var dueSoon, overdue []alerts.Alert
	for _, a := range snapshot.Alerts {
		switch a.Status {
		case alerts.StatusCurrent:
			result.Counts.Current++
		case alerts.StatusDueSoon:
			result.Counts.DueSoon++
			dueSoon = append(dueSoon, a)
		case alerts.StatusOverdue:
			result.Counts.Overdue++
			overdue = append(overdue, a)
		}
	}

	// Soonest / longest overdue first.
	byDue := func(list []alerts.Alert) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].NextDueDate.Before(list[j].NextDueDate) })
	}
	byDue(dueSoon)
	byDue(overdue)

	result.DueSoon = dueItems(dueSoon, snapshot.Today, listSize)
	result.Overdue = dueItems(overdue, snapshot.Today, listSize)

	for _, i := range recent {
		result.RecentInspections = append(result.RecentInspections, types.DashboardActivityItem{
			InspectionID:     i.ID,
			EquipmentID:      i.EquipmentID,
			CustomIdentifier: i.EquipmentIdentifier,
			InspectionDate:   i.InspectionDate.String(),
			InspectorName:    i.InspectorName,
			ResultStatus:     i.ResultStatusName,
		})
	}
	return result
}

// dueItems keeps the first limit alerts. DaysLeft is negative when overdue.
func dueItems(list []alerts.Alert, today civil.Date, limit int) []types.DashboardDueItem {
	if len(list) > limit {
		list = list[:limit]
	}
	items := make([]types.DashboardDueItem, 0, len(list))
	for _, a := range list {
		items = append(items, types.DashboardDueItem{
			EquipmentID:      a.Equipment.ID,
			CustomIdentifier: a.Equipment.CustomIdentifier,
			EquipmentType:    a.Equipment.EquipmentTypeName,
			NextDueDate:      a.NextDueDate.String(),
			DaysLeft:         a.NextDueDate.DaysSince(today),
		})
	}
	return items
}
