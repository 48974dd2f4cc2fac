package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/utils/pricing"
)

// keywordRule — одно правило классификации: подстрока и присваиваемая категория
type keywordRule struct {
	keyword  string
	category string
}

// Правила проверяются по порядку, побеждает первое совпадение.
// Эвристика по подстрокам в названии услуги, менять порядок нельзя.
var platformRules = []keywordRule{
	{"instagram", "instagram"},
	{"ig ", "instagram"},
	{"tiktok", "tiktok"},
	{"tik tok", "tiktok"},
	{"youtube", "youtube"},
	{"yt ", "youtube"},
	{"facebook", "facebook"},
	{"fb ", "facebook"},
	{"twitter", "twitter"},
	{"x.com", "twitter"},
	{"telegram", "telegram"},
	{"tg ", "telegram"},
	{"whatsapp", "whatsapp"},
	{"spotify", "spotify"},
	{"snapchat", "snapchat"},
	{"linkedin", "linkedin"},
	{"twitch", "twitch"},
	{"discord", "discord"},
}

var serviceTypeRules = []keywordRule{
	{"follower", "followers"},
	{"subscriber", "subscribers"},
	{"like", "likes"},
	{"view", "views"},
	{"comment", "comments"},
	{"share", "shares"},
	{"repost", "shares"},
	{"member", "members"},
	{"watch", "watchtime"},
	{"stream", "streams"},
	{"save", "saves"},
	{"story", "story"},
}

func classify(name string, rules []keywordRule) string {
	lower := strings.ToLower(name)
	for _, rule := range rules {
		if strings.Contains(lower, rule.keyword) {
			return rule.category
		}
	}
	return "other"
}

// CatalogService отвечает за синхронизацию каталога с поставщиком
// и выдачу прайс-листа пользователям.
type CatalogService struct {
	serviceRepo domain.ServiceRepository
	supplier    domain.SupplierClient
	markupPct   int64
	equityValue int64
	logger      *zap.Logger
}

// NewCatalogService создает новый CatalogService
func NewCatalogService(
	serviceRepo domain.ServiceRepository,
	supplier domain.SupplierClient,
	markupPct int64,
	equityValue int64,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		supplier:    supplier,
		markupPct:   markupPct,
		equityValue: equityValue,
		logger:      logger,
	}
}

// Sync загружает каталог поставщика и обновляет локальную копию.
// Ошибка отдельной позиции логируется и считается, но не прерывает пакет.
func (s *CatalogService) Sync(ctx context.Context) (*domain.SyncResult, error) {
	supplierServices, err := s.supplier.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog service: failed to fetch supplier catalog: %w", err)
	}

	result := &domain.SyncResult{}
	for _, ss := range supplierServices {
		rate, err := strconv.ParseFloat(ss.Rate, 64)
		if err != nil {
			s.logger.Warn("skipping service with unparsable rate",
				zap.Int64("service_id", ss.ID),
				zap.String("rate", ss.Rate))
			result.Errors++
			continue
		}

		nairaRate := pricing.NairaRate(rate, s.markupPct)
		svc := &domain.Service{
			ServiceID:   ss.ID,
			Name:        ss.Name,
			Category:    ss.Category,
			Platform:    classify(ss.Name, platformRules),
			ServiceType: classify(ss.Name, serviceTypeRules),
			Rate:        rate,
			NairaRate:   nairaRate,
			OurRate:     pricing.EquityRate(nairaRate, s.equityValue),
			Min:         ss.Min,
			Max:         ss.Max,
			Refill:      ss.Refill,
			Cancel:      ss.Cancel,
		}

		inserted, err := s.serviceRepo.UpsertService(ctx, svc)
		if err != nil {
			s.logger.Warn("failed to upsert service",
				zap.Int64("service_id", ss.ID),
				zap.Error(err))
			result.Errors++
			continue
		}
		if inserted {
			result.Added++
		} else {
			result.Updated++
		}
	}

	s.logger.Info("catalog sync finished",
		zap.Int("added", result.Added),
		zap.Int("updated", result.Updated),
		zap.Int("errors", result.Errors))

	return result, nil
}

// ListGrouped возвращает активные услуги, сгруппированные по платформе
func (s *CatalogService) ListGrouped(ctx context.Context) (map[string][]*domain.Service, error) {
	services, err := s.serviceRepo.ListActiveServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog service: failed to list services: %w", err)
	}

	grouped := make(map[string][]*domain.Service)
	for _, svc := range services {
		grouped[svc.Platform] = append(grouped[svc.Platform], svc)
	}
	for _, group := range grouped {
		sort.Slice(group, func(i, j int) bool { return group[i].ServiceID < group[j].ServiceID })
	}

	return grouped, nil
}

// GetService возвращает одну позицию каталога
func (s *CatalogService) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("catalog service: failed to get service %d: %w", serviceID, err)
	}
	return svc, nil
}

// SetActive включает или выключает позицию каталога
func (s *CatalogService) SetActive(ctx context.Context, serviceID int64, active bool) error {
	if err := s.serviceRepo.SetServiceActive(ctx, serviceID, active); err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return err
		}
		return fmt.Errorf("catalog service: failed to toggle service %d: %w", serviceID, err)
	}
	return nil
}
