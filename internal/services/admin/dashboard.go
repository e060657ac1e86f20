package admin

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// Dashboard собирает сводку из четырёх эндпоинтов, запрошенных параллельно.
// Ошибка любого из них отменяет остальные.
func (s *Service) Dashboard(ctx context.Context, ts gateway.TokenSource) (models.Dashboard, error) {
	const op = "admin.Dashboard"

	api := s.api(ts)
	var (
		totals   models.DashboardTotals
		recent   []models.Booking
		services []models.PopularService
		techs    []models.TechnicianStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = api.DashboardTotals(gctx)
		return err
	})
	g.Go(func() (err error) {
		recent, err = api.RecentBookings(gctx)
		return err
	})
	g.Go(func() (err error) {
		services, err = api.PopularServices(gctx)
		return err
	})
	g.Go(func() (err error) {
		techs, err = api.TechnicianStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	out := models.Dashboard{
		Totals:          totals,
		RecentBookings:  make([]models.RecentBooking, 0, len(recent)),
		TopServices:     make([]models.PopularService, 0, len(services)),
		TechPerformance: techs,
	}
	if out.TechPerformance == nil {
		out.TechPerformance = []models.TechnicianStats{}
	}
	for _, b := range recent {
		out.RecentBookings = append(out.RecentBookings, recentBooking(b))
	}
	for _, svc := range services {
		svc.Label = ServiceLabel(svc.ServiceType)
		out.TopServices = append(out.TopServices, svc)
	}
	return out, nil
}

// PaymentStatus приводит статус оплаты к виду для отображения.
func PaymentStatus(raw string) string {
	switch raw {
	case "paid":
		return "Paid"
	case "pending":
		return "Pending"
	default:
		return "Unknown"
	}
}

// ServiceLabel превращает snake_case ключ вида работ в заголовок:
// "gas_topup" даёт "Gas Topup".
func ServiceLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func recentBooking(b models.Booking) models.RecentBooking {
	customer := personName(b.User)
	if customer == "" {
		customer = "Unknown"
	}
	return models.RecentBooking{
		ID:            b.ID,
		ServiceType:   b.ServiceType,
		Price:         b.ServiceFee,
		PaymentStatus: PaymentStatus(b.PaymentStatus),
		CustomerName:  customer,
		Technician:    personName(b.AssignedTechnician),
		Date:          b.Date,
	}
}
