package admin

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/listview"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// ServiceCategory: навык техника, совпадает с видом работ в заявке.
type ServiceCategory struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ServiceCategories: навыки, из которых выбираются навыки техника.
var ServiceCategories = []ServiceCategory{
	{Key: "routine_cleaning", Label: "Routine Cleaning"},
	{Key: "gas_topup_and_leak_check", Label: "Gas Top-up & Leak Check"},
	{Key: "repair_and_fix", Label: "Repair and Fix"},
	{Key: "installation_and_relocation", Label: "Installation & Relocation"},
	{Key: "specialized_treatments", Label: "Specialized Treatments"},
	{Key: "other_services", Label: "Other Services"},
}

// TechnicianSlots: часы, в которые техник может быть доступен.
var TechnicianSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
}

func technicianEngine(pageSize int) (*listview.Engine[models.Technician], error) {
	return listview.New(listview.Config[models.Technician]{
		SearchFields: []func(models.Technician) string{
			func(t models.Technician) string { return t.Name },
			func(t models.Technician) string { return t.Email },
			func(t models.Technician) string { return strings.Join(t.Skills, " ") },
		},
		SortKeys: map[string]listview.Compare[models.Technician]{
			"name":   listview.ByFold(func(t models.Technician) string { return t.Name }),
			"email":  listview.ByFold(func(t models.Technician) string { return t.Email }),
			"skills": listview.By(func(t models.Technician) int { return len(t.Skills) }),
		},
		PageSize: pageSize,
		Mode:     listview.ClientPaged,
	})
}

// Technicians возвращает страницу техников.
func (s *Service) Technicians(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent) (views.Listing[models.Technician], error) {
	return views.Client(ctx, s.views, browserID, s.technicians, in, s.api(ts).Technicians)
}

// CreateTechnician регистрирует техника.
func (s *Service) CreateTechnician(ctx context.Context, ts gateway.TokenSource, in models.TechnicianSignup) error {
	const op = "admin.CreateTechnician"

	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%s: %w", op, invalid(describe(err)))
	}
	if err := checkTechnicianChoices(in.Skills, in.AvailableSlots); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.api(ts).SignupTechnician(ctx, in); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("technician created", sl.Op(op), slog.String("email", in.Email))
	return nil
}

// UpdateTechnician частично обновляет техника. Пароль меняется, только
// если задан.
func (s *Service) UpdateTechnician(ctx context.Context, ts gateway.TokenSource, id string, patch models.TechnicianPatch) (models.Technician, error) {
	const op = "admin.UpdateTechnician"

	if patch.Password != nil && *patch.Password == "" {
		patch.Password = nil
	}
	if err := s.validate.Struct(patch); err != nil {
		return models.Technician{}, fmt.Errorf("%s: %w", op, invalid(describe(err)))
	}
	if err := checkTechnicianChoices(patch.Skills, patch.AvailableSlots); err != nil {
		return models.Technician{}, fmt.Errorf("%s: %w", op, err)
	}

	t, err := s.api(ts).UpdateTechnician(ctx, id, patch)
	if err != nil {
		return models.Technician{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// DeleteTechnician удаляет техника.
func (s *Service) DeleteTechnician(ctx context.Context, ts gateway.TokenSource, id string) error {
	const op = "admin.DeleteTechnician"
	if err := s.api(ts).DeleteTechnician(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("technician deleted", sl.Op(op), slog.String("technician_id", id))
	return nil
}

func checkTechnicianChoices(skills, slots []string) error {
	for _, skill := range skills {
		if !knownCategory(skill) {
			return invalid(fmt.Sprintf("unknown skill %q", skill))
		}
	}
	for _, slot := range slots {
		if !slices.Contains(TechnicianSlots, slot) {
			return invalid(fmt.Sprintf("unknown time slot %q", slot))
		}
	}
	return nil
}

func knownCategory(key string) bool {
	for _, c := range ServiceCategories {
		if c.Key == key {
			return true
		}
	}
	return false
}
