package gateway

import (
	"context"

	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// Technicians загружает всех техников: GET /api/admin/technicians.
func (c *Client) Technicians(ctx context.Context) ([]models.Technician, error) {
	return List[models.Technician](ctx, c, ResourceTechnicians, nil)
}

// UpdateTechnician частично обновляет техника JSON-запросом PATCH.
func (c *Client) UpdateTechnician(ctx context.Context, id string, patch models.TechnicianPatch) (models.Technician, error) {
	return Update[models.Technician](ctx, c, ResourceTechnicians, id, patch)
}

// DeleteTechnician удаляет техника.
func (c *Client) DeleteTechnician(ctx context.Context, id string) error {
	return Delete(ctx, c, ResourceTechnicians, id)
}
