package transaction

import (
	"context"
	"fmt"

	"github.com/jhoicas/violett-api/internal/application/dto"
	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/repository"
)

// StrictStatusUpdater envuelve otro StatusUpdater y rechaza transiciones sin sentido:
// devuelto en una venta, o salir de devuelto/completado.
// La verificación y la escritura no son atómicas entre sí (última escritura gana).
type StrictStatusUpdater struct {
	next StatusUpdater
	repo repository.TransactionRepository
}

// NewStrictStatusUpdater construye el envoltorio.
func NewStrictStatusUpdater(next StatusUpdater, repo repository.TransactionRepository) *StrictStatusUpdater {
	return &StrictStatusUpdater{next: next, repo: repo}
}

// UpdateStatus valida la transición y delega.
func (s *StrictStatusUpdater) UpdateStatus(ctx context.Context, id int64, status string) (*dto.TransactionResponse, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NewNotFound("transacción", id)
	}
	if err := checkTransition(t, status); err != nil {
		return nil, err
	}
	return s.next.UpdateStatus(ctx, id, status)
}

func checkTransition(t *entity.Transaction, to string) error {
	if t.Status == to {
		return nil
	}
	var v domain.Validator
	if to == entity.StatusReturned && t.Type != entity.TypeRental {
		v.Add("estado", "sólo una renta puede marcarse como devuelta")
	}
	if t.Status == entity.StatusReturned || t.Status == entity.StatusCompleted {
		v.Add("estado", fmt.Sprintf("una transacción %s no puede cambiar a %s", t.Status, to))
	}
	return v.Err("transición de estado no permitida")
}
