package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/violett-api/internal/application/dto"
	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/repository"
)

// CustomerUseCase directorio de clientes. No impone unicidad de (nombre, teléfono):
// esa deduplicación sólo la aplica el motor de transacciones.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create registra un cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &entity.Customer{
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
	}
	if err := ValidateCustomer(c); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

// GetByID obtiene un cliente; NotFoundError si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound("cliente", id)
	}
	return dto.NewCustomerResponse(c), nil
}

// List devuelve los clientes en orden de alta.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.NewCustomerResponse(c))
	}
	return items, nil
}

// Update aplica los campos presentes; NotFoundError si no existe.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound("cliente", id)
	}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if err := ValidateCustomer(c); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

// FindByNameAndPhone coincidencia exacta en ambos campos; (nil, nil) si no hay.
func (uc *CustomerUseCase) FindByNameAndPhone(ctx context.Context, name, phone string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.FindByNameAndPhone(ctx, name, phone)
	if err != nil || c == nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

// ValidateCustomer nombre y domicilio requeridos, teléfono de 8 a 15 dígitos.
func ValidateCustomer(c *entity.Customer) error {
	var v domain.Validator
	v.Check(c.Name != "", "nombre", "es requerido")
	v.Check(c.Address != "", "domicilio", "es requerido")
	v.Check(entity.ValidPhone(c.Phone), "telefono", "debe tener entre 8 y 15 dígitos")
	return v.Err("datos de cliente inválidos")
}
