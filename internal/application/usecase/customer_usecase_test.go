package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/violett-api/internal/application/dto"
	"github.com/jhoicas/violett-api/internal/application/usecase"
	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/infrastructure/memory"
)

func TestCustomerUseCase_CreateSinUnicidad(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCustomerUseCase(memory.New().Repos().Customers)

	in := dto.CreateCustomerRequest{Name: "María González", Address: "Av. Juárez 123", Phone: "4521234567"}
	a, err := uc.Create(ctx, in)
	require.NoError(t, err)
	b, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	found, err := uc.FindByNameAndPhone(ctx, "María González", "4521234567")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, a.ID, found.ID)

	none, err := uc.FindByNameAndPhone(ctx, "maría gonzález", "4521234567")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCustomerUseCase_Validacion(t *testing.T) {
	uc := usecase.NewCustomerUseCase(memory.New().Repos().Customers)

	tests := []struct {
		name   string
		in     dto.CreateCustomerRequest
		fields []string
	}{
		{"vacío", dto.CreateCustomerRequest{}, []string{"nombre", "domicilio", "telefono"}},
		{"teléfono corto", dto.CreateCustomerRequest{Name: "Ana", Address: "Centro", Phone: "1234567"}, []string{"telefono"}},
		{"teléfono con letras", dto.CreateCustomerRequest{Name: "Ana", Address: "Centro", Phone: "45212a4567"}, []string{"telefono"}},
		{"teléfono largo", dto.CreateCustomerRequest{Name: "Ana", Address: "Centro", Phone: "1234567890123456"}, []string{"telefono"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.ElementsMatch(t, tt.fields, fieldNames(t, err))
		})
	}
}

func TestCustomerUseCase_Update(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCustomerUseCase(memory.New().Repos().Customers)
	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana", Address: "Centro", Phone: "4521234567"})
	require.NoError(t, err)

	addr := "Col. Revolución"
	got, err := uc.Update(ctx, c.ID, dto.UpdateCustomerRequest{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Col. Revolución", got.Address)
	assert.Equal(t, "Ana", got.Name)

	bad := "12"
	_, err = uc.Update(ctx, c.ID, dto.UpdateCustomerRequest{Phone: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, 42, dto.UpdateCustomerRequest{Address: &addr})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
