package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/domain"
	"github.com/jhoicas/ventas-pos/internal/domain/entity"
	"github.com/jhoicas/ventas-pos/internal/domain/repository"
)

// InventoryUseCase consultas y movimientos de existencias.
type InventoryUseCase struct {
	repo     repository.InventoryRepository
	txRunner TxRunner
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository, txRunner TxRunner) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, txRunner: txRunner}
}

// List devuelve todo el inventario ordenado por id.
func (uc *InventoryUseCase) List(ctx context.Context) (*dto.ItemListResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{Items: make([]dto.ItemResponse, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, toItemResponse(it))
	}
	return out, nil
}

// GetByID devuelve un producto o domain.ErrItemNotFound.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	r := toItemResponse(item)
	return &r, nil
}

// GetByName busca un producto por nombre sin distinguir mayúsculas.
func (uc *InventoryUseCase) GetByName(ctx context.Context, name string) (*dto.ItemResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
	}
	item, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	r := toItemResponse(item)
	return &r, nil
}

// Insert registra un producto nuevo. Sin cantidad, entra con 0 existencias.
func (uc *InventoryUseCase) Insert(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	var qty int64
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	item := &entity.InventoryItem{ID: in.ID, Name: strings.TrimSpace(in.Name), UnitPrice: in.UnitPrice, Quantity: qty}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	if err := uc.repo.Insert(ctx, item); err != nil {
		return nil, err
	}
	r := toItemResponse(item)
	return &r, nil
}

// Update reemplaza nombre, precio y cantidad del producto id.
func (uc *InventoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item := &entity.InventoryItem{ID: id, Name: strings.TrimSpace(in.Name), UnitPrice: in.UnitPrice, Quantity: in.Quantity}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	r := toItemResponse(item)
	return &r, nil
}

// Upsert registra el producto o, si el id ya existe, reemplaza sus datos.
// created indica cuál de los dos caminos se tomó. Lo usa la importación de inventario.
func (uc *InventoryUseCase) Upsert(ctx context.Context, in dto.CreateItemRequest) (resp *dto.ItemResponse, created bool, err error) {
	resp, err = uc.Insert(ctx, in)
	if err == nil {
		return resp, true, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return nil, false, err
	}
	var qty int64
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	resp, err = uc.Update(ctx, in.ID, dto.UpdateItemRequest{Name: in.Name, UnitPrice: in.UnitPrice, Quantity: qty})
	if err != nil {
		return nil, false, err
	}
	return resp, false, nil
}

// RegisterSale descuenta qty de las existencias dentro de una transacción con la fila bloqueada.
func (uc *InventoryUseCase) RegisterSale(ctx context.Context, id int64, qty int64) (*dto.ItemResponse, error) {
	return uc.move(ctx, id, qty, func(item *entity.InventoryItem) error {
		if item.Quantity < qty {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, item.Quantity, qty)
		}
		item.Quantity -= qty
		return nil
	})
}

// RegisterPurchase suma qty a las existencias.
func (uc *InventoryUseCase) RegisterPurchase(ctx context.Context, id int64, qty int64) (*dto.ItemResponse, error) {
	return uc.move(ctx, id, qty, func(item *entity.InventoryItem) error {
		item.Quantity += qty
		return nil
	})
}

func (uc *InventoryUseCase) move(ctx context.Context, id, qty int64, apply func(*entity.InventoryItem) error) (*dto.ItemResponse, error) {
	if qty <= 0 {
		return nil, domain.ErrNonPositiveQuantity
	}
	var updated *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(repo repository.InventoryRepository) error {
		item, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		if err := apply(item); err != nil {
			return err
		}
		if err := repo.UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	r := toItemResponse(updated)
	return &r, nil
}

func validateItem(item *entity.InventoryItem) error {
	switch {
	case item.ID <= 0:
		return fmt.Errorf("%w: el id debe ser positivo", domain.ErrValidation)
	case item.Name == "":
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
	case item.UnitPrice.LessThan(decimal.Zero):
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrValidation)
	case item.Quantity < 0:
		return fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrValidation)
	}
	return nil
}

func toItemResponse(it *entity.InventoryItem) dto.ItemResponse {
	return dto.ItemResponse{ID: it.ID, Name: it.Name, UnitPrice: it.UnitPrice, Quantity: it.Quantity}
}
