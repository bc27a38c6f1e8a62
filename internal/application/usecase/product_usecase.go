package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ellaliza/stockley/internal/application/dto"
	"github.com/ellaliza/stockley/internal/application/inventory"
	"github.com/ellaliza/stockley/internal/application/membership"
	"github.com/ellaliza/stockley/internal/domain"
	"github.com/ellaliza/stockley/internal/domain/entity"
	"github.com/ellaliza/stockley/internal/domain/repository"
	"github.com/ellaliza/stockley/pkg/sku"
)

// ProductUseCase casos de uso de productos, siempre con la membresía verificada
// antes de leer o mutar. Los cambios de cantidad delegan en el motor de
// movimientos; aquí nunca se escribe current_stock directamente.
type ProductUseCase struct {
	txRunner     inventory.TxRunner
	movementUC   *inventory.MovementUseCase
	membershipUC *membership.MembershipUseCase
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	movementUC *inventory.MovementUseCase,
	membershipUC *membership.MembershipUseCase,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     txRunner,
		movementUC:   movementUC,
		membershipUC: membershipUC,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Create crea un producto y registra su stock inicial como movimiento IN en la
// misma transacción. Requiere membresía en la tienda.
func (uc *ProductUseCase) Create(ctx context.Context, actingUserID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := buildProduct(in)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		memberRepo repository.StoreMemberRepository,
	) error {
		member, err := memberRepo.GetByStoreAndUser(in.StoreID, actingUserID)
		if err != nil {
			return err
		}
		if member == nil {
			return domain.ErrUnauthorized
		}
		if err := productRepo.Create(product); err != nil {
			return err
		}
		return uc.movementUC.RecordInitialStockInTx(movRepo, product, actingUserID)
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// BulkCreate crea varios productos de una tienda en una sola transacción, cada
// uno con su movimiento de stock inicial. Todo-o-nada.
func (uc *ProductUseCase) BulkCreate(ctx context.Context, actingUserID string, in dto.BulkCreateProductRequest) ([]dto.ProductResponse, error) {
	if len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	products := make([]*entity.Product, 0, len(in.Products))
	for _, p := range in.Products {
		p.StoreID = in.StoreID
		product, err := buildProduct(p)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		memberRepo repository.StoreMemberRepository,
	) error {
		member, err := memberRepo.GetByStoreAndUser(in.StoreID, actingUserID)
		if err != nil {
			return err
		}
		if member == nil {
			return domain.ErrUnauthorized
		}
		for _, product := range products {
			if err := productRepo.Create(product); err != nil {
				return err
			}
			if err := uc.movementUC.RecordInitialStockInTx(movRepo, product, actingUserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

// Get obtiene un producto de una tienda. Requiere membresía; si el producto no
// pertenece a esa tienda devuelve ErrNotFound.
func (uc *ProductUseCase) Get(actingUserID, storeID, productID string) (*dto.ProductResponse, error) {
	if err := uc.membershipUC.RequireMember(actingUserID, storeID); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByStoreAndID(storeID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// List devuelve todos los productos de una tienda. Requiere membresía.
func (uc *ProductUseCase) List(actingUserID, storeID string) (*dto.ProductListResponse, error) {
	if err := uc.membershipUC.RequireMember(actingUserID, storeID); err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Update actualiza nombre y umbral mínimo de un producto. No toca contadores
// de stock: esos cambian únicamente vía movimientos.
func (uc *ProductUseCase) Update(actingUserID, storeID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.membershipUC.RequireMember(actingUserID, storeID); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByStoreAndID(storeID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.MinimumStockLevel != nil {
		product.MinimumStockLevel = *in.MinimumStockLevel
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Sell registra una salida (venta): OUT por quantity unidades.
func (uc *ProductUseCase) Sell(ctx context.Context, actingUserID, storeID, productID string, in dto.MovementRequest) (*dto.ProductResponse, error) {
	return uc.applyMovement(ctx, actingUserID, storeID, productID, entity.MovementTypeOUT, in)
}

// Restock registra una entrada (reposición): IN por quantity unidades.
func (uc *ProductUseCase) Restock(ctx context.Context, actingUserID, storeID, productID string, in dto.MovementRequest) (*dto.ProductResponse, error) {
	return uc.applyMovement(ctx, actingUserID, storeID, productID, entity.MovementTypeIN, in)
}

// Reserve aparta unidades para un pedido pendiente (RESERVE). La reserva es
// informativa: no descuenta disponibilidad para venta.
func (uc *ProductUseCase) Reserve(ctx context.Context, actingUserID, storeID, productID string, in dto.MovementRequest) (*dto.ProductResponse, error) {
	return uc.applyMovement(ctx, actingUserID, storeID, productID, entity.MovementTypeRESERVE, in)
}

func (uc *ProductUseCase) applyMovement(ctx context.Context, actingUserID, storeID, productID, movType string, in dto.MovementRequest) (*dto.ProductResponse, error) {
	product, _, err := uc.movementUC.Apply(ctx, inventory.MovementInput{
		UserID:    actingUserID,
		StoreID:   storeID,
		ProductID: productID,
		Type:      movType,
		Quantity:  in.Quantity,
		Note:      in.Note,
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Movements devuelve el historial de movimientos de un producto (paginado).
// Requiere membresía en la tienda del producto.
func (uc *ProductUseCase) Movements(actingUserID, storeID, productID string, limit, offset int) (*dto.MovementListResponse, error) {
	if err := uc.membershipUC.RequireMember(actingUserID, storeID); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByStoreAndID(storeID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movementRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Note:      m.Note,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func buildProduct(in dto.CreateProductRequest) (*entity.Product, error) {
	if in.StoreID == "" || in.Name == "" || in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	code := in.SKU
	if code == "" {
		code = sku.Generate()
	}
	minimum := entity.DefaultMinimumStockLevel
	if in.MinimumStockLevel != nil {
		minimum = *in.MinimumStockLevel
	}
	now := time.Now()
	return &entity.Product{
		ID:                uuid.New().String(),
		StoreID:           in.StoreID,
		SKU:               code,
		Name:              in.Name,
		InitialStock:      in.InitialStock,
		CurrentStock:      in.InitialStock,
		MinimumStockLevel: minimum,
		ReservedStock:     0,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// ToProductResponse convierte la entidad a DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		StoreID:           p.StoreID,
		SKU:               p.SKU,
		Name:              p.Name,
		InitialStock:      p.InitialStock,
		CurrentStock:      p.CurrentStock,
		MinimumStockLevel: p.MinimumStockLevel,
		ReservedStock:     p.ReservedStock,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
