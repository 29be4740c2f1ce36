package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// MasterService manages the client and product masters and the seller
// profile backing every invoice.
type MasterService interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, client *domain.Client) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetSellerProfile(ctx context.Context) (*domain.SellerProfile, error)
	UpsertSellerProfile(ctx context.Context, profile *domain.SellerProfile) error
}

type masterService struct {
	clients  port.ClientRepository
	products port.ProductRepository
	profile  port.SellerProfileRepository
}

// NewMasterService creates the master-data service.
func NewMasterService(
	clients port.ClientRepository,
	products port.ProductRepository,
	profile port.SellerProfileRepository,
) MasterService {
	return &masterService{clients: clients, products: products, profile: profile}
}

func (s *masterService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}

func (s *masterService) CreateClient(ctx context.Context, client *domain.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		return domain.NewValidationError("name", "client name is required")
	}
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	return s.clients.Create(ctx, client)
}

func (s *masterService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *masterService) CreateProduct(ctx context.Context, product *domain.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return domain.NewValidationError("name", "product name is required")
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	return s.products.Create(ctx, product)
}

func (s *masterService) GetSellerProfile(ctx context.Context) (*domain.SellerProfile, error) {
	return s.profile.Get(ctx)
}

func (s *masterService) UpsertSellerProfile(ctx context.Context, profile *domain.SellerProfile) error {
	profile.CompanyName = strings.TrimSpace(profile.CompanyName)
	if profile.CompanyName == "" {
		return domain.NewValidationError("company_name", "company name is required")
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.UpdatedAt = time.Now().UTC()
	return s.profile.Upsert(ctx, profile)
}
