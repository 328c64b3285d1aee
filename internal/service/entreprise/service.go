package entreprise

import (
	"context"
	"strings"

	"github.com/gestipay/paie-backend-go/internal/domain/entreprise"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
)

type EntrepriseServiceImpl struct {
	entrepriseRepo entreprise.EntrepriseRepository
	guard          Guard
}

type Guard interface {
	AllowedFor(p user.Principal, entrepriseID string) error
}

func NewEntrepriseService(entrepriseRepo entreprise.EntrepriseRepository, guard Guard) entreprise.EntrepriseService {
	return &EntrepriseServiceImpl{
		entrepriseRepo: entrepriseRepo,
		guard:          guard,
	}
}

func (s *EntrepriseServiceImpl) Create(ctx context.Context, principal user.Principal, req entreprise.CreateEntrepriseRequest) (entreprise.EntrepriseResponse, error) {
	if principal.Role != user.RoleSuperAdmin {
		return entreprise.EntrepriseResponse{}, user.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return entreprise.EntrepriseResponse{}, err
	}

	created, err := s.entrepriseRepo.Create(ctx, entreprise.Entreprise{
		Nom:     strings.TrimSpace(req.Nom),
		Adresse: req.Adresse,
		Devise:  strings.ToUpper(req.Devise),
	})
	if err != nil {
		return entreprise.EntrepriseResponse{}, err
	}

	return entreprise.ToResponse(created), nil
}

func (s *EntrepriseServiceImpl) GetByID(ctx context.Context, principal user.Principal, id string) (entreprise.EntrepriseResponse, error) {
	if err := s.guard.AllowedFor(principal, id); err != nil {
		return entreprise.EntrepriseResponse{}, err
	}

	e, err := s.entrepriseRepo.GetByID(ctx, id)
	if err != nil {
		return entreprise.EntrepriseResponse{}, err
	}

	return entreprise.ToResponse(e), nil
}

func (s *EntrepriseServiceImpl) List(ctx context.Context, principal user.Principal) ([]entreprise.EntrepriseResponse, error) {
	if principal.Role != user.RoleSuperAdmin {
		return nil, user.ErrForbidden
	}

	entreprises, err := s.entrepriseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]entreprise.EntrepriseResponse, 0, len(entreprises))
	for _, e := range entreprises {
		result = append(result, entreprise.ToResponse(e))
	}
	return result, nil
}
