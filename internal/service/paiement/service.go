package paiement

import (
	"context"
	"log/slog"

	"github.com/gestipay/paie-backend-go/internal/domain/audit"
	"github.com/gestipay/paie-backend-go/internal/domain/bulletin"
	"github.com/gestipay/paie-backend-go/internal/domain/paiement"
	"github.com/gestipay/paie-backend-go/internal/domain/paycycle"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
	"github.com/gestipay/paie-backend-go/internal/pkg/sse"
	"github.com/gestipay/paie-backend-go/internal/pkg/validator"
)

type PaiementServiceImpl struct {
	paiementRepo paiement.PaiementRepository
	bulletinRepo bulletin.BulletinRepository
	cycleRepo    paycycle.CycleRepository
	auditRepo    audit.AuditRepository
	guard        Guard
	hub          Publisher
}

type Guard interface {
	CanRecordPayments(p user.Principal) error
	AllowedFor(p user.Principal, entrepriseID string) error
}

type Publisher interface {
	Publish(event sse.Event)
}

func NewPaiementService(
	paiementRepo paiement.PaiementRepository,
	bulletinRepo bulletin.BulletinRepository,
	cycleRepo paycycle.CycleRepository,
	auditRepo audit.AuditRepository,
	guard Guard,
	hub Publisher,
) paiement.PaiementService {
	return &PaiementServiceImpl{
		paiementRepo: paiementRepo,
		bulletinRepo: bulletinRepo,
		cycleRepo:    cycleRepo,
		auditRepo:    auditRepo,
		guard:        guard,
		hub:          hub,
	}
}

func (s *PaiementServiceImpl) Create(ctx context.Context, principal user.Principal, req paiement.CreatePaiementRequest) (paiement.PaiementResponse, error) {
	if err := s.guard.CanRecordPayments(principal); err != nil {
		return paiement.PaiementResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return paiement.PaiementResponse{}, err
	}

	bul, err := s.bulletinRepo.GetByID(ctx, req.BulletinID)
	if err != nil {
		return paiement.PaiementResponse{}, err
	}
	if err := s.guard.AllowedFor(principal, bul.EntrepriseID); err != nil {
		return paiement.PaiementResponse{}, err
	}

	// Payments are only accepted while the cycle is VALIDATED: a draft cycle
	// has nothing final to settle, a closed one is already fully paid.
	cycle, err := s.cycleRepo.GetByID(ctx, bul.CycleID)
	if err != nil {
		return paiement.PaiementResponse{}, err
	}
	if cycle.StatutValidation != paycycle.StatusValidated {
		return paiement.PaiementResponse{}, paiement.ErrCycleNotPayable
	}

	var caissierID *string
	if principal.Role == user.RoleCaissier {
		caissierID = &principal.UserID
	}

	created, err := s.paiementRepo.Create(ctx, paiement.Paiement{
		BulletinID:   bul.ID,
		EntrepriseID: bul.EntrepriseID,
		Montant:      req.Montant,
		DatePaiement: req.ParseDatePaiement(),
		Mode:         paiement.Mode(req.Mode),
		Statut:       paiement.StatutComplete,
		Reference:    req.Reference,
		CaissierID:   caissierID,
	})
	if err != nil {
		return paiement.PaiementResponse{}, err
	}

	statut, err := s.syncBulletinStatut(ctx, bul)
	if err != nil {
		return paiement.PaiementResponse{}, err
	}

	s.recordAudit(ctx, principal, "CREATE_PAIEMENT", created.ID)

	if statut == bulletin.StatutPaid {
		s.hub.Publish(sse.Event{
			EntrepriseID: bul.EntrepriseID,
			Event:        sse.EventBulletinPaid,
			Data:         bulletin.ToResponse(bul),
		})
	}

	return paiement.ToResponse(created, string(statut)), nil
}

func (s *PaiementServiceImpl) ListByBulletin(ctx context.Context, principal user.Principal, bulletinID string) ([]paiement.PaiementResponse, error) {
	if err := s.guard.CanRecordPayments(principal); err != nil {
		return nil, err
	}

	bul, err := s.bulletinRepo.GetByID(ctx, bulletinID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AllowedFor(principal, bul.EntrepriseID); err != nil {
		return nil, err
	}

	paiements, err := s.paiementRepo.ListByBulletin(ctx, bulletinID)
	if err != nil {
		return nil, err
	}

	result := make([]paiement.PaiementResponse, 0, len(paiements))
	for _, p := range paiements {
		result = append(result, paiement.ToResponse(p, string(bul.StatutPaiement)))
	}
	return result, nil
}

func (s *PaiementServiceImpl) Update(ctx context.Context, principal user.Principal, req paiement.UpdatePaiementRequest) (paiement.PaiementResponse, error) {
	if err := s.guard.CanRecordPayments(principal); err != nil {
		return paiement.PaiementResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return paiement.PaiementResponse{}, err
	}

	p, err := s.paiementRepo.GetByID(ctx, req.ID)
	if err != nil {
		return paiement.PaiementResponse{}, err
	}
	if err := s.guard.AllowedFor(principal, p.EntrepriseID); err != nil {
		return paiement.PaiementResponse{}, err
	}

	bul, cycle, err := s.loadSettlementContext(ctx, p.BulletinID)
	if err != nil {
		return paiement.PaiementResponse{}, err
	}
	if cycle.StatutValidation != paycycle.StatusValidated {
		return paiement.PaiementResponse{}, paiement.ErrCycleNotPayable
	}

	if req.Montant != nil {
		p.Montant = *req.Montant
	}
	if req.Mode != nil {
		p.Mode = paiement.Mode(*req.Mode)
	}
	if req.DatePaiement != nil {
		if d, ok := validator.IsValidDate(*req.DatePaiement); ok {
			p.DatePaiement = d
		}
	}
	if req.Reference != nil {
		p.Reference = req.Reference
	}

	updated, err := s.paiementRepo.Update(ctx, p)
	if err != nil {
		return paiement.PaiementResponse{}, err
	}

	statut, err := s.syncBulletinStatut(ctx, bul)
	if err != nil {
		return paiement.PaiementResponse{}, err
	}

	s.recordAudit(ctx, principal, "UPDATE_PAIEMENT", updated.ID)

	if statut == bulletin.StatutPaid && bul.StatutPaiement != bulletin.StatutPaid {
		s.hub.Publish(sse.Event{
			EntrepriseID: bul.EntrepriseID,
			Event:        sse.EventBulletinPaid,
			Data:         bulletin.ToResponse(bul),
		})
	}

	return paiement.ToResponse(updated, string(statut)), nil
}

func (s *PaiementServiceImpl) Delete(ctx context.Context, principal user.Principal, id string) error {
	if err := s.guard.CanRecordPayments(principal); err != nil {
		return err
	}

	p, err := s.paiementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.AllowedFor(principal, p.EntrepriseID); err != nil {
		return err
	}

	bul, cycle, err := s.loadSettlementContext(ctx, p.BulletinID)
	if err != nil {
		return err
	}
	if cycle.StatutValidation != paycycle.StatusValidated {
		return paiement.ErrCycleNotPayable
	}

	if err := s.paiementRepo.Delete(ctx, id); err != nil {
		return err
	}

	if _, err := s.syncBulletinStatut(ctx, bul); err != nil {
		return err
	}

	s.recordAudit(ctx, principal, "DELETE_PAIEMENT", id)

	return nil
}

// loadSettlementContext resolves the bulletin and its cycle for payment
// mutations.
func (s *PaiementServiceImpl) loadSettlementContext(ctx context.Context, bulletinID string) (bulletin.Bulletin, paycycle.PayCycle, error) {
	bul, err := s.bulletinRepo.GetByID(ctx, bulletinID)
	if err != nil {
		return bulletin.Bulletin{}, paycycle.PayCycle{}, err
	}
	cycle, err := s.cycleRepo.GetByID(ctx, bul.CycleID)
	if err != nil {
		return bulletin.Bulletin{}, paycycle.PayCycle{}, err
	}
	return bul, cycle, nil
}

func (s *PaiementServiceImpl) Cancel(ctx context.Context, principal user.Principal, id string) error {
	if err := s.guard.CanRecordPayments(principal); err != nil {
		return err
	}

	p, err := s.paiementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.AllowedFor(principal, p.EntrepriseID); err != nil {
		return err
	}

	// Cancelling after closure would break the closed cycle's all-paid
	// invariant.
	bul, cycle, err := s.loadSettlementContext(ctx, p.BulletinID)
	if err != nil {
		return err
	}
	if cycle.StatutValidation != paycycle.StatusValidated {
		return paiement.ErrCycleNotPayable
	}

	if err := s.paiementRepo.SetStatut(ctx, id, paiement.StatutAnnule); err != nil {
		return err
	}

	if _, err := s.syncBulletinStatut(ctx, bul); err != nil {
		return err
	}

	s.recordAudit(ctx, principal, "CANCEL_PAIEMENT", id)

	return nil
}

// syncBulletinStatut re-derives the bulletin's payment status from the sum
// of its completed payments. Payments drive bulletin status, never the
// reverse.
func (s *PaiementServiceImpl) syncBulletinStatut(ctx context.Context, bul bulletin.Bulletin) (bulletin.StatutPaiement, error) {
	sum, err := s.paiementRepo.SumCompletedByBulletin(ctx, bul.ID)
	if err != nil {
		return "", err
	}

	statut := bulletin.StatutPending
	switch {
	case sum.GreaterThanOrEqual(bul.TotalAPayer) && sum.IsPositive():
		statut = bulletin.StatutPaid
	case sum.IsPositive():
		statut = bulletin.StatutPartial
	}

	if err := s.bulletinRepo.SetStatutPaiement(ctx, bul.ID, statut); err != nil {
		return "", err
	}
	return statut, nil
}

func (s *PaiementServiceImpl) recordAudit(ctx context.Context, principal user.Principal, action, paiementID string) {
	err := s.auditRepo.Create(ctx, audit.Record{
		Action:   action,
		Entity:   audit.EntityPaiement,
		EntityID: paiementID,
		UserID:   principal.UserID,
	})
	if err != nil {
		slog.Error("Failed to write audit record", "action", action, "paiement_id", paiementID, "error", err)
	}
}
