package paycycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gestipay/paie-backend-go/internal/domain/audit"
	"github.com/gestipay/paie-backend-go/internal/domain/bulletin"
	"github.com/gestipay/paie-backend-go/internal/domain/employe"
	"github.com/gestipay/paie-backend-go/internal/domain/paycycle"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
	"github.com/gestipay/paie-backend-go/internal/pkg/database"
	"github.com/gestipay/paie-backend-go/internal/pkg/sse"
	"github.com/gestipay/paie-backend-go/internal/pkg/validator"
	"github.com/gestipay/paie-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CycleServiceImpl struct {
	cycleRepo    paycycle.CycleRepository
	bulletinRepo bulletin.BulletinRepository
	employeRepo  employe.EmployeRepository
	auditRepo    audit.AuditRepository
	guard        Guard
	hub          Publisher
	runTx        func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Guard is the slice of the authorization guard this service needs.
type Guard interface {
	CanManageCycles(p user.Principal) error
	CanViewCycles(p user.Principal) error
	AllowedFor(p user.Principal, entrepriseID string) error
}

// Publisher pushes dashboard events. Publishing is strictly after commit and
// never fails the operation.
type Publisher interface {
	Publish(event sse.Event)
}

func NewCycleService(
	db *database.DB,
	cycleRepo paycycle.CycleRepository,
	bulletinRepo bulletin.BulletinRepository,
	employeRepo employe.EmployeRepository,
	auditRepo audit.AuditRepository,
	guard Guard,
	hub Publisher,
) paycycle.CycleService {
	return &CycleServiceImpl{
		cycleRepo:    cycleRepo,
		bulletinRepo: bulletinRepo,
		employeRepo:  employeRepo,
		auditRepo:    auditRepo,
		guard:        guard,
		hub:          hub,
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

func (s *CycleServiceImpl) Create(ctx context.Context, principal user.Principal, req paycycle.CreateCycleRequest) (paycycle.CycleResponse, error) {
	if err := s.guard.CanManageCycles(principal); err != nil {
		return paycycle.CycleResponse{}, err
	}

	// ADMIN_ENTREPRISE always creates in its own enterprise; SUPER_ADMIN must
	// name one explicitly.
	entrepriseID := req.EntrepriseID
	if principal.Role != user.RoleSuperAdmin {
		if principal.EntrepriseID == nil {
			return paycycle.CycleResponse{}, user.ErrForbidden
		}
		entrepriseID = *principal.EntrepriseID
	}
	if entrepriseID == "" {
		return paycycle.CycleResponse{}, validator.ValidationErrors{{Field: "entreprise_id", Message: "is required"}}
	}

	if err := req.Validate(); err != nil {
		return paycycle.CycleResponse{}, err
	}

	debut, fin := req.Periode()
	created, err := s.cycleRepo.Create(ctx, paycycle.PayCycle{
		EntrepriseID:     entrepriseID,
		Nom:              strings.TrimSpace(req.Nom),
		Description:      req.Description,
		PeriodeDebut:     debut,
		PeriodeFin:       fin,
		Statut:           paycycle.StatutOpen,
		StatutValidation: paycycle.StatusDraft,
		Frequence:        paycycle.Frequence(req.Frequence),
	})
	if err != nil {
		return paycycle.CycleResponse{}, err
	}

	return paycycle.ToResponse(created), nil
}

func (s *CycleServiceImpl) GetByID(ctx context.Context, principal user.Principal, id string) (paycycle.CycleResponse, error) {
	if err := s.guard.CanViewCycles(principal); err != nil {
		return paycycle.CycleResponse{}, err
	}

	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return paycycle.CycleResponse{}, err
	}
	if err := s.guard.AllowedFor(principal, cycle.EntrepriseID); err != nil {
		return paycycle.CycleResponse{}, err
	}

	return paycycle.ToResponse(cycle), nil
}

func (s *CycleServiceImpl) List(ctx context.Context, principal user.Principal) ([]paycycle.CycleResponse, error) {
	if err := s.guard.CanViewCycles(principal); err != nil {
		return nil, err
	}

	var cycles []paycycle.PayCycle
	var err error
	if principal.Role == user.RoleSuperAdmin {
		cycles, err = s.cycleRepo.ListAll(ctx)
	} else {
		if principal.EntrepriseID == nil {
			return nil, user.ErrForbidden
		}
		cycles, err = s.cycleRepo.ListByEntreprise(ctx, *principal.EntrepriseID)
	}
	if err != nil {
		return nil, err
	}

	result := make([]paycycle.CycleResponse, 0, len(cycles))
	for _, c := range cycles {
		result = append(result, paycycle.ToResponse(c))
	}
	return result, nil
}

// Update edits name and description. Only DRAFT cycles are editable.
func (s *CycleServiceImpl) Update(ctx context.Context, principal user.Principal, req paycycle.UpdateCycleRequest) (paycycle.CycleResponse, error) {
	if err := s.guard.CanManageCycles(principal); err != nil {
		return paycycle.CycleResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return paycycle.CycleResponse{}, err
	}

	cycle, err := s.cycleRepo.GetByID(ctx, req.ID)
	if err != nil {
		return paycycle.CycleResponse{}, err
	}
	if err := s.guard.AllowedFor(principal, cycle.EntrepriseID); err != nil {
		return paycycle.CycleResponse{}, err
	}
	if cycle.StatutValidation != paycycle.StatusDraft {
		return paycycle.CycleResponse{}, &paycycle.InvalidTransitionError{Current: cycle.StatutValidation, Attempted: "UPDATE"}
	}

	if err := s.cycleRepo.Update(ctx, req); err != nil {
		return paycycle.CycleResponse{}, err
	}

	updated, err := s.cycleRepo.GetByID(ctx, req.ID)
	if err != nil {
		return paycycle.CycleResponse{}, err
	}
	return paycycle.ToResponse(updated), nil
}

func (s *CycleServiceImpl) Validate(ctx context.Context, principal user.Principal, id string) (paycycle.CycleResponse, error) {
	if err := s.guard.CanManageCycles(principal); err != nil {
		return paycycle.CycleResponse{}, err
	}

	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return paycycle.CycleResponse{}, err
	}
	if err := s.guard.AllowedFor(principal, cycle.EntrepriseID); err != nil {
		return paycycle.CycleResponse{}, err
	}

	won, err := s.cycleRepo.SetValidationStatus(ctx, id, paycycle.StatusDraft, paycycle.StatusValidated)
	if err != nil {
		return paycycle.CycleResponse{}, err
	}
	if !won {
		// Lost the conditional write: re-read so the error names the state
		// the cycle actually is in now.
		return paycycle.CycleResponse{}, s.transitionConflict(ctx, id, "VALIDATE")
	}

	s.recordAudit(ctx, principal, "VALIDATE_CYCLE", id)

	updated, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return paycycle.CycleResponse{}, err
	}

	s.hub.Publish(sse.Event{
		EntrepriseID: updated.EntrepriseID,
		Event:        sse.EventCycleValidated,
		Data:         paycycle.ToResponse(updated),
	})

	return paycycle.ToResponse(updated), nil
}

func (s *CycleServiceImpl) Close(ctx context.Context, principal user.Principal, id string) (paycycle.CycleResponse, error) {
	if err := s.guard.CanManageCycles(principal); err != nil {
		return paycycle.CycleResponse{}, err
	}

	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return paycycle.CycleResponse{}, err
	}
	if err := s.guard.AllowedFor(principal, cycle.EntrepriseID); err != nil {
		return paycycle.CycleResponse{}, err
	}

	// The settlement check and the status flip run in one transaction so a
	// payment cancelled between them cannot slip through.
	err = s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		total, unpaid, err := s.bulletinRepo.CountByCycle(txCtx, id)
		if err != nil {
			return err
		}
		if total == 0 || unpaid > 0 {
			return &paycycle.IncompleteSettlementError{Unpaid: unpaid, Total: total}
		}

		won, err := s.cycleRepo.SetValidationStatus(txCtx, id, paycycle.StatusValidated, paycycle.StatusClosed)
		if err != nil {
			return err
		}
		if !won {
			return s.transitionConflict(txCtx, id, "CLOSE")
		}

		return nil
	})
	if err != nil {
		return paycycle.CycleResponse{}, err
	}

	s.recordAudit(ctx, principal, "CLOSE_CYCLE", id)

	updated, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return paycycle.CycleResponse{}, err
	}

	s.hub.Publish(sse.Event{
		EntrepriseID: updated.EntrepriseID,
		Event:        sse.EventCycleClosed,
		Data:         paycycle.ToResponse(updated),
	})

	return paycycle.ToResponse(updated), nil
}

func (s *CycleServiceImpl) Delete(ctx context.Context, principal user.Principal, id string) error {
	if err := s.guard.CanManageCycles(principal); err != nil {
		return err
	}

	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.AllowedFor(principal, cycle.EntrepriseID); err != nil {
		return err
	}
	if cycle.StatutValidation != paycycle.StatusDraft {
		return &paycycle.InvalidTransitionError{Current: cycle.StatutValidation, Attempted: "DELETE"}
	}

	return s.cycleRepo.Delete(ctx, id)
}

// CanCashierPay never errors on a missing cycle or a wrong role: any
// condition that would block payment just yields false.
func (s *CycleServiceImpl) CanCashierPay(ctx context.Context, principal user.Principal, id string) (bool, error) {
	if principal.Role != user.RoleCaissier {
		return false, nil
	}

	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paycycle.ErrCycleNotFound) {
			return false, nil
		}
		return false, err
	}

	if !principal.SameEntreprise(cycle.EntrepriseID) {
		return false, nil
	}

	return cycle.StatutValidation == paycycle.StatusValidated, nil
}

func (s *CycleServiceImpl) GenerateBulletins(ctx context.Context, principal user.Principal, cycleID string) ([]bulletin.BulletinResponse, error) {
	if err := s.guard.CanManageCycles(principal); err != nil {
		return nil, err
	}

	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AllowedFor(principal, cycle.EntrepriseID); err != nil {
		return nil, err
	}
	// A closed cycle is settled; DRAFT and VALIDATED cycles may both
	// generate, so a late hire can still receive a bulletin after validation.
	if cycle.StatutValidation == paycycle.StatusClosed {
		return nil, &paycycle.InvalidTransitionError{Current: cycle.StatutValidation, Attempted: "GENERATE"}
	}

	employes, err := s.employeRepo.ListActiveByEntreprise(ctx, cycle.EntrepriseID)
	if err != nil {
		return nil, err
	}

	generated := 0
	for _, emp := range employes {
		// Skip employees a previous run already covered. The unique index on
		// (cycle_id, employe_id) remains authoritative under concurrent runs.
		if _, err := s.bulletinRepo.GetByEmployeAndCycle(ctx, emp.ID, cycle.ID); err == nil {
			continue
		} else if !errors.Is(err, bulletin.ErrBulletinNotFound) {
			return nil, err
		}

		total := emp.SalaireBase.Add(emp.Allocations).Sub(emp.Deductions)

		_, err := s.bulletinRepo.Create(ctx, bulletin.Bulletin{
			CycleID:        cycle.ID,
			EntrepriseID:   cycle.EntrepriseID,
			EmployeID:      emp.ID,
			Numero:         bulletinNumero(cycle.PeriodeDebut.Format("200601")),
			PeriodeDebut:   cycle.PeriodeDebut,
			PeriodeFin:     cycle.PeriodeFin,
			SalaireBase:    emp.SalaireBase,
			Allocations:    emp.Allocations,
			Deductions:     emp.Deductions,
			TotalAPayer:    total,
			StatutPaiement: bulletin.StatutPending,
		})
		if err != nil {
			// A concurrent run created the pair between the pre-check and
			// the insert.
			if errors.Is(err, bulletin.ErrBulletinExists) {
				continue
			}
			return nil, err
		}
		generated++
	}

	slog.Info("Bulletins generated", "cycle_id", cycleID, "employes", len(employes), "created", generated)

	bulletins, err := s.bulletinRepo.ListByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	return bulletin.ToResponses(bulletins), nil
}

func (s *CycleServiceImpl) ListBulletins(ctx context.Context, principal user.Principal, cycleID string) ([]bulletin.BulletinResponse, error) {
	if err := s.guard.CanViewCycles(principal); err != nil {
		return nil, err
	}

	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AllowedFor(principal, cycle.EntrepriseID); err != nil {
		return nil, err
	}

	bulletins, err := s.bulletinRepo.ListByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	return bulletin.ToResponses(bulletins), nil
}

func (s *CycleServiceImpl) GetBulletin(ctx context.Context, principal user.Principal, bulletinID string) (bulletin.BulletinResponse, error) {
	if err := s.guard.CanViewCycles(principal); err != nil {
		return bulletin.BulletinResponse{}, err
	}

	b, err := s.bulletinRepo.GetByID(ctx, bulletinID)
	if err != nil {
		return bulletin.BulletinResponse{}, err
	}
	if err := s.guard.AllowedFor(principal, b.EntrepriseID); err != nil {
		return bulletin.BulletinResponse{}, err
	}

	return bulletin.ToResponse(b), nil
}

func (s *CycleServiceImpl) UpdateBulletin(ctx context.Context, principal user.Principal, req bulletin.UpdateBulletinRequest) (bulletin.BulletinResponse, error) {
	if err := s.guard.CanManageCycles(principal); err != nil {
		return bulletin.BulletinResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return bulletin.BulletinResponse{}, err
	}

	b, err := s.editableBulletin(ctx, principal, req.ID)
	if err != nil {
		return bulletin.BulletinResponse{}, err
	}

	if req.SalaireBase != nil {
		b.SalaireBase = *req.SalaireBase
	}
	if req.Allocations != nil {
		b.Allocations = *req.Allocations
	}
	if req.Deductions != nil {
		b.Deductions = *req.Deductions
	}
	b.TotalAPayer = b.SalaireBase.Add(b.Allocations).Sub(b.Deductions)

	updated, err := s.bulletinRepo.Update(ctx, b)
	if err != nil {
		return bulletin.BulletinResponse{}, err
	}

	s.recordAudit(ctx, principal, "UPDATE_BULLETIN", updated.ID)

	return bulletin.ToResponse(updated), nil
}

func (s *CycleServiceImpl) DeleteBulletin(ctx context.Context, principal user.Principal, bulletinID string) error {
	if err := s.guard.CanManageCycles(principal); err != nil {
		return err
	}

	b, err := s.editableBulletin(ctx, principal, bulletinID)
	if err != nil {
		return err
	}

	if err := s.bulletinRepo.Delete(ctx, b.ID); err != nil {
		return err
	}

	s.recordAudit(ctx, principal, "DELETE_BULLETIN", b.ID)

	return nil
}

// editableBulletin loads a bulletin and rejects mutation once money has
// moved: the cycle must not be CLOSED and the bulletin must still be PENDING.
func (s *CycleServiceImpl) editableBulletin(ctx context.Context, principal user.Principal, bulletinID string) (bulletin.Bulletin, error) {
	b, err := s.bulletinRepo.GetByID(ctx, bulletinID)
	if err != nil {
		return bulletin.Bulletin{}, err
	}
	if err := s.guard.AllowedFor(principal, b.EntrepriseID); err != nil {
		return bulletin.Bulletin{}, err
	}

	cycle, err := s.cycleRepo.GetByID(ctx, b.CycleID)
	if err != nil {
		return bulletin.Bulletin{}, err
	}
	if cycle.StatutValidation == paycycle.StatusClosed {
		return bulletin.Bulletin{}, &paycycle.InvalidTransitionError{Current: cycle.StatutValidation, Attempted: "EDIT_BULLETIN"}
	}
	if b.StatutPaiement != bulletin.StatutPending {
		return bulletin.Bulletin{}, bulletin.ErrBulletinNotEditable
	}

	return b, nil
}

// transitionConflict builds the InvalidTransitionError for a lost
// conditional write by re-reading the row's actual state.
func (s *CycleServiceImpl) transitionConflict(ctx context.Context, id, attempted string) error {
	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return &paycycle.InvalidTransitionError{Current: cycle.StatutValidation, Attempted: attempted}
}

// recordAudit writes the trail entry for a successful transition. A failed
// audit write is logged, not propagated: the transition already happened.
func (s *CycleServiceImpl) recordAudit(ctx context.Context, principal user.Principal, action, cycleID string) {
	err := s.auditRepo.Create(ctx, audit.Record{
		Action:   action,
		Entity:   audit.EntityCycle,
		EntityID: cycleID,
		UserID:   principal.UserID,
	})
	if err != nil {
		slog.Error("Failed to write audit record", "action", action, "cycle_id", cycleID, "error", err)
	}
}

func bulletinNumero(period string) string {
	return fmt.Sprintf("BUL-%s-%s", period, uuid.NewString()[:8])
}
