package paiement

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/gestipay/paie-backend-go/internal/domain/audit"
	"github.com/gestipay/paie-backend-go/internal/domain/bulletin"
	"github.com/gestipay/paie-backend-go/internal/domain/paiement"
	"github.com/gestipay/paie-backend-go/internal/domain/paycycle"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
	"github.com/gestipay/paie-backend-go/internal/pkg/sse"
	"github.com/gestipay/paie-backend-go/internal/service/authz"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaiementRepo struct {
	mu        sync.Mutex
	seq       int
	paiements map[string]paiement.Paiement
}

func newFakePaiementRepo() *fakePaiementRepo {
	return &fakePaiementRepo{paiements: make(map[string]paiement.Paiement)}
}

func (r *fakePaiementRepo) Create(_ context.Context, p paiement.Paiement) (paiement.Paiement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = fmt.Sprintf("pay-%d", r.seq)
	r.paiements[p.ID] = p
	return p, nil
}

func (r *fakePaiementRepo) GetByID(_ context.Context, id string) (paiement.Paiement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.paiements[id]
	if !ok {
		return paiement.Paiement{}, paiement.ErrPaiementNotFound
	}
	return p, nil
}

func (r *fakePaiementRepo) ListByBulletin(_ context.Context, bulletinID string) ([]paiement.Paiement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]paiement.Paiement, 0)
	for _, p := range r.paiements {
		if p.BulletinID == bulletinID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaiementRepo) SumCompletedByBulletin(_ context.Context, bulletinID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, p := range r.paiements {
		if p.BulletinID == bulletinID && p.Statut == paiement.StatutComplete {
			sum = sum.Add(p.Montant)
		}
	}
	return sum, nil
}

func (r *fakePaiementRepo) Update(_ context.Context, p paiement.Paiement) (paiement.Paiement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.paiements[p.ID]
	if !ok {
		return paiement.Paiement{}, paiement.ErrPaiementNotFound
	}
	existing.Montant = p.Montant
	existing.Mode = p.Mode
	existing.DatePaiement = p.DatePaiement
	existing.Reference = p.Reference
	r.paiements[p.ID] = existing
	return existing, nil
}

func (r *fakePaiementRepo) SetStatut(_ context.Context, id string, statut paiement.Statut) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.paiements[id]
	if !ok {
		return paiement.ErrPaiementNotFound
	}
	p.Statut = statut
	r.paiements[id] = p
	return nil
}

func (r *fakePaiementRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.paiements, id)
	return nil
}

type fakeBulletinRepo struct {
	mu        sync.Mutex
	bulletins map[string]bulletin.Bulletin
}

func (r *fakeBulletinRepo) Create(_ context.Context, b bulletin.Bulletin) (bulletin.Bulletin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulletins[b.ID] = b
	return b, nil
}

func (r *fakeBulletinRepo) GetByID(_ context.Context, id string) (bulletin.Bulletin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bulletins[id]
	if !ok {
		return bulletin.Bulletin{}, bulletin.ErrBulletinNotFound
	}
	return b, nil
}

func (r *fakeBulletinRepo) ListByCycle(_ context.Context, cycleID string) ([]bulletin.Bulletin, error) {
	return nil, nil
}

func (r *fakeBulletinRepo) GetByEmployeAndCycle(_ context.Context, employeID, cycleID string) (bulletin.Bulletin, error) {
	return bulletin.Bulletin{}, bulletin.ErrBulletinNotFound
}

func (r *fakeBulletinRepo) SetStatutPaiement(_ context.Context, id string, statut bulletin.StatutPaiement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bulletins[id]
	if !ok {
		return bulletin.ErrBulletinNotFound
	}
	b.StatutPaiement = statut
	r.bulletins[id] = b
	return nil
}

func (r *fakeBulletinRepo) Update(_ context.Context, b bulletin.Bulletin) (bulletin.Bulletin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bulletins[b.ID]; !ok {
		return bulletin.Bulletin{}, bulletin.ErrBulletinNotFound
	}
	r.bulletins[b.ID] = b
	return b, nil
}

func (r *fakeBulletinRepo) Delete(_ context.Context, id string) error { return nil }

func (r *fakeBulletinRepo) CountByCycle(_ context.Context, cycleID string) (int, int, error) {
	return 0, 0, nil
}

type fakeCycleRepo struct {
	cycles map[string]paycycle.PayCycle
}

func (r *fakeCycleRepo) Create(_ context.Context, c paycycle.PayCycle) (paycycle.PayCycle, error) {
	return c, nil
}

func (r *fakeCycleRepo) GetByID(_ context.Context, id string) (paycycle.PayCycle, error) {
	c, ok := r.cycles[id]
	if !ok {
		return paycycle.PayCycle{}, paycycle.ErrCycleNotFound
	}
	return c, nil
}

func (r *fakeCycleRepo) ListByEntreprise(_ context.Context, entrepriseID string) ([]paycycle.PayCycle, error) {
	return nil, nil
}

func (r *fakeCycleRepo) ListAll(_ context.Context) ([]paycycle.PayCycle, error) { return nil, nil }

func (r *fakeCycleRepo) Update(_ context.Context, req paycycle.UpdateCycleRequest) error { return nil }

func (r *fakeCycleRepo) Delete(_ context.Context, id string) error { return nil }

func (r *fakeCycleRepo) SetValidationStatus(_ context.Context, id string, from, to paycycle.ValidationStatus) (bool, error) {
	return false, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	records []audit.Record
}

func (r *fakeAuditRepo) Create(_ context.Context, rec audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeAuditRepo) ListByEntity(_ context.Context, entity, entityID string) ([]audit.Record, error) {
	return nil, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []sse.Event
}

func (p *fakePublisher) Publish(event sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type fixture struct {
	svc       *PaiementServiceImpl
	paiements *fakePaiementRepo
	bulletins *fakeBulletinRepo
	cycles    *fakeCycleRepo
	audits    *fakeAuditRepo
	hub       *fakePublisher
}

func newFixture() *fixture {
	f := &fixture{
		paiements: newFakePaiementRepo(),
		bulletins: &fakeBulletinRepo{bulletins: make(map[string]bulletin.Bulletin)},
		cycles:    &fakeCycleRepo{cycles: make(map[string]paycycle.PayCycle)},
		audits:    &fakeAuditRepo{},
		hub:       &fakePublisher{},
	}
	f.svc = &PaiementServiceImpl{
		paiementRepo: f.paiements,
		bulletinRepo: f.bulletins,
		cycleRepo:    f.cycles,
		auditRepo:    f.audits,
		guard:        authz.NewGuard(),
		hub:          f.hub,
	}
	return f
}

// seed installs one validated cycle with one pending bulletin owed 100000.
func (f *fixture) seed(cycleStatus paycycle.ValidationStatus) {
	f.cycles.cycles["cycle-1"] = paycycle.PayCycle{
		ID:               "cycle-1",
		EntrepriseID:     "ent-1",
		StatutValidation: cycleStatus,
	}
	f.bulletins.bulletins["bul-1"] = bulletin.Bulletin{
		ID:             "bul-1",
		CycleID:        "cycle-1",
		EntrepriseID:   "ent-1",
		EmployeID:      "e1",
		TotalAPayer:    decimal.NewFromInt(100000),
		StatutPaiement: bulletin.StatutPending,
	}
}

func strPtr(s string) *string { return &s }

func caissierOf(entrepriseID string) user.Principal {
	return user.Principal{UserID: "caissier-1", Role: user.RoleCaissier, EntrepriseID: strPtr(entrepriseID)}
}

func TestCreatePaiementFullSettlement(t *testing.T) {
	f := newFixture()
	f.seed(paycycle.StatusValidated)

	resp, err := f.svc.Create(context.Background(), caissierOf("ent-1"), paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(100000),
		Mode:       "ESPECES",
	})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETE", resp.Statut)
	assert.Equal(t, "PAID", resp.StatutBulletin)

	b, _ := f.bulletins.GetByID(context.Background(), "bul-1")
	assert.Equal(t, bulletin.StatutPaid, b.StatutPaiement)

	require.Len(t, f.hub.events, 1)
	assert.Equal(t, sse.EventBulletinPaid, f.hub.events[0].Event)

	require.Len(t, f.audits.records, 1)
	assert.Equal(t, "CREATE_PAIEMENT", f.audits.records[0].Action)
	assert.Equal(t, audit.EntityPaiement, f.audits.records[0].Entity)
}

func TestCreatePaiementPartialSettlement(t *testing.T) {
	f := newFixture()
	f.seed(paycycle.StatusValidated)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, caissierOf("ent-1"), paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(40000),
		Mode:       "WAVE",
	})
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL", resp.StatutBulletin)
	assert.Empty(t, f.hub.events)

	// Second payment completes the bulletin.
	resp, err = f.svc.Create(ctx, caissierOf("ent-1"), paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(60000),
		Mode:       "ORANGE_MONEY",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.StatutBulletin)
	assert.Len(t, f.hub.events, 1)
}

func TestCreatePaiementCycleNotValidated(t *testing.T) {
	for _, status := range []paycycle.ValidationStatus{paycycle.StatusDraft, paycycle.StatusClosed} {
		f := newFixture()
		f.seed(status)

		_, err := f.svc.Create(context.Background(), caissierOf("ent-1"), paiement.CreatePaiementRequest{
			BulletinID: "bul-1",
			Montant:    decimal.NewFromInt(100000),
			Mode:       "ESPECES",
		})
		assert.ErrorIs(t, err, paiement.ErrCycleNotPayable, "status %s", status)
	}
}

func TestCreatePaiementForbidden(t *testing.T) {
	f := newFixture()
	f.seed(paycycle.StatusValidated)
	ctx := context.Background()

	req := paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(100000),
		Mode:       "ESPECES",
	}

	// Employee role never records payments.
	employePrincipal := user.Principal{UserID: "emp", Role: user.RoleEmploye, EntrepriseID: strPtr("ent-1")}
	_, err := f.svc.Create(ctx, employePrincipal, req)
	assert.ErrorIs(t, err, user.ErrForbidden)

	// Cashier of another enterprise is blocked by tenant scope.
	_, err = f.svc.Create(ctx, caissierOf("ent-2"), req)
	assert.ErrorIs(t, err, user.ErrForbidden)
}

func TestCreatePaiementRecordsCaissier(t *testing.T) {
	f := newFixture()
	f.seed(paycycle.StatusValidated)

	resp, err := f.svc.Create(context.Background(), caissierOf("ent-1"), paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(100000),
		Mode:       "VIREMENT",
	})
	require.NoError(t, err)

	p, _ := f.paiements.GetByID(context.Background(), resp.ID)
	require.NotNil(t, p.CaissierID)
	assert.Equal(t, "caissier-1", *p.CaissierID)
}

func TestCreatePaiementValidation(t *testing.T) {
	f := newFixture()
	f.seed(paycycle.StatusValidated)

	_, err := f.svc.Create(context.Background(), caissierOf("ent-1"), paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(-5),
		Mode:       "CHEQUE",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "montant")
	assert.Contains(t, err.Error(), "mode")
}

func TestCancelPaiementRevertsBulletin(t *testing.T) {
	f := newFixture()
	f.seed(paycycle.StatusValidated)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, caissierOf("ent-1"), paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(100000),
		Mode:       "ESPECES",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.StatutBulletin)

	require.NoError(t, f.svc.Cancel(ctx, caissierOf("ent-1"), resp.ID))

	b, _ := f.bulletins.GetByID(ctx, "bul-1")
	assert.Equal(t, bulletin.StatutPending, b.StatutPaiement)

	p, _ := f.paiements.GetByID(ctx, resp.ID)
	assert.Equal(t, paiement.StatutAnnule, p.Statut)
}

func TestUpdatePaiementRerunsCascade(t *testing.T) {
	f := newFixture()
	f.seed(paycycle.StatusValidated)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, caissierOf("ent-1"), paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(40000),
		Mode:       "ESPECES",
	})
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL", resp.StatutBulletin)

	// Correcting the amount to the full total settles the bulletin.
	montant := decimal.NewFromInt(100000)
	updated, err := f.svc.Update(ctx, caissierOf("ent-1"), paiement.UpdatePaiementRequest{
		ID:      resp.ID,
		Montant: &montant,
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", updated.StatutBulletin)

	b, _ := f.bulletins.GetByID(ctx, "bul-1")
	assert.Equal(t, bulletin.StatutPaid, b.StatutPaiement)

	require.NotEmpty(t, f.hub.events)
	assert.Equal(t, sse.EventBulletinPaid, f.hub.events[len(f.hub.events)-1].Event)

	// Correcting it back down reverts to PARTIAL.
	montant = decimal.NewFromInt(30000)
	updated, err = f.svc.Update(ctx, caissierOf("ent-1"), paiement.UpdatePaiementRequest{
		ID:      resp.ID,
		Montant: &montant,
	})
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL", updated.StatutBulletin)
}

func TestUpdatePaiementOnClosedCycle(t *testing.T) {
	f := newFixture()
	f.seed(paycycle.StatusValidated)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, caissierOf("ent-1"), paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(100000),
		Mode:       "ESPECES",
	})
	require.NoError(t, err)

	c := f.cycles.cycles["cycle-1"]
	c.StatutValidation = paycycle.StatusClosed
	f.cycles.cycles["cycle-1"] = c

	montant := decimal.NewFromInt(50000)
	_, err = f.svc.Update(ctx, caissierOf("ent-1"), paiement.UpdatePaiementRequest{
		ID:      resp.ID,
		Montant: &montant,
	})
	assert.ErrorIs(t, err, paiement.ErrCycleNotPayable)
}

func TestDeletePaiementRerunsCascade(t *testing.T) {
	f := newFixture()
	f.seed(paycycle.StatusValidated)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, caissierOf("ent-1"), paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(100000),
		Mode:       "ESPECES",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.StatutBulletin)

	require.NoError(t, f.svc.Delete(ctx, caissierOf("ent-1"), resp.ID))

	b, _ := f.bulletins.GetByID(ctx, "bul-1")
	assert.Equal(t, bulletin.StatutPending, b.StatutPaiement)

	_, err = f.paiements.GetByID(ctx, resp.ID)
	assert.ErrorIs(t, err, paiement.ErrPaiementNotFound)
}

func TestCancelPaiementOnClosedCycle(t *testing.T) {
	f := newFixture()
	f.seed(paycycle.StatusValidated)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, caissierOf("ent-1"), paiement.CreatePaiementRequest{
		BulletinID: "bul-1",
		Montant:    decimal.NewFromInt(100000),
		Mode:       "ESPECES",
	})
	require.NoError(t, err)

	c := f.cycles.cycles["cycle-1"]
	c.StatutValidation = paycycle.StatusClosed
	f.cycles.cycles["cycle-1"] = c

	err = f.svc.Cancel(ctx, caissierOf("ent-1"), resp.ID)
	assert.ErrorIs(t, err, paiement.ErrCycleNotPayable)
}
