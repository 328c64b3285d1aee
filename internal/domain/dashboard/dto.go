package dashboard

import "github.com/shopspring/decimal"

// KPIResponse is the per-enterprise payroll dashboard snapshot.
type KPIResponse struct {
	EntrepriseID      string          `json:"entreprise_id"`
	CyclesDraft       int             `json:"cycles_draft"`
	CyclesValides     int             `json:"cycles_valides"`
	CyclesClotures    int             `json:"cycles_clotures"`
	BulletinsImpayes  int             `json:"bulletins_impayes"`
	MasseSalariale    decimal.Decimal `json:"masse_salariale"`
	MontantRegle      decimal.Decimal `json:"montant_regle"`
	EmployesActifs    int             `json:"employes_actifs"`
	DernierCycleCloture *string       `json:"dernier_cycle_cloture,omitempty"`
}

// UnpaidAlert names an enterprise that still has unpaid bulletins on
// validated cycles. The alert job publishes one dashboard event per entry.
type UnpaidAlert struct {
	EntrepriseID     string `json:"entreprise_id"`
	EntrepriseNom    string `json:"entreprise_nom"`
	BulletinsImpayes int    `json:"bulletins_impayes"`
}
