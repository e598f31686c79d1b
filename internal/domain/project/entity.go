package project

import "github.com/shopspring/decimal"

// Geofence is a project's configured check-in zone. RadiusMeters of zero
// means "use the global default".
type Geofence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Project is the slice of the external project directory this subsystem
// reads. Referenced by identity only; owned by the project CRUD collaborator.
type Project struct {
	ID        string
	Title     string
	MemberIDs []string

	Geofence *Geofence

	// Payout configuration. AllocatedBudget wins over Budget when positive.
	AllocatedBudget     *decimal.Decimal
	Budget              *decimal.Decimal
	TeamSharePercent    *float64
	ExpectedWorkingDays *int
}

// HasMember reports whether userID is assigned to the project.
func (p Project) HasMember(userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// EffectiveBudget resolves the budget used for payout: allocated budget if
// positive, else nominal budget, else zero.
func (p Project) EffectiveBudget() decimal.Decimal {
	if p.AllocatedBudget != nil && p.AllocatedBudget.IsPositive() {
		return *p.AllocatedBudget
	}
	if p.Budget != nil && p.Budget.IsPositive() {
		return *p.Budget
	}
	return decimal.Zero
}
