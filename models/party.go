package models

// PartyKind names which registry a Party points into.
type PartyKind string

const (
	PartyGuest   PartyKind = "guest"
	PartyCompany PartyKind = "company"
)

func (k PartyKind) Valid() bool {
	return k == PartyGuest || k == PartyCompany
}

// Party is a debtor or payer: exactly one of a guest or a company.
// It is stored as two columns (<prefix>kind, <prefix>ref_id) through gorm's embedded tag.
type Party struct {
	Kind  PartyKind `gorm:"column:kind;size:16" json:"kind,omitempty"`
	RefID uint      `gorm:"column:ref_id" json:"id,omitempty"`
}

func GuestParty(id uint) Party   { return Party{Kind: PartyGuest, RefID: id} }
func CompanyParty(id uint) Party { return Party{Kind: PartyCompany, RefID: id} }

// IsZero reports an unset party.
func (p Party) IsZero() bool { return p.Kind == "" && p.RefID == 0 }
