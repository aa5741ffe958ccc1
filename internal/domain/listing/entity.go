package listing

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"rx-exchange/internal/domain/drug"

	"github.com/google/uuid"
)

const MaxNotesLength = 1000

var (
	ErrEmptyName        = errors.New("drug name is required")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrInvalidDIN       = errors.New("din must be 8 digits")
	ErrNegativeDistance = errors.New("distance cannot be negative")
	ErrNotesTooLong     = errors.New("notes too long")
	ErrMissingHospital  = errors.New("hospital id is required")
	ErrConsumeTooMuch   = errors.New("cannot consume more than total quantity")
)

var dinPattern = regexp.MustCompile(`^\d{8}$`)

// Params are the provider-editable fields of a listing.
type Params struct {
	HospitalID uuid.UUID
	DrugName   string
	DIN        string
	Dosage     string
	Quantity   int
	Expiry     *time.Time
	Shareable  bool
	Notes      string
	DistanceKm float64
}

// Listing is an immutable surplus-stock record. Edits and stock consumption
// return a new value; reservation counts live in the inventory index.
type Listing struct {
	id         uuid.UUID
	hospitalID uuid.UUID
	rawName    string
	name       drug.Name
	din        string
	rawDosage  string
	dosage     drug.Dosage
	quantity   int
	expiry     *time.Time
	shareable  bool
	notes      string
	distanceKm float64
	createdAt  time.Time
	updatedAt  time.Time
}

func NewListing(p Params, now time.Time) (*Listing, error) {
	l := &Listing{id: uuid.New(), createdAt: now}
	if err := l.apply(p, now); err != nil {
		return nil, err
	}
	return l, nil
}

// Revise applies a provider edit, keeping identity and creation time.
func (l *Listing) Revise(p Params, now time.Time) (*Listing, error) {
	next := &Listing{id: l.id, createdAt: l.createdAt}
	p.HospitalID = l.hospitalID
	if err := next.apply(p, now); err != nil {
		return nil, err
	}
	return next, nil
}

// ConsumeStock removes qty units permanently, as on a completed exchange.
func (l *Listing) ConsumeStock(qty int, now time.Time) (*Listing, error) {
	if qty < 0 || qty > l.quantity {
		return nil, ErrConsumeTooMuch
	}
	next := *l
	next.quantity = l.quantity - qty
	next.updatedAt = now
	return &next, nil
}

func (l *Listing) apply(p Params, now time.Time) error {
	rawName := strings.TrimSpace(p.DrugName)
	din := strings.TrimSpace(p.DIN)
	notes := strings.TrimSpace(p.Notes)

	switch {
	case p.HospitalID == uuid.Nil:
		return ErrMissingHospital
	case rawName == "":
		return ErrEmptyName
	case p.Quantity < 0:
		return ErrNegativeQuantity
	case din != "" && !dinPattern.MatchString(din):
		return ErrInvalidDIN
	case p.DistanceKm < 0:
		return ErrNegativeDistance
	case utf8.RuneCountInString(notes) > MaxNotesLength:
		return ErrNotesTooLong
	}

	name, dosage := drug.Normalize(rawName, p.Dosage)

	l.hospitalID = p.HospitalID
	l.rawName = rawName
	l.name = name
	l.din = din
	l.rawDosage = strings.TrimSpace(p.Dosage)
	l.dosage = dosage
	l.quantity = p.Quantity
	l.shareable = p.Shareable
	l.notes = notes
	l.distanceKm = p.DistanceKm
	l.updatedAt = now
	if p.Expiry != nil {
		e := p.Expiry.UTC()
		l.expiry = &e
	}
	return nil
}

func Reconstruct(
	id, hospitalID uuid.UUID,
	p Params,
	createdAt, updatedAt time.Time,
) (*Listing, error) {
	l := &Listing{id: id, createdAt: createdAt}
	p.HospitalID = hospitalID
	if err := l.apply(p, updatedAt); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Listing) IsExpired(now time.Time) bool {
	return l.expiry != nil && !now.Before(*l.expiry)
}

func (l *Listing) Params() Params {
	return Params{
		HospitalID: l.hospitalID,
		DrugName:   l.rawName,
		DIN:        l.din,
		Dosage:     l.rawDosage,
		Quantity:   l.quantity,
		Expiry:     l.expiry,
		Shareable:  l.shareable,
		Notes:      l.notes,
		DistanceKm: l.distanceKm,
	}
}

func (l *Listing) ID() uuid.UUID         { return l.id }
func (l *Listing) HospitalID() uuid.UUID { return l.hospitalID }
func (l *Listing) RawName() string       { return l.rawName }
func (l *Listing) Name() drug.Name       { return l.name }
func (l *Listing) DIN() string           { return l.din }
func (l *Listing) RawDosage() string     { return l.rawDosage }
func (l *Listing) Dosage() drug.Dosage   { return l.dosage }
func (l *Listing) Quantity() int         { return l.quantity }
func (l *Listing) Expiry() *time.Time    { return l.expiry }
func (l *Listing) Shareable() bool       { return l.shareable }
func (l *Listing) Notes() string         { return l.notes }
func (l *Listing) DistanceKm() float64   { return l.distanceKm }
func (l *Listing) CreatedAt() time.Time  { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time  { return l.updatedAt }
