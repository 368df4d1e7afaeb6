package types

import (
	"fmt"
	"time"
)

type RecordKind string

// Kinds match the table names so change notifications can carry TG_TABLE_NAME.
const (
	KindDamageReport   RecordKind = "damage_reports"
	KindDonationOffer  RecordKind = "donation_offers"
	KindVolunteerOffer RecordKind = "volunteer_offers"
)

var RecordKinds = []RecordKind{KindDamageReport, KindDonationOffer, KindVolunteerOffer}

func (k RecordKind) Valid() bool {
	for _, v := range RecordKinds {
		if v == k {
			return true
		}
	}
	return false
}

type DamageType string

const (
	DamageTypeMinor     DamageType = "minor"
	DamageTypePartial   DamageType = "partial"
	DamageTypeSevere    DamageType = "severe"
	DamageTypeTotalLoss DamageType = "total_loss"
)

var DamageTypes = []DamageType{DamageTypeMinor, DamageTypePartial, DamageTypeSevere, DamageTypeTotalLoss}

type SupportType string

const (
	SupportTypeMaterials SupportType = "materials"
	SupportTypeMoney     SupportType = "money"
	SupportTypeLabour    SupportType = "labour"
)

var SupportTypes = []SupportType{SupportTypeMaterials, SupportTypeMoney, SupportTypeLabour}

var EssentialNeeds = []string{
	"Roof sheets",
	"Cement",
	"Wood",
	"Labour",
	"Bricks",
	"Electrical supplies",
	"Plumbing materials",
	"Tools",
}

var VolunteerSkills = []string{"carpentry", "electrical", "plumbing", "masonry", "general"}

type DamageReport struct {
	ID             string     `db:"id"`
	FullName       string     `db:"full_name"`
	PhoneNumber    string     `db:"phone_number"`
	District       string     `db:"district"`
	DSDivision     string     `db:"ds_division"`
	GNDivision     string     `db:"gn_division"`
	DamageType     DamageType `db:"damage_type"`
	FamilyMembers  int        `db:"family_members"`
	EssentialNeeds []string   `db:"essential_needs"`
	PhotoURL       *string    `db:"photo_url"`
	Latitude       *float64   `db:"latitude"`
	Longitude      *float64   `db:"longitude"`
	Verified       bool       `db:"verified"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (d *DamageReport) RecordID() string { return d.ID }
func (d *DamageReport) IsVerified() bool { return d.Verified }
func (d *DamageReport) FamilySize() int  { return d.FamilyMembers }

// WithVerification returns a copy with the verification flag and update
// time set. The receiver is left untouched.
func (d *DamageReport) WithVerification(verified bool, at time.Time) *DamageReport {
	c := *d
	c.Verified = verified
	c.UpdatedAt = at
	return &c
}

func (d *DamageReport) HasLocation() bool {
	return d.Latitude != nil && d.Longitude != nil
}

// MapURL links the report coordinates to Google Maps, or returns "" when the
// report carries no location.
func (d *DamageReport) MapURL() string {
	if !d.HasLocation() {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%g,%g", *d.Latitude, *d.Longitude)
}

type DonationOffer struct {
	ID          string      `db:"id"`
	Name        string      `db:"name"`
	Phone       *string     `db:"phone"`
	Email       *string     `db:"email"`
	SupportType SupportType `db:"support_type"`
	Description *string     `db:"description"`
	Verified    bool        `db:"verified"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (d *DonationOffer) RecordID() string { return d.ID }
func (d *DonationOffer) IsVerified() bool { return d.Verified }

// WithVerification returns a copy with the verification flag and update
// time set. The receiver is left untouched.
func (d *DonationOffer) WithVerification(verified bool, at time.Time) *DonationOffer {
	c := *d
	c.Verified = verified
	c.UpdatedAt = at
	return &c
}

type VolunteerOffer struct {
	ID                string     `db:"id"`
	FullName          string     `db:"full_name"`
	PhoneNumber       string     `db:"phone_number"`
	Skills            []string   `db:"skills"`
	AvailabilityStart *time.Time `db:"availability_start"`
	AvailabilityEnd   *time.Time `db:"availability_end"`
	CreatedAt         time.Time  `db:"created_at"`
}

func (v *VolunteerOffer) RecordID() string { return v.ID }

type ChangeOp string

const (
	ChangeOpInsert ChangeOp = "insert"
	ChangeOpUpdate ChangeOp = "update"
	ChangeOpDelete ChangeOp = "delete"
)

type ChangeEvent struct {
	Kind RecordKind `json:"kind"`
	Op   ChangeOp   `json:"op"`
	ID   string     `json:"id"`
}

type RecordCounts struct {
	DamageReports   int
	DonationOffers  int
	VolunteerOffers int
}
