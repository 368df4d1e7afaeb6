package collection

import (
	"strconv"

	"homerelief/pkg/types"
)

var createdDesc = Sort{Column: "created_at", Desc: true}

func DamageReportSchema(pageSize int) Schema {
	return Schema{
		Kind:          types.KindDamageReport,
		SearchColumns: []string{"full_name", "phone_number", "district"},
		Filters: map[string]FilterSpec{
			"district":    {Column: "district", Op: OpEq, Parse: ParseText},
			"damage_type": {Column: "damage_type", Op: OpEq, Parse: ParseOneOf(types.DamageTypes...)},
			"verified":    {Column: "verified", Op: OpEq, Parse: ParseVerified},
			"need":        {Column: "essential_needs", Op: OpContains, Parse: ParseOneOf(types.EssentialNeeds...)},
		},
		Sortable:    []string{"created_at", "full_name", "district", "damage_type", "family_members", "verified"},
		DefaultSort: createdDesc,
		PageSize:    pageSize,
	}
}

func DonationOfferSchema(pageSize int) Schema {
	return Schema{
		Kind:          types.KindDonationOffer,
		SearchColumns: []string{"name", "phone", "email"},
		Filters: map[string]FilterSpec{
			"support_type": {Column: "support_type", Op: OpEq, Parse: ParseOneOf(types.SupportTypes...)},
			"verified":     {Column: "verified", Op: OpEq, Parse: ParseVerified},
		},
		Sortable:    []string{"created_at", "name", "support_type", "verified"},
		DefaultSort: createdDesc,
		PageSize:    pageSize,
	}
}

func VolunteerOfferSchema(pageSize int) Schema {
	return Schema{
		Kind:          types.KindVolunteerOffer,
		SearchColumns: []string{"full_name", "phone_number"},
		Filters: map[string]FilterSpec{
			"skill": {Column: "skills", Op: OpContains, Parse: ParseOneOf(types.VolunteerSkills...)},
		},
		Sortable:    []string{"created_at", "full_name", "availability_start"},
		DefaultSort: createdDesc,
		PageSize:    pageSize,
	}
}

var DamageReportColumns = []Column[*types.DamageReport]{
	{Header: "id", Value: func(r *types.DamageReport) string { return r.ID }},
	{Header: "full_name", Value: func(r *types.DamageReport) string { return r.FullName }},
	{Header: "phone_number", Value: func(r *types.DamageReport) string { return r.PhoneNumber }},
	{Header: "district", Value: func(r *types.DamageReport) string { return r.District }},
	{Header: "ds_division", Value: func(r *types.DamageReport) string { return r.DSDivision }},
	{Header: "gn_division", Value: func(r *types.DamageReport) string { return r.GNDivision }},
	{Header: "damage_type", Value: func(r *types.DamageReport) string { return string(r.DamageType) }},
	{Header: "family_members", Value: func(r *types.DamageReport) string { return strconv.Itoa(r.FamilyMembers) }},
	{Header: "essential_needs", Value: func(r *types.DamageReport) string { return JoinList(r.EssentialNeeds) }},
	{Header: "verified", Value: func(r *types.DamageReport) string { return YesNo(r.Verified) }},
	{Header: "created_at", Value: func(r *types.DamageReport) string { return Timestamp(r.CreatedAt) }},
	{Header: "updated_at", Value: func(r *types.DamageReport) string { return Timestamp(r.UpdatedAt) }},
	{Header: "latitude", Value: func(r *types.DamageReport) string { return OptFloat(r.Latitude) }},
	{Header: "longitude", Value: func(r *types.DamageReport) string { return OptFloat(r.Longitude) }},
	{Header: "photo_url", Value: func(r *types.DamageReport) string { return OptString(r.PhotoURL) }},
}

var DonationOfferColumns = []Column[*types.DonationOffer]{
	{Header: "id", Value: func(r *types.DonationOffer) string { return r.ID }},
	{Header: "name", Value: func(r *types.DonationOffer) string { return r.Name }},
	{Header: "phone", Value: func(r *types.DonationOffer) string { return OptString(r.Phone) }},
	{Header: "email", Value: func(r *types.DonationOffer) string { return OptString(r.Email) }},
	{Header: "support_type", Value: func(r *types.DonationOffer) string { return string(r.SupportType) }},
	{Header: "description", Value: func(r *types.DonationOffer) string { return OptString(r.Description) }},
	{Header: "verified", Value: func(r *types.DonationOffer) string { return YesNo(r.Verified) }},
	{Header: "created_at", Value: func(r *types.DonationOffer) string { return Timestamp(r.CreatedAt) }},
	{Header: "updated_at", Value: func(r *types.DonationOffer) string { return Timestamp(r.UpdatedAt) }},
}

var VolunteerOfferColumns = []Column[*types.VolunteerOffer]{
	{Header: "id", Value: func(r *types.VolunteerOffer) string { return r.ID }},
	{Header: "full_name", Value: func(r *types.VolunteerOffer) string { return r.FullName }},
	{Header: "phone_number", Value: func(r *types.VolunteerOffer) string { return r.PhoneNumber }},
	{Header: "skills", Value: func(r *types.VolunteerOffer) string { return JoinList(r.Skills) }},
	{Header: "availability_start", Value: func(r *types.VolunteerOffer) string { return OptDate(r.AvailabilityStart) }},
	{Header: "availability_end", Value: func(r *types.VolunteerOffer) string { return OptDate(r.AvailabilityEnd) }},
	{Header: "created_at", Value: func(r *types.VolunteerOffer) string { return Timestamp(r.CreatedAt) }},
}
