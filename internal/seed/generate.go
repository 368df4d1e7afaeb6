// Package seed fills a development database with sample relief records.
package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"homerelief/internal/divisions"
	"homerelief/internal/utils"
	"homerelief/pkg/types"
)

// PhonePrefix marks seeded rows so they can be removed again.
const PhonePrefix = "0700"

var givenNames = []string{
	"Nimal", "Kamala", "Suresh", "Fathima", "Tharindu", "Priya", "Ravi", "Malini",
	"Mohamed", "Dilani", "Kumar", "Anoma", "Sajith", "Nirosha", "Arjun", "Shanthi",
}

var familyNames = []string{
	"Perera", "Fernando", "Silva", "Jayasinghe", "Rajapaksha", "Wickramasinghe",
	"Sivakumar", "Rahman", "Bandara", "Navaratnam", "Gunawardena", "Mohideen",
}

var donorNames = []string{
	"Lanka Hardware Stores", "Rotary Club of Kandy", "St. Mary's Parish", "Colombo Builders Guild",
	"Ceylon Timber Traders", "Youth Relief Circle", "Hatton Tea Estates", "Jaffna Traders Union",
}

var donationDescriptions = []string{
	"Two lorry loads of roofing sheets.",
	"Fifty bags of cement and sand.",
	"Funds for rebuilding one house.",
	"A team of six labourers for two weekends.",
	"Timber for doors and window frames.",
	"",
}

// Dataset holds generated records ready to insert.
type Dataset struct {
	DamageReports   []*types.DamageReport
	DonationOffers  []*types.DonationOffer
	VolunteerOffers []*types.VolunteerOffer
}

// Generate builds count records of each kind. The same seed always yields the
// same dataset. Every third record is marked verified.
func Generate(catalog *divisions.Catalog, count int, seed uint64) Dataset {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	districts := catalog.DistrictNames()

	var data Dataset
	for i := range count {
		data.DamageReports = append(data.DamageReports, damageReport(rng, catalog, districts, i))
		data.DonationOffers = append(data.DonationOffers, donationOffer(rng, i))
		data.VolunteerOffers = append(data.VolunteerOffers, volunteerOffer(rng, i))
	}
	return data
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.IntN(len(values))]
}

func phone(i int) string {
	return fmt.Sprintf("%s%06d", PhonePrefix, i)
}

func personName(rng *rand.Rand) string {
	return pick(rng, givenNames) + " " + pick(rng, familyNames)
}

func sample(rng *rand.Rand, values []string, max int) []string {
	n := 1 + rng.IntN(max)
	shuffled := append([]string(nil), values...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:min(n, len(shuffled))]
}

func damageReport(rng *rand.Rand, catalog *divisions.Catalog, districts []string, i int) *types.DamageReport {
	district := pick(rng, districts)

	ds, gn := district+" Divisional Secretariat", "Unlisted"
	if dsNames := catalog.Divisions(district); len(dsNames) > 0 {
		ds = pick(rng, dsNames)
		if gns := catalog.GNDivisions(district, ds); len(gns) > 0 {
			gn = pick(rng, gns)
		}
	}

	report := &types.DamageReport{
		FullName:       personName(rng),
		PhoneNumber:    phone(i),
		District:       district,
		DSDivision:     ds,
		GNDivision:     gn,
		DamageType:     pick(rng, types.DamageTypes),
		FamilyMembers:  1 + rng.IntN(8),
		EssentialNeeds: sample(rng, types.EssentialNeeds, 4),
		Verified:       i%3 == 0,
	}

	if rng.IntN(2) == 0 {
		report.Latitude = utils.Ptr(5.9 + rng.Float64()*3.9)
		report.Longitude = utils.Ptr(79.7 + rng.Float64()*2.1)
	}

	return report
}

func donationOffer(rng *rand.Rand, i int) *types.DonationOffer {
	name := pick(rng, donorNames)
	return &types.DonationOffer{
		Name:        name,
		Phone:       utils.Ptr(phone(i)),
		Email:       utils.Ptr(fmt.Sprintf("donor%d@example.lk", i)),
		SupportType: pick(rng, types.SupportTypes),
		Description: utils.StringPtrOrNil(pick(rng, donationDescriptions)),
		Verified:    i%3 == 0,
	}
}

func volunteerOffer(rng *rand.Rand, i int) *types.VolunteerOffer {
	offer := &types.VolunteerOffer{
		FullName:    personName(rng),
		PhoneNumber: phone(i),
		Skills:      sample(rng, types.VolunteerSkills, 3),
	}

	if rng.IntN(3) > 0 {
		start := time.Date(2026, time.November, 1+rng.IntN(20), 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 3+rng.IntN(25))
		offer.AvailabilityStart = &start
		offer.AvailabilityEnd = &end
	}

	return offer
}
