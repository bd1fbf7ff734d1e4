package service

import (
	"consulto/internal/models"
	"consulto/pkg/searchindex"
)

// careerEntryOf flattens a career row into its search-index shape.
func careerEntryOf(c *models.Career) searchindex.CareerEntry {
	return searchindex.CareerEntry{
		CompanyName:   c.CompanyName,
		ContractType:  c.ContractType,
		Profession:    c.Profession,
		Office:        c.Office,
		PositionName:  c.PositionName,
		IsManager:     c.IsManager,
		IsNewGraduate: c.IsNewGraduate,
	}
}

// buildConsultantDocument assembles the full document body written on the
// first career approval.
func buildConsultantDocument(consultant *models.User, careers []models.Career) searchindex.ConsultantDocument {
	entries := make([]searchindex.CareerEntry, 0, len(careers))
	for i := range careers {
		entries = append(entries, careerEntryOf(&careers[i]))
	}
	return searchindex.ConsultantDocument{
		UserAccountID:           consultant.ID,
		Careers:                 entries,
		NumOfCareers:            len(entries),
		FeePerHourInYen:         consultant.FeePerHourInYen,
		IsBankAccountRegistered: consultant.IsBankAccountRegistered,
		Rating:                  nil,
		NumOfRated:              0,
		Disabled:                consultant.IsDisabled(),
	}
}
