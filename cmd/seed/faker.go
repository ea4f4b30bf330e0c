package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/kitabayar/backend/internal/domain/resident"
)

var streets = []string{
	"Jl. Melati", "Jl. Mawar", "Jl. Kenanga", "Jl. Anggrek", "Jl. Flamboyan", "Gg. Sukamaju",
}

// ResidentFaker generates plausible resident profiles for one RT
type ResidentFaker struct {
	faker *gofakeit.Faker
	area  ResidentFixture
}

// NewResidentFaker creates a faker; a zero seed is random
func NewResidentFaker(area ResidentFixture) *ResidentFaker {
	return &ResidentFaker{faker: gofakeit.New(area.Seed), area: area}
}

// Profile returns the n-th generated resident (n starts at 1)
func (g *ResidentFaker) Profile(n int) resident.Profile {
	f := g.faker
	first, last := f.FirstName(), f.LastName()
	active := f.Float32Range(0, 1) > 0.1

	p := resident.Profile{
		FullName:     first + " " + last,
		PhoneNumber:  "+628" + f.Numerify("##########"),
		Address:      fmt.Sprintf("%s No. %d", streets[f.IntN(len(streets))], f.IntRange(1, 120)),
		HouseNumber:  fmt.Sprintf("%s-%02d", string(rune('A'+f.IntN(4))), n),
		IdentityCard: "3273" + f.Numerify("############"),
		RTRW:         g.area.RTRW,
		Kelurahan:    g.area.Kelurahan,
		Kecamatan:    g.area.Kecamatan,
		City:         g.area.City,
		PostalCode:   g.area.PostalCode,
		Active:       &active,
	}
	// roughly a third of households leave the email blank
	if f.IntN(3) > 0 {
		p.Email = fmt.Sprintf("%s.%s%d@%s", emailPart(first), emailPart(last), n, f.DomainName())
	}
	return p
}

func emailPart(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
