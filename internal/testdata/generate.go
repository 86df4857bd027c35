package testdata

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

var passwordClasses = []string{
	"abcdefghijklmnopqrstuvwxyz",
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"0123456789",
	"!@#$%^&*()-_=+",
}

// Generator produces fake registration data from its own seeded source, so a
// test that records its seed can replay the same values.
type Generator struct {
	seed  uint64
	faker *gofakeit.Faker
}

// NewGenerator seeds a generator. Seed 0 picks a random seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{seed: seed, faker: gofakeit.New(seed)}
}

// SeedFor derives a stable seed from a test name.
func SeedFor(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}

func (g *Generator) Seed() uint64 { return g.seed }

func (g *Generator) Name() string {
	return g.faker.FirstName() + " " + g.faker.LastName()
}

// Password returns length characters with at least one of each class.
// Lengths below 4 are raised to 4.
func (g *Generator) Password(length int) string {
	length = max(length, len(passwordClasses))
	chars := strings.Split(g.faker.Password(true, true, true, true, false, length), "")
	for i, class := range passwordClasses {
		chars[i] = g.faker.RandomString(strings.Split(class, ""))
	}
	g.faker.ShuffleStrings(chars)
	return strings.Join(chars, "")
}

// Phone is a Grameenphone-style mobile number: 017 followed by 8 digits.
func (g *Generator) Phone() string {
	return g.faker.Numerify("017########")
}

// Registration is NewUser with a fresh name, email, password and phone.
func (g *Generator) Registration() Registration {
	reg := NewUser()
	pw := g.Password(12)
	reg.Name = g.Name()
	reg.Email = RandomEmail()
	reg.Password = pw
	reg.ConfirmPassword = pw
	reg.Mobile = g.Phone()
	return reg
}

// RandomEmail is test<unix seconds>@example.com. Two calls in the same second
// collide; run the result through EmailLedger.Reserve when that matters.
func RandomEmail() string {
	return fmt.Sprintf("test%d@example.com", time.Now().Unix())
}

func RandomName() string { return NewGenerator(0).Name() }

func RandomPassword(length int) string { return NewGenerator(0).Password(length) }

func RandomPhone() string { return NewGenerator(0).Phone() }

func RandomRegistration() Registration { return NewGenerator(0).Registration() }
