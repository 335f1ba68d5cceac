// Package gen produces synthetic tabular corpora for exercising the
// extraction pipeline.
//
// It can deliberately inject malformed values (bad emails, impossible
// dates, negative quantities, duplicate ids, one fully corrupt row) so that
// downstream tolerance for dirty input gets exercised. The generator only
// produces datasets; it shares the output writers with the extractor and
// exposes nothing to the core pipeline.
package gen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

// Options controls determinism and error injection.
type Options struct {
	Seed           uint64
	InjectErrors   bool
	TestCaseMode   bool
	ErrorProb      float64
	DuplicateCount int
}

// Generator produces users, products and orders datasets.
type Generator struct {
	faker *gofakeit.Faker
	rng   *rand.Rand
	opts  Options
}

var (
	malformedEmails = []string{
		"malformed-email@@", "invalid..email@example.com",
		"missing-at-sign.com", "wrong@domain@domain.com",
		"spaces in@email.com", "trailingdot.@example.com",
	}
	invalidDates = []string{
		"00-00-0000", "99-99-9999", "2023/99/99", "2023-13-01",
		"2023-00-10", "2023-02-30", "31-04-2022",
	}
	domains      = []string{"gmail.com", "yahoo.com", "hotmail.com", "company.com", "example.org", "test.net"}
	departments  = []string{"Engineering", "Marketing", "Sales", "HR", "Finance", "Operations", "Legal", "Support"}
	statuses     = []string{"active", "inactive", "pending", "suspended", "archived"}
	countries    = []string{"USA", "Canada", "UK", "Germany", "France", "Japan", "Australia", "Brazil", "India", "China"}
	technologies = []string{"Python", "JavaScript", "Java", "C++", "React", "Node.js", "Docker", "Kubernetes", "AWS", "MongoDB"}
	categories   = []string{"Technology", "Business", "Science", "Art", "Sports", "Music", "Travel", "Food", "Health", "Education"}
)

// New creates a deterministic generator for the given options.
func New(opts Options) *Generator {
	if opts.ErrorProb == 0 {
		opts.ErrorProb = 0.05
	}
	if opts.DuplicateCount == 0 {
		opts.DuplicateCount = 5
	}
	return &Generator{
		faker: gofakeit.New(opts.Seed),
		rng:   rand.New(rand.NewSource(int64(opts.Seed))),
		opts:  opts,
	}
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *Generator) chance(p float64) bool {
	return g.opts.InjectErrors && g.rng.Float64() < p
}

// maybeCorrupt swaps the value for a known-bad one with probability
// ErrorProb when error injection is on.
func (g *Generator) maybeCorrupt(value any, field string) any {
	if !g.chance(g.opts.ErrorProb) {
		return value
	}
	switch field {
	case "email":
		return g.pick(malformedEmails)
	case "date":
		return g.pick(invalidDates)
	case "age":
		return float64(-1)
	case "salary":
		return "N/A"
	case "phone":
		return "12345"
	case "id":
		return "DUPLICATE"
	case "rating":
		return float64(10)
	case "stock":
		return float64(-100)
	case "name":
		return "!!!@@@###"
	case "quantity":
		return float64(-5)
	case "price":
		return "free"
	}
	return value
}

func (g *Generator) email(first, last string) string {
	if g.chance(g.opts.ErrorProb / 2) {
		return g.pick(malformedEmails)
	}
	sep := g.pick([]string{".", "_", ""})
	return fmt.Sprintf("%s%s%s@%s", strings.ToLower(first), sep, strings.ToLower(last), g.pick(domains))
}

func (g *Generator) phone() string {
	return fmt.Sprintf("+1-%d-%d-%d", 100+g.rng.Intn(900), 100+g.rng.Intn(900), 1000+g.rng.Intn(9000))
}

// dateAnchor pins generated dates to a fixed base so a seed reproduces the
// same corpus regardless of when the generator runs.
var dateAnchor = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// date returns a day between startDaysAgo and endDaysAgo before the anchor.
func (g *Generator) date(startDaysAgo, endDaysAgo int) string {
	span := (startDaysAgo - endDaysAgo) * 24 * 3600
	if span <= 0 {
		span = 1
	}
	t := dateAnchor.AddDate(0, 0, -startDaysAgo).Add(time.Duration(g.rng.Intn(span)) * time.Second)
	return t.Format("2006-01-02")
}

// tags returns between min and max distinct technologies joined with ";",
// the packed shape that multi-mode extraction splits back apart.
func (g *Generator) tags(min, max int) string {
	n := min + g.rng.Intn(max-min+1)
	perm := g.rng.Perm(len(technologies))[:n]
	parts := make([]string, n)
	for i, p := range perm {
		parts[i] = technologies[p]
	}
	return strings.Join(parts, ";")
}

// ids yields sequential prefixed ids; in test-case mode the leading ids are
// repeated at the tail so the corpus contains known duplicates.
func (g *Generator) ids(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%04d", prefix, i+1)
	}
	if g.opts.InjectErrors && g.opts.TestCaseMode {
		dup := g.opts.DuplicateCount
		if dup > n {
			dup = n
		}
		copy(out[n-dup:], out[:dup])
	}
	return out
}

var userColumns = []string{
	"id", "first_name", "last_name", "email", "phone", "age",
	"department", "status", "country", "salary", "hire_date",
	"skills", "projects", "manager_email",
}

// Users generates n user rows.
func (g *Generator) Users(n int) *dataset.Dataset {
	d := dataset.New(userColumns)
	ids := g.ids("USR", n)

	for i := 0; i < n; i++ {
		first := g.faker.FirstName()
		last := g.faker.LastName()
		manager := ""
		if g.rng.Float64() > 0.2 {
			manager = g.email(g.faker.FirstName(), g.faker.LastName())
		}
		d.Append(map[string]any{
			"id":            g.maybeCorrupt(ids[i], "id"),
			"first_name":    g.maybeCorrupt(first, "name"),
			"last_name":     g.maybeCorrupt(last, "name"),
			"email":         g.maybeCorrupt(g.email(first, last), "email"),
			"phone":         g.maybeCorrupt(g.phone(), "phone"),
			"age":           g.maybeCorrupt(float64(22+g.rng.Intn(44)), "age"),
			"department":    g.pick(departments),
			"status":        g.pick(statuses),
			"country":       g.pick(countries),
			"salary":        g.maybeCorrupt(float64(40000+g.rng.Intn(110001)), "salary"),
			"hire_date":     g.maybeCorrupt(g.date(1095, 30), "date"),
			"skills":        g.tags(2, 6),
			"projects":      float64(1 + g.rng.Intn(10)),
			"manager_email": manager,
		})
	}

	if g.opts.InjectErrors && g.opts.TestCaseMode {
		d.Append(map[string]any{
			"id": "CORRUPT", "email": "???", "phone": "abc", "age": "old",
			"salary": "none", "hire_date": "invalid-date", "projects": "NaN",
		})
	}
	return d
}

var productColumns = []string{
	"product_id", "name", "category", "price", "stock_quantity",
	"supplier_email", "tags", "launch_date", "rating", "status",
}

var productNames = []string{
	"Laptop Pro", "Desktop Elite", "Monitor 4K", "Keyboard Wireless",
	"Mouse Gaming", "Headphones Premium", "Webcam HD", "Tablet Mini",
	"Phone Smart", "Watch Digital", "Speaker Bluetooth", "Camera DSLR",
	"Printer Laser", "Scanner Document", "Router WiFi",
}

// Products generates n product rows.
func (g *Generator) Products(n int) *dataset.Dataset {
	d := dataset.New(productColumns)
	ids := g.ids("PROD", n)

	for i := 0; i < n; i++ {
		name := g.pick(productNames) + " " + g.pick([]string{"X", "Pro", "Elite", "Max", "Mini"})
		d.Append(map[string]any{
			"product_id":     g.maybeCorrupt(ids[i], "id"),
			"name":           g.maybeCorrupt(name, "name"),
			"category":       g.pick(categories),
			"price":          g.maybeCorrupt(round2(10.99+g.rng.Float64()*2989), "price"),
			"stock_quantity": g.maybeCorrupt(float64(g.rng.Intn(1001)), "stock"),
			"supplier_email": g.maybeCorrupt(g.email(g.faker.FirstName(), g.faker.LastName()), "email"),
			"tags":           g.tags(1, 4),
			"launch_date":    g.maybeCorrupt(g.date(730, 0), "date"),
			"rating":         g.maybeCorrupt(round1(1.0+g.rng.Float64()*4.0), "rating"),
			"status":         g.pick(statuses),
		})
	}
	return d
}

var orderColumns = []string{
	"order_id", "user_id", "product_id", "quantity", "price_per_unit",
	"order_date", "status",
}

// Orders generates n order rows referencing the id spaces of Users and
// Products.
func (g *Generator) Orders(n int) *dataset.Dataset {
	d := dataset.New(orderColumns)
	ids := g.ids("ORD", n)

	for i := 0; i < n; i++ {
		d.Append(map[string]any{
			"order_id":       g.maybeCorrupt(ids[i], "id"),
			"user_id":        fmt.Sprintf("USR-%04d", 1+g.rng.Intn(1000)),
			"product_id":     fmt.Sprintf("PROD-%04d", 1+g.rng.Intn(500)),
			"quantity":       g.maybeCorrupt(float64(1+g.rng.Intn(20)), "quantity"),
			"price_per_unit": g.maybeCorrupt(round2(5.0+g.rng.Float64()*495), "price"),
			"order_date":     g.maybeCorrupt(g.date(365, 0), "date"),
			"status":         g.pick(statuses),
		})
	}
	return d
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
