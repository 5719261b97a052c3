package service

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"taxsync/internal/model"
	"taxsync/internal/taxerr"
)

func intp(v int) *int { return &v }

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func frRate(class, rate string) model.DeclaredRate {
	return model.DeclaredRate{Country: "FR", Rate: dec(rate), Name: "VAT", Priority: intp(1), Order: intp(1), Class: class}
}

type fakeLoader map[string][]model.DeclaredRate

func (f fakeLoader) Load(country string) ([]model.DeclaredRate, error) {
	rates, ok := f[country]
	if !ok {
		return nil, taxerr.NewConfigurationError(country, taxerr.ErrNoDeclaration)
	}
	return rates, nil
}

type updateCall struct {
	ID   uint
	Rate model.RateFields
}

// memRates is an in-memory rate table that records every write
type memRates struct {
	rows    map[uint]model.RateFields
	nextID  uint
	inserts []model.RateFields
	updates []updateCall

	failInsert map[string]error // by class
	failUpdate map[uint]error
	ghostIDs   map[uint]bool // listed but gone when updated
	listErr    error
}

func newMemRates(rows ...model.TaxRate) *memRates {
	m := &memRates{rows: map[uint]model.RateFields{}, nextID: 100}
	for _, r := range rows {
		m.rows[r.ID] = r.RateFields
	}
	return m
}

func (m *memRates) sorted() []model.TaxRate {
	out := make([]model.TaxRate, 0, len(m.rows))
	for id, f := range m.rows {
		out = append(out, model.TaxRate{ID: id, RateFields: f})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memRates) ListByClass(_ context.Context, class string) ([]model.TaxRate, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.TaxRate
	for _, r := range m.sorted() {
		if r.Class == class {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRates) ListAll(_ context.Context) ([]model.TaxRate, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sorted(), nil
}

func (m *memRates) Insert(_ context.Context, rate model.RateFields) (uint, error) {
	m.inserts = append(m.inserts, rate)
	if err := m.failInsert[rate.Class]; err != nil {
		return 0, err
	}
	m.nextID++
	m.rows[m.nextID] = rate
	return m.nextID, nil
}

func (m *memRates) Update(_ context.Context, id uint, rate model.RateFields) (int64, error) {
	m.updates = append(m.updates, updateCall{ID: id, Rate: rate})
	if err := m.failUpdate[id]; err != nil {
		return 0, err
	}
	if m.ghostIDs[id] {
		return 0, nil
	}
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	m.rows[id] = rate
	return 1, nil
}

type memClasses struct {
	value  string
	setErr error
	sets   int
}

func (m *memClasses) Get(context.Context) (string, error) { return m.value, nil }

func (m *memClasses) Set(_ context.Context, v string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.value = v
	return nil
}

func (m *memClasses) Classes(context.Context) ([]string, error) {
	return splitLines(m.value), nil
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

type fakeTx struct{ calls int }

func (f *fakeTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeAudit struct {
	entries []model.AuditLog
	err     error
}

func (f *fakeAudit) Log(_ context.Context, e *model.AuditLog) error {
	f.entries = append(f.entries, *e)
	return f.err
}

type recordingNotifier struct{ events []Event }

func (r *recordingNotifier) Notify(e Event) { r.events = append(r.events, e) }

var errBoom = errors.New("boom")
