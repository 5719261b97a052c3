package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"taxsync/internal/model"
	"taxsync/internal/taxerr"
)

// --- DTOs ---

type RateChange struct {
	ID      uint     `json:"id"`
	Class   string   `json:"class"`
	Rate    string   `json:"rate"`
	Columns []string `json:"columns,omitempty"` // columns that differed, updates only
}

type ReconcileResult struct {
	Country   string       `json:"country"`
	Inserted  []RateChange `json:"inserted"`
	Updated   []RateChange `json:"updated"`
	Unchanged int          `json:"unchanged"`
	// Classes is the block of labels appended to the configured class list
	Classes string `json:"classes"`
}

// --- Interface ---

// ReconcileService brings the shop's stored rates in line with a country's declared rates.
//
// Writes are not transactional: when one class fails the others are still
// applied, and nothing already written is rolled back. Concurrent runs race on
// the read-then-write of both the rate table and the class list.
type ReconcileService interface {
	Reconcile(ctx context.Context, country string, actor string) (*ReconcileResult, error)
}

type reconcileService struct {
	declarations DeclarationLoader
	rates        RateStore
	classes      ClassListStore
	tx           TxRunner
	audit        AuditLogger
	notifier     Notifier
	logger       *zap.Logger
}

// ReconcileOption configures optional collaborators
type ReconcileOption func(*reconcileService)

// WithTx runs the class list read-modify-write inside a transaction
func WithTx(tx TxRunner) ReconcileOption {
	return func(s *reconcileService) { s.tx = tx }
}

// WithAudit records every write in the audit log, best effort
func WithAudit(audit AuditLogger) ReconcileOption {
	return func(s *reconcileService) { s.audit = audit }
}

// WithNotifier pushes every write to n
func WithNotifier(n Notifier) ReconcileOption {
	return func(s *reconcileService) { s.notifier = n }
}

// WithLogger sets the logger, zap.NewNop by default
func WithLogger(logger *zap.Logger) ReconcileOption {
	return func(s *reconcileService) { s.logger = logger }
}

func NewReconcileService(declarations DeclarationLoader, rates RateStore, classes ClassListStore, opts ...ReconcileOption) ReconcileService {
	s := &reconcileService{
		declarations: declarations,
		rates:        rates,
		classes:      classes,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- Implementation ---

func (s *reconcileService) Reconcile(ctx context.Context, country string, actor string) (*ReconcileResult, error) {
	country = strings.ToLower(strings.TrimSpace(country))
	logger := s.logger.With(zap.String("country", country))

	declared, err := s.declarations.Load(country)
	if err != nil {
		var cfgErr *taxerr.ConfigurationError
		if !errors.As(err, &cfgErr) {
			err = taxerr.NewConfigurationError(country, err)
		}
		logger.Error("no usable tax rate declaration", zap.Error(err))
		return nil, err
	}

	stored, err := s.rates.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored tax rates for country %q: %w", country, err)
	}

	res := &ReconcileResult{Country: country, Inserted: []RateChange{}, Updated: []RateChange{}}
	var failures []*taxerr.StorageWriteError

	// Insert one rate per declared class that has no stored rate at all
	storedClasses := make(map[string]bool, len(stored))
	for _, r := range stored {
		storedClasses[r.Class] = true
	}
	for _, d := range declared {
		if storedClasses[d.Class] {
			continue
		}
		storedClasses[d.Class] = true

		id, err := s.rates.Insert(ctx, d)
		if err != nil {
			failures = append(failures, s.fail(logger, &taxerr.StorageWriteError{
				Country: country, Class: d.Class, Op: taxerr.OpInsert, Err: err,
			}))
			continue
		}
		change := RateChange{ID: id, Class: d.Class, Rate: formatRate(d)}
		res.Inserted = append(res.Inserted, change)
		logger.Info("tax rate inserted", zap.Uint("id", id), zap.String("class", d.Class), zap.String("rate", change.Rate))
		s.record(ctx, actor, country, model.ActionInsertTaxRate, change, d)
		s.notify(Event{Type: EventRateInserted, Country: country, Class: d.Class, RateID: id, Rate: change.Rate})
	}

	// Replace stored rates whose fields drifted from the declaration.
	// Only rates present before the inserts above are compared.
	for _, d := range declared {
		for _, st := range stored {
			if st.Class != d.Class {
				continue
			}
			cols := d.Diff(st.RateFields)
			if len(cols) == 0 {
				res.Unchanged++
				continue
			}

			affected, err := s.rates.Update(ctx, st.ID, d)
			if err == nil && affected == 0 {
				err = taxerr.ErrRateNotFound
			}
			if err != nil {
				failures = append(failures, s.fail(logger, &taxerr.StorageWriteError{
					Country: country, Class: d.Class, Op: taxerr.OpUpdate, ID: st.ID, Err: err,
				}))
				continue
			}
			change := RateChange{ID: st.ID, Class: d.Class, Rate: formatRate(d), Columns: cols}
			res.Updated = append(res.Updated, change)
			logger.Info("tax rate updated", zap.Uint("id", st.ID), zap.String("class", d.Class), zap.Strings("columns", cols))
			s.record(ctx, actor, country, model.ActionUpdateTaxRate, change, d)
			s.notify(Event{Type: EventRateUpdated, Country: country, Class: d.Class, RateID: st.ID, Rate: change.Rate, Columns: cols})
		}
	}

	// Declare the classes
	res.Classes = ClassLabels(declared)
	classErr := s.appendClasses(ctx, res.Classes)
	if classErr != nil {
		classErr = fmt.Errorf("failed to save tax classes: %w", classErr)
		logger.Error("tax classes not saved", zap.Error(classErr))
	} else if res.Classes != "" {
		s.record(ctx, actor, country, model.ActionAppendTaxClasses, nil, map[string]string{"classes": res.Classes})
		s.notify(Event{Type: EventClassesSaved, Country: country})
	}

	logger.Info("tax rates reconciled",
		zap.Int("inserted", len(res.Inserted)),
		zap.Int("updated", len(res.Updated)),
		zap.Int("unchanged", res.Unchanged),
		zap.Int("failed", len(failures)))

	if len(failures) > 0 || classErr != nil {
		return res, &taxerr.ReconcileError{Country: country, Failures: failures, Err: classErr}
	}
	return res, nil
}

// appendClasses adds labels after whatever is already configured. Running
// twice lists the classes twice.
func (s *reconcileService) appendClasses(ctx context.Context, labels string) error {
	if labels == "" {
		return nil
	}
	apply := func(ctx context.Context) error {
		existing, err := s.classes.Get(ctx)
		if err != nil {
			return err
		}
		return s.classes.Set(ctx, AppendClassList(existing, labels))
	}
	if s.tx == nil {
		return apply(ctx)
	}
	return s.tx.RunInTx(ctx, apply)
}

func (s *reconcileService) fail(logger *zap.Logger, e *taxerr.StorageWriteError) *taxerr.StorageWriteError {
	logger.Error("tax rate write failed",
		zap.String("op", e.Op), zap.String("class", e.Class), zap.Uint("id", e.ID), zap.Error(e.Err))
	s.notify(Event{Type: EventRateFailed, Country: e.Country, Class: e.Class, RateID: e.ID, Error: e.Error()})
	return e
}

func (s *reconcileService) notify(e Event) {
	if s.notifier != nil {
		s.notifier.Notify(e)
	}
}

func (s *reconcileService) record(ctx context.Context, actor, country, action string, change interface{}, details interface{}) {
	if s.audit == nil {
		return
	}
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		Actor:   actor,
		Action:  action,
		Country: country,
		Details: string(detailsJSON),
	}
	if c, ok := change.(RateChange); ok {
		entry.EntityID = strconv.FormatUint(uint64(c.ID), 10)
		entry.EntityName = c.Class + " " + c.Rate
	}

	// Best-effort audit log, don't fail the reconciliation if logging fails
	if err := s.audit.Log(ctx, &entry); err != nil {
		s.logger.Warn("audit log not written", zap.String("action", action), zap.Error(err))
	}
}

// --- Helpers ---

// ClassLabels turns declared class slugs into display labels: first letter
// upper-cased, one per line, in declaration order. The standard class has no
// label and duplicates are listed once.
func ClassLabels(declared []model.DeclaredRate) string {
	seen := make(map[string]bool, len(declared))
	labels := make([]string, 0, len(declared))
	for _, d := range declared {
		if d.Class == model.StandardClass || seen[d.Class] {
			continue
		}
		seen[d.Class] = true
		labels = append(labels, upperFirst(d.Class))
	}
	return strings.Join(labels, "\n")
}

// AppendClassList appends labels to an existing class list, keeping one label per line
func AppendClassList(existing, labels string) string {
	if existing == "" || strings.HasSuffix(existing, "\n") {
		return existing + labels
	}
	return existing + "\n" + labels
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func formatRate(r model.RateFields) string {
	if !r.Rate.Valid {
		return ""
	}
	return r.Rate.Decimal.StringFixed(4)
}
