package stoier

import (
	"fmt"
	"iter"

	"github.com/etnz/stoier/date"
)

// DedupConfig configures a Deduplicator.
type DedupConfig struct {
	DateColumn   string     // column holding the transaction date
	DateFormat   string     // strftime pattern or Go layout of DateColumn
	SenderColumn string     // optional column whose distinct values are collected
	Window       date.Range // inclusive; zero boundaries are open
}

// DefaultDateFormat is the date format of the supported bank exports.
const DefaultDateFormat = "%d.%m.%Y"

// Deduplicator turns overlapping bank exports into a Ledger, dropping records
// whose complete content has already been seen.
type Deduplicator struct {
	cfg    DedupConfig
	seen   map[Hash]struct{}
	ledger *Ledger
	diags  Diagnostics
}

// NewDeduplicator creates an empty Deduplicator.
func NewDeduplicator(cfg DedupConfig) *Deduplicator {
	if cfg.DateFormat == "" {
		cfg.DateFormat = DefaultDateFormat
	}
	return &Deduplicator{
		cfg:    cfg,
		seen:   make(map[Hash]struct{}),
		ledger: NewLedger(),
	}
}

// Add consumes records in a single pass. It can be called once per input file.
//
// It fails with an InputFormatError if a retained record has no date column
// or a date that cannot be parsed; records appended before the failure stay
// in the ledger, callers are expected to discard the Deduplicator.
func (d *Deduplicator) Add(records iter.Seq[Record]) error {
	for r := range records {
		h := r.Hash()
		if _, dup := d.seen[h]; dup {
			d.diags.add(Diagnostic{Level: LevelDebug, Kind: KindDuplicate, Message: fmt.Sprintf("duplicate record %s dropped", h.String()[:12])})
			continue
		}
		d.seen[h] = struct{}{}

		raw, ok := r[d.cfg.DateColumn]
		if !ok {
			return fmt.Errorf("record %s: %w", h.String()[:12], &InputFormatError{Field: d.cfg.DateColumn, Err: errMissingColumn})
		}
		day, ok, err := date.ParseLayout(raw, d.cfg.DateFormat)
		if err != nil {
			return &InputFormatError{Field: d.cfg.DateColumn, Value: raw, Err: err}
		}
		if !ok {
			return &InputFormatError{Field: d.cfg.DateColumn, Value: raw, Err: fmt.Errorf("empty date")}
		}
		if !d.cfg.Window.Contains(day) {
			d.diags.add(Diagnostic{Level: LevelDebug, Kind: KindOutOfRange, Message: fmt.Sprintf("record on %s outside %v", day, d.cfg.Window)})
			continue
		}
		d.ledger.Append(day, r)
		if d.cfg.SenderColumn != "" {
			d.ledger.addSender(r[d.cfg.SenderColumn])
		}
	}
	return nil
}

// Ledger returns the ledger built so far.
func (d *Deduplicator) Ledger() *Ledger { return d.ledger }

// Diagnostics returns the diagnostics emitted so far.
func (d *Deduplicator) Diagnostics() Diagnostics { return d.diags }

// Deduplicate is a convenience to build a ledger from several inputs at once.
func Deduplicate(cfg DedupConfig, inputs ...iter.Seq[Record]) (*Ledger, Diagnostics, error) {
	d := NewDeduplicator(cfg)
	for _, in := range inputs {
		if err := d.Add(in); err != nil {
			return nil, d.diags, err
		}
	}
	return d.ledger, d.diags, nil
}
