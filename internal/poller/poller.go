// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/status"
	"github.com/tamzrod/benchpsu/internal/writer"
)

// Session polls one device and applies writes to it.
// Transactions are serialized by the Client, so a console and a watch loop
// may share one session.
type Session struct {
	cfg    Config
	client Client
	writer writer.Writer
	log    logrus.FieldLogger

	// now is the clock used for CollectionTime and health.
	now func() time.Time

	mu       sync.Mutex
	tracker  status.Tracker
	observer Observer
}

// New creates a session with immutable config.
func New(cfg Config, client Client, log logrus.FieldLogger) (*Session, error) {
	if !cfg.Family.Valid() {
		return nil, errors.New("poller: family required")
	}
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("poller: interval must be >= 0, got %s", cfg.Interval)
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	for _, g := range cfg.Groups {
		if g < 0 || g >= schema.GroupSlots {
			return nil, &schema.SchemaError{Kind: schema.InvalidGroup, Family: cfg.Family, Group: g}
		}
	}
	cfg.Groups = append([]int(nil), cfg.Groups...)

	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithFields(logrus.Fields{
		"family": cfg.Family.String(),
		"unit":   cfg.UnitID,
	})

	return &Session{
		cfg:    cfg,
		client: client,
		writer: writer.New(client, cfg.UnitID, log),
		log:    log,
		now:    time.Now,
	}, nil
}

// Family returns the device family this session talks to.
func (s *Session) Family() schema.Family { return s.cfg.Family }

// Groups returns the group indices read by every cycle.
func (s *Session) Groups() []int { return append([]int(nil), s.cfg.Groups...) }

// OnCycle registers fn to be called after every cycle. Nil clears it.
func (s *Session) OnCycle(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// Health returns the poll health accumulated so far.
func (s *Session) Health() status.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Snapshot()
}

// RunOnce performs exactly one poll cycle: the primary block, then every
// configured group in order.
// All-or-nothing: any failure aborts the cycle and no state is returned.
func (s *Session) RunOnce() (*schema.DeviceState, error) {
	st, err := s.readState(s.cfg.Groups)
	s.record(st, err)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Session) readState(groups []int) (*schema.DeviceState, error) {
	f := s.cfg.Family

	regs, err := s.client.ReadRegisters(0, f.BlockLength(), s.cfg.UnitID)
	if err != nil {
		return nil, fmt.Errorf("poller: unit=%d read block: %w", s.cfg.UnitID, err)
	}
	st := f.Decode(regs, 0)

	for _, idx := range groups {
		base := f.GroupAddress(idx)
		regs, err := s.client.ReadRegisters(base, f.GroupLength(), s.cfg.UnitID)
		if err != nil {
			return nil, fmt.Errorf("poller: unit=%d read group %d: %w", s.cfg.UnitID, idx, err)
		}
		g, err := f.DecodeGroup(idx, regs, base)
		if err != nil {
			return nil, fmt.Errorf("poller: %w", err)
		}
		st.Groups[idx] = g
	}

	// Commit only if all reads succeeded
	st.CollectionTime = s.now()
	return st, nil
}

func (s *Session) record(st *schema.DeviceState, err error) {
	s.mu.Lock()
	snap := s.tracker.Observe(err, s.now())
	fn := s.observer
	s.mu.Unlock()

	if fn != nil {
		fn(st, snap)
	}
}

// Apply writes req to the device through the batching writer.
func (s *Session) Apply(req writer.Request) error {
	if len(req) == 0 {
		return nil
	}
	return s.writer.Apply(req)
}
