// internal/poller/settings.go
package poller

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/writer"
)

// Settings are one-time writes applied before polling. Nil fields are left alone.
type Settings struct {
	Volts      *float64
	Amps       *float64
	Output     *bool
	KeyLock    *bool
	Brightness *int
	LoadGroup  *int
	SetClock   bool

	// Group settings are applied to every selected group.
	Group GroupSettings
}

// GroupSettings are writes to one preset slot.
type GroupSettings struct {
	Volts          *float64
	Amps           *float64
	CutoffVolts    *float64
	CutoffAmps     *float64
	CutoffWatts    *float64
	Brightness     *int
	MaintainOutput *bool
	PowerOnOutput  *bool
}

type setting struct {
	field string
	value *float64
}

func (s Settings) primary() []setting {
	return []setting{
		{schema.FieldSettingVolts, s.Volts},
		{schema.FieldSettingAmps, s.Amps},
		{schema.FieldOutputState, fromBool(s.Output)},
		{schema.FieldKeyLock, fromBool(s.KeyLock)},
		{schema.FieldBrightness, fromInt(s.Brightness)},
		{schema.FieldGroupLoader, fromInt(s.LoadGroup)},
	}
}

func (g GroupSettings) settings() []setting {
	return []setting{
		{schema.FieldSettingVolts, g.Volts},
		{schema.FieldSettingAmps, g.Amps},
		{schema.FieldCutoffVolts, g.CutoffVolts},
		{schema.FieldCutoffAmps, g.CutoffAmps},
		{schema.FieldCutoffWatts, g.CutoffWatts},
		{schema.FieldBrightness, fromInt(g.Brightness)},
		{schema.FieldMaintainOutput, fromBool(g.MaintainOutput)},
		{schema.FieldPowerOnOutput, fromBool(g.PowerOnOutput)},
	}
}

// BuildRequest encodes every present setting for family f into one request.
// Group settings go to each index in groups. The clock, when requested,
// is set from now. Any encoding failure aborts the whole request.
func BuildRequest(f schema.Family, s Settings, groups []int, now time.Time, log logrus.FieldLogger) (writer.Request, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	req := make(writer.Request)

	for _, st := range s.primary() {
		if st.value == nil {
			continue
		}
		w, err := f.Encode(st.field, *st.value)
		if err != nil {
			return nil, err
		}
		log.Infof("Setting %q to %v", w.Description, w.Value)
		log.Debugf("%s %q (register %d): %v (%d)", w.Field, w.Description, w.Address, w.Value, w.Raw)
		req.Add(w)
	}

	if s.SetClock {
		log.Info("Setting device clock")
		writes, err := f.EncodeClock(now)
		if err != nil {
			return nil, err
		}
		for _, w := range writes {
			log.Debugf("%s %q (register %d): %v (%d)", w.Field, w.Description, w.Address, w.Value, w.Raw)
		}
		req.Add(writes...)
	}

	for _, g := range groups {
		for _, st := range s.Group.settings() {
			if st.value == nil {
				continue
			}
			w, err := f.EncodeGroup(g, st.field, *st.value)
			if err != nil {
				return nil, err
			}
			log.Infof("Setting group %d %q to %v", g, w.Description, w.Value)
			log.Debugf("Group %d %s %q (register %d): %v (%d)", g, w.Field, w.Description, w.Address, w.Value, w.Raw)
			req.Add(w)
		}
	}

	return req, nil
}

// ApplySettings encodes s against the session's family and groups and writes it.
func (s *Session) ApplySettings(set Settings) error {
	req, err := BuildRequest(s.cfg.Family, set, s.cfg.Groups, s.now(), s.log)
	if err != nil {
		return err
	}
	return s.Apply(req)
}

func fromBool(b *bool) *float64 {
	if b == nil {
		return nil
	}
	v := 0.0
	if *b {
		v = 1
	}
	return &v
}

func fromInt(i *int) *float64 {
	if i == nil {
		return nil
	}
	v := float64(*i)
	return &v
}
