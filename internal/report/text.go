// internal/report/text.go

// Package report renders decoded device state for humans and machines.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tamzrod/benchpsu/internal/schema"
)

// CollectionTimeLayout is how text output prints timestamps.
const CollectionTimeLayout = "2006-01-02 15:04:05.000000"

// Text writes the human-readable report. Trend markers are shown only
// when trends is non-nil (watch mode).
func Text(w io.Writer, st *schema.DeviceState, trends *Trends) error {
	var b strings.Builder

	mode := "CV"
	if st.ConstantCurrent {
		mode = "CC"
	}
	fmt.Fprintf(&b, "Setting: %5.02fV, %6.03fA (%s)\n", st.SettingVolts, st.SettingAmps, mode)

	output := "(off)"
	if st.OutputState {
		output = "(on)"
	}
	fmt.Fprintf(&b, "Output %-5s: %5.02fV%s, %5.02fA%s, %6.02fW%s\n",
		output,
		st.Volts, trends.Arrow(schema.FieldVolts, st.Volts),
		st.Amps, trends.Arrow(schema.FieldAmps, st.Amps),
		st.Watts, trends.Arrow(schema.FieldWatts, st.Watts),
	)
	fmt.Fprintf(&b, "Input: %5.02fV%s, protection: %s\n",
		st.InputVolts, trends.Arrow(schema.FieldInputVolts, st.InputVolts), st.Protection)
	fmt.Fprintf(&b, "Brightness: %d/5, key lock: %s\n", st.Brightness, onOff(st.KeyLock))

	if st.Serial != nil {
		fmt.Fprintf(&b, "Model: %d, firmware: %v, serial: %d\n", st.Model, st.Firmware, *st.Serial)
	} else {
		fmt.Fprintf(&b, "Model: %d, firmware: %v\n", st.Model, st.Firmware)
	}

	if hr := st.HighRange; hr != nil {
		fmt.Fprintf(&b, "Temperature: %.0fC / %.0fF, external: %.0fC / %.0fF\n", hr.TempC, hr.TempF, hr.ExtTempC, hr.ExtTempF)
		fmt.Fprintf(&b, "Energy: %.03fAh, %.03fWh\n", hr.AmpHours, hr.WattHours)
		if hr.BatteryMode {
			fmt.Fprintf(&b, "Battery: %5.02fV\n", hr.BatteryVolts)
		}
		if !hr.Clock.IsZero() {
			fmt.Fprintf(&b, "Device clock: %s\n", hr.Clock.Format("2006-01-02 15:04:05"))
		}
	}

	fmt.Fprintf(&b, "Collection time: %s\n", st.CollectionTime.Format(CollectionTimeLayout))

	if len(st.Groups) > 0 {
		b.WriteString("\n")
	}
	for _, idx := range sortedGroups(st.Groups) {
		writeGroup(&b, st.Groups[idx])
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeGroup(b *strings.Builder, g *schema.GroupState) {
	fmt.Fprintf(b, "Group %d:\n", g.Index)
	fmt.Fprintf(b, "    Setting: %5.02fV, %6.03fA\n", g.SettingVolts, g.SettingAmps)
	if g.CutoffWatts != nil {
		fmt.Fprintf(b, "    Cutoff: %5.02fV, %6.03fA, %5.01fW\n", g.CutoffVolts, g.CutoffAmps, *g.CutoffWatts)
	} else {
		fmt.Fprintf(b, "    Cutoff: %5.02fV, %6.03fA\n", g.CutoffVolts, g.CutoffAmps)
	}
	if g.Brightness != nil {
		fmt.Fprintf(b, "    Brightness: %d/5\n", *g.Brightness)
	}
	if g.MaintainOutput != nil {
		fmt.Fprintf(b, "    Maintain output state: %t\n", *g.MaintainOutput)
	}
	if g.PowerOnOutput != nil {
		fmt.Fprintf(b, "    Output on power-on: %t\n", *g.PowerOnOutput)
	}
}

func sortedGroups(groups map[int]*schema.GroupState) []int {
	out := make([]int, 0, len(groups))
	for idx := range groups {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
