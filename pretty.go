package nlwifi

import (
	"fmt"
	"strings"

	"github.com/bryancoxwell/nlwifi/channel"
	"github.com/bryancoxwell/nlwifi/wireless"
)

// bandOrder fixes a deterministic iteration order for a Phy's
// frequency list, since Go map iteration order is randomized.
var bandOrder = []channel.Band{channel.Band24, channel.Band5, channel.Band6, channel.Band60}

// printBandLists renders the enabled channels of each band in freqList,
// six to a line, omitting a band entirely if it has no enabled
// channels (testable property: PHYs with only B24 enabled print no
// B5 section).
func printBandLists(freqList map[channel.Band]*channel.BandList) string {
	var out strings.Builder
	for _, band := range bandOrder {
		bl, ok := freqList[band]
		if !ok {
			continue
		}
		var line strings.Builder
		count := 0
		for _, cd := range bl.Channels {
			if cd.Status != channel.StatusEnabled {
				continue
			}
			fmt.Fprintf(&line, "    [%d (%d)]", cd.Frequency, cd.Channel.Number)
			count++
			if count%6 == 0 {
				line.WriteByte('\n')
			}
		}
		if count == 0 {
			continue
		}
		fmt.Fprintf(&out, "%s:\n", band)
		s := line.String()
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		out.WriteString(s)
		out.WriteByte('\n')
	}
	return out.String()
}

// wrapInBox renders input, a (possibly multi-line) string, inside a
// box-drawn border sized to its longest line.
func wrapInBox(input string) string {
	lines := strings.Split(input, "\n")
	maxLen := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxLen {
			maxLen = n
		}
	}
	boxWidth := maxLen + 4

	var out strings.Builder
	fmt.Fprintf(&out, "┏%s┓\n", strings.Repeat("━", boxWidth-2))
	for _, l := range lines {
		padding := boxWidth - len([]rune(l)) - 4
		if padding < 0 {
			padding = 0
		}
		fmt.Fprintf(&out, "┃ %s%s ┃\n", l, strings.Repeat(" ", padding))
	}
	fmt.Fprintf(&out, "┗%s┛", strings.Repeat("━", boxWidth-2))
	return out.String()
}

// PrettyPrintPhy renders a boxed, human-readable summary of a PHY: its
// name, driver, current mode, and the enabled channels of each
// supported band.
func PrettyPrintPhy(phy *wireless.Phy) string {
	var body strings.Builder
	fmt.Fprintf(&body, "phy%d (%s)", phy.ID, phy.Name)
	if phy.Driver != "" {
		fmt.Fprintf(&body, " driver=%s", phy.Driver)
	}
	fmt.Fprintf(&body, " mode=%s", phy.CurrentIfType)
	body.WriteByte('\n')
	body.WriteString(strings.TrimRight(printBandLists(phy.FrequencyList), "\n"))
	return wrapInBox(body.String())
}

// PrettyPrintInterface renders a boxed, human-readable summary of an
// interface: its name, index, MAC, operating mode, and state.
func PrettyPrintInterface(iface *wireless.Interface) string {
	var body strings.Builder
	fmt.Fprintf(&body, "%s (ifindex %d)\n", iface.Name, iface.Index)
	fmt.Fprintf(&body, "mac=%s mode=%s state=%s", iface.Mac, iface.CurrentIfType, iface.State)
	if iface.Frequency.Freq != nil {
		fmt.Fprintf(&body, " freq=%dMHz", *iface.Frequency.Freq)
	}
	return wrapInBox(body.String())
}
