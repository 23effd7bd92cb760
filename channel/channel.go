// Package channel implements the band/channel/frequency algebra:
// pure, allocation-free conversions between a wireless band, a channel
// number within that band, and the frequency (in kHz-equivalent MHz
// units, matching nl80211's AttrWiphyFreq) that channel occupies.
//
// No function here touches a socket or a byte slice; everything is a
// total function over small integers, which makes the whole package
// exhaustively unit-testable without root privileges or a live radio.
package channel

import (
	"strconv"
	"strings"

	"github.com/bryancoxwell/nlwifi/wire"
)

// Band is a wireless frequency band. The underlying integer matches
// the band's common name in GHz (2, 5, 6, 60), preserved for round-trip
// encoding against nl80211's band index attributes.
type Band uint32

const (
	BandUnknown Band = 0
	Band24      Band = 2
	Band5       Band = 5
	Band6       Band = 6
	Band60      Band = 60
)

func (b Band) String() string {
	switch b {
	case Band24:
		return "2.4GHz"
	case Band5:
		return "5GHz"
	case Band6:
		return "6GHz"
	case Band60:
		return "60GHz"
	default:
		return "unknown"
	}
}

// Channel is a (band, number) pair.
type Channel struct {
	Band   Band
	Number uint32
}

// ChannelStatus indicates whether a ChannelData entry is permitted for
// use; Disabled overrides any other capability regardless of band.
type ChannelStatus int

const (
	StatusEnabled ChannelStatus = iota
	StatusDisabled
)

// ChannelData describes one channel as reported by a PHY's supported
// band list.
type ChannelData struct {
	Frequency  uint32
	Channel    Channel
	MaxTxPower uint32
	Status     ChannelStatus
}

// BandList is the ordered set of channels a PHY supports within one
// band. Channels are unique by number within a BandList.
type BandList struct {
	Band     Band
	Channels []ChannelData
}

// MergeChannels appends each channel in chans to the list, skipping it if a channel with
// the same number is already present. Used to reconcile partial PHY
// dump chunks that each report a subset of one band's channels.
func (bl *BandList) MergeChannels(chans []ChannelData) {
	for _, c := range chans {
		exists := false
		for _, existing := range bl.Channels {
			if existing.Channel.Number == c.Channel.Number {
				exists = true
				break
			}
		}
		if !exists {
			bl.Channels = append(bl.Channels, c)
		}
	}
}

// Frequency is the current tuning of an interface or PHY. All fields
// are optional; a nil field means the attribute was absent from the
// kernel's response.
type Frequency struct {
	Freq    *uint32
	Width   *wire.ChanWidth
	Channel *uint32
	Power   *uint32
}

// band5Channels is the fixed set of legal 5GHz channel numbers.
var band5Channels = buildBand5Channels()

func buildBand5Channels() map[uint32]struct{} {
	fixed := []uint32{
		34, 36, 38, 40, 42, 44, 46, 48, 50, 52, 54, 56, 58, 60, 62, 64,
		68, 72, 76, 80, 84, 88, 92, 96,
		149, 151, 153, 155, 157, 159, 161, 165,
		169, 173, 177, 181, 184, 188, 192, 196,
	}
	set := make(map[uint32]struct{}, len(fixed)+23)
	for _, c := range fixed {
		set[c] = struct{}{}
	}
	for c := uint32(100); c <= 144; c += 2 {
		set[c] = struct{}{}
	}
	return set
}

// ValidChannel reports whether number is a legal channel in band.
func ValidChannel(band Band, number uint32) bool {
	switch band {
	case Band24:
		return number >= 1 && number <= 14
	case Band5:
		_, ok := band5Channels[number]
		return ok
	case Band6:
		if number == 2 {
			return true
		}
		return number >= 1 && number <= 233 && (number-1)%4 == 0
	case Band60:
		return number >= 1 && number <= 6
	default:
		return false
	}
}

// ChannelToFreq converts a (band, channel) pair to its frequency in
// MHz. It returns 0 for unsupported pairs, including a zero channel
// number in any band.
func ChannelToFreq(band Band, ch uint32) uint32 {
	if ch == 0 {
		return 0
	}
	switch band {
	case Band24:
		switch {
		case ch == 14:
			return 2484
		case ch < 14:
			return 2407 + 5*ch
		}
		return 0
	case Band5:
		if ch >= 182 && ch <= 196 {
			return 4000 + 5*ch
		}
		return 5000 + 5*ch
	case Band6:
		if ch == 2 {
			return 5935
		}
		if ch <= 253 {
			return 5950 + 5*ch
		}
		return 0
	case Band60:
		if ch < 7 {
			return 56160 + 2160*ch
		}
		return 0
	default:
		return 0
	}
}

// FreqToBand reports which band a frequency (in MHz) belongs to.
// Frequencies below 1000 or above 70200 are Unknown.
func FreqToBand(freq uint32) Band {
	switch {
	case freq < 1000 || freq > 70200:
		return BandUnknown
	case freq >= 58320 && freq <= 70200:
		return Band60
	case freq >= 5925 && freq <= 7125:
		// Includes the 5935 special case for channel 2.
		return Band6
	case (freq >= 4910 && freq <= 4980) || (freq >= 5150 && freq <= 5924):
		return Band5
	default:
		return Band24
	}
}

// FreqToChan is the algebraic inverse of ChannelToFreq.
func FreqToChan(freq uint32) uint32 {
	switch {
	case freq == 2484:
		return 14
	case freq == 5935:
		return 2
	case freq >= 2412 && freq <= 2472 && (freq-2407)%5 == 0:
		return (freq - 2407) / 5
	case freq >= 4910 && freq <= 4980 && (freq-4000)%5 == 0:
		return (freq - 4000) / 5
	case freq >= 5150 && freq <= 5924 && (freq-5000)%5 == 0:
		return (freq - 5000) / 5
	case freq >= 5950 && freq <= 7115 && (freq-5950)%5 == 0:
		return (freq - 5950) / 5
	case freq >= 58320 && freq <= 69120 && (freq-56160)%2160 == 0:
		return (freq - 56160) / 2160
	default:
		return 0
	}
}

// ParseChannelToken parses a channel token such as "36", "1.6e", or
// "1.ay" into its (band, channel) pair. Plain decimal tokens in [1,14]
// resolve to 2.4GHz and are checked before the >=14 rule for 5GHz, per
// the documented disambiguation for channel 14.
func ParseChannelToken(tok string) (Band, uint32, bool) {
	switch {
	case strings.HasSuffix(tok, ".6e"):
		n, err := strconv.ParseUint(strings.TrimSuffix(tok, ".6e"), 10, 32)
		if err != nil {
			return BandUnknown, 0, false
		}
		return Band6, uint32(n), true
	case strings.HasSuffix(tok, ".ay"):
		n, err := strconv.ParseUint(strings.TrimSuffix(tok, ".ay"), 10, 32)
		if err != nil {
			return BandUnknown, 0, false
		}
		return Band60, uint32(n), true
	default:
		n, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return BandUnknown, 0, false
		}
		if n >= 1 && n <= 14 {
			return Band24, uint32(n), true
		}
		if n > 14 {
			return Band5, uint32(n), true
		}
		return BandUnknown, 0, false
	}
}
