package channel_test

import (
	"testing"

	"github.com/bryancoxwell/nlwifi/channel"
)

func TestChannelToFreqWitnesses(t *testing.T) {
	cases := []struct {
		band channel.Band
		ch   uint32
		freq uint32
	}{
		{channel.Band24, 14, 2484},
		{channel.Band24, 1, 2412},
		{channel.Band24, 6, 2437},
		{channel.Band5, 36, 5180},
		{channel.Band5, 165, 5825},
		{channel.Band5, 184, 4920},
		{channel.Band6, 2, 5935},
		{channel.Band6, 1, 5955},
		{channel.Band60, 1, 58320},
		{channel.Band60, 6, 69120},
	}
	for _, c := range cases {
		if got := channel.ChannelToFreq(c.band, c.ch); got != c.freq {
			t.Errorf("ChannelToFreq(%v, %d) = %d, want %d", c.band, c.ch, got, c.freq)
		}
	}
}

func TestChannelToFreqUnsupported(t *testing.T) {
	cases := []struct {
		band channel.Band
		ch   uint32
	}{
		{channel.Band24, 0},
		{channel.Band24, 15},
		{channel.Band60, 7},
		{channel.BandUnknown, 6},
	}
	for _, c := range cases {
		if got := channel.ChannelToFreq(c.band, c.ch); got != 0 {
			t.Errorf("ChannelToFreq(%v, %d) = %d, want 0", c.band, c.ch, got)
		}
	}
}

func TestRoundTripLegalChannels(t *testing.T) {
	legal := map[channel.Band][]uint32{
		channel.Band24: {1, 2, 6, 11, 13, 14},
		channel.Band5:  {34, 36, 100, 144, 149, 196},
		channel.Band6:  {2, 1, 5, 233},
		channel.Band60: {1, 2, 6},
	}
	for band, chans := range legal {
		for _, ch := range chans {
			freq := channel.ChannelToFreq(band, ch)
			if freq == 0 {
				t.Fatalf("ChannelToFreq(%v, %d) returned 0 for a legal channel", band, ch)
			}
			if gotBand := channel.FreqToBand(freq); gotBand != band {
				t.Errorf("FreqToBand(ChannelToFreq(%v, %d)=%d) = %v, want %v", band, ch, freq, gotBand, band)
			}
			if gotCh := channel.FreqToChan(freq); gotCh != ch {
				t.Errorf("FreqToChan(ChannelToFreq(%v, %d)=%d) = %d, want %d", band, ch, freq, gotCh, ch)
			}
		}
	}
}

func TestFreqToBandBoundaries(t *testing.T) {
	cases := []struct {
		freq uint32
		band channel.Band
	}{
		{999, channel.BandUnknown},
		{70201, channel.BandUnknown},
		{2412, channel.Band24},
		{4920, channel.Band5},
		{5180, channel.Band5},
		{5935, channel.Band6},
		{5955, channel.Band6},
		{58320, channel.Band60},
	}
	for _, c := range cases {
		if got := channel.FreqToBand(c.freq); got != c.band {
			t.Errorf("FreqToBand(%d) = %v, want %v", c.freq, got, c.band)
		}
	}
}

func TestParseChannelToken(t *testing.T) {
	cases := []struct {
		tok  string
		band channel.Band
		ch   uint32
		ok   bool
	}{
		{"14", channel.Band24, 14, true},
		{"36", channel.Band5, 36, true},
		{"1.6e", channel.Band6, 1, true},
		{"1.ay", channel.Band60, 1, true},
		{"foo", channel.BandUnknown, 0, false},
	}
	for _, c := range cases {
		band, ch, ok := channel.ParseChannelToken(c.tok)
		if ok != c.ok || (ok && (band != c.band || ch != c.ch)) {
			t.Errorf("ParseChannelToken(%q) = (%v, %d, %v), want (%v, %d, %v)", c.tok, band, ch, ok, c.band, c.ch, c.ok)
		}
	}
}

func TestValidChannel(t *testing.T) {
	if !channel.ValidChannel(channel.Band5, 144) {
		t.Error("144 should be valid on 5GHz")
	}
	if channel.ValidChannel(channel.Band5, 145) {
		t.Error("145 should not be valid on 5GHz (odd, outside 100-144 even run)")
	}
	if !channel.ValidChannel(channel.Band6, 2) {
		t.Error("2 should be valid on 6GHz (special case)")
	}
	if !channel.ValidChannel(channel.Band6, 233) {
		t.Error("233 should be valid on 6GHz")
	}
	if channel.ValidChannel(channel.Band24, 15) {
		t.Error("15 should not be valid on 2.4GHz")
	}
}

func TestBandListMergeChannels(t *testing.T) {
	bl := channel.BandList{Band: channel.Band5}
	bl.MergeChannels([]channel.ChannelData{
		{Channel: channel.Channel{Band: channel.Band5, Number: 36}},
		{Channel: channel.Channel{Band: channel.Band5, Number: 40}},
	})
	bl.MergeChannels([]channel.ChannelData{
		{Channel: channel.Channel{Band: channel.Band5, Number: 44}},
		{Channel: channel.Channel{Band: channel.Band5, Number: 36}}, // duplicate
	})
	if len(bl.Channels) != 3 {
		t.Fatalf("got %d channels, want 3", len(bl.Channels))
	}
	want := []uint32{36, 40, 44}
	for i, ch := range bl.Channels {
		if ch.Channel.Number != want[i] {
			t.Errorf("channel %d = %d, want %d (order not preserved)", i, ch.Channel.Number, want[i])
		}
	}
}
