// Package wireless holds the Phy and Interface domain records shared
// between the nl80211 and rtnetlink transports and the facade that
// reconciles them. It has no socket or netlink dependency of its own.
package wireless

import (
	"net"

	"github.com/bryancoxwell/nlwifi/channel"
	"github.com/bryancoxwell/nlwifi/wire"
)

// Phy describes one physical radio (a "wiphy" in kernel terms).
type Phy struct {
	ID             uint32
	Name           string
	Driver         string
	FrequencyList  map[channel.Band]*channel.BandList
	IfTypes        []wire.IfType
	CurrentIfType  wire.IfType
	HasNetlink     bool
	ActiveMonitor  bool
	Frequency      channel.Frequency
}

// MergeBandList folds bl into the Phy's frequency list: if a BandList
// for bl.Band already exists (from an earlier split-dump chunk), bl's
// channels are appended to it; otherwise bl is inserted as a new entry.
func (p *Phy) MergeBandList(bl *channel.BandList) {
	if p.FrequencyList == nil {
		p.FrequencyList = make(map[channel.Band]*channel.BandList)
	}
	existing, ok := p.FrequencyList[bl.Band]
	if !ok {
		cp := *bl
		p.FrequencyList[bl.Band] = &cp
		return
	}
	existing.MergeChannels(bl.Channels)
}

// Clone returns a deep-enough copy of p suitable for an Interface to
// hold as a point-in-time snapshot, avoiding a live back-reference into
// the facade's Phy cache (see the design notes on breaking the
// Interface<->Phy cycle).
func (p *Phy) Clone() *Phy {
	if p == nil {
		return nil
	}
	cp := *p
	if p.FrequencyList != nil {
		cp.FrequencyList = make(map[channel.Band]*channel.BandList, len(p.FrequencyList))
		for b, bl := range p.FrequencyList {
			blCopy := *bl
			blCopy.Channels = append([]channel.ChannelData(nil), bl.Channels...)
			cp.FrequencyList[b] = &blCopy
		}
	}
	if p.IfTypes != nil {
		cp.IfTypes = append([]wire.IfType(nil), p.IfTypes...)
	}
	return &cp
}

// Interface is a logical network interface ("netdev") bound to a Phy.
type Interface struct {
	Index         uint32
	HasIndex      bool
	Name          string
	Mac           net.HardwareAddr
	SSID          []byte
	State         wire.OperState
	HasState      bool
	PhyID         uint32
	Phy           *Phy
	Wdev          uint64
	HasWdev       bool
	CurrentIfType wire.IfType
	Frequency     channel.Frequency
}

// MergeRTState copies rtnetlink-observed link state into i, without
// overwriting fields nl80211 already populated — the reconciliation
// policy documented for the facade's refresh cycle.
func (i *Interface) MergeRTState(state wire.OperState) {
	i.State = state
	i.HasState = true
}
