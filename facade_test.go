package nlwifi

import (
	"net"
	"testing"

	"github.com/bryancoxwell/nlwifi/channel"
	"github.com/bryancoxwell/nlwifi/wire"
	"github.com/bryancoxwell/nlwifi/wireless"
	"github.com/google/go-cmp/cmp"
)

// fakeNT and fakeRT are interface-seamed fakes standing in for
// *nl80211.Conn/*rtwifi.Conn, in the teacher's client_test.go style.
type fakeNT struct {
	phys   map[uint32]*wireless.Phy
	ifaces map[uint32]*wireless.Interface

	lastSetType      wire.IfType
	lastActiveMon    bool
	lastSetFreq      uint32
	lastSetWidth     wire.ChanWidth
	lastSetChanType  wire.ChanType
	setTypeCalls     int
	setFrequencyCall int
	getAllWiphyCalls int
	failSetType      error
}

func (f *fakeNT) GetInterfaces() (map[uint32]*wireless.Interface, error) { return f.ifaces, nil }
func (f *fakeNT) GetAllWiphys() (map[uint32]*wireless.Phy, error) {
	f.getAllWiphyCalls++
	return f.phys, nil
}
func (f *fakeNT) SetType(ifindex uint32, iftype wire.IfType, active bool) error {
	f.setTypeCalls++
	f.lastSetType = iftype
	f.lastActiveMon = active
	return f.failSetType
}
func (f *fakeNT) SetFrequency(ifindex uint32, freq uint32, width wire.ChanWidth, ct wire.ChanType) error {
	f.setFrequencyCall++
	f.lastSetFreq = freq
	f.lastSetWidth = width
	f.lastSetChanType = ct
	return nil
}
func (f *fakeNT) SetPowerSaveOff(ifindex uint32) error { return nil }
func (f *fakeNT) Close() error                         { return nil }

type fakeRT struct {
	states map[uint32]wire.OperState
}

func (f *fakeRT) GetInterfaceStatus(ifindex uint32) (wire.OperState, error) {
	return f.states[ifindex], nil
}
func (f *fakeRT) SetInterfaceUp(ifindex uint32) error   { return nil }
func (f *fakeRT) SetInterfaceDown(ifindex uint32) error { return nil }
func (f *fakeRT) SetInterfaceMac(ifindex uint32, mac net.HardwareAddr) error { return nil }
func (f *fakeRT) SetInterfaceMacRandom(ifindex uint32) (net.HardwareAddr, error) {
	return net.HardwareAddr{0x02, 0, 0, 0, 0, 1}, nil
}
func (f *fakeRT) Close() error { return nil }

func oneBandFixture() *wireless.Phy {
	return &wireless.Phy{
		ID:   0,
		Name: "phy0",
		FrequencyList: map[channel.Band]*channel.BandList{
			channel.Band24: {Band: channel.Band24, Channels: []channel.ChannelData{
				{Frequency: 2437, Channel: channel.Channel{Band: channel.Band24, Number: 6}, Status: channel.StatusEnabled},
			}},
			channel.Band5: {Band: channel.Band5, Channels: []channel.ChannelData{
				{Frequency: 5180, Channel: channel.Channel{Band: channel.Band5, Number: 36}, Status: channel.StatusEnabled},
			}},
		},
	}
}

func TestFacadeNewBuildsCaches(t *testing.T) {
	nt := &fakeNT{
		phys: map[uint32]*wireless.Phy{0: oneBandFixture()},
		ifaces: map[uint32]*wireless.Interface{
			0: {Index: 3, HasIndex: true, Name: "wlan0", PhyID: 0, CurrentIfType: wire.IfTypeStation},
		},
	}
	rt := &fakeRT{states: map[uint32]wire.OperState{3: wire.OperStateUp}}

	f, err := newWithTransports(nt, rt)
	if err != nil {
		t.Fatalf("newWithTransports: %v", err)
	}

	if len(f.Phys()) != 1 {
		t.Fatalf("got %d phys, want 1", len(f.Phys()))
	}
	ifaces := f.Interfaces()
	if len(ifaces) != 1 {
		t.Fatalf("got %d ifaces, want 1", len(ifaces))
	}
	iface := ifaces[3]
	if iface == nil {
		t.Fatal("missing ifindex 3")
	}
	if iface.Phy == nil || iface.Phy.ID != 0 {
		t.Fatalf("interface's Phy not populated: %+v", iface.Phy)
	}
	if iface.State != wire.OperStateUp {
		t.Errorf("State = %v, want Up", iface.State)
	}
}

func TestSetInterfaceChannelResolvesFrequency(t *testing.T) {
	nt := &fakeNT{
		phys:   map[uint32]*wireless.Phy{0: oneBandFixture()},
		ifaces: map[uint32]*wireless.Interface{0: {Index: 3, HasIndex: true, PhyID: 0}},
	}
	rt := &fakeRT{}
	f, err := newWithTransports(nt, rt)
	if err != nil {
		t.Fatalf("newWithTransports: %v", err)
	}

	if err := f.SetInterfaceChannel(3, 6); err != nil {
		t.Fatalf("SetInterfaceChannel: %v", err)
	}
	if nt.lastSetFreq != 2437 {
		t.Errorf("freq = %d, want 2437", nt.lastSetFreq)
	}
	if nt.lastSetWidth != wire.ChanWidth20NoHT {
		t.Errorf("width = %v, want ChanWidth20NoHT", nt.lastSetWidth)
	}
}

func TestSetInterfaceMonitorDoesNotRefresh(t *testing.T) {
	nt := &fakeNT{
		phys:   map[uint32]*wireless.Phy{0: oneBandFixture()},
		ifaces: map[uint32]*wireless.Interface{0: {Index: 3, HasIndex: true, PhyID: 0}},
	}
	rt := &fakeRT{}
	f, err := newWithTransports(nt, rt)
	if err != nil {
		t.Fatalf("newWithTransports: %v", err)
	}

	callsBefore := nt.setTypeCalls
	refreshesBefore := nt.getAllWiphyCalls // every Refresh starts with GetAllWiphys
	physBefore := f.Phys()

	if err := f.SetInterfaceMonitor(3, true); err != nil {
		t.Fatalf("SetInterfaceMonitor: %v", err)
	}
	if nt.setTypeCalls != callsBefore+1 {
		t.Fatalf("SetType called %d times, want %d", nt.setTypeCalls, callsBefore+1)
	}
	if !nt.lastActiveMon {
		t.Error("activeMonitor flag not propagated")
	}
	if nt.lastSetType != wire.IfTypeMonitor {
		t.Errorf("iftype = %v, want Monitor", nt.lastSetType)
	}
	if nt.getAllWiphyCalls != refreshesBefore {
		t.Errorf("GetAllWiphys called %d times after SetInterfaceMonitor, want 0 (no refresh)", nt.getAllWiphyCalls-refreshesBefore)
	}
	// The cached PHYs must be unchanged.
	if cmp.Diff(physBefore, f.Phys()) != "" {
		t.Error("cache map changed after SetInterfaceMonitor, want no refresh")
	}
}

func TestSetInterfaceStationRefreshes(t *testing.T) {
	nt := &fakeNT{
		phys:   map[uint32]*wireless.Phy{0: oneBandFixture()},
		ifaces: map[uint32]*wireless.Interface{0: {Index: 3, HasIndex: true, PhyID: 0}},
	}
	rt := &fakeRT{}
	f, err := newWithTransports(nt, rt)
	if err != nil {
		t.Fatalf("newWithTransports: %v", err)
	}

	if err := f.SetInterfaceStation(3); err != nil {
		t.Fatalf("SetInterfaceStation: %v", err)
	}
	if nt.lastSetType != wire.IfTypeStation {
		t.Errorf("iftype = %v, want Station", nt.lastSetType)
	}
}

func TestGetInterfaceInfoByNameMissing(t *testing.T) {
	nt := &fakeNT{
		phys: map[uint32]*wireless.Phy{0: oneBandFixture()},
		ifaces: map[uint32]*wireless.Interface{
			0: {Index: 3, HasIndex: true, Name: "wlan0", PhyID: 0},
			1: {Index: 4, HasIndex: true, Name: "wlan1", PhyID: 0},
		},
	}
	rt := &fakeRT{}
	f, err := newWithTransports(nt, rt)
	if err != nil {
		t.Fatalf("newWithTransports: %v", err)
	}

	if _, err := f.InterfaceByName("wlan9"); err == nil {
		t.Fatal("expected error for missing interface")
	} else if err.Error() != "domain: Interface Not Found" {
		t.Errorf("err = %q, want %q", err.Error(), "domain: Interface Not Found")
	}

	iface, err := f.InterfaceByName("wlan0")
	if err != nil {
		t.Fatalf("InterfaceByName: %v", err)
	}
	if iface.Index != 3 {
		t.Errorf("Index = %d, want 3", iface.Index)
	}
}

func TestPrettyPrintPhyOmitsEmptyBand(t *testing.T) {
	phy := &wireless.Phy{
		ID:   0,
		Name: "phy0",
		FrequencyList: map[channel.Band]*channel.BandList{
			channel.Band24: {Band: channel.Band24, Channels: []channel.ChannelData{
				{Frequency: 2412, Channel: channel.Channel{Band: channel.Band24, Number: 1}, Status: channel.StatusEnabled},
			}},
			channel.Band5: {Band: channel.Band5, Channels: []channel.ChannelData{
				{Frequency: 5180, Channel: channel.Channel{Band: channel.Band5, Number: 36}, Status: channel.StatusDisabled},
			}},
		},
	}
	out := PrettyPrintPhy(phy)
	if !contains(out, "2.4GHz") {
		t.Error("missing 2.4GHz section")
	}
	if contains(out, "5GHz") {
		t.Error("5GHz section should be omitted (no enabled channels)")
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (func() bool {
		for i := 0; i+len(substr) <= len(s); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	})()
}
