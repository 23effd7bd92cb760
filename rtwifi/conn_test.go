package rtwifi

import (
	"testing"

	"github.com/bryancoxwell/nlwifi/wire"
	"github.com/jsimonetti/rtnetlink"
)

func TestOperStateFromWire(t *testing.T) {
	cases := []struct {
		in   rtnetlink.OperationalState
		want wire.OperState
	}{
		{rtnetlink.OperUp, wire.OperStateUp},
		{rtnetlink.OperDown, wire.OperStateDown},
		{rtnetlink.OperDormant, wire.OperStateDormant},
		{rtnetlink.OperNotPresent, wire.OperStateNotPresent},
		{rtnetlink.OperLowerLayerDown, wire.OperStateLowerLayerDown},
		{rtnetlink.OperTesting, wire.OperStateTesting},
	}
	for _, c := range cases {
		if got := operStateFromWire(c.in); got != c.want {
			t.Errorf("operStateFromWire(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRandomLocalMacIsLocallyAdministered(t *testing.T) {
	for i := 0; i < 20; i++ {
		mac, err := RandomLocalMac()
		if err != nil {
			t.Fatalf("RandomLocalMac: %v", err)
		}
		if len(mac) != 6 {
			t.Fatalf("got %d bytes, want 6", len(mac))
		}
		if mac[0]&0x02 == 0 {
			t.Errorf("locally-administered bit not set: %v", mac)
		}
		if mac[0]&0x01 != 0 {
			t.Errorf("multicast bit set, want cleared: %v", mac)
		}
	}
}
