package nlwifi

import (
	"net"

	"github.com/bryancoxwell/nlwifi/wireless"
)

// The functions below mirror the Facade's methods but each dials a
// fresh, short-lived transport pair and closes it before returning,
// per the concurrency model's "one-shot" calling convention: distinct
// calls are independent and thread-confined, unlike a shared Facade.

// GetInterfaceInfoByIndex opens a one-shot Facade, refreshes, and
// returns the interface matching ifindex.
func GetInterfaceInfoByIndex(ifindex uint32, opts ...Option) (*wireless.Interface, error) {
	f, err := New(opts...)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.interfaceByIndex(ifindex)
}

// GetInterfaceInfoByName opens a one-shot Facade, refreshes, and
// returns the interface matching name.
func GetInterfaceInfoByName(name string, opts ...Option) (*wireless.Interface, error) {
	f, err := New(opts...)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.InterfaceByName(name)
}

// SetInterfaceMonitor is the one-shot equivalent of
// Facade.SetInterfaceMonitor.
func SetInterfaceMonitor(ifindex uint32, active bool, opts ...Option) error {
	f, err := New(opts...)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SetInterfaceMonitor(ifindex, active)
}

// SetInterfaceStation is the one-shot equivalent of
// Facade.SetInterfaceStation.
func SetInterfaceStation(ifindex uint32, opts ...Option) error {
	f, err := New(opts...)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SetInterfaceStation(ifindex)
}

// SetInterfaceChannel is the one-shot equivalent of
// Facade.SetInterfaceChannel.
func SetInterfaceChannel(ifindex uint32, chanNumber uint32, opts ...Option) error {
	f, err := New(opts...)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SetInterfaceChannel(ifindex, chanNumber)
}

// SetInterfaceUp is the one-shot equivalent of Facade.SetInterfaceUp.
func SetInterfaceUp(ifindex uint32, opts ...Option) error {
	f, err := New(opts...)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SetInterfaceUp(ifindex)
}

// SetInterfaceDown is the one-shot equivalent of Facade.SetInterfaceDown.
func SetInterfaceDown(ifindex uint32, opts ...Option) error {
	f, err := New(opts...)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SetInterfaceDown(ifindex)
}

// SetInterfaceMac is the one-shot equivalent of Facade.SetInterfaceMac.
func SetInterfaceMac(ifindex uint32, mac net.HardwareAddr, opts ...Option) error {
	f, err := New(opts...)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SetInterfaceMac(ifindex, mac)
}

// SetInterfaceMacRandom is the one-shot equivalent of
// Facade.SetInterfaceMacRandom.
func SetInterfaceMacRandom(ifindex uint32, opts ...Option) (net.HardwareAddr, error) {
	f, err := New(opts...)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.SetInterfaceMacRandom(ifindex)
}
