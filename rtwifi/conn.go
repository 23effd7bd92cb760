// Package rtwifi implements the rtnetlink transport ("RT" in the
// design notes): link operational state, up/down toggling, and MAC
// address assignment for a given interface index.
//
// It is a thin wrapper over github.com/jsimonetti/rtnetlink, the same
// way nl80211.Conn wraps github.com/mdlayher/genetlink — this package
// owns nothing about wire framing, only the handful of link-message
// shapes this module's mutators need.
package rtwifi

import (
	"crypto/rand"
	"fmt"
	"net"

	"github.com/bryancoxwell/nlwifi/wire"
	"github.com/jsimonetti/rtnetlink"
	"golang.org/x/sys/unix"
)

// Conn is a connection to the rtnetlink family.
type Conn struct {
	c *rtnetlink.Conn
}

// Dial opens an rtnetlink socket.
func Dial() (*Conn, error) {
	c, err := rtnetlink.Dial(nil)
	if err != nil {
		return nil, wire.NewError(wire.KindTransport, "failed to dial rtnetlink", err)
	}
	return &Conn{c: c}, nil
}

// Close closes the underlying rtnetlink socket.
func (c *Conn) Close() error { return c.c.Close() }

// operStateFromWire maps the kernel's IF_OPER_* byte (as found in
// rtnetlink.LinkAttributes.OperationalState) to this module's OperState.
func operStateFromWire(v rtnetlink.OperationalState) wire.OperState {
	switch v {
	case rtnetlink.OperNotPresent:
		return wire.OperStateNotPresent
	case rtnetlink.OperDown:
		return wire.OperStateDown
	case rtnetlink.OperLowerLayerDown:
		return wire.OperStateLowerLayerDown
	case rtnetlink.OperTesting:
		return wire.OperStateTesting
	case rtnetlink.OperDormant:
		return wire.OperStateDormant
	case rtnetlink.OperUp:
		return wire.OperStateUp
	default:
		return wire.OperStateUnknown
	}
}

// GetInterfaceStatus reads the link operational state for ifindex.
func (c *Conn) GetInterfaceStatus(ifindex uint32) (wire.OperState, error) {
	msg, err := c.c.Link.Get(ifindex)
	if err != nil {
		return wire.OperStateUnknown, wire.NewError(wire.KindProtocol, fmt.Sprintf("failed to get link %d", ifindex), err)
	}
	return operStateFromWire(msg.Attributes.OperationalState), nil
}

// setFlags issues a NewLink request toggling IFF_UP while leaving
// every other administered attribute untouched.
func (c *Conn) setFlags(ifindex uint32, up bool) error {
	var flags, change uint32
	change = unix.IFF_UP
	if up {
		flags = unix.IFF_UP
	}
	err := c.c.Link.Set(&rtnetlink.LinkMessage{
		Family: unix.AF_UNSPEC,
		Index:  ifindex,
		Flags:  flags,
		Change: change,
	})
	if err != nil {
		return wire.NewError(wire.KindProtocol, fmt.Sprintf("failed to set link %d flags", ifindex), err)
	}
	return nil
}

// SetInterfaceUp brings ifindex administratively up.
func (c *Conn) SetInterfaceUp(ifindex uint32) error { return c.setFlags(ifindex, true) }

// SetInterfaceDown brings ifindex administratively down.
func (c *Conn) SetInterfaceDown(ifindex uint32) error { return c.setFlags(ifindex, false) }

// SetInterfaceMac assigns mac to ifindex. Per the documented contract,
// the kernel requires the interface be administratively down first;
// this call does not toggle that state on the caller's behalf.
func (c *Conn) SetInterfaceMac(ifindex uint32, mac net.HardwareAddr) error {
	err := c.c.Link.Set(&rtnetlink.LinkMessage{
		Family: unix.AF_UNSPEC,
		Index:  ifindex,
		Attributes: &rtnetlink.LinkAttributes{
			Address: mac,
		},
	})
	if err != nil {
		return wire.NewError(wire.KindProtocol, fmt.Sprintf("failed to set link %d mac", ifindex), err)
	}
	return nil
}

// RandomLocalMac generates a 6-byte, CSPRNG-derived hardware address
// with the locally-administered bit set and the multicast bit cleared
// (first octet: bit 1 set, bit 0 cleared).
func RandomLocalMac() (net.HardwareAddr, error) {
	mac := make(net.HardwareAddr, 6)
	if _, err := rand.Read(mac); err != nil {
		return nil, wire.NewError(wire.KindIO, "failed to read random bytes", err)
	}
	mac[0] = (mac[0] | 0x02) &^ 0x01
	return mac, nil
}

// SetInterfaceMacRandom generates a random locally-administered MAC
// and applies it to ifindex via SetInterfaceMac.
func (c *Conn) SetInterfaceMacRandom(ifindex uint32) (net.HardwareAddr, error) {
	mac, err := RandomLocalMac()
	if err != nil {
		return nil, err
	}
	if err := c.SetInterfaceMac(ifindex, mac); err != nil {
		return nil, err
	}
	return mac, nil
}
