// Package wire holds the small tagged-integer enumerations that nl80211
// and rtnetlink speak on the wire: interface operating modes, channel
// widths and types, monitor flags, link operational state, and the
// error taxonomy shared across this module's transports.
//
// Every conversion here is total: unknown wire codes degrade to an
// explicit "unknown" value rather than panicking, mirroring the
// InterfaceType.String fallback in the teacher package this module is
// descended from.
package wire

import "fmt"

// IfType is the operating mode of a wireless interface. Values match
// enum nl80211_iftype from the kernel's <linux/nl80211.h>.
type IfType uint32

const (
	IfTypeUnspecified IfType = iota
	IfTypeAdHoc
	IfTypeStation
	IfTypeAP
	IfTypeAPVLAN
	IfTypeWDS
	IfTypeMonitor
	IfTypeMeshPoint
	IfTypeP2PClient
	IfTypeP2PGroupOwner
	IfTypeP2PDevice
	IfTypeOCB
	IfTypeNAN
)

// IfTypeFromByte maps a raw nl80211 iftype byte to an IfType, defaulting
// to IfTypeUnspecified for unrecognized codes.
func IfTypeFromByte(b byte) IfType {
	if IfType(b) > IfTypeNAN {
		return IfTypeUnspecified
	}
	return IfType(b)
}

func (t IfType) String() string {
	switch t {
	case IfTypeUnspecified:
		return "unspecified"
	case IfTypeAdHoc:
		return "ad-hoc"
	case IfTypeStation:
		return "station"
	case IfTypeAP:
		return "access point"
	case IfTypeAPVLAN:
		return "access point VLAN"
	case IfTypeWDS:
		return "wireless distribution"
	case IfTypeMonitor:
		return "monitor"
	case IfTypeMeshPoint:
		return "mesh point"
	case IfTypeP2PClient:
		return "P2P client"
	case IfTypeP2PGroupOwner:
		return "P2P group owner"
	case IfTypeP2PDevice:
		return "P2P device"
	case IfTypeOCB:
		return "outside context of BSS"
	case IfTypeNAN:
		return "near-me area network"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}
}

// ChanWidth is a channel bandwidth, matching enum nl80211_chan_width.
type ChanWidth uint32

const (
	ChanWidth20NoHT ChanWidth = iota
	ChanWidth20
	ChanWidth40
	ChanWidth80
	ChanWidth80P80
	ChanWidth160
	ChanWidth5
	ChanWidth10
	ChanWidth1
	ChanWidth2
	ChanWidth4
	ChanWidth8
	ChanWidth16
)

func (w ChanWidth) String() string {
	switch w {
	case ChanWidth20NoHT:
		return "20MHz (no HT)"
	case ChanWidth20:
		return "20MHz"
	case ChanWidth40:
		return "40MHz"
	case ChanWidth80:
		return "80MHz"
	case ChanWidth80P80:
		return "80+80MHz"
	case ChanWidth160:
		return "160MHz"
	case ChanWidth5:
		return "5MHz"
	case ChanWidth10:
		return "10MHz"
	case ChanWidth1:
		return "1MHz"
	case ChanWidth2:
		return "2MHz"
	case ChanWidth4:
		return "4MHz"
	case ChanWidth8:
		return "8MHz"
	case ChanWidth16:
		return "16MHz"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(w))
	}
}

// ChanType is a legacy HT channel type, matching enum nl80211_channel_type.
type ChanType uint32

const (
	ChanNoHT ChanType = iota
	ChanHT20
	ChanHT40Minus
	ChanHT40Plus
)

// MntrFlag is a monitor-mode flag, matching enum nl80211_mntr_flags.
type MntrFlag uint32

const (
	MntrFlagFCSFail MntrFlag = iota + 1
	MntrFlagPLCPFail
	MntrFlagControl
	MntrFlagOtherBSS
	MntrFlagCookFrames
	MntrFlagActive
)

// OperState is the kernel-reported link operational state, matching
// RFC 2863's IF_OPER_* values as exposed by rtnetlink.
type OperState uint8

const (
	OperStateUnknown OperState = iota
	OperStateNotPresent
	OperStateDown
	OperStateLowerLayerDown
	OperStateTesting
	OperStateDormant
	OperStateUp
)

func (s OperState) String() string {
	switch s {
	case OperStateNotPresent:
		return "not present"
	case OperStateDown:
		return "down"
	case OperStateLowerLayerDown:
		return "lower layer down"
	case OperStateTesting:
		return "testing"
	case OperStateDormant:
		return "dormant"
	case OperStateUp:
		return "up"
	default:
		return "unknown"
	}
}

// ErrorKind classifies the failure modes this module's components can
// surface to a caller.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindProtocol
	KindDecode
	KindDomain
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindDecode:
		return "decode"
	case KindDomain:
		return "domain"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the single error type propagated by this module's public
// API. It carries a Kind (§7 of the design notes) plus a human-readable
// message, and optionally wraps an underlying error.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError constructs an *Error of the given kind.
func NewError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
