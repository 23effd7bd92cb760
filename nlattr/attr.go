// Package nlattr implements the nl80211-specific attribute walk used
// by this module's transports. It is a thin, typed layer over
// github.com/mdlayher/netlink's attribute (de)coder: that package owns
// TLV framing, length alignment, and the raw byte-level encode/decode
// primitives (out of scope per this module's design, §1/§6); nlattr
// owns recursing into nested nl80211 attribute trees and tolerating
// unknown or malformed sub-attributes along the way.
package nlattr

import (
	"net"

	"github.com/bryancoxwell/nlwifi/wire"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
)

// Attr is one decoded netlink attribute: a type id and its raw payload.
type Attr struct {
	Type uint16
	Data []byte
}

// Walk decodes b into a flat sequence of top-level attributes. Per the
// nl80211 attribute tree contract, unrecognized type ids are not
// filtered here — the caller's switch on Type is expected to skip them.
func Walk(b []byte) ([]Attr, error) {
	raw, err := netlink.UnmarshalAttributes(b)
	if err != nil {
		return nil, wire.NewError(wire.KindDecode, "failed to unmarshal attributes", err)
	}
	attrs := make([]Attr, len(raw))
	for i, a := range raw {
		attrs[i] = Attr{Type: a.Type, Data: a.Data}
	}
	return attrs, nil
}

// Nested re-walks this attribute's payload as a nested attribute tree,
// recursing via Walk.
func (a Attr) Nested() ([]Attr, error) {
	return Walk(a.Data)
}

// AsUint32 decodes the attribute payload as a host-byte-order u32.
func (a Attr) AsUint32() uint32 { return nlenc.Uint32(a.Data) }

// AsUint16 decodes the attribute payload as a host-byte-order u16.
func (a Attr) AsUint16() uint16 { return nlenc.Uint16(a.Data) }

// AsUint8 decodes the attribute payload as a single byte.
func (a Attr) AsUint8() uint8 {
	if len(a.Data) == 0 {
		return 0
	}
	return a.Data[0]
}

// AsUint64 decodes the attribute payload as a host-byte-order u64.
func (a Attr) AsUint64() uint64 { return nlenc.Uint64(a.Data) }

// AsBytes returns the raw payload.
func (a Attr) AsBytes() []byte { return a.Data }

// AsHardwareAddr interprets the payload as a MAC address.
func (a Attr) AsHardwareAddr() net.HardwareAddr { return net.HardwareAddr(a.Data) }

// AsNULString decodes the payload as a NUL-terminated string.
func (a Attr) AsNULString() string { return nlenc.String(a.Data) }

// Find returns the first attribute with the given type, and whether it
// was found.
func Find(attrs []Attr, typ uint16) (Attr, bool) {
	for _, a := range attrs {
		if a.Type == typ {
			return a, true
		}
	}
	return Attr{}, false
}

// DecodeIfTypes reads a flat byte buffer of repeated 4-byte nl80211
// iftype records (as found nested under AttrSupportedIftypes) and
// returns the IfType decoded from the third byte of each record.
// Unknown iftype codes, and truncated trailing bytes that don't form a
// full record, are dropped silently rather than causing an error.
func DecodeIfTypes(b []byte) []wire.IfType {
	var out []wire.IfType
	for len(b) >= 4 {
		if t, ok := knownIfType(b[2]); ok {
			out = append(out, t)
		}
		b = b[4:]
	}
	return out
}

func knownIfType(code byte) (wire.IfType, bool) {
	if wire.IfType(code) > wire.IfTypeNAN {
		return 0, false
	}
	return wire.IfType(code), true
}
