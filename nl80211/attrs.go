package nl80211

import (
	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// The factory functions below build attribute-encoder closures that
// take only a value and a *netlink.AttributeEncoder, the same
// factory-of-factories idiom the teacher package uses in its
// attributes.go to keep the command-builder functions in conn.go
// readable. Only the encoders this module's mutators actually need are
// instantiated below; the teacher's WPA/cipher-suite/AKM/PMK variants
// are association-flow attributes outside this module's scope (see the
// design notes for the full disposition).
func uint32AttrEncoderFactory(attributeType uint16) func(uint32, *netlink.AttributeEncoder) {
	return func(v uint32, ae *netlink.AttributeEncoder) {
		ae.Uint32(attributeType, v)
	}
}

func flagAttrEncoderFactory(attributeType uint16) func(*netlink.AttributeEncoder) {
	return func(ae *netlink.AttributeEncoder) {
		ae.Flag(attributeType, true)
	}
}

var (
	appendIfindexAttribute         = uint32AttrEncoderFactory(unix.NL80211_ATTR_IFINDEX)
	appendIftypeAttribute          = uint32AttrEncoderFactory(unix.NL80211_ATTR_IFTYPE)
	appendWiphyAttribute           = uint32AttrEncoderFactory(unix.NL80211_ATTR_WIPHY)
	appendWiphyFreqAttribute       = uint32AttrEncoderFactory(unix.NL80211_ATTR_WIPHY_FREQ)
	appendChannelWidthAttribute    = uint32AttrEncoderFactory(unix.NL80211_ATTR_CHANNEL_WIDTH)
	appendWiphyChannelTypeAttr     = uint32AttrEncoderFactory(unix.NL80211_ATTR_WIPHY_CHANNEL_TYPE)
	appendCenterFreq1Attribute     = uint32AttrEncoderFactory(unix.NL80211_ATTR_CENTER_FREQ1)
	appendPsStateAttribute         = uint32AttrEncoderFactory(unix.NL80211_ATTR_PS_STATE)
	appendMntrFlagsActiveAttribute = uint32AttrEncoderFactory(unix.NL80211_MNTR_FLAG_ACTIVE)
	appendSplitWiphyDumpAttribute  = flagAttrEncoderFactory(unix.NL80211_ATTR_SPLIT_WIPHY_DUMP)
)

func encodeAttrs(build func(*netlink.AttributeEncoder)) ([]byte, error) {
	ae := netlink.NewAttributeEncoder()
	build(ae)
	return ae.Encode()
}
