// Package nlwifi is the Facade and Domain Model layer: it reconciles
// independent views from the nl80211 and rtnetlink transports into a
// single cached model of the host's PHYs and wireless interfaces, and
// exposes the high-level operations consumers of this library use.
package nlwifi

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/bryancoxwell/nlwifi/channel"
	"github.com/bryancoxwell/nlwifi/nl80211"
	"github.com/bryancoxwell/nlwifi/rtwifi"
	"github.com/bryancoxwell/nlwifi/wire"
	"github.com/bryancoxwell/nlwifi/wireless"
	"github.com/sirupsen/logrus"
)

// Phy and Interface are re-exported from the wireless package so
// consumers of nlwifi never need to import it directly.
type (
	Phy       = wireless.Phy
	Interface = wireless.Interface
)

const defaultDumpTimeout = 5 * time.Second

// ntTransport is the subset of *nl80211.Conn the facade depends on.
// Seamed as an interface so tests can substitute a fake transport.
type ntTransport interface {
	GetInterfaces() (map[uint32]*wireless.Interface, error)
	GetAllWiphys() (map[uint32]*wireless.Phy, error)
	SetType(ifindex uint32, iftype wire.IfType, activeMonitor bool) error
	SetFrequency(ifindex uint32, freq uint32, width wire.ChanWidth, chanType wire.ChanType) error
	SetPowerSaveOff(ifindex uint32) error
	Close() error
}

// rtTransport is the subset of *rtwifi.Conn the facade depends on.
type rtTransport interface {
	GetInterfaceStatus(ifindex uint32) (wire.OperState, error)
	SetInterfaceUp(ifindex uint32) error
	SetInterfaceDown(ifindex uint32) error
	SetInterfaceMac(ifindex uint32, mac net.HardwareAddr) error
	SetInterfaceMacRandom(ifindex uint32) (net.HardwareAddr, error)
	Close() error
}

// Option configures a Facade at construction time.
type Option func(*Facade)

// WithDumpTimeout sets the dump-cycle ceiling recorded on the Facade
// (default 5 seconds). The value is stored only: the transports do not
// read it, and dump requests are not bounded by a timeout.
func WithDumpTimeout(d time.Duration) Option {
	return func(f *Facade) { f.dumpTimeout = d }
}

// WithSysfsRoot overrides the root used to resolve a PHY's driver,
// useful for pointing tests at a fixture tree instead of /sys.
func WithSysfsRoot(root string) Option {
	return func(f *Facade) { nl80211.SetSysfsRoot(root) }
}

// WithLogger attaches a structured logger; the facade default is a
// fresh logrus logger with output discarded, so consumers never
// see log lines unless they opt in.
func WithLogger(l *logrus.Logger) Option {
	return func(f *Facade) { f.log = l }
}

// Facade owns both transport connections and the reconciled PHY and
// interface caches. It is single-owner: concurrent use of one Facade
// from multiple goroutines without external synchronization is
// undefined, matching the scheduling model in the design notes.
type Facade struct {
	nt ntTransport
	rt rtTransport

	dumpTimeout time.Duration
	log         *logrus.Logger

	mu     sync.RWMutex
	phys   map[uint32]*wireless.Phy
	ifaces map[uint32]*wireless.Interface // keyed by ifindex
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// New connects both sockets, performs the initial PHY dump, interface
// dump, and per-interface state fetch, then returns a ready Facade.
func New(opts ...Option) (*Facade, error) {
	nt, err := nl80211.Dial()
	if err != nil {
		return nil, err
	}
	rt, err := rtwifi.Dial()
	if err != nil {
		nt.Close()
		return nil, err
	}

	f := &Facade{
		nt:          nt,
		rt:          rt,
		dumpTimeout: defaultDumpTimeout,
		log:         discardLogger(),
	}
	for _, o := range opts {
		o(f)
	}
	if err := f.Refresh(); err != nil {
		nt.Close()
		rt.Close()
		return nil, err
	}
	return f, nil
}

// newWithTransports builds a Facade around pre-constructed transports,
// used by tests to inject a fake nt/rt pair.
func newWithTransports(nt ntTransport, rt rtTransport, opts ...Option) (*Facade, error) {
	f := &Facade{
		nt:          nt,
		rt:          rt,
		dumpTimeout: defaultDumpTimeout,
		log:         discardLogger(),
	}
	for _, o := range opts {
		o(f)
	}
	if err := f.Refresh(); err != nil {
		return nil, err
	}
	return f, nil
}

// Close releases both transport sockets.
func (f *Facade) Close() error {
	ntErr := f.nt.Close()
	rtErr := f.rt.Close()
	if ntErr != nil {
		return ntErr
	}
	return rtErr
}

// Refresh re-executes the dump cycle (PHYs, interfaces, per-interface
// RT state) and atomically replaces both caches.
func (f *Facade) Refresh() error {
	phys, err := f.nt.GetAllWiphys()
	if err != nil {
		return err
	}
	ifaces, err := f.nt.GetInterfaces()
	if err != nil {
		return err
	}

	for _, iface := range ifaces {
		iface.Phy = phys[iface.PhyID].Clone()

		if !iface.HasIndex {
			continue
		}
		state, err := f.rt.GetInterfaceStatus(iface.Index)
		if err != nil {
			f.log.WithError(err).WithField("ifindex", iface.Index).Debug("failed to read rtnetlink state")
			continue
		}
		iface.MergeRTState(state)
	}

	byIndex := make(map[uint32]*wireless.Interface, len(ifaces))
	for _, iface := range ifaces {
		if iface.HasIndex {
			byIndex[iface.Index] = iface
		}
	}

	f.mu.Lock()
	f.phys = phys
	f.ifaces = byIndex
	f.mu.Unlock()
	return nil
}

// Phys returns a read-only view of the cached PHYs. Callers must not
// retain the returned map across a subsequent mutating call.
func (f *Facade) Phys() map[uint32]*wireless.Phy {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.phys
}

// Interfaces returns a read-only view of the cached interfaces, keyed
// by ifindex.
func (f *Facade) Interfaces() map[uint32]*wireless.Interface {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ifaces
}

func (f *Facade) interfaceByIndex(ifindex uint32) (*wireless.Interface, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	iface, ok := f.ifaces[ifindex]
	if !ok {
		return nil, wire.NewError(wire.KindDomain, fmt.Sprintf("interface with index %d not found", ifindex), nil)
	}
	return iface, nil
}

// InterfaceByName returns the cached interface with the given name, or
// a domain error if none matches.
func (f *Facade) InterfaceByName(name string) (*wireless.Interface, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, iface := range f.ifaces {
		if iface.Name == name {
			return iface, nil
		}
	}
	return nil, wire.NewError(wire.KindDomain, "Interface Not Found", nil)
}

// SetInterfaceMonitor switches ifindex into monitor mode, optionally
// with the "active monitor" flag. This is the one mutator that does
// not refresh the cache afterward, to avoid observing the interface
// before the kernel has reported its new mode (preserved per the
// design notes' documented asymmetry).
func (f *Facade) SetInterfaceMonitor(ifindex uint32, active bool) error {
	return f.nt.SetType(ifindex, wire.IfTypeMonitor, active)
}

// SetInterfaceStation switches ifindex into station mode and refreshes
// the cache.
func (f *Facade) SetInterfaceStation(ifindex uint32) error {
	if err := f.nt.SetType(ifindex, wire.IfTypeStation, false); err != nil {
		return err
	}
	return f.Refresh()
}

// SetInterfaceChannel resolves chanNumber against the 2.4 GHz table
// first, then 5 GHz, 6 GHz and 60 GHz (channel 14 resolves to 2.4 GHz
// per the disambiguation rule in the design notes), tunes ifindex to the
// resulting frequency at 20MHz/no-HT width, and refreshes the cache.
func (f *Facade) SetInterfaceChannel(ifindex uint32, chanNumber uint32) error {
	band := channel.BandUnknown
	switch {
	case channel.ValidChannel(channel.Band24, chanNumber):
		band = channel.Band24
	case channel.ValidChannel(channel.Band5, chanNumber):
		band = channel.Band5
	case channel.ValidChannel(channel.Band6, chanNumber):
		band = channel.Band6
	case channel.ValidChannel(channel.Band60, chanNumber):
		band = channel.Band60
	default:
		return wire.NewError(wire.KindDomain, fmt.Sprintf("no band accepts channel %d", chanNumber), nil)
	}

	freq := channel.ChannelToFreq(band, chanNumber)
	if freq == 0 {
		return wire.NewError(wire.KindDomain, fmt.Sprintf("channel %d in band %v has no frequency", chanNumber, band), nil)
	}
	if err := f.nt.SetFrequency(ifindex, freq, wire.ChanWidth20NoHT, wire.ChanNoHT); err != nil {
		return err
	}
	return f.Refresh()
}

// SetInterfaceUp brings ifindex administratively up and refreshes.
func (f *Facade) SetInterfaceUp(ifindex uint32) error {
	if err := f.rt.SetInterfaceUp(ifindex); err != nil {
		return err
	}
	return f.Refresh()
}

// SetInterfaceDown brings ifindex administratively down and refreshes.
func (f *Facade) SetInterfaceDown(ifindex uint32) error {
	if err := f.rt.SetInterfaceDown(ifindex); err != nil {
		return err
	}
	return f.Refresh()
}

// SetInterfaceMac assigns mac to ifindex and refreshes. The kernel
// requires the interface be administratively down first; this call
// does not toggle that state on the caller's behalf (open question
// in the design notes, resolved: preserve as a caller contract).
func (f *Facade) SetInterfaceMac(ifindex uint32, mac net.HardwareAddr) error {
	if err := f.rt.SetInterfaceMac(ifindex, mac); err != nil {
		return err
	}
	return f.Refresh()
}

// SetInterfaceMacRandom generates and assigns a locally-administered
// random MAC to ifindex, then refreshes.
func (f *Facade) SetInterfaceMacRandom(ifindex uint32) (net.HardwareAddr, error) {
	mac, err := f.rt.SetInterfaceMacRandom(ifindex)
	if err != nil {
		return nil, err
	}
	if err := f.Refresh(); err != nil {
		return nil, err
	}
	return mac, nil
}

// SetPowerSaveOff disables power-save on ifindex's PHY and refreshes.
func (f *Facade) SetPowerSaveOff(ifindex uint32) error {
	if err := f.nt.SetPowerSaveOff(ifindex); err != nil {
		return err
	}
	return f.Refresh()
}
