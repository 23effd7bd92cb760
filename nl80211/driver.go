package nl80211

import (
	"os"
	"path/filepath"

	"github.com/bryancoxwell/nlwifi/wire"
)

// sysfsRoot is overridable by the facade's WithSysfsRoot option so
// tests can point it at a fixture tree instead of the real /sys.
var sysfsRoot = "/sys"

// SetSysfsRoot overrides the root used to resolve a PHY's driver. The
// facade calls this once at construction time; it is not meant to be
// changed concurrently with in-flight dumps.
func SetSysfsRoot(root string) { sysfsRoot = root }

// driverFor returns the driver name for phyName, by reading the
// /sys/class/ieee80211/<phy>/device/driver symlink (the same path
// `ethtool -i`-style tooling uses), or "" if it can't be resolved. A
// missing link (common in network namespaces or on virtual PHYs) is
// not an error.
func driverFor(phyName string) (string, error) {
	link := filepath.Join(sysfsRoot, "class", "ieee80211", phyName, "device", "driver")
	target, err := os.Readlink(link)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", wire.NewError(wire.KindIO, "failed to read driver symlink", err)
	}
	return filepath.Base(target), nil
}
