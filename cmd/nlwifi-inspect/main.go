// Command nlwifi-inspect is a small demonstration CLI exercising the
// nlwifi facade end to end: it lists every PHY and interface the host
// reports and pretty-prints them.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bryancoxwell/nlwifi"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	dumpTimeout time.Duration
	sysfsRoot   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nlwifi-inspect",
		Short: "Inspect wireless PHYs and interfaces via nl80211/rtnetlink",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().DurationVar(&dumpTimeout, "dump-timeout", 5*time.Second, "dump-cycle ceiling recorded on the facade (not applied to dump requests)")
	root.PersistentFlags().StringVar(&sysfsRoot, "sysfs-root", "/sys", "root used to resolve PHY driver names")

	root.AddCommand(newPhysCmd(), newInterfacesCmd())
	return root
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func newFacade() (*nlwifi.Facade, error) {
	return nlwifi.New(
		nlwifi.WithDumpTimeout(dumpTimeout),
		nlwifi.WithSysfsRoot(sysfsRoot),
		nlwifi.WithLogger(newLogger()),
	)
}

func newPhysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phys",
		Short: "List physical radios",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFacade()
			if err != nil {
				return err
			}
			defer f.Close()
			for _, phy := range f.Phys() {
				fmt.Println(nlwifi.PrettyPrintPhy(phy))
			}
			return nil
		},
	}
}

func newInterfacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interfaces",
		Short: "List wireless interfaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFacade()
			if err != nil {
				return err
			}
			defer f.Close()
			for _, iface := range f.Interfaces() {
				fmt.Println(nlwifi.PrettyPrintInterface(iface))
			}
			return nil
		},
	}
}
