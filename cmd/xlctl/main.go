package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Stealthiumio/nova/pkg/config"
	"github.com/Stealthiumio/nova/pkg/log"
	"github.com/Stealthiumio/nova/pkg/xen"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "xlctl",
	Short: "Xen domain control utility",
	Long:  `Manage Xen domains through the xl command-line tool`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all domains",
	RunE:  runList,
}

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show state and resources of a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var spawnPaused bool

var spawnCmd = &cobra.Command{
	Use:   "spawn <spec.yaml>",
	Short: "Create a domain from an instance spec file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpawn,
}

var keepDisks bool

var destroyCmd = &cobra.Command{
	Use:   "destroy <name>",
	Short: "Destroy a domain (best-effort, idempotent)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDestroy,
}

var hardReboot bool

var rebootCmd = &cobra.Command{
	Use:   "reboot <name>",
	Short: "Reboot a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runReboot,
}

var pauseCmd = &cobra.Command{
	Use:   "pause <name>",
	Short: "Pause a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runPause,
}

var resumeCmd = &cobra.Command{
	Use:   "resume <name>",
	Short: "Resume a paused domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runResume,
}

var attachCmd = &cobra.Command{
	Use:   "attach <name> <mac> <bridge>",
	Short: "Hot-plug a network interface into a domain",
	Args:  cobra.ExactArgs(3),
	RunE:  runAttach,
}

var detachCmd = &cobra.Command{
	Use:   "detach <name> <device-id>",
	Short: "Hot-unplug a network interface from a domain",
	Args:  cobra.ExactArgs(2),
	RunE:  runDetach,
}

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Show hypervisor host resources",
	RunE:  runResources,
}

var showConfigCmd = &cobra.Command{
	Use:   "config <name>",
	Short: "Show the persisted config artifact of a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to driver configuration file")

	spawnCmd.Flags().BoolVar(&spawnPaused, "paused", false, "Create the domain paused instead of running")
	destroyCmd.Flags().BoolVar(&keepDisks, "keep-disks", false, "Keep the instance directory in place")
	rebootCmd.Flags().BoolVar(&hardReboot, "hard", false, "Force a reset instead of a graceful reboot")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(spawnCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(rebootCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(detachCmd)
	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(showConfigCmd)
}

// newDriver loads the driver configuration and constructs the driver.
// Without --config the built-in defaults are used.
func newDriver() (*xen.Driver, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	log.SetLevel(log.ParseLevel(cfg.LogLevel))

	drv, err := xen.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create xl driver: %w", err)
	}
	return drv, nil
}

func runList(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	names, err := drv.ListInstances()
	if err != nil {
		return fmt.Errorf("failed to list domains: %w", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "State", "Mem (MB)", "Max Mem (MB)", "vCPUs"})

	for _, name := range names {
		info, err := drv.GetInfo(name)
		if err != nil {
			table.Append([]string{name, "Not Found", "-", "-", "-"})
			continue
		}
		table.Append([]string{
			name,
			info.State.String(),
			strconv.FormatUint(info.MemKB/1024, 10),
			strconv.FormatUint(info.MaxMemKB/1024, 10),
			strconv.FormatUint(uint64(info.VCPUs), 10),
		})
	}

	table.Render()
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	info, err := drv.GetInfo(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Name: %s\n", args[0])
	fmt.Printf("State: %s\n", info.State)
	fmt.Printf("Memory: %d MB\n", info.MemKB/1024)
	fmt.Printf("Max memory: %d MB\n", info.MaxMemKB/1024)
	fmt.Printf("vCPUs: %d\n", info.VCPUs)
	return nil
}

func runSpawn(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	spec, err := xen.LoadInstanceSpec(args[0])
	if err != nil {
		return err
	}

	if err := drv.Spawn(*spec, !spawnPaused); err != nil {
		return fmt.Errorf("failed to spawn %s: %w", spec.Name, err)
	}

	fmt.Printf("✓ Spawned domain '%s'\n", spec.Name)
	return nil
}

func runDestroy(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	drv.Destroy(args[0], !keepDisks)

	fmt.Printf("✓ Destroyed domain '%s'\n", args[0])
	return nil
}

func runReboot(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	mode := xen.RebootSoft
	if hardReboot {
		mode = xen.RebootHard
	}

	if err := drv.Reboot(args[0], mode); err != nil {
		return err
	}

	fmt.Printf("✓ Rebooting domain '%s'...\n", args[0])
	return nil
}

func runPause(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	if err := drv.Pause(args[0]); err != nil {
		return err
	}

	fmt.Printf("✓ Paused domain '%s'\n", args[0])
	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	if err := drv.Unpause(args[0]); err != nil {
		return err
	}

	fmt.Printf("✓ Resumed domain '%s'\n", args[0])
	return nil
}

func runAttach(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	iface := xen.InterfaceSpec{MAC: args[1], Bridge: args[2]}
	if err := drv.AttachInterface(args[0], iface); err != nil {
		return err
	}

	fmt.Printf("✓ Attached interface %s to '%s'\n", args[1], args[0])
	return nil
}

func runDetach(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	if err := drv.DetachInterface(args[0], args[1]); err != nil {
		return err
	}

	fmt.Printf("✓ Detached interface %s from '%s'\n", args[1], args[0])
	return nil
}

func runResources(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	res, err := drv.GetAvailableResource()
	if err != nil {
		return fmt.Errorf("failed to query host resources: %w", err)
	}

	fmt.Printf("Memory: %d MB total, %d MB used\n", res.MemoryMB, res.MemoryMBUsed)
	fmt.Printf("Logical CPUs: %d\n", res.VCPUs)

	if ip, err := xen.HostIP(); err == nil {
		fmt.Printf("Host IP: %s\n", ip)
	}
	return nil
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	drv, err := newDriver()
	if err != nil {
		return err
	}

	fields, err := drv.ReadConfig(args[0])
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("%s = %s\n", key, fields[key])
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
