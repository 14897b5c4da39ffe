package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/env"
	"github.com/iburimskiy/dotfield/internal/game"
	"github.com/iburimskiy/dotfield/internal/hum"
	"github.com/iburimskiy/dotfield/internal/term"
)

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"debug":          "debug",
	"hum":            "hum",
	"hum-file":       "hum_file",
	"reduced-motion": "reduced_motion",
	"touch":          "touch",
	"theme":          "theme",
	"width":          "width",
	"height":         "height",
	"spacing":        "spacing",
	"radius":         "radius",
}

type app struct {
	v       *viper.Viper
	cfgPath string
	cfg     config.Config
	logFile *os.File
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "dotfield",
		Short: "An interactive dot field that follows the pointer",
		Long: "dotfield draws a lattice of dim dots that brighten and drift away from the pointer.\n" +
			"It opens a window by default; `dotfield term` runs it in the terminal.",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRun: a.closeLog,
		RunE: func(cmd *cobra.Command, args []string) error {
			player := a.startHum()
			return game.Run(a.cfg, a.sample(), player)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (yaml, toml or json)")
	pf.Bool("debug", false, "write logs to logs/dotfield.log and show the debug overlay")
	pf.Bool("hum", false, "play a quiet tone that swells with pointer activity")
	pf.String("hum-file", "", "wav, mp3 or flac file looped under the hum")
	pf.String("reduced-motion", "auto", "auto, on or off")
	pf.String("touch", "auto", "auto, on (no pointer tracking) or off")
	pf.String("theme", "auto", "auto, dark or light")
	pf.Int("width", config.WindowWidth, "window width")
	pf.Int("height", config.WindowHeight, "window height")
	pf.Float64("spacing", config.Spacing, "distance between dots")
	pf.Float64("radius", config.InfluenceRadius, "pointer influence radius")
	for name, key := range flagKeys {
		if err := a.v.BindPFlag(key, pf.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	root.AddCommand(&cobra.Command{
		Use:   "term",
		Short: "Run the dot field in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			player := a.startHum()
			return term.Run(cmd.Context(), a.cfg, a.sample(), player)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfig(cmd.OutOrStdout(), a.v)
		},
	})

	return root
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logFile = setupLogging(cfg.Debug)
	log.Printf("dotfield: config %+v", cfg)
	return nil
}

func (a *app) closeLog(cmd *cobra.Command, args []string) {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

func (a *app) sample() env.Snapshot {
	return env.System().Sample(a.cfg)
}

// startHum returns nil when the hum is off or audio is unavailable; the field
// runs silently in both cases.
func (a *app) startHum() *hum.Player {
	if !a.cfg.Hum {
		return nil
	}
	player, err := hum.Start(config.HumFrequency, config.HumMaxGain, a.cfg.HumFile)
	if err != nil {
		log.Printf("dotfield: hum disabled: %v", err)
		return nil
	}
	return player
}

func printConfig(w io.Writer, v *viper.Viper) error {
	settings := v.AllSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s = %v\n", k, settings[k]); err != nil {
			return err
		}
	}
	if f := v.ConfigFileUsed(); f != "" {
		if _, err := fmt.Fprintf(w, "# from %s\n", f); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
