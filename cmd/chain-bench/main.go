package main

import (
	"context"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ztrue/tracerr"
)

var rootCmd = &cobra.Command{
	Use:   "chain-bench",
	Short: "Compare chain lookups in a resizing vec table against a hash index",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), benchConfigFromViper(), cmd.OutOrStdout())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringP("file", "f", "nl.csv", "locate CSV to load")
	flags.Int("channels", 3, "number of channels to sweep")
	flags.Int("locates", 3, "number of locates to sweep")
	flags.Duration("duration", 2*time.Second, "time spent measuring each structure")
	flags.BoolP("verbose", "v", false, "show verbose")

	viper.SetEnvPrefix("CHAINBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

type benchConfig struct {
	File     string
	Channels int
	Locates  int
	Duration time.Duration
}

func benchConfigFromViper() benchConfig {
	return benchConfig{
		File:     viper.GetString("file"),
		Channels: viper.GetInt("channels"),
		Locates:  viper.GetInt("locates"),
		Duration: viper.GetDuration("duration"),
	}
}

func run(ctx context.Context, conf benchConfig, out io.Writer) error {
	if conf.Channels <= 0 || conf.Locates <= 0 {
		return tracerr.Errorf("channels and locates must be positive, got %d and %d", conf.Channels, conf.Locates)
	}

	report := &Report{
		File:     conf.File,
		Channels: conf.Channels,
		Locates:  conf.Locates,
		Duration: conf.Duration,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	chains, err := LoadChains(conf.File)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file": conf.File,
		"rows": len(chains),
	}).Info("Chains loaded")

	table, hash, err := BuildIndexes(chains)
	if err != nil {
		return err
	}
	report.Rows = len(chains)
	report.TableChannels = table.Channels()
	report.Filled, report.Reserved = table.Occupancy()
	log.WithFields(log.Fields{
		"channels": report.TableChannels,
		"filled":   report.Filled,
		"reserved": report.Reserved,
	}).Debug("Table built")

	lookups := []struct {
		name   string
		lookup LookupFunc
	}{
		{"ResizingVec", func(channel, locate int) bool {
			_, ok := table.Get(channel, locate)
			return ok
		}},
		{"IntMap", func(channel, locate int) bool {
			_, ok := hash.Get(channel, locate)
			return ok
		}},
	}

	for _, l := range lookups {
		log.Infof("Measuring %s for %s", l.name, conf.Duration)
		measureCtx, cancel := context.WithTimeout(ctx, conf.Duration)
		m := Measure(measureCtx, l.name, l.lookup, conf.Channels, conf.Locates)
		cancel()

		log.WithFields(log.Fields{
			"lookups": m.Lookups,
			"hits":    m.Hits,
		}).Debugf("%s done", l.name)
		report.Results = append(report.Results, m)
	}

	runtime.ReadMemStats(&report.MemStatsEnd)

	return tracerr.Wrap(report.Generate(out))
}

// errorEntry attaches the stack frames of a traced error to a log entry.
func errorEntry(err error) *log.Entry {
	traceText := strings.Split(tracerr.Sprint(err), "\n")
	if len(traceText) > 1 {
		return log.WithField("debug", traceText[1:]).WithField("error", err.Error())
	}
	return log.WithField("debug", nil).WithField("error", err.Error())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		errorEntry(err).Error("chain-bench failed")
		os.Exit(1)
	}
}
