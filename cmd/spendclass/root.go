package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xdao.co/spendclass/classify"
	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/compliance"
	"xdao.co/spendclass/config"
	"xdao.co/spendclass/internal/logging"
	"xdao.co/spendclass/registry"
)

// app is the state shared by every subcommand once the root has loaded config.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	mode       string
	logLevel   string
	binary     bool

	cfg        config.Config
	log        *zap.Logger
	classifier *classify.Classifier
}

func (a *app) parseOptions() clvm.ParseOptions {
	return clvm.ParseOptions{Mode: a.cfg.Mode}
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func isUsage(err error) bool {
	var u usageError
	return errors.As(err, &u)
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "spendclass",
		Short: "Classify serialized puzzle/solution pairs",
		Long: "spendclass recognises standard, CAT, NFT and DID spends by peeling curried\n" +
			"layers off the puzzle and matching their template hashes.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceErrors:     true,
		SilenceUsage:      true,
		Version:           version,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVar(&a.mode, "mode", "", "codec mode: permissive|strict (overrides config)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (overrides config)")
	pf.BoolVar(&a.binary, "binary", false, "read program files as raw bytes instead of hex")

	root.AddCommand(
		newClassifyCmd(a),
		newBatchCmd(a),
		newTreeHashCmd(a),
		newUncurryCmd(a),
		newArchiveCmd(a),
		newRegistryCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.mode != "" {
		m, err := compliance.ParseMode(a.mode)
		if err != nil {
			return usagef("--mode: %v", err)
		}
		cfg.Mode = m
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.log = log

	reg := registry.Default()
	if err := registry.Extend(reg, cfg.Registry.Extra); err != nil {
		return err
	}
	a.classifier = classify.New(reg)
	return nil
}
