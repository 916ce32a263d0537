package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/core"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/log"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

const appName = "braidcrypt-cli"

// output receives command results. Logs go to stderr.
var output io.Writer = os.Stdout

var seedFlag = &cli.Uint64Flag{
	Name:  "seed",
	Usage: "Seed for a deterministic run. Without it, randomness comes from the OS.",
}

var fieldFlag = &cli.StringFlag{
	Name:  "field",
	Value: "zz32003",
	Usage: "Field the projections are evaluated over: zz5, zz32003 or gf256.",
}

var paramsFlag = &cli.StringFlag{
	Name:  "params",
	Usage: "TOML parameter file with [kayawood] and [walnut] tables.",
}

var verboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "If set, verbosity is at the debug level",
}

var logJSONFlag = &cli.BoolFlag{
	Name:  "log-json",
	Usage: "Log JSON instead of console lines.",
}

var levelFlag = &cli.StringFlag{
	Name:  "level",
	Usage: "Parameter preset, overridden by --params.",
}

var outFlag = &cli.StringFlag{
	Name:  "out",
	Usage: "Write the result to this file instead of stdout.",
}

var keyFlag = &cli.StringFlag{
	Name:     "key",
	Usage:    "Key file written by walnut keygen.",
	Required: true,
}

var messageFlag = &cli.StringFlag{
	Name:     "message",
	Usage:    "Message to sign or verify.",
	Required: true,
}

var signatureFlag = &cli.StringFlag{
	Name:     "signature",
	Usage:    "Signature file written by walnut sign.",
	Required: true,
}

var strandsFlag = &cli.IntFlag{
	Name:  "strands",
	Usage: "Braid group rank. Defaults to one more than the largest generator.",
}

var appCommands = []*cli.Command{
	{
		Name:  "kayawood",
		Usage: "Kayawood key agreement.",
		Subcommands: []*cli.Command{
			{
				Name:   "instance",
				Usage:  "Run both parties and print a summary of the agreed key.",
				Flags:  []cli.Flag{levelFlag},
				Action: byField(kayawoodInstance[field.ZZ5], kayawoodInstance[field.ZZ32003], kayawoodInstance[field.GF256]),
			},
		},
	},
	{
		Name:  "walnut",
		Usage: "Walnut signatures.",
		Subcommands: []*cli.Command{
			{
				Name:   "keygen",
				Usage:  "Generate a key pair.",
				Flags:  []cli.Flag{levelFlag, outFlag},
				Action: byField(walnutKeygen[field.ZZ5], walnutKeygen[field.ZZ32003], walnutKeygen[field.GF256]),
			},
			{
				Name:   "sign",
				Usage:  "Sign a message.",
				Flags:  []cli.Flag{keyFlag, messageFlag, outFlag},
				Action: byField(walnutSign[field.ZZ5], walnutSign[field.ZZ32003], walnutSign[field.GF256]),
			},
			{
				Name:   "verify",
				Usage:  "Verify a signature.",
				Flags:  []cli.Flag{keyFlag, messageFlag, signatureFlag},
				Action: byField(walnutVerify[field.ZZ5], walnutVerify[field.ZZ32003], walnutVerify[field.GF256]),
			},
		},
	},
	{
		Name:  "braid",
		Usage: "Braid word utilities.",
		Subcommands: []*cli.Command{
			{
				Name:      "reduce",
				Usage:     "Handle reduce a word.",
				ArgsUsage: "WORD",
				Flags:     []cli.Flag{strandsFlag},
				Action:    braidReduce,
			},
			{
				Name:      "check",
				Usage:     "Run the fast triviality test on one word or the equality and conjugacy tests on two.",
				ArgsUsage: "WORD [WORD]",
				Flags:     []cli.Flag{strandsFlag},
				Action:    braidCheck,
			},
		},
	},
	{
		Name:   "params",
		Usage:  "Print the parameter presets, or the --params file after validation, as TOML.",
		Action: printParams,
	},
}

// CLI returns the braidcrypt-cli app.
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(output, "%s %s\n", appName, braidcrypt.Version)
	}
	app.ExitErrHandler = func(context *cli.Context, err error) {
		// keep errors as return values so tests can run several commands
	}
	app.Version = braidcrypt.Version
	app.Usage = "braid group key agreement and signatures"
	app.Commands = appCommands
	app.Flags = []cli.Flag{seedFlag, fieldFlag, paramsFlag, verboseFlag, logJSONFlag}
	return app
}

func byField(zz5, zz32003, gf256 cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		switch strings.ToLower(c.String(fieldFlag.Name)) {
		case "zz5":
			return zz5(c)
		case "zz32003":
			return zz32003(c)
		case "gf256":
			return gf256(c)
		default:
			return fmt.Errorf("%w: unknown field %q", braidcrypt.ErrValidation, c.String(fieldFlag.Name))
		}
	}
}

func contextToLogger(c *cli.Context) log.Logger {
	level := log.InfoLevel
	if c.Bool(verboseFlag.Name) {
		level = log.DebugLevel
	}
	return log.New(nil, level, c.Bool(logJSONFlag.Name)).Named(appName)
}

func contextToSource(c *cli.Context) (*utils.Source, error) {
	if c.IsSet(seedFlag.Name) {
		return utils.NewSourceFromUint64(c.Uint64(seedFlag.Name)), nil
	}
	return utils.NewSecureSource()
}

func contextToConfig(c *cli.Context) (*core.Config, error) {
	if path := c.String(paramsFlag.Name); path != "" {
		return core.LoadParamsFile(path)
	}
	return &core.Config{}, nil
}

func kayawoodParams(c *cli.Context) (braidcrypt.KayawoodParams, error) {
	cfg, err := contextToConfig(c)
	if err != nil {
		return braidcrypt.KayawoodParams{}, err
	}
	if cfg.Kayawood != nil && !c.IsSet(levelFlag.Name) {
		return *cfg.Kayawood, nil
	}
	level := braidcrypt.KW16
	if c.IsSet(levelFlag.Name) {
		level = braidcrypt.Level(c.String(levelFlag.Name))
	}
	return core.GetKayawoodParams(level)
}

func walnutParams(c *cli.Context) (braidcrypt.WalnutParams, error) {
	cfg, err := contextToConfig(c)
	if err != nil {
		return braidcrypt.WalnutParams{}, err
	}
	if cfg.Walnut != nil && !c.IsSet(levelFlag.Name) {
		return *cfg.Walnut, nil
	}
	level := braidcrypt.WN8
	if c.IsSet(levelFlag.Name) {
		level = braidcrypt.Level(c.String(levelFlag.Name))
	}
	return core.GetWalnutParams(level)
}

// writeResult writes v as indented JSON to --out or to output.
func writeResult(c *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path := c.String(outFlag.Name); path != "" {
		return os.WriteFile(path, data, 0o600)
	}
	_, err = output.Write(data)
	return err
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", braidcrypt.ErrMalformed, path, err)
	}
	return nil
}

func printParams(c *cli.Context) error {
	if c.IsSet(paramsFlag.Name) {
		cfg, err := contextToConfig(c)
		if err != nil {
			return err
		}
		return core.WriteParams(output, cfg)
	}
	for i, cfg := range core.Presets() {
		if i > 0 {
			fmt.Fprintln(output)
		}
		cfg := cfg
		if err := core.WriteParams(output, &cfg); err != nil {
			return err
		}
	}
	return nil
}
