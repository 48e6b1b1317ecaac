package main

import (
	"encoding/hex"
	"github.com/floodlight/oftest-sub002/ofp4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"io"
	"os"
	"strings"
)

type app struct {
	config string
	v      *viper.Viper
	log    *logrus.Logger
	create func(name string) (io.WriteCloser, error)
}

func newRootCmd() *cobra.Command {
	return newApp().command()
}

func newApp() *app {
	self := &app{
		v:   viper.New(),
		log: logrus.New(),
		create: func(name string) (io.WriteCloser, error) {
			return os.Create(name)
		},
	}
	self.v.SetEnvPrefix("OFACTION")
	self.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	self.v.AutomaticEnv()
	setDefaults(self.v)
	return self
}

func (self *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "ofaction",
		Short:             "Decode, encode and apply OpenFlow 1.3 actions",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: self.setup,
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&self.config, "config", "c", "", "config file (yaml)")
	flags.String("log-level", "info", "log level")
	flags.String("log-format", "text", "log format, text or json")
	bindFlag(self.v, "log.level", flags, "log-level")
	bindFlag(self.v, "log.format", flags, "log-format")

	cmd.AddCommand(self.decodeCmd(), self.encodeCmd(), self.applyCmd())
	return cmd
}

// bindFlag ties a config key to a flag. A missing flag is a programming
// error, so it panics while the commands are built.
func bindFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) {
	if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(errors.Wrapf(err, "bind --%s to %s", name, key))
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("packet.in_port", 1)
	v.SetDefault("capture.file", "")
	v.SetDefault("capture.snaplen", 65535)
}

func (self *app) setup(cmd *cobra.Command, args []string) error {
	if self.config != "" {
		self.v.SetConfigFile(self.config)
		if err := self.v.ReadInConfig(); err != nil {
			return errors.Wrap(err, "read config")
		}
	}
	level, err := logrus.ParseLevel(self.v.GetString("log.level"))
	if err != nil {
		return err
	}
	self.log.SetLevel(level)
	self.log.SetOutput(cmd.ErrOrStderr())
	switch format := self.v.GetString("log.format"); format {
	case "json":
		self.log.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		self.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return errors.Errorf("unknown log format %q", format)
	}
	return nil
}

// parseHex accepts hex with optional spaces, colons or a 0x prefix.
func parseHex(txt string) ([]byte, error) {
	txt = strings.TrimPrefix(strings.TrimSpace(txt), "0x")
	txt = strings.NewReplacer(" ", "", ":", "", "\n", "").Replace(txt)
	data, err := hex.DecodeString(txt)
	if err != nil {
		return nil, errors.Wrap(err, "hex")
	}
	return data, nil
}

// actionError attaches the OpenFlow error code a switch would report.
func actionError(err error) error {
	e := ofp4.BadActionError(err)
	return errors.Wrapf(err, "bad action (%v)", e)
}
