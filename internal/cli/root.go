// Package cli implements dlctl, a command line tool for scalar and point
// arithmetic on the supported curves.
package cli

import (
	"crypto/rand"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/ecgroup"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	out    io.Writer
	rand   io.Reader
	viper  *viper.Viper
	cfg    *Config
	logger *zap.Logger
	group  dislog.Group
}

// NewRootCommand builds the dlctl command tree writing results to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	return newRootCommand(out, rand.Reader)
}

func newRootCommand(out io.Writer, rnd io.Reader) *cobra.Command {
	a := &app{
		out:    out,
		rand:   rnd,
		viper:  viper.New(),
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "dlctl",
		Short:         "Discrete-log group arithmetic",
		Long:          `Scalar and point arithmetic, encodings and proofs on the SM2 and secp256k1 groups`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(out)
	registerFlags(root.PersistentFlags())

	root.AddCommand(
		a.curveCmd(),
		a.scalarCmd(),
		a.pointCmd(),
		a.schnorrCmd(),
		a.dhCmd(),
		a.keygenCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.viper, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("curve", cfg.Curve))

	g, err := ecgroup.ByName(cfg.Curve)
	if err != nil {
		return err
	}
	a.group = g
	a.logger.Debug("configured", zap.String("command", cmd.CommandPath()), zap.String("output", cfg.Output))
	return nil
}

func (a *app) emit(op string, r result) error {
	if ce := a.logger.Check(zap.DebugLevel, op); ce != nil {
		fields := make([]zap.Field, 0, len(r))
		for _, f := range r {
			fields = append(fields, zap.String(f.Key, f.Value))
		}
		ce.Write(fields...)
	}
	return r.write(a.out, a.cfg.Output)
}

func (a *app) fail(op string, err error) error {
	a.logger.Error(op, zap.Error(err))
	return err
}

func (a *app) curveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curve",
		Short: "Print the group parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := a.group
			return a.emit("curve", result{
				{"name", g.Name()},
				{"order", dislog.EncodeHex(g.Order().Bytes())},
				{"generator", g.Generator().String()},
				{"identity", g.Identity().String()},
			})
		},
	}
}
