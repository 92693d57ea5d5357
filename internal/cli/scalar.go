package cli

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

func (a *app) scalarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scalar",
		Short: "Arithmetic modulo the group order",
		Long:  `Scalars are read and written as 64 hex digits, little-endian, already reduced modulo the group order.`,
	}

	binary := func(use, short string, op func(x, y dislog.Scalar) dislog.Scalar) *cobra.Command {
		return &cobra.Command{
			Use:   use + " A B",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				xs, err := a.parseScalars(args)
				if err != nil {
					return a.fail("scalar "+use, err)
				}
				return a.emit("scalar "+use, result{{"scalar", op(xs[0], xs[1]).String()}})
			},
		}
	}
	unary := func(use, short string, op func(x dislog.Scalar) dislog.Scalar) *cobra.Command {
		return &cobra.Command{
			Use:   use + " A",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				xs, err := a.parseScalars(args)
				if err != nil {
					return a.fail("scalar "+use, err)
				}
				return a.emit("scalar "+use, result{{"scalar", op(xs[0]).String()}})
			},
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "random",
			Short: "Draw a uniformly random non-zero scalar",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.group.RandomScalar(a.rand)
				if err != nil {
					return a.fail("scalar random", err)
				}
				return a.emit("scalar random", result{{"scalar", s.String()}})
			},
		},
		&cobra.Command{
			Use:   "from-int N",
			Short: "Encode a decimal or 0x-prefixed integer, reduced modulo the order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, ok := new(big.Int).SetString(args[0], 0)
				if !ok {
					return a.fail("scalar from-int", errors.Errorf("invalid integer %q", args[0]))
				}
				return a.emit("scalar from-int", result{{"scalar", a.group.ScalarFromBigInt(n).String()}})
			},
		},
		&cobra.Command{
			Use:   "to-int A",
			Short: "Print a scalar as a decimal integer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				xs, err := a.parseScalars(args)
				if err != nil {
					return a.fail("scalar to-int", err)
				}
				return a.emit("scalar to-int", result{{"int", xs[0].BigInt().String()}})
			},
		},
		binary("add", "Compute A + B", func(x, y dislog.Scalar) dislog.Scalar { return x.Add(y) }),
		binary("sub", "Compute A - B", func(x, y dislog.Scalar) dislog.Scalar { return x.Sub(y) }),
		binary("mul", "Compute A * B", func(x, y dislog.Scalar) dislog.Scalar { return x.Mul(y) }),
		unary("neg", "Compute -A", func(x dislog.Scalar) dislog.Scalar { return x.Neg() }),
		&cobra.Command{
			Use:   "inv A",
			Short: "Compute the inverse of a non-zero A",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				xs, err := a.parseScalars(args)
				if err != nil {
					return a.fail("scalar inv", err)
				}
				if xs[0].IsZero() {
					return a.fail("scalar inv", errors.New("zero has no inverse"))
				}
				return a.emit("scalar inv", result{{"scalar", xs[0].Inv().String()}})
			},
		},
	)
	return cmd
}

func (a *app) parseScalars(args []string) ([]dislog.Scalar, error) {
	out := make([]dislog.Scalar, len(args))
	for i, s := range args {
		v, err := dislog.ScalarFromHex(a.group, s)
		if err != nil {
			return nil, errors.WithMessagef(err, "scalar %q", s)
		}
		out[i] = v
	}
	return out, nil
}
