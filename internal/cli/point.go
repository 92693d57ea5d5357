package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

func (a *app) pointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "point",
		Short: "Group element arithmetic",
		Long: `Points are read and written as 66 hex digits: the SEC1 compressed encoding,
or 01 followed by 64 zeros for the identity.`,
	}

	emitPoint := func(op string, p dislog.Point) error {
		return a.emit(op, result{{"point", p.String()}})
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "generator",
			Short: "Print the base point",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return emitPoint("point generator", a.group.Generator())
			},
		},
		&cobra.Command{
			Use:   "identity",
			Short: "Print the encoding of the identity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return emitPoint("point identity", a.group.Identity())
			},
		},
		&cobra.Command{
			Use:   "decode P",
			Short: "Validate a point and print its affine coordinates as scalars",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ps, err := a.parsePoints(args)
				if err != nil {
					return a.fail("point decode", err)
				}
				p := ps[0]
				return a.emit("point decode", result{
					{"point", p.String()},
					{"identity", boolString(p.IsIdentity())},
					{"x", p.X().String()},
					{"y", p.Y().String()},
				})
			},
		},
		&cobra.Command{
			Use:   "add P Q",
			Short: "Compute P + Q",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ps, err := a.parsePoints(args)
				if err != nil {
					return a.fail("point add", err)
				}
				return emitPoint("point add", ps[0].Add(ps[1]))
			},
		},
		&cobra.Command{
			Use:   "sub P Q",
			Short: "Compute P - Q",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ps, err := a.parsePoints(args)
				if err != nil {
					return a.fail("point sub", err)
				}
				return emitPoint("point sub", ps[0].Sub(ps[1]))
			},
		},
		&cobra.Command{
			Use:   "neg P",
			Short: "Compute -P",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ps, err := a.parsePoints(args)
				if err != nil {
					return a.fail("point neg", err)
				}
				return emitPoint("point neg", ps[0].Neg())
			},
		},
		&cobra.Command{
			Use:   "mul P K",
			Short: "Compute K * P",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ps, err := a.parsePoints(args[:1])
				if err != nil {
					return a.fail("point mul", err)
				}
				ks, err := a.parseScalars(args[1:])
				if err != nil {
					return a.fail("point mul", err)
				}
				return emitPoint("point mul", ps[0].Mul(ks[0]))
			},
		},
		&cobra.Command{
			Use:   "base-mul K",
			Short: "Compute K * G",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ks, err := a.parseScalars(args)
				if err != nil {
					return a.fail("point base-mul", err)
				}
				return emitPoint("point base-mul", a.group.BaseMul(ks[0]))
			},
		},
		&cobra.Command{
			Use:   "hash DOMAIN MESSAGE",
			Short: "Hash a message to a point with unknown discrete logarithm",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := dislog.HashToPoint(a.group, []byte(args[0]), []byte(args[1]))
				if err != nil {
					return a.fail("point hash", err)
				}
				return emitPoint("point hash", p)
			},
		},
	)
	return cmd
}

func (a *app) parsePoints(args []string) ([]dislog.Point, error) {
	out := make([]dislog.Point, len(args))
	for i, s := range args {
		v, err := dislog.PointFromHex(a.group, s)
		if err != nil {
			return nil, errors.WithMessagef(err, "point %q", s)
		}
		out[i] = v
	}
	return out, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
