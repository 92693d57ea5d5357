package cli

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-dislog/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-dislog/pkg/dislog"
)

func (a *app) schnorrCmd() *cobra.Command {
	var context string

	cmd := &cobra.Command{
		Use:   "schnorr",
		Short: "Prove and verify knowledge of a discrete logarithm",
	}
	cmd.PersistentFlags().StringVar(&context, "context", "", "context string bound into the challenge")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "prove SECRET",
			Short: "Prove knowledge of SECRET for the public point SECRET * G",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				xs, err := a.parseScalars(args)
				if err != nil {
					return a.fail("schnorr prove", err)
				}
				X := a.group.BaseMul(xs[0])
				proof, err := schnorr.Prove(a.group, a.rand, xs[0], X, []byte(context))
				if err != nil {
					return a.fail("schnorr prove", err)
				}
				return a.emit("schnorr prove", result{
					{"public", X.String()},
					{"proof", dislog.EncodeHex(proof.Bytes())},
				})
			},
		},
		&cobra.Command{
			Use:   "verify PUBLIC PROOF",
			Short: "Verify a proof produced by prove",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ps, err := a.parsePoints(args[:1])
				if err != nil {
					return a.fail("schnorr verify", err)
				}
				raw, err := hex.DecodeString(args[1])
				if err != nil {
					return a.fail("schnorr verify", errors.WithMessage(dislog.ErrInvalidEncoding, "proof"))
				}
				proof, err := schnorr.ParseProof(a.group, raw)
				if err != nil {
					return a.fail("schnorr verify", err)
				}
				if !proof.Verify(a.group, ps[0], []byte(context)) {
					return a.fail("schnorr verify", errors.New("proof rejected"))
				}
				return a.emit("schnorr verify", result{{"valid", "true"}})
			},
		},
	)
	return cmd
}
