package cli

import (
	"github.com/spf13/cobra"

	"github.com/smallyu/go-dislog/internal/crypto/dh"
	"github.com/smallyu/go-dislog/pkg/dislog"
)

func (a *app) dhCmd() *cobra.Command {
	var (
		info string
		size int
	)

	cmd := &cobra.Command{
		Use:   "dh",
		Short: "Diffie-Hellman key agreement",
	}

	derive := &cobra.Command{
		Use:   "derive SECRET PEER",
		Short: "Derive a shared key from our SECRET and the PEER public point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sks, err := a.parseScalars(args[:1])
			if err != nil {
				return a.fail("dh derive", err)
			}
			peers, err := a.parsePoints(args[1:])
			if err != nil {
				return a.fail("dh derive", err)
			}
			key, err := dh.DeriveSharedSecret(a.group, sks[0], peers[0], []byte(info), size)
			if err != nil {
				return a.fail("dh derive", err)
			}
			return a.emit("dh derive", result{{"key", dislog.EncodeHex(key)}})
		},
	}
	derive.Flags().StringVar(&info, "info", "", "HKDF info string")
	derive.Flags().IntVar(&size, "size", 32, "derived key length in bytes")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "keygen",
			Short: "Generate a key pair",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				kp, err := dh.GenerateKeyPair(a.group, a.rand)
				if err != nil {
					return a.fail("dh keygen", err)
				}
				return a.emit("dh keygen", result{
					{"private", kp.Private.String()},
					{"public", kp.Public.String()},
				})
			},
		},
		derive,
	)
	return cmd
}
