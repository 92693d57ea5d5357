package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smallyu/go-dislog/internal/crypto/polynomial"
	"github.com/smallyu/go-dislog/internal/protocol/keygen"
	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/tss"
)

type localParty string

func (p localParty) ID() string      { return string(p) }
func (p localParty) Moniker() string { return string(p) }
func (p localParty) Key() []byte     { return []byte(p) }

func (a *app) keygenCmd() *cobra.Command {
	var (
		parties   int
		threshold int
		session   string
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Run a t-of-n Feldman key generation between in-process parties",
		Long: `Runs every party of the distributed key generation locally, delivering
messages between them, and prints the group public key and each party's share.
Any threshold+1 shares reconstruct the secret.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.runKeyGen(parties, threshold, session)
			if err != nil {
				return a.fail("keygen", err)
			}

			var xs, ys []dislog.Scalar
			r := result{{"public_key", results[0].PublicKey.String()}}
			for _, d := range results {
				id := d.LocalPartyID.ID()
				r = append(r,
					field{"share_" + id, d.Xi.String()},
					field{"public_share_" + id, d.PublicShares[id].String()},
				)
				xs = append(xs, d.ShareID)
				ys = append(ys, d.Xi)
			}

			// Self-check: the first t+1 shares open the public key.
			secret, err := polynomial.Interpolate(a.group, xs[:threshold+1], ys[:threshold+1])
			if err != nil {
				return a.fail("keygen", err)
			}
			if !a.group.BaseMul(secret).Equal(results[0].PublicKey) {
				return a.fail("keygen", errors.New("shares do not reconstruct the public key"))
			}
			return a.emit("keygen", r)
		},
	}
	cmd.Flags().IntVarP(&parties, "parties", "n", 3, "number of parties")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 1, "threshold; threshold+1 parties reconstruct")
	cmd.Flags().StringVar(&session, "session", "dlctl", "session identifier")
	return cmd
}

func (a *app) runKeyGen(n, threshold int, session string) ([]*keygen.LocalPartySaveData, error) {
	ids := make([]tss.PartyID, n)
	for i := range ids {
		ids[i] = localParty(fmt.Sprintf("%d", i+1))
	}

	sms := make([]tss.StateMachine, n)
	pending := make([]tss.Message, 0)
	for i := range ids {
		sm, out, err := keygen.NewStateMachine(&tss.Parameters{
			PartyID:   ids[i],
			Parties:   ids,
			Threshold: threshold,
			Curve:     a.group.Name(),
			SessionID: []byte(session),
			Rand:      a.rand,
		})
		if err != nil {
			return nil, err
		}
		sms[i] = sm
		pending = append(pending, out...)
	}

	for round := 1; len(pending) > 0; round++ {
		a.logger.Debug("keygen round", zap.Int("round", round), zap.Int("messages", len(pending)))
		var next []tss.Message
		for i, id := range ids {
			for _, msg := range pending {
				if msg.From().ID() == id.ID() || !deliverTo(msg, id) {
					continue
				}
				sm, out, err := sms[i].Update(msg)
				if err != nil {
					return nil, errors.WithMessagef(err, "party %s", id.ID())
				}
				sms[i] = sm
				next = append(next, out...)
			}
		}
		pending = next
	}

	results := make([]*keygen.LocalPartySaveData, n)
	for i, sm := range sms {
		d, ok := sm.Result().(*keygen.LocalPartySaveData)
		if !ok {
			return nil, errors.Errorf("party %s stopped in %s", ids[i].ID(), sm.Details())
		}
		results[i] = d
	}
	return results, nil
}

func deliverTo(msg tss.Message, p tss.PartyID) bool {
	if msg.IsBroadcast() {
		return true
	}
	for _, dest := range msg.To() {
		if dest.ID() == p.ID() {
			return true
		}
	}
	return false
}
