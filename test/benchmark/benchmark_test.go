package benchmark

import (
	"fmt"
	"testing"

	"github.com/smallyu/go-dislog/internal/protocol/keygen"
	"github.com/smallyu/go-dislog/internal/protocol/refresh"
	"github.com/smallyu/go-dislog/pkg/tss"
)

type MockPartyID struct {
	id string
}

func (m *MockPartyID) ID() string      { return m.id }
func (m *MockPartyID) Moniker() string { return m.id }
func (m *MockPartyID) Key() []byte     { return []byte(m.id) }

var benchCurves = []string{"sm2", "secp256k1"}

// setupParties creates n parties for testing.
func setupParties(n int) []tss.PartyID {
	parties := make([]tss.PartyID, n)
	for i := 0; i < n; i++ {
		parties[i] = &MockPartyID{id: fmt.Sprintf("%d", i+1)}
	}
	return parties
}

// route simulates message routing between parties.
func route(parties []tss.PartyID, sms []tss.StateMachine, outMsgs [][]tss.Message) ([]tss.StateMachine, [][]tss.Message) {
	allMsgs := []tss.Message{}
	for _, msgs := range outMsgs {
		allMsgs = append(allMsgs, msgs...)
	}
	newOutMsgs := make([][]tss.Message, len(sms))

	for i := 0; i < len(sms); i++ {
		for _, msg := range allMsgs {
			if msg.From().ID() == parties[i].ID() {
				continue
			}
			if !msg.IsBroadcast() {
				found := false
				for _, dest := range msg.To() {
					if dest.ID() == parties[i].ID() {
						found = true
						break
					}
				}
				if !found {
					continue
				}
			}

			next, newOut, err := sms[i].Update(msg)
			if err != nil {
				panic(fmt.Sprintf("party %d error: %v", i, err))
			}
			sms[i] = next
			if newOut != nil {
				newOutMsgs[i] = append(newOutMsgs[i], newOut...)
			}
		}
	}
	return sms, newOutMsgs
}

func params(parties []tss.PartyID, i, threshold int, curve, sessionID string) *tss.Parameters {
	return &tss.Parameters{
		PartyID:   parties[i],
		Parties:   parties,
		Threshold: threshold,
		Curve:     curve,
		SessionID: []byte(sessionID),
	}
}

// runKeyGen runs key generation and returns the key data for all parties.
func runKeyGen(parties []tss.PartyID, threshold int, curve, sessionID string) []*keygen.LocalPartySaveData {
	n := len(parties)
	keygenSMs := make([]tss.StateMachine, n)
	outMsgs := make([][]tss.Message, n)

	for i := 0; i < n; i++ {
		var err error
		keygenSMs[i], outMsgs[i], err = keygen.NewStateMachine(params(parties, i, threshold, curve, sessionID))
		if err != nil {
			panic(err)
		}
	}

	for r := 1; r <= 3; r++ {
		keygenSMs, outMsgs = route(parties, keygenSMs, outMsgs)
	}

	keyData := make([]*keygen.LocalPartySaveData, n)
	for i := 0; i < n; i++ {
		keyData[i] = keygenSMs[i].Result().(*keygen.LocalPartySaveData)
	}
	return keyData
}

// BenchmarkKeyGen benchmarks the key generation protocol.
func BenchmarkKeyGen2of3(b *testing.B) {
	for _, curve := range benchCurves {
		b.Run(curve, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				runKeyGen(setupParties(3), 1, curve, fmt.Sprintf("keygen-session-%d", i))
			}
		})
	}
}

// BenchmarkRefresh benchmarks the key refresh protocol.
func BenchmarkRefresh2of3(b *testing.B) {
	for _, curve := range benchCurves {
		b.Run(curve, func(b *testing.B) {
			parties := setupParties(3)
			keyData := runKeyGen(parties, 1, curve, "refresh-setup-session")

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				refreshSMs := make([]tss.StateMachine, 3)
				outMsgs := make([][]tss.Message, 3)

				for j := 0; j < 3; j++ {
					var err error
					refreshSMs[j], outMsgs[j], err = refresh.Initializer(keyData[j])(params(parties, j, 1, curve, fmt.Sprintf("refresh-session-%d", i)))
					if err != nil {
						b.Fatal(err)
					}
				}

				refreshSMs, _ = route(parties, refreshSMs, outMsgs)

				for j := 0; j < 3; j++ {
					if refreshSMs[j].Result() == nil {
						b.Fatal("Refresh failed")
					}
				}
			}
		})
	}
}
