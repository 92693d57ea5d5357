package keygen

import (
	"encoding/json"
	"testing"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

func FuzzOpenDecommitment(f *testing.F) {
	parties := mockParties(2)

	// A genuine opening from party 2 seeds the corpus.
	peerSM, msgs, err := NewStateMachine(newParams(parties, 1, 1, "sm2"))
	if err != nil {
		f.Fatal(err)
	}
	peer := peerSM.(*state)
	valid := decommitPayload{Salt: peer.decommit, Proof: peer.proof.Bytes()}
	for _, p := range peer.vss {
		valid.Commitments = append(valid.Commitments, p.Bytes())
	}
	seed, _ := json.Marshal(valid)

	f.Add(seed)
	f.Add([]byte("short"))
	f.Add([]byte(`{"salt":"","commitments":[],"proof":""}`))
	f.Add([]byte(`{"commitments":["` + dislog.IdentityBytes33.Hex() + `","` + dislog.IdentityBytes33.Hex() + `"]}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		sm, _, err := NewStateMachine(newParams(parties, 0, 1, "sm2"))
		if err != nil {
			t.Fatal(err)
		}
		s := sm.(*state)
		s.peerCommitments = map[string][]byte{parties[1].ID(): msgs[0].Payload()}

		// We expect error or success, BUT NO PANIC.
		vss, err := s.openDecommitment(parties[1].ID(), data)
		if err == nil && len(vss) != 2 {
			t.Errorf("accepted %d commitments", len(vss))
		}
	})
}

func TestOpenDecommitmentSeed(t *testing.T) {
	parties := mockParties(2)
	peerSM, msgs, err := NewStateMachine(newParams(parties, 1, 1, "secp256k1"))
	if err != nil {
		t.Fatal(err)
	}
	peer := peerSM.(*state)

	sm, _, err := NewStateMachine(newParams(parties, 0, 1, "secp256k1"))
	if err != nil {
		t.Fatal(err)
	}
	s := sm.(*state)
	s.peerCommitments = map[string][]byte{parties[1].ID(): msgs[0].Payload()}

	payload := decommitPayload{Salt: peer.decommit, Proof: peer.proof.Bytes()}
	for _, p := range peer.vss {
		payload.Commitments = append(payload.Commitments, p.Bytes())
	}
	data, _ := json.Marshal(payload)

	vss, err := s.openDecommitment(parties[1].ID(), data)
	if err != nil {
		t.Fatalf("Valid opening rejected: %v", err)
	}
	if !vss[0].Equal(peer.vss[0]) {
		t.Error("Opened commitment does not match dealer's A_0")
	}

	// The opening is bound to the sender.
	if _, err := s.openDecommitment(parties[0].ID(), data); err == nil {
		t.Error("Expected opening to fail against another party's commitment")
	}

	// Swapping the proof breaks the commitment.
	payload.Proof = append([]byte{}, payload.Proof...)
	payload.Proof[64] ^= 1
	data, _ = json.Marshal(payload)
	if _, err := s.openDecommitment(parties[1].ID(), data); err == nil {
		t.Error("Expected tampered opening to fail")
	}

}
