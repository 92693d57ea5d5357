package tss

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/ecgroup"
)

// PartyID represents a participant in the MPC protocol.
// It must be unique within a session.
type PartyID interface {
	// ID returns the unique string identifier for the party.
	ID() string

	// Moniker returns a human-readable name for the party (optional).
	Moniker() string

	// Key returns the public key associated with this party's identity.
	// This is used to verify the authenticity of messages sent by this party.
	Key() []byte
}

// Message is the generic interface for all protocol messages.
type Message interface {
	// Type returns a string identifier for the message type.
	Type() string

	// From returns the sender's PartyID.
	From() PartyID

	// To returns the intended recipients.
	// If nil or empty, the message is treated as a broadcast message.
	To() []PartyID

	// IsBroadcast returns true if the message is intended for all parties.
	IsBroadcast() bool

	// Payload returns the serialized data of the message.
	Payload() []byte

	// RoundNumber returns the protocol round this message belongs to.
	RoundNumber() uint32
}

// StateMachine is the core engine that drives the protocol.
// It follows a functional state transition pattern.
type StateMachine interface {
	// Update applies an incoming message to the current state.
	// It returns:
	// - next: The new state machine.
	// - out: A slice of messages to be sent to other parties.
	// - err: An error if the transition failed.
	Update(msg Message) (next StateMachine, out []Message, err error)

	// Result returns the final output of the protocol.
	// Returns nil if the protocol is not yet finished.
	Result() interface{}

	// Details returns metadata about the current state (e.g., "KeyGen Round 2").
	Details() string
}

// Parameters holds the configuration for a protocol session.
type Parameters struct {
	PartyID   PartyID   // The identity of the local party
	Parties   []PartyID // List of all participants, in the same order at every party
	Threshold int       // The threshold (t); t+1 shares reconstruct the secret
	Curve     string    // The group to use ("sm2" or "secp256k1")
	SessionID []byte    // Unique session identifier to prevent replay attacks
	Rand      io.Reader // Randomness source; crypto/rand when nil
}

// ProtocolInitializer defines the function signature for starting a new protocol.
type ProtocolInitializer func(params *Parameters) (StateMachine, []Message, error)

// Validate checks the party list and threshold.
func (p *Parameters) Validate() error {
	if p.PartyID == nil {
		return errors.New("tss: missing local party")
	}
	n := len(p.Parties)
	if n < 2 {
		return errors.Errorf("tss: need at least 2 parties, got %d", n)
	}
	if p.Threshold < 1 || p.Threshold >= n {
		return errors.Errorf("tss: threshold %d out of range [1, %d)", p.Threshold, n)
	}
	seen := make(map[string]struct{}, n)
	for _, party := range p.Parties {
		if _, ok := seen[party.ID()]; ok {
			return errors.Errorf("tss: duplicate party %s", party.ID())
		}
		seen[party.ID()] = struct{}{}
	}
	if p.Index(p.PartyID.ID()) < 0 {
		return errors.Wrap(ErrUnknownParty, p.PartyID.ID())
	}
	return nil
}

// Group resolves the Curve name.
func (p *Parameters) Group() (dislog.Group, error) {
	return ecgroup.ByName(p.Curve)
}

// Index returns the position of id in Parties, or -1.
func (p *Parameters) Index(id string) int {
	for i, party := range p.Parties {
		if party.ID() == id {
			return i
		}
	}
	return -1
}

// ShareID returns the evaluation point of the party with the given id:
// its position in Parties plus one.
func (p *Parameters) ShareID(g dislog.Group, id string) (dislog.Scalar, error) {
	i := p.Index(id)
	if i < 0 {
		return nil, errors.Wrap(ErrUnknownParty, id)
	}
	return g.ScalarFromUint64(uint64(i + 1)), nil
}

// Reader returns Rand, or crypto/rand when it is unset.
func (p *Parameters) Reader() io.Reader {
	if p.Rand != nil {
		return p.Rand
	}
	return rand.Reader
}
