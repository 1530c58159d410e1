package digest

import (
	"encoding"
	"errors"
	"hash"
)

// ErrNotForkable is returned by Clone on a state built by NewStreamState.
var ErrNotForkable = errors.New("state was opened for streaming and cannot be cloned")

// State is a hash that can be forked. Hashes that implement
// encoding.BinaryMarshaler are forked by snapshot; the rest replay every
// byte they have been written.
type State struct {
	newHash func() hash.Hash
	h       hash.Hash
	journal []byte
	replay  bool
	stream  bool
}

// NewState wraps newHash in a forkable state.
func NewState(newHash func() hash.Hash) *State {
	h := newHash()
	_, marshalable := h.(encoding.BinaryMarshaler)
	return &State{newHash: newHash, h: h, replay: !marshalable}
}

// NewReplayState wraps newHash and always forks by replay. Keyed hashes
// whose key is captured in the constructor use this.
func NewReplayState(newHash func() hash.Hash) *State {
	return &State{newHash: newHash, h: newHash(), replay: true}
}

// NewStreamState wraps newHash without a replay journal. Its Clone always
// fails, so memory stays constant however much is written.
func NewStreamState(newHash func() hash.Hash) *State {
	return &State{newHash: newHash, h: newHash(), stream: true}
}

func (s *State) Write(p []byte) (int, error) {
	if s.replay {
		s.journal = append(s.journal, p...)
	}
	return s.h.Write(p)
}

// Sum returns the digest of the bytes written so far without changing it.
func (s *State) Sum() []byte {
	return s.h.Sum(nil)
}

// Size returns the digest length in bytes.
func (s *State) Size() int { return s.h.Size() }

// Clone returns an independent copy of the state.
func (s *State) Clone() (*State, error) {
	return s.CloneWith(s.newHash)
}

// CloneWith is Clone with the copy bound to newHash, which must build the
// same hash as the original. Owners that capture keys in the constructor
// pass their own so the copy never reads the original's key.
func (s *State) CloneWith(newHash func() hash.Hash) (*State, error) {
	if s.stream {
		return nil, ErrNotForkable
	}
	c := &State{newHash: newHash, h: newHash(), replay: s.replay}
	if s.replay {
		c.journal = append([]byte(nil), s.journal...)
		if _, err := c.h.Write(c.journal); err != nil {
			return nil, err
		}
		return c, nil
	}
	snap, err := s.h.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		return nil, err
	}
	if err := c.h.(encoding.BinaryUnmarshaler).UnmarshalBinary(snap); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset rewinds the state to empty.
func (s *State) Reset() {
	s.h.Reset()
	s.Wipe()
}

// Wipe zeroes and drops the replay journal.
func (s *State) Wipe() {
	for i := range s.journal {
		s.journal[i] = 0
	}
	s.journal = s.journal[:0]
}
