package suuid

import (
	"encoding/binary"
	"io"
	"sync"
)

// counterMask names the low bits of the intra-millisecond counter that
// fit the 12-bit rand_a field.
const counterMask = 0x0fff

// clock is the shared mutable state behind the time-based versions. The
// gregorian-tick versions (v1/v2/v6) share a 16-bit clock sequence and a
// watermark in 100ns ticks; the unix-millisecond version (v7) has its own
// counter and watermark, so ties in one timescale never disturb the
// ordering of the other. The sequence, counter and node are lazily seeded
// with cryptographically strong randomness on first use and survive for
// the process lifetime unless reset explicitly.
type clock struct {
	mu        sync.Mutex
	lastTicks int64  // gregorian watermark, 100ns ticks (v1/v2/v6)
	lastMilli int64  // unix-millisecond watermark (v7)
	seq       uint16 // clock sequence (v1/v2/v6)
	counter   uint16 // intra-millisecond counter, low 12 bits encoded (v7)
	node      [6]byte
	seeded    bool
	nodeSet   bool
}

// seedLocked seeds the clock sequence, the counter and, unless a node
// identifier was installed explicitly, the node. The node's multicast bit
// is forced to 1 to mark it as not MAC-derived. Caller holds mu.
func (c *clock) seedLocked(r io.Reader) error {
	var buf [10]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	c.seq = binary.BigEndian.Uint16(buf[0:2])
	c.counter = binary.BigEndian.Uint16(buf[2:4])
	if !c.nodeSet {
		copy(c.node[:], buf[4:10])
		c.node[0] |= 0x01
	}
	c.seeded = true
	return nil
}

// next applies the clock-sequence rule of the gregorian-tick versions to
// the adjusted timestamp and returns the timestamp, clock sequence and
// node to encode. If ticks is not strictly greater than the watermark the
// sequence is incremented (wrapping modulo 2^16); the less-than-or-equal
// comparison is load bearing for collision avoidance under
// sub-tick-resolution clocks.
func (c *clock) next(r io.Reader, ticks int64) (int64, uint16, [6]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.seeded {
		if err := c.seedLocked(r); err != nil {
			return 0, 0, c.node, err
		}
	}

	if ticks <= c.lastTicks {
		c.seq++
	} else {
		c.lastTicks = ticks
	}
	return ticks, c.seq, c.node, nil
}

// nextMilli applies the monotonic counter rule of the unix-millisecond
// version. The caller encodes the counter's low 12 bits right after the
// timestamp, so ties encode the watermark itself, and a counter wrap
// advances the watermark by one millisecond; the encoded values keep
// strict ordering even inside one millisecond and across wraps. The
// counter is dedicated to this timescale and never moves with the
// gregorian clock sequence.
func (c *clock) nextMilli(r io.Reader, ms int64) (int64, uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.seeded {
		if err := c.seedLocked(r); err != nil {
			return 0, 0, err
		}
	}

	if ms <= c.lastMilli {
		c.counter++
		if c.counter&counterMask == 0 {
			c.lastMilli++
		}
		ms = c.lastMilli
	} else {
		c.lastMilli = ms
	}
	return ms, c.counter, nil
}

// setNode installs an explicit 48-bit node identifier, forcing the
// multicast bit since the value is not a MAC address.
func (c *clock) setNode(id []byte) error {
	if len(id) != 6 {
		return ErrInvalidLength
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(c.node[:], id)
	c.node[0] |= 0x01
	c.nodeSet = true
	return nil
}

// reset clears all clock state. Test hook only.
func (c *clock) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastTicks = 0
	c.lastMilli = 0
	c.seq = 0
	c.counter = 0
	c.node = [6]byte{}
	c.seeded = false
	c.nodeSet = false
}

// randomNode returns a fresh random node with the multicast bit forced.
// The DCE security version re-randomizes the node on every generation
// instead of reusing the process-wide one.
func randomNode(r io.Reader) ([6]byte, error) {
	var node [6]byte
	if _, err := io.ReadFull(r, node[:]); err != nil {
		return node, err
	}
	node[0] |= 0x01
	return node, nil
}
