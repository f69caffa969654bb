package main

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/kamstrup/intmap"
	"github.com/plus3/resizingvec/rvec"
	"github.com/ztrue/tracerr"
)

// Chain is one row of the locate file.
type Chain struct {
	Name    string
	Channel int
	Locate  int
}

// ErrDuplicateChain is returned when two rows share a channel and locate.
var ErrDuplicateChain = errors.New("duplicate chain")

// ReadChains parses a locate CSV. The first row is a header; every other row
// carries the name, channel and locate in its first three columns.
func ReadChains(r io.Reader) ([]Chain, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var chains []Chain
	headerSeen := false
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		if !headerSeen {
			headerSeen = true
			continue
		}

		line, _ := reader.FieldPos(0)
		if len(record) < 3 {
			return nil, tracerr.Errorf("line %d: expected at least 3 columns, got %d", line, len(record))
		}

		channel, err := parseIndex(record[1])
		if err != nil {
			return nil, tracerr.Errorf("line %d: channel: %w", line, err)
		}
		locate, err := parseIndex(record[2])
		if err != nil {
			return nil, tracerr.Errorf("line %d: locate: %w", line, err)
		}

		chains = append(chains, Chain{
			Name:    record[0],
			Channel: channel,
			Locate:  locate,
		})
	}

	return chains, nil
}

// LoadChains reads the locate CSV at path.
func LoadChains(path string) ([]Chain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	defer f.Close()

	return ReadChains(f)
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, rvec.ErrNegativeIndex
	}
	return n, nil
}

// ChainTable stores chains by channel, then by locate.
type ChainTable struct {
	channels *rvec.Vec[*rvec.Vec[Chain]]
}

// NewChainTable returns an empty ChainTable.
func NewChainTable() *ChainTable {
	return &ChainTable{channels: rvec.New[*rvec.Vec[Chain]]()}
}

// Add stores c, creating its channel on first use. It returns false and
// keeps the stored chain if one with the same channel and locate exists.
func (t *ChainTable) Add(c Chain) bool {
	locates, ok := t.channels.Get(c.Channel)
	if !ok {
		locates = rvec.New[Chain]()
		t.channels.Insert(c.Channel, locates)
	}

	if locates.Has(c.Locate) {
		return false
	}
	locates.Insert(c.Locate, c)
	return true
}

// Get returns the chain stored for channel and locate.
func (t *ChainTable) Get(channel, locate int) (Chain, bool) {
	locates, ok := t.channels.Get(channel)
	if !ok {
		return Chain{}, false
	}
	return locates.Get(locate)
}

// Occupancy returns the number of stored chains and the number of slots
// reserved for them across all channels.
func (t *ChainTable) Occupancy() (filled, reserved int) {
	for _, locates := range t.channels.All() {
		filled += locates.Len()
		reserved += locates.Cap()
	}
	return filled, reserved
}

// Channels returns the number of channels holding at least one chain.
func (t *ChainTable) Channels() int {
	return t.channels.Len()
}

// HashIndex stores chains in a hash map keyed by channel and locate. It is
// the baseline ChainTable is measured against.
type HashIndex struct {
	chains *intmap.Map[uint64, Chain]
}

// NewHashIndex returns an empty HashIndex sized for capacity chains.
func NewHashIndex(capacity int) *HashIndex {
	return &HashIndex{chains: intmap.New[uint64, Chain](capacity)}
}

func hashKey(channel, locate int) uint64 {
	return uint64(channel)<<32 | uint64(uint32(locate))
}

// Add stores c. It returns false and keeps the stored chain if the key was
// already taken.
func (h *HashIndex) Add(c Chain) bool {
	_, added := h.chains.PutIfNotExists(hashKey(c.Channel, c.Locate), c)
	return added
}

// Get returns the chain stored for channel and locate.
func (h *HashIndex) Get(channel, locate int) (Chain, bool) {
	return h.chains.Get(hashKey(channel, locate))
}

// Len returns the number of stored chains.
func (h *HashIndex) Len() int {
	return h.chains.Len()
}

// BuildIndexes loads chains into a ChainTable and a HashIndex. Both must end
// up holding every chain; a repeated key is reported as ErrDuplicateChain.
func BuildIndexes(chains []Chain) (*ChainTable, *HashIndex, error) {
	table := NewChainTable()
	hash := NewHashIndex(len(chains))

	for _, c := range chains {
		tableNew := table.Add(c)
		hashNew := hash.Add(c)
		if !tableNew || !hashNew {
			return nil, nil, tracerr.Errorf("%w: channel %d locate %d", ErrDuplicateChain, c.Channel, c.Locate)
		}
	}

	if filled, _ := table.Occupancy(); filled != len(chains) || hash.Len() != len(chains) {
		return nil, nil, tracerr.Errorf("data went missing: %d rows, table %d, hash %d", len(chains), filled, hash.Len())
	}

	return table, hash, nil
}
