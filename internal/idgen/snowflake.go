package idgen

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	nodeBits       = 10
	sequenceBits   = 12
	nodeShift      = sequenceBits
	timestampShift = nodeBits + sequenceBits
	sequenceMask   = (1 << sequenceBits) - 1

	// MaxNodeID es el mayor node id aceptado.
	MaxNodeID = (1 << nodeBits) - 1
)

// epoch: 2020-01-01 00:00:00 UTC en milisegundos.
var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

// Generator produce message ids de 64 bits.
type Generator interface {
	NextID() (uint64, error)
}

// Snowflake genera ids únicos y crecientes: timestamp (ms) | node | sequence.
type Snowflake struct {
	mu            sync.Mutex
	nodeID        int64
	lastTimestamp int64
	sequence      int64
	now           func() time.Time
}

// NewSnowflake crea un generador para el nodo indicado (0..MaxNodeID).
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > MaxNodeID {
		return nil, fmt.Errorf("nodeID must be between 0 and %d", MaxNodeID)
	}
	return &Snowflake{
		nodeID:        nodeID,
		lastTimestamp: -1,
		now:           time.Now,
	}, nil
}

func (sf *Snowflake) NextID() (uint64, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	timestamp := sf.now().UnixMilli() - epoch
	if timestamp < 0 {
		return 0, errors.New("clock is before snowflake epoch")
	}
	if timestamp < sf.lastTimestamp {
		return 0, fmt.Errorf("clock moved backwards, refusing to generate id for %d milliseconds",
			sf.lastTimestamp-timestamp)
	}

	if timestamp == sf.lastTimestamp {
		sf.sequence = (sf.sequence + 1) & sequenceMask
		// Secuencia agotada en este milisegundo: esperar al siguiente.
		if sf.sequence == 0 {
			for timestamp <= sf.lastTimestamp {
				time.Sleep(100 * time.Microsecond)
				timestamp = sf.now().UnixMilli() - epoch
			}
		}
	} else {
		sf.sequence = 0
	}

	sf.lastTimestamp = timestamp

	id := (timestamp << timestampShift) | (sf.nodeID << nodeShift) | sf.sequence
	return uint64(id), nil
}
