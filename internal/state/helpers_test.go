package state

import (
	"fmt"
	"sync/atomic"
)

type seqIDs struct{ n atomic.Int64 }

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("id-%d", g.n.Add(1))
}
