// Package idgen provides the identifier capability used for entrega ids.
// Callers depend on the Generator interface, never on a concrete source.
package idgen

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Generator produces identifiers unique within an entregas history.
type Generator interface {
	Nuevo() string
}

// Aleatorio is the collision-resistant default. If the random source fails
// it degrades to the timestamp-based fallback instead of erroring.
type Aleatorio struct{}

func (Aleatorio) Nuevo() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return Marca{}.Nuevo()
	}
	return id.String()
}

// Marca is the degraded fallback: millisecond timestamp plus a short random
// suffix. Not collision-resistant across processes; good enough within one
// history when the entropy source is unavailable.
type Marca struct{}

func (Marca) Nuevo() string {
	return fmt.Sprintf("ent-%d-%04d", time.Now().UnixMilli(), rand.IntN(10000))
}
