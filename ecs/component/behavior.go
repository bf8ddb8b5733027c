package component

import "fmt"

// EnemyKind selects the hook set that drives an enemy.
type EnemyKind int

const (
	KindUnknown EnemyKind = iota
	KindFly
	KindFlyingFly
	KindHoveringFly
	KindCockroach
	KindSpikeFloor
	KindSpikeCeiling
	KindFish
	KindGhost
	KindReverseGhost
	KindAngryGhost
	KindJumpingFire
	KindFirebar
	KindFireball
	KindBoss

	kindCount
)

var kindNames = [kindCount]string{
	"Unknown",
	"Fly",
	"FlyingFly",
	"HoveringFly",
	"Cockroach",
	"SpikeFloor",
	"SpikeCeiling",
	"Fish",
	"Ghost",
	"ReverseGhost",
	"AngryGhost",
	"JumpingFire",
	"Firebar",
	"Fireball",
	"Boss",
}

func (k EnemyKind) String() string {
	if k < 0 || k >= kindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// EnemyKinds lists every known kind.
func EnemyKinds() []EnemyKind {
	out := make([]EnemyKind, 0, kindCount-1)
	for k := KindFly; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func ParseEnemyKind(name string) (EnemyKind, error) {
	kinds := EnemyKinds()
	for _, k := range kinds {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("component: unknown enemy kind %q, want one of %v", name, kinds)
}

// UnmarshalText lets catalog documents name kinds by string.
func (k *EnemyKind) UnmarshalText(text []byte) error {
	parsed, err := ParseEnemyKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Behavior is the per-instance state of an enemy. Only the fields used by
// its kind are meaningful.
type Behavior struct {
	Kind      EnemyKind
	Archetype string
	Script    string

	// ScriptDisabled is set after the script failed once.
	ScriptDisabled bool

	OriginX float64
	OriginY float64

	// Firebar orbit.
	Radius      float64
	SpawnCopies bool

	// ReverseGhost and AngryGhost.
	TeleportPending bool

	// Boss.
	MovementLimit     float64
	MovementDirection float64
	JumpTimer         float64
	FireTimer         float64
}

// NewBehavior returns the initial state for a freshly spawned enemy.
func NewBehavior(kind EnemyKind, archetype string, x, y float64) *Behavior {
	b := &Behavior{
		Kind:      kind,
		Archetype: archetype,
		OriginX:   x,
		OriginY:   y,
	}
	switch kind {
	case KindReverseGhost, KindAngryGhost:
		b.TeleportPending = true
	case KindFirebar:
		b.Radius = 2
		b.SpawnCopies = true
	case KindBoss:
		b.MovementLimit = 24
		b.MovementDirection = -1
		b.JumpTimer = 1
		b.FireTimer = 0.25
	}
	return b
}

var BehaviorComponent = NewComponent[Behavior]()
