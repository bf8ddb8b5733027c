// Package tiles holds the block palette and the immutable per-level tile grid.
package tiles

// Size is the edge length of one tile in world units.
const Size = 16

// Block indexes the fixed palette. Level rows encode it as one base-36 digit.
type Block uint8

const (
	None Block = iota
	Grass
	Rocks
	Bricks
	Stone
	GrassPlatformLeft
	GrassPlatform
	GrassPlatformRight
	BushLeft
	Bush
	BushRight
	MushroomLeft
	Mushroom
	MushroomRight
	MushroomStem
	CastleBricks
	CastleStone
	CastlePlatformLeft
	CastlePlatform
	CastlePlatformRight
	Chains
	CloudLeft
	Cloud
	CloudRight
	Bridge
	BridgeRails
	TreeTop
	TreeMiddle
	TreeTrunk
	Window
	CastleWindow
	Lamp
	LampPost
	CaveRocks
	CaveBricks
	CaveStone

	blockCount
)

var blockNames = [blockCount]string{
	"",
	"grass",
	"rocks",
	"bricks",
	"stone",
	"grassPlatformLeft",
	"grassPlatform",
	"grassPlatformRight",
	"bushLeft",
	"bush",
	"bushRight",
	"mushroomLeft",
	"mushroom",
	"mushroomRight",
	"mushroomStem",
	"castleBricks",
	"castleStone",
	"castlePlatformLeft",
	"castlePlatform",
	"castlePlatformRight",
	"chains",
	"cloudLeft",
	"cloud",
	"cloudRight",
	"bridge",
	"bridgeRails",
	"treeTop",
	"treeMiddle",
	"treeTrunk",
	"window",
	"castleWindow",
	"lamp",
	"lampPost",
	"caveRocks",
	"caveBricks",
	"caveStone",
}

type class uint8

const (
	open class = iota
	solid
	semiSolid
)

var classes = [blockCount]class{
	Grass:               solid,
	Rocks:               solid,
	Bricks:              solid,
	Stone:               solid,
	CastleBricks:        solid,
	CastleStone:         solid,
	Window:              solid,
	CastleWindow:        solid,
	CaveRocks:           solid,
	CaveBricks:          solid,
	CaveStone:           solid,
	GrassPlatformLeft:   semiSolid,
	GrassPlatform:       semiSolid,
	GrassPlatformRight:  semiSolid,
	MushroomLeft:        semiSolid,
	Mushroom:            semiSolid,
	MushroomRight:       semiSolid,
	CastlePlatformLeft:  semiSolid,
	CastlePlatform:      semiSolid,
	CastlePlatformRight: semiSolid,
	CloudLeft:           semiSolid,
	Cloud:               semiSolid,
	CloudRight:          semiSolid,
	Bridge:              semiSolid,
}

// Name returns the sprite name of the block, empty for None.
func (b Block) Name() string {
	if b >= blockCount {
		return ""
	}
	return blockNames[b]
}

func (b Block) String() string {
	if b == None {
		return "none"
	}
	return b.Name()
}

// Code returns the base-36 digit used for b in level rows.
func (b Block) Code() byte {
	if b < 10 {
		return '0' + byte(b)
	}
	return 'a' + byte(b-10)
}

func IsSolid(b Block) bool {
	return b < blockCount && classes[b] == solid
}

func IsSemiSolid(b Block) bool {
	return b < blockCount && classes[b] == semiSolid
}

// Palette lists every block in code order, None included.
func Palette() []Block {
	out := make([]Block, 0, blockCount)
	for b := None; b < blockCount; b++ {
		out = append(out, b)
	}
	return out
}

// ParseCode decodes one base-36 digit. Anything else is None.
func ParseCode(c byte) Block {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return None
	}
	if v >= int(blockCount) {
		return None
	}
	return Block(v)
}
