package config

// StageConfig is the root config for sandbox stage JSON files.
// Positions are in pixels from the top-left corner; one tile is one meter.
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        StageSizeConfig              `json:"size"`
	Background  BackgroundConfig             `json:"background"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
	Triggers    []TriggerConfig              `json:"triggers"`
}

type StageSizeConfig struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`
}

type BackgroundConfig struct {
	Color string `json:"color"`
}

type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

// Tile types understood by the sandbox world
const (
	TileEmpty  = "empty"
	TileWall   = "wall"
	TileMoving = "moving"
	TileWater  = "water"
	TileHot    = "hot"
	TileCold   = "cold"
	TileClimb  = "climb"
	TileCut    = "cut"
	TileSmash  = "smash"
)

type TileMappingConfig struct {
	Type  string `json:"type"`
	Solid bool   `json:"solid"`
}

// Trigger types understood by the sandbox world
const (
	TriggerTeleport = "teleport"
	TriggerUpgrade  = "upgrade"
)

// TriggerConfig is a rectangle that fires once per entry.
// Teleport triggers move the character to Destination; upgrade triggers
// unlock Upgrade and disappear.
type TriggerConfig struct {
	Type        string          `json:"type"`
	Rect        RectConfig      `json:"rect"`
	Destination *PositionConfig `json:"destination,omitempty"`
	Upgrade     string          `json:"upgrade,omitempty"`
}

type RectConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}
