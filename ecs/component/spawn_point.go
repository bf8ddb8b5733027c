package component

// SpawnPoint is an enemy descriptor that has not been activated yet.
type SpawnPoint struct {
	Name string
}

var SpawnPointComponent = NewComponent[SpawnPoint]()
