package configs

// Storage selects the persistence backend. "postgres" is the production
// driver; "memory" keeps everything in process and is meant for demos and
// local development.
type Storage struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
}

// UseMemory reports whether the in-memory backend was requested.
func (s Storage) UseMemory() bool {
	return s.Driver == "memory"
}
