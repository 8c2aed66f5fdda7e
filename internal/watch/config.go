package watch

type Config struct {
	Enabled bool
}
