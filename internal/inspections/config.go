package inspections

type Config struct {
	// MaxPerRepository caps the journal of each repository, 0 keeps everything.
	MaxPerRepository int
}
