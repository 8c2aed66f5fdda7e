package repos

type Config struct {
	// BasePath is the directory whose immediate children are inspected.
	BasePath string
}
