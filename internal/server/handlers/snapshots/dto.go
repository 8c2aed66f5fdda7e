package snapshots

// GetParams represents the route parameters of the snapshot endpoint.
type GetParams struct {
	ID string `params:"id" validate:"required,uuid"`
}
