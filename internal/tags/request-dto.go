package tags

// tag create/update payload
type TagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}
