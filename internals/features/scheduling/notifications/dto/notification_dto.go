package dto

type MarkReadRequest struct {
	Read *bool `json:"read"`
}

// ActRequest carries only the verdict; the target session is read from the
// notification's own payload.
type ActRequest struct {
	Action string `json:"action"`
}
