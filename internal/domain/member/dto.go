package member

// CreateMemberRequest for POST /members
type CreateMemberRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}
