package request

type CreateMemberRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	Phone           string `json:"phone" validate:"required,min=10,max=15"`
	MembershipStart string `json:"membership_start" validate:"required"`
	MembershipEnd   string `json:"membership_end" validate:"required"`
}

// UpdateMemberRequest applies only the fields present in the body.
type UpdateMemberRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	MembershipStart *string `json:"membership_start,omitempty"`
	MembershipEnd   *string `json:"membership_end,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

type RenewMemberRequest struct {
	Months int `json:"months" validate:"required,gte=1,lte=24"`
}

type ListMembersQuery struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}
