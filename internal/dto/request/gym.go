package request

type UpdateGymRequest struct {
	GymName    string `json:"gym_name" validate:"required,min=1,max=100"`
	GymSlug    string `json:"gym_slug" validate:"required,slug,max=60"`
	OwnerName  string `json:"owner_name" validate:"required"`
	OwnerEmail string `json:"owner_email" validate:"required,email"`
	OwnerPhone string `json:"owner_phone" validate:"required,len=10,numeric"`
}
