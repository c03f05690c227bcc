package request

type SendSignupOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifySignupOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type RegisterFinalizeRequest struct {
	OTP        string `json:"otp" validate:"required,len=6,numeric"`
	GymName    string `json:"gym_name" validate:"required,min=1,max=100"`
	GymSlug    string `json:"gym_slug" validate:"required,slug,max=60"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	OwnerName  string `json:"owner_name" validate:"required"`
	OwnerEmail string `json:"owner_email" validate:"required,email"`
	OwnerPhone string `json:"owner_phone" validate:"required,len=10,numeric"`
	Password   string `json:"password" validate:"required,min=8"`
}

type RegisterCancelRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckSlugRequest struct {
	Slug string `json:"slug" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordSendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type ForgotPasswordResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required"`
}
