package schema

// LoginInput is the /auth/login request body.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type RegisterInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=6,max=255,eqfield=Password"`
	PhoneNumber     string `json:"phoneNumber" validate:"required,phone"`
	Role            string `json:"role" validate:"required,oneof=buyer seller"`
	FirstName       string `json:"firstName" validate:"required,min=2,max=50"`
	LastName        string `json:"lastName" validate:"required,min=2,max=50"`
	UserAgent       string `json:"userAgent,omitempty" validate:"omitempty"`
}

// VerificationCode is the opaque email-verification token, a 36-char UUID.
type VerificationCode struct {
	Code string `validate:"required,uuid4"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email,min=3,max=255"`
}

type ResetPasswordInput struct {
	Password         string `json:"password" validate:"required,min=6,max=128"`
	VerificationCode string `json:"verificationCode" validate:"required,uuid4"`
}
