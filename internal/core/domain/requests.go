package domain

import (
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/zerr"
)

// MinimumInvestorAge is the youngest age allowed to open an account.
const MinimumInvestorAge = 18

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(req any) error {
	if err := validate.Struct(req); err != nil {
		return zerr.Wrap(ErrInvalidRequest, err.Error())
	}
	return nil
}

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Validate checks the request fields.
func (r *LoginRequest) Validate() error { return validateStruct(r) }

// SignupRequest creates an account. An OTP is sent to Email on success.
type SignupRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=10,max=15"`
	Password    string `json:"password" validate:"required,min=8"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
}

// Validate checks the request fields and the applicant's age.
func (r *SignupRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	dob, err := ParseDate(r.DateOfBirth)
	if err != nil {
		return zerr.Wrap(ErrInvalidRequest, "dateOfBirth: "+err.Error())
	}
	if AgeOn(dob, time.Now()) < MinimumInvestorAge {
		return zerr.Wrap(ErrInvalidRequest, "applicant must be at least 18 years old")
	}
	return nil
}

// VerifyOTPRequest confirms the one-time code sent after signup.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"otp" validate:"required,len=6,numeric"`
}

// Validate checks the request fields.
func (r *VerifyOTPRequest) Validate() error { return validateStruct(r) }

// ResendOTPRequest asks for a fresh one-time code.
type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Validate checks the request fields.
func (r *ResendOTPRequest) Validate() error { return validateStruct(r) }

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Validate checks the request fields.
func (r *RefreshRequest) Validate() error { return validateStruct(r) }

// InvestRequest subscribes to an investment product.
type InvestRequest struct {
	InvestmentID  string  `json:"investmentId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=wallet card bank_transfer"`
}

// Validate checks the request fields.
func (r *InvestRequest) Validate() error { return validateStruct(r) }

// WithdrawRequest redeems all or part of a holding.
type WithdrawRequest struct {
	HoldingID string  `json:"holdingId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// Validate checks the request fields.
func (r *WithdrawRequest) Validate() error { return validateStruct(r) }

// UpdateProfileRequest changes profile fields. Empty fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty" validate:"omitempty,min=1,max=64"`
	LastName  string `json:"lastName,omitempty" validate:"omitempty,min=1,max=64"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}

// Validate checks the request fields.
func (r *UpdateProfileRequest) Validate() error { return validateStruct(r) }

// UpdateSettingsRequest changes account preferences. Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	PushNotifications  *bool  `json:"pushNotifications,omitempty"`
	EmailNotifications *bool  `json:"emailNotifications,omitempty"`
	Biometrics         *bool  `json:"biometrics,omitempty"`
	Currency           string `json:"currency,omitempty" validate:"omitempty,iso4217"`
}

// Validate checks the request fields.
func (r *UpdateSettingsRequest) Validate() error { return validateStruct(r) }

// BVNRequest submits a Bank Verification Number for KYC.
type BVNRequest struct {
	BVN string `json:"bvn" validate:"required,len=11,numeric"`
}

// Validate checks the request fields.
func (r *BVNRequest) Validate() error { return validateStruct(r) }

// Upload kinds accepted by the verification endpoints.
const (
	UploadDocument = "document"
	UploadSelfie   = "selfie"
)

// UploadRequest is a single-file multipart submission.
type UploadRequest struct {
	Kind        string    `validate:"required,oneof=document selfie"`
	Filename    string    `validate:"required"`
	ContentType string    `validate:"required,oneof=image/jpeg image/png application/pdf"`
	Content     io.Reader `validate:"-"`
}

// Validate checks the request fields.
func (r *UploadRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.Content == nil {
		return zerr.Wrap(ErrInvalidRequest, "upload content is required")
	}
	if r.Kind == UploadSelfie && r.ContentType == "application/pdf" {
		return zerr.Wrap(ErrInvalidRequest, "selfie must be an image")
	}
	return nil
}
