package models

import (
	"sokoni-backend/internal/utils"
)

// UserRole identifies the account type and selects the registration rules.
type UserRole string

const (
	RoleVendor   UserRole = "VENDOR"
	RoleEmployee UserRole = "EMPLOYEE"
	RoleDelivery UserRole = "DELIVERY"
	RoleCustomer UserRole = "CUSTOMER"
)

// IsStaff reports whether the role is one of the three operational roles
// that require a profile picture and carry an on-duty flag.
func (r UserRole) IsStaff() bool {
	return r == RoleVendor || r == RoleEmployee || r == RoleDelivery
}

// UserStatus is the account lifecycle state.
type UserStatus string

const (
	UserStatusActive UserStatus = "ACTIVE"
)

// Location is a delivery/service point.
type Location struct {
	Lat     *float64 `json:"lat" validate:"required"`
	Long    *float64 `json:"long" validate:"required"`
	Address string   `json:"address" validate:"required"`
	City    string   `json:"city" validate:"required"`
	State   string   `json:"state" validate:"required"`
	Country string   `json:"country" validate:"required"`
	PinCode *int     `json:"pinCode" validate:"required"`
}

// UserRegistration is the account creation payload. Base rules apply to all
// roles; Validate layers the role-specific requirements on top.
type UserRegistration struct {
	FullName      string    `json:"fullName" validate:"required"`
	ContactNumber string    `json:"contactNumber" validate:"required,min=10,max=10"`
	Email         string    `json:"email" validate:"required,min=5,email"`
	Password      string    `json:"password" validate:"required,min=5,max=255"`
	Role          string    `json:"role" validate:"required"`
	Location      *Location `json:"location,omitempty"`
	ProfilePic    string    `json:"profilePic,omitempty"`
	Wallet        *float64  `json:"wallet,omitempty"`
}

// Validate applies the rule set selected by role. Unrecognized roles fall
// through to the customer rules.
func (r *UserRegistration) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return err
	}

	switch UserRole(r.Role) {
	case RoleVendor, RoleEmployee, RoleDelivery:
		if r.ProfilePic == "" {
			return &utils.ValidationError{Field: "profilePic", Message: "profilePic is required"}
		}
	default:
		if r.Location == nil {
			return &utils.ValidationError{Field: "location", Message: "location is required"}
		}
	}

	if r.Location != nil {
		if err := utils.ValidateStruct(r.Location); err != nil {
			return err
		}
	}

	return nil
}

// AuthRequest is the login payload.
type AuthRequest struct {
	Email    string `json:"email" validate:"required,min=5,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
}

// ForgotPasswordRequest identifies the account to recover.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,min=5,email"`
}

// ResetPasswordRequest rotates a password after verifying the old one.
type ResetPasswordRequest struct {
	ID          string `json:"id" validate:"required"`
	OldPassword string `json:"oldPassword" validate:"required,min=5,max=255"`
	Password    string `json:"password" validate:"required,min=5,max=255"`
}

// UserUpdate is the partial profile update payload. Only non-nil fields are
// merged into the stored document; id is never merged.
type UserUpdate struct {
	ID            string    `json:"id" validate:"required"`
	FullName      *string   `json:"fullName,omitempty"`
	ContactNumber *string   `json:"contactNumber,omitempty" validate:"min=10,max=10"`
	Email         *string   `json:"email,omitempty" validate:"min=5,email"`
	Location      *Location `json:"location,omitempty"`
	Wallet        *float64  `json:"wallet,omitempty"`
	ProfilePic    *string   `json:"profilePic,omitempty"`
	Status        *string   `json:"status,omitempty"`
}

// Validate checks the present fields against the create-time rules.
func (u *UserUpdate) Validate() error {
	if err := utils.ValidateStruct(u); err != nil {
		return err
	}
	if u.Location != nil {
		if err := utils.ValidateStruct(u.Location); err != nil {
			return err
		}
	}
	return nil
}

// User is the stored account document. Password stays internal and is
// stripped before any response.
type User struct {
	ID            string     `json:"id,omitempty"`
	FullName      string     `json:"fullName"`
	ContactNumber string     `json:"contactNumber"`
	Email         string     `json:"email"`
	Password      string     `json:"password,omitempty"`
	Role          UserRole   `json:"role"`
	Location      *Location  `json:"location,omitempty"`
	ProfilePic    string     `json:"profilePic,omitempty"`
	Status        UserStatus `json:"status"`
	OnDuty        *bool      `json:"onDuty,omitempty"`
	Wallet        *float64   `json:"wallet,omitempty"`
	CreatedAt     string     `json:"createdAt,omitempty"`
}

// NewUserDocument builds the stored account from a validated registration.
// Only allow-listed fields are copied; staff roles get the on-duty flag,
// everyone else gets a zero wallet. The caller supplies the password hash.
func NewUserDocument(req *UserRegistration, passwordHash string) map[string]any {
	doc := map[string]any{
		"fullName":      req.FullName,
		"contactNumber": req.ContactNumber,
		"email":         req.Email,
		"password":      passwordHash,
		"role":          req.Role,
		"status":        string(UserStatusActive),
	}

	if req.Location != nil {
		doc["location"] = req.Location
	}

	if UserRole(req.Role).IsStaff() {
		doc["profilePic"] = req.ProfilePic
		doc["onDuty"] = false
	} else {
		doc["wallet"] = 0
	}

	return doc
}
