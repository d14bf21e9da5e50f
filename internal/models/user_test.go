package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sokoni-backend/internal/utils"
)

func testLocation() *Location {
	lat := -1.2921
	long := 36.8219
	pin := 100
	return &Location{
		Lat:     &lat,
		Long:    &long,
		Address: "Moi Avenue",
		City:    "Nairobi",
		State:   "Nairobi",
		Country: "Kenya",
		PinCode: &pin,
	}
}

func vendorRegistration() *UserRegistration {
	return &UserRegistration{
		FullName:      "Jane Vendor",
		ContactNumber: "0712345678",
		Email:         "jane@example.com",
		Password:      "secret1",
		Role:          "VENDOR",
		ProfilePic:    "https://cdn.example.com/jane.png",
	}
}

func customerRegistration() *UserRegistration {
	return &UserRegistration{
		FullName:      "John Customer",
		ContactNumber: "0798765432",
		Email:         "john@example.com",
		Password:      "secret1",
		Role:          "CUSTOMER",
		Location:      testLocation(),
	}
}

func TestUserRegistrationValidate(t *testing.T) {
	t.Run("vendor requires profilePic", func(t *testing.T) {
		req := vendorRegistration()
		req.ProfilePic = ""

		var vErr *utils.ValidationError
		require.ErrorAs(t, req.Validate(), &vErr)
		assert.Equal(t, "profilePic", vErr.Field)
	})

	t.Run("customer requires location", func(t *testing.T) {
		req := customerRegistration()
		req.Location = nil

		var vErr *utils.ValidationError
		require.ErrorAs(t, req.Validate(), &vErr)
		assert.Equal(t, "location", vErr.Field)
	})

	t.Run("unrecognized role falls back to customer rules", func(t *testing.T) {
		req := customerRegistration()
		req.Role = "SUPERADMIN"
		req.Location = nil

		var vErr *utils.ValidationError
		require.ErrorAs(t, req.Validate(), &vErr)
		assert.Equal(t, "location", vErr.Field)

		req.Location = testLocation()
		assert.NoError(t, req.Validate())
	})

	t.Run("contact number must be ten digits", func(t *testing.T) {
		req := vendorRegistration()
		req.ContactNumber = "07123"

		var vErr *utils.ValidationError
		require.ErrorAs(t, req.Validate(), &vErr)
		assert.Equal(t, "contactNumber", vErr.Field)
	})

	t.Run("equator coordinates accepted", func(t *testing.T) {
		req := customerRegistration()
		zero := 0.0
		req.Location.Lat = &zero
		req.Location.Long = &zero
		assert.NoError(t, req.Validate())
	})

	t.Run("incomplete location rejected", func(t *testing.T) {
		req := customerRegistration()
		req.Location.City = ""

		var vErr *utils.ValidationError
		require.ErrorAs(t, req.Validate(), &vErr)
		assert.Equal(t, "city", vErr.Field)
	})
}

func TestUserUpdateValidate(t *testing.T) {
	t.Run("explicit empty contact rejected", func(t *testing.T) {
		empty := ""
		req := &UserUpdate{ID: "u1", ContactNumber: &empty}

		var vErr *utils.ValidationError
		require.ErrorAs(t, req.Validate(), &vErr)
		assert.Equal(t, "contactNumber", vErr.Field)
	})
}

func TestNewUserDocument(t *testing.T) {
	t.Run("staff document", func(t *testing.T) {
		doc := NewUserDocument(vendorRegistration(), "hashed")

		assert.Equal(t, "Jane Vendor", doc["fullName"])
		assert.Equal(t, "hashed", doc["password"])
		assert.Equal(t, "ACTIVE", doc["status"])
		assert.Equal(t, false, doc["onDuty"])
		assert.Equal(t, "https://cdn.example.com/jane.png", doc["profilePic"])
		assert.NotContains(t, doc, "wallet")
	})

	t.Run("customer document", func(t *testing.T) {
		doc := NewUserDocument(customerRegistration(), "hashed")

		assert.Equal(t, 0, doc["wallet"])
		assert.NotContains(t, doc, "onDuty")
		assert.NotContains(t, doc, "profilePic")
	})

	t.Run("unknown payload fields never pass through", func(t *testing.T) {
		req := customerRegistration()
		wallet := 9999.0
		req.Wallet = &wallet

		doc := NewUserDocument(req, "hashed")
		assert.Equal(t, 0, doc["wallet"])
	})
}
