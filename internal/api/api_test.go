package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"sokoni-backend/database"
	"sokoni-backend/internal/middleware"
	"sokoni-backend/internal/services"
)

type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	store  *database.Store
}

func (s *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("DISABLE_RATE_LIMITING", "true")

	db, err := database.Initialize("file:api_test?mode=memory&cache=shared")
	require.NoError(s.T(), err)
	require.NoError(s.T(), database.Migrate(db))
	s.store = database.NewStore(db)

	authService := services.NewAuthService("test-secret", 3600)
	userService := services.NewUserService(s.store, authService, 4)
	catalogService := services.NewCatalogService(s.store)
	orderService := services.NewOrderService(s.store)

	authHandlers := NewAuthHandlers(userService)
	userHandlers := NewUserHandlers(userService)
	catalogHandlers := NewCatalogHandlers(catalogService)
	orderHandlers := NewOrderHandlers(orderService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	router := gin.New()
	apiGroup := router.Group("/api/v1")
	{
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/register", authHandlers.Register)
			auth.POST("/login", authHandlers.Login)
			auth.POST("/forgot-password", authHandlers.ForgotPassword)
			auth.POST("/reset-password", authHandlers.ResetPassword)
		}

		protected := apiGroup.Group("")
		protected.Use(authMiddleware.AuthRequired())
		{
			protected.GET("/users", userHandlers.GetUsers)
			protected.PUT("/users", userHandlers.UpdateUser)
			protected.POST("/products", catalogHandlers.CreateProduct)
			protected.GET("/products", catalogHandlers.GetProducts)
			protected.PUT("/products", catalogHandlers.UpdateProduct)
			protected.POST("/categories", catalogHandlers.CreateCategory)
			protected.GET("/categories", catalogHandlers.GetCategories)
			protected.DELETE("/categories/:id", catalogHandlers.DeleteCategory)
			protected.POST("/offers", catalogHandlers.CreateOffer)
			protected.GET("/offers", catalogHandlers.GetOffers)
			protected.DELETE("/offers/:id", catalogHandlers.DeleteOffer)
			protected.POST("/orders", orderHandlers.CreateOrder)
			protected.GET("/orders", orderHandlers.GetOrders)
			protected.PUT("/orders", orderHandlers.UpdateOrder)
			protected.PUT("/cart", orderHandlers.UpdateCart)
			protected.PUT("/saved", orderHandlers.UpdateSaved)
		}
	}
	s.router = router
}

func (s *APITestSuite) TearDownSuite() {
	s.store.DB().Close()
}

func (s *APITestSuite) SetupTest() {
	for _, collection := range database.Collections {
		_, err := s.store.DB().Exec("DELETE FROM " + collection)
		require.NoError(s.T(), err)
	}
}

func (s *APITestSuite) request(method, path string, body map[string]any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *APITestSuite) customerPayload(email string) map[string]any {
	return map[string]any{
		"fullName":      "John Customer",
		"contactNumber": "0798765432",
		"email":         email,
		"password":      "secret1",
		"role":          "CUSTOMER",
		"location": map[string]any{
			"lat":     -1.2921,
			"long":    36.8219,
			"address": "Moi Avenue",
			"city":    "Nairobi",
			"state":   "Nairobi",
			"country": "Kenya",
			"pinCode": 100,
		},
	}
}

// registerAndLogin creates a customer and returns its id and a bearer token.
func (s *APITestSuite) registerAndLogin(email string) (string, string) {
	w := s.request("POST", "/api/v1/auth/register", s.customerPayload(email), "")
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	resp := s.decode(w)
	id := resp["data"].(map[string]any)["id"].(string)

	w = s.request("POST", "/api/v1/auth/login", map[string]any{"email": email, "password": "secret1"}, "")
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	resp = s.decode(w)
	token := resp["data"].(map[string]any)["token"].(string)

	return id, token
}

func (s *APITestSuite) TestRegister() {
	w := s.request("POST", "/api/v1/auth/register", s.customerPayload("john@example.com"), "")

	s.Equal(http.StatusCreated, w.Code)
	resp := s.decode(w)
	s.Equal(true, resp["success"])
	s.Equal("User Created Successfully!", resp["message"])
}

func (s *APITestSuite) TestRegisterValidationError() {
	payload := s.customerPayload("john@example.com")
	payload["contactNumber"] = "123"

	w := s.request("POST", "/api/v1/auth/register", payload, "")

	s.Equal(http.StatusBadRequest, w.Code)
	resp := s.decode(w)
	s.Equal(false, resp["success"])
	s.Contains(resp["error"], "contactNumber")
}

func (s *APITestSuite) TestRegisterDuplicateEmail() {
	s.registerAndLogin("john@example.com")

	w := s.request("POST", "/api/v1/auth/register", s.customerPayload("john@example.com"), "")

	s.Equal(http.StatusConflict, w.Code)
	resp := s.decode(w)
	s.Equal("Email Already Registered", resp["error"])
}

func (s *APITestSuite) TestLoginWrongPassword() {
	s.registerAndLogin("john@example.com")

	w := s.request("POST", "/api/v1/auth/login", map[string]any{"email": "john@example.com", "password": "wrong1"}, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	resp := s.decode(w)
	s.Equal("Invalid Password", resp["error"])
}

func (s *APITestSuite) TestLoginUnknownEmail() {
	w := s.request("POST", "/api/v1/auth/login", map[string]any{"email": "ghost@example.com", "password": "secret1"}, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	resp := s.decode(w)
	s.Equal("Invalid Email Address", resp["error"])
}

func (s *APITestSuite) TestResetPasswordFlow() {
	id, _ := s.registerAndLogin("john@example.com")

	w := s.request("POST", "/api/v1/auth/reset-password", map[string]any{
		"id":          id,
		"oldPassword": "secret1",
		"password":    "newpass",
	}, "")
	s.Equal(http.StatusOK, w.Code)

	w = s.request("POST", "/api/v1/auth/login", map[string]any{"email": "john@example.com", "password": "newpass"}, "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestProtectedRouteRequiresToken() {
	w := s.request("GET", "/api/v1/users", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request("GET", "/api/v1/users", nil, "not-a-token")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestGetUsers() {
	_, token := s.registerAndLogin("john@example.com")

	w := s.request("GET", "/api/v1/users", nil, token)

	s.Equal(http.StatusOK, w.Code)
	resp := s.decode(w)
	data := resp["data"].([]any)
	s.Require().Len(data, 1)

	user := data[0].(map[string]any)["data"].(map[string]any)
	s.Equal("John Customer", user["fullName"])
	s.NotContains(user, "password")
}

func (s *APITestSuite) TestUpdateUser() {
	id, token := s.registerAndLogin("john@example.com")

	w := s.request("PUT", "/api/v1/users", map[string]any{"id": id, "fullName": "John Renamed"}, token)
	s.Equal(http.StatusOK, w.Code)

	doc, err := s.store.Get(context.Background(), database.CollectionUsers, id)
	s.Require().NoError(err)
	s.Equal("John Renamed", doc.Data["fullName"])
}

func (s *APITestSuite) productPayload(vid string) map[string]any {
	return map[string]any{
		"name":         "Fresh Milk 2L",
		"manufacturer": "Dairyland",
		"brand":        "Moo",
		"vid":          vid,
		"images":       []string{"https://cdn.example.com/milk.png"},
		"price":        120,
		"offer":        map[string]any{},
		"description":  "Fresh milk",
		"features":     "Pasteurized",
		"life":         "7 days",
		"rating":       4.5,
		"category":     "dairy",
	}
}

func (s *APITestSuite) TestProductLifecycle() {
	vid, token := s.registerAndLogin("vendor@example.com")

	w := s.request("POST", "/api/v1/products", s.productPayload(vid), token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	id := s.decode(w)["data"].(map[string]any)["id"].(string)

	// Duplicate listing rejected
	w = s.request("POST", "/api/v1/products", s.productPayload(vid), token)
	s.Equal(http.StatusConflict, w.Code)

	// Partial update
	w = s.request("PUT", "/api/v1/products", map[string]any{"id": id, "price": 150}, token)
	s.Equal(http.StatusOK, w.Code)

	w = s.request("GET", "/api/v1/products", nil, token)
	s.Require().Equal(http.StatusOK, w.Code)
	data := s.decode(w)["data"].([]any)
	s.Require().Len(data, 1)
	product := data[0].(map[string]any)["data"].(map[string]any)
	s.EqualValues(150, product["price"])
	s.Equal("FRESH MILK 2L", product["code"])
}

func (s *APITestSuite) TestCategoryLifecycle() {
	_, token := s.registerAndLogin("john@example.com")

	w := s.request("POST", "/api/v1/categories", map[string]any{
		"name":        "Dairy",
		"description": "Milk and cheese",
		"image":       "https://cdn.example.com/dairy.png",
	}, token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	id := s.decode(w)["data"].(map[string]any)["id"].(string)

	w = s.request("DELETE", "/api/v1/categories/"+id, nil, token)
	s.Equal(http.StatusOK, w.Code)

	w = s.request("DELETE", "/api/v1/categories/"+id, nil, token)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestOrderLifecycle() {
	cid, token := s.registerAndLogin("john@example.com")

	w := s.request("POST", "/api/v1/orders", map[string]any{
		"customerName": "John Customer",
		"contact":      "0798765432",
		"email":        "john@example.com",
		"cid":          cid,
		"items": []map[string]any{
			{"id": "p1", "qty": 2, "price": 120, "name": "Milk 2L", "unit": "L"},
		},
		"totalCost":     240,
		"offer":         map[string]any{"name": "WELCOME", "id": "offer-1"},
		"discount":      40,
		"finalCost":     200,
		"paymentStatus": "PAID",
		"paymentType":   "MPESA",
		"timeAssigned":  "2026-08-29T10:00:00Z",
	}, token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	id := s.decode(w)["data"].(map[string]any)["id"].(string)

	w = s.request("PUT", "/api/v1/orders", map[string]any{"id": id, "status": "DELIVERED"}, token)
	s.Equal(http.StatusOK, w.Code)

	w = s.request("GET", "/api/v1/orders", nil, token)
	s.Require().Equal(http.StatusOK, w.Code)
	data := s.decode(w)["data"].([]any)
	s.Require().Len(data, 1)
	order := data[0].(map[string]any)["data"].(map[string]any)
	s.Equal("DELIVERED", order["status"])
	s.EqualValues(0, order["orderRating"])
}

func (s *APITestSuite) TestUpdateCart() {
	cid, token := s.registerAndLogin("john@example.com")

	// Registration provisioned the cart
	carts, err := s.store.Query(context.Background(), database.CollectionCarts, []database.Filter{{Field: "cid", Value: cid}}, "", 0)
	s.Require().NoError(err)
	s.Require().Len(carts, 1)

	w := s.request("PUT", "/api/v1/cart", map[string]any{
		"id": carts[0].ID,
		"items": []map[string]any{
			{"id": "p1", "qty": 1, "price": 120, "name": "Milk 2L", "unit": "L"},
		},
		"totalCost": 120,
	}, token)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	doc, err := s.store.Get(context.Background(), database.CollectionCarts, carts[0].ID)
	s.Require().NoError(err)
	s.EqualValues(120, doc.Data["totalCost"])
}

func (s *APITestSuite) TestUpdateSavedMissing() {
	_, token := s.registerAndLogin("john@example.com")

	w := s.request("PUT", "/api/v1/saved", map[string]any{
		"id":    "no-such-id",
		"items": []map[string]any{},
	}, token)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestUpdateHandlersLogPayloads() {
	id, token := s.registerAndLogin("john@example.com")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	w := s.request("PUT", "/api/v1/users", map[string]any{"id": id, "fullName": "John Renamed"}, token)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(buf.String(), "user update "+id)

	carts, err := s.store.Query(context.Background(), database.CollectionCarts, []database.Filter{{Field: "cid", Value: id}}, "", 0)
	s.Require().NoError(err)
	s.Require().Len(carts, 1)

	buf.Reset()
	w = s.request("PUT", "/api/v1/cart", map[string]any{"id": carts[0].ID, "items": []map[string]any{}}, token)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(buf.String(), "cart update "+carts[0].ID)

	buf.Reset()
	w = s.request("PUT", "/api/v1/saved", map[string]any{"id": "no-such-id", "items": []map[string]any{}}, token)
	s.Equal(http.StatusNotFound, w.Code)
	s.Contains(buf.String(), "saved update no-such-id")
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
