package web

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	authservice "github.com/safartours/safarserver/auth/service"
	authstorage "github.com/safartours/safarserver/auth/storage"
	"github.com/safartours/safarserver/auth/users"
	"github.com/safartours/safarserver/internal/config"
	"github.com/safartours/safarserver/internal/domain"
	"github.com/safartours/safarserver/internal/service"
	"github.com/safartours/safarserver/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type memAuthStorage struct {
	users   map[uuid.UUID]users.User
	secrets map[string]string
}

var _ authstorage.AuthStorage = (*memAuthStorage)(nil)

func newMemAuthStorage() *memAuthStorage {
	return &memAuthStorage{
		users:   make(map[uuid.UUID]users.User),
		secrets: make(map[string]string),
	}
}

func (m *memAuthStorage) CreateUser(_ context.Context, user users.User, passwordHash string) error {
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return authstorage.ErrUserExists
		}
	}
	m.users[user.ID] = user
	m.secrets[user.Email] = passwordHash
	return nil
}

func (m *memAuthStorage) GetUser(_ context.Context, id uuid.UUID) (users.User, error) {
	user, ok := m.users[id]
	if !ok {
		return users.User{}, sql.ErrNoRows
	}
	return user, nil
}

func (m *memAuthStorage) GetUserByEmail(_ context.Context, email string) (users.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, sql.ErrNoRows
}

func (m *memAuthStorage) GetUserSecret(_ context.Context, email string) (string, error) {
	secret, ok := m.secrets[email]
	if !ok {
		return "", sql.ErrNoRows
	}
	return secret, nil
}

func (m *memAuthStorage) ListUsers(_ context.Context) ([]users.User, error) {
	list := make([]users.User, 0, len(m.users))
	for _, u := range m.users {
		list = append(list, u)
	}
	return list, nil
}

type memCatalogStorage struct {
	packages  map[uuid.UUID]domain.Package
	inquiries map[uuid.UUID]domain.Inquiry
}

func newMemCatalogStorage() *memCatalogStorage {
	return &memCatalogStorage{
		packages:  make(map[uuid.UUID]domain.Package),
		inquiries: make(map[uuid.UUID]domain.Inquiry),
	}
}

func (m *memCatalogStorage) ListPackages(_ context.Context) ([]domain.Package, error) {
	list := make([]domain.Package, 0, len(m.packages))
	for _, p := range m.packages {
		list = append(list, p)
	}
	return list, nil
}

func (m *memCatalogStorage) Get(_ context.Context, id uuid.UUID) (domain.Package, error) {
	pkg, ok := m.packages[id]
	if !ok {
		return domain.Package{}, storage.ErrNotFound
	}
	return pkg, nil
}

func (m *memCatalogStorage) Add(_ context.Context, pkg domain.Package) (domain.Package, error) {
	m.packages[pkg.ID] = pkg
	return pkg, nil
}

func (m *memCatalogStorage) Update(_ context.Context, pkg domain.Package) (domain.Package, error) {
	if _, ok := m.packages[pkg.ID]; !ok {
		return domain.Package{}, storage.ErrNotFound
	}
	m.packages[pkg.ID] = pkg
	return pkg, nil
}

func (m *memCatalogStorage) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.packages[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.packages, id)
	return nil
}

func (m *memCatalogStorage) ListInquiries(_ context.Context) ([]domain.Inquiry, error) {
	list := make([]domain.Inquiry, 0, len(m.inquiries))
	for _, inq := range m.inquiries {
		list = append(list, inq)
	}
	return list, nil
}

func (m *memCatalogStorage) AddInquiry(_ context.Context, inq domain.Inquiry) (domain.Inquiry, error) {
	m.inquiries[inq.ID] = inq
	return inq, nil
}

func (m *memCatalogStorage) DeleteInquiry(_ context.Context, id uuid.UUID) error {
	if _, ok := m.inquiries[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.inquiries, id)
	return nil
}

type WebSuite struct {
	suite.Suite
	server    *Server
	authStore *memAuthStorage
}

func TestWebSuite(t *testing.T) {
	suite.Run(t, &WebSuite{})
}

func (s *WebSuite) SetupTest() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	s.authStore = newMemAuthStorage()
	authService, err := authservice.New(context.Background(), authservice.Config{
		Token: "test-secret",
	}, s.authStore, log)
	s.Require().NoError(err)

	store := newMemCatalogStorage()
	catalog := service.New(store, store, log)

	s.server = New(catalog, config.Server{}, authService, log)
}

func (s *WebSuite) request(method, path, token string, body any) (int, map[string]any) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.server.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		s.Require().NoError(json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func (s *WebSuite) requestList(method, path, token string) (int, []map[string]any) {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.server.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var decoded []map[string]any
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if resp.StatusCode == http.StatusOK {
		s.Require().NoError(json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func (s *WebSuite) register(username, email, role string) (string, string) {
	code, body := s.request(http.MethodPost, "/api/users/register", "", map[string]any{
		"username": username,
		"email":    email,
		"password": "pass1234",
		"role":     role,
	})
	s.Require().Equal(http.StatusCreated, code)
	identity := body["identity"].(map[string]any)
	return "Bearer " + body["token"].(string), identity["id"].(string)
}

func (s *WebSuite) TestRegisterAndLogin() {
	code, body := s.request(http.MethodPost, "/api/users/register", "", map[string]any{
		"username": "ali",
		"email":    "Ali@Example.com",
		"password": "pass1234",
	})
	s.Equal(http.StatusCreated, code)
	s.NotEmpty(body["token"])
	identity := body["identity"].(map[string]any)
	s.Equal("ali", identity["username"])
	s.Equal("ali@example.com", identity["email"], "email must be stored lowercase")
	s.Equal("user", identity["role"], "role must default to user")
	s.NotContains(identity, "passwordHash")

	code, body = s.request(http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "ali@example.com",
		"password": "pass1234",
	})
	s.Equal(http.StatusOK, code)
	s.NotEmpty(body["token"])

	code, body = s.request(http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "ali@example.com",
		"password": "wrong",
	})
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("invalid credentials", body["message"])

	code, body = s.request(http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "ghost@example.com",
		"password": "pass1234",
	})
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("invalid credentials", body["message"], "unknown email must look like a wrong password")
}

func (s *WebSuite) TestRegisterDuplicate() {
	s.register("ali", "ali@example.com", "")

	code, _ := s.request(http.MethodPost, "/api/users/register", "", map[string]any{
		"username": "other",
		"email":    "ali@example.com",
		"password": "pass1234",
	})
	s.Equal(http.StatusConflict, code)

	code, _ = s.request(http.MethodPost, "/api/users/register", "", map[string]any{
		"username": "ali",
		"email":    "other@example.com",
		"password": "pass1234",
	})
	s.Equal(http.StatusConflict, code)
}

func (s *WebSuite) TestRegisterValidation() {
	code, body := s.request(http.MethodPost, "/api/users/register", "", map[string]any{
		"username": "",
		"email":    "not-an-email",
		"password": "",
	})
	s.Equal(http.StatusBadRequest, code)
	s.Contains(body["message"], "username is required")
	s.Contains(body["message"], "email is not a valid address")
	s.Contains(body["message"], "password is required")
}

func (s *WebSuite) TestPasswordTooLong() {
	long := strings.Repeat("a", 100)
	code, body := s.request(http.MethodPost, "/api/users/register", "", map[string]any{
		"username": "ali",
		"email":    "ali@example.com",
		"password": long,
	})
	s.Equal(http.StatusBadRequest, code, "an over-long password is malformed input, not a server fault")
	s.Contains(body["message"], "password must be at most 72 characters")

	code, body = s.request(http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "ali@example.com",
		"password": long,
	})
	s.Equal(http.StatusBadRequest, code)
	s.Contains(body["message"], "password must be at most 72 characters")
}

func (s *WebSuite) TestExpiredToken() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	// Same server shape, but every token it issues is already expired.
	s.authStore = newMemAuthStorage()
	authService, err := authservice.New(context.Background(), authservice.Config{
		Token:      "test-secret",
		Expiration: "-1h",
	}, s.authStore, log)
	s.Require().NoError(err)
	store := newMemCatalogStorage()
	s.server = New(service.New(store, store, log), config.Server{}, authService, log)

	token, _ := s.register("ali", "ali@example.com", "")

	code, body := s.request(http.MethodGet, "/api/users/profile", token, nil)
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("invalid credentials", body["message"])
}

func (s *WebSuite) TestProfile() {
	token, id := s.register("ali", "ali@example.com", "")

	code, body := s.request(http.MethodGet, "/api/users/profile", token, nil)
	s.Equal(http.StatusOK, code)
	s.Equal(id, body["id"])
	s.Equal("ali", body["username"])

	code, _ = s.request(http.MethodGet, "/api/users/profile", "", nil)
	s.Equal(http.StatusUnauthorized, code)

	code, _ = s.request(http.MethodGet, "/api/users/profile", "Bearer garbage", nil)
	s.Equal(http.StatusUnauthorized, code)

	code, _ = s.request(http.MethodGet, "/api/users/profile", "Token something", nil)
	s.Equal(http.StatusUnauthorized, code, "non-bearer schemes are rejected")
}

func (s *WebSuite) TestProfileVanishedIdentity() {
	token, id := s.register("ali", "ali@example.com", "")
	delete(s.authStore.users, uuid.MustParse(id))

	code, _ := s.request(http.MethodGet, "/api/users/profile", token, nil)
	s.Equal(http.StatusUnauthorized, code, "a token for a deleted identity must not authenticate")
}

func (s *WebSuite) TestRoleGate() {
	adminToken, _ := s.register("boss", "boss@example.com", "admin")
	userToken, _ := s.register("ali", "ali@example.com", "")

	pkg := map[string]any{
		"title":        "Ramadan Umrah",
		"description":  "Ten nights in Makkah and Madinah",
		"price":        2500,
		"durationDays": 10,
		"itinerary":    []string{"Arrive Jeddah", "Umrah", "Ziyarat in Madinah"},
	}

	code, _ := s.request(http.MethodPost, "/api/packages", "", pkg)
	s.Equal(http.StatusUnauthorized, code)

	code, _ = s.request(http.MethodPost, "/api/packages", userToken, pkg)
	s.Equal(http.StatusForbidden, code)

	code, body := s.request(http.MethodPost, "/api/packages", adminToken, pkg)
	s.Equal(http.StatusCreated, code)
	s.Equal("Ramadan Umrah", body["title"])

	code, _ = s.requestList(http.MethodGet, "/api/admin/users", userToken)
	s.Equal(http.StatusForbidden, code)

	code, list := s.requestList(http.MethodGet, "/api/admin/users", adminToken)
	s.Equal(http.StatusOK, code)
	s.Len(list, 2)
}

func (s *WebSuite) TestPackageLifecycle() {
	adminToken, _ := s.register("boss", "boss@example.com", "admin")

	code, created := s.request(http.MethodPost, "/api/packages", adminToken, map[string]any{
		"title":        "Hajj 2027",
		"description":  "Full Hajj program with guidance",
		"price":        8000,
		"durationDays": 21,
		"itinerary":    []string{"Makkah", "Mina", "Arafat", "Muzdalifah"},
		"images":       []string{"https://cdn.example.com/kaaba.jpg"},
	})
	s.Require().Equal(http.StatusCreated, code)
	id := created["id"].(string)

	// public reads need no token
	code, list := s.requestList(http.MethodGet, "/api/packages", "")
	s.Equal(http.StatusOK, code)
	s.Len(list, 1)

	code, got := s.request(http.MethodGet, "/api/packages/"+id, "", nil)
	s.Equal(http.StatusOK, code)
	s.Equal("Hajj 2027", got["title"])

	code, updated := s.request(http.MethodPut, "/api/packages/"+id, adminToken, map[string]any{
		"price": 8500,
	})
	s.Equal(http.StatusOK, code)
	s.Equal(8500.0, updated["price"])
	s.Equal("Hajj 2027", updated["title"], "partial update must keep other fields")

	code, _ = s.request(http.MethodDelete, "/api/packages/"+id, adminToken, nil)
	s.Equal(http.StatusOK, code)

	code, _ = s.request(http.MethodGet, "/api/packages/"+id, "", nil)
	s.Equal(http.StatusNotFound, code)

	code, _ = s.request(http.MethodGet, "/api/packages/not-a-uuid", "", nil)
	s.Equal(http.StatusNotFound, code)
}

func (s *WebSuite) TestInquiryFlow() {
	adminToken, _ := s.register("boss", "boss@example.com", "admin")

	code, created := s.request(http.MethodPost, "/api/packages", adminToken, map[string]any{
		"title":        "Ramadan Umrah",
		"description":  "Ten nights",
		"price":        2500,
		"durationDays": 10,
		"itinerary":    []string{"Makkah"},
	})
	s.Require().Equal(http.StatusCreated, code)
	pkgID := created["id"].(string)

	// anyone can send an inquiry
	code, inq := s.request(http.MethodPost, "/api/inquiries", "", map[string]any{
		"name":      "Ali Hassan",
		"email":     "ali@example.com",
		"phone":     "+966500000000",
		"message":   "Looking for a family package",
		"packageId": pkgID,
	})
	s.Equal(http.StatusCreated, code)
	s.Equal("Ramadan Umrah", inq["packageTitle"])
	inqID := inq["id"].(string)

	code, body := s.request(http.MethodPost, "/api/inquiries", "", map[string]any{
		"name":      "Ali Hassan",
		"email":     "ali@example.com",
		"phone":     "+966500000000",
		"message":   "Looking for a family package",
		"packageId": uuid.NewString(),
	})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("invalid package selected", body["message"])

	code, _ = s.requestList(http.MethodGet, "/api/inquiries", "")
	s.Equal(http.StatusUnauthorized, code)

	code, list := s.requestList(http.MethodGet, "/api/inquiries", adminToken)
	s.Equal(http.StatusOK, code)
	s.Len(list, 1)

	code, _ = s.request(http.MethodDelete, "/api/inquiries/"+inqID, adminToken, nil)
	s.Equal(http.StatusOK, code)

	code, _ = s.request(http.MethodDelete, "/api/inquiries/"+inqID, adminToken, nil)
	s.Equal(http.StatusNotFound, code)
}

func (s *WebSuite) TestUnknownRoute() {
	code, body := s.request(http.MethodGet, "/api/nope", "", nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal("route not found", body["message"])
}
