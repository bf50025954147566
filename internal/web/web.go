package web

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	authservice "github.com/safartours/safarserver/auth/service"
	"github.com/safartours/safarserver/auth/users"
	"github.com/safartours/safarserver/internal/config"
	"github.com/safartours/safarserver/internal/service"
	"github.com/safartours/safarserver/internal/web/webpath"
	"github.com/sirupsen/logrus"
)

type Server struct {
	auth    *authservice.Service
	catalog *service.CatalogService
	app     *fiber.App
	cfg     config.Server
	log     *logrus.Entry
}

const userKey = "user"

func New(catalog *service.CatalogService, cfg config.Server, authService *authservice.Service, l *logrus.Logger) *Server {
	server := Server{
		catalog: catalog,
		auth:    authService,
		cfg:     cfg,
		log:     l.WithField("from", "web"),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: server.handleError,
	})
	origin := cfg.CorsOrigin
	if origin == "" {
		origin = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origin,
	}))

	app.Post(webpath.ApiRegister, server.handleRegister)
	app.Post(webpath.ApiLogin, server.handleLogin)
	app.Get(webpath.ApiProfile, server.authenticate, server.handleProfile)

	app.Get(webpath.ApiPackages, server.handleListPackages)
	app.Get(webpath.ApiPackageByID, server.handleGetPackage)
	app.Post(webpath.ApiPackages, server.authenticate, server.requireRole(users.RoleAdmin), server.handleCreatePackage)
	app.Put(webpath.ApiPackageByID, server.authenticate, server.requireRole(users.RoleAdmin), server.handleUpdatePackage)
	app.Delete(webpath.ApiPackageByID, server.authenticate, server.requireRole(users.RoleAdmin), server.handleDeletePackage)

	app.Post(webpath.ApiInquiries, server.handleCreateInquiry)
	app.Get(webpath.ApiInquiries, server.authenticate, server.requireRole(users.RoleAdmin), server.handleListInquiries)
	app.Delete(webpath.ApiInquiryByID, server.authenticate, server.requireRole(users.RoleAdmin), server.handleDeleteInquiry)

	app.Get(webpath.ApiAdminUsers, server.authenticate, server.requireRole(users.RoleAdmin), server.handleListUsers)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(messageResponse{Message: "route not found"})
	})

	server.app = app
	return &server
}

func (s *Server) Serve() error {
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	if s.cfg.CertFile != "" && s.cfg.KeyFile != "" {
		return s.app.ListenTLS(addr, s.cfg.CertFile, s.cfg.KeyFile)
	}
	return s.app.Listen(addr)
}

// authenticate resolves the Authorization header to a live identity and
// stores it in the request context. Missing and invalid tokens are not
// distinguished in the response.
func (s *Server) authenticate(c *fiber.Ctx) error {
	user, err := s.auth.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return s.respondError(c, err)
	}
	c.Context().SetUserValue(userKey, user)
	return c.Next()
}

// requireRole gates a route on one exact role.
func (s *Server) requireRole(role users.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, _ := c.Context().UserValue(userKey).(users.User)
		if err := s.auth.Authorize(user, role); err != nil {
			return s.respondError(c, err)
		}
		return c.Next()
	}
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	req, err := parseRegisterRequest(c)
	if err != nil {
		return s.respondValidation(c, err)
	}
	user, token, err := s.auth.Register(c.Context(), req.Username, req.Email, req.Password, users.Role(req.Role))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse{
		Identity: convertIdentity(user),
		Token:    token,
	})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	req, err := parseLoginRequest(c)
	if err != nil {
		return s.respondValidation(c, err)
	}
	user, token, err := s.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(authResponse{
		Identity: convertIdentity(user),
		Token:    token,
	})
}

func (s *Server) handleProfile(c *fiber.Ctx) error {
	user, _ := c.Context().UserValue(userKey).(users.User)
	// Re-read so a deletion between token verification and this lookup
	// shows up as a missing profile.
	current, err := s.auth.GetUser(c.Context(), user.ID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(convertIdentity(current))
}

func (s *Server) handleListPackages(c *fiber.Ctx) error {
	packages, err := s.catalog.ListPackages(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(convertPackageList(packages))
}

func (s *Server) handleGetPackage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return s.respondError(c, service.ErrPackageNotFound)
	}
	pkg, err := s.catalog.GetPackage(c.Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(convertPackage(pkg))
}

func (s *Server) handleCreatePackage(c *fiber.Ctx) error {
	req, err := parseCreatePackageRequest(c)
	if err != nil {
		return s.respondValidation(c, err)
	}
	pkg, err := s.catalog.CreatePackage(c.Context(), req.convertToDomain())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(convertPackage(pkg))
}

func (s *Server) handleUpdatePackage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return s.respondError(c, service.ErrPackageNotFound)
	}
	req, err := parseUpdatePackageRequest(c)
	if err != nil {
		return s.respondValidation(c, err)
	}
	pkg, err := s.catalog.UpdatePackage(c.Context(), id, req.convertToDomain())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(convertPackage(pkg))
}

func (s *Server) handleDeletePackage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return s.respondError(c, service.ErrPackageNotFound)
	}
	if err := s.catalog.DeletePackage(c.Context(), id); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(messageResponse{Message: "package deleted"})
}

func (s *Server) handleCreateInquiry(c *fiber.Ctx) error {
	req, err := parseCreateInquiryRequest(c)
	if err != nil {
		return s.respondValidation(c, err)
	}
	inq, err := s.catalog.CreateInquiry(c.Context(), req.convertToDomain())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(convertInquiry(inq))
}

func (s *Server) handleListInquiries(c *fiber.Ctx) error {
	inquiries, err := s.catalog.ListInquiries(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(convertInquiryList(inquiries))
}

func (s *Server) handleDeleteInquiry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return s.respondError(c, service.ErrInquiryNotFound)
	}
	if err := s.catalog.DeleteInquiry(c.Context(), id); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(messageResponse{Message: "inquiry deleted"})
}

func (s *Server) handleListUsers(c *fiber.Ctx) error {
	list, err := s.auth.ListUsers(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(convertAdminUsers(list))
}

func (s *Server) respondValidation(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(messageResponse{Message: joinedMessage(err)})
}

// respondError maps service errors to status codes. Internal failures are
// logged and reported as a generic server error, never echoed.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, authservice.ErrNotAuthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(messageResponse{Message: "invalid credentials"})
	case errors.Is(err, authservice.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(messageResponse{Message: "access denied"})
	case errors.Is(err, authservice.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(messageResponse{Message: "username or email already in use"})
	case errors.Is(err, authservice.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(messageResponse{Message: "user not found"})
	case errors.Is(err, service.ErrPackageNotFound),
		errors.Is(err, service.ErrInquiryNotFound):
		return c.Status(fiber.StatusNotFound).JSON(messageResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidPackage):
		return c.Status(fiber.StatusBadRequest).JSON(messageResponse{Message: err.Error()})
	default:
		s.log.WithError(err).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(messageResponse{Message: "server error"})
	}
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(messageResponse{Message: fiberErr.Message})
	}
	s.log.WithError(err).Error("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(messageResponse{Message: "server error"})
}
