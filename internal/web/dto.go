package web

import (
	"errors"
	"regexp"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safartours/safarserver/auth/users"
	"github.com/safartours/safarserver/internal/domain"
	"github.com/safartours/safarserver/internal/normalize"
)

var errBadBody = errors.New("invalid request body")

// bcrypt rejects passwords longer than 72 bytes.
const maxPasswordLength = 72

var emailRegexp = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var imageExtensions = mapset.NewSet("jpg", "jpeg", "png", "webp", "avif", "gif", "svg")

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func parseRegisterRequest(ctx *fiber.Ctx) (registerRequest, error) {
	var req registerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return registerRequest{}, errBadBody
	}
	req.Username = normalize.Name(req.Username)
	req.Email = normalize.Email(req.Email)

	var err error
	if req.Username == "" {
		err = errors.Join(err, errors.New("username is required"))
	}
	err = errors.Join(err, validateEmail(req.Email))
	if req.Password == "" {
		err = errors.Join(err, errors.New("password is required"))
	}
	if len(req.Password) > maxPasswordLength {
		err = errors.Join(err, errors.New("password must be at most 72 characters"))
	}
	if req.Role != "" && !users.Role(req.Role).Valid() {
		err = errors.Join(err, errors.New("role must be user or admin"))
	}
	if err != nil {
		return registerRequest{}, err
	}
	return req, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func parseLoginRequest(ctx *fiber.Ctx) (loginRequest, error) {
	var req loginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return loginRequest{}, errBadBody
	}
	req.Email = normalize.Email(req.Email)

	var err error
	if req.Email == "" {
		err = errors.Join(err, errors.New("email is required"))
	}
	if req.Password == "" {
		err = errors.Join(err, errors.New("password is required"))
	}
	if len(req.Password) > maxPasswordLength {
		err = errors.Join(err, errors.New("password must be at most 72 characters"))
	}
	if err != nil {
		return loginRequest{}, err
	}
	return req, nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegexp.MatchString(email) {
		return errors.New("email is not a valid address")
	}
	return nil
}

func validateImageURL(raw string) error {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return errors.New("image url must use http or https")
	}
	dot := strings.LastIndex(raw, ".")
	if dot < 0 || !imageExtensions.Contains(strings.ToLower(raw[dot+1:])) {
		return errors.New("image url must point to an image file")
	}
	return nil
}

type createPackageRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	DurationDays int      `json:"durationDays"`
	Itinerary    []string `json:"itinerary"`
	Images       []string `json:"images"`
}

func parseCreatePackageRequest(ctx *fiber.Ctx) (createPackageRequest, error) {
	var req createPackageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return createPackageRequest{}, errBadBody
	}
	req.Title = normalize.Name(req.Title)

	var err error
	if req.Title == "" {
		err = errors.Join(err, errors.New("title is required"))
	}
	if req.Description == "" {
		err = errors.Join(err, errors.New("description is required"))
	}
	if req.Price < 0 {
		err = errors.Join(err, errors.New("price must not be negative"))
	}
	if req.DurationDays < 1 {
		err = errors.Join(err, errors.New("duration must be at least one day"))
	}
	if len(req.Itinerary) == 0 {
		err = errors.Join(err, errors.New("itinerary is required"))
	}
	for _, img := range req.Images {
		err = errors.Join(err, validateImageURL(img))
	}
	if err != nil {
		return createPackageRequest{}, err
	}
	return req, nil
}

func (c createPackageRequest) convertToDomain() domain.Package {
	return domain.Package{
		Title:        c.Title,
		Description:  c.Description,
		Price:        c.Price,
		DurationDays: c.DurationDays,
		Itinerary:    c.Itinerary,
		Images:       c.Images,
	}
}

type updatePackageRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	DurationDays *int     `json:"durationDays"`
	Itinerary    []string `json:"itinerary"`
	Images       []string `json:"images"`
}

func parseUpdatePackageRequest(ctx *fiber.Ctx) (updatePackageRequest, error) {
	var req updatePackageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return updatePackageRequest{}, errBadBody
	}

	var err error
	if req.Title != nil && normalize.Name(*req.Title) == "" {
		err = errors.Join(err, errors.New("title must not be empty"))
	}
	if req.Price != nil && *req.Price < 0 {
		err = errors.Join(err, errors.New("price must not be negative"))
	}
	if req.DurationDays != nil && *req.DurationDays < 1 {
		err = errors.Join(err, errors.New("duration must be at least one day"))
	}
	if req.Itinerary != nil && len(req.Itinerary) == 0 {
		err = errors.Join(err, errors.New("itinerary must not be empty"))
	}
	for _, img := range req.Images {
		err = errors.Join(err, validateImageURL(img))
	}
	if err != nil {
		return updatePackageRequest{}, err
	}
	return req, nil
}

func (c updatePackageRequest) convertToDomain() domain.PackageUpdate {
	return domain.PackageUpdate{
		Title:        c.Title,
		Description:  c.Description,
		Price:        c.Price,
		DurationDays: c.DurationDays,
		Itinerary:    c.Itinerary,
		Images:       c.Images,
	}
}

type createInquiryRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	PackageID string `json:"packageId"`
}

func parseCreateInquiryRequest(ctx *fiber.Ctx) (createInquiryRequest, error) {
	var req createInquiryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return createInquiryRequest{}, errBadBody
	}
	req.Name = normalize.Name(req.Name)
	req.Email = normalize.Email(req.Email)
	req.Phone = normalize.Name(req.Phone)
	req.Message = normalize.Name(req.Message)

	var err error
	if len(req.Name) < 2 {
		err = errors.Join(err, errors.New("name must be at least 2 characters"))
	}
	err = errors.Join(err, validateEmail(req.Email))
	if len(req.Phone) < 6 {
		err = errors.Join(err, errors.New("phone must be at least 6 characters"))
	}
	if len(req.Message) < 5 {
		err = errors.Join(err, errors.New("message must be at least 5 characters"))
	}
	if _, parseErr := uuid.Parse(req.PackageID); parseErr != nil {
		err = errors.Join(err, errors.New("packageId is required"))
	}
	if err != nil {
		return createInquiryRequest{}, err
	}
	return req, nil
}

func (c createInquiryRequest) convertToDomain() domain.Inquiry {
	return domain.Inquiry{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		PackageID: uuid.MustParse(c.PackageID),
	}
}

type identityResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func convertIdentity(user users.User) identityResponse {
	return identityResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}
}

type authResponse struct {
	Identity identityResponse `json:"identity"`
	Token    string           `json:"token"`
}

type adminUserResponse struct {
	identityResponse
	CreatedAt time.Time `json:"createdAt"`
}

func convertAdminUsers(list []users.User) []adminUserResponse {
	converted := make([]adminUserResponse, 0, len(list))
	for _, user := range list {
		converted = append(converted, adminUserResponse{
			identityResponse: convertIdentity(user),
			CreatedAt:        user.RegisteredAt,
		})
	}
	return converted
}

type packageResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	DurationDays int       `json:"durationDays"`
	Itinerary    []string  `json:"itinerary"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func convertPackage(pkg domain.Package) packageResponse {
	return packageResponse{
		ID:           pkg.ID.String(),
		Title:        pkg.Title,
		Description:  pkg.Description,
		Price:        pkg.Price,
		DurationDays: pkg.DurationDays,
		Itinerary:    pkg.Itinerary,
		Images:       pkg.Images,
		CreatedAt:    pkg.CreatedAt,
		UpdatedAt:    pkg.UpdatedAt,
	}
}

func convertPackageList(packages []domain.Package) []packageResponse {
	converted := make([]packageResponse, 0, len(packages))
	for i := range packages {
		converted = append(converted, convertPackage(packages[i]))
	}
	return converted
}

type inquiryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Message      string    `json:"message"`
	PackageID    string    `json:"packageId"`
	PackageTitle string    `json:"packageTitle"`
	CreatedAt    time.Time `json:"createdAt"`
}

func convertInquiry(inq domain.Inquiry) inquiryResponse {
	return inquiryResponse{
		ID:           inq.ID.String(),
		Name:         inq.Name,
		Email:        inq.Email,
		Phone:        inq.Phone,
		Message:      inq.Message,
		PackageID:    inq.PackageID.String(),
		PackageTitle: inq.PackageTitle,
		CreatedAt:    inq.CreatedAt,
	}
}

func convertInquiryList(inquiries []domain.Inquiry) []inquiryResponse {
	converted := make([]inquiryResponse, 0, len(inquiries))
	for i := range inquiries {
		converted = append(converted, convertInquiry(inquiries[i]))
	}
	return converted
}

type messageResponse struct {
	Message string `json:"message"`
}

type multierr interface {
	Unwrap() []error
}

// joinedMessage flattens errors.Join trees into one client-facing string.
func joinedMessage(err error) string {
	var messages []string
	for _, e := range unwrap(err) {
		messages = append(messages, e.Error())
	}
	return strings.Join(messages, "; ")
}

func unwrap(err error) []error {
	var merr multierr
	if errors.As(err, &merr) {
		var errs []error
		for _, e := range merr.Unwrap() {
			errs = append(errs, unwrap(e)...)
		}
		return errs
	}
	return []error{err}
}
