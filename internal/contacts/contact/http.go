package contact

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/igorivnaolga/contactbook/internal/platform/middleware"
	requestutil "github.com/igorivnaolga/contactbook/internal/platform/request"
	"github.com/igorivnaolga/contactbook/internal/platform/respond"
	"github.com/igorivnaolga/contactbook/internal/platform/validate"
	"github.com/igorivnaolga/contactbook/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the contact book router. Every endpoint requires an
// authenticated principal; all queries are scoped to that principal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listContacts)
	router.Get("/birthdays", handler.upcomingBirthdays)
	router.Get("/{id}", handler.getContact)
	router.Post("/", handler.createContact)
	router.Patch("/{id}", handler.updateContact)
	router.Delete("/{id}", handler.deleteContact)

	return router
}

// # Request Payloads

type createContactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
	Info      string `json:"info"`
}

type updateContactRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Birthday  *string `json:"birthday"`
	Info      *string `json:"info"`
}

/*
GET /api/contacts.

Description: Lists the authenticated user's contacts with optional
first_name/last_name/email filters and standard pagination.
*/
func (handler *Handler) listContacts(writer http.ResponseWriter, request *http.Request) {
	principal, err := middleware.RequirePrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		FirstName: request.URL.Query().Get(FieldFirstName),
		LastName:  request.URL.Query().Get(FieldLastName),
		Email:     request.URL.Query().Get(FieldEmail),
	}

	entries, total, err := handler.service.List(request.Context(), principal.ID, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/contacts/birthdays.

Description: Lists contacts whose birthday falls within the next seven days,
including windows that wrap past December 31st.
*/
func (handler *Handler) upcomingBirthdays(writer http.ResponseWriter, request *http.Request) {
	principal, err := middleware.RequirePrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.UpcomingBirthdays(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

func (handler *Handler) getContact(writer http.ResponseWriter, request *http.Request) {
	principal, err := middleware.RequirePrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Get(request.Context(), principal.ID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

func (handler *Handler) createContact(writer http.ResponseWriter, request *http.Request) {
	principal, err := middleware.RequirePrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createContactRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).MaxLen(FieldFirstName, input.FirstName, 25).
		Required(FieldLastName, input.LastName).MaxLen(FieldLastName, input.LastName, 25).
		Required(FieldEmail, input.Email).Email(FieldEmail, input.Email).
		Required(FieldPhone, input.Phone).Phone(FieldPhone, input.Phone).
		MaxLen(FieldInfo, input.Info, 500)
	if input.Birthday != "" {
		validator.Date(FieldBirthday, input.Birthday)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := &Contact{
		OwnerID:   principal.ID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Birthday:  parseBirthday(input.Birthday),
		Info:      input.Info,
	}

	if err := handler.service.Create(request.Context(), entry); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

func (handler *Handler) updateContact(writer http.ResponseWriter, request *http.Request) {
	principal, err := middleware.RequirePrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateContactRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.FirstName != nil {
		validator.Required(FieldFirstName, *input.FirstName).MaxLen(FieldFirstName, *input.FirstName, 25)
	}
	if input.LastName != nil {
		validator.Required(FieldLastName, *input.LastName).MaxLen(FieldLastName, *input.LastName, 25)
	}
	if input.Email != nil {
		validator.Email(FieldEmail, *input.Email)
	}
	if input.Phone != nil {
		validator.Phone(FieldPhone, *input.Phone)
	}
	if input.Birthday != nil && *input.Birthday != "" {
		validator.Date(FieldBirthday, *input.Birthday)
	}
	if input.Info != nil {
		validator.MaxLen(FieldInfo, *input.Info, 500)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch := Patch{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Info:      input.Info,
	}
	if input.Birthday != nil {
		patch.Birthday = parseBirthday(*input.Birthday)
	}

	entry, err := handler.service.Update(request.Context(), principal.ID, requestutil.ID(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

func (handler *Handler) deleteContact(writer http.ResponseWriter, request *http.Request) {
	principal, err := middleware.RequirePrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), principal.ID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// parseBirthday converts a validated date string; empty input yields nil.
func parseBirthday(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(validate.DateLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}
