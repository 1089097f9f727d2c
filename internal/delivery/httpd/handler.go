package httpd

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/service"
	"github.com/RubachokBoss/tutoring-center/pkg/utils"
)

type Handler struct {
	assignmentService  service.AssignmentService
	submissionService  service.SubmissionService
	lateRequestService service.LateRequestService
	moderationService  service.ModerationService
	queryService       service.QueryService
	userService        service.UserService
	attachmentService  service.AttachmentService
	resolver           CallerResolver
	health             HealthChecker
	validator          *Validator
	maxUploadSize      int64
	logger             zerolog.Logger
}

// HealthChecker is pinged by the health endpoint.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Options struct {
	// Attachments may be nil when object storage is disabled.
	Attachments   service.AttachmentService
	Resolver      CallerResolver
	Health        HealthChecker
	Now           func() time.Time
	MaxUploadSize int64
}

func NewHandler(services *service.Services, opts Options, logger zerolog.Logger) (*Handler, error) {
	if opts.Now == nil {
		return nil, errors.New("clock is required")
	}

	validator, err := NewValidator(opts.Now)
	if err != nil {
		return nil, err
	}

	return &Handler{
		assignmentService:  services.Assignments,
		submissionService:  services.Submissions,
		lateRequestService: services.LateRequests,
		moderationService:  services.Moderation,
		queryService:       services.Queries,
		userService:        services.Users,
		attachmentService:  opts.Attachments,
		resolver:           opts.Resolver,
		health:             opts.Health,
		validator:          validator,
		maxUploadSize:      opts.MaxUploadSize,
		logger:             logger,
	}, nil
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Use(h.authenticate)

		api.Route("/assignments", func(r chi.Router) {
			r.Post("/", h.CreateAssignment)
			r.Get("/", h.ListAllAssignments)
			r.Get("/class/{classGrade}", h.ListAssignmentsByClass)
			r.Get("/{id}", h.GetAssignment)
			r.Delete("/{id}", h.DeleteAssignment)
			r.Get("/{id}/submissions", h.ListSubmissionsByAssignment)
			r.Get("/{id}/my-submission", h.GetMySubmission)
			r.Get("/{id}/late-approval", h.IsLateApproved)
			r.Get("/{id}/my-late-request", h.GetMyLateRequest)
		})

		api.Route("/submissions", func(r chi.Router) {
			r.Post("/", h.SubmitAssignment)
			r.Get("/mine", h.ListMySubmissions)
			r.Post("/{id}/grade", h.GradeSubmission)
		})

		api.Route("/late-requests", func(r chi.Router) {
			r.Post("/", h.CreateLateRequest)
			r.Get("/", h.ListAllLateRequests)
			r.Get("/pending", h.ListPendingLateRequests)
			r.Post("/{id}/respond", h.RespondLateRequest)
		})

		api.Route("/moderation/blocks", func(r chi.Router) {
			r.Post("/", h.BlockStudent)
			r.Get("/{studentId}", h.GetBlockStatus)
			r.Delete("/{studentId}", h.UnblockStudent)
		})

		api.Route("/queries", func(r chi.Router) {
			r.Post("/", h.CreateQuery)
			r.Get("/class/{classGrade}", h.ListQueriesByClass)
			r.Delete("/{id}", h.DeleteQuery)
		})

		api.Route("/users", func(r chi.Router) {
			r.Post("/", h.CreateUser)
			r.Get("/{id}", h.GetUser)
		})

		api.Post("/attachments", h.UploadAttachment)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, code, database := "healthy", http.StatusOK, "up"
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("Database health check failed")
			status, code, database = "unhealthy", http.StatusServiceUnavailable, "down"
		}
	}

	response := map[string]interface{}{
		"status":    status,
		"service":   "tutoring-center",
		"database":  database,
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, code, response)
}

// decode reads the JSON body into dst and validates it.
func (h *Handler) decode(r *http.Request, dst interface{}) error {
	if err := utils.ReadJSON(r, dst); err != nil {
		return &errs.Error{Kind: errs.KindInvalidArgument, Message: "invalid request body", Err: err}
	}
	return h.validator.Struct(dst)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := utils.ParseID(chi.URLParam(r, name))
	if err != nil {
		return 0, errs.InvalidArgument(name + " must be a positive integer")
	}
	return id, nil
}

func pathClassGrade(r *http.Request) (int, error) {
	grade, err := strconv.Atoi(chi.URLParam(r, "classGrade"))
	if err != nil || grade < 6 || grade > 10 {
		return 0, errs.InvalidArgument("classGrade must be between 6 and 10")
	}
	return grade, nil
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidArgument:
		return http.StatusBadRequest
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindInvalidState:
		return http.StatusUnprocessableEntity
	case errs.KindPermissionDenied:
		return http.StatusForbidden
	case errs.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errs.KindOf(err)
	status := statusFor(kind)

	if status == http.StatusInternalServerError {
		log := zerolog.Ctx(r.Context())
		if log.GetLevel() == zerolog.Disabled {
			log = &h.logger
		}
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		kind = errs.KindInternal
	}

	body := map[string]interface{}{
		"error":   kind,
		"message": errs.Message(err),
	}

	var verr *validationError
	if errors.As(err, &verr) {
		body["fields"] = verr.fields
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	_ = utils.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, status int, kind errs.Kind, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   kind,
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, http.StatusOK, response)
}
