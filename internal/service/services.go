package service

import (
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/repository"
	"github.com/RubachokBoss/tutoring-center/internal/service/integration"
)

type Services struct {
	Assignments  AssignmentService
	Submissions  SubmissionService
	LateRequests LateRequestService
	Moderation   ModerationService
	Queries      QueryService
	Users        UserService
}

func New(repos *repository.Set, publisher integration.EventPublisher, now Clock, logger zerolog.Logger) *Services {
	directory := NewUserDirectory(repos.Users, logger)
	lateRequests := NewLateRequestService(repos.LateRequests, repos.Assignments, directory, publisher, now, logger)
	moderation := NewModerationService(repos.BlockedStudents, repos.Users, publisher, now, logger)

	return &Services{
		Assignments:  NewAssignmentService(repos.Assignments, repos.Submissions, publisher, now, logger),
		Submissions:  NewSubmissionService(repos.Submissions, repos.Assignments, lateRequests, directory, publisher, now, logger),
		LateRequests: lateRequests,
		Moderation:   moderation,
		Queries:      NewQueryService(repos.Queries, repos.Users, moderation, now, logger),
		Users:        NewUserService(repos.Users, now, logger),
	}
}
