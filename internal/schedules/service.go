package schedules

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
)

type scheduleRepository interface {
	Create(ctx context.Context, schedule *models.Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error)
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByClub(ctx context.Context, clubID uuid.UUID) ([]models.Schedule, error)
	CreateChecklistItem(ctx context.Context, item *models.ChecklistItem) error
	FindChecklistItem(ctx context.Context, id uuid.UUID) (*models.ChecklistItem, error)
	SetChecklistItemDone(ctx context.Context, id uuid.UUID, done bool) (int64, error)
	ListChecklist(ctx context.Context, scheduleID uuid.UUID) ([]models.ChecklistItem, error)
}

// clubAuthorizer is the slice of the club authorizer this service needs.
// Schedule and checklist mutations reuse the club-level composite check by
// delegation; there is no schedule-local permission model.
type clubAuthorizer interface {
	IsActiveClubManagerOrHost(ctx context.Context, clubID, memberID uuid.UUID) (bool, error)
	IsClubMember(ctx context.Context, clubID, memberID uuid.UUID) (bool, error)
	IsClubHost(ctx context.Context, clubID, memberID uuid.UUID) (bool, error)
}

// Service exposes schedule and checklist operations.
type Service interface {
	CreateSchedule(ctx context.Context, actorID, clubID uuid.UUID, input ScheduleInput) (*ScheduleDTO, error)
	UpdateSchedule(ctx context.Context, actorID, scheduleID uuid.UUID, input ScheduleInput) (*ScheduleDTO, error)
	DeleteSchedule(ctx context.Context, actorID, scheduleID uuid.UUID) error
	ListSchedules(ctx context.Context, callerID, clubID uuid.UUID) ([]ScheduleDTO, error)
	AddChecklistItem(ctx context.Context, actorID, scheduleID uuid.UUID, content string) (*ChecklistItemDTO, error)
	SetChecklistItemDone(ctx context.Context, actorID, itemID uuid.UUID, done bool) (*ChecklistItemDTO, error)
	ListChecklist(ctx context.Context, callerID, scheduleID uuid.UUID) ([]ChecklistItemDTO, error)
}

type service struct {
	repo  scheduleRepository
	authz clubAuthorizer
}

// NewService builds a schedule service with the provided collaborators.
func NewService(repo scheduleRepository, authz clubAuthorizer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("schedule repository required")
	}
	if authz == nil {
		return nil, fmt.Errorf("authorizer required")
	}
	return &service{repo: repo, authz: authz}, nil
}

// ScheduleInput captures the mutable schedule fields.
type ScheduleInput struct {
	Title    string
	Place    *string
	StartsAt time.Time
	EndsAt   time.Time
}

func (in ScheduleInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "schedule must end after it starts")
	}
	return nil
}

func (s *service) CreateSchedule(ctx context.Context, actorID, clubID uuid.UUID, input ScheduleInput) (*ScheduleDTO, error) {
	if err := s.requireManagerOrHost(ctx, clubID, actorID); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		ClubID:      clubID,
		Title:       strings.TrimSpace(input.Title),
		Place:       input.Place,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		CreatedByID: actorID,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create schedule")
	}
	return FromModel(schedule), nil
}

func (s *service) UpdateSchedule(ctx context.Context, actorID, scheduleID uuid.UUID, input ScheduleInput) (*ScheduleDTO, error) {
	schedule, err := s.findSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManagerOrHost(ctx, schedule.ClubID, actorID); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	schedule.Title = strings.TrimSpace(input.Title)
	schedule.Place = input.Place
	schedule.StartsAt = input.StartsAt
	schedule.EndsAt = input.EndsAt
	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update schedule")
	}
	return FromModel(schedule), nil
}

func (s *service) DeleteSchedule(ctx context.Context, actorID, scheduleID uuid.UUID) error {
	schedule, err := s.findSchedule(ctx, scheduleID)
	if err != nil {
		return err
	}
	if err := s.requireManagerOrHost(ctx, schedule.ClubID, actorID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, scheduleID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete schedule")
	}
	return nil
}

func (s *service) ListSchedules(ctx context.Context, callerID, clubID uuid.UUID) ([]ScheduleDTO, error) {
	if err := s.requireMembership(ctx, clubID, callerID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list schedules")
	}
	return FromModels(list), nil
}

func (s *service) AddChecklistItem(ctx context.Context, actorID, scheduleID uuid.UUID, content string) (*ChecklistItemDTO, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}

	schedule, err := s.findSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManagerOrHost(ctx, schedule.ClubID, actorID); err != nil {
		return nil, err
	}

	item := &models.ChecklistItem{ScheduleID: scheduleID, Content: content}
	if err := s.repo.CreateChecklistItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create checklist item")
	}
	return ChecklistItemFromModel(item), nil
}

func (s *service) SetChecklistItemDone(ctx context.Context, actorID, itemID uuid.UUID, done bool) (*ChecklistItemDTO, error) {
	item, err := s.repo.FindChecklistItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checklist item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checklist item")
	}

	schedule, err := s.findSchedule(ctx, item.ScheduleID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManagerOrHost(ctx, schedule.ClubID, actorID); err != nil {
		return nil, err
	}

	if _, err := s.repo.SetChecklistItemDone(ctx, itemID, done); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update checklist item")
	}
	item.Done = done
	return ChecklistItemFromModel(item), nil
}

func (s *service) ListChecklist(ctx context.Context, callerID, scheduleID uuid.UUID) ([]ChecklistItemDTO, error) {
	schedule, err := s.findSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(ctx, schedule.ClubID, callerID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListChecklist(ctx, scheduleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list checklist")
	}
	return ChecklistFromModels(list), nil
}

func (s *service) requireManagerOrHost(ctx context.Context, clubID, actorID uuid.UUID) error {
	ok, err := s.authz.IsActiveClubManagerOrHost(ctx, clubID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeForbidden, "manager or host role required")
	}
	return nil
}

func (s *service) requireMembership(ctx context.Context, clubID, callerID uuid.UUID) error {
	host, err := s.authz.IsClubHost(ctx, clubID, callerID)
	if err != nil {
		return err
	}
	if host {
		return nil
	}

	member, err := s.authz.IsClubMember(ctx, clubID, callerID)
	if err != nil {
		return err
	}
	if !member {
		return pkgerrors.New(pkgerrors.CodeForbidden, "club membership required")
	}
	return nil
}

func (s *service) findSchedule(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "schedule not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule")
	}
	return schedule, nil
}
