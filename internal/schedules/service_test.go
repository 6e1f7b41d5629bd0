package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
)

type fakeScheduleRepo struct {
	schedules map[uuid.UUID]*models.Schedule
	items     map[uuid.UUID]*models.ChecklistItem
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		schedules: make(map[uuid.UUID]*models.Schedule),
		items:     make(map[uuid.UUID]*models.ChecklistItem),
	}
}

func (f *fakeScheduleRepo) Create(_ context.Context, schedule *models.Schedule) error {
	schedule.ID = uuid.New()
	cpy := *schedule
	f.schedules[schedule.ID] = &cpy
	return nil
}

func (f *fakeScheduleRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Schedule, error) {
	schedule, ok := f.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *schedule
	return &cpy, nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, schedule *models.Schedule) error {
	cpy := *schedule
	f.schedules[schedule.ID] = &cpy
	return nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.schedules, id)
	for itemID, item := range f.items {
		if item.ScheduleID == id {
			delete(f.items, itemID)
		}
	}
	return nil
}

func (f *fakeScheduleRepo) ListByClub(_ context.Context, clubID uuid.UUID) ([]models.Schedule, error) {
	out := make([]models.Schedule, 0)
	for _, schedule := range f.schedules {
		if schedule.ClubID == clubID {
			out = append(out, *schedule)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) CreateChecklistItem(_ context.Context, item *models.ChecklistItem) error {
	item.ID = uuid.New()
	cpy := *item
	f.items[item.ID] = &cpy
	return nil
}

func (f *fakeScheduleRepo) FindChecklistItem(_ context.Context, id uuid.UUID) (*models.ChecklistItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (f *fakeScheduleRepo) SetChecklistItemDone(_ context.Context, id uuid.UUID, done bool) (int64, error) {
	item, ok := f.items[id]
	if !ok {
		return 0, nil
	}
	item.Done = done
	return 1, nil
}

func (f *fakeScheduleRepo) ListChecklist(_ context.Context, scheduleID uuid.UUID) ([]models.ChecklistItem, error) {
	out := make([]models.ChecklistItem, 0)
	for _, item := range f.items {
		if item.ScheduleID == scheduleID {
			out = append(out, *item)
		}
	}
	return out, nil
}

// stubAuthorizer mimics the club authorizer error contract: managers and the
// host pass the composite check, members pass the membership check, everyone
// else has no standing.
type stubAuthorizer struct {
	hostID   uuid.UUID
	managers map[uuid.UUID]bool
	members  map[uuid.UUID]bool
}

func newStubAuthorizer(hostID uuid.UUID) *stubAuthorizer {
	return &stubAuthorizer{
		hostID:   hostID,
		managers: make(map[uuid.UUID]bool),
		members:  make(map[uuid.UUID]bool),
	}
}

func (s *stubAuthorizer) IsActiveClubManagerOrHost(_ context.Context, _, memberID uuid.UUID) (bool, error) {
	if memberID == s.hostID {
		return true, nil
	}
	if s.managers[memberID] {
		return true, nil
	}
	if s.members[memberID] {
		return false, nil
	}
	return false, pkgerrors.New(pkgerrors.CodeForbidden, "member has no standing in this club")
}

func (s *stubAuthorizer) IsClubMember(_ context.Context, _, memberID uuid.UUID) (bool, error) {
	return s.members[memberID] || s.managers[memberID], nil
}

func (s *stubAuthorizer) IsClubHost(_ context.Context, _, memberID uuid.UUID) (bool, error) {
	return memberID == s.hostID, nil
}

type scheduleFixture struct {
	svc    Service
	repo   *fakeScheduleRepo
	authz  *stubAuthorizer
	clubID uuid.UUID
	hostID uuid.UUID
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()

	repo := newFakeScheduleRepo()
	hostID := uuid.New()
	authz := newStubAuthorizer(hostID)

	svc, err := NewService(repo, authz)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	return &scheduleFixture{
		svc:    svc,
		repo:   repo,
		authz:  authz,
		clubID: uuid.New(),
		hostID: hostID,
	}
}

func validInput() ScheduleInput {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	return ScheduleInput{
		Title:    "weekly ride",
		StartsAt: start,
		EndsAt:   start.Add(2 * time.Hour),
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s got %s (%v)", code, typed.Code(), err)
	}
}

func TestCreateScheduleByHost(t *testing.T) {
	fx := newScheduleFixture(t)

	dto, err := fx.svc.CreateSchedule(context.Background(), fx.hostID, fx.clubID, validInput())
	if err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	if dto.CreatedByID != fx.hostID {
		t.Fatalf("expected creator %s got %s", fx.hostID, dto.CreatedByID)
	}
}

func TestCreateScheduleByManager(t *testing.T) {
	fx := newScheduleFixture(t)
	manager := uuid.New()
	fx.authz.managers[manager] = true

	if _, err := fx.svc.CreateSchedule(context.Background(), manager, fx.clubID, validInput()); err != nil {
		t.Fatalf("create schedule: %v", err)
	}
}

func TestCreateScheduleParticipantForbidden(t *testing.T) {
	fx := newScheduleFixture(t)
	participant := uuid.New()
	fx.authz.members[participant] = true

	_, err := fx.svc.CreateSchedule(context.Background(), participant, fx.clubID, validInput())
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestCreateScheduleValidation(t *testing.T) {
	fx := newScheduleFixture(t)

	input := validInput()
	input.Title = "  "
	_, err := fx.svc.CreateSchedule(context.Background(), fx.hostID, fx.clubID, input)
	assertCode(t, err, pkgerrors.CodeValidation)

	input = validInput()
	input.EndsAt = input.StartsAt
	_, err = fx.svc.CreateSchedule(context.Background(), fx.hostID, fx.clubID, input)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateScheduleNotFound(t *testing.T) {
	fx := newScheduleFixture(t)

	_, err := fx.svc.UpdateSchedule(context.Background(), fx.hostID, uuid.New(), validInput())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateScheduleByManager(t *testing.T) {
	fx := newScheduleFixture(t)
	manager := uuid.New()
	fx.authz.managers[manager] = true

	created, err := fx.svc.CreateSchedule(context.Background(), fx.hostID, fx.clubID, validInput())
	if err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	input := validInput()
	input.Title = "moved ride"
	updated, err := fx.svc.UpdateSchedule(context.Background(), manager, created.ID, input)
	if err != nil {
		t.Fatalf("update schedule: %v", err)
	}
	if updated.Title != "moved ride" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
}

func TestDeleteScheduleRemovesChecklist(t *testing.T) {
	fx := newScheduleFixture(t)

	created, err := fx.svc.CreateSchedule(context.Background(), fx.hostID, fx.clubID, validInput())
	if err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	if _, err := fx.svc.AddChecklistItem(context.Background(), fx.hostID, created.ID, "bring water"); err != nil {
		t.Fatalf("add checklist item: %v", err)
	}

	if err := fx.svc.DeleteSchedule(context.Background(), fx.hostID, created.ID); err != nil {
		t.Fatalf("delete schedule: %v", err)
	}
	if len(fx.repo.items) != 0 {
		t.Fatalf("expected checklist gone, %d items remain", len(fx.repo.items))
	}
}

func TestListSchedulesRequiresMembership(t *testing.T) {
	fx := newScheduleFixture(t)

	if _, err := fx.svc.CreateSchedule(context.Background(), fx.hostID, fx.clubID, validInput()); err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	_, err := fx.svc.ListSchedules(context.Background(), uuid.New(), fx.clubID)
	assertCode(t, err, pkgerrors.CodeForbidden)

	participant := uuid.New()
	fx.authz.members[participant] = true
	list, err := fx.svc.ListSchedules(context.Background(), participant, fx.clubID)
	if err != nil {
		t.Fatalf("list schedules: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one schedule, got %d", len(list))
	}
}

func TestChecklistFlow(t *testing.T) {
	fx := newScheduleFixture(t)
	participant := uuid.New()
	fx.authz.members[participant] = true

	created, err := fx.svc.CreateSchedule(context.Background(), fx.hostID, fx.clubID, validInput())
	if err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	item, err := fx.svc.AddChecklistItem(context.Background(), fx.hostID, created.ID, "reserve court")
	if err != nil {
		t.Fatalf("add checklist item: %v", err)
	}
	if item.Done {
		t.Fatal("expected new item to start not done")
	}

	// Participants can read the checklist but not mutate it.
	list, err := fx.svc.ListChecklist(context.Background(), participant, created.ID)
	if err != nil {
		t.Fatalf("list checklist: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one item, got %d", len(list))
	}

	_, err = fx.svc.AddChecklistItem(context.Background(), participant, created.ID, "bring snacks")
	assertCode(t, err, pkgerrors.CodeForbidden)

	done, err := fx.svc.SetChecklistItemDone(context.Background(), fx.hostID, item.ID, true)
	if err != nil {
		t.Fatalf("set done: %v", err)
	}
	if !done.Done {
		t.Fatal("expected item marked done")
	}
}

func TestChecklistEmptyContent(t *testing.T) {
	fx := newScheduleFixture(t)

	created, err := fx.svc.CreateSchedule(context.Background(), fx.hostID, fx.clubID, validInput())
	if err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	_, err = fx.svc.AddChecklistItem(context.Background(), fx.hostID, created.ID, "   ")
	assertCode(t, err, pkgerrors.CodeValidation)
}
