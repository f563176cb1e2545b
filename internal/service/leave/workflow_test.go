package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
	"github.com/rosterline/attendance-engine-go/internal/domain/user"
	"github.com/rosterline/attendance-engine-go/internal/pkg/validator"
)

type fakeRequestRepo struct {
	requests map[string]leave.LeaveRequest
	history  map[string][]leave.ApprovalRecord
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[string]leave.LeaveRequest),
		history:  make(map[string][]leave.ApprovalRecord),
	}
}

func (f *fakeRequestRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	req.ApprovalHistory = f.history[id]
	return req, nil
}

func (f *fakeRequestRepo) UpdateFromStatus(_ context.Context, upd leave.StatusUpdate, expected leave.RequestStatus) error {
	req, ok := f.requests[upd.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if req.Status != expected {
		return leave.ErrStateConflict
	}
	req.Status = upd.Status
	req.CurrentApproverID = upd.CurrentApproverID
	f.requests[upd.ID] = req
	return nil
}

func (f *fakeRequestRepo) AppendApproval(_ context.Context, rec leave.ApprovalRecord) error {
	f.history[rec.RequestID] = append(f.history[rec.RequestID], rec)
	return nil
}

func (f *fakeRequestRepo) ListByUser(_ context.Context, userID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListPendingForApprover(_ context.Context, approverID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if !req.IsTerminal() && req.CurrentApproverID != nil && *req.CurrentApproverID == approverID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListApprovedByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.UserID == userID && req.Status == leave.StatusApproved && !req.StartDate.After(end) && !req.EndDate.Before(start) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListApprovedByRange(_ context.Context, start, end time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.Status == leave.StatusApproved && !req.StartDate.After(end) && !req.EndDate.Before(start) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListApprovedByUserAndYear(_ context.Context, userID string, year int) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.UserID == userID && req.Status == leave.StatusApproved && req.StartDate.Year() == year {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeDirectory struct {
	users map[string]user.User
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeDirectory) FirstByRole(_ context.Context, role user.Role) (user.User, error) {
	var match *user.User
	for _, u := range f.users {
		u := u
		if u.Role == role && u.Active {
			if match == nil || u.RefNo < match.RefNo {
				match = &u
			}
		}
	}
	if match == nil {
		return user.User{}, user.ErrNoRoleHolder
	}
	return *match, nil
}

func (f *fakeDirectory) ListActive(_ context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeDirectory) ListOrganizations(_ context.Context) ([]user.Organization, error) {
	return nil, nil
}

type fakePolicyRepo struct {
	role user.Role
}

func (f *fakePolicyRepo) FinalConfirmationRole(_ context.Context) (user.Role, error) {
	return f.role, nil
}

func (f *fakePolicyRepo) SetFinalConfirmationRole(_ context.Context, role user.Role) error {
	f.role = role
	return nil
}

type fakeSettingsRepo struct {
	settings attendance.Settings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (attendance.Settings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s attendance.Settings) (attendance.Settings, error) {
	f.settings = s
	return s, nil
}

type workflowFixture struct {
	svc      leave.Service
	requests *fakeRequestRepo
	users    *fakeDirectory
}

func newWorkflowFixture() workflowFixture {
	managerID := "mgr-1"
	users := &fakeDirectory{users: map[string]user.User{
		"emp-1": {ID: "emp-1", RefNo: "E001", Name: "Asha", Role: user.RoleEmployee, ReportingManagerID: &managerID, OrganizationID: "org-1", Active: true},
		"emp-2": {ID: "emp-2", RefNo: "E002", Name: "Ravi", Role: user.RoleEmployee, OrganizationID: "org-1", Active: true},
		"mgr-1": {ID: "mgr-1", RefNo: "M001", Name: "Dee", Role: user.RoleManager, OrganizationID: "org-1", Active: true},
		"hr-1":  {ID: "hr-1", RefNo: "H001", Name: "Kim", Role: user.RoleHR, OrganizationID: "org-1", Active: true},
		"hr-2":  {ID: "hr-2", RefNo: "H002", Name: "Lou", Role: user.RoleHR, OrganizationID: "org-1", Active: true},
	}}

	requests := newFakeRequestRepo()
	settings := &fakeSettingsRepo{settings: attendance.Settings{
		MinimumHoursFullDay:   8,
		MinimumHoursHalfDay:   4,
		AnnualEarnedLeaves:    18,
		AnnualSickLeaves:      12,
		MonthlyFloatingLeaves: 2,
	}}

	svc := newTestService(requests, users, &fakePolicyRepo{role: user.RoleHR}, settings)
	return workflowFixture{svc: svc, requests: requests, users: users}
}

// newTestService builds the service against fakes, with transactions
// collapsed to plain calls.
func newTestService(
	requests leave.LeaveRequestRepository,
	users user.DirectoryRepository,
	policy leave.ApprovalPolicyRepository,
	settings attendance.SettingsRepository,
) leave.Service {
	return &LeaveServiceImpl{
		LeaveRequestRepository: requests,
		userRepo:               users,
		policyRepo:             policy,
		settingsRepo:           settings,
		transact: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func validSubmit(userID string) leave.SubmitLeaveRequest {
	start := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 9).Format("2006-01-02")
	return leave.SubmitLeaveRequest{
		UserID:    userID,
		LeaveType: string(leave.LeaveTypeEarned),
		StartDate: start,
		EndDate:   end,
		Reason:    "attending a family wedding",
	}
}

func TestSubmitRoutesToReportingManager(t *testing.T) {
	fx := newWorkflowFixture()

	resp, err := fx.svc.Submit(context.Background(), validSubmit("emp-1"))
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusPendingManagerApproval), resp.Status)
	require.NotNil(t, resp.CurrentApproverID)
	assert.Equal(t, "mgr-1", *resp.CurrentApproverID)
	assert.Empty(t, resp.ApprovalHistory)
}

func TestSubmitWithoutManagerSkipsToFinalConfirmation(t *testing.T) {
	fx := newWorkflowFixture()

	resp, err := fx.svc.Submit(context.Background(), validSubmit("emp-2"))
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusPendingHRConfirmation), resp.Status)
	require.NotNil(t, resp.CurrentApproverID)
	// hr-1 wins over hr-2 on ref number, so routing is deterministic.
	assert.Equal(t, "hr-1", *resp.CurrentApproverID)
}

func TestSubmitRejectsShortReason(t *testing.T) {
	fx := newWorkflowFixture()

	req := validSubmit("emp-1")
	req.Reason = "sick"

	_, err := fx.svc.Submit(context.Background(), req)
	assert.Error(t, err)
}

func TestSubmitRejectsDayOptionOnMultiDayLeave(t *testing.T) {
	fx := newWorkflowFixture()

	opt := string(leave.DayOptionHalf)
	req := validSubmit("emp-1")
	req.DayOption = &opt

	_, err := fx.svc.Submit(context.Background(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	req = validSubmit("emp-1")
	req.LeaveType = string(leave.LeaveTypeSick)
	req.EndDate = req.StartDate
	req.DayOption = &opt

	_, err = fx.svc.Submit(context.Background(), req)
	require.ErrorAs(t, err, &verrs)
}

func TestApproveAdvancesThroughBothStages(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	submitted, err := fx.svc.Submit(ctx, validSubmit("emp-1"))
	require.NoError(t, err)

	afterManager, err := fx.svc.Approve(ctx, leave.DecisionRequest{RequestID: submitted.ID, ActorID: "mgr-1", Note: "enjoy"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusPendingHRConfirmation), afterManager.Status)
	require.NotNil(t, afterManager.CurrentApproverID)
	assert.Equal(t, "hr-1", *afterManager.CurrentApproverID)
	require.Len(t, afterManager.ApprovalHistory, 1)
	assert.Equal(t, string(leave.StageManagerApproval), afterManager.ApprovalHistory[0].Stage)
	assert.Equal(t, string(leave.ActionApproved), afterManager.ApprovalHistory[0].Action)

	final, err := fx.svc.Approve(ctx, leave.DecisionRequest{RequestID: submitted.ID, ActorID: "hr-1"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), final.Status)
	require.Len(t, final.ApprovalHistory, 2)
	assert.Equal(t, string(leave.StageFinalConfirmation), final.ApprovalHistory[1].Stage)
}

func TestApproveByWrongActor(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	submitted, err := fx.svc.Submit(ctx, validSubmit("emp-1"))
	require.NoError(t, err)

	_, err = fx.svc.Approve(ctx, leave.DecisionRequest{RequestID: submitted.ID, ActorID: "hr-1"})
	assert.ErrorIs(t, err, leave.ErrNotCurrentApprover)
}

func TestDecisionOnTerminalRequest(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	submitted, err := fx.svc.Submit(ctx, validSubmit("emp-1"))
	require.NoError(t, err)

	_, err = fx.svc.Reject(ctx, leave.DecisionRequest{RequestID: submitted.ID, ActorID: "mgr-1", Note: "headcount freeze"})
	require.NoError(t, err)

	_, err = fx.svc.Approve(ctx, leave.DecisionRequest{RequestID: submitted.ID, ActorID: "mgr-1"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyDecided)
}

func TestRejectAtManagerStageIsTerminal(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	submitted, err := fx.svc.Submit(ctx, validSubmit("emp-1"))
	require.NoError(t, err)

	resp, err := fx.svc.Reject(ctx, leave.DecisionRequest{RequestID: submitted.ID, ActorID: "mgr-1"})
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusRejected), resp.Status)
	assert.Nil(t, resp.CurrentApproverID)
	require.Len(t, resp.ApprovalHistory, 1)
	assert.Equal(t, string(leave.ActionRejected), resp.ApprovalHistory[0].Action)
}

// staleReadRepo returns a frozen snapshot from GetByID so a racing transition
// can land between the workflow's load and its conditional update.
type staleReadRepo struct {
	*fakeRequestRepo
	stale leave.LeaveRequest
}

func (s *staleReadRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	if id == s.stale.ID {
		return s.stale, nil
	}
	return s.fakeRequestRepo.GetByID(context.Background(), id)
}

func TestConcurrentDecisionHitsStateConflict(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	submitted, err := fx.svc.Submit(ctx, validSubmit("emp-1"))
	require.NoError(t, err)

	// Another decision already rejected the request; this actor still sees
	// the pending snapshot.
	rejected, err := fx.svc.Reject(ctx, leave.DecisionRequest{RequestID: submitted.ID, ActorID: "mgr-1"})
	require.NoError(t, err)
	require.Equal(t, string(leave.StatusRejected), rejected.Status)

	mgr := "mgr-1"
	stale := fx.requests.requests[submitted.ID]
	stale.Status = leave.StatusPendingManagerApproval
	stale.CurrentApproverID = &mgr

	svc := newTestService(
		&staleReadRepo{fakeRequestRepo: fx.requests, stale: stale},
		fx.users,
		&fakePolicyRepo{role: user.RoleHR},
		&fakeSettingsRepo{},
	)

	_, err = svc.Approve(ctx, leave.DecisionRequest{RequestID: submitted.ID, ActorID: "mgr-1"})
	assert.ErrorIs(t, err, leave.ErrStateConflict)
}

func TestGetBalance(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	opt := leave.DayOptionHalf
	fx.requests.requests["lr-approved"] = leave.LeaveRequest{
		ID:        "lr-approved",
		UserID:    "emp-1",
		LeaveType: leave.LeaveTypeEarned,
		StartDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusApproved,
	}
	fx.requests.requests["lr-half"] = leave.LeaveRequest{
		ID:        "lr-half",
		UserID:    "emp-1",
		LeaveType: leave.LeaveTypeEarned,
		StartDate: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC),
		DayOption: &opt,
		Status:    leave.StatusApproved,
	}
	fx.requests.requests["lr-floating"] = leave.LeaveRequest{
		ID:        "lr-floating",
		UserID:    "emp-1",
		LeaveType: leave.LeaveTypeFloating,
		StartDate: time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusApproved,
	}
	fx.requests.requests["lr-pending"] = leave.LeaveRequest{
		ID:        "lr-pending",
		UserID:    "emp-1",
		LeaveType: leave.LeaveTypeSick,
		StartDate: time.Date(2026, time.April, 25, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.April, 25, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusPendingManagerApproval,
	}

	balance, err := fx.svc.GetBalance(ctx, "emp-1", 2026, 4)
	require.NoError(t, err)

	assert.Equal(t, 18.0, balance.Earned.Entitled)
	assert.Equal(t, 3.5, balance.Earned.Used)
	assert.Equal(t, 14.5, balance.Earned.Remaining)

	// Pending requests never consume balance.
	assert.Equal(t, 0.0, balance.Sick.Used)

	assert.Equal(t, 2.0, balance.Floating.Entitled)
	assert.Equal(t, 1.0, balance.Floating.Used)
}

func TestUpdateApprovalPolicy(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	policy, err := fx.svc.GetApprovalPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hr", policy.FinalConfirmationRole)

	updated, err := fx.svc.UpdateApprovalPolicy(ctx, leave.UpdateApprovalPolicyRequest{
		FinalConfirmationRole: "director",
	})
	require.NoError(t, err)
	assert.Equal(t, "director", updated.FinalConfirmationRole)

	policy, err = fx.svc.GetApprovalPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "director", policy.FinalConfirmationRole)

	_, err = fx.svc.UpdateApprovalPolicy(ctx, leave.UpdateApprovalPolicyRequest{
		FinalConfirmationRole: "employee",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}
