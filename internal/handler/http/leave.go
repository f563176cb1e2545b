package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
	"github.com/rosterline/attendance-engine-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
	ListPendingForApprover(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetApprovalPolicy(w http.ResponseWriter, r *http.Request)
	UpdateApprovalPolicy(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Submit implements LeaveHandler.
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDecision(w, r)
	if !ok {
		return
	}

	updated, err := h.leaveService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", updated)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDecision(w, r)
	if !ok {
		return
	}

	updated, err := h.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", updated)
}

// Get implements LeaveHandler.
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := h.leaveService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, req)
}

// ListByUser implements LeaveHandler.
func (h *leaveHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	requests, err := h.leaveService.ListByUser(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPendingForApprover implements LeaveHandler.
func (h *leaveHandlerImpl) ListPendingForApprover(w http.ResponseWriter, r *http.Request) {
	approverID := chi.URLParam(r, "approverID")

	requests, err := h.leaveService.ListPendingForApprover(r.Context(), approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetBalance implements LeaveHandler. Year and month default to the current
// period when omitted.
func (h *leaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	now := time.Now()

	year := now.Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	month := int(now.Month())
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(w, "month must be between 1 and 12", nil)
			return
		}
		month = parsed
	}

	balance, err := h.leaveService.GetBalance(r.Context(), userID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// GetApprovalPolicy implements LeaveHandler.
func (h *leaveHandlerImpl) GetApprovalPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.leaveService.GetApprovalPolicy(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policy)
}

// UpdateApprovalPolicy implements LeaveHandler.
func (h *leaveHandlerImpl) UpdateApprovalPolicy(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateApprovalPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	policy, err := h.leaveService.UpdateApprovalPolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approval policy updated", policy)
}

func (h *leaveHandlerImpl) decodeDecision(w http.ResponseWriter, r *http.Request) (leave.DecisionRequest, bool) {
	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return leave.DecisionRequest{}, false
	}
	req.RequestID = chi.URLParam(r, "id")
	return req, true
}
