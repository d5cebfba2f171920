/*-------------------------------------------------------------------------
 *
 * memstore.go
 *    In-memory Store for development and tests
 *
 * Mirrors the guarded-update semantics of the Postgres store: decisions
 * overwrite, reminder/escalation flags flip at most once, and flags
 * never flip on a decided row.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/approvals/memstore.go
 *
 *-------------------------------------------------------------------------
 */

package approvals

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/utils"
)

/* MemoryStore keeps approval requests and notifications in memory */
type MemoryStore struct {
	mu            sync.RWMutex
	requests      map[uuid.UUID]*db.ApprovalRequest
	notifications []db.Notification
	clock         func() time.Time
}

/* NewMemoryStore creates an empty in-memory store */
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests: make(map[uuid.UUID]*db.ApprovalRequest),
		clock:    time.Now,
	}
}

/* SetClock overrides the store's clock */
func (s *MemoryStore) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

func (s *MemoryStore) CreateApprovalRequest(ctx context.Context, req *db.ApprovalRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.Status == "" {
		req.Status = db.StatusPending
	}
	if req.Priority == "" {
		req.Priority = db.PriorityNormal
	}
	if req.AssignedRole == "" {
		req.AssignedRole = db.RoleManager
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = s.clock()
	}
	req.UpdatedAt = req.CreatedAt

	copied := *req
	s.requests[req.ID] = &copied
	return nil
}

func (s *MemoryStore) GetApprovalRequest(ctx context.Context, id uuid.UUID) (*db.ApprovalRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("approval request %s: %w", id, db.ErrNotFound)
	}
	copied := *req
	return &copied, nil
}

func (s *MemoryStore) UpdateDecision(ctx context.Context, id uuid.UUID, status, decidedBy, note string, decidedAt time.Time) (*db.ApprovalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("approval request %s: %w", id, db.ErrNotFound)
	}

	req.Status = status
	req.DecidedBy = &decidedBy
	if note != "" {
		req.DecisionNote = &note
	} else {
		req.DecisionNote = nil
	}
	req.DecidedAt = &decidedAt
	req.UpdatedAt = s.clock()

	copied := *req
	return &copied, nil
}

func (s *MemoryStore) ListPendingApprovals(ctx context.Context, tenantID string, roles []string) ([]db.ApprovalRequest, error) {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []db.ApprovalRequest{}
	for _, req := range s.requests {
		if req.TenantID == tenantID && req.Status == db.StatusPending && roleSet[req.AssignedRole] {
			out = append(out, *req)
		}
	}
	sortByCreatedAsc(out)
	return out, nil
}

func (s *MemoryStore) ListAllPendingApprovals(ctx context.Context) ([]db.ApprovalRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []db.ApprovalRequest{}
	for _, req := range s.requests {
		if req.Status == db.StatusPending {
			out = append(out, *req)
		}
	}
	sortByCreatedAsc(out)
	return out, nil
}

func (s *MemoryStore) ListEmployeeApprovals(ctx context.Context, tenantID, employeeID string) ([]db.ApprovalRequest, error) {
	want := utils.NormalizeKey(employeeID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []db.ApprovalRequest{}
	for _, req := range s.requests {
		if req.TenantID == tenantID && utils.NormalizeKey(req.EmployeeID) == want {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) MarkReminderSent(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok || req.Status != db.StatusPending || req.ReminderSent {
		return false, nil
	}
	req.ReminderSent = true
	req.UpdatedAt = s.clock()
	return true, nil
}

func (s *MemoryStore) MarkEscalated(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok || req.Status != db.StatusPending || req.Escalated {
		return false, nil
	}
	req.Escalated = true
	req.Status = db.StatusEscalated
	req.UpdatedAt = s.clock()
	return true, nil
}

func (s *MemoryStore) CreateNotification(ctx context.Context, n *db.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.clock()
	}
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *MemoryStore) ListNotifications(ctx context.Context, tenantID, employeeID string, includeAuthority bool) ([]db.Notification, error) {
	want := utils.NormalizeKey(employeeID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []db.Notification{}
	for i := range s.notifications {
		n := s.notifications[i]
		if n.TenantID != tenantID {
			continue
		}
		if utils.NormalizeKey(n.TargetEmployeeID) == want ||
			(includeAuthority && n.TargetEmployeeID == db.AuthorityTarget) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) MarkNotificationRead(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id && !s.notifications[i].IsRead {
			s.notifications[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

/* NotificationsByType returns stored notifications matching a type,
 * regardless of target. Intended for assertions and debugging. */
func (s *MemoryStore) NotificationsByType(notificationType string) []db.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []db.Notification{}
	for _, n := range s.notifications {
		if strings.EqualFold(n.NotificationType, notificationType) {
			out = append(out, n)
		}
	}
	return out
}

func sortByCreatedAsc(reqs []db.ApprovalRequest) {
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].CreatedAt.Before(reqs[j].CreatedAt) })
}
