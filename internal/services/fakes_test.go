package services

import (
	"context"
	"sync"
	"time"

	"github.com/renohub/bidding-service/internal/models"
	"github.com/renohub/bidding-service/internal/repository"

	"github.com/google/uuid"
)

// fakeStore - потокобезопасная замена Persistence Gateway в памяти.
// Реализует все интерфейсы репозиториев и воспроизводит гарантии базы:
// уникальность (project_id, contractor_id) и перепроверку статуса
// проекта внутри атомарного назначения.
type fakeStore struct {
	mu            sync.Mutex
	projects      map[string]models.Project
	bids          map[string]models.Bid
	bidOrder      []string
	milestones    map[string]models.Milestone
	users         map[string]models.User
	notifications []models.Notification
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects:   make(map[string]models.Project),
		bids:       make(map[string]models.Bid),
		milestones: make(map[string]models.Milestone),
		users:      make(map[string]models.User),
	}
}

func (f *fakeStore) putProject(project models.Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[project.ID] = project
}

func (f *fakeStore) putBid(bid models.Bid) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bids[bid.ID] = bid
	f.bidOrder = append(f.bidOrder, bid.ID)
}

func (f *fakeStore) putUser(user models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
}

func (f *fakeStore) putMilestone(milestone models.Milestone) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.milestones[milestone.ID] = milestone
}

func (f *fakeStore) notificationsFor(userID string) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// --- ProjectRepository ---

func (f *fakeStore) CreateProject(_ context.Context, ownerID string, projectReq models.ProjectRequest) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project := models.Project{
		ID:          uuid.New().String(),
		Title:       projectReq.Title,
		Description: projectReq.Description,
		OwnerID:     ownerID,
		Status:      models.DraftProject,
		Budget:      projectReq.Budget,
		Address:     projectReq.Address,
		StartDate:   projectReq.StartDate,
		EndDate:     projectReq.EndDate,
		CreatedAt:   time.Now().UTC(),
	}
	f.projects[project.ID] = project
	return &project, nil
}

func (f *fakeStore) GetProjectByID(_ context.Context, projectID string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project, ok := f.projects[projectID]
	if !ok {
		return nil, nil
	}
	return &project, nil
}

func (f *fakeStore) UpdateProjectStatus(_ context.Context, projectID string, status models.ProjectStatus) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project := f.projects[projectID]
	project.Status = status
	f.projects[projectID] = project
	return &project, nil
}

func (f *fakeStore) PublishProject(_ context.Context, projectID string, bidsCloseAt time.Time) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project := f.projects[projectID]
	project.Status = models.OpenForBidsProject
	project.BidsCloseAt = &bidsCloseAt
	f.projects[projectID] = project
	return &project, nil
}

func (f *fakeStore) GetOwnedOrOpenProjects(_ context.Context, ownerID string) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var projects []models.Project
	for _, project := range f.projects {
		if project.OwnerID == ownerID || project.Status == models.OpenForBidsProject {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (f *fakeStore) GetOpenProjects(_ context.Context) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var projects []models.Project
	for _, project := range f.projects {
		if project.Status == models.OpenForBidsProject {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

// --- BidRepository ---

func (f *fakeStore) CreateBid(_ context.Context, contractorID string, bidReq models.BidRequest) (*models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, bid := range f.bids {
		if bid.ProjectID == bidReq.ProjectID && bid.ContractorID == contractorID {
			return nil, models.NewErrorResponse(models.KindConflict, "you have already submitted a bid for this project")
		}
	}
	bid := models.Bid{
		ID:                 uuid.New().String(),
		ProjectID:          bidReq.ProjectID,
		ContractorID:       contractorID,
		Amount:             bidReq.Amount,
		Proposal:           bidReq.Proposal,
		EstimatedDuration:  bidReq.EstimatedDuration,
		EstimatedStartDate: bidReq.EstimatedStartDate,
		EstimatedEndDate:   bidReq.EstimatedEndDate,
		Status:             models.PendingBid,
		CreatedAt:          time.Now().UTC(),
	}
	f.bids[bid.ID] = bid
	f.bidOrder = append(f.bidOrder, bid.ID)
	return &bid, nil
}

func (f *fakeStore) GetBidByID(_ context.Context, bidID string) (*models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bid, ok := f.bids[bidID]
	if !ok {
		return nil, nil
	}
	return &bid, nil
}

func (f *fakeStore) GetBidByProjectAndContractor(_ context.Context, projectID, contractorID string) (*models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, bid := range f.bids {
		if bid.ProjectID == projectID && bid.ContractorID == contractorID {
			b := bid
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetProjectBids(_ context.Context, projectID string) ([]models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var bids []models.Bid
	for _, bidID := range f.bidOrder {
		if bid := f.bids[bidID]; bid.ProjectID == projectID {
			bids = append(bids, bid)
		}
	}
	return bids, nil
}

func (f *fakeStore) AssignBidTx(_ context.Context, params repository.AssignBidParams) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	project, ok := f.projects[params.ProjectID]
	if !ok {
		return nil, models.NewErrorResponse(models.KindNotFound, "project not found")
	}
	// Перепроверка статуса под блокировкой, как в транзакции с FOR UPDATE.
	if project.Status != models.OpenForBidsProject {
		return nil, models.NewErrorResponse(models.KindInvalidState, "project is not in bidding phase")
	}

	contractorID := params.ContractorID
	bidID := params.BidID
	amount := params.Amount
	project.Status = models.ActiveProject
	project.ContractorID = &contractorID
	project.SelectedBidID = &bidID
	project.AcceptedAmount = &amount
	f.projects[params.ProjectID] = project

	for id, bid := range f.bids {
		if bid.ProjectID != params.ProjectID {
			continue
		}
		if id == params.BidID {
			bid.Status = models.AcceptedBid
		} else {
			bid.Status = models.RejectedBid
		}
		f.bids[id] = bid
	}
	return &project, nil
}

// --- MilestoneRepository ---

func (f *fakeStore) CreateMilestone(_ context.Context, milestoneReq models.MilestoneRequest) (*models.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	milestone := models.Milestone{
		ID:          uuid.New().String(),
		ProjectID:   milestoneReq.ProjectID,
		Title:       milestoneReq.Title,
		Description: milestoneReq.Description,
		DueDate:     milestoneReq.DueDate,
		Status:      models.PendingMilestone,
		CreatedAt:   time.Now().UTC(),
	}
	f.milestones[milestone.ID] = milestone
	return &milestone, nil
}

func (f *fakeStore) GetMilestoneByID(_ context.Context, milestoneID string) (*models.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	milestone, ok := f.milestones[milestoneID]
	if !ok {
		return nil, nil
	}
	return &milestone, nil
}

func (f *fakeStore) UpdateMilestoneStatus(_ context.Context, milestoneID string, status models.MilestoneStatus) (*models.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	milestone := f.milestones[milestoneID]
	milestone.Status = status
	f.milestones[milestoneID] = milestone
	return &milestone, nil
}

func (f *fakeStore) GetProjectMilestones(_ context.Context, projectID string) ([]models.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var milestones []models.Milestone
	for _, milestone := range f.milestones {
		if milestone.ProjectID == projectID {
			milestones = append(milestones, milestone)
		}
	}
	return milestones, nil
}

// --- NotificationRepository ---

func (f *fakeStore) CreateNotification(_ context.Context, notification models.Notification) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification.ID = uuid.New().String()
	notification.Read = false
	notification.CreatedAt = time.Now().UTC()
	f.notifications = append(f.notifications, notification)
	return &notification, nil
}

func (f *fakeStore) GetUserNotifications(_ context.Context, userID string, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var notifications []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		n := f.notifications[i]
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		notifications = append(notifications, n)
	}
	if offset >= len(notifications) {
		return nil, nil
	}
	notifications = notifications[offset:]
	if len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (f *fakeStore) MarkAsRead(_ context.Context, notificationID, userID string) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.notifications {
		if n.ID == notificationID && n.UserID == userID {
			f.notifications[i].Read = true
			read := f.notifications[i]
			return &read, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) MarkAllAsRead(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for i, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			f.notifications[i].Read = true
			count++
		}
	}
	return count, nil
}

// --- UserRepository ---

func (f *fakeStore) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// failingNotifier всегда возвращает ошибку рассылки.
type failingNotifier struct {
	err error
}

func (n *failingNotifier) NotifyAssignment(context.Context, string, string, []string) error {
	return n.err
}

func (n *failingNotifier) NotifyStatusChange(context.Context, string, models.ProjectStatus, string) error {
	return n.err
}
