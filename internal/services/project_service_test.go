package services

import (
	"context"
	"testing"
	"time"

	"github.com/renohub/bidding-service/internal/lifecycle"
	"github.com/renohub/bidding-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectServiceEnv() (*fakeStore, *ProjectService) {
	store := newFakeStore()
	notifier := NewNotificationService(store, store, store)
	svc := NewProjectService(store, store, store, store, lifecycle.NewProjectStateMachine(), notifier, testLogger())
	return store, svc
}

func homeowner(id string) models.User {
	return models.User{
		ID:    id,
		Name:  "Mary Bruce",
		Email: "marybruce@gmail.com",
		Roles: []models.UserRole{models.HomeownerRole},
	}
}

func contractor(id string) models.User {
	return models.User{
		ID:    id,
		Name:  "Bruce Bruce",
		Email: "brucebruce@gmail.com",
		Roles: []models.UserRole{models.ContractorRole},
	}
}

func validProjectRequest() models.ProjectRequest {
	return models.ProjectRequest{
		Title:       "Bathroom Renovation",
		Description: "To be transformed to a modern style in one month",
		Budget:      10000,
		Address:     "24 Salako Street, Mushin",
		StartDate:   time.Now(),
		EndDate:     time.Now().Add(30 * 24 * time.Hour),
	}
}

func TestCreateProject(t *testing.T) {
	t.Run("homeowner creates draft project", func(t *testing.T) {
		store, svc := newProjectServiceEnv()
		store.putUser(homeowner("homeowner-1"))

		project, err := svc.CreateProject(context.Background(), "homeowner-1", validProjectRequest())
		require.NoError(t, err)
		assert.Equal(t, models.DraftProject, project.Status)
		assert.Equal(t, "homeowner-1", project.OwnerID)
		assert.Nil(t, project.ContractorID)
		assert.Nil(t, project.SelectedBidID)
	})

	t.Run("contractor may not create projects", func(t *testing.T) {
		store, svc := newProjectServiceEnv()
		store.putUser(contractor("contractor-1"))

		_, err := svc.CreateProject(context.Background(), "contractor-1", validProjectRequest())
		requireKind(t, err, models.KindForbidden)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(req *models.ProjectRequest)
		}{
			{"missing title", func(r *models.ProjectRequest) { r.Title = "" }},
			{"non-positive budget", func(r *models.ProjectRequest) { r.Budget = 0 }},
			{"short address", func(r *models.ProjectRequest) { r.Address = "short" }},
			{"start after end", func(r *models.ProjectRequest) {
				r.StartDate = r.EndDate.Add(24 * time.Hour)
			}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store, svc := newProjectServiceEnv()
				store.putUser(homeowner("homeowner-1"))

				req := validProjectRequest()
				tt.mutate(&req)
				_, err := svc.CreateProject(context.Background(), "homeowner-1", req)
				requireKind(t, err, models.KindValidation)
			})
		}
	})
}

func TestPublishProject(t *testing.T) {
	draft := func(store *fakeStore) models.Project {
		project := openProject("project-1", "homeowner-1")
		project.Status = models.DraftProject
		project.BidsCloseAt = nil
		store.putProject(project)
		return project
	}

	t.Run("publishes draft with future close date", func(t *testing.T) {
		store, svc := newProjectServiceEnv()
		draft(store)

		closeAt := time.Now().Add(72 * time.Hour)
		project, err := svc.PublishProject(context.Background(), "project-1", "homeowner-1", closeAt)
		require.NoError(t, err)
		assert.Equal(t, models.OpenForBidsProject, project.Status)
		require.NotNil(t, project.BidsCloseAt)

		owner := store.notificationsFor("homeowner-1")
		require.Len(t, owner, 1)
		assert.Equal(t, models.ProjectStatusChangedNotification, owner[0].Type)
	})

	t.Run("close date in the past is rejected", func(t *testing.T) {
		store, svc := newProjectServiceEnv()
		draft(store)

		_, err := svc.PublishProject(context.Background(), "project-1", "homeowner-1", time.Now().Add(-time.Hour))
		requireKind(t, err, models.KindValidation)

		project, err := store.GetProjectByID(context.Background(), "project-1")
		require.NoError(t, err)
		assert.Equal(t, models.DraftProject, project.Status, "project must remain draft")
	})

	t.Run("only draft projects can be published", func(t *testing.T) {
		store, svc := newProjectServiceEnv()
		store.putProject(openProject("project-1", "homeowner-1"))

		_, err := svc.PublishProject(context.Background(), "project-1", "homeowner-1", time.Now().Add(time.Hour))
		requireKind(t, err, models.KindInvalidState)
	})

	t.Run("only the owner can publish", func(t *testing.T) {
		store, svc := newProjectServiceEnv()
		draft(store)

		_, err := svc.PublishProject(context.Background(), "project-1", "someone-else", time.Now().Add(time.Hour))
		requireKind(t, err, models.KindForbidden)
	})
}

func TestUpdateProjectStatus(t *testing.T) {
	t.Run("allowed transition commits and notifies", func(t *testing.T) {
		store, svc := newProjectServiceEnv()
		project := openProject("project-1", "homeowner-1")
		project.Status = models.ActiveProject
		store.putProject(project)

		updated, err := svc.UpdateProjectStatus(context.Background(), "project-1", models.CompletedProject, "homeowner-1")
		require.NoError(t, err)
		assert.Equal(t, models.CompletedProject, updated.Status)

		owner := store.notificationsFor("homeowner-1")
		require.Len(t, owner, 1)
		assert.Equal(t, models.ProjectStatusChangedNotification, owner[0].Type)
	})

	t.Run("disallowed transitions leave status unchanged", func(t *testing.T) {
		tests := []struct {
			from models.ProjectStatus
			to   models.ProjectStatus
		}{
			{models.ActiveProject, models.DraftProject},
			{models.ActiveProject, models.OpenForBidsProject},
			{models.DraftProject, models.CompletedProject},
			{models.OpenForBidsProject, models.DraftProject},
			{models.CompletedProject, models.CancelledProject},
			{models.CancelledProject, models.OpenForBidsProject},
		}
		for _, tt := range tests {
			store, svc := newProjectServiceEnv()
			project := openProject("project-1", "homeowner-1")
			project.Status = tt.from
			store.putProject(project)

			_, err := svc.UpdateProjectStatus(context.Background(), "project-1", tt.to, "homeowner-1")
			errorResponse := requireKind(t, err, models.KindInvalidTransition)
			assert.Contains(t, errorResponse.Message, string(tt.from))
			assert.Contains(t, errorResponse.Message, string(tt.to))

			current, err := store.GetProjectByID(context.Background(), "project-1")
			require.NoError(t, err)
			assert.Equal(t, tt.from, current.Status, "failed transition must not change status")
		}
	})

	t.Run("active is reachable only through assignment", func(t *testing.T) {
		store, svc := newProjectServiceEnv()
		store.putProject(openProject("project-1", "homeowner-1"))

		_, err := svc.UpdateProjectStatus(context.Background(), "project-1", models.ActiveProject, "homeowner-1")
		requireKind(t, err, models.KindInvalidTransition)
	})

	t.Run("only the owner may change status", func(t *testing.T) {
		store, svc := newProjectServiceEnv()
		store.putProject(openProject("project-1", "homeowner-1"))

		_, err := svc.UpdateProjectStatus(context.Background(), "project-1", models.CancelledProject, "contractor-1")
		requireKind(t, err, models.KindForbidden)
	})

	t.Run("missing project", func(t *testing.T) {
		_, svc := newProjectServiceEnv()

		_, err := svc.UpdateProjectStatus(context.Background(), "missing", models.CancelledProject, "homeowner-1")
		requireKind(t, err, models.KindNotFound)
	})
}

func TestGetProjectWithDetails(t *testing.T) {
	store, svc := newProjectServiceEnv()
	contractorID := "contractor-1"
	project := openProject("project-1", "homeowner-1")
	project.ContractorID = &contractorID
	store.putProject(project)
	store.putBid(pendingBid("bid-1", "project-1", "contractor-1", 9000))
	store.putMilestone(models.Milestone{
		ID:        "milestone-1",
		ProjectID: "project-1",
		Title:     "Demolition",
		Status:    models.PendingMilestone,
	})

	details, err := svc.GetProjectWithDetails(context.Background(), "project-1", "homeowner-1")
	require.NoError(t, err)
	assert.Len(t, details.Bids, 1)
	assert.Len(t, details.Milestones, 1)

	_, err = svc.GetProjectWithDetails(context.Background(), "project-1", "contractor-1")
	require.NoError(t, err, "assigned contractor is a participant")

	_, err = svc.GetProjectWithDetails(context.Background(), "project-1", "stranger")
	requireKind(t, err, models.KindForbidden)
}

func TestListProjects(t *testing.T) {
	store, svc := newProjectServiceEnv()
	store.putUser(homeowner("homeowner-1"))
	store.putUser(contractor("contractor-1"))

	own := openProject("project-1", "homeowner-1")
	own.Status = models.DraftProject
	store.putProject(own)
	store.putProject(openProject("project-2", "homeowner-2"))

	forOwner, err := svc.ListProjects(context.Background(), "homeowner-1")
	require.NoError(t, err)
	assert.Len(t, forOwner, 2, "homeowner sees own drafts plus open projects")

	forContractor, err := svc.ListProjects(context.Background(), "contractor-1")
	require.NoError(t, err)
	require.Len(t, forContractor, 1)
	assert.Equal(t, "project-2", forContractor[0].ID)
}
