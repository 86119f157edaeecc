package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bloodbank-backend/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubAdminUsecase struct {
	listUsers  func(ctx context.Context) (*dto.UserListResponse, error)
	listByRole func(ctx context.Context, role string) (*dto.UserListResponse, error)
}

func (s *stubAdminUsecase) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	return s.listUsers(ctx)
}

func (s *stubAdminUsecase) ListByRole(ctx context.Context, role string) (*dto.UserListResponse, error) {
	return s.listByRole(ctx, role)
}

func (s *stubAdminUsecase) ListDonors(ctx context.Context) ([]dto.DonorResponse, error) {
	panic("not wired")
}

func (s *stubAdminUsecase) ListPatients(ctx context.Context) ([]dto.PatientResponse, error) {
	panic("not wired")
}

func (s *stubAdminUsecase) ListDonationRequests(ctx context.Context) ([]dto.DonationRequestResponse, error) {
	panic("not wired")
}

func (s *stubAdminUsecase) ListActivities(ctx context.Context) (*dto.ActivityListResponse, error) {
	panic("not wired")
}

func (s *stubAdminUsecase) SetBlocked(ctx context.Context, actorID, userID uuid.UUID, blocked bool) error {
	panic("not wired")
}

func TestAdminHandlerAdmins(t *testing.T) {
	stub := &stubAdminUsecase{
		listByRole: func(ctx context.Context, role string) (*dto.UserListResponse, error) {
			require.Equal(t, "admin", role)
			return &dto.UserListResponse{
				Users: []dto.UserResponse{{ID: uuid.New(), Email: "root@example.com", Role: "admin"}},
				Total: 1,
			}, nil
		},
	}
	h := NewAdminHandler(stub)

	rec := httptest.NewRecorder()
	h.Admins(rec, httptest.NewRequest(http.MethodGet, "/admin/admins", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	require.True(t, body.Success)

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(1), data["total"])
}

func TestAdminHandlerUsersRoleFilter(t *testing.T) {
	t.Run("role query delegates to the role listing", func(t *testing.T) {
		var gotRole string
		stub := &stubAdminUsecase{
			listByRole: func(ctx context.Context, role string) (*dto.UserListResponse, error) {
				gotRole = role
				return &dto.UserListResponse{Users: []dto.UserResponse{}, Total: 0}, nil
			},
		}
		h := NewAdminHandler(stub)

		rec := httptest.NewRecorder()
		h.Users(rec, httptest.NewRequest(http.MethodGet, "/admin/users?role=staff_nurse", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "staff_nurse", gotRole)
	})

	t.Run("no filter lists everyone", func(t *testing.T) {
		called := false
		stub := &stubAdminUsecase{
			listUsers: func(ctx context.Context) (*dto.UserListResponse, error) {
				called = true
				return &dto.UserListResponse{Users: []dto.UserResponse{}, Total: 0}, nil
			},
		}
		h := NewAdminHandler(stub)

		rec := httptest.NewRecorder()
		h.Users(rec, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, called)
	})
}
