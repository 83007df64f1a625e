package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

func TestParticipantController_Join(t *testing.T) {
	tests := []struct {
		name         string
		eventID      string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			eventID:    testEventID,
			wantStatus: http.StatusNoContent,
		},
		{
			name:         "invalid eventID",
			eventID:      "nope",
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "already a participant",
			eventID:      testEventID,
			fakeErr:      domain.ErrAlreadyParticipant,
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
		{
			name:         "event not found",
			eventID:      testEventID,
			fakeErr:      domain.ErrNotFound,
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeParticipantService{joinErr: tt.fakeErr}
			ctrl := NewParticipantController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/events/"+tt.eventID+"/participants", nil)
			req.SetPathValue("eventID", tt.eventID)
			req = req.WithContext(middleware.SetUserID(req.Context(), testUserID))
			rr := httptest.NewRecorder()

			ctrl.Join(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, tt.eventID, fake.lastJoinEventID)
				assert.Equal(t, testUserID, fake.lastJoinUserID)
				return
			}
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
		})
	}
}

func TestParticipantController_Leave(t *testing.T) {
	tests := []struct {
		name         string
		targetID     string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "self removal",
			targetID:   testUserID,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "organizer removes member",
			targetID:   testTargetID,
			wantStatus: http.StatusNoContent,
		},
		{
			name:         "forbidden",
			targetID:     testTargetID,
			fakeErr:      domain.ErrForbidden,
			wantStatus:   http.StatusForbidden,
			wantBodyCode: helpers.ErrCodeForbidden,
		},
		{
			name:         "membership not found",
			targetID:     testTargetID,
			fakeErr:      domain.ErrNotFound,
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeParticipantService{leaveErr: tt.fakeErr}
			ctrl := NewParticipantController(testLogger, fake)
			req := httptest.NewRequest(http.MethodDelete, "http://test/events/"+testEventID+"/participants/"+tt.targetID, nil)
			req.SetPathValue("eventID", testEventID)
			req.SetPathValue("userID", tt.targetID)
			req = req.WithContext(middleware.SetUserID(req.Context(), testUserID))
			rr := httptest.NewRecorder()

			ctrl.Leave(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, testEventID, fake.lastLeaveEventID)
				assert.Equal(t, tt.targetID, fake.lastLeaveTarget)
				assert.Equal(t, testUserID, fake.lastLeaveActor)
				return
			}
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
		})
	}

	t.Run("invalid path parameters", func(t *testing.T) {
		ctrl := NewParticipantController(testLogger, &fakeParticipantService{})
		req := httptest.NewRequest(http.MethodDelete, "http://test/events/x/participants/y", nil)
		req.SetPathValue("eventID", "x")
		req.SetPathValue("userID", "y")
		req = req.WithContext(middleware.SetUserID(req.Context(), testUserID))
		rr := httptest.NewRecorder()

		ctrl.Leave(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestParticipantController_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeParticipantService{
			listResult: []*domain.EventParticipant{
				{EventID: testEventID, UserID: testUserID, Name: "Alice", Email: "alice@example.com"},
			},
			listTotal: 1,
		}
		ctrl := NewParticipantController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/events/"+testEventID+"/participants", nil)
		req.SetPathValue("eventID", testEventID)
		req = req.WithContext(middleware.SetUserID(req.Context(), testUserID))
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var data ParticipantListResponse
		require.NoError(t, json.Unmarshal(dataBytes, &data))
		require.Len(t, data.Participants, 1)
		assert.Equal(t, "Alice", data.Participants[0].Name)
		assert.Equal(t, 1, data.Pagination.Total)
	})

	t.Run("empty list", func(t *testing.T) {
		fake := &fakeParticipantService{listErr: domain.ErrEmptyList}
		ctrl := NewParticipantController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/events/"+testEventID+"/participants", nil)
		req.SetPathValue("eventID", testEventID)
		req = req.WithContext(middleware.SetUserID(req.Context(), testUserID))
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeEmptyResult, envelope.Error.Code)
	})
}
