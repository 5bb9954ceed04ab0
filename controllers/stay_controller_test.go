package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Success bool           `json:"success"`
	Error   map[string]any `json:"error"`
}

func perform(r http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body
}

func stayRouter(svc *MockStayEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := controllers.NewStayController(svc)
	r := gin.New()
	r.GET("/stays", c.GetStays)
	r.GET("/stays/:id", c.GetStay)
	r.POST("/stays", c.CreateStay)
	r.POST("/stays/:id/checkout", c.Checkout)
	r.POST("/stays/:id/start", c.StartStay)
	r.PUT("/stays/:id/checkout-date", c.SetCheckOutDate)
	return r
}

func TestStayController_CreateDefaultsGuestsAndRecordsActor(t *testing.T) {
	svc := new(MockStayEngine)
	r := stayRouter(svc)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in services.StayInput) bool {
		return in.Guests == 1 && in.CreatedBy == "maria" && in.CheckOut == nil &&
			in.CheckIn.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&models.Stay{ID: 3, Code: "HC1234ABCD"}, nil)

	w := perform(r, http.MethodPost, "/stays", `{"guest_id":1,"room_id":2,"check_in":"2024-01-01"}`, map[string]string{"X-Actor": "maria"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "HC1234ABCD")
	svc.AssertExpectations(t)
}

func TestStayController_CreateRejectsBadDate(t *testing.T) {
	svc := new(MockStayEngine)
	r := stayRouter(svc)

	w := perform(r, http.MethodPost, "/stays", `{"guest_id":1,"room_id":2,"check_in":"01/02/2024"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", decodeError(t, w).Error["code"])
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStayController_ListByCheckInRange(t *testing.T) {
	svc := new(MockStayEngine)
	r := stayRouter(svc)
	svc.On("GetAll", mock.Anything, mock.MatchedBy(func(f services.StayFilter) bool {
		return f.From != nil && f.To != nil &&
			f.From.Format("2006-01-02") == "2024-01-01" && f.To.Format("2006-01-02") == "2024-01-31"
	})).Return([]models.Stay{}, nil)

	w := perform(r, http.MethodGet, "/stays?from=2024-01-01&to=2024-01-31", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/stays?from=yesterday", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "GetAll", 1)
}

func TestStayController_InvalidID(t *testing.T) {
	svc := new(MockStayEngine)
	r := stayRouter(svc)

	for _, path := range []string{"/stays/abc", "/stays/0"} {
		w := perform(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestStayController_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound, "not_found"},
		{"validation", &services.ValidationError{Field: "guests", Message: "must be at least 1"}, http.StatusBadRequest, "validation_error"},
		{"state", &services.StateError{Entity: "stay", Reference: "HC1", State: "finished", Op: "start"}, http.StatusConflict, "invalid_state"},
		{"availability", &services.AvailabilityError{RoomNumber: "101", Kind: "reservation", Reference: "RES1"}, http.StatusConflict, "room_unavailable"},
		{"conflict", &services.ConflictError{Message: "taken", Reference: "101"}, http.StatusConflict, "conflict"},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockStayEngine)
			r := stayRouter(svc)
			svc.On("Start", mock.Anything, uint(7)).Return(nil, tc.err)

			w := perform(r, http.MethodPost, "/stays/7/start", "", nil)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Error["code"])
			svc.AssertExpectations(t)
		})
	}
}

func TestStayController_ValidationErrorNamesField(t *testing.T) {
	svc := new(MockStayEngine)
	r := stayRouter(svc)
	svc.On("Start", mock.Anything, uint(1)).Return(nil, &services.ValidationError{Field: "check_out", Message: "must be after check_in"})

	w := perform(r, http.MethodPost, "/stays/1/start", "", nil)

	assert.Equal(t, "check_out", decodeError(t, w).Error["field"])
}

func TestStayController_CheckoutWithoutBody(t *testing.T) {
	svc := new(MockStayEngine)
	r := stayRouter(svc)
	result := &services.CheckoutResult{Stay: models.Stay{ID: 4, State: models.StayFinished}, Statement: models.Statement{BalanceDue: decimal.Zero}}
	svc.On("Checkout", mock.Anything, uint(4), services.CheckoutInput{}).Return(result, nil)

	w := perform(r, http.MethodPost, "/stays/4/checkout", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestStayController_CheckoutWithDebtor(t *testing.T) {
	svc := new(MockStayEngine)
	r := stayRouter(svc)
	svc.On("Checkout", mock.Anything, uint(4), mock.MatchedBy(func(in services.CheckoutInput) bool {
		return in.Debtor != nil && *in.Debtor == models.PartyCompany && in.DebtNotes == "net 30"
	})).Return(&services.CheckoutResult{Stay: models.Stay{ID: 4}}, nil)

	w := perform(r, http.MethodPost, "/stays/4/checkout", `{"debtor":"company","debt_notes":"net 30"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestStayController_ClearCheckOutDate(t *testing.T) {
	svc := new(MockStayEngine)
	r := stayRouter(svc)
	svc.On("SetCheckOut", mock.Anything, uint(9), (*time.Time)(nil)).Return(&models.Stay{ID: 9}, nil)

	w := perform(r, http.MethodPut, "/stays/9/checkout-date", `{"check_out":""}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
