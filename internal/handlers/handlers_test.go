package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/SscSPs/account_ledger/internal/handlers"
	"github.com/SscSPs/account_ledger/internal/middleware"
	"github.com/SscSPs/account_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	numberA = "0702346800"
	numberB = "0702346801"
)

type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	cfg         *config.Config
	accounts    *MockAccountService
	transfers   *MockTransferService
	approvals   *MockApprovalService
	adjustments *MockAdjustmentService
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(dto.RegisterGinValidators())
}

func (s *HandlerTestSuite) SetupTest() {
	s.cfg = &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		JWTIssuer:    "ledger-test",
		IsProduction: true,
	}
	s.accounts = new(MockAccountService)
	s.transfers = new(MockTransferService)
	s.approvals = new(MockApprovalService)
	s.adjustments = new(MockAdjustmentService)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, s.cfg, &portssvc.ServiceContainer{
		Account:    s.accounts,
		Transfer:   s.transfers,
		Approval:   s.approvals,
		Adjustment: s.adjustments,
	})
}

func (s *HandlerTestSuite) TearDownTest() {
	s.accounts.AssertExpectations(s.T())
	s.transfers.AssertExpectations(s.T())
	s.approvals.AssertExpectations(s.T())
	s.adjustments.AssertExpectations(s.T())
}

// generateTestToken creates a signed JWT for the given caller.
func (s *HandlerTestSuite) generateTestToken(subject string, role middleware.Role, customerID string) string {
	claims := middleware.LedgerClaims{
		Role:       role,
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWTIssuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	s.Require().NoError(err)
	return signed
}

func (s *HandlerTestSuite) adminToken() string {
	return s.generateTestToken("admin-1", middleware.RoleAdmin, "")
}

func (s *HandlerTestSuite) customerToken(customerID string) string {
	return s.generateTestToken("user-"+customerID, middleware.RoleCustomer, customerID)
}

func (s *HandlerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			s.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *HandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestRequiresAuthentication() {
	w := s.do(http.MethodGet, "/api/v1/accounts/"+numberA, "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestInitiateTransfer_Completed() {
	balance := domain.MustParseMoney("900.00")
	req := dto.TransferRequest{FromAccountNumber: numberA, ToAccountNumber: numberB, Amount: domain.MustParseMoney("100.00"), Description: "rent"}
	s.transfers.On("InitiateTransfer", mock.Anything, req, domain.Actor{ID: "user-cust-a", CustomerID: "cust-a"}).
		Return(&dto.TransferResult{TransactionCode: "TXN1", Status: domain.StatusCompleted, Amount: req.Amount, NewBalance: &balance}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/transfers", s.customerToken("cust-a"),
		fmt.Sprintf(`{"fromAccountNumber":"%s","toAccountNumber":"%s","amount":"100.00","description":"rent"}`, numberA, numberB))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var res dto.TransferResult
	s.decode(w, &res)
	s.Equal("TXN1", res.TransactionCode)
	s.Require().NotNil(res.NewBalance)
	s.Equal(balance, *res.NewBalance)
}

func (s *HandlerTestSuite) TestInitiateTransfer_PendingReturnsAccepted() {
	s.transfers.On("InitiateTransfer", mock.Anything, mock.AnythingOfType("dto.TransferRequest"), domain.Actor{ID: "admin-1"}).
		Return(&dto.TransferResult{TransactionCode: "TXN2", Status: domain.StatusPendingApproval, RequiresApproval: true}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/transfers", s.adminToken(),
		dto.TransferRequest{FromAccountNumber: numberA, ToAccountNumber: numberB, Amount: domain.MustParseMoney("750.00"), Description: "car"})
	s.Equal(http.StatusAccepted, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestInitiateTransfer_RejectsBadBody() {
	token := s.customerToken("cust-a")
	bodies := []string{
		`{"fromAccountNumber":"123","toAccountNumber":"0702346801","amount":"1.00","description":"x"}`,
		`{"fromAccountNumber":"0702346800","toAccountNumber":"0702346801","amount":"0","description":"x"}`,
		`{"fromAccountNumber":"0702346800","toAccountNumber":"0702346801","amount":"-5.00","description":"x"}`,
		`{"fromAccountNumber":"0702346800","toAccountNumber":"0702346801","amount":"1.001","description":"x"}`,
		`{"fromAccountNumber":"0702346800","toAccountNumber":"0702346801","amount":"1.00"}`,
		`not json`,
	}
	for _, body := range bodies {
		w := s.do(http.MethodPost, "/api/v1/transfers", token, body)
		s.Equal(http.StatusBadRequest, w.Code, body)
	}
}

func (s *HandlerTestSuite) TestInitiateTransfer_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "restricted", err: apperrors.NewRestrictedError("FROZEN", "court order"), wantStatus: http.StatusForbidden},
		{name: "forbidden", err: fmt.Errorf("%w: not yours", apperrors.ErrForbidden), wantStatus: http.StatusForbidden},
		{name: "not found", err: apperrors.ErrAccountNotFound, wantStatus: http.StatusNotFound},
		{name: "self transfer", err: apperrors.ErrSelfTransfer, wantStatus: http.StatusBadRequest},
		{name: "not active", err: apperrors.ErrAccountNotActive, wantStatus: http.StatusConflict},
		{name: "insufficient", err: apperrors.ErrInsufficientFunds, wantStatus: http.StatusUnprocessableEntity},
		{name: "busy", err: apperrors.ErrBusy, wantStatus: http.StatusServiceUnavailable},
		{name: "invariant", err: apperrors.ErrInvariantViolation, wantStatus: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.transfers.On("InitiateTransfer", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := s.do(http.MethodPost, "/api/v1/transfers", s.adminToken(),
				dto.TransferRequest{FromAccountNumber: numberA, ToAccountNumber: numberB, Amount: 100, Description: "x"})
			s.Equal(tt.wantStatus, w.Code)

			switch tt.wantStatus {
			case http.StatusServiceUnavailable:
				s.Equal("1", w.Header().Get("Retry-After"))
			case http.StatusInternalServerError:
				s.NotContains(w.Body.String(), tt.err.Error())
			}
			if tt.name == "restricted" {
				var body map[string]string
				s.decode(w, &body)
				s.Equal("FROZEN", body["kind"])
				s.Equal("court order", body["reason"])
			}
		})
	}
}

func (s *HandlerTestSuite) TestGetAccount_Ownership() {
	account := &domain.Account{AccountID: "acc-a", CustomerID: "cust-a", AccountNumber: numberA, Status: domain.AccountActive, Balance: 100000}
	s.accounts.On("GetAccount", mock.Anything, numberA).Return(account, nil).Times(3)

	w := s.do(http.MethodGet, "/api/v1/accounts/"+numberA, s.customerToken("cust-a"), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var res dto.AccountResponse
	s.decode(w, &res)
	s.Equal(numberA, res.AccountNumber)
	s.Equal(domain.MustParseMoney("1000.00"), res.Balance)

	w = s.do(http.MethodGet, "/api/v1/accounts/"+numberA, s.customerToken("cust-b"), nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/accounts/"+numberA, s.adminToken(), nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestListEntries() {
	account := &domain.Account{AccountID: "acc-a", CustomerID: "cust-a", AccountNumber: numberA}
	s.accounts.On("GetAccount", mock.Anything, numberA).Return(account, nil).Once()
	s.accounts.On("ListEntries", mock.Anything, numberA, dto.ListEntriesParams{Limit: 2, NextToken: "abc"}).
		Return(&dto.ListEntriesResponse{Entries: []dto.LedgerEntryResponse{{TransactionCode: "TXN1"}}, NextToken: "def"}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts/"+numberA+"/entries?limit=2&nextToken=abc", s.customerToken("cust-a"), nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var res dto.ListEntriesResponse
	s.decode(w, &res)
	s.Equal("def", res.NextToken)
	s.Len(res.Entries, 1)

	w = s.do(http.MethodGet, "/api/v1/accounts/"+numberA+"/entries?limit=500", s.customerToken("cust-a"), nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestOpenAccount() {
	req := dto.OpenAccountRequest{CustomerID: "cust-a", Class: domain.Savings, OpeningDeposit: domain.MustParseMoney("25.00")}
	s.accounts.On("OpenAccount", mock.Anything, req, "user-cust-a").
		Return(&domain.Account{AccountNumber: numberA, CustomerID: "cust-a", Status: domain.AccountPending, Balance: req.OpeningDeposit}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/accounts", s.customerToken("cust-a"), req)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	other := req
	other.CustomerID = "cust-b"
	w = s.do(http.MethodPost, "/api/v1/accounts", s.customerToken("cust-a"), other)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/v1/accounts", s.adminToken(), `{"customerID":"c","class":"GOLD"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestListCustomerAccounts() {
	s.accounts.On("ListAccountsByCustomer", mock.Anything, "cust-a").Return([]domain.Account{{AccountNumber: numberA}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/customers/cust-a/accounts", s.customerToken("cust-a"), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var res dto.ListAccountsResponse
	s.decode(w, &res)
	s.Len(res.Accounts, 1)

	w = s.do(http.MethodGet, "/api/v1/customers/cust-a/accounts", s.customerToken("cust-b"), nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestAdminRoutes_RequireAdmin() {
	token := s.customerToken("cust-a")
	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/admin/approvals"},
		{http.MethodPost, "/api/v1/admin/approvals/TXN1/approve"},
		{http.MethodPost, "/api/v1/admin/approvals/TXN1/reject"},
		{http.MethodPost, "/api/v1/admin/credits"},
		{http.MethodPost, "/api/v1/admin/debits"},
		{http.MethodPost, "/api/v1/admin/accounts/" + numberA + "/review"},
	}
	for _, p := range paths {
		w := s.do(p.method, p.path, token, nil)
		s.Equal(http.StatusForbidden, w.Code, p.path)
	}
}

func (s *HandlerTestSuite) TestAdminCreditAndDebit() {
	req := dto.AdjustmentRequest{AccountNumber: numberA, Amount: domain.MustParseMoney("10.00"), Description: "refund"}
	s.adjustments.On("AdminCredit", mock.Anything, req, "admin-1").
		Return(&dto.AdjustmentResult{TransactionCode: "TXN3", NewBalance: domain.MustParseMoney("1010.00")}, nil).Once()
	s.adjustments.On("AdminDebit", mock.Anything, req, "admin-1").Return(nil, apperrors.ErrInsufficientFunds).Once()

	w := s.do(http.MethodPost, "/api/v1/admin/credits", s.adminToken(), req)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var res dto.AdjustmentResult
	s.decode(w, &res)
	s.Equal("TXN3", res.TransactionCode)

	w = s.do(http.MethodPost, "/api/v1/admin/debits", s.adminToken(), req)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *HandlerTestSuite) TestApproveAndReject() {
	s.approvals.On("ApproveTransfer", mock.Anything, "TXN1", "admin-1").
		Return(&dto.ResolutionResult{TransactionCode: "TXN1", Status: domain.StatusCompleted, ResolvedBy: "admin-1"}, nil).Once()
	s.approvals.On("ApproveTransfer", mock.Anything, "TXN1", "admin-1").Return(nil, apperrors.ErrAlreadyProcessed).Once()
	s.approvals.On("RejectTransfer", mock.Anything, "TXN2", "bad payee", "admin-1").
		Return(&dto.ResolutionResult{TransactionCode: "TXN2", Status: domain.StatusRejected, Remark: "bad payee"}, nil).Once()
	s.approvals.On("RejectTransfer", mock.Anything, "TXN3", "", "admin-1").
		Return(&dto.ResolutionResult{TransactionCode: "TXN3", Status: domain.StatusRejected}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/admin/approvals/TXN1/approve", s.adminToken(), nil)
	s.Equal(http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/api/v1/admin/approvals/TXN1/approve", s.adminToken(), nil)
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v1/admin/approvals/TXN2/reject", s.adminToken(), dto.RejectTransferRequest{Reason: "bad payee"})
	s.Equal(http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/api/v1/admin/approvals/TXN3/reject", s.adminToken(), nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestListPendingApprovals() {
	s.approvals.On("ListPendingApprovals", mock.Anything).Return([]domain.LedgerEntry{
		{TransactionCode: "TXN1", Status: domain.StatusPendingApproval, Transfer: &domain.TransferLeg{Direction: domain.LegOut, CounterpartyAccountNumber: numberB}},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/admin/approvals", s.adminToken(), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var res dto.ListPendingResponse
	s.decode(w, &res)
	s.Require().Len(res.Entries, 1)
	s.Equal(numberB, res.Entries[0].CounterpartyAccountNumber)
}

func (s *HandlerTestSuite) TestReviewAccount() {
	req := dto.ReviewAccountRequest{Action: "APPROVE"}
	s.accounts.On("ReviewAccount", mock.Anything, numberA, req, "admin-1").
		Return(&domain.Account{AccountNumber: numberA, Status: domain.AccountActive}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/admin/accounts/"+numberA+"/review", s.adminToken(), req)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/admin/accounts/"+numberA+"/review", s.adminToken(), `{"action":"MAYBE"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}
