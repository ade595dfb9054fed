package services_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/albaraka/albaraka-digital-backend/internal/apperrors"
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/core/services"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
)

// --- Mock DocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	var doc *domain.Document
	if args.Get(0) != nil {
		doc = args.Get(0).(*domain.Document)
	}
	return doc, args.Error(1)
}

func (m *MockDocumentRepository) FindDocumentsByOperationID(ctx context.Context, operationID string) ([]domain.Document, error) {
	args := m.Called(ctx, operationID)
	var docs []domain.Document
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.Document)
	}
	return docs, args.Error(1)
}

// --- Mock OperationSvcFacade ---

type MockOperationService struct {
	mock.Mock
}

func (m *MockOperationService) CreateOperation(ctx context.Context, userID string, req dto.CreateOperationRequest) (*domain.Operation, error) {
	args := m.Called(ctx, userID, req)
	var op *domain.Operation
	if args.Get(0) != nil {
		op = args.Get(0).(*domain.Operation)
	}
	return op, args.Error(1)
}

func (m *MockOperationService) GetOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	args := m.Called(ctx, operationID)
	var op *domain.Operation
	if args.Get(0) != nil {
		op = args.Get(0).(*domain.Operation)
	}
	return op, args.Error(1)
}

func (m *MockOperationService) ListOperationsByUser(ctx context.Context, userID string) ([]domain.Operation, error) {
	args := m.Called(ctx, userID)
	var ops []domain.Operation
	if args.Get(0) != nil {
		ops = args.Get(0).([]domain.Operation)
	}
	return ops, args.Error(1)
}

func (m *MockOperationService) ListPendingOperations(ctx context.Context) ([]domain.Operation, error) {
	args := m.Called(ctx)
	var ops []domain.Operation
	if args.Get(0) != nil {
		ops = args.Get(0).([]domain.Operation)
	}
	return ops, args.Error(1)
}

func (m *MockOperationService) ApproveOperation(ctx context.Context, operationID string, reviewerUserID string) (*domain.Operation, error) {
	args := m.Called(ctx, operationID, reviewerUserID)
	var op *domain.Operation
	if args.Get(0) != nil {
		op = args.Get(0).(*domain.Operation)
	}
	return op, args.Error(1)
}

func (m *MockOperationService) RejectOperation(ctx context.Context, operationID string, reviewerUserID string) (*domain.Operation, error) {
	args := m.Called(ctx, operationID, reviewerUserID)
	var op *domain.Operation
	if args.Get(0) != nil {
		op = args.Get(0).(*domain.Operation)
	}
	return op, args.Error(1)
}

// --- Mock DocumentValidatorSvc ---

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) ValidateDocument(ctx context.Context, document []byte, contentType string, operationDetails string) (domain.ValidationResult, error) {
	args := m.Called(ctx, document, contentType, operationDetails)
	return args.Get(0).(domain.ValidationResult), args.Error(1)
}

// --- Test Suite ---

type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo      *MockDocumentRepository
	mockOperationSvc *MockOperationService
	mockValidator    *MockValidator
	service          portssvc.DocumentSvcFacade
	uploadDir        string
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockOperationSvc = new(MockOperationService)
	suite.mockValidator = new(MockValidator)
	suite.uploadDir = suite.T().TempDir()

	suite.service = services.NewDocumentService(
		suite.mockDocRepo,
		suite.mockOperationSvc,
		suite.mockValidator,
		suite.uploadDir,
		[]string{"pdf", "jpg", "jpeg", "png"},
		1024,
	)
}

func (suite *DocumentServiceTestSuite) pendingOperation() *domain.Operation {
	return &domain.Operation{
		OperationID: uuid.NewString(),
		Kind:        domain.Withdrawal,
		Amount:      decimal.NewFromInt(15000),
		Status:      domain.Pending,
		Description: "rent",
	}
}

func (suite *DocumentServiceTestSuite) upload() dto.DocumentUpload {
	return dto.DocumentUpload{
		FileName:    "invoice.png",
		ContentType: "image/png",
		Data:        []byte("fake image bytes"),
	}
}

func (suite *DocumentServiceTestSuite) TestUpload_ApprovedOperation_NoValidation() {
	ctx := context.Background()
	op := suite.pendingOperation()
	op.Status = domain.Approved

	suite.mockOperationSvc.On("GetOperationByID", ctx, op.OperationID).Return(op, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()

	doc, err := suite.service.UploadDocument(ctx, op.OperationID, suite.upload(), uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("invoice.png", doc.Name)
	suite.FileExists(doc.StoragePath)
	suite.mockValidator.AssertNotCalled(suite.T(), "ValidateDocument",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestUpload_PendingOperation_ApproveVerdict() {
	ctx := context.Background()
	op := suite.pendingOperation()

	suite.mockOperationSvc.On("GetOperationByID", ctx, op.OperationID).Return(op, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()
	suite.mockValidator.On("ValidateDocument", ctx, mock.Anything, "image/png", op.Summary()).
		Return(domain.ValidationResult{Status: domain.ValidationApprove, Confidence: 0.9}, nil).Once()
	suite.mockOperationSvc.On("ApproveOperation", ctx, op.OperationID, "system:document-validation").
		Return(op, nil).Once()

	_, err := suite.service.UploadDocument(ctx, op.OperationID, suite.upload(), uuid.NewString())

	suite.Require().NoError(err)
	suite.mockOperationSvc.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUpload_PendingOperation_RejectVerdict() {
	ctx := context.Background()
	op := suite.pendingOperation()

	suite.mockOperationSvc.On("GetOperationByID", ctx, op.OperationID).Return(op, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()
	suite.mockValidator.On("ValidateDocument", ctx, mock.Anything, "image/png", op.Summary()).
		Return(domain.ValidationResult{Status: domain.ValidationReject, Confidence: 0.8}, nil).Once()
	suite.mockOperationSvc.On("RejectOperation", ctx, op.OperationID, "system:document-validation").
		Return(op, nil).Once()

	_, err := suite.service.UploadDocument(ctx, op.OperationID, suite.upload(), uuid.NewString())

	suite.Require().NoError(err)
	suite.mockOperationSvc.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUpload_PendingOperation_HumanReviewVerdict() {
	ctx := context.Background()
	op := suite.pendingOperation()

	suite.mockOperationSvc.On("GetOperationByID", ctx, op.OperationID).Return(op, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()
	suite.mockValidator.On("ValidateDocument", ctx, mock.Anything, "image/png", op.Summary()).
		Return(domain.ValidationResult{Status: domain.ValidationNeedHumanReview}, nil).Once()

	_, err := suite.service.UploadDocument(ctx, op.OperationID, suite.upload(), uuid.NewString())

	suite.Require().NoError(err)
	suite.mockOperationSvc.AssertNotCalled(suite.T(), "ApproveOperation", mock.Anything, mock.Anything, mock.Anything)
	suite.mockOperationSvc.AssertNotCalled(suite.T(), "RejectOperation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestUpload_ValidatorErrorDoesNotFailUpload() {
	ctx := context.Background()
	op := suite.pendingOperation()

	suite.mockOperationSvc.On("GetOperationByID", ctx, op.OperationID).Return(op, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()
	suite.mockValidator.On("ValidateDocument", ctx, mock.Anything, "image/png", op.Summary()).
		Return(domain.ValidationResult{}, errors.New("timeout")).Once()

	doc, err := suite.service.UploadDocument(ctx, op.OperationID, suite.upload(), uuid.NewString())

	suite.Require().NoError(err)
	suite.NotNil(doc)
	suite.mockOperationSvc.AssertNotCalled(suite.T(), "ApproveOperation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestUpload_AutomatedApprovalFailureIsSwallowed() {
	ctx := context.Background()
	op := suite.pendingOperation()

	suite.mockOperationSvc.On("GetOperationByID", ctx, op.OperationID).Return(op, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()
	suite.mockValidator.On("ValidateDocument", ctx, mock.Anything, "image/png", op.Summary()).
		Return(domain.ValidationResult{Status: domain.ValidationApprove, Confidence: 0.95}, nil).Once()
	suite.mockOperationSvc.On("ApproveOperation", ctx, op.OperationID, "system:document-validation").
		Return(nil, apperrors.ErrOperationNotPending).Once()

	doc, err := suite.service.UploadDocument(ctx, op.OperationID, suite.upload(), uuid.NewString())

	suite.Require().NoError(err)
	suite.NotNil(doc)
}

func (suite *DocumentServiceTestSuite) TestUpload_DisallowedExtension() {
	ctx := context.Background()

	upload := suite.upload()
	upload.FileName = "malware.exe"

	doc, err := suite.service.UploadDocument(ctx, uuid.NewString(), upload, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(doc)
}

func (suite *DocumentServiceTestSuite) TestUpload_TooLarge() {
	ctx := context.Background()

	upload := suite.upload()
	upload.Data = make([]byte, 2048)

	doc, err := suite.service.UploadDocument(ctx, uuid.NewString(), upload, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(doc)
}

func (suite *DocumentServiceTestSuite) TestUpload_EmptyFile() {
	ctx := context.Background()

	upload := suite.upload()
	upload.Data = nil

	doc, err := suite.service.UploadDocument(ctx, uuid.NewString(), upload, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(doc)
}

func (suite *DocumentServiceTestSuite) TestDownloadDocument_RoundTrip() {
	ctx := context.Background()
	op := suite.pendingOperation()
	op.Status = domain.Approved

	suite.mockOperationSvc.On("GetOperationByID", ctx, op.OperationID).Return(op, nil).Once()

	var saved domain.Document
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Document) }).
		Return(nil).Once()

	upload := suite.upload()
	_, err := suite.service.UploadDocument(ctx, op.OperationID, upload, uuid.NewString())
	suite.Require().NoError(err)

	suite.mockDocRepo.On("FindDocumentByID", ctx, saved.DocumentID).Return(&saved, nil).Once()

	doc, data, err := suite.service.DownloadDocument(ctx, saved.DocumentID)
	suite.Require().NoError(err)
	suite.Equal(upload.FileName, doc.Name)
	suite.Equal(upload.Data, data)
}

func (suite *DocumentServiceTestSuite) TestDownloadDocument_MissingFile() {
	ctx := context.Background()

	doc := &domain.Document{
		DocumentID:  uuid.NewString(),
		Name:        "gone.pdf",
		StoragePath: suite.uploadDir + string(os.PathSeparator) + "missing.pdf",
	}
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, _, err := suite.service.DownloadDocument(ctx, doc.DocumentID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
