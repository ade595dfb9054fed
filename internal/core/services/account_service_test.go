package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/core/services"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccountForUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	creatorID := uuid.NewString()

	suite.mockAccountRepo.On("AccountNumberExists", ctx, mock.AnythingOfType("string")).
		Return(false, nil).Once()

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Account) }).
		Return(nil).Once()

	account, err := suite.service.CreateAccountForUser(ctx, userID, creatorID)

	suite.Require().NoError(err)
	suite.Equal(userID, account.UserID)
	suite.True(account.Balance.IsZero())
	suite.True(strings.HasPrefix(account.AccountNumber, "ALB-"))
	suite.Len(account.AccountNumber, len("ALB-")+8)
	suite.Equal(creatorID, saved.CreatedBy)
}

func (suite *AccountServiceTestSuite) TestCreateAccountForUser_RetriesOnCollision() {
	ctx := context.Background()

	suite.mockAccountRepo.On("AccountNumberExists", ctx, mock.AnythingOfType("string")).
		Return(true, nil).Once()
	suite.mockAccountRepo.On("AccountNumberExists", ctx, mock.AnythingOfType("string")).
		Return(false, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(nil).Once()

	account, err := suite.service.CreateAccountForUser(ctx, uuid.NewString(), uuid.NewString())

	suite.Require().NoError(err)
	suite.NotNil(account)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccountForUser_GivesUpAfterRepeatedCollisions() {
	ctx := context.Background()

	suite.mockAccountRepo.On("AccountNumberExists", ctx, mock.AnythingOfType("string")).
		Return(true, nil)

	account, err := suite.service.CreateAccountForUser(ctx, uuid.NewString(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccountsByUser() {
	ctx := context.Background()
	userID := uuid.NewString()
	expected := []domain.Account{{AccountID: uuid.NewString(), UserID: userID}}

	suite.mockAccountRepo.On("FindAccountsByUserID", ctx, userID).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccountsByUser(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
