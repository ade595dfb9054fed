package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	AccountRepo    AccountRepositoryFacade
	OperationRepo  OperationRepositoryFacade
	DocumentRepo   DocumentRepository
	UserRepo       UserRepository
	TokenBlacklist TokenBlacklistRepository
}
