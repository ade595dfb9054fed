package services

// ServiceContainer bundles the application services handed to the HTTP layer.
type ServiceContainer struct {
	Auth      AuthSvcFacade
	User      UserSvcFacade
	Account   AccountSvcFacade
	Operation OperationSvcFacade
	Document  DocumentSvcFacade
	Validator DocumentValidatorSvc
}
