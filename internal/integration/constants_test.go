package integration_test

const (
	// User related constants
	TestUserId        = 1
	TestUserFirstName = "John"
	TestUserLastName  = "Doe"
	TestUserEmail     = "test@example.com"
	TestUserPassword  = "Test123!@#"
	TestUserPhone     = "+919876543210"

	TestAdminEmail = "admin@example.com"

	// Payment related constants
	TestWebhookSecret = "whsec_test_secret"

	// The seat grid is seeded by the migrations: rows A-D, columns 1-5.
	TestSeatLabel = "A1"
)
