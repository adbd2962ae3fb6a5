package integration_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type UserTestSuite struct {
	BaseSuite
}

func TestUserSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(UserTestSuite))
}

func (s *UserTestSuite) TestGetCurrentUser() {
	truncateUsers(s.T(), s.app.DB)

	scenarios := []Scenario{
		{
			Name:           "returns 401 when user is not logged in",
			Method:         "GET",
			URL:            "/users/me",
			ExpectedStatus: 401,
			ExpectedResponse: `{
				"message": "You must be authenticated to access this resource"
			}`,
		},
		{
			Name:           "returns 404 when user ID in session but not found in DB",
			Method:         "GET",
			URL:            "/users/me",
			ExpectedStatus: 404,
			ExpectedResponse: `{
				"message": "The requested resource not found"
			}`,
			Cookies: s.app.authenticatedUserCookies(s.T()),
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateUsers(t, app.DB)
			},
		},
		{
			Name:           "successfully retrieves current user",
			Method:         "GET",
			URL:            "/users/me",
			ExpectedStatus: 200,
			ExpectedResponse: fmt.Sprintf(`{
				"id": %d,
				"firstName": "%s",
				"lastName": "%s",
				"email": "%s",
				"profileComplete": true
			}`, TestUserId, TestUserFirstName, TestUserLastName, TestUserEmail),
			Cookies: s.app.authenticatedUserCookies(s.T()),
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateUsers(t, app.DB)
				insertTestUser(t, app.DB, defaultTestUser())
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
