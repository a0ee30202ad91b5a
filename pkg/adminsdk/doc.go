/*
Package adminsdk provides a client SDK and the shared wire types for the
SaaS admin service.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (account creation, login, tenant
    and organization creation, health) and the entry point to a Session.
  - Session: bearer-authenticated operations. A Session that receives a 401
    refreshes its access token once with the stored refresh token and retries.

	client := adminsdk.NewSDKClient("http://localhost:8080")

	session, err := client.Login(ctx, "ana@x.com", "longenough1")
	if err != nil {
		var apiErr *adminsdk.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			// bad credentials
		}
	}

	users, err := session.ListUsers(ctx)

# Errors

Every non-2xx response is decoded into an *APIError carrying the HTTP status
and the server's {"error": "..."} message. The same type is used by the
server to write those responses.
*/
package adminsdk
