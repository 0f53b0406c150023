// Package githubapi provides a paginated client for the GitHub REST listing endpoints.
//
// It maps logical listing operations to request targets through BuildURL,
// classifies HTTP failures into NotFound, Unauthorized, and Transport errors,
// walks pages sequentially with FetchAll, and disambiguates user and
// organisation owners through AccountTypeResolver. Both GitHub.com and
// GitHub Enterprise (/api/v3) hosts are supported.
package githubapi
