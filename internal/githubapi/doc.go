// Package githubapi lists the repositories visible to an authenticated GitHub
// account.
//
// It wraps go-github with basic authentication, follows the "next" relation of
// the Link header until the listing is exhausted, and maps the API payload into
// repository.Repository records while rejecting records that lack the fields a
// mirror needs.
package githubapi
