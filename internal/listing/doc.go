// Package listing prints repositories, commits, and branches fetched through the paginated GitHub client.
package listing
