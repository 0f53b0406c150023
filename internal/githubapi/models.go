package githubapi

import "encoding/json"

// Repository is a listing entry for a repository owned by a user or organisation.
type Repository struct {
	CloneURL string `json:"ssh_url" yaml:"clone_url"`
	Name     string `json:"name" yaml:"name"`
	Archived bool   `json:"archived" yaml:"archived"`
}

// Commit is a listing entry for a repository commit.
// The author fields are nil when GitHub could not associate the commit with an account or email.
type Commit struct {
	SHA         string  `json:"sha" yaml:"sha"`
	AuthorLogin *string `json:"author_login,omitempty" yaml:"author_login,omitempty"`
	AuthorEmail *string `json:"author_email,omitempty" yaml:"author_email,omitempty"`
}

// Branch is a listing entry for a repository branch.
type Branch struct {
	Name string `json:"name" yaml:"name"`
}

type commitPayload struct {
	SHA    string `json:"sha"`
	Author *struct {
		Login string `json:"login"`
	} `json:"author"`
	Commit struct {
		Author *struct {
			Email string `json:"email"`
		} `json:"author"`
	} `json:"commit"`
}

// UnmarshalJSON decodes the nested GitHub commit payload into the flattened Commit shape.
func (commit *Commit) UnmarshalJSON(data []byte) error {
	var payload commitPayload
	if decodingError := json.Unmarshal(data, &payload); decodingError != nil {
		return decodingError
	}

	commit.SHA = payload.SHA
	commit.AuthorLogin = nil
	commit.AuthorEmail = nil

	if payload.Author != nil && len(payload.Author.Login) > 0 {
		login := payload.Author.Login
		commit.AuthorLogin = &login
	}
	if payload.Commit.Author != nil && len(payload.Commit.Author.Email) > 0 {
		email := payload.Commit.Author.Email
		commit.AuthorEmail = &email
	}

	return nil
}
